package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/server"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides server.addr)"`
	Watch bool   `help:"Also regenerate targets when files change"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if s.Addr != "" {
		addr = s.Addr
	}

	ctx, stop := signalContext()
	defer stop()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewPrometheusRecorder(reg)

	pub, closePub, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePub()

	r, err := newRunner(root.Config, cfg, rec, pub)
	if err != nil {
		return err
	}
	if m, err := r.Resolve(); err == nil {
		st := m.Stats()
		rec.SetNavItems(st.Links, st.Groups)
	}

	stopChecks, err := r.scheduleChecks(ctx)
	if err != nil {
		return err
	}
	defer stopChecks()

	if s.Watch {
		if _, err := r.service().Run(ctx); err != nil {
			slog.Error("Initial generation failed", logfields.Error(err))
		}
		go func() {
			if err := r.watch(ctx); err != nil {
				slog.Error("Watcher stopped", logfields.Error(err))
			}
		}()
	}

	return server.New(addr, r.Resolve, reg).ListenAndServe(ctx)
}
