package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	NoInitial bool `name:"no-initial" help:"Skip the generation run at startup"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	pub, closePub, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePub()

	r, err := newRunner(root.Config, cfg, nil, pub)
	if err != nil {
		return err
	}
	stopChecks, err := r.scheduleChecks(ctx)
	if err != nil {
		return err
	}
	defer stopChecks()

	if !w.NoInitial {
		if _, err := r.service().Run(ctx); err != nil {
			slog.Error("Initial generation failed", logfields.Error(err))
		}
	}
	return r.watch(ctx)
}
