package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/generate"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/schedule"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// runner owns the current generation service and swaps it when the
// configuration file changes.
type runner struct {
	configPath string
	recorder   metrics.Recorder
	publisher  linkcheck.Publisher
	svc        atomic.Pointer[generate.Service]
}

func newRunner(configPath string, cfg *config.Config, rec metrics.Recorder, pub linkcheck.Publisher) (*runner, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").Build()
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	r := &runner{configPath: abs, recorder: rec, publisher: pub}
	r.svc.Store(r.newService(cfg))
	return r, nil
}

func (r *runner) newService(cfg *config.Config) *generate.Service {
	return generate.NewService(cfg).WithRecorder(r.recorder).WithPublisher(r.publisher)
}

func (r *runner) service() *generate.Service { return r.svc.Load() }

// Resolve serves as the HTTP server's tree source.
func (r *runner) Resolve() (nav.Menu, error) { return r.service().Resolve() }

// files lists what the watcher observes: the configuration and, when set,
// the nav source.
func (r *runner) files() []string {
	files := []string{r.configPath}
	cfg := r.service().Config()
	if cfg.Nav.Source != "" {
		src, err := filepath.Abs(cfg.ResolvePath(cfg.Nav.Source))
		if err == nil {
			files = append(files, src)
		}
	}
	return files
}

// handle is the watch callback. A configuration change is applied before
// regenerating; a broken configuration keeps the previous one.
func (r *runner) handle(ctx context.Context, changed []string) error {
	r.recorder.IncWatchReload()
	if slices.Contains(changed, r.configPath) {
		cfg, err := config.Load(r.configPath)
		if err != nil {
			return err
		}
		old := r.service().Config()
		if cfg.Nav.Source != old.Nav.Source {
			slog.Warn("nav.source changed; restart to watch the new file", logfields.Path(cfg.Nav.Source))
		}
		r.svc.Store(r.newService(cfg))
		slog.Info("Configuration reloaded", logfields.Path(r.configPath))
	}
	_, err := r.service().Run(ctx)
	return err
}

// check is the scheduled link check. It always uses the current
// configuration.
func (r *runner) check(ctx context.Context) error {
	results, err := r.service().Check(ctx)
	if err != nil {
		return err
	}
	slog.Info("Scheduled link check passed", logfields.Count(len(results)))
	return nil
}

// scheduleChecks starts the periodic link check when check.schedule is set.
// The interval is read once; a reload does not reschedule. The returned stop
// function is always non-nil and may be called more than once.
func (r *runner) scheduleChecks(ctx context.Context) (func(), error) {
	cfg := r.service().Config()
	interval := cfg.Check.ScheduleInterval()
	if !cfg.Check.Enabled || interval <= 0 {
		return func() {}, nil
	}
	s, err := schedule.New()
	if err != nil {
		return nil, err
	}
	s.Start()
	if _, err := s.Every(ctx, "link-check", interval, r.check); err != nil {
		_ = s.Stop()
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := s.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		})
	}, nil
}

// watch blocks until ctx is canceled.
func (r *runner) watch(ctx context.Context) error {
	w, err := watch.New(r.files(), r.service().Config().Watch.DebounceDuration(), r.handle)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
