package generate

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Service renders the configured navigation targets.
type Service struct {
	cfg       *config.Config
	recorder  metrics.Recorder
	publisher linkcheck.Publisher
}

// NewService creates a service for cfg with metrics disabled.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithPublisher sets where broken link events go during link checks.
func (s *Service) WithPublisher(p linkcheck.Publisher) *Service {
	s.publisher = p
	return s
}

// Config returns the configuration the service runs with.
func (s *Service) Config() *config.Config { return s.cfg }

// TargetResult is the outcome of one target.
type TargetResult struct {
	Format   render.Format
	Path     string // resolved output path
	Changed  bool
	Duration time.Duration
}

// Result summarizes a run.
type Result struct {
	Menu    nav.Menu
	Report  *nav.Report
	Links   []linkcheck.Result
	Targets []TargetResult
}

// Written returns the targets whose file content changed.
func (r *Result) Written() []TargetResult {
	var out []TargetResult
	for _, t := range r.Targets {
		if t.Changed {
			out = append(out, t)
		}
	}
	return out
}

// Resolve loads the navigation tree (the built-in site tree unless
// nav.source is set) and normalizes it.
func (s *Service) Resolve() (nav.Menu, error) {
	if s.cfg.Nav.Source == "" {
		return nav.Normalize(nav.Site()), nil
	}
	m, err := render.Load(s.cfg.ResolvePath(s.cfg.Nav.Source))
	if err != nil {
		return nil, err
	}
	return nav.Normalize(m), nil
}

// Check resolves the tree and runs the link checker against docs.dir.
func (s *Service) Check(ctx context.Context) ([]linkcheck.Result, error) {
	m, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	return s.check(ctx, m)
}

func (s *Service) check(ctx context.Context, m nav.Menu) ([]linkcheck.Result, error) {
	checker := linkcheck.NewChecker(s.cfg.ResolvePath(s.cfg.Docs.Dir))
	checker.Publisher = s.publisher
	results, err := checker.Check(ctx, m)
	s.recorder.SetMissingLinks(len(linkcheck.Missing(results)))
	return results, err
}

// Run executes one generation: resolve, validate, check links when enabled,
// then render and write every target. Validation errors and, in strict mode,
// missing pages abort before anything is written.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer func() { s.recorder.ObserveRunDuration(time.Since(start)) }()

	m, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	res := &Result{Menu: m, Report: nav.Validate(m)}
	for _, w := range res.Report.Warnings() {
		slog.Warn("Navigation warning", logfields.ItemPath(w.Position), logfields.Item(w.Text), slog.String("problem", w.Message))
	}
	if err := res.Report.Err(); err != nil {
		return res, err
	}
	stats := m.Stats()
	s.recorder.SetNavItems(stats.Links, stats.Groups)

	if s.cfg.Check.Enabled {
		links, err := s.check(ctx, m)
		res.Links = links
		if err != nil {
			if s.cfg.Check.Strict || !errors.HasCategory(err, errors.CategoryNotFound) {
				return res, err
			}
			slog.Warn("Link check found missing pages", logfields.Count(len(linkcheck.Missing(links))))
		}
	}

	for _, target := range s.cfg.Targets {
		if err := ctx.Err(); err != nil {
			return res, errors.WrapError(err, errors.CategoryRuntime, "generation canceled").Build()
		}
		tr, err := s.renderTarget(m, target)
		if err != nil {
			return res, err
		}
		res.Targets = append(res.Targets, tr)
	}

	slog.Info("Navigation generated",
		logfields.Count(stats.Total()),
		slog.Int("targets", len(res.Targets)),
		slog.Int("written", len(res.Written())),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

func (s *Service) renderTarget(m nav.Menu, target config.TargetConfig) (TargetResult, error) {
	start := time.Now()
	name := string(target.Format)
	tr := TargetResult{Format: target.Format, Path: s.cfg.ResolvePath(target.Path)}

	data, err := s.renderBytes(m, target, tr.Path)
	if err == nil {
		tr.Changed, err = writeIfChanged(tr.Path, data)
	}
	tr.Duration = time.Since(start)
	s.recorder.ObserveRenderDuration(name, tr.Duration)

	if err != nil {
		s.recorder.IncRenderResult(name, metrics.ResultFailed)
		slog.Error("Target failed", logfields.Target(name), logfields.Path(tr.Path), logfields.Error(err))
		return tr, err
	}
	if tr.Changed {
		s.recorder.IncRenderResult(name, metrics.ResultWritten)
		slog.Info("Target written", logfields.Target(name), logfields.Path(tr.Path))
	} else {
		s.recorder.IncRenderResult(name, metrics.ResultUnchanged)
		slog.Debug("Target unchanged", logfields.Target(name), logfields.Path(tr.Path))
	}
	return tr, nil
}

// renderBytes renders target. Hugo targets are merged into the existing
// site configuration so that unrelated keys survive.
func (s *Service) renderBytes(m nav.Menu, target config.TargetConfig, path string) ([]byte, error) {
	if target.Format == render.FormatHugo {
		return render.MergeHugoConfig(path, target.Menu, m)
	}
	return render.Render(target.Format, m)
}
