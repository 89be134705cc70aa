package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/generate"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Docs     string `help:"Docs directory (overrides docs.dir)"`
	Rendered string `help:"Rendered HTML page whose links must include every nav link"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if c.Docs != "" {
		abs, err := filepath.Abs(c.Docs)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs directory").Build()
		}
		cfg.Docs.Dir = abs
	}

	ctx, stop := signalContext()
	defer stop()

	pub, closePub, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePub()

	svc := generate.NewService(cfg).WithPublisher(pub)
	results, checkErr := svc.Check(ctx)
	out := g.out()
	for _, r := range results {
		if r.Found {
			_, _ = fmt.Fprintf(out, "ok       %-6s %s -> %s\n", r.Position, r.Link, r.File)
		} else {
			_, _ = fmt.Fprintf(out, "missing  %-6s %s\n", r.Position, r.Link)
		}
	}
	if checkErr != nil && !errors.HasCategory(checkErr, errors.CategoryNotFound) {
		return checkErr
	}

	if c.Rendered != "" {
		m, err := svc.Resolve()
		if err != nil {
			return err
		}
		absent, err := linkcheck.CheckRendered(c.Rendered, m)
		if err != nil {
			return err
		}
		for _, link := range absent {
			_, _ = fmt.Fprintf(out, "unrendered %s\n", link)
		}
		if len(absent) > 0 && checkErr == nil {
			checkErr = errors.NotFoundError("nav links missing from rendered page").
				WithContext("path", c.Rendered).
				WithContext("missing", len(absent)).Build()
		}
	}
	return checkErr
}

// openPublisher connects to NATS when events are configured. The returned
// close function is always safe to call.
func openPublisher(cfg *config.Config) (linkcheck.Publisher, func(), error) {
	if !cfg.Events.Enabled() {
		return nil, func() {}, nil
	}
	pub, err := linkcheck.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
	if err != nil {
		return nil, func() {}, err
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			slog.Warn("Failed to close NATS connection", logfields.Error(err))
		}
	}, nil
}
