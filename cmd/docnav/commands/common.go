// Package commands implements the docnav CLI commands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/generate"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Global carries state shared by every command.
type Global struct {
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Print    PrintCmd    `cmd:"" help:"Print the navigation tree in a host format"`
	Validate ValidateCmd `cmd:"" help:"Validate the navigation tree structure"`
	Check    CheckCmd    `cmd:"" help:"Check that every nav link resolves to a docs page"`
	Generate GenerateCmd `cmd:"" help:"Render every configured target"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate targets when the nav source or config changes"`
	Serve    ServeCmd    `cmd:"" help:"Serve the navigation tree over HTTP"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the configuration (defaults when the file is absent) and
// applies its logging section. -v still forces debug output.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	configureLogging(cfg.Logging, c.Verbose)
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig, verbose bool) {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if lc.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadMenu returns the normalized tree from file, or from the configured
// source when file is empty.
func (c *CLI) loadMenu(file string) (nav.Menu, error) {
	if file != "" {
		m, err := render.Load(file)
		if err != nil {
			return nil, err
		}
		slog.Debug("Loaded navigation file", logfields.File(file))
		return nav.Normalize(m), nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return generate.NewService(cfg).Resolve()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
