// Package config loads and validates docnav.yaml.
package config

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/render"
)

// Version is the only configuration schema version understood by Load.
const Version = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docnav.yaml"

// Config represents docnav.yaml.
type Config struct {
	Version string         `yaml:"version"`
	Nav     NavConfig      `yaml:"nav"`
	Docs    DocsConfig     `yaml:"docs"`
	Check   CheckConfig    `yaml:"check"`
	Targets []TargetConfig `yaml:"targets"`
	Server  ServerConfig   `yaml:"server"`
	Watch   WatchConfig    `yaml:"watch"`
	Events  EventsConfig   `yaml:"events"`
	Logging LoggingConfig  `yaml:"logging"`

	// BaseDir is the directory relative paths are resolved against. Load sets
	// it to the directory holding the configuration file.
	BaseDir string `yaml:"-"`
}

// NavConfig selects the navigation tree.
type NavConfig struct {
	Source string `yaml:"source"` // empty selects the built-in site tree
}

// DocsConfig locates the documentation sources.
type DocsConfig struct {
	Dir string `yaml:"dir"`
}

// CheckConfig controls link checking during generation.
type CheckConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Strict   bool   `yaml:"strict"`   // fail generation on missing pages instead of warning
	Schedule string `yaml:"schedule"` // periodic re-check in watch and serve, e.g. "1h"; empty disables
}

// ScheduleInterval parses Schedule. It is zero when no periodic check is
// configured.
func (c CheckConfig) ScheduleInterval() time.Duration {
	if c.Schedule == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Schedule)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// TargetConfig is one rendered output file.
type TargetConfig struct {
	Format render.Format `yaml:"format"`
	Path   string        `yaml:"path"`
	Menu   string        `yaml:"menu,omitempty"` // hugo only
}

// ServerConfig configures `docnav serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig configures `docnav watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration parses Debounce. Callers get a validated value after Load.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// EventsConfig enables broken link events on NATS.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// Enabled reports whether events should be published.
func (e EventsConfig) Enabled() bool { return e.NATSURL != "" }

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ResolvePath returns p relative to BaseDir unless it is absolute.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Version: Version,
		Docs:    DocsConfig{Dir: "docs"},
		Check:   CheckConfig{Enabled: true},
		Targets: []TargetConfig{
			{Format: render.FormatVitePress, Path: DefaultVitePressPath},
		},
	}
	applyDefaults(cfg)
	return cfg
}
