package config

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/render"
)

// Validate checks a normalized configuration.
func Validate(cfg *Config) error {
	if cfg.Version != Version {
		return errors.ConfigError("unsupported configuration version").
			WithContext("version", cfg.Version).
			WithContext("supported", Version).Build()
	}
	if len(cfg.Targets) == 0 {
		return errors.ConfigError("at least one target must be configured").Build()
	}
	seen := make(map[string]int, len(cfg.Targets))
	for i, t := range cfg.Targets {
		if t.Format == "" {
			return errors.ConfigError("target format is required").WithContext("target", i).Build()
		}
		if t.Path == "" {
			return errors.ConfigError("target path is required").WithContext("target", i).Build()
		}
		if t.Menu != "" && t.Format != render.FormatHugo {
			return errors.ConfigError("menu is only valid for hugo targets").
				WithContext("target", i).
				WithContext("format", string(t.Format)).Build()
		}
		key := filepath.Clean(t.Path)
		if prev, dup := seen[key]; dup {
			return errors.ConfigError("targets write the same path").
				WithContext("path", t.Path).
				WithContext("targets", []int{prev, i}).Build()
		}
		seen[key] = i
	}
	if cfg.Check.Enabled && cfg.Docs.Dir == "" {
		return errors.ConfigError("docs.dir is required when link checking is enabled").Build()
	}
	if cfg.Check.Schedule != "" {
		if d, err := time.ParseDuration(cfg.Check.Schedule); err != nil || d <= 0 {
			return errors.ConfigError("check.schedule must be a positive duration").
				WithContext("schedule", cfg.Check.Schedule).Build()
		}
		if !cfg.Check.Enabled {
			return errors.ConfigError("check.schedule requires check.enabled").Build()
		}
	}
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return errors.ConfigError("watch.debounce must be a positive duration").
			WithContext("debounce", cfg.Watch.Debounce).Build()
	}
	if cfg.Server.Addr == "" {
		return errors.ConfigError("server.addr is required").Build()
	}
	return nil
}
