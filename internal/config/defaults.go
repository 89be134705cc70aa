package config

import (
	"time"

	"git.home.luguber.info/inful/docnav/internal/render"
)

const (
	DefaultDocsDir       = "docs"
	DefaultVitePressPath = "docs/.vitepress/scripts/nav.ts"
	DefaultServerAddr    = ":8090"
	DefaultDebounce      = 500 * time.Millisecond
	DefaultEventSubject  = "docnav.links.broken"
)

// applyDefaults fills unset fields. It runs after normalization.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = Version
	}
	if cfg.Docs.Dir == "" {
		cfg.Docs.Dir = DefaultDocsDir
	}
	for i := range cfg.Targets {
		t := &cfg.Targets[i]
		if t.Format == render.FormatHugo && t.Menu == "" {
			t.Menu = render.DefaultHugoMenu
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce.String()
	}
	if cfg.Events.NATSURL != "" && cfg.Events.Subject == "" {
		cfg.Events.Subject = DefaultEventSubject
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
