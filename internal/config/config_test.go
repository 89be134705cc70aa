package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
nav:
  source: nav.yaml
docs:
  dir: content
check:
  enabled: true
  strict: true
  schedule: 30m
targets:
  - format: TS
    path: docs/.vitepress/scripts/nav.ts
  - format: hugo
    path: site/hugo.yaml
  - format: md
    path: SITEMAP.md
server:
  addr: "127.0.0.1:9000"
watch:
  debounce: 2s
logging:
  level: WARNING
  format: JSON
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nav.yaml", cfg.Nav.Source)
	assert.Equal(t, "content", cfg.Docs.Dir)
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, 30*time.Minute, cfg.Check.ScheduleInterval())
	require.Len(t, cfg.Targets, 3)
	assert.Equal(t, render.FormatVitePress, cfg.Targets[0].Format)
	assert.Equal(t, render.FormatHugo, cfg.Targets[1].Format)
	assert.Equal(t, render.DefaultHugoMenu, cfg.Targets[1].Menu)
	assert.Equal(t, render.FormatMarkdown, cfg.Targets[2].Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, filepath.Dir(path), cfg.BaseDir)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "nav.yaml"), cfg.ResolvePath(cfg.Nav.Source))
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `targets:
  - format: json
    path: nav.json
`))
	require.NoError(t, err)
	assert.Equal(t, Version, cfg.Version)
	assert.Equal(t, DefaultDocsDir, cfg.Docs.Dir)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultDebounce, cfg.Watch.DebounceDuration())
	assert.Zero(t, cfg.Check.ScheduleInterval())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.False(t, cfg.Events.Enabled())
	assert.Empty(t, cfg.Events.Subject)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCNAV_TEST_NATS", "nats://127.0.0.1:4222")
	cfg, err := Load(writeConfig(t, `targets:
  - format: yaml
    path: nav.yaml
events:
  nats_url: ${DOCNAV_TEST_NATS}
`))
	require.NoError(t, err)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Events.NATSURL)
	assert.Equal(t, DefaultEventSubject, cfg.Events.Subject)
	assert.True(t, cfg.Events.Enabled())
}

func TestLoadEnvFileNextToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCNAV_TEST_DOCS=from-env-file\n"), 0o600))
	path := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`docs:
  dir: ${DOCNAV_TEST_DOCS}
targets:
  - format: html
    path: nav.html
`), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DOCNAV_TEST_DOCS") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.Docs.Dir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown key", "targets: []\nbogus: 1\n", "failed to parse config"},
		{"bad version", "version: \"2.0\"\ntargets:\n  - format: json\n    path: a.json\n", "unsupported configuration version"},
		{"no targets", "version: \"1.0\"\n", "at least one target must be configured"},
		{"unknown format", "targets:\n  - format: pdf\n    path: nav.pdf\n", "unknown target format"},
		{"missing path", "targets:\n  - format: json\n", "target path is required"},
		{"menu on non hugo", "targets:\n  - format: json\n    path: a.json\n    menu: main\n", "menu is only valid for hugo targets"},
		{"duplicate path", "targets:\n  - format: json\n    path: a.json\n  - format: yaml\n    path: ./a.json\n", "targets write the same path"},
		{"bad schedule", "targets:\n  - format: json\n    path: a.json\ncheck:\n  enabled: true\n  schedule: hourly\n", "check.schedule must be a positive duration"},
		{"schedule without check", "targets:\n  - format: json\n    path: a.json\ncheck:\n  schedule: 1h\n", "check.schedule requires check.enabled"},
		{"bad debounce", "targets:\n  - format: json\n    path: a.json\nwatch:\n  debounce: soon\n", "watch.debounce must be a positive duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "category of %v", err)
			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, ce.Message())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, Validate(cfg))
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "docs/.vitepress/scripts/nav.ts", cfg.Targets[0].Path)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "docnav.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, render.FormatVitePress, cfg.Targets[0].Format)
	assert.Equal(t, DefaultVitePressPath, cfg.Targets[0].Path)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, Init(path, true))
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" Debug "))
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("warning"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}
