package config

import (
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
	"git.home.luguber.info/inful/docnav/internal/render"
)

var formatNormalizer = normalization.NewNormalizer(map[string]render.Format{
	string(render.FormatYAML):      render.FormatYAML,
	string(render.FormatJSON):      render.FormatJSON,
	string(render.FormatVitePress): render.FormatVitePress,
	string(render.FormatHugo):      render.FormatHugo,
	string(render.FormatHTML):      render.FormatHTML,
	string(render.FormatMarkdown):  render.FormatMarkdown,
}, "").WithAliases(map[string]render.Format{
	"yml": render.FormatYAML,
	"ts":  render.FormatVitePress,
	"md":  render.FormatMarkdown,
})

// NormalizeFormat parses a render format name or alias.
func NormalizeFormat(raw string) (render.Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "unknown target format").
			WithContext("format", raw).Build()
	}
	return f, nil
}

// normalize canonicalizes enum spellings. Unknown log settings fall back
// to their defaults; unknown target formats are errors.
func normalize(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	for i := range cfg.Targets {
		f, err := NormalizeFormat(string(cfg.Targets[i].Format))
		if err != nil {
			return err
		}
		cfg.Targets[i].Format = f
	}
	return nil
}
