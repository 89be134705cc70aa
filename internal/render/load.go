package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

var extensionFormats = map[string]Format{
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".json":     FormatJSON,
	".ts":       FormatVitePress,
	".mts":      FormatVitePress,
	".js":       FormatVitePress,
	".mjs":      FormatVitePress,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// FormatFromPath picks the format a nav file is read with. A Hugo site
// config (hugo.yaml, hugo.yml) is read as a Hugo menu; other unknown names
// fall back to YAML.
func FormatFromPath(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	if base == "hugo.yaml" || base == "hugo.yml" {
		return FormatHugo
	}
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(base))]; ok {
		return f
	}
	return FormatYAML
}

// Load reads a nav file in any parseable format, chosen from its name.
func Load(path string) (nav.Menu, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "nav file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read nav file").WithContext("path", path).Build()
	}
	m, err := Parse(FormatFromPath(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
