package config

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

const exampleConfig = `version: "1.0"

nav:
  # Empty uses the built-in site navigation. Otherwise a YAML or JSON nav file.
  source: ""

docs:
  dir: docs

check:
  enabled: true
  strict: false
  # schedule: 1h   # re-check links periodically in watch and serve

targets:
  - format: vitepress
    path: docs/.vitepress/scripts/nav.ts
  # - format: hugo
  #   path: site/hugo.yaml
  #   menu: main
  # - format: html
  #   path: public/nav.html

server:
  addr: ":8090"

watch:
  debounce: 500ms

# events:
#   nats_url: ${NATS_URL}
#   subject: docnav.links.broken

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json
`

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
