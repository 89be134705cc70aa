// Package render turns a navigation tree into the configuration each host
// site generator reads, and parses those outputs back into a tree.
package render

import (
	"bytes"
	"slices"
	"sync"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Format names a render target.
type Format string

const (
	FormatYAML      Format = "yaml"
	FormatJSON      Format = "json"
	FormatVitePress Format = "vitepress"
	FormatHugo      Format = "hugo"
	FormatHTML      Format = "html"
	FormatMarkdown  Format = "markdown"
)

// Renderer produces one host representation of a tree.
type Renderer interface {
	Format() Format
	// Extension is the conventional file suffix of the output, dot included.
	Extension() string
	ContentType() string
	Render(m nav.Menu) ([]byte, error)
}

// Parser reads a host representation back into a tree.
type Parser interface {
	Parse(data []byte) (nav.Menu, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[Format]Renderer{}
)

// Register adds a renderer. Duplicate formats are ignored.
func Register(r Renderer) {
	if r == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[r.Format()]; exists {
		return
	}
	registry[r.Format()] = r
}

func init() {
	Register(codecRenderer{format: FormatYAML})
	Register(codecRenderer{format: FormatJSON})
	Register(VitePress{})
	Register(Hugo{MenuName: DefaultHugoMenu})
	Register(HTML{})
	Register(Markdown{})
}

// Lookup returns the renderer registered for format.
func Lookup(format Format) (Renderer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[format]
	if !ok {
		return nil, errors.NotFoundError("unknown render format").WithContext("format", string(format)).Build()
	}
	return r, nil
}

// Formats lists the registered formats in sorted order.
func Formats() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Format, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Render is a convenience wrapper around Lookup and Renderer.Render.
func Render(format Format, m nav.Menu) ([]byte, error) {
	r, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	return r.Render(m)
}

// Parse reads data produced by the renderer of format.
func Parse(format Format, data []byte) (nav.Menu, error) {
	r, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	p, ok := r.(Parser)
	if !ok {
		return nil, errors.RenderError("format cannot be parsed").WithContext("format", string(format)).Build()
	}
	return p.Parse(data)
}

// codecRenderer exposes the nav package's YAML and JSON codecs.
type codecRenderer struct {
	format Format
}

func (c codecRenderer) Format() Format { return c.format }

func (c codecRenderer) Extension() string {
	if c.format == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

func (c codecRenderer) ContentType() string {
	if c.format == FormatJSON {
		return "application/json"
	}
	return "application/yaml"
}

func (c codecRenderer) Render(m nav.Menu) ([]byte, error) {
	var buf bytes.Buffer
	if err := nav.Encode(&buf, m, nav.Format(c.format)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c codecRenderer) Parse(data []byte) (nav.Menu, error) {
	return nav.Decode(bytes.NewReader(data), nav.Format(c.format))
}
