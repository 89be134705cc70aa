package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

const vitePressHeader = `import type { DefaultTheme } from "vitepress";

const nav: DefaultTheme.NavItem[] = `

const vitePressFooter = `;

export default nav;
`

// VitePress renders the TypeScript module a VitePress theme config imports
// as its top nav.
type VitePress struct{}

func (VitePress) Format() Format      { return FormatVitePress }
func (VitePress) Extension() string   { return ".ts" }
func (VitePress) ContentType() string { return "text/typescript; charset=utf-8" }

func (VitePress) Render(m nav.Menu) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(vitePressHeader)
	if err := writeTSMenu(&buf, m, 0); err != nil {
		return nil, err
	}
	buf.WriteString(vitePressFooter)
	return buf.Bytes(), nil
}

func writeTSMenu(buf *bytes.Buffer, m nav.Menu, depth int) error {
	if len(m) == 0 {
		buf.WriteString("[]")
		return nil
	}
	indent := strings.Repeat("  ", depth)
	buf.WriteString("[\n")
	for _, it := range m {
		switch v := it.(type) {
		case nav.Link:
			buf.WriteString(indent + "  {\n")
			buf.WriteString(indent + "    text: " + tsString(v.Text) + ",\n")
			buf.WriteString(indent + "    link: " + tsString(v.Link) + ",\n")
		case nav.Group:
			buf.WriteString(indent + "  {\n")
			buf.WriteString(indent + "    text: " + tsString(v.Text) + ",\n")
			buf.WriteString(indent + "    items: ")
			if err := writeTSMenu(buf, v.Items, depth+2); err != nil {
				return err
			}
			buf.WriteString(",\n")
		default:
			return nav.UnknownItemError(it)
		}
		buf.WriteString(indent + "  },\n")
	}
	buf.WriteString(indent + "]")
	return nil
}

// tsString quotes s as a JSON string, which is also a valid TypeScript literal.
func tsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Parse extracts the nav array from a VitePress config module. The literal is
// read as JSON5, so unquoted keys, single quotes, trailing commas and
// comments are accepted. Decoding stops at the closing bracket.
func (VitePress) Parse(data []byte) (nav.Menu, error) {
	src := string(data)
	start := findNavLiteral(src)
	if start < 0 {
		return nil, errors.RenderError("no nav array literal found in VitePress module").Build()
	}
	var raw any
	if err := json5.NewDecoder(strings.NewReader(src[start:])).Decode(&raw); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to read VitePress nav literal").Build()
	}
	literal, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to re-encode VitePress nav literal").Build()
	}
	var m nav.Menu
	if err := json.Unmarshal(literal, &m); err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to decode VitePress nav literal").Build()
	}
	return m, nil
}

// findNavLiteral returns the offset of the '[' that opens the nav array: the
// first array assigned to a "nav" declaration, or failing that the first
// array after a "nav:" property.
func findNavLiteral(src string) int {
	for _, marker := range []string{"const nav", "let nav", "var nav"} {
		i := strings.Index(src, marker)
		if i < 0 {
			continue
		}
		eq := strings.IndexByte(src[i:], '=')
		if eq < 0 {
			continue
		}
		if j := strings.IndexByte(src[i+eq:], '['); j >= 0 {
			return i + eq + j
		}
	}
	if i := strings.Index(src, "nav:"); i >= 0 {
		if j := strings.IndexByte(src[i:], '['); j >= 0 {
			return i + j
		}
	}
	return -1
}
