package render

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// DefaultHugoMenu is the Hugo menu most themes render as the top bar.
const DefaultHugoMenu = "main"

// HugoMenuEntry is one entry of a Hugo menu. Hugo menus are flat; nesting is
// expressed through Parent pointing at another entry's Identifier.
type HugoMenuEntry struct {
	Identifier string `yaml:"identifier" json:"identifier"`
	Name       string `yaml:"name" json:"name"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	Parent     string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Weight     int    `yaml:"weight" json:"weight"`
}

// Hugo renders a `menu:` block for hugo.yaml.
type Hugo struct {
	MenuName string
}

func (Hugo) Format() Format      { return FormatHugo }
func (Hugo) Extension() string   { return ".yaml" }
func (Hugo) ContentType() string { return "application/yaml" }

func (h Hugo) menuName() string {
	if h.MenuName == "" {
		return DefaultHugoMenu
	}
	return h.MenuName
}

func (h Hugo) Render(m nav.Menu) ([]byte, error) {
	entries, err := ToHugoMenu(m)
	if err != nil {
		return nil, err
	}
	doc := map[string]map[string][]HugoMenuEntry{
		"menu": {h.menuName(): entries},
	}
	return marshalYAML(doc)
}

// Parse reads a hugo.yaml (or a menu-only fragment) and rebuilds the tree of
// the configured menu.
func (h Hugo) Parse(data []byte) (nav.Menu, error) {
	var doc struct {
		Menu map[string][]HugoMenuEntry `yaml:"menu"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to decode Hugo config").Build()
	}
	entries, ok := doc.Menu[h.menuName()]
	if !ok {
		return nil, errors.NotFoundError("Hugo menu not found").WithContext("menu", h.menuName()).Build()
	}
	return FromHugoMenu(entries)
}

// hugoIdentifier derives a stable identifier from an item's position.
func hugoIdentifier(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p + 1)
	}
	return "nav-" + strings.Join(parts, "-")
}

// ToHugoMenu flattens m into Hugo menu entries. Weights are 10, 20, ... per
// level so authored order survives Hugo's weight sort and leaves room for
// hand-added entries.
func ToHugoMenu(m nav.Menu) ([]HugoMenuEntry, error) {
	var out []HugoMenuEntry
	err := nav.Walk(m, func(v nav.Visit) error {
		switch v.Item.(type) {
		case nav.Link, nav.Group:
		default:
			return nav.UnknownItemError(v.Item)
		}
		e := HugoMenuEntry{
			Identifier: hugoIdentifier(v.Path),
			Name:       v.Item.Label(),
			Weight:     (v.Path[len(v.Path)-1] + 1) * 10,
		}
		if len(v.Path) > 1 {
			e.Parent = hugoIdentifier(v.Path[:len(v.Path)-1])
		}
		if l, ok := v.Item.(nav.Link); ok {
			e.URL = l.Link
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FromHugoMenu rebuilds a tree from flat Hugo entries. Siblings are ordered
// by weight, then by their original position. Entries with a URL become
// links; entries without one must have children.
func FromHugoMenu(entries []HugoMenuEntry) (nav.Menu, error) {
	type indexed struct {
		HugoMenuEntry
		pos int
	}
	children := make(map[string][]indexed)
	known := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Identifier == "" {
			e.Identifier = e.Name
		}
		if e.Identifier == "" {
			return nil, errors.ValidationError("Hugo menu entry needs an identifier or name").WithContext("entry", i).Build()
		}
		if known[e.Identifier] {
			return nil, errors.ValidationError("duplicate Hugo menu identifier").WithContext("identifier", e.Identifier).Build()
		}
		known[e.Identifier] = true
		children[e.Parent] = append(children[e.Parent], indexed{e, i})
	}
	for parent := range children {
		if parent != "" && !known[parent] {
			return nil, errors.NotFoundError("Hugo menu parent not found").WithContext("parent", parent).Build()
		}
	}

	reached := 0
	visited := make(map[string]bool, len(entries)+1)
	var build func(parent string) (nav.Menu, error)
	build = func(parent string) (nav.Menu, error) {
		if visited[parent] {
			return nil, errors.ValidationError("Hugo menu parents form a cycle").WithContext("identifier", parent).Build()
		}
		visited[parent] = true
		list := children[parent]
		reached += len(list)
		slices.SortStableFunc(list, func(a, b indexed) int {
			return cmp.Or(cmp.Compare(a.Weight, b.Weight), cmp.Compare(a.pos, b.pos))
		})
		out := make(nav.Menu, 0, len(list))
		for _, e := range list {
			kids, err := build(e.Identifier)
			if err != nil {
				return nil, err
			}
			switch {
			case e.URL != "" && len(kids) > 0:
				return nil, errors.ValidationError(fmt.Sprintf("Hugo menu entry %q has both url and children", e.Identifier)).Build()
			case e.URL != "":
				out = append(out, nav.Link{Text: e.Name, Link: e.URL})
			case len(kids) > 0:
				out = append(out, nav.Group{Text: e.Name, Items: kids})
			default:
				return nil, errors.ValidationError(fmt.Sprintf("Hugo menu entry %q has neither url nor children", e.Identifier)).Build()
			}
		}
		return out, nil
	}
	m, err := build("")
	if err != nil {
		return nil, err
	}
	if reached != len(entries) {
		// Entries whose parent chain never reaches the root form a cycle.
		return nil, errors.ValidationError("Hugo menu parents form a cycle").Build()
	}
	return m, nil
}

// MergeHugoConfig replaces menu.<menuName> in the Hugo config at path with m
// and leaves every other key, comment and ordering as it was. A missing file
// is created holding only the menu. A file with nothing but comments keeps
// them above the new menu.
func MergeHugoConfig(path, menuName string, m nav.Menu) ([]byte, error) {
	if menuName == "" {
		menuName = DefaultHugoMenu
	}
	var root yaml.Node
	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read Hugo config").WithContext("path", path).Build()
	default:
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to parse Hugo config").WithContext("path", path).Build()
		}
	}

	var preamble []byte
	if root.Kind == 0 || len(root.Content) == 0 {
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 {
			preamble = append(trimmed, '\n')
		}
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.RenderError("Hugo config root is not a mapping").WithContext("path", path).Build()
	}

	flat, err := ToHugoMenu(m)
	if err != nil {
		return nil, err
	}
	var entries yaml.Node
	if err := entries.Encode(flat); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode Hugo menu").Build()
	}
	menus := mappingValue(doc, "menu")
	if menus.Kind != yaml.MappingNode {
		*menus = yaml.Node{Kind: yaml.MappingNode}
	}
	*mappingValue(menus, menuName) = entries

	out, err := marshalYAML(&root)
	if err != nil {
		return nil, err
	}
	return append(preamble, out...), nil
}

// mappingValue returns the value node for key, appending an empty one when
// the key is absent.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	v := &yaml.Node{}
	mapping.Content = append(mapping.Content, k, v)
	return v
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode YAML").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to encode YAML").Build()
	}
	return buf.Bytes(), nil
}
