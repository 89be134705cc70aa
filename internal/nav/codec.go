package nav

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// wireItem is the host configuration shape of an item:
//
//	{ text, link } | { text, items }
//
// Pointers distinguish an absent key from an empty value.
type wireItem struct {
	Text  string      `json:"text" yaml:"text"`
	Link  *string     `json:"link,omitempty" yaml:"link,omitempty"`
	Items *[]wireItem `json:"items,omitempty" yaml:"items,omitempty"`
}

var wireKeys = map[string]bool{"text": true, "link": true, "items": true}

// UnmarshalYAML rejects keys the host schema does not know.
func (w *wireItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: nav item must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i].Value; !wireKeys[key] {
			return fmt.Errorf("line %d: unknown nav item key %q", node.Content[i].Line, key)
		}
	}
	type plain wireItem
	return node.Decode((*plain)(w))
}

// UnmarshalJSON rejects keys the host schema does not know.
func (w *wireItem) UnmarshalJSON(data []byte) error {
	type plain wireItem
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*plain)(w))
}

func toWire(m Menu) ([]wireItem, error) {
	out := make([]wireItem, 0, len(m))
	for _, it := range m {
		switch v := it.(type) {
		case Link:
			link := v.Link
			out = append(out, wireItem{Text: v.Text, Link: &link})
		case Group:
			items, err := toWire(v.Items)
			if err != nil {
				return nil, err
			}
			out = append(out, wireItem{Text: v.Text, Items: &items})
		default:
			return nil, UnknownItemError(it)
		}
	}
	return out, nil
}

func fromWire(items []wireItem, parent []int) (Menu, error) {
	out := make(Menu, 0, len(items))
	for i, w := range items {
		path := append(parent[:len(parent):len(parent)], i)
		fail := func(msg string) error {
			return errors.ValidationError(msg).
				WithContext("path", FormatPath(path)).
				WithContext("text", w.Text).
				Build()
		}
		if strings.TrimSpace(w.Text) == "" {
			return nil, fail("nav item " + FormatPath(path) + " has no text")
		}
		switch {
		case w.Link != nil && w.Items != nil:
			return nil, fail(fmt.Sprintf("nav item %s (%q) sets both link and items", FormatPath(path), w.Text))
		case w.Link != nil:
			out = append(out, Link{Text: w.Text, Link: *w.Link})
		case w.Items != nil:
			children, err := fromWire(*w.Items, path)
			if err != nil {
				return nil, err
			}
			out = append(out, Group{Text: w.Text, Items: children})
		default:
			return nil, fail(fmt.Sprintf("nav item %s (%q) sets neither link nor items", FormatPath(path), w.Text))
		}
	}
	return out, nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Menu) MarshalYAML() (any, error) {
	return toWire(m)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Menu) UnmarshalYAML(node *yaml.Node) error {
	var items []wireItem
	if err := node.Decode(&items); err != nil {
		return err
	}
	decoded, err := fromWire(items, nil)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m Menu) MarshalJSON() ([]byte, error) {
	items, err := toWire(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(items)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Menu) UnmarshalJSON(data []byte) error {
	var items []wireItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	decoded, err := fromWire(items, nil)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// Format is a host configuration language.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Encode writes m in the given format.
func Encode(w io.Writer, m Menu, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.ValidationError("unsupported nav format").WithContext("format", string(format)).Build()
	}
}

// Decode reads a tree in the given format.
func Decode(r io.Reader, format Format) (Menu, error) {
	var m Menu
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, decodeError(err, format)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			if err == io.EOF {
				return Menu{}, nil
			}
			return nil, decodeError(err, format)
		}
	default:
		return nil, errors.ValidationError("unsupported nav format").WithContext("format", string(format)).Build()
	}
	return m, nil
}

func decodeError(err error, format Format) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.WrapError(err, errors.CategoryValidation, "failed to decode nav").
		WithContext("format", string(format)).
		Build()
}
