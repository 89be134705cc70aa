package nav

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// SkipChildren tells Walk not to descend into the current group.
	SkipChildren = errors.New("skip children")
	// Stop ends the walk early without reporting an error.
	Stop = errors.New("stop walk")
)

// Visit describes an item reached during Walk.
type Visit struct {
	Item Item
	// Path holds zero-based indices from the root to Item.
	Path []int
	// Trail holds the labels of the enclosing groups, outermost first.
	Trail []string
}

// Depth is zero for root entries.
func (v Visit) Depth() int { return len(v.Path) - 1 }

// Position renders Path one-based and dot separated ("3.1"), the form used in
// log lines and error messages.
func (v Visit) Position() string { return FormatPath(v.Path) }

// FormatPath renders zero-based indices as a one-based dotted position.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p + 1)
	}
	return strings.Join(parts, ".")
}

// WalkFunc is called for every item in pre-order.
type WalkFunc func(v Visit) error

// Walk visits every item of m depth-first in authored order. Returning
// SkipChildren from fn skips a group's items; returning Stop ends the walk
// and Walk returns nil. Any other error aborts the walk and is returned.
func Walk(m Menu, fn WalkFunc) error {
	err := walk(m, nil, nil, fn)
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

func walk(m Menu, path []int, trail []string, fn WalkFunc) error {
	for i, it := range m {
		p := append(path[:len(path):len(path)], i)
		err := fn(Visit{Item: it, Path: p, Trail: trail})
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if g, ok := it.(Group); ok {
			t := append(trail[:len(trail):len(trail)], g.Text)
			if err := walk(g.Items, p, t, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Entry is a flattened leaf: the link plus the labels leading to it.
type Entry struct {
	Trail []string
	Text  string
	Link  string
	Path  []int
}

// Links returns every leaf of m in authored order.
func (m Menu) Links() []Entry {
	var out []Entry
	_ = Walk(m, func(v Visit) error {
		if l, ok := v.Item.(Link); ok {
			out = append(out, Entry{Trail: v.Trail, Text: l.Text, Link: l.Link, Path: v.Path})
		}
		return nil
	})
	return out
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Links    int
	Groups   int
	MaxDepth int
}

// Total is the number of items of either kind.
func (s Stats) Total() int { return s.Links + s.Groups }

// Stats counts the items of m.
func (m Menu) Stats() Stats {
	var s Stats
	_ = Walk(m, func(v Visit) error {
		switch v.Item.(type) {
		case Link:
			s.Links++
		case Group:
			s.Groups++
		}
		if d := v.Depth(); d > s.MaxDepth {
			s.MaxDepth = d
		}
		return nil
	})
	return s
}
