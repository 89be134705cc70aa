package nav

import (
	"fmt"
	"slices"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Item is one entry of the navigation tree. Its only implementations are
// Link and Group.
type Item interface {
	// Label returns the human-readable display text.
	Label() string
	isItem()
}

// Link is a leaf item that navigates directly to a page.
type Link struct {
	Text string
	Link string
}

// Group is an item that expands into an ordered submenu.
type Group struct {
	Text  string
	Items Menu
}

func (l Link) Label() string  { return l.Text }
func (g Group) Label() string { return g.Text }

func (Link) isItem()  {}
func (Group) isItem() {}

// UnknownItemError reports an item that is neither a Link nor a Group value:
// a nil entry, or a *Link or *Group.
func UnknownItemError(it Item) error {
	return errors.ValidationError(fmt.Sprintf("unsupported nav item type %T", it)).Build()
}

// Menu is an ordered sequence of items. Order is rendering order.
type Menu []Item

// Clone returns a deep copy of m.
func (m Menu) Clone() Menu {
	if m == nil {
		return nil
	}
	out := make(Menu, len(m))
	for i, it := range m {
		out[i] = cloneItem(it)
	}
	return out
}

func cloneItem(it Item) Item {
	switch v := it.(type) {
	case Group:
		return Group{Text: v.Text, Items: v.Items.Clone()}
	default:
		return it
	}
}

// Equal reports whether m and other describe the same tree: same shapes,
// labels and links in the same order.
func (m Menu) Equal(other Menu) bool {
	return slices.EqualFunc(m, other, itemEqual)
}

func itemEqual(a, b Item) bool {
	switch av := a.(type) {
	case Link:
		bv, ok := b.(Link)
		return ok && av == bv
	case Group:
		bv, ok := b.(Group)
		return ok && av.Text == bv.Text && av.Items.Equal(bv.Items)
	default:
		return a == nil && b == nil
	}
}
