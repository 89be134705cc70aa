package nav

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns a copy of m with labels trimmed and in Unicode NFC, and
// links cleaned of duplicate slashes and dot segments. A trailing slash on a
// link is kept because hosts treat "/guide/" as the guide index page.
func Normalize(m Menu) Menu {
	if m == nil {
		return nil
	}
	out := make(Menu, 0, len(m))
	for _, it := range m {
		switch v := it.(type) {
		case Link:
			out = append(out, Link{Text: NormalizeText(v.Text), Link: NormalizeLink(v.Link)})
		case Group:
			out = append(out, Group{Text: NormalizeText(v.Text), Items: Normalize(v.Items)})
		default:
			out = append(out, it)
		}
	}
	return out
}

// NormalizeText trims surrounding white space and composes the label to NFC
// so that visually identical labels compare equal.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeLink cleans an absolute link. Relative and empty links are only
// trimmed; validation reports them.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if !strings.HasPrefix(link, "/") {
		return link
	}
	base, suffix := splitSuffix(link)
	cleaned := path.Clean(base)
	if strings.HasSuffix(base, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned + suffix
}

// splitSuffix separates a "?query" or "#fragment" tail from the path.
func splitSuffix(link string) (string, string) {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		return link[:i], link[i:]
	}
	return link, ""
}
