package render

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// NavClass marks the rendered <nav> element so Parse can find it in a page.
const NavClass = "docnav"

// HTML renders a static <nav> fragment: nested <ul> lists where groups carry
// a <span> label and links an <a href>.
type HTML struct{}

func (HTML) Format() Format      { return FormatHTML }
func (HTML) Extension() string   { return ".html" }
func (HTML) ContentType() string { return "text/html; charset=utf-8" }

func (HTML) Render(m nav.Menu) ([]byte, error) {
	list, err := htmlList(m)
	if err != nil {
		return nil, err
	}
	root := element(atom.Nav, html.Attribute{Key: "class", Val: NavClass})
	root.AppendChild(list)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render HTML nav").Build()
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func htmlList(m nav.Menu) (*html.Node, error) {
	ul := element(atom.Ul)
	for _, it := range m {
		switch v := it.(type) {
		case nav.Link:
			li := element(atom.Li)
			a := element(atom.A, html.Attribute{Key: "href", Val: v.Link})
			a.AppendChild(textNode(v.Text))
			li.AppendChild(a)
			ul.AppendChild(li)
		case nav.Group:
			li := element(atom.Li, html.Attribute{Key: "class", Val: NavClass + "-group"})
			span := element(atom.Span)
			span.AppendChild(textNode(v.Text))
			li.AppendChild(span)
			sub, err := htmlList(v.Items)
			if err != nil {
				return nil, err
			}
			li.AppendChild(sub)
			ul.AppendChild(li)
		default:
			return nil, nav.UnknownItemError(it)
		}
	}
	return ul, nil
}

// Parse finds the first <nav class="docnav"> in an HTML page or fragment and
// rebuilds the tree from its lists.
func (HTML) Parse(data []byte) (nav.Menu, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to parse HTML").Build()
	}
	navNode := findElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Nav && hasClass(n, NavClass)
	})
	if navNode == nil {
		return nil, errors.NotFoundError("no docnav <nav> element in HTML").Build()
	}
	ul := firstChildElement(navNode, atom.Ul)
	if ul == nil {
		return nav.Menu{}, nil
	}
	return parseHTMLList(ul)
}

func parseHTMLList(ul *html.Node) (nav.Menu, error) {
	out := nav.Menu{}
	for li := ul.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		if a := firstChildElement(li, atom.A); a != nil {
			out = append(out, nav.Link{Text: textContent(a), Link: attr(a, "href")})
			continue
		}
		span := firstChildElement(li, atom.Span)
		sub := firstChildElement(li, atom.Ul)
		if span == nil || sub == nil {
			return nil, errors.ValidationError("HTML nav entry is neither a link nor a group").
				WithContext("text", strings.TrimSpace(textContent(li))).
				Build()
		}
		items, err := parseHTMLList(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, nav.Group{Text: textContent(span), Items: items})
	}
	return out, nil
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func firstChildElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
