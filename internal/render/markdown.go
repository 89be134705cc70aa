package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Markdown renders the tree as a nested bullet list, suitable for a sitemap
// page: "- [text](link)" for links and "- text" for groups.
type Markdown struct{}

func (Markdown) Format() Format      { return FormatMarkdown }
func (Markdown) Extension() string   { return ".md" }
func (Markdown) ContentType() string { return "text/markdown; charset=utf-8" }

func (Markdown) Render(m nav.Menu) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeMarkdownList(&buf, m, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMarkdownList(buf *bytes.Buffer, m nav.Menu, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, it := range m {
		switch v := it.(type) {
		case nav.Link:
			buf.WriteString(indent + "- [" + escapeMarkdown(v.Text) + "](" + markdownDestination(v.Link) + ")\n")
		case nav.Group:
			buf.WriteString(indent + "- " + escapeMarkdown(v.Text) + "\n")
			if err := writeMarkdownList(buf, v.Items, depth+1); err != nil {
				return err
			}
		default:
			return nav.UnknownItemError(it)
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`,
	"`", "\\`", `<`, `\<`, `>`, `\>`, `#`, `\#`, `!`, `\!`,
)

// escapeMarkdown escapes inline punctuation plus anything at the start of
// the label that would open a nested list.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return `\` + s
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

// markdownDestination wraps destinations CommonMark would otherwise split.
func markdownDestination(link string) string {
	if strings.ContainsAny(link, " ()<>") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E").Replace(link) + ">"
	}
	return link
}

// Parse reads a nested bullet list back into a tree. Text outside the first
// list is ignored so the list can live inside a larger page.
func (Markdown) Parse(data []byte) (nav.Menu, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(data))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*gmast.List); ok {
			return parseMarkdownList(list, data)
		}
	}
	return nav.Menu{}, nil
}

func parseMarkdownList(list *gmast.List, src []byte) (nav.Menu, error) {
	out := nav.Menu{}
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var (
			label   gmast.Node
			sublist *gmast.List
		)
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *gmast.List:
				sublist = v
			case *gmast.TextBlock, *gmast.Paragraph:
				if label == nil {
					label = v
				}
			}
		}
		if label == nil {
			return nil, errors.ValidationError("Markdown nav entry has no text").Build()
		}

		if link := soleLink(label); link != nil {
			if sublist != nil {
				return nil, errors.ValidationError("Markdown nav entry is both a link and a group").
					WithContext("text", inlineText(link, src)).
					Build()
			}
			out = append(out, nav.Link{Text: inlineText(link, src), Link: string(link.Destination)})
			continue
		}

		name := inlineText(label, src)
		if sublist == nil {
			return nil, errors.ValidationError("Markdown nav entry has neither a link nor nested items").
				WithContext("text", name).
				Build()
		}
		items, err := parseMarkdownList(sublist, src)
		if err != nil {
			return nil, err
		}
		out = append(out, nav.Group{Text: name, Items: items})
	}
	return out, nil
}

// soleLink returns the block's link when the link is its only inline content.
func soleLink(block gmast.Node) *gmast.Link {
	link, ok := block.FirstChild().(*gmast.Link)
	if !ok || link.NextSibling() != nil {
		return nil
	}
	return link
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n gmast.Node, src []byte) string {
	var b bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *gmast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(v.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(string(util.UnescapePunctuations(b.Bytes())))
}
