// Package linkcheck verifies that every navigation link resolves to a page
// in the local docs tree.
package linkcheck

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Result is the outcome for one nav link.
type Result struct {
	Position string   // one-based item position, e.g. "3.1"
	Trail    []string // enclosing group labels
	Text     string
	Link     string
	File     string // matched file relative to the docs dir, empty when missing
	Found    bool
}

// Checker maps nav links to source pages the way VitePress and Hugo do:
// "/a/b" is served by a/b.md, a/b/index.md or a/b/README.md, and "/a/b/"
// only by an index page.
type Checker struct {
	DocsDir    string
	Extensions []string
	IndexNames []string
	Publisher  Publisher
}

// DefaultExtensions are the page source suffixes tried, in order.
var DefaultExtensions = []string{".md", ".markdown", ".html"}

// DefaultIndexNames are the directory index page names tried, in order.
var DefaultIndexNames = []string{"index", "README", "_index"}

// NewChecker creates a checker for docsDir with the default page conventions.
func NewChecker(docsDir string) *Checker {
	return &Checker{
		DocsDir:    docsDir,
		Extensions: DefaultExtensions,
		IndexNames: DefaultIndexNames,
	}
}

// Check resolves every leaf of m. It returns all results and, when any link
// is unresolved, a classified not-found error naming how many. Events
// published by one call carry the same check ID.
func (c *Checker) Check(ctx context.Context, m nav.Menu) ([]Result, error) {
	if info, err := os.Stat(c.DocsDir); err != nil || !info.IsDir() {
		return nil, errors.NotFoundError("docs directory not found").WithContext("path", c.DocsDir).Build()
	}

	checkID := uuid.NewString()
	var results []Result
	var missing []string
	for _, entry := range m.Links() {
		if err := ctx.Err(); err != nil {
			return results, errors.WrapError(err, errors.CategoryRuntime, "link check canceled").Build()
		}
		res := Result{
			Position: nav.FormatPath(entry.Path),
			Trail:    entry.Trail,
			Text:     entry.Text,
			Link:     entry.Link,
		}
		res.File, res.Found = c.Resolve(entry.Link)
		if !res.Found {
			missing = append(missing, entry.Link)
			slog.Warn("Nav link has no page",
				logfields.ItemPath(res.Position),
				logfields.Item(res.Text),
				logfields.Link(res.Link))
			c.publish(ctx, checkID, res)
		}
		results = append(results, res)
	}

	if len(missing) > 0 {
		return results, errors.NotFoundError("nav links without a page").
			WithContext("missing", len(missing)).
			WithContext("links", strings.Join(missing, ", ")).
			Build()
	}
	return results, nil
}

func (c *Checker) publish(ctx context.Context, checkID string, res Result) {
	if c.Publisher == nil {
		return
	}
	event := BrokenLinkEvent{
		CheckID:   checkID,
		Link:      res.Link,
		Text:      res.Text,
		Position:  res.Position,
		Trail:     res.Trail,
		DocsDir:   c.DocsDir,
		Timestamp: time.Now(),
	}
	if err := c.Publisher.PublishBrokenLink(ctx, event); err != nil {
		slog.Warn("Failed to publish broken link event", logfields.Link(res.Link), logfields.Error(err))
	}
}

// Resolve returns the docs-relative file that serves link.
func (c *Checker) Resolve(link string) (string, bool) {
	if !strings.HasPrefix(link, "/") {
		return "", false
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	rel := strings.TrimPrefix(link, "/")

	var candidates []string
	if rel == "" || strings.HasSuffix(rel, "/") {
		for _, name := range c.IndexNames {
			candidates = append(candidates, c.withExtensions(rel+name)...)
		}
	} else {
		base := rel
		for _, ext := range []string{".html", ".md"} {
			if strings.HasSuffix(base, ext) {
				base = strings.TrimSuffix(base, ext)
				break
			}
		}
		candidates = append(candidates, c.withExtensions(base)...)
		for _, name := range c.IndexNames {
			candidates = append(candidates, c.withExtensions(base+"/"+name)...)
		}
	}

	for _, cand := range candidates {
		full := filepath.Join(c.DocsDir, filepath.FromSlash(cand))
		if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() {
			return cand, true
		}
	}
	return "", false
}

func (c *Checker) withExtensions(base string) []string {
	out := make([]string, len(c.Extensions))
	for i, ext := range c.Extensions {
		out[i] = base + ext
	}
	return out
}

// Missing filters results down to unresolved links.
func Missing(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Found {
			out = append(out, r)
		}
	}
	return out
}
