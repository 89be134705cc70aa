package linkcheck

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// ExtractLinks returns the href of every <a> element in document order.
func ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && a.Val != "" {
					links = append(links, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

// CheckRendered reports the nav links that do not appear as an <a href> in a
// rendered page, which means the host dropped or rewrote them. Hosts that
// append ".html" are accepted.
func CheckRendered(htmlPath string, m nav.Menu) ([]string, error) {
	f, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("path", htmlPath).Build()
	}
	defer func() {
		_ = f.Close()
	}()

	hrefs, err := ExtractLinks(f)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(hrefs))
	for _, h := range hrefs {
		present[h] = true
	}

	var missing []string
	for _, e := range m.Links() {
		if !present[e.Link] && !present[e.Link+".html"] {
			missing = append(missing, e.Link)
		}
	}
	return missing, nil
}
