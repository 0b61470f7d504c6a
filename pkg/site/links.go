package site

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BrokenLink is a link of a generated page that points to a missing file
type BrokenLink struct {
	Page   string // page path inside the output directory
	Tag    string // "a" or "img"
	Target string // href or src as written in the page
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: <%s> %s", b.Page, b.Tag, b.Target)
}

func extractImgAndLinks(doc *html.Node) []*html.Node {
	result := make([]*html.Node, 0)
	for stack := []*html.Node{doc}; len(stack) > 0; {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.DataAtom == atom.Img || node.DataAtom == atom.A {
			result = append(result, node)
		}
		for child := node.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return result
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Check parses every HTML page of the site in fsys and returns links
// to files that don't exist in fsys. basePath is the prefix of root-relative links.
func Check(fsys fs.FS, basePath string) ([]BrokenLink, error) {
	if basePath == "" {
		basePath = "/"
	}
	broken := []BrokenLink{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}
		links, err := pageLinks(fsys, p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		for _, node := range links {
			key := "href"
			if node.DataAtom == atom.Img {
				key = "src"
			}
			target := attr(node, key)
			local, ok := resolve(p, target, basePath)
			if !ok || exists(fsys, local) {
				continue
			}
			broken = append(broken, BrokenLink{Page: p, Tag: node.Data, Target: target})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return broken, nil
}

func pageLinks(fsys fs.FS, p string) ([]*html.Node, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}
	return extractImgAndLinks(doc), nil
}

// resolve maps a link of page to a path inside the site.
// Returns false for links that don't point into the site.
func resolve(page, link, basePath string) (string, bool) {
	if link == "" || strings.HasPrefix(link, "#") {
		return "", false
	}
	var p string
	switch {
	case strings.HasPrefix(link, "//"):
		return "", false
	case strings.HasPrefix(link, basePath):
		p = strings.TrimPrefix(link, basePath)
	case strings.HasPrefix(link, "/"):
		return "", false
	default:
		u, err := url.Parse(link)
		if err != nil || u.Scheme != "" {
			return "", false
		}
		p = path.Join(path.Dir(page), link)
	}

	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	p = path.Clean("/" + p)[1:]
	if p == "" {
		p = "."
	}
	return p, true
}

func exists(fsys fs.FS, p string) bool {
	fi, err := fs.Stat(fsys, p)
	if err != nil {
		return false
	}
	if !fi.IsDir() {
		return true
	}
	_, err = fs.Stat(fsys, path.Join(p, "index.html"))
	return err == nil
}

// CheckOutput checks links of the generated site
func (g *Generator) CheckOutput() ([]BrokenLink, error) {
	broken, err := Check(os.DirFS(g.output), g.cfg.BasePath)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(broken, func(a, b BrokenLink) int {
		return strings.Compare(a.String(), b.String())
	})
	for _, b := range broken {
		g.log.Warning("broken link %s", b)
	}
	return broken, nil
}
