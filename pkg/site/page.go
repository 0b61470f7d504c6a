/*
Package site builds a static web site: it copies static assets and turns
every markdown page of the content directory into an HTML page using a template.
*/
package site

import (
	"errors"
	"strings"

	"github.com/Lonely-Student/StaticSite/pkg/parser"
)

var ErrNoTitle = errors.New("no h1 header found in markdown")

const (
	titlePlaceholder   = "{{ Title }}"
	contentPlaceholder = "{{ Content }}"
)

// ExtractTitle returns the text of the first "# " line of a markdown document
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title), nil
		}
	}
	return "", ErrNoTitle
}

// RenderPage converts markdown and puts the title and the content into the template.
// Root-relative href and src attributes of the result are prefixed with basePath.
func RenderPage(markdown, template, basePath string) (string, error) {
	content, err := parser.ToHTML(markdown)
	if err != nil {
		return "", err
	}
	title, err := ExtractTitle(markdown)
	if err != nil {
		return "", err
	}

	page := strings.ReplaceAll(template, titlePlaceholder, title)
	page = strings.ReplaceAll(page, contentPlaceholder, content)
	return RewriteBasePath(page, basePath), nil
}

// RewriteBasePath replaces the leading slash of href="/..." and src="/..." with basePath
func RewriteBasePath(page, basePath string) string {
	if basePath == "" {
		basePath = "/"
	}
	page = strings.ReplaceAll(page, `href="/`, `href="`+basePath)
	return strings.ReplaceAll(page, `src="/`, `src="`+basePath)
}
