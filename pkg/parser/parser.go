/*
Package parser converts markdown documents into a tree of HTML nodes.

It supports a small fixed grammar: headings, fenced code blocks, quotes,
unordered and ordered lists, paragraphs, and the inline markup **bold**,
*italic*, `code`, ![alt](url) and [text](url).
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/Lonely-Student/StaticSite/pkg/htmlnode"
)

// Convert parses a whole markdown document into a <div> that holds one
// child per block.
func Convert(doc string) (*htmlnode.Parent, error) {
	blocks := Segment(NormalizeNewlines(doc))
	children := make([]htmlnode.Node, 0, len(blocks))
	for i, block := range blocks {
		node, err := RenderBlock(block, Classify(block))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, node)
	}
	return htmlnode.NewParent("div", children), nil
}

// ToHTML converts a markdown document to an HTML string
func ToHTML(doc string) (string, error) {
	root, err := Convert(doc)
	if err != nil {
		return "", err
	}
	return root.Render()
}

// NormalizeNewlines replaces CR (mac) and CRLF (windows) line endings with LF
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
