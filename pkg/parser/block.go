package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lonely-Student/StaticSite/pkg/htmlnode"
)

var ErrUnknownBlockKind = errors.New("unknown block kind")

const (
	blockSeparator = "\n\n"
	fence          = "```"
	maxHeading     = 6
)

// BlockKind is the type of a markdown block
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

func (k BlockKind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	}
	return "?"
}

// Segment splits a document into blocks separated by blank lines.
// Blocks are trimmed, empty ones are dropped.
func Segment(doc string) []string {
	blocks := []string{}
	for _, block := range strings.Split(doc, blockSeparator) {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// headingLevel returns the number of leading '#' if block is a heading, otherwise 0
func headingLevel(block string) int {
	level := skipChar(block, 0, '#')
	if level == 0 || level > maxHeading || level >= len(block) || block[level] != ' ' {
		return 0
	}
	return level
}

func isCode(block string, lines []string) bool {
	return len(lines) > 1 && strings.HasPrefix(block, fence) && strings.HasSuffix(block, fence)
}

func everyLine(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

func isOrderedList(lines []string) bool {
	for i, line := range lines {
		if !strings.HasPrefix(line, strconv.Itoa(i+1)+". ") {
			return false
		}
	}
	return len(lines) > 0
}

// Classify determines the type of a block
func Classify(block string) BlockKind {
	lines := strings.Split(block, "\n")

	switch {
	case headingLevel(block) > 0:
		return Heading
	case isCode(block, lines):
		return CodeBlock
	case everyLine(lines, ">"):
		return Quote
	case everyLine(lines, "- "):
		return UnorderedList
	case isOrderedList(lines):
		return OrderedList
	}
	return Paragraph
}

// RenderBlock converts a classified block into an HTML subtree
func RenderBlock(block string, kind BlockKind) (htmlnode.Node, error) {
	var (
		node htmlnode.Node
		err  error
	)
	switch kind {
	case Paragraph:
		node, err = inlineParent("p", strings.ReplaceAll(block, "\n", " "))
	case Heading:
		level := skipChar(block, 0, '#')
		node, err = inlineParent(fmt.Sprintf("h%d", level), block[level+1:])
	case CodeBlock:
		node = codeToNode(block)
	case Quote:
		node, err = quoteToNode(block)
	case UnorderedList:
		node, err = listToNode("ul", block, func(line string) string { return line[2:] })
	case OrderedList:
		node, err = listToNode("ol", block, func(line string) string {
			return line[strings.Index(line, ". ")+2:]
		})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBlockKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return node, nil
}

func inlineParent(tag, text string) (*htmlnode.Parent, error) {
	children, err := Inline(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(tag, children), nil
}

// code content is everything between the first newline and the closing
// fence. It is not parsed for inline markup.
func codeToNode(block string) *htmlnode.Parent {
	start := strings.IndexByte(block, '\n') + 1
	end := len(block) - len(fence)
	text := ""
	if start > 0 && start <= end {
		text = block[start:end]
	}
	return htmlnode.NewParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", text)})
}

func quoteToNode(block string) (*htmlnode.Parent, error) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if trimmed, ok := strings.CutPrefix(line, "> "); ok {
			lines[i] = trimmed
			continue
		}
		lines[i] = strings.TrimPrefix(line, ">")
	}
	return inlineParent("blockquote", strings.Join(lines, "\n"))
}

func listToNode(tag, block string, itemText func(string) string) (*htmlnode.Parent, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		item, err := inlineParent("li", itemText(line))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewParent(tag, items), nil
}

// skipChar advances i as long as data[i] == c
func skipChar(data string, i int, c byte) int {
	n := len(data)
	for i < n && data[i] == c {
		i++
	}
	return i
}
