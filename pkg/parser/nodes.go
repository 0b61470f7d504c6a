package parser

import (
	"errors"
	"fmt"

	"github.com/Lonely-Student/StaticSite/pkg/htmlnode"
)

var ErrUnknownSpanKind = errors.New("unknown span kind")

// SpanKind classifies a fragment of inline text
type SpanKind int

const (
	Plain SpanKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k SpanKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	}
	return "?"
}

// TextSpan is one classified fragment of inline text.
// URL is set only for links and images.
type TextSpan struct {
	Text string
	Kind SpanKind
	URL  string
}

// NewSpan creates a span without URL
func NewSpan(text string, kind SpanKind) TextSpan {
	return TextSpan{Text: text, Kind: kind}
}

func NewLinkSpan(text, url string) TextSpan {
	return TextSpan{Text: text, Kind: Link, URL: url}
}

func NewImageSpan(alt, url string) TextSpan {
	return TextSpan{Text: alt, Kind: Image, URL: url}
}

func (s TextSpan) String() string {
	if s.Kind == Link || s.Kind == Image {
		return fmt.Sprintf("TextSpan(%q, %s, %q)", s.Text, s.Kind, s.URL)
	}
	return fmt.Sprintf("TextSpan(%q, %s)", s.Text, s.Kind)
}

// SpanToNode converts a span to the leaf element that represents it in HTML
func SpanToNode(s TextSpan) (htmlnode.Node, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.Text(s.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", s.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", s.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", s.Text), nil
	case Link:
		return htmlnode.NewLeaf("a", s.Text, htmlnode.Attribute{Key: "href", Value: s.URL}), nil
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attribute{Key: "src", Value: s.URL},
			htmlnode.Attribute{Key: "alt", Value: s.Text},
		), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownSpanKind, s.Kind)
}
