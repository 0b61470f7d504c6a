package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Lonely-Student/StaticSite/pkg/htmlnode"
)

// Parsing of inline elements

var ErrUnmatchedDelimiter = errors.New("no matching closing delimiter")

var (
	imageRegexp = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`) // ![alt](url)
	linkRegexp  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)  // [text](url), filtered by isImageMarker
)

// Match is an extracted (text, url) pair of a link or an image
type Match struct {
	Text string
	URL  string
}

// ExtractImages returns all images in text from left to right
func ExtractImages(text string) []Match {
	result := []Match{}
	for _, m := range imageRegexp.FindAllStringSubmatch(text, -1) {
		result = append(result, Match{Text: m[1], URL: m[2]})
	}
	return result
}

// ExtractLinks returns all links in text from left to right. Images are not links.
func ExtractLinks(text string) []Match {
	result := []Match{}
	for _, m := range linkRegexp.FindAllStringSubmatchIndex(text, -1) {
		if isImageMarker(text, m[0]) {
			continue
		}
		result = append(result, Match{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]})
	}
	return result
}

func isImageMarker(text string, bracket int) bool {
	return bracket > 0 && text[bracket-1] == '!'
}

// SplitDelimiter splits plain spans on delim. Parts between a pair of
// delimiters become spans of the given kind.
func SplitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			result = append(result, span)
			continue
		}

		parts := strings.Split(span.Text, delim)
		if len(parts)%2 == 0 {
			return nil, fmt.Errorf("%w %q in %q", ErrUnmatchedDelimiter, delim, span.Text)
		}

		for i, part := range parts {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				result = append(result, NewSpan(part, Plain))
			} else {
				result = append(result, NewSpan(part, kind))
			}
		}
	}
	return result, nil
}

// splitMatches cuts every match out of the plain spans. markdown rebuilds
// the literal source of a match so it can be located in the remaining text.
func splitMatches(spans []TextSpan, extract func(string) []Match, markdown func(Match) string, toSpan func(Match) TextSpan) []TextSpan {
	result := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			result = append(result, span)
			continue
		}

		matches := extract(span.Text)
		if len(matches) == 0 {
			result = append(result, span)
			continue
		}

		remaining := span.Text
		for _, m := range matches {
			sections := strings.SplitN(remaining, markdown(m), 2)
			if sections[0] != "" {
				result = append(result, NewSpan(sections[0], Plain))
			}
			result = append(result, toSpan(m))
			remaining = ""
			if len(sections) > 1 {
				remaining = sections[1]
			}
		}
		if remaining != "" {
			result = append(result, NewSpan(remaining, Plain))
		}
	}
	return result
}

// SplitImages extracts ![alt](url) constructs from plain spans
func SplitImages(spans []TextSpan) []TextSpan {
	return splitMatches(spans, ExtractImages,
		func(m Match) string { return "![" + m.Text + "](" + m.URL + ")" },
		func(m Match) TextSpan { return NewImageSpan(m.Text, m.URL) },
	)
}

// SplitLinks extracts [text](url) constructs from plain spans
func SplitLinks(spans []TextSpan) []TextSpan {
	return splitMatches(spans, ExtractLinks,
		func(m Match) string { return "[" + m.Text + "](" + m.URL + ")" },
		func(m Match) TextSpan { return NewLinkSpan(m.Text, m.URL) },
	)
}

type inlinePass func([]TextSpan) ([]TextSpan, error)

func delimiterPass(delim string, kind SpanKind) inlinePass {
	return func(spans []TextSpan) ([]TextSpan, error) {
		return SplitDelimiter(spans, delim, kind)
	}
}

func infalliblePass(fn func([]TextSpan) []TextSpan) inlinePass {
	return func(spans []TextSpan) ([]TextSpan, error) {
		return fn(spans), nil
	}
}

// The order matters: "**" has to be consumed before "*", and images
// before links so that "![a](b)" is never read as a link.
var inlinePipeline = []inlinePass{
	delimiterPass("**", Bold),
	delimiterPass("*", Italic),
	delimiterPass("`", Code),
	infalliblePass(SplitImages),
	infalliblePass(SplitLinks),
}

// Tokenize splits inline markdown text into spans
func Tokenize(text string) ([]TextSpan, error) {
	spans := []TextSpan{NewSpan(text, Plain)}
	for _, pass := range inlinePipeline {
		var err error
		if spans, err = pass(spans); err != nil {
			return nil, err
		}
	}
	return spans, nil
}

// Inline tokenizes text and converts every span to a leaf node
func Inline(text string) ([]htmlnode.Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	children := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		node, err := SpanToNode(span)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return children, nil
}
