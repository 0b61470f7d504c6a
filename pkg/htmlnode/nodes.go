/*
Package htmlnode implements a minimal tree of HTML elements that can render itself to a string.

Text and attribute values are written byte for byte, nothing is escaped.
*/
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingTag      = errors.New("parent node has no tag")
	ErrMissingChildren = errors.New("parent node has no children")
	ErrNilNode         = errors.New("nil node")
)

// Node is an element of the HTML tree: either *Leaf or *Parent.
type Node interface {
	Render() (string, error)
	String() string
}

// isNil reports whether n is nil or a nil *Leaf or *Parent
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Leaf:
		return v == nil
	case *Parent:
		return v == nil
	}
	return false
}

// Attribute is a single key="value" pair of an element
type Attribute struct {
	Key   string
	Value string
}

// Attributes keeps element attributes in insertion order
type Attributes []Attribute

func (a Attributes) render(b *strings.Builder) {
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

// Get returns the value of the first attribute with the given key
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func (a Attributes) String() string {
	pairs := make([]string, 0, len(a))
	for _, attr := range a {
		pairs = append(pairs, fmt.Sprintf("%q: %q", attr.Key, attr.Value))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Leaf is a type of node that cannot have children
type Leaf struct {
	Tag   string // empty tag renders Value as raw text
	Value string
	Attrs Attributes
}

// NewLeaf creates a leaf element
func NewLeaf(tag, value string, attrs ...Attribute) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs}
}

// Text creates a tagless leaf
func Text(value string) *Leaf {
	return &Leaf{Value: value}
}

func (l *Leaf) Render() (string, error) {
	if l == nil {
		return "", ErrNilNode
	}
	if l.Tag == "" {
		return l.Value, nil
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(l.Tag)
	l.Attrs.render(&b)
	b.WriteByte('>')
	b.WriteString(l.Value)
	b.WriteString("</")
	b.WriteString(l.Tag)
	b.WriteByte('>')
	return b.String(), nil
}

func (l *Leaf) String() string {
	if l == nil {
		return "Leaf(nil)"
	}
	return fmt.Sprintf("Leaf(%s, %s, %s)", l.Tag, l.Value, l.Attrs)
}

// Parent is an element that owns an ordered list of children
type Parent struct {
	Tag      string
	Children []Node // nil is invalid, empty is rendered as <tag></tag>
	Attrs    Attributes
}

// NewParent creates a parent element
func NewParent(tag string, children []Node, attrs ...Attribute) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

func (p *Parent) Render() (string, error) {
	if p == nil {
		return "", ErrNilNode
	}
	var b strings.Builder
	if err := p.render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *Parent) render(b *strings.Builder) error {
	if p.Tag == "" {
		return ErrMissingTag
	}
	if p.Children == nil {
		return fmt.Errorf("<%s>: %w", p.Tag, ErrMissingChildren)
	}
	b.WriteByte('<')
	b.WriteString(p.Tag)
	p.Attrs.render(b)
	b.WriteByte('>')
	for _, child := range p.Children {
		if isNil(child) {
			return fmt.Errorf("<%s>: %w", p.Tag, ErrNilNode)
		}
		if parent, ok := child.(*Parent); ok {
			if err := parent.render(b); err != nil {
				return fmt.Errorf("<%s>: %w", p.Tag, err)
			}
			continue
		}
		html, err := child.Render()
		if err != nil {
			return fmt.Errorf("<%s>: %w", p.Tag, err)
		}
		b.WriteString(html)
	}
	b.WriteString("</")
	b.WriteString(p.Tag)
	b.WriteByte('>')
	return nil
}

func (p *Parent) String() string {
	if p == nil {
		return "Parent(nil)"
	}
	children := make([]string, 0, len(p.Children))
	for _, c := range p.Children {
		if isNil(c) {
			children = append(children, "nil")
			continue
		}
		children = append(children, c.String())
	}
	return fmt.Sprintf("Parent(%s, [%s], %s)", p.Tag, strings.Join(children, ", "), p.Attrs)
}

// Render renders n and all of its descendants
func Render(n Node) (string, error) {
	if isNil(n) {
		return "", ErrNilNode
	}
	return n.Render()
}
