package htmlnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafRender(t *testing.T) {
	cases := []struct {
		name string
		leaf *Leaf
		want string
	}{
		{"paragraph", NewLeaf("p", "Hello, world!"), "<p>Hello, world!</p>"},
		{"link", NewLeaf("a", "Click me!", Attribute{"href", "https://www.google.com"}), `<a href="https://www.google.com">Click me!</a>`},
		{"raw text", Text("Just raw text"), "Just raw text"},
		{"empty value", NewLeaf("img", "", Attribute{"src", "a.png"}, Attribute{"alt", "A"}), `<img src="a.png" alt="A"></img>`},
		{
			"attributes keep insertion order",
			NewLeaf("a", "Link", Attribute{"target", "_blank"}, Attribute{"href", "https://www.boot.dev"}),
			`<a target="_blank" href="https://www.boot.dev">Link</a>`,
		},
		{"no escaping", NewLeaf("span", `<b> & "q"`, Attribute{"title", `a"b&c`}), `<span title="a"b&c"><b> & "q"</span>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.leaf.Render()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParentRender(t *testing.T) {
	t.Run("with children", func(t *testing.T) {
		node := NewParent("div", []Node{NewLeaf("span", "child")})
		got, err := node.Render()
		require.NoError(t, err)
		assert.Equal(t, "<div><span>child</span></div>", got)
	})

	t.Run("with grandchildren", func(t *testing.T) {
		node := NewParent("div", []Node{NewParent("span", []Node{NewLeaf("b", "grandchild")})})
		got, err := node.Render()
		require.NoError(t, err)
		assert.Equal(t, "<div><span><b>grandchild</b></span></div>", got)
	})

	t.Run("mixed leaves", func(t *testing.T) {
		node := NewParent("p", []Node{
			NewLeaf("b", "Bold text"),
			Text("Normal text"),
			NewLeaf("i", "italic text"),
			Text("Normal text"),
		})
		got, err := node.Render()
		require.NoError(t, err)
		assert.Equal(t, "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>", got)
	})

	t.Run("attributes", func(t *testing.T) {
		level2 := NewParent("div", []Node{NewParent("p", []Node{NewLeaf("strong", "Deep text")})}, Attribute{"class", "level2"})
		node := NewParent("section", []Node{level2})
		got, err := node.Render()
		require.NoError(t, err)
		assert.Equal(t, `<section><div class="level2"><p><strong>Deep text</strong></p></div></section>`, got)
	})

	t.Run("empty children", func(t *testing.T) {
		got, err := NewParent("div", []Node{}).Render()
		require.NoError(t, err)
		assert.Equal(t, "<div></div>", got)
	})

	t.Run("missing tag", func(t *testing.T) {
		_, err := NewParent("", []Node{NewLeaf("span", "child")}).Render()
		assert.ErrorIs(t, err, ErrMissingTag)
	})

	t.Run("nil children", func(t *testing.T) {
		_, err := NewParent("div", nil).Render()
		assert.ErrorIs(t, err, ErrMissingChildren)
	})

	t.Run("error from nested child", func(t *testing.T) {
		node := NewParent("section", []Node{NewParent("div", []Node{NewParent("", []Node{})})})
		_, err := Render(node)
		assert.True(t, errors.Is(err, ErrMissingTag))
		assert.Contains(t, err.Error(), "<section>: <div>")
	})

	t.Run("nil child", func(t *testing.T) {
		var leaf *Leaf
		for name, child := range map[string]Node{"untyped": nil, "leaf": leaf, "parent": (*Parent)(nil)} {
			t.Run(name, func(t *testing.T) {
				node := NewParent("div", []Node{NewParent("p", []Node{Text("a"), child})})
				var got string
				var err error
				assert.NotPanics(t, func() { got, err = node.Render() })
				assert.ErrorIs(t, err, ErrNilNode)
				assert.Contains(t, err.Error(), "<div>: <p>")
				assert.Equal(t, "", got)
			})
		}
	})

	t.Run("nil node", func(t *testing.T) {
		var leaf *Leaf
		_, err := Render(leaf)
		assert.ErrorIs(t, err, ErrNilNode)
		_, err = Render(nil)
		assert.ErrorIs(t, err, ErrNilNode)
	})
}

func TestString(t *testing.T) {
	leaf := NewLeaf("p", "Hello", Attribute{"class", "text"})
	assert.Equal(t, `Leaf(p, Hello, {"class": "text"})`, leaf.String())

	parent := NewParent("div", []Node{Text("x")})
	assert.Equal(t, `Parent(div, [Leaf(, x, {})], {})`, parent.String())

	var nilLeaf *Leaf
	withNil := NewParent("div", []Node{nil, nilLeaf})
	assert.NotPanics(t, func() { _ = withNil.String() })
	assert.Equal(t, `Parent(div, [nil, nil], {})`, withNil.String())
	assert.Equal(t, "Leaf(nil)", nilLeaf.String())
}

func TestAttributesGet(t *testing.T) {
	attrs := Attributes{{"src", "a.png"}, {"alt", "A"}}
	v, ok := attrs.Get("alt")
	assert.True(t, ok)
	assert.Equal(t, "A", v)
	_, ok = attrs.Get("href")
	assert.False(t, ok)
}
