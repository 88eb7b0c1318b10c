package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestH(t *testing.T) {
	n := Div(
		ID("main"),
		Class("card"),
		Class("active"),
		nil,
		[]Attr{A("title", "t"), {}},
		Text("hello "),
		"world",
		Span(),
		[]*Node{P(), nil},
		OnClick(func(*Event) {}),
	)

	assert.Equal(t, "div", n.Tag)
	assert.Equal(t, []Attr{{"id", "main"}, {"class", "card active"}, {"title", "t"}}, n.Attrs)
	assert.Equal(t, "hello world", n.Text)
	assert.Len(t, n.Children, 2)
	require.Len(t, n.Events, 1)
	assert.Equal(t, "click", n.Events[0].Type)
}

func TestHPanicsOnUnsupportedArgument(t *testing.T) {
	assert.Panics(t, func() { Div(42) })
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		key  string
		val  string
	}{
		{"ID", ID("x"), "id", "x"},
		{"Class", Class("a", "b"), "class", "a b"},
		{"StyleAttr", StyleAttr("color: red"), "style", "color: red"},
		{"Data", Data("user-id", "1"), "data-user-id", "1"},
		{"Role", Role("button"), "role", "button"},
		{"AriaLabel", AriaLabel("Close"), "aria-label", "Close"},
		{"Href", Href("/"), "href", "/"},
		{"Type", Type("text"), "type", "text"},
		{"Hidden", Hidden(), "hidden", "hidden"},
		{"Disabled", Disabled(), "disabled", "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Name != tt.key {
				t.Errorf("Name = %q, want %q", tt.attr.Name, tt.key)
			}
			if tt.attr.Value != tt.val {
				t.Errorf("Value = %q, want %q", tt.attr.Value, tt.val)
			}
		})
	}
}

func TestBuildDoesNotNotify(t *testing.T) {
	tree := NewTree()
	calls := 0
	tree.OnTreeChange(func(*Element, *Mutation) error {
		calls++
		return nil
	})

	clicked := false
	e := tree.Build(Ul(Class("list"),
		Li(Text("one"), OnClick(func(*Event) { clicked = true })),
		Li(Text("two")),
	))
	assert.Equal(t, 0, calls)

	assert.Equal(t, "list", e.ClassName())
	require.Len(t, e.Children(), 2)
	assert.Equal(t, "one", e.FirstChild().TextContent())
	assert.Same(t, e, e.FirstChild().Parent())
	assert.Len(t, tree.Descendants(), 2)
	assert.Empty(t, tree.TopLevel())

	require.NoError(t, e.FirstChild().Click())
	assert.True(t, clicked)
}

func TestMount(t *testing.T) {
	tree := NewTree()
	got := tree.Mount(Div(), P(), H("my-el", Shadow(ShadowClosed, Span(Text("in")))))

	require.Len(t, got, 3)
	assert.Equal(t, got, tree.TopLevel())

	st, mode := got[2].NestedTree()
	require.NotNil(t, st)
	assert.Equal(t, ShadowClosed, mode)
	require.Len(t, st.TopLevel(), 1)
	assert.Equal(t, "in", st.TopLevel()[0].TextContent())
}

func TestRangeRepeatIf(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(s string, i int) *Node {
		if i == 1 {
			return nil
		}
		return Li(Text(s))
	})
	assert.Len(t, nodes, 2)

	assert.Len(t, Repeat(4, func(int) *Node { return P() }), 4)
	assert.Nil(t, Repeat(0, func(int) *Node { return P() }))
	assert.Nil(t, Repeat(-1, func(int) *Node { return P() }))
	assert.Nil(t, If(false, P()))
	assert.NotNil(t, If(true, P()))
	assert.Equal(t, "span", IfElse(false, P(), Span()).Tag)
}
