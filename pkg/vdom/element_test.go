package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("input")

	require.NoError(t, n.SetAttribute("type", "text"))
	require.NoError(t, n.SetAttribute("name", "q"))
	require.NoError(t, n.SetAttribute("type", "search"))

	assert.Equal(t, "search", n.GetAttribute("type"))
	assert.True(t, n.HasAttribute("name"))
	assert.Equal(t, []Attr{{"class", ""}, {"type", "search"}, {"name", "q"}}, n.Attributes())

	require.NoError(t, n.RemoveAttribute("name"))
	assert.False(t, n.HasAttribute("name"))
	_, ok := n.LookupAttribute("name")
	assert.False(t, ok)
	assert.Equal(t, "", n.GetAttribute("missing"))
}

func TestRemoveClassResetsToEmpty(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	require.NoError(t, n.SetClassName("a b"))

	require.NoError(t, n.RemoveAttribute("class"))
	v, ok := n.LookupAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDerivedAttributeAccessors(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")

	require.NoError(t, n.SetID("main"))
	require.NoError(t, n.SetClassName("card"))
	require.NoError(t, n.SetStyle("color: red"))

	assert.Equal(t, "main", n.ID())
	assert.Equal(t, "main", n.GetAttribute("id"))
	assert.Equal(t, "card", n.ClassName())
	assert.Equal(t, "color: red", n.Style())
}

func TestTextContent(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("p")

	require.NoError(t, n.SetTextContent("hello"))
	assert.Equal(t, "hello", n.TextContent())
	require.NoError(t, n.SetInnerText("bye"))
	assert.Equal(t, "bye", n.InnerText())
	assert.Equal(t, "bye", n.TextContent())
}

func TestElementAppendChild(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("div")
	child := tree.CreateElement("span")

	require.NoError(t, parent.AppendChild(child))

	assert.Equal(t, []*Element{child}, parent.Children())
	assert.Same(t, parent, child.Parent())
	assert.Equal(t, []*Element{child}, tree.Descendants())
	assert.Same(t, child, parent.FirstChild())
	assert.Same(t, child, parent.LastChild())
}

func TestElementAppendChildMovesBetweenParents(t *testing.T) {
	tree := NewTree()
	a := tree.CreateElement("div")
	b := tree.CreateElement("div")
	child := tree.CreateElement("span")
	require.NoError(t, tree.AppendChild(a))
	require.NoError(t, tree.AppendChild(b))
	require.NoError(t, a.AppendChild(child))

	require.NoError(t, b.AppendChild(child))

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Element{child}, b.Children())
	assert.Same(t, b, child.Parent())
	assert.Len(t, tree.Descendants(), 1)
	assertIndexInvariant(t, tree)
}

func TestElementAppendChildHierarchyRequest(t *testing.T) {
	tree := NewTree()
	a := tree.CreateElement("div")
	b := tree.CreateElement("div")
	require.NoError(t, a.AppendChild(b))

	assert.ErrorIs(t, a.AppendChild(a), ErrHierarchyRequest)
	assert.ErrorIs(t, b.AppendChild(a), ErrHierarchyRequest)
}

func TestElementAppendChildForeign(t *testing.T) {
	a := NewTree().CreateElement("div")
	b := NewTree().CreateElement("div")
	assert.ErrorIs(t, a.AppendChild(b), ErrForeignNode)
}

func TestElementRemoveChild(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("div")
	child := tree.CreateElement("span")
	require.NoError(t, parent.AppendChild(child))

	require.NoError(t, parent.RemoveChild(child))

	assert.True(t, child.Removed())
	assert.False(t, child.IsConnected())
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())
	assert.NotContains(t, tree.Descendants(), child)

	assert.ErrorIs(t, parent.RemoveChild(child), ErrNotFound)
}

func TestRemovedChildCannotBeReattached(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("div")
	child := tree.CreateElement("span")
	require.NoError(t, parent.AppendChild(child))
	require.NoError(t, parent.RemoveChild(child))

	require.NoError(t, parent.AppendChild(child))
	assert.Empty(t, parent.Children())
}

func TestRemoveChildExcisesSubtree(t *testing.T) {
	tree := NewTree()
	root := tree.Build(Div(Ul(Li(ID("x")), Li())))
	require.NoError(t, tree.AppendChild(root))
	ul := root.FirstChild()
	require.Len(t, tree.Descendants(), 3)

	require.NoError(t, root.RemoveChild(ul))
	assert.Empty(t, tree.Descendants())
	assert.Nil(t, tree.GetElementByID("x"))
}

func TestElementReplaceChild(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("ul")
	a := tree.CreateElement("li")
	b := tree.CreateElement("li")
	c := tree.CreateElement("li")
	require.NoError(t, parent.AppendChild(a))
	require.NoError(t, parent.AppendChild(b))

	require.NoError(t, parent.ReplaceChild(c, a))

	assert.Equal(t, []*Element{c, b}, parent.Children())
	assert.Same(t, parent, c.Parent())
	assert.True(t, a.Removed())
	assert.Nil(t, a.Parent())
	assert.ElementsMatch(t, []*Element{c, b}, tree.Descendants())

	assert.ErrorIs(t, parent.ReplaceChild(a, tree.CreateElement("li")), ErrNotFound)
}

func TestElementReplaceChildWithSibling(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("ul")
	a := tree.CreateElement("li")
	b := tree.CreateElement("li")
	c := tree.CreateElement("li")
	for _, n := range []*Element{a, b, c} {
		require.NoError(t, parent.AppendChild(n))
	}

	require.NoError(t, parent.ReplaceChild(a, c))
	assert.Equal(t, []*Element{b, a}, parent.Children())
	assert.True(t, c.Removed())
}

func TestPrependTopLevel(t *testing.T) {
	tree := NewTree()
	a := tree.CreateElement("a")
	b := tree.CreateElement("b")
	require.NoError(t, tree.AppendChild(a))

	require.NoError(t, a.Prepend(b))
	assert.Equal(t, []*Element{b, a}, tree.TopLevel())
	assert.Same(t, a, b.NextSibling())
	assert.Same(t, b, a.PreviousSibling())
}

func TestPrependUnderParent(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("div")
	a := tree.CreateElement("a")
	b := tree.CreateElement("b")
	require.NoError(t, parent.AppendChild(a))

	require.NoError(t, a.Prepend(b))
	assert.Equal(t, []*Element{b, a}, parent.Children())
	assert.Same(t, parent, b.Parent())
	assert.Contains(t, tree.Descendants(), b)
}

func TestPrependNoParent(t *testing.T) {
	tree := NewTree()
	a := tree.CreateElement("a")
	b := tree.CreateElement("b")
	assert.ErrorIs(t, a.Prepend(b), ErrNoParent)
}

func TestRemove(t *testing.T) {
	tree := NewTree()
	top := tree.CreateElement("div")
	child := tree.CreateElement("span")
	require.NoError(t, tree.AppendChild(top))
	require.NoError(t, top.AppendChild(child))

	var got []*Mutation
	tree.OnTreeChange(func(_ *Element, m *Mutation) error {
		got = append(got, m)
		return nil
	})

	require.NoError(t, child.Remove())
	assert.True(t, child.Removed())
	assert.Empty(t, top.Children())
	assert.Empty(t, tree.Descendants())

	require.NoError(t, top.Remove())
	assert.True(t, top.Removed())
	assert.Empty(t, tree.TopLevel())

	require.Len(t, got, 2, "one notification per Remove")
	assert.Equal(t, MutationRemoved, got[0].Kind)
	assert.Same(t, child, got[0].Target)
	assert.Same(t, top, got[0].Parent)
	assert.Equal(t, 0, got[0].Index)
	assert.Nil(t, got[1].Parent)
}

func TestRemoveDetachedIsIdempotent(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	calls := 0
	tree.OnTreeChange(func(*Element, *Mutation) error {
		calls++
		return nil
	})

	require.NoError(t, n.Remove())
	require.NoError(t, n.Remove())
	assert.True(t, n.Removed())
	assert.Equal(t, 2, calls)
}

func TestSetFirstAndLastChild(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("div")
	a := tree.CreateElement("a")
	b := tree.CreateElement("b")
	c := tree.CreateElement("c")

	require.NoError(t, parent.SetFirstChild(a))
	assert.Equal(t, []*Element{a}, parent.Children(), "appends when empty")

	require.NoError(t, parent.AppendChild(b))
	require.NoError(t, parent.SetLastChild(c))
	assert.Equal(t, []*Element{a, c}, parent.Children())
	assert.True(t, b.Removed())

	d := tree.CreateElement("d")
	require.NoError(t, parent.SetFirstChild(d))
	assert.Equal(t, []*Element{d, c}, parent.Children())
}

func TestSiblings(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("ul")
	a := tree.CreateElement("li")
	b := tree.CreateElement("li")
	require.NoError(t, parent.AppendChild(a))
	require.NoError(t, parent.AppendChild(b))

	assert.Same(t, b, a.NextSibling())
	assert.Nil(t, b.NextSibling())
	assert.Same(t, a, b.PreviousSibling())
	assert.Nil(t, a.PreviousSibling())
	assert.Nil(t, tree.CreateElement("x").NextSibling())
}

func TestCloneNode(t *testing.T) {
	tree := NewTree()
	parent := tree.CreateElement("section")
	n := tree.CreateElement("div")
	child := tree.CreateElement("span")
	require.NoError(t, parent.AppendChild(n))
	require.NoError(t, n.AppendChild(child))
	require.NoError(t, n.SetAttribute("title", "t"))
	require.NoError(t, n.SetTextContent("text"))
	n.On("click", func(*Event) {})

	c := n.CloneNode(true)

	assert.Equal(t, n.TagName(), c.TagName())
	assert.Equal(t, n.Attributes(), c.Attributes())
	assert.Equal(t, n.TextContent(), c.TextContent())
	assert.Same(t, parent, c.Parent())
	assert.Equal(t, n.NodeID(), c.NodeID())
	assert.True(t, c.IsSnapshot())
	assert.Empty(t, c.ListenerTypes())
	assert.False(t, tree.Contains(c))

	require.Len(t, c.Children(), 1)
	cc := c.FirstChild()
	assert.NotSame(t, child, cc)
	assert.Equal(t, "span", cc.TagName())
	assert.Same(t, n, cc.Parent(), "copied children keep their original parent")

	require.NoError(t, c.SetAttribute("title", "changed"))
	assert.Equal(t, "t", n.GetAttribute("title"), "attribute storage is independent")

	shallow := n.CloneNode(false)
	assert.Empty(t, shallow.Children())
}

func TestCloneDoesNotNotify(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	calls := 0
	tree.OnTreeChange(func(*Element, *Mutation) error {
		calls++
		return nil
	})

	c := n.CloneNode(true)
	require.NoError(t, c.SetAttribute("a", "b"))
	require.NoError(t, c.SetTextContent("x"))
	assert.Equal(t, 0, calls)
	assert.ErrorIs(t, c.AppendChild(tree.CreateElement("p")), ErrForeignNode)
}

func TestIf(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	require.NoError(t, tree.AppendChild(n))

	require.NoError(t, n.If(true))
	assert.False(t, n.Removed())
	require.NoError(t, n.If(false))
	assert.True(t, n.Removed())
	assert.Empty(t, tree.TopLevel())
}
