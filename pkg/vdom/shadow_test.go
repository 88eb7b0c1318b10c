package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachShadowOpen(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("my-widget")

	st := n.AttachShadow(ShadowInit{})
	require.NotNil(t, st)
	assert.NotSame(t, tree, st)
	assert.Same(t, st, n.ShadowRoot())
	assert.Same(t, n, st.Host())
	assert.Nil(t, tree.Host())

	nested, mode := n.NestedTree()
	assert.Same(t, st, nested)
	assert.Equal(t, ShadowOpen, mode)
}

func TestAttachShadowClosed(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("my-widget")

	st := n.AttachShadow(ShadowInit{Mode: ShadowClosed})
	assert.Nil(t, n.ShadowRoot())

	nested, mode := n.NestedTree()
	assert.Same(t, st, nested)
	assert.Equal(t, ShadowClosed, mode)
}

func TestAttachShadowReplaces(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("my-widget")

	first := n.AttachShadow(ShadowInit{})
	require.NoError(t, first.AppendChild(first.CreateElement("slot")))
	second := n.AttachShadow(ShadowInit{})

	assert.NotSame(t, first, second)
	assert.Same(t, second, n.ShadowRoot())
	assert.Empty(t, second.TopLevel())
}

func TestShadowTreeIsIndependent(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("my-widget")
	st := n.AttachShadow(ShadowInit{})

	inner := st.CreateElement("span")
	assert.ErrorIs(t, n.AppendChild(inner), ErrForeignNode)

	outerCalls, innerCalls := 0, 0
	tree.OnTreeChange(func(*Element, *Mutation) error { outerCalls++; return nil })
	st.OnTreeChange(func(*Element, *Mutation) error { innerCalls++; return nil })

	require.NoError(t, inner.SetAttribute("a", "b"))
	assert.Equal(t, 0, outerCalls)
	assert.Equal(t, 1, innerCalls)
}
