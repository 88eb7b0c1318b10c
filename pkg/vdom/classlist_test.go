package vdom

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassListAddRemove(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	cl := n.ClassList()

	require.NoError(t, cl.Add("a b"))
	assert.True(t, cl.Includes("a"))
	assert.True(t, cl.Contains("b"))
	assert.Equal(t, "a b", cl.String())

	require.NoError(t, cl.Remove("a"))
	assert.False(t, cl.Includes("a"))
	assert.Equal(t, "b", n.ClassName())
}

func TestClassListRemoveIsTokenAware(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	require.NoError(t, n.SetClassName("ab a"))

	require.NoError(t, n.ClassList().Remove("a"))
	assert.Equal(t, "ab", n.ClassName())
}

func TestClassListAddDeduplicates(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	cl := n.ClassList()

	require.NoError(t, cl.Add("a", "b a", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, cl.Values())
	assert.Equal(t, 3, cl.Len())
	assert.Equal(t, "b", cl.Item(1))
	assert.Equal(t, "", cl.Item(7))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(cl.All()))
}

func TestClassListSkipsNoopWrites(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	require.NoError(t, n.SetClassName("a"))

	calls := 0
	tree.OnTreeChange(func(*Element, *Mutation) error {
		calls++
		return nil
	})

	require.NoError(t, n.ClassList().Add("a"))
	require.NoError(t, n.ClassList().Remove("missing"))
	assert.Equal(t, 0, calls)

	require.NoError(t, n.ClassList().Add("b"))
	assert.Equal(t, 1, calls)
}

func TestClassListToggle(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	cl := n.ClassList()

	on, err := cl.Toggle("open")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, cl.Contains("open"))

	on, err = cl.Toggle("open")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, "", n.ClassName())
}

func TestClassListIsLive(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	cl := n.ClassList()

	require.NoError(t, n.SetClassName("x y"))
	assert.Equal(t, 2, cl.Len())
}
