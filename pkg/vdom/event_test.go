package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchStopsWhenNotBubbling(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("button")

	var calls []string
	n.AddEventListener("click", Listen(func(*Event) { calls = append(calls, "first") }))
	n.AddEventListener("click", Listen(func(*Event) { calls = append(calls, "second") }))

	require.NoError(t, n.DispatchEvent(NewEvent("click", EventInit{Bubbles: false})))
	assert.Equal(t, []string{"first"}, calls)

	calls = nil
	require.NoError(t, n.DispatchEvent(NewEvent("click", EventInit{Bubbles: true})))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestListenerCanStopDispatch(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("button")

	calls := 0
	n.On("ping", func(ev *Event) {
		calls++
		ev.Bubbles = false
	})
	n.On("ping", func(*Event) { calls++ })

	require.NoError(t, n.Emit("ping", nil))
	assert.Equal(t, 1, calls)
}

func TestDispatchWithoutListeners(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	assert.ErrorIs(t, n.DispatchEvent(NewEvent("click", EventInit{})), ErrNoListeners)
	assert.ErrorIs(t, n.Click(), ErrNoListeners)
}

func TestEventFields(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")

	var got *Event
	n.On("custom", func(ev *Event) {
		got = ev
		ev.PreventDefault()
	})

	require.NoError(t, n.Emit("custom", 42))
	require.NotNil(t, got)
	assert.Same(t, n, got.Target())
	assert.Equal(t, 42, got.Detail)
	assert.False(t, got.IsTrusted())
	assert.True(t, got.DefaultPrevented())

	host := HostEvent("custom", nil)
	assert.True(t, host.IsTrusted())
	assert.True(t, host.Bubbles)
}

func TestClickIsUntrusted(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("button")
	var trusted, seen bool
	n.On("click", func(ev *Event) {
		seen = true
		trusted = ev.IsTrusted()
	})

	require.NoError(t, n.Click())
	assert.True(t, seen)
	assert.False(t, trusted)
}

func TestRemoveEventListener(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")

	calls := 0
	l := Listen(func(*Event) { calls++ })
	other := Listen(func(*Event) { calls += 10 })
	unregister := n.AddEventListener("x", l)
	n.AddEventListener("x", other)

	unregister()
	require.NoError(t, n.Emit("x", nil))
	assert.Equal(t, 10, calls)

	n.RemoveEventListener("x", other)
	assert.False(t, n.HasListeners("x"))
	assert.Empty(t, n.ListenerTypes())
}

func TestListenerRemovalDuringDispatch(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")

	calls := 0
	var second *Listener
	n.On("x", func(*Event) {
		calls++
		n.RemoveEventListener("x", second)
	})
	second = Listen(func(*Event) { calls++ })
	n.AddEventListener("x", second)

	require.NoError(t, n.Emit("x", nil))
	assert.Equal(t, 2, calls, "dispatch iterates over the list as it was")
	require.NoError(t, n.Emit("x", nil))
	assert.Equal(t, 3, calls)
}

func TestListenerTypes(t *testing.T) {
	tree := NewTree()
	n := tree.CreateElement("div")
	n.On("input", func(*Event) {})
	n.On("click", func(*Event) {})
	n.On("click", func(*Event) {})

	assert.Equal(t, []string{"click", "input"}, n.ListenerTypes())
	assert.Len(t, n.Listeners("click"), 2)

	unregister := n.AddEventListener("x", nil)
	unregister()
	assert.False(t, n.HasListeners("x"))
}
