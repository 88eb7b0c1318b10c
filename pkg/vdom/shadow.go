package vdom

// ShadowMode is the attach mode of a nested tree.
type ShadowMode string

const (
	ShadowOpen   ShadowMode = "open"
	ShadowClosed ShadowMode = "closed"
)

// ShadowInit holds the options of AttachShadow.
type ShadowInit struct {
	// Mode defaults to ShadowOpen.
	Mode ShadowMode
}

// AttachShadow gives e a new, independent nested tree and returns it.
// Calling it again replaces the previous nested tree.
func (e *Element) AttachShadow(init ShadowInit) *Tree {
	mode := init.Mode
	if mode == "" {
		mode = ShadowOpen
	}
	t := NewTree()
	t.host = e
	e.shadow = t
	e.shadowMode = mode
	return t
}

// ShadowRoot returns the nested tree when it was attached in open mode,
// nil otherwise.
func (e *Element) ShadowRoot() *Tree {
	if e.shadowMode != ShadowOpen {
		return nil
	}
	return e.shadow
}

// NestedTree returns the nested tree and its mode regardless of the mode.
// It is meant for materializers.
func (e *Element) NestedTree() (*Tree, ShadowMode) {
	return e.shadow, e.shadowMode
}
