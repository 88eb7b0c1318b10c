package vdom

import "slices"

// ChangeListener receives every mutation delivered to a Tree. current is the
// live element after the change. A non-nil error aborts delivery to later
// listeners and is returned from the mutating call. m.Snapshot() can only
// be built until the tree is mutated again; call it during delivery if the
// snapshot is needed later.
type ChangeListener func(current *Element, m *Mutation) error

// Tree is the root container of an element hierarchy.
//
// It owns the ordered top-level elements and an index of every element that
// has a parent. The two sets are disjoint.
type Tree struct {
	nextID    NodeID
	top       nodeSet
	desc      nodeSet
	listeners []ChangeListener

	// host is the element a nested tree is attached to.
	host *Element

	// version increments on every live mutation; records compare against
	// it to know whether they can still reconstruct their snapshot.
	version  uint64
	inflight []*Mutation
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// CreateElement creates a detached element bound to this tree.
func (t *Tree) CreateElement(tag string) *Element {
	t.nextID++
	return &Element{
		id:    t.nextID,
		tag:   tag,
		attrs: []Attr{{Name: "class"}},
		tree:  t,
	}
}

// Host returns the element this tree is attached to as a shadow, or nil.
func (t *Tree) Host() *Element {
	return t.host
}

// TopLevel returns the top-level elements in order.
func (t *Tree) TopLevel() []*Element {
	return t.top.elements()
}

// Descendants returns every indexed descendant of the tree.
func (t *Tree) Descendants() []*Element {
	return t.desc.elements()
}

// Len returns the number of indexed elements.
func (t *Tree) Len() int {
	return t.top.len() + t.desc.len()
}

// Contains reports whether e is indexed by this tree.
func (t *Tree) Contains(e *Element) bool {
	if e == nil || e.tree != t || e.snapshot {
		return false
	}
	return t.top.has(e) || t.desc.has(e)
}

// Lookup finds an indexed element by ID.
func (t *Tree) Lookup(id NodeID) *Element {
	if e := t.top.get(id); e != nil {
		return e
	}
	return t.desc.get(id)
}

// AppendChild adds n to the end of the top-level elements. Removed nodes
// are ignored. A node that is already placed elsewhere is moved. This does
// not notify listeners.
func (t *Tree) AppendChild(n *Element) error {
	if err := t.checkOwned(n); err != nil {
		return err
	}
	if n.removed {
		return nil
	}
	t.begin()
	t.detach(n)
	t.top.add(n)
	t.desc.remove(n)
	t.indexChildren(n)
	return nil
}

// InsertBefore inserts n into the top-level elements before ref. When ref
// is not top-level, n is inserted at the front.
func (t *Tree) InsertBefore(n, ref *Element) error {
	if err := t.checkOwned(n); err != nil {
		return err
	}
	if n.removed || n == ref {
		return nil
	}
	t.begin()
	t.detach(n)
	pos := 0
	if ref != nil {
		pos = max(0, t.top.index(ref))
	}
	t.top.insertAt(pos, n)
	t.desc.remove(n)
	t.indexChildren(n)
	return nil
}

// RemoveChild removes n from the tree and marks it removed. n may be
// top-level or an indexed descendant. This does not notify listeners; use
// Element.Remove for a notified removal.
func (t *Tree) RemoveChild(n *Element) error {
	if n == nil || (!t.top.has(n) && !t.desc.has(n)) || n.tree != t || n.snapshot {
		return newError(ErrNotFound.Code, "%s is not in the tree", n)
	}
	t.begin()
	if !t.top.remove(n) {
		t.detach(n)
	}
	t.unindex(n)
	n.removed = true
	return nil
}

// ReplaceChild puts newNode in oldNode's place, in the top-level elements
// or under oldNode's parent. oldNode is marked removed. Removed replacement
// nodes are ignored.
func (t *Tree) ReplaceChild(newNode, oldNode *Element) error {
	if err := t.checkOwned(newNode); err != nil {
		return err
	}
	if newNode.removed {
		return nil
	}
	if oldNode == nil || oldNode.tree != t || (!t.top.has(oldNode) && !t.desc.has(oldNode)) {
		return newError(ErrNotFound.Code, "%s is not in the tree", oldNode)
	}
	if newNode == oldNode {
		return nil
	}
	if p := oldNode.parent; p != nil && isInclusiveAncestor(newNode, p) {
		return newError(ErrHierarchyRequest.Code, "%s contains %s", newNode, p)
	}

	t.begin()
	t.detach(newNode)
	if t.top.replace(oldNode, newNode) {
		t.desc.remove(newNode)
		t.indexChildren(newNode)
	} else {
		p := oldNode.parent
		i := slices.Index(p.children, oldNode)
		p.children[i] = newNode
		newNode.parent = p
		t.desc.replace(oldNode, newNode)
		t.index(newNode)
	}
	oldNode.parent = nil
	t.unindex(oldNode)
	oldNode.removed = true
	return nil
}

// OnTreeChange registers a change listener. Listeners are called in
// registration order and cannot be unregistered.
func (t *Tree) OnTreeChange(fn ChangeListener) {
	t.listeners = append(t.listeners, fn)
}

// NotifyTreeChange delivers m to every registered listener, stopping at the
// first error.
func (t *Tree) NotifyTreeChange(current *Element, m *Mutation) error {
	t.inflight = append(t.inflight, m)
	defer func() {
		t.inflight = t.inflight[:len(t.inflight)-1]
	}()
	for _, fn := range t.listeners {
		if err := fn(current, m); err != nil {
			return err
		}
	}
	return nil
}

// begin prepares the tree for a live mutation. Records still being
// delivered capture their snapshot first so re-entrant mutations do not
// change what they report.
func (t *Tree) begin() {
	for _, m := range t.inflight {
		m.Snapshot()
	}
	t.version++
}

func (t *Tree) checkOwned(n *Element) error {
	if n == nil {
		return newError(ErrNotFound.Code, "nil node")
	}
	if n.tree != t || n.snapshot {
		return newError(ErrForeignNode.Code, "%s", n)
	}
	return nil
}

// detach takes n out of its current position, either its parent's children
// or the top-level elements. Index membership of n is left to the caller.
func (t *Tree) detach(n *Element) (prevParent *Element, prevIndex int) {
	if p := n.parent; p != nil {
		i := slices.Index(p.children, n)
		if i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		n.parent = nil
		return p, i
	}
	t.top.remove(n)
	return nil, -1
}

// index adds n and its subtree to the descendant index.
func (t *Tree) index(n *Element) {
	t.desc.add(n)
	t.indexChildren(n)
}

func (t *Tree) indexChildren(n *Element) {
	for _, c := range n.children {
		t.index(c)
	}
}

// unindex drops n and its subtree from the descendant index.
func (t *Tree) unindex(n *Element) {
	t.desc.remove(n)
	for _, c := range n.children {
		t.unindex(c)
	}
}

// isInclusiveAncestor reports whether a is b or one of b's ancestors.
func isInclusiveAncestor(a, b *Element) bool {
	for n := b; n != nil; n = n.parent {
		if n == a {
			return true
		}
	}
	return false
}
