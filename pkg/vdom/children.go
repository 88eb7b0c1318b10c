package vdom

import "slices"

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// FirstChild returns the first child, or nil.
func (e *Element) FirstChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// LastChild returns the last child, or nil.
func (e *Element) LastChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[len(e.children)-1]
}

// NextSibling returns the element after e among its parent's children, or
// among the tree's top-level elements when e is top-level.
func (e *Element) NextSibling() *Element {
	list := e.siblings()
	if i := slices.Index(list, e); i >= 0 && i+1 < len(list) {
		return list[i+1]
	}
	return nil
}

// PreviousSibling returns the element before e, see NextSibling.
func (e *Element) PreviousSibling() *Element {
	list := e.siblings()
	if i := slices.Index(list, e); i > 0 {
		return list[i-1]
	}
	return nil
}

func (e *Element) siblings() []*Element {
	if e.parent != nil {
		return e.parent.children
	}
	if !e.snapshot && e.tree.top.has(e) {
		return e.tree.top.order
	}
	return nil
}

// AppendChild adds child to the end of e's children. A child that is
// placed elsewhere is moved; a removed child is ignored.
func (e *Element) AppendChild(child *Element) error {
	if err := e.checkInsert(child, e); err != nil {
		return err
	}
	if child.removed {
		return nil
	}
	t := e.tree
	t.begin()
	prevParent, prevIndex := t.detach(child)
	e.children = append(e.children, child)
	child.parent = e
	t.index(child)
	return e.notify(&Mutation{
		Kind:       MutationChildAdded,
		Target:     e,
		Child:      child,
		Index:      len(e.children) - 1,
		prevParent: prevParent,
		prevIndex:  prevIndex,
	})
}

// ReplaceChild puts newChild in oldChild's position. oldChild must be a
// child of e; it is marked removed.
func (e *Element) ReplaceChild(newChild, oldChild *Element) error {
	if err := e.checkInsert(newChild, e); err != nil {
		return err
	}
	if oldChild == nil || oldChild.parent != e || !slices.Contains(e.children, oldChild) {
		return newError(ErrNotFound.Code, "%s is not a child of %s", oldChild, e)
	}
	if newChild.removed || newChild == oldChild {
		return nil
	}
	t := e.tree
	t.begin()
	prevParent, prevIndex := t.detach(newChild)
	i := slices.Index(e.children, oldChild)
	e.children[i] = newChild
	newChild.parent = e
	oldChild.parent = nil
	oldChild.removed = true
	if !t.desc.replace(oldChild, newChild) {
		t.desc.add(newChild)
	}
	t.unindex(oldChild)
	t.index(newChild)
	return e.notify(&Mutation{
		Kind:       MutationChildReplaced,
		Target:     e,
		Child:      newChild,
		OldChild:   oldChild,
		Index:      i,
		prevParent: prevParent,
		prevIndex:  prevIndex,
	})
}

// RemoveChild removes child from e's children and marks it removed.
func (e *Element) RemoveChild(child *Element) error {
	if e.snapshot {
		return newError(ErrForeignNode.Code, "%s is a copy", e)
	}
	if child == nil || child.parent != e {
		return newError(ErrNotFound.Code, "%s is not a child of %s", child, e)
	}
	i := slices.Index(e.children, child)
	if i < 0 {
		return newError(ErrNotFound.Code, "%s is not a child of %s", child, e)
	}
	t := e.tree
	t.begin()
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.removed = true
	t.unindex(child)
	return e.notify(&Mutation{Kind: MutationChildRemoved, Target: e, Child: child, Index: i})
}

// Prepend inserts node immediately before e, among the top-level elements
// when e is top-level or among its parent's children otherwise.
func (e *Element) Prepend(node *Element) error {
	if err := e.checkInsert(node, e.parent); err != nil {
		return err
	}
	t := e.tree
	if e.parent == nil && !t.top.has(e) {
		return newError(ErrNoParent.Code, "%s", e)
	}
	if node.removed || node == e {
		return nil
	}
	t.begin()
	prevParent, prevIndex := t.detach(node)
	m := &Mutation{
		Kind:       MutationSiblingInserted,
		Target:     e,
		Child:      node,
		prevParent: prevParent,
		prevIndex:  prevIndex,
	}
	if p := e.parent; p != nil {
		i := slices.Index(p.children, e)
		p.children = slices.Insert(p.children, i, node)
		node.parent = p
		t.desc.insertBefore(node, e)
		t.indexChildren(node)
		m.Parent, m.Index = p, i
	} else {
		m.Index = t.top.index(e)
		t.top.insertAt(m.Index, node)
		t.desc.remove(node)
		t.indexChildren(node)
	}
	return e.notify(m)
}

// Remove takes e out of its tree position and marks it removed. A detached
// element is only marked. Exactly one notification is delivered, for e.
func (e *Element) Remove() error {
	if e.snapshot {
		e.removed = true
		return nil
	}
	t := e.tree
	t.begin()
	m := &Mutation{Kind: MutationRemoved, Target: e, Index: -1, wasRemoved: e.removed}
	switch {
	case t.top.has(e):
		m.Index = t.top.index(e)
		t.top.remove(e)
	case e.parent != nil:
		m.Parent = e.parent
		_, m.Index = t.detach(e)
	}
	t.unindex(e)
	e.removed = true
	return e.notify(m)
}

// SetFirstChild replaces the first child with c, or appends c when e has
// no children.
func (e *Element) SetFirstChild(c *Element) error {
	if len(e.children) == 0 {
		return e.AppendChild(c)
	}
	return e.ReplaceChild(c, e.children[0])
}

// SetLastChild replaces the last child with c, or appends c when e has no
// children.
func (e *Element) SetLastChild(c *Element) error {
	if len(e.children) == 0 {
		return e.AppendChild(c)
	}
	return e.ReplaceChild(c, e.children[len(e.children)-1])
}

// checkInsert validates n for insertion under parent.
func (e *Element) checkInsert(n, parent *Element) error {
	if n == nil {
		return newError(ErrNotFound.Code, "nil node")
	}
	if e.snapshot || n.snapshot {
		return newError(ErrForeignNode.Code, "%s is a copy", n)
	}
	if n.tree != e.tree {
		return newError(ErrForeignNode.Code, "%s belongs to another tree", n)
	}
	if parent != nil && isInclusiveAncestor(n, parent) {
		return newError(ErrHierarchyRequest.Code, "%s contains %s", n, parent)
	}
	return nil
}
