package vdom

import "slices"

// MutationKind identifies the kind of change a Mutation describes.
type MutationKind uint8

const (
	MutationAttribute       MutationKind = iota // attribute set or removed
	MutationText                                // text payload replaced
	MutationChildAdded                          // child appended
	MutationChildRemoved                        // child removed
	MutationChildReplaced                       // child swapped in place
	MutationSiblingInserted                     // node inserted before the target
	MutationRemoved                             // target removed from its position
)

// String returns the kind name.
func (k MutationKind) String() string {
	switch k {
	case MutationAttribute:
		return "Attribute"
	case MutationText:
		return "Text"
	case MutationChildAdded:
		return "ChildAdded"
	case MutationChildRemoved:
		return "ChildRemoved"
	case MutationChildReplaced:
		return "ChildReplaced"
	case MutationSiblingInserted:
		return "SiblingInserted"
	case MutationRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Mutation records a single change applied to Target.
//
// Which payload fields are set depends on Kind:
//
//	Attribute        Name, OldValue, HadOldValue, Value, Index (attribute position)
//	Text             OldValue, Value
//	ChildAdded       Child, Index (position after insertion)
//	ChildRemoved     Child, Index (former position)
//	ChildReplaced    Child, OldChild, Index
//	SiblingInserted  Child, Parent (nil at top level), Index
//	Removed          Parent (nil at top level or when detached), Index (-1 when detached)
type Mutation struct {
	Kind   MutationKind
	Target *Element

	Name        string
	OldValue    string
	HadOldValue bool
	Value       string

	Child    *Element
	OldChild *Element
	Parent   *Element
	Index    int

	// Where Child was before it moved here; prevIndex is -1 when it had no
	// parent.
	prevParent *Element
	prevIndex  int

	wasRemoved bool
	version    uint64
	snapshot   *Element
}

// Snapshot returns a deep copy of Target as it was before the mutation.
//
// The copy is built on first use and memoized. It can be built while the
// mutation is being delivered and until the tree is mutated again; after
// that an uninspected record returns nil.
func (m *Mutation) Snapshot() *Element {
	if m.snapshot != nil || m.Target == nil {
		return m.snapshot
	}
	if m.Target.tree.version == m.version {
		m.snapshot = m.reconstruct()
	}
	return m.snapshot
}

// reconstruct copies the current target and undoes the record on the copy.
func (m *Mutation) reconstruct() *Element {
	c := m.Target.clone(true)
	c.removed = m.Target.removed

	switch m.Kind {
	case MutationAttribute:
		i := c.attrIndex(m.Name)
		switch {
		case !m.HadOldValue:
			if i >= 0 {
				c.attrs = slices.Delete(c.attrs, i, i+1)
			}
		case i >= 0:
			c.attrs[i].Value = m.OldValue
		default:
			pos := max(0, min(m.Index, len(c.attrs)))
			c.attrs = slices.Insert(c.attrs, pos, Attr{Name: m.Name, Value: m.OldValue})
		}

	case MutationText:
		c.text = m.OldValue

	case MutationChildAdded:
		c.children = deleteByID(c.children, m.Child.id)

	case MutationChildRemoved:
		c.children = insertClamped(c.children, m.Index, m.Child.cloneUnder(m.Target))

	case MutationChildReplaced:
		if i := slices.IndexFunc(c.children, func(x *Element) bool { return x.id == m.Child.id }); i >= 0 {
			c.children[i] = m.OldChild.cloneUnder(m.Target)
		}

	case MutationRemoved:
		c.parent = m.Parent
		c.removed = m.wasRemoved
	}

	if m.prevParent != nil && m.prevIndex >= 0 {
		if p := c.findByID(m.prevParent.id); p != nil {
			p.children = insertClamped(p.children, m.prevIndex, m.Child.cloneUnder(m.prevParent))
		}
	}
	return c
}

func deleteByID(list []*Element, id NodeID) []*Element {
	return slices.DeleteFunc(list, func(x *Element) bool { return x.id == id })
}

func insertClamped(list []*Element, i int, e *Element) []*Element {
	return slices.Insert(list, max(0, min(i, len(list))), e)
}
