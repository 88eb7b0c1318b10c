package vdom

import "slices"

// NodeID identifies an Element within its Tree. IDs are handed out in
// creation order and never reused.
type NodeID uint64

// nodeSet is an ordered, duplicate-free index over a tree's elements.
type nodeSet struct {
	order   []*Element
	members map[NodeID]*Element
}

func (s *nodeSet) has(e *Element) bool {
	return s.members[e.id] == e
}

func (s *nodeSet) get(id NodeID) *Element {
	return s.members[id]
}

func (s *nodeSet) index(e *Element) int {
	if !s.has(e) {
		return -1
	}
	return slices.Index(s.order, e)
}

func (s *nodeSet) add(e *Element) {
	if s.has(e) {
		return
	}
	if s.members == nil {
		s.members = make(map[NodeID]*Element)
	}
	s.members[e.id] = e
	s.order = append(s.order, e)
}

// insertAt places e at position i, clamped to the set bounds.
func (s *nodeSet) insertAt(i int, e *Element) {
	s.remove(e)
	if s.members == nil {
		s.members = make(map[NodeID]*Element)
	}
	i = max(0, min(i, len(s.order)))
	s.members[e.id] = e
	s.order = slices.Insert(s.order, i, e)
}

// insertBefore places e before ref, or appends when ref is not a member.
func (s *nodeSet) insertBefore(e, ref *Element) {
	s.remove(e)
	i := s.index(ref)
	if i < 0 {
		s.add(e)
		return
	}
	s.insertAt(i, e)
}

// replace puts e into old's slot. It reports whether old was a member.
func (s *nodeSet) replace(old, e *Element) bool {
	if !s.has(old) {
		return false
	}
	s.remove(e)
	i := slices.Index(s.order, old)
	s.order[i] = e
	delete(s.members, old.id)
	s.members[e.id] = e
	return true
}

func (s *nodeSet) remove(e *Element) bool {
	if !s.has(e) {
		return false
	}
	delete(s.members, e.id)
	s.order = slices.DeleteFunc(s.order, func(x *Element) bool { return x == e })
	return true
}

func (s *nodeSet) len() int {
	return len(s.order)
}

// elements returns a copy of the set in order.
func (s *nodeSet) elements() []*Element {
	return slices.Clone(s.order)
}
