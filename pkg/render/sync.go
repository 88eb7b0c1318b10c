package render

import (
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Sync keeps a materialized fragment in step with its tree.
//
// Removed elements are detached from their native parent. Any other change
// re-materializes the changed element and replaces its previous native
// node. Siblings inserted at the top level rebuild the fragment.
// Top-level insertions made through Tree methods do not notify; call
// Refresh after them.
type Sync struct {
	m     *Materializer
	tree  *vdom.Tree
	root  Native
	top   []Native
	nodes map[vdom.NodeID]Native
}

// NewSync materializes t with m and subscribes to its changes.
func NewSync(m *Materializer, t *vdom.Tree) *Sync {
	s := &Sync{tree: t, nodes: make(map[vdom.NodeID]Native)}
	tracked := *m
	tracked.onRealize = s.track
	s.m = &tracked
	s.root = m.host.CreateDocumentFragment()
	s.Refresh()
	t.OnTreeChange(s.apply)
	return s
}

// Root returns the synchronized fragment.
func (s *Sync) Root() Native {
	return s.root
}

// Native returns the native node currently realizing the element with id.
func (s *Sync) Native(id vdom.NodeID) Native {
	return s.nodes[id]
}

// Refresh rebuilds the fragment contents from the tree's top-level
// elements.
func (s *Sync) Refresh() {
	for _, n := range s.top {
		s.root.RemoveChild(n)
	}
	s.top = s.top[:0]
	clear(s.nodes)
	for _, e := range s.tree.TopLevel() {
		n := s.m.ToNativeElement(e, s.m.opts.ConvertShadow)
		s.root.AppendChild(n)
		s.top = append(s.top, n)
	}
}

func (s *Sync) track(e *vdom.Element, n Native) {
	if e.ParentDocument() == s.tree {
		s.nodes[e.NodeID()] = n
	}
}

func (s *Sync) apply(current *vdom.Element, m *vdom.Mutation) error {
	if current.Removed() {
		if n := s.nodes[current.NodeID()]; n != nil {
			if p := n.Parent(); p != nil {
				p.RemoveChild(n)
			}
			delete(s.nodes, current.NodeID())
		}
		return nil
	}
	if m.Kind == vdom.MutationSiblingInserted {
		if m.Parent == nil {
			s.Refresh()
			return nil
		}
		s.replace(m.Parent)
		return nil
	}
	s.replace(current)
	return nil
}

// replace re-materializes e in place of its previous native node.
func (s *Sync) replace(e *vdom.Element) {
	old := s.nodes[e.NodeID()]
	if old == nil {
		return
	}
	p := old.Parent()
	if p == nil {
		return
	}
	fresh := s.m.ToNativeElement(e, s.m.opts.ConvertShadow)
	p.ReplaceChild(fresh, old)
	for i, n := range s.top {
		if n == old {
			s.top[i] = fresh
		}
	}
}
