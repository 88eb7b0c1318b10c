package server

import (
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// observe is the tree change listener. It runs inside the mutating call,
// so the records it builds describe the tree at that moment; later records
// in the same batch supersede them on the client.
func (s *Server) observe(current *vdom.Element, m *vdom.Mutation) error {
	s.metrics.mutations.WithLabelValues(m.Kind.String()).Inc()
	s.pending = append(s.pending, s.translate(current, m)...)
	return nil
}

// translate converts one mutation into client records.
func (s *Server) translate(current *vdom.Element, m *vdom.Mutation) []protocol.Record {
	id := uint64(current.NodeID())

	switch m.Kind {
	case vdom.MutationRemoved:
		return []protocol.Record{{Op: protocol.OpRemoveNode, NodeID: id}}

	case vdom.MutationAttribute:
		if v, ok := current.LookupAttribute(m.Name); ok && v != "" {
			return []protocol.Record{{Op: protocol.OpSetAttr, NodeID: id, Key: m.Name, Value: v}}
		}
		return []protocol.Record{{Op: protocol.OpRemoveAttr, NodeID: id, Key: m.Name}}

	case vdom.MutationText:
		// Text is rendered after the children and the shadow root; setting
		// textContent on the client would drop both.
		if nested, _ := current.NestedTree(); current.ChildCount() == 0 && nested == nil {
			return []protocol.Record{{Op: protocol.OpSetText, NodeID: id, Value: current.TextContent()}}
		}
		return []protocol.Record{s.replaceRecord(current)}

	case vdom.MutationChildAdded:
		return []protocol.Record{s.insertRecord(current, m.Index, m.Child)}

	case vdom.MutationChildRemoved:
		return []protocol.Record{{Op: protocol.OpRemoveNode, NodeID: uint64(m.Child.NodeID())}}

	case vdom.MutationChildReplaced:
		return []protocol.Record{
			{Op: protocol.OpRemoveNode, NodeID: uint64(m.Child.NodeID())},
			{Op: protocol.OpReplaceNode, NodeID: uint64(m.OldChild.NodeID()), HTML: s.renderElement(m.Child)},
		}

	case vdom.MutationSiblingInserted:
		return []protocol.Record{s.insertRecord(m.Parent, m.Index, m.Child)}
	}
	return nil
}

// insertRecord inserts child at index under parent; a nil parent is the
// document root.
func (s *Server) insertRecord(parent *vdom.Element, index int, child *vdom.Element) protocol.Record {
	r := protocol.Record{
		Op:     protocol.OpInsertNode,
		Index:  index,
		NodeID: uint64(child.NodeID()),
		HTML:   s.renderElement(child),
	}
	if parent != nil {
		r.ParentID = uint64(parent.NodeID())
	}
	return r
}

func (s *Server) replaceRecord(e *vdom.Element) protocol.Record {
	return protocol.Record{Op: protocol.OpReplaceNode, NodeID: uint64(e.NodeID()), HTML: s.renderElement(e)}
}
