// Package vdom provides an in-memory element tree that behaves like a small
// document object model.
//
// Code builds and mutates a hierarchy of Elements owned by a Tree without a
// real document host, then hands the hierarchy to a materializer (see
// package render) once a host is available.
//
// # Core Types
//
// Tree is the root container. It owns its top-level Elements and a flat
// index of every attached descendant, hands out stable NodeIDs and routes
// change notifications. Element is the tree unit: a tag name, ordered
// attributes, children, a flat text payload, event listeners and an
// optional nested Tree (shadow).
//
// # Change Notification
//
// Every mutating Element method reports exactly one Mutation to the owning
// Tree's ChangeListeners before it returns:
//
//	tree.OnTreeChange(func(current *vdom.Element, m *vdom.Mutation) error {
//	    before := m.Snapshot() // pre-mutation deep copy
//	    ...
//	    return nil
//	})
//
// Snapshots are reconstructed on demand by undoing the record against a
// copy of the current node, so mutations that nobody inspects never pay
// for a deep clone.
//
// # Building
//
// Declarative factories describe a subtree that Tree.Build realizes:
//
//	card := tree.Build(vdom.Div(vdom.Class("card"), vdom.ID("main"),
//	    vdom.H1(vdom.Text("Title")),
//	    vdom.Button(vdom.Text("Go"), vdom.OnClick(handler)),
//	))
//
// # Threading
//
// A Tree and its Elements are not safe for concurrent use. Notifications
// are delivered synchronously on the mutating goroutine; listeners that
// mutate the tree re-enter the notification path.
package vdom
