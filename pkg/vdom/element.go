package vdom

import (
	"fmt"
	"slices"
	"strings"
)

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of a Tree.
//
// Elements are created by Tree.CreateElement and stay bound to that tree.
// An element is in exactly one of three states: top-level in its tree,
// attached under one parent, or neither (detached or removed).
type Element struct {
	id    NodeID
	tag   string
	attrs []Attr
	text  string

	children []*Element
	parent   *Element
	tree     *Tree
	removed  bool

	events     map[string][]*Listener
	shadow     *Tree
	shadowMode ShadowMode

	// snapshot marks copies made by CloneNode. They are never indexed and
	// never notify.
	snapshot bool
}

// NodeID returns the element's identifier within its tree. Copies made by
// CloneNode share the identifier of their source.
func (e *Element) NodeID() NodeID {
	return e.id
}

// TagName returns the tag the element was created with.
func (e *Element) TagName() string {
	return e.tag
}

// ParentDocument returns the tree the element belongs to.
func (e *Element) ParentDocument() *Tree {
	return e.tree
}

// Parent returns the parent element, or nil for top-level and detached
// elements.
func (e *Element) Parent() *Element {
	return e.parent
}

// Removed reports whether the element has been removed.
func (e *Element) Removed() bool {
	return e.removed
}

// IsConnected reports whether the element has not been removed.
func (e *Element) IsConnected() bool {
	return !e.removed
}

// IsSnapshot reports whether e is a copy made by CloneNode.
func (e *Element) IsSnapshot() bool {
	return e.snapshot
}

// String returns a short description such as "div#4".
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", e.tag, e.id)
}

// Attributes

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.LookupAttribute(name)
	return v
}

// LookupAttribute returns the attribute value and whether it is present.
func (e *Element) LookupAttribute(name string) (string, bool) {
	if i := e.attrIndex(name); i >= 0 {
		return e.attrs[i].Value, true
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.attrIndex(name) >= 0
}

// Attributes returns a copy of the attributes in insertion order.
func (e *Element) Attributes() []Attr {
	return slices.Clone(e.attrs)
}

// SetAttribute sets an attribute. Names and values are not validated.
func (e *Element) SetAttribute(name, value string) error {
	if e.snapshot {
		e.setAttr(name, value)
		return nil
	}
	e.tree.begin()
	m := &Mutation{Kind: MutationAttribute, Target: e, Name: name, Value: value}
	if i := e.attrIndex(name); i >= 0 {
		m.OldValue, m.HadOldValue, m.Index = e.attrs[i].Value, true, i
	} else {
		m.Index = len(e.attrs)
	}
	e.setAttr(name, value)
	return e.notify(m)
}

// RemoveAttribute removes an attribute. The class attribute is never
// removed; it is reset to "".
func (e *Element) RemoveAttribute(name string) error {
	if e.snapshot {
		e.removeAttr(name)
		return nil
	}
	e.tree.begin()
	m := &Mutation{Kind: MutationAttribute, Target: e, Name: name, Index: -1}
	if i := e.attrIndex(name); i >= 0 {
		m.OldValue, m.HadOldValue, m.Index = e.attrs[i].Value, true, i
	}
	e.removeAttr(name)
	if name == "class" {
		m.Value = ""
	}
	return e.notify(m)
}

func (e *Element) attrIndex(name string) int {
	return slices.IndexFunc(e.attrs, func(a Attr) bool { return a.Name == name })
}

func (e *Element) setAttr(name, value string) {
	if i := e.attrIndex(name); i >= 0 {
		e.attrs[i].Value = value
		return
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

func (e *Element) removeAttr(name string) {
	if name == "class" {
		e.setAttr("class", "")
		return
	}
	if i := e.attrIndex(name); i >= 0 {
		e.attrs = slices.Delete(e.attrs, i, i+1)
	}
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) error {
	return e.SetAttribute("id", id)
}

// ClassName returns the raw class attribute.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(class string) error {
	return e.SetAttribute("class", class)
}

// Text

// TextContent returns the element's text payload. Text of children is not
// included.
func (e *Element) TextContent() string {
	return e.text
}

// InnerText is an alias of TextContent.
func (e *Element) InnerText() string {
	return e.text
}

// SetTextContent replaces the text payload.
func (e *Element) SetTextContent(text string) error {
	if e.snapshot {
		e.text = text
		return nil
	}
	e.tree.begin()
	m := &Mutation{Kind: MutationText, Target: e, OldValue: e.text, HadOldValue: true, Value: text}
	e.text = text
	return e.notify(m)
}

// SetInnerText is an alias of SetTextContent.
func (e *Element) SetInnerText(text string) error {
	return e.SetTextContent(text)
}

// Cloning

// CloneNode returns a copy of e with the same tag, attributes, text and
// parent reference. With deep set, children are copied too; copied
// children keep pointing at their original parent. Copies share NodeIDs
// with their sources, are never indexed, never notify, and carry neither
// listeners nor a nested tree. Copies cannot be inserted into a tree.
func (e *Element) CloneNode(deep bool) *Element {
	return e.clone(deep)
}

func (e *Element) clone(deep bool) *Element {
	c := &Element{
		id:       e.id,
		tag:      e.tag,
		attrs:    slices.Clone(e.attrs),
		text:     e.text,
		parent:   e.parent,
		tree:     e.tree,
		snapshot: true,
	}
	if deep && len(e.children) > 0 {
		c.children = make([]*Element, len(e.children))
		for i, ch := range e.children {
			c.children[i] = ch.clone(true)
		}
	}
	return c
}

// cloneUnder deep-copies e as it would look attached under p.
func (e *Element) cloneUnder(p *Element) *Element {
	c := e.clone(true)
	c.parent = p
	return c
}

// findByID searches e and its subtree.
func (e *Element) findByID(id NodeID) *Element {
	if e.id == id {
		return e
	}
	for _, c := range e.children {
		if f := c.findByID(id); f != nil {
			return f
		}
	}
	return nil
}

func (e *Element) notify(m *Mutation) error {
	m.version = e.tree.version
	return e.tree.NotifyTreeChange(e, m)
}

// If removes e when cond is false.
func (e *Element) If(cond bool) error {
	if cond {
		return nil
	}
	return e.Remove()
}

// describe renders e as "tag#id.class" for dumps.
func (e *Element) describe() string {
	var b strings.Builder
	b.WriteString(e.tag)
	if id := e.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(e.ClassName()) {
		b.WriteString("." + c)
	}
	return b.String()
}
