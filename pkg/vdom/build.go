package vdom

import (
	"fmt"
	"strings"
)

// Node describes an element subtree to be realized by Tree.Build.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
	Events   []EventBinding
	Shadow   *ShadowSpec
}

// EventBinding pairs an event type with a callback.
type EventBinding struct {
	Type string
	Fn   func(*Event)
}

// ShadowSpec describes a nested tree attached to the built element.
type ShadowSpec struct {
	Mode     ShadowMode
	Children []*Node
}

// textArg is text content for a factory.
type textArg string

// H creates a Node with the given tag.
// Arguments can be: nil, Attr, []Attr, *Node, []*Node, string (text),
// EventBinding, *ShadowSpec.
func H(tag string, args ...any) *Node {
	n := &Node{Tag: tag}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// allows conditional arguments
			continue
		case Attr:
			if v.Name != "" {
				n.setAttr(v)
			}
		case []Attr:
			for _, a := range v {
				if a.Name != "" {
					n.setAttr(a)
				}
			}
		case *Node:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					n.Children = append(n.Children, c)
				}
			}
		case string:
			n.Text += v
		case textArg:
			n.Text += string(v)
		case EventBinding:
			n.Events = append(n.Events, v)
		case *ShadowSpec:
			n.Shadow = v
		default:
			panic(fmt.Sprintf("vdom.H: unsupported argument %T", arg))
		}
	}
	return n
}

func (n *Node) setAttr(a Attr) {
	if a.Name == "class" {
		for i := range n.Attrs {
			if n.Attrs[i].Name == "class" {
				n.Attrs[i].Value = strings.TrimSpace(n.Attrs[i].Value + " " + a.Value)
				return
			}
		}
	}
	for i := range n.Attrs {
		if n.Attrs[i].Name == a.Name {
			n.Attrs[i].Value = a.Value
			return
		}
	}
	n.Attrs = append(n.Attrs, a)
}

// Build realizes n as a detached element subtree of t. Construction does
// not notify listeners; attaching the result does.
func (t *Tree) Build(n *Node) *Element {
	e := t.CreateElement(n.Tag)
	for _, a := range n.Attrs {
		e.setAttr(a.Name, a.Value)
	}
	e.text = n.Text
	for _, b := range n.Events {
		e.AddEventListener(b.Type, Listen(b.Fn))
	}
	for _, cn := range n.Children {
		c := t.Build(cn)
		e.children = append(e.children, c)
		c.parent = e
		t.desc.add(c)
	}
	if n.Shadow != nil {
		st := e.AttachShadow(ShadowInit{Mode: n.Shadow.Mode})
		st.Mount(n.Shadow.Children...)
	}
	return e
}

// Mount builds each node and appends it to the top-level elements.
func (t *Tree) Mount(nodes ...*Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		e := t.Build(n)
		// e is fresh and owned by t, so AppendChild cannot fail.
		_ = t.AppendChild(e)
		out = append(out, e)
	}
	return out
}

// Attributes

// A creates an attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class adds class tokens. Repeated Class arguments accumulate.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return A("style", style) }

// Data sets a data-* attribute. key is kebab-case without the prefix.
func Data(key, value string) Attr { return A(dataPrefix+key, value) }

// Role sets the ARIA role.
func Role(role string) Attr { return A("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return A("aria-label", label) }

// Href sets href.
func Href(url string) Attr { return A("href", url) }

// Type sets the type attribute.
func Type(typ string) Attr { return A("type", typ) }

// Name sets the name attribute.
func Name(name string) Attr { return A("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return A("value", value) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return A("placeholder", text) }

// Hidden marks the element hidden.
func Hidden() Attr { return A("hidden", "hidden") }

// Disabled marks the element disabled.
func Disabled() Attr { return A("disabled", "disabled") }

// Text content

// Text creates text content.
func Text(content string) any { return textArg(content) }

// Textf creates formatted text content.
func Textf(format string, args ...any) any { return textArg(fmt.Sprintf(format, args...)) }

// Events

// On binds fn to an event type.
func On(typ string, fn func(*Event)) EventBinding { return EventBinding{Type: typ, Fn: fn} }

// OnClick handles click events.
func OnClick(fn func(*Event)) EventBinding { return On("click", fn) }

// OnInput handles input events.
func OnInput(fn func(*Event)) EventBinding { return On("input", fn) }

// OnChange handles change events.
func OnChange(fn func(*Event)) EventBinding { return On("change", fn) }

// OnSubmit handles submit events.
func OnSubmit(fn func(*Event)) EventBinding { return On("submit", fn) }

// Shadow

// Shadow attaches a nested tree holding children.
func Shadow(mode ShadowMode, children ...*Node) *ShadowSpec {
	return &ShadowSpec{Mode: mode, Children: children}
}

// Helpers

// If returns node when cond is true and nil otherwise.
func If(cond bool, node *Node) *Node {
	if cond {
		return node
	}
	return nil
}

// IfElse returns ifTrue when cond is true and ifFalse otherwise.
func IfElse(cond bool, ifTrue, ifFalse *Node) *Node {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	out := make([]*Node, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Repeat creates n nodes.
func Repeat(n int, fn func(i int) *Node) []*Node {
	if n <= 0 {
		return nil
	}
	out := make([]*Node, 0, n)
	for i := range n {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Elements

func Div(args ...any) *Node      { return H("div", args...) }
func Span(args ...any) *Node     { return H("span", args...) }
func P(args ...any) *Node        { return H("p", args...) }
func H1(args ...any) *Node       { return H("h1", args...) }
func H2(args ...any) *Node       { return H("h2", args...) }
func Section(args ...any) *Node  { return H("section", args...) }
func Article(args ...any) *Node  { return H("article", args...) }
func Header(args ...any) *Node   { return H("header", args...) }
func Footer(args ...any) *Node   { return H("footer", args...) }
func Nav(args ...any) *Node      { return H("nav", args...) }
func Main(args ...any) *Node     { return H("main", args...) }
func Ul(args ...any) *Node       { return H("ul", args...) }
func Ol(args ...any) *Node       { return H("ol", args...) }
func Li(args ...any) *Node       { return H("li", args...) }
func Anchor(args ...any) *Node   { return H("a", args...) }
func Button(args ...any) *Node   { return H("button", args...) }
func Form(args ...any) *Node     { return H("form", args...) }
func Input(args ...any) *Node    { return H("input", args...) }
func Label(args ...any) *Node    { return H("label", args...) }
func Textarea(args ...any) *Node { return H("textarea", args...) }
func Img(args ...any) *Node      { return H("img", args...) }
func B(args ...any) *Node        { return H("b", args...) }
func Em(args ...any) *Node       { return H("em", args...) }
