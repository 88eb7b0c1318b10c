package render

import (
	"bytes"
	"io"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLHost is a Host backed by golang.org/x/net/html nodes.
//
// Listeners registered on its nodes live in a side table and fire through
// Dispatch. Shadow roots become <template shadowrootmode> children.
type HTMLHost struct {
	wrappers  map[*html.Node]*HTMLNode
	listeners map[*html.Node]map[string][]func(any)
}

// NewHTMLHost creates an empty HTMLHost.
func NewHTMLHost() *HTMLHost {
	return &HTMLHost{
		wrappers:  make(map[*html.Node]*HTMLNode),
		listeners: make(map[*html.Node]map[string][]func(any)),
	}
}

// HTMLNode is the Native type of HTMLHost.
type HTMLNode struct {
	host *HTMLHost
	node *html.Node
}

var _ Native = (*HTMLNode)(nil)

// CreateElement implements Host.
func (h *HTMLHost) CreateElement(tag string) Native {
	return h.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// CreateDocumentFragment implements Host. The fragment renders as its
// children only.
func (h *HTMLHost) CreateDocumentFragment() Native {
	return h.wrap(&html.Node{Type: html.DocumentNode})
}

func (h *HTMLHost) wrap(n *html.Node) *HTMLNode {
	if n == nil {
		return nil
	}
	if w, ok := h.wrappers[n]; ok {
		return w
	}
	w := &HTMLNode{host: h, node: n}
	h.wrappers[n] = w
	return w
}

func (h *HTMLHost) unwrap(n Native) *html.Node {
	w, ok := n.(*HTMLNode)
	if !ok || w == nil {
		panic(errors.Errorf("render: %T is not an HTMLHost node", n))
	}
	if w.host != h {
		panic(errors.New("render: node belongs to another HTMLHost"))
	}
	return w.node
}

// Dispatch fires the listeners registered on n for typ and returns how many
// ran.
func (h *HTMLHost) Dispatch(n Native, typ string, detail any) int {
	fns := slices.Clone(h.listeners[h.unwrap(n)][typ])
	for _, fn := range fns {
		fn(detail)
	}
	return len(fns)
}

// Node returns the underlying html.Node.
func (n *HTMLNode) Node() *html.Node {
	return n.node
}

// GetAttribute implements Native.
func (n *HTMLNode) GetAttribute(name string) (string, bool) {
	for _, a := range n.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute implements Native.
func (n *HTMLNode) SetAttribute(name, value string) {
	for i, a := range n.node.Attr {
		if a.Namespace == "" && a.Key == name {
			n.node.Attr[i].Val = value
			return
		}
	}
	n.node.Attr = append(n.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute implements Native.
func (n *HTMLNode) RemoveAttribute(name string) {
	n.node.Attr = slices.DeleteFunc(n.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == name
	})
}

// AppendChild implements Native. A child that has a parent is moved.
func (n *HTMLNode) AppendChild(child Native) {
	c := n.host.unwrap(child)
	detach(c)
	n.node.AppendChild(c)
}

// InsertBefore implements Native. A nil or foreign ref appends.
func (n *HTMLNode) InsertBefore(child, ref Native) {
	c := n.host.unwrap(child)
	detach(c)
	if ref == nil {
		n.node.AppendChild(c)
		return
	}
	r := n.host.unwrap(ref)
	if r.Parent != n.node {
		n.node.AppendChild(c)
		return
	}
	n.node.InsertBefore(c, r)
}

// ReplaceChild implements Native.
func (n *HTMLNode) ReplaceChild(newChild, oldChild Native) {
	old := n.host.unwrap(oldChild)
	if old.Parent != n.node {
		return
	}
	nc := n.host.unwrap(newChild)
	if nc == old {
		return
	}
	detach(nc)
	n.node.InsertBefore(nc, old)
	n.node.RemoveChild(old)
}

// RemoveChild implements Native.
func (n *HTMLNode) RemoveChild(child Native) {
	c := n.host.unwrap(child)
	if c.Parent == n.node {
		n.node.RemoveChild(c)
	}
}

// Parent implements Native.
func (n *HTMLNode) Parent() Native {
	if n.node.Parent == nil {
		return nil
	}
	return n.host.wrap(n.node.Parent)
}

// SetText implements Native.
func (n *HTMLNode) SetText(text string) {
	n.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AddEventListener implements Native.
func (n *HTMLNode) AddEventListener(typ string, fn func(detail any)) {
	byType := n.host.listeners[n.node]
	if byType == nil {
		byType = make(map[string][]func(any))
		n.host.listeners[n.node] = byType
	}
	byType[typ] = append(byType[typ], fn)
}

// AttachShadow implements Native. The shadow root is a declarative
// <template shadowrootmode> element placed first among the children.
func (n *HTMLNode) AttachShadow(mode string) Native {
	tmpl := &html.Node{
		Type:     html.ElementNode,
		Data:     "template",
		DataAtom: atom.Template,
		Attr:     []html.Attribute{{Key: "shadowrootmode", Val: mode}},
	}
	if n.node.FirstChild != nil {
		n.node.InsertBefore(tmpl, n.node.FirstChild)
	} else {
		n.node.AppendChild(tmpl)
	}
	return n.host.wrap(tmpl)
}

func detach(c *html.Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
}

// Render writes n as HTML.
func Render(w io.Writer, n Native) error {
	hn, ok := n.(*HTMLNode)
	if !ok {
		return errors.Errorf("render: cannot render %T", n)
	}
	if err := html.Render(w, hn.node); err != nil {
		return errors.Wrap(err, "render html")
	}
	return nil
}

// RenderString renders n as an HTML string.
func RenderString(n Native) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
