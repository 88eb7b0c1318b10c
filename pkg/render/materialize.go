package render

import (
	"strconv"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Options configures a Materializer.
type Options struct {
	// ConvertShadow attaches nested trees as native shadow roots when
	// realizing a whole tree.
	ConvertShadow bool

	// IDAttribute, when set, stamps every native element with the NodeID
	// of its source element (e.g. "data-vid").
	IDAttribute string

	// FlattenShadowDescendants also realizes the descendant index of a
	// nested tree directly under its shadow root.
	FlattenShadowDescendants bool
}

// Materializer turns vdom elements into host nodes.
type Materializer struct {
	host Host
	opts Options

	// onRealize observes each realized element.
	onRealize func(e *vdom.Element, n Native)
}

// NewMaterializer creates a Materializer for host.
func NewMaterializer(host Host, opts Options) *Materializer {
	return &Materializer{host: host, opts: opts}
}

// Host returns the host the materializer creates nodes with.
func (m *Materializer) Host() Host {
	return m.host
}

// Options returns the materializer options.
func (m *Materializer) Options() Options {
	return m.opts
}

// ToDocumentFragment realizes the top-level elements of t, in order, into a
// new document fragment.
func (m *Materializer) ToDocumentFragment(t *vdom.Tree) Native {
	frag := m.host.CreateDocumentFragment()
	for _, e := range t.TopLevel() {
		frag.AppendChild(m.ToNativeElement(e, m.opts.ConvertShadow))
	}
	return frag
}

// ToNativeElement realizes e and its subtree. Elements realized inside a
// shadow root never convert further shadows.
func (m *Materializer) ToNativeElement(e *vdom.Element, convertShadow bool) Native {
	n := m.host.CreateElement(e.TagName())
	for _, a := range e.Attributes() {
		if a.Value != "" {
			n.SetAttribute(a.Name, a.Value)
		}
	}
	if v, ok := n.GetAttribute("class"); ok && v == "" {
		n.RemoveAttribute("class")
	}
	if m.opts.IDAttribute != "" {
		n.SetAttribute(m.opts.IDAttribute, strconv.FormatUint(uint64(e.NodeID()), 10))
	}

	for _, typ := range e.ListenerTypes() {
		typ, listeners := typ, e.Listeners(typ)
		n.AddEventListener(typ, func(detail any) {
			vdom.Deliver(e, vdom.HostEvent(typ, detail), listeners)
		})
	}

	if nested, mode := e.NestedTree(); convertShadow && nested != nil {
		root := n.AttachShadow(string(mode))
		for _, c := range nested.TopLevel() {
			root.AppendChild(m.ToNativeElement(c, false))
		}
		if m.opts.FlattenShadowDescendants {
			for _, d := range nested.Descendants() {
				root.AppendChild(m.ToNativeElement(d, false))
			}
		}
	}

	for _, c := range e.Children() {
		n.AppendChild(m.ToNativeElement(c, convertShadow))
	}
	if text := e.TextContent(); text != "" {
		n.SetText(text)
	}

	if m.onRealize != nil {
		m.onRealize(e, n)
	}
	return n
}
