package vdom

import (
	"fmt"
	"slices"

	"github.com/xlab/treeprint"
)

// TreeEntry is an inspection snapshot of one element. Changing it does not
// affect the tree.
type TreeEntry struct {
	ID         NodeID
	Tag        string
	Attrs      []Attr
	Text       string
	Children   []TreeEntry
	ShadowMode ShadowMode  `json:",omitempty"`
	Shadow     []TreeEntry `json:",omitempty"`
}

// BuildTree returns a nested snapshot of the top-level elements.
func (t *Tree) BuildTree() []TreeEntry {
	out := make([]TreeEntry, 0, t.top.len())
	for _, e := range t.top.order {
		out = append(out, e.entry())
	}
	return out
}

func (e *Element) entry() TreeEntry {
	ent := TreeEntry{
		ID:    e.id,
		Tag:   e.tag,
		Attrs: slices.Clone(e.attrs),
		Text:  e.text,
	}
	for _, c := range e.children {
		ent.Children = append(ent.Children, c.entry())
	}
	if e.shadow != nil {
		ent.ShadowMode = e.shadowMode
		ent.Shadow = e.shadow.BuildTree()
	}
	return ent
}

// String renders the hierarchy as an indented tree, shadows included.
func (t *Tree) String() string {
	root := treeprint.NewWithRoot(fmt.Sprintf("tree (%d nodes)", t.Len()))
	for _, e := range t.top.order {
		e.print(root)
	}
	return root.String()
}

func (e *Element) print(p treeprint.Tree) {
	label := e.describe()
	if e.text != "" {
		label += fmt.Sprintf(" %q", e.text)
	}
	if len(e.children) == 0 && e.shadow == nil {
		p.AddMetaNode(e.id, label)
		return
	}
	branch := p.AddMetaBranch(e.id, label)
	if e.shadow != nil {
		sb := branch.AddMetaBranch("shadow", string(e.shadowMode))
		for _, s := range e.shadow.top.order {
			s.print(sb)
		}
	}
	for _, c := range e.children {
		c.print(branch)
	}
}
