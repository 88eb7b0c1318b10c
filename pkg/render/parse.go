package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Parse reads HTML from r and appends its elements to t as top-level
// elements. Input that starts a full document (a doctype or <html>) is
// parsed as one; anything else is parsed as a body fragment.
//
// Direct text children of an element become its text, joined and trimmed.
// Comments are dropped. A <template shadowrootmode> child becomes the
// element's nested tree.
func Parse(r io.Reader, t *vdom.Tree) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read html")
	}

	var roots []*html.Node
	if isDocument(src) {
		doc, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return errors.Wrap(err, "parse html document")
		}
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			roots = append(roots, c)
		}
	} else {
		body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		roots, err = html.ParseFragment(bytes.NewReader(src), body)
		if err != nil {
			return errors.Wrap(err, "parse html fragment")
		}
	}

	for _, n := range roots {
		if spec := importNode(n); spec != nil {
			t.Mount(spec)
		}
	}
	return nil
}

// ParseString is Parse over a string.
func ParseString(s string, t *vdom.Tree) error {
	return Parse(strings.NewReader(s), t)
}

func isDocument(src []byte) bool {
	head := strings.ToLower(strings.TrimSpace(string(src[:min(len(src), 512)])))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// importNode converts an element node into a build spec, or nil for
// anything that is not an element.
func importNode(n *html.Node) *vdom.Node {
	if n.Type != html.ElementNode {
		return nil
	}
	spec := &vdom.Node{Tag: n.Data}
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		spec.Attrs = append(spec.Attrs, vdom.Attr{Name: key, Value: a.Val})
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			if mode, ok := shadowMode(c); ok && spec.Shadow == nil {
				spec.Shadow = &vdom.ShadowSpec{Mode: mode}
				for sc := c.FirstChild; sc != nil; sc = sc.NextSibling {
					if child := importNode(sc); child != nil {
						spec.Shadow.Children = append(spec.Shadow.Children, child)
					}
				}
				continue
			}
			spec.Children = append(spec.Children, importNode(c))
		}
	}
	spec.Text = strings.TrimSpace(text.String())
	return spec
}

func shadowMode(n *html.Node) (vdom.ShadowMode, bool) {
	if n.DataAtom != atom.Template {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == "shadowrootmode" {
			if a.Val == string(vdom.ShadowClosed) {
				return vdom.ShadowClosed, true
			}
			return vdom.ShadowOpen, true
		}
	}
	return "", false
}
