package vdom

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/codec"
)

// Style returns the raw style attribute.
func (e *Element) Style() string {
	return e.GetAttribute("style")
}

// SetStyle replaces the style attribute.
func (e *Element) SetStyle(style string) error {
	return e.SetAttribute("style", style)
}

// StyleObject parses the style attribute. The result is a read-only copy;
// change styles through SetStyle.
func (e *Element) StyleObject() (Style, error) {
	decls, err := codec.ParseDeclarations(e.Style())
	if err != nil {
		return Style{}, err
	}
	return Style{decls: decls}, nil
}

// Style is a parsed, read-only inline style.
type Style struct {
	decls []codec.Declaration
}

// normalizeProperty accepts kebab-case and camelCase property names.
func normalizeProperty(prop string) string {
	if strings.ContainsAny(prop, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") && !strings.Contains(prop, "-") {
		prop = codec.KebabCase(prop)
	}
	return strings.ToLower(prop)
}

func (s Style) lookup(prop string) (codec.Declaration, bool) {
	prop = normalizeProperty(prop)
	// later declarations win, as in CSS
	for i := len(s.decls) - 1; i >= 0; i-- {
		if s.decls[i].Property == prop {
			return s.decls[i], true
		}
	}
	return codec.Declaration{}, false
}

// Get returns the value of prop, or "".
func (s Style) Get(prop string) string {
	d, _ := s.lookup(prop)
	return d.Value
}

// Important reports whether prop is declared !important.
func (s Style) Important(prop string) bool {
	d, _ := s.lookup(prop)
	return d.Important
}

// Properties returns the declared property names in declaration order.
func (s Style) Properties() []string {
	props := make([]string, len(s.decls))
	for i, d := range s.decls {
		props[i] = d.Property
	}
	return props
}

// Declarations returns a copy of the parsed declarations.
func (s Style) Declarations() []codec.Declaration {
	return append([]codec.Declaration(nil), s.decls...)
}

// Len returns the number of declarations.
func (s Style) Len() int {
	return len(s.decls)
}

// String serializes the declarations.
func (s Style) String() string {
	return codec.FormatDeclarations(s.decls)
}
