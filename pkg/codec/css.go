package codec

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/pkg/errors"
)

// Declaration is a single CSS property declaration.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// String returns the declaration in CSS text form.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// ParseDeclarations parses a CSS declaration block such as the value of a
// style attribute. Property names are lower-cased. Empty input yields no
// declarations.
func ParseDeclarations(text string) ([]Declaration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	parsed, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, errors.Wrapf(err, "parse declarations %q", text)
	}

	decls := make([]Declaration, 0, len(parsed))
	for _, d := range parsed {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if prop == "" {
			continue
		}
		decls = append(decls, Declaration{
			Property:  prop,
			Value:     strings.TrimSpace(d.Value),
			Important: d.Important,
		})
	}
	return decls, nil
}

// FormatDeclarations serializes declarations back to a declaration block.
func FormatDeclarations(decls []Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, "; ")
}
