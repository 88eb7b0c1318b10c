package codec

import "strings"

// CamelCase converts a kebab-case name to camelCase.
//
//	CamelCase("user-id")      // "userId"
//	CamelCase("-webkit-flex") // "webkitFlex"
//
// Runs of dashes collapse; a leading dash is dropped.
func CamelCase(kebab string) string {
	if !strings.Contains(kebab, "-") {
		return kebab
	}
	var b strings.Builder
	b.Grow(len(kebab))
	upper := false
	for _, r := range kebab {
		if r == '-' {
			upper = b.Len() > 0
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

// KebabCase converts a camelCase name to kebab-case. Every ASCII upper-case
// letter becomes a dash followed by its lower-case form.
func KebabCase(camel string) string {
	var b strings.Builder
	b.Grow(len(camel) + 4)
	for _, r := range camel {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
