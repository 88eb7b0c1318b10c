package vdom

import (
	"iter"
	"slices"
	"strings"
)

// ClassList is a live, token-aware view of an element's class attribute.
// Every call reads the current attribute; writes go through SetAttribute.
type ClassList struct {
	e *Element
}

// ClassList returns the class list view of e.
func (e *Element) ClassList() ClassList {
	return ClassList{e: e}
}

func (cl ClassList) tokens() []string {
	return strings.Fields(cl.e.ClassName())
}

// Add adds tokens. Each argument may hold several whitespace-separated
// tokens. Tokens already present are skipped; when nothing changes, no
// write happens.
func (cl ClassList) Add(tokens ...string) error {
	cur := cl.tokens()
	changed := false
	for _, arg := range tokens {
		for _, tok := range strings.Fields(arg) {
			if !slices.Contains(cur, tok) {
				cur = append(cur, tok)
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return cl.e.SetAttribute("class", strings.Join(cur, " "))
}

// Remove removes whole tokens. When nothing changes, no write happens.
func (cl ClassList) Remove(tokens ...string) error {
	var drop []string
	for _, arg := range tokens {
		drop = append(drop, strings.Fields(arg)...)
	}
	cur := cl.tokens()
	next := slices.DeleteFunc(slices.Clone(cur), func(tok string) bool {
		return slices.Contains(drop, tok)
	})
	if len(next) == len(cur) {
		return nil
	}
	return cl.e.SetAttribute("class", strings.Join(next, " "))
}

// Toggle removes token when present and adds it otherwise. It returns
// whether token is present afterwards.
func (cl ClassList) Toggle(token string) (bool, error) {
	if cl.Contains(token) {
		return false, cl.Remove(token)
	}
	return true, cl.Add(token)
}

// Contains reports whether token is present.
func (cl ClassList) Contains(token string) bool {
	return slices.Contains(cl.tokens(), token)
}

// Includes is an alias of Contains.
func (cl ClassList) Includes(token string) bool {
	return cl.Contains(token)
}

// Len returns the number of tokens.
func (cl ClassList) Len() int {
	return len(cl.tokens())
}

// Item returns the i-th token, or "" when out of range.
func (cl ClassList) Item(i int) string {
	toks := cl.tokens()
	if i < 0 || i >= len(toks) {
		return ""
	}
	return toks[i]
}

// Values returns the tokens in order.
func (cl ClassList) Values() []string {
	return cl.tokens()
}

// All iterates over the tokens.
func (cl ClassList) All() iter.Seq[string] {
	return slices.Values(cl.tokens())
}

// String returns the tokens joined by single spaces.
func (cl ClassList) String() string {
	return strings.Join(cl.tokens(), " ")
}
