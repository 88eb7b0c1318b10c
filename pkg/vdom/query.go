package vdom

// Matching is by exact tag name; "*" matches every element.

func matchTag(e *Element, tag string) bool {
	return tag == "*" || e.tag == tag
}

// walk visits the descendants of e in pre-order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	for _, c := range e.children {
		if !fn(c) || !c.walk(fn) {
			return false
		}
	}
	return true
}

func (e *Element) collect(pred func(*Element) bool) []*Element {
	var out []*Element
	e.walk(func(n *Element) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (e *Element) first(pred func(*Element) bool) *Element {
	var found *Element
	e.walk(func(n *Element) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first descendant with the given tag, in
// document order.
func (e *Element) QuerySelector(tag string) *Element {
	return e.first(func(n *Element) bool { return matchTag(n, tag) })
}

// QuerySelectorAll returns every descendant with the given tag, in
// document order.
func (e *Element) QuerySelectorAll(tag string) []*Element {
	return e.collect(func(n *Element) bool { return matchTag(n, tag) })
}

// GetElementsByTagName is QuerySelectorAll.
func (e *Element) GetElementsByTagName(tag string) []*Element {
	return e.QuerySelectorAll(tag)
}

// GetElementByID returns the first descendant whose id attribute equals id.
func (e *Element) GetElementByID(id string) *Element {
	return e.GetElementByAttribute("id", id)
}

// GetElementsByAttribute returns the descendants whose attribute name
// equals value.
func (e *Element) GetElementsByAttribute(name, value string) []*Element {
	return e.collect(func(n *Element) bool { return hasAttrValue(n, name, value) })
}

// GetElementByAttribute returns the first descendant whose attribute name
// equals value.
func (e *Element) GetElementByAttribute(name, value string) *Element {
	return e.first(func(n *Element) bool { return hasAttrValue(n, name, value) })
}

func hasAttrValue(e *Element, name, value string) bool {
	v, ok := e.LookupAttribute(name)
	return ok && v == value
}

// Tree queries search the top-level elements first. The descendant index
// is only searched when no top-level element matches.

func (t *Tree) search(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, e := range t.top.order {
		if pred(e) {
			out = append(out, e)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, e := range t.desc.order {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func firstOf(list []*Element) *Element {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// QuerySelector returns the first element with the given tag.
func (t *Tree) QuerySelector(tag string) *Element {
	return firstOf(t.QuerySelectorAll(tag))
}

// QuerySelectorAll returns the elements with the given tag.
func (t *Tree) QuerySelectorAll(tag string) []*Element {
	return t.search(func(e *Element) bool { return matchTag(e, tag) })
}

// GetElementByID returns the first element whose id attribute equals id.
func (t *Tree) GetElementByID(id string) *Element {
	return firstOf(t.search(func(e *Element) bool { return hasAttrValue(e, "id", id) }))
}

// GetElementsByClassName returns the elements whose class attribute equals
// name exactly.
func (t *Tree) GetElementsByClassName(name string) []*Element {
	return t.search(func(e *Element) bool { return e.ClassName() == name })
}
