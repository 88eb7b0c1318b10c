package vdom

// Dynamic property access by script-style name.

var readOnlyProperties = map[string]bool{
	"tagName":         true,
	"isConnected":     true,
	"classList":       true,
	"dataset":         true,
	"nextSibling":     true,
	"previousSibling": true,
	"parentNode":      true,
	"parentDocument":  true,
	"shadowRoot":      true,
	"styleObject":     true,
	"children":        true,
	"isTrusted":       true,
	"length":          true,
}

// GetProperty returns the named property.
func (e *Element) GetProperty(name string) (any, error) {
	switch name {
	case "id":
		return e.ID(), nil
	case "className":
		return e.ClassName(), nil
	case "textContent", "innerText":
		return e.text, nil
	case "style":
		return e.Style(), nil
	case "tagName":
		return e.tag, nil
	case "isConnected":
		return e.IsConnected(), nil
	case "classList":
		return e.ClassList(), nil
	case "dataset":
		return e.Dataset(), nil
	case "nextSibling":
		return e.NextSibling(), nil
	case "previousSibling":
		return e.PreviousSibling(), nil
	case "parentNode":
		return e.parent, nil
	case "parentDocument":
		return e.tree, nil
	case "shadowRoot":
		return e.ShadowRoot(), nil
	case "styleObject":
		return e.StyleObject()
	case "children":
		return e.Children(), nil
	case "firstChild":
		return e.FirstChild(), nil
	case "lastChild":
		return e.LastChild(), nil
	}
	return nil, newError(ErrUnknownProperty.Code, "%q", name)
}

// SetProperty assigns the named property. String properties take a string;
// firstChild and lastChild take an *Element. Derived properties report
// ErrReadOnly.
func (e *Element) SetProperty(name string, value any) error {
	if readOnlyProperties[name] {
		return newError(ErrReadOnly.Code, "%q", name)
	}
	switch name {
	case "firstChild", "lastChild":
		c, ok := value.(*Element)
		if !ok {
			return newError(ErrInvalidValue.Code, "%q wants *Element, got %T", name, value)
		}
		if name == "firstChild" {
			return e.SetFirstChild(c)
		}
		return e.SetLastChild(c)
	}

	set, ok := map[string]func(string) error{
		"id":          e.SetID,
		"className":   e.SetClassName,
		"textContent": e.SetTextContent,
		"innerText":   e.SetInnerText,
		"style":       e.SetStyle,
	}[name]
	if !ok {
		return newError(ErrUnknownProperty.Code, "%q", name)
	}
	s, ok := value.(string)
	if !ok {
		return newError(ErrInvalidValue.Code, "%q wants string, got %T", name, value)
	}
	return set(s)
}
