package vdom

import (
	"slices"
	"strings"

	"github.com/vango-dev/vtree/pkg/codec"
)

const dataPrefix = "data-"

// Dataset is a live view of an element's data-* attributes under camelCase
// keys: the attribute data-user-id is the key "userId".
type Dataset struct {
	e *Element
}

// Dataset returns the dataset view of e.
func (e *Element) Dataset() Dataset {
	return Dataset{e: e}
}

// attrName returns the data-* attribute backing key. An existing attribute
// whose name maps to key is used as is, so names that do not survive the
// camelCase round trip (data-col-2) stay reachable. Otherwise the name is
// derived from key.
func (d Dataset) attrName(key string) string {
	for _, a := range d.e.attrs {
		if name, ok := strings.CutPrefix(a.Name, dataPrefix); ok && name != "" && codec.CamelCase(name) == key {
			return a.Name
		}
	}
	return dataPrefix + codec.KebabCase(key)
}

// Get returns the value for key, or "".
func (d Dataset) Get(key string) string {
	return d.e.GetAttribute(d.attrName(key))
}

// Lookup returns the value for key and whether it is set.
func (d Dataset) Lookup(key string) (string, bool) {
	return d.e.LookupAttribute(d.attrName(key))
}

// Set writes the data attribute for key.
func (d Dataset) Set(key, value string) error {
	return d.e.SetAttribute(d.attrName(key), value)
}

// Delete removes the data attribute for key.
func (d Dataset) Delete(key string) error {
	return d.e.RemoveAttribute(d.attrName(key))
}

// Keys returns the camelCase keys in sorted order.
func (d Dataset) Keys() []string {
	var keys []string
	for _, a := range d.e.attrs {
		if name, ok := strings.CutPrefix(a.Name, dataPrefix); ok && name != "" {
			keys = append(keys, codec.CamelCase(name))
		}
	}
	slices.Sort(keys)
	return keys
}

// Map returns the current key/value pairs. The map is a copy.
func (d Dataset) Map() map[string]string {
	m := make(map[string]string)
	for _, a := range d.e.attrs {
		if name, ok := strings.CutPrefix(a.Name, dataPrefix); ok && name != "" {
			m[codec.CamelCase(name)] = a.Value
		}
	}
	return m
}

// Len returns the number of data attributes.
func (d Dataset) Len() int {
	return len(d.Keys())
}
