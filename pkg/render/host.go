package render

// Native is a node of the host document.
type Native interface {
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	AppendChild(child Native)
	InsertBefore(child, ref Native)
	ReplaceChild(newChild, oldChild Native)
	RemoveChild(child Native)
	Parent() Native

	// SetText appends text as a trailing text child.
	SetText(text string)

	// AddEventListener registers fn for events of typ fired by the host.
	AddEventListener(typ string, fn func(detail any))

	// AttachShadow creates a shadow root in the given mode and returns it.
	AttachShadow(mode string) Native
}

// Host creates native nodes.
type Host interface {
	CreateElement(tag string) Native
	CreateDocumentFragment() Native
}
