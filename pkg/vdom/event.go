package vdom

import (
	"maps"
	"slices"
)

// EventInit holds the optional fields of NewEvent.
type EventInit struct {
	Detail  any
	Bubbles bool
}

// Event is a virtual event.
//
// Dispatch stops after the first listener that leaves Bubbles false.
type Event struct {
	Type    string
	Detail  any
	Bubbles bool

	defaultPrevented bool
	target           *Element
	trusted          bool
}

// NewEvent creates an untrusted event.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{Type: typ, Detail: init.Detail, Bubbles: init.Bubbles}
}

// HostEvent creates a trusted, bubbling event. It is meant for host
// adapters forwarding events that originate in a materialized document.
func HostEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: true, trusted: true}
}

// PreventDefault marks the event as default-prevented. It cannot be undone.
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// Target returns the element the event was dispatched on.
func (ev *Event) Target() *Element {
	return ev.target
}

// IsTrusted reports whether the event came from a host adapter.
func (ev *Event) IsTrusted() bool {
	return ev.trusted
}

// Listener is a registered event callback. Registration and removal use the
// Listener pointer as identity.
type Listener struct {
	fn func(*Event)
}

// Listen wraps fn in a Listener.
func Listen(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the callback.
func (l *Listener) Handle(ev *Event) {
	if l.fn != nil {
		l.fn(ev)
	}
}

// AddEventListener registers l for typ and returns a function that
// unregisters it.
func (e *Element) AddEventListener(typ string, l *Listener) (unregister func()) {
	if l == nil {
		return func() {}
	}
	if e.events == nil {
		e.events = make(map[string][]*Listener)
	}
	e.events[typ] = append(e.events[typ], l)
	return func() { e.RemoveEventListener(typ, l) }
}

// RemoveEventListener unregisters every registration of l for typ.
func (e *Element) RemoveEventListener(typ string, l *Listener) {
	list, ok := e.events[typ]
	if !ok {
		return
	}
	list = slices.DeleteFunc(slices.Clone(list), func(x *Listener) bool { return x == l })
	if len(list) == 0 {
		delete(e.events, typ)
		return
	}
	e.events[typ] = list
}

// DispatchEvent delivers ev to the listeners registered for ev.Type, in
// registration order. Dispatching a type with no listeners is an error.
func (e *Element) DispatchEvent(ev *Event) error {
	list := e.events[ev.Type]
	if len(list) == 0 {
		return newError(ErrNoListeners.Code, "%q on %s", ev.Type, e)
	}
	Deliver(e, ev, slices.Clone(list))
	return nil
}

// Deliver runs listeners for ev with target as the event target, stopping
// after the first listener that leaves Bubbles false. Host adapters use it
// to replay a listener list captured at materialization time.
func Deliver(target *Element, ev *Event, listeners []*Listener) {
	ev.target = target
	for _, l := range listeners {
		l.Handle(ev)
		if !ev.Bubbles {
			return
		}
	}
}

// On registers fn for typ and returns the unregister function.
func (e *Element) On(typ string, fn func(*Event)) (unregister func()) {
	return e.AddEventListener(typ, Listen(fn))
}

// Emit dispatches an untrusted, bubbling event carrying detail.
func (e *Element) Emit(typ string, detail any) error {
	return e.DispatchEvent(NewEvent(typ, EventInit{Detail: detail, Bubbles: true}))
}

// Click dispatches an untrusted, bubbling "click" event.
func (e *Element) Click() error {
	return e.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
}

// HasListeners reports whether any listener is registered for typ.
func (e *Element) HasListeners(typ string) bool {
	return len(e.events[typ]) > 0
}

// Listeners returns the listeners registered for typ.
func (e *Element) Listeners(typ string) []*Listener {
	return slices.Clone(e.events[typ])
}

// ListenerTypes returns the event types with listeners, sorted.
func (e *Element) ListenerTypes() []string {
	return slices.Sorted(maps.Keys(e.events))
}
