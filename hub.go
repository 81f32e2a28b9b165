package eventhub

import (
	"slices"
	"sort"
)

// Listener is a callback invoked on each dispatch of the event it is bound to.
// Arguments passed to Emit are forwarded positionally and unchanged.
type Listener func(args ...any)

// Unbind removes the listener it was returned for. Calling it more than once
// is a no-op.
type Unbind func()

// record is one registration. Its address is its identity, so two
// registrations of the same function are removed independently.
type record struct {
	fn      Listener
	once    bool
	removed bool
}

// Hub maps event names to ordered listener lists and dispatches synchronously.
//
// The zero value is an empty hub with validation active, so a Hub can be
// embedded in a host struct. New also applies options and the build-tag
// default.
//
// A Hub is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
type Hub struct {
	listeners  map[string][]*record
	order      []string // event names in first-registration order
	production bool
}

// New creates a hub. With no options the registry starts empty and listener
// validation is active unless the package was built with the
// eventhub_production tag. A nil listener passed through WithListeners panics
// with an *InvalidListenerError while validation is active.
func New(opts ...Option) *Hub {
	s := settings{production: productionDefault}
	for _, opt := range opts {
		opt(&s)
	}

	h := &Hub{
		listeners:  make(map[string][]*record),
		production: s.production,
	}

	// Sorted so that construction from a map is deterministic.
	names := make([]string, 0, len(s.listeners))
	for name := range s.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, fn := range s.listeners[name] {
			if err := h.validate(name, fn); err != nil {
				panic(err)
			}
			h.add(name, fn, false)
		}
	}
	return h
}

// On appends fn to the listeners of event and returns a handle that removes it.
func (h *Hub) On(event string, fn Listener) (Unbind, error) {
	if err := h.validate(event, fn); err != nil {
		return nil, err
	}
	return h.add(event, fn, false), nil
}

// Once is like On, but the listener is removed right before its first
// invocation. The returned handle stays safe to call after that.
func (h *Hub) Once(event string, fn Listener) (Unbind, error) {
	if err := h.validate(event, fn); err != nil {
		return nil, err
	}
	return h.add(event, fn, true), nil
}

// Emit calls every listener registered for event, in registration order, with
// args. The set of listeners is fixed when Emit starts: listeners added while
// dispatching are not called, listeners removed before their turn are skipped.
// A panicking listener stops the dispatch and the panic reaches the caller.
//
// Emit reports whether any listener was registered when it started.
func (h *Hub) Emit(event string, args ...any) bool {
	list := h.listeners[event]
	if len(list) == 0 {
		return false
	}

	snapshot := make([]*record, len(list))
	copy(snapshot, list)

	for _, r := range snapshot {
		if r.removed {
			continue
		}
		if r.once {
			h.remove(event, r)
		}
		r.fn(args...)
	}
	return true
}

// Events returns the names that currently have at least one listener, in the
// order they were first registered.
func (h *Hub) Events() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// ListenerCount returns the number of listeners bound to event.
func (h *Hub) ListenerCount(event string) int {
	return len(h.listeners[event])
}

// Has reports whether event has any listener.
func (h *Hub) Has(event string) bool {
	return len(h.listeners[event]) > 0
}

func (h *Hub) validate(event string, fn Listener) error {
	if h.production {
		return nil
	}
	if fn == nil {
		return &InvalidListenerError{Event: event}
	}
	return nil
}

func (h *Hub) add(event string, fn Listener, once bool) Unbind {
	if h.listeners == nil {
		h.listeners = make(map[string][]*record)
	}
	r := &record{fn: fn, once: once}
	if _, ok := h.listeners[event]; !ok {
		h.order = append(h.order, event)
	}
	h.listeners[event] = append(h.listeners[event], r)

	return func() {
		h.remove(event, r)
	}
}

// remove excises r from event's list by identity and drops the key when the
// list becomes empty. The vacated slot is cleared so the list's backing
// array does not keep r alive.
func (h *Hub) remove(event string, r *record) {
	if r.removed {
		return
	}
	r.removed = true

	list := h.listeners[event]
	for i, candidate := range list {
		if candidate != r {
			continue
		}
		next := slices.Delete(list, i, i+1)
		if len(next) == 0 {
			delete(h.listeners, event)
			h.dropName(event)
		} else {
			h.listeners[event] = next
		}
		return
	}
}

func (h *Hub) dropName(event string) {
	for i, name := range h.order {
		if name == event {
			h.order = slices.Delete(h.order, i, i+1)
			return
		}
	}
}
