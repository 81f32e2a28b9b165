package logic

import (
	"sort"

	"eventhub"
	"eventhub/internal/domain"
)

type entry struct {
	binding domain.Binding
	unbind  eventhub.Unbind
}

// Binder is a BindingStore on top of a hub. Like the hub itself it is not
// safe for concurrent use; callers serialize access to both together.
type Binder struct {
	hub     *eventhub.Hub
	nextID  int
	entries map[int]*entry
}

// NewBinder creates a binder for hub
func NewBinder(hub *eventhub.Hub) *Binder {
	return &Binder{
		hub:     hub,
		nextID:  1,
		entries: make(map[int]*entry),
	}
}

// Bind registers fn on the hub. A once binding forgets itself when the hub
// removes it.
func (b *Binder) Bind(event, action string, once bool, fn eventhub.Listener) (domain.Binding, error) {
	id := b.nextID
	binding := domain.Binding{ID: id, Event: event, Action: action, Once: once}

	var (
		unbind eventhub.Unbind
		err    error
	)
	if once {
		wrapped := fn
		if fn != nil {
			wrapped = func(args ...any) {
				delete(b.entries, id)
				fn(args...)
			}
		}
		unbind, err = b.hub.Once(event, wrapped)
	} else {
		unbind, err = b.hub.On(event, fn)
	}
	if err != nil {
		return domain.Binding{}, err
	}

	b.nextID++
	b.entries[id] = &entry{binding: binding, unbind: unbind}
	return binding, nil
}

// Unbind removes the binding with id. It reports false for unknown ids,
// including once bindings that already fired.
func (b *Binder) Unbind(id int) (domain.Binding, bool) {
	e, ok := b.entries[id]
	if !ok {
		return domain.Binding{}, false
	}
	delete(b.entries, id)
	e.unbind()
	return e.binding, true
}

// Get returns the binding with id
func (b *Binder) Get(id int) (domain.Binding, bool) {
	e, ok := b.entries[id]
	if !ok {
		return domain.Binding{}, false
	}
	return e.binding, true
}

// List returns the live bindings ordered by id
func (b *Binder) List() []domain.Binding {
	out := make([]domain.Binding, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.binding)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Summaries describes every event registered on the hub, in the hub's order
func Summaries(h *eventhub.Hub) []domain.EventSummary {
	names := h.Events()
	out := make([]domain.EventSummary, 0, len(names))
	for _, name := range names {
		out = append(out, domain.EventSummary{Name: name, Listeners: h.ListenerCount(name)})
	}
	return out
}
