package logic

import (
	"eventhub"
	"eventhub/internal/domain"
)

// BindingStore tracks listeners bound on behalf of a user, so they can be
// listed and unbound by id
type BindingStore interface {
	Bind(event, action string, once bool, fn eventhub.Listener) (domain.Binding, error)
	Unbind(id int) (domain.Binding, bool)
	Get(id int) (domain.Binding, bool)
	List() []domain.Binding
}
