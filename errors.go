package eventhub

import (
	"errors"
	"fmt"
)

// ErrInvalidListener is returned when a listener cannot be invoked.
var ErrInvalidListener = errors.New("listener must be a function")

// InvalidListenerError reports the event a rejected listener was meant for.
type InvalidListenerError struct {
	Event string
}

func (e *InvalidListenerError) Error() string {
	return fmt.Sprintf("event %q: %v", e.Event, ErrInvalidListener)
}

func (e *InvalidListenerError) Unwrap() error {
	return ErrInvalidListener
}
