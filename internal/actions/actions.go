package actions

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"eventhub"
	"eventhub/internal/domain"
	"eventhub/internal/metrics"
)

// Built-in action names
const (
	ActionLog    = "log"
	ActionCount  = "count"
	ActionRecord = "record"
	ActionFail   = "fail"
)

// ErrUnknownAction is returned for an action name the catalog does not know
var ErrUnknownAction = errors.New("unknown action")

// Factory builds the listener for one event
type Factory func(event string) eventhub.Listener

// Deps are the collaborators the built-in actions write to
type Deps struct {
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Recorder *Recorder
}

// Catalog resolves action names from configuration into listeners
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog returns a catalog with the built-in actions. Actions whose
// dependency is missing are left out.
func NewCatalog(deps Deps) *Catalog {
	c := &Catalog{factories: make(map[string]Factory)}

	logger := deps.Logger
	c.Register(ActionLog, func(event string) eventhub.Listener {
		return func(args ...any) {
			logger.Info().Str("event", event).Interface("args", args).Msg("event received")
		}
	})
	if deps.Metrics != nil {
		m := deps.Metrics
		c.Register(ActionCount, func(event string) eventhub.Listener {
			return func(...any) {
				m.ObserveCall(event)
			}
		})
	}
	if deps.Recorder != nil {
		r := deps.Recorder
		c.Register(ActionRecord, func(event string) eventhub.Listener {
			return func(args ...any) {
				r.Record(event, args)
			}
		})
	}
	c.Register(ActionFail, func(event string) eventhub.Listener {
		return func(...any) {
			panic(fmt.Errorf("listener for %q failed", event))
		}
	})
	return c
}

// Register adds or replaces a named action
func (c *Catalog) Register(name string, f Factory) {
	c.factories[name] = f
}

// Names returns the known action names in sorted order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a known action
func (c *Catalog) Has(name string) bool {
	_, ok := c.factories[name]
	return ok
}

// Listener builds the listener of action for event
func (c *Catalog) Listener(action, event string) (eventhub.Listener, error) {
	f, ok := c.factories[action]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, action)
	}
	return f(event), nil
}

// Build turns an event -> action names mapping into the initial listener
// mapping a hub is constructed from
func (c *Catalog) Build(bindings map[string][]string) (map[string][]eventhub.Listener, error) {
	out := make(map[string][]eventhub.Listener, len(bindings))
	for event, names := range bindings {
		for _, name := range names {
			fn, err := c.Listener(name, event)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", event, err)
			}
			out[event] = append(out[event], fn)
		}
	}
	return out, nil
}

// Recorder keeps every call made to a record listener
type Recorder struct {
	mu    sync.Mutex
	calls []domain.Call
	limit int
}

// NewRecorder keeps at most limit calls, dropping the oldest. Zero means
// unlimited.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Record stores one call
func (r *Recorder) Record(event string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]any, len(args))
	copy(copied, args)
	r.calls = append(r.calls, domain.Call{Event: event, Args: copied})
	if r.limit > 0 && len(r.calls) > r.limit {
		r.calls = r.calls[len(r.calls)-r.limit:]
	}
}

// Calls returns a copy of the recorded calls, oldest first
func (r *Recorder) Calls() []domain.Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset drops all recorded calls
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
