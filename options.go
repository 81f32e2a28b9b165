package eventhub

type settings struct {
	production bool
	listeners  map[string][]Listener
}

// Option configures a Hub at construction.
type Option func(*settings)

// WithListeners pre-populates the hub. Each listener is registered as with On,
// preserving the order given per event. Events are registered in sorted name
// order. Repeated use merges, appending to earlier entries.
func WithListeners(listeners map[string][]Listener) Option {
	return func(s *settings) {
		if s.listeners == nil {
			s.listeners = make(map[string][]Listener, len(listeners))
		}
		for name, fns := range listeners {
			s.listeners[name] = append(s.listeners[name], fns...)
		}
	}
}

// WithProductionMode skips listener validation when enabled. A nil listener
// registered in production mode panics when its event is emitted.
func WithProductionMode(enabled bool) Option {
	return func(s *settings) {
		s.production = enabled
	}
}
