package domain

// EventName names an event emitted through a hub
type EventName string

// Lifecycle events the host programs emit through their own hub, so that
// configured listeners can react to them like to any other event.
const (
	EventConfigLoaded    EventName = "config.loaded"
	EventConsoleStarted  EventName = "console.started"
	EventConsoleStopped  EventName = "console.stopped"
	EventServerStarted   EventName = "server.started"
	EventServerStopped   EventName = "server.stopped"
	EventListenerBound   EventName = "listener.bound"
	EventListenerUnbound EventName = "listener.unbound"
)

func (n EventName) String() string { return string(n) }

var descriptions = map[EventName]string{
	EventConfigLoaded:    "configuration was loaded (args: path, found)",
	EventConsoleStarted:  "interactive console is ready",
	EventConsoleStopped:  "interactive console is exiting",
	EventServerStarted:   "HTTP bridge is listening (args: addr)",
	EventServerStopped:   "HTTP bridge shut down",
	EventListenerBound:   "a listener was bound (args: id, event, action)",
	EventListenerUnbound: "a listener was unbound (args: id, event)",
}

// LifecycleEvents returns the built-in event names in a stable order
func LifecycleEvents() []EventName {
	return []EventName{
		EventConfigLoaded,
		EventConsoleStarted,
		EventConsoleStopped,
		EventServerStarted,
		EventServerStopped,
		EventListenerBound,
		EventListenerUnbound,
	}
}

// Describe returns a one-line description of a built-in event, or "" for
// user-defined ones
func Describe(name EventName) string {
	return descriptions[name]
}
