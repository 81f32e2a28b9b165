package domain

// Binding is a listener registered by a host on behalf of a user
type Binding struct {
	ID     int    `json:"id"`
	Event  string `json:"event"`
	Action string `json:"action"`
	Once   bool   `json:"once"`
}

// Call is one recorded listener invocation
type Call struct {
	Event string `json:"event"`
	Args  []any  `json:"args"`
}

// EventSummary describes one registered event name
type EventSummary struct {
	Name      string `json:"name"`
	Listeners int    `json:"listeners"`
}
