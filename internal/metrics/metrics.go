package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventhub"
)

// Metrics holds the collectors of one host. Each host gets its own registry
// so that several can coexist in one process, tests included.
type Metrics struct {
	Registry *prometheus.Registry

	emitsTotal         *prometheus.CounterVec
	listenerCallsTotal *prometheus.CounterVec
	listeners          *prometheus.GaugeVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		emitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventhub",
				Name:      "emits_total",
				Help:      "Total number of emits, by whether any listener was registered",
			},
			[]string{"event", "delivered"},
		),
		listenerCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventhub",
				Name:      "listener_calls_total",
				Help:      "Total number of calls to counting listeners",
			},
			[]string{"event"},
		),
		listeners: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "eventhub",
				Name:      "listeners",
				Help:      "Listeners currently registered per event",
			},
			[]string{"event"},
		),
	}
	m.Registry.MustRegister(m.emitsTotal, m.listenerCallsTotal, m.listeners)
	return m
}

// ObserveEmit counts one Emit call
func (m *Metrics) ObserveEmit(event string, delivered bool) {
	m.emitsTotal.WithLabelValues(event, strconv.FormatBool(delivered)).Inc()
}

// ObserveCall counts one listener invocation
func (m *Metrics) ObserveCall(event string) {
	m.listenerCallsTotal.WithLabelValues(event).Inc()
}

// Sync refreshes the listener gauge from the hub. Events without listeners
// disappear from the gauge, like they disappear from the hub.
func (m *Metrics) Sync(h *eventhub.Hub) {
	m.listeners.Reset()
	for _, name := range h.Events() {
		m.listeners.WithLabelValues(name).Set(float64(h.ListenerCount(name)))
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
