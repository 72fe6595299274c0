// internal/metrics/metrics.go
//
// Prometheus counters for the machine routes, kept on a private registry that
// the server exposes on /metrics.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every metric the server updates.
type Collector struct {
	registry *prometheus.Registry

	MachinesCreated prometheus.Counter
	MachinesClosed  prometheus.Counter
	MachinesActive  prometheus.Gauge
	Keystrokes      *prometheus.CounterVec
	InvalidKeys     prometheus.Counter
	RotorAdvances   *prometheus.CounterVec
}

// New registers the metrics, plus Go and process collectors, on a fresh registry.
func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	c := &Collector{
		registry: registry,

		MachinesCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "enigma_machines_created_total",
			Help: "The total number of machine sessions started",
		}),
		MachinesClosed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "enigma_machines_closed_total",
			Help: "The total number of machine sessions switched off",
		}),
		MachinesActive: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "enigma_machines_active",
			Help: "The number of machine sessions currently held in memory",
		}),
		Keystrokes: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_keystrokes_total",
			Help: "The total number of enciphered key presses",
		}, []string{"source"}),
		InvalidKeys: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "enigma_invalid_keys_total",
			Help: "The total number of rejected key presses",
		}),
		RotorAdvances: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_rotor_advances_total",
			Help: "The total number of rotors turned by hand",
		}, []string{"rotor"}),
	}

	return c
}

// GetRegistry returns the registry served on /metrics.
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
