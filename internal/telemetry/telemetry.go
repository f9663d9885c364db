// Package telemetry exposes the power iteration's running state as
// Prometheus metrics, grounded on the teacher pool's client_golang/promauto
// usage for counters and gauges.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of gauges and counters a solver run updates once per
// outer iteration.
type Metrics struct {
	KEff       prometheus.Gauge
	Residual   prometheus.Gauge
	Leakage    prometheus.Gauge
	Iterations prometheus.Counter
}

// NewMetrics registers a fresh set of solver metrics against the given
// registry. Pass prometheus.NewRegistry() for test isolation, or
// prometheus.DefaultRegisterer for a process-wide /metrics endpoint.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		KEff: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moc2d_k_eff",
			Help: "Current k-effective estimate of the running power iteration.",
		}),
		Residual: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moc2d_source_residual",
			Help: "Convergence residual: source residual in Eigenvalue mode, flux residual in FixedSource mode.",
		}),
		Leakage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "moc2d_leakage",
			Help: "Total neutron leakage through vacuum boundaries in the most recent sweep.",
		}),
		Iterations: factory.NewCounter(prometheus.CounterOpts{
			Name: "moc2d_iterations_total",
			Help: "Total outer power iterations executed.",
		}),
	}
}

// RecordIteration updates every gauge and increments the iteration
// counter. It is safe to call with a nil *Metrics (a no-op), so callers
// don't need to branch on whether telemetry is enabled.
func (m *Metrics) RecordIteration(kEff, residual, leakage float64) {
	if m == nil {
		return
	}
	m.KEff.Set(kEff)
	m.Residual.Set(residual)
	m.Leakage.Set(leakage)
	m.Iterations.Inc()
}

// Handler returns the /metrics HTTP handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
