// Package metrics holds the Prometheus instrumentation for the dashboard
// backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics for the dashboard backend.
type Registry struct {
	registry *prometheus.Registry

	// FetchTotal counts per-symbol fetches by result ("ok" or "error").
	FetchTotal *prometheus.CounterVec

	// FetchDuration observes the wall time of a whole fetch batch in seconds.
	FetchDuration prometheus.Histogram

	// SessionsCreated counts dashboard sessions created.
	SessionsCreated prometheus.Counter

	// ActiveSessions tracks the number of unexpired sessions.
	ActiveSessions prometheus.Gauge
}

// NewRegistry creates a metrics registry with all dashboard metrics
// registered on a private Prometheus registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,

		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yieldmax_fetch_total",
				Help: "Total number of per-symbol market data fetches by result",
			},
			[]string{"result"},
		),

		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "yieldmax_fetch_duration_seconds",
				Help:    "Duration of a full fetch batch in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
		),

		SessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "yieldmax_sessions_created_total",
				Help: "Total number of dashboard sessions created",
			},
		),

		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "yieldmax_active_sessions",
				Help: "Number of unexpired dashboard sessions",
			},
		),
	}

	reg.MustRegister(
		r.FetchTotal,
		r.FetchDuration,
		r.SessionsCreated,
		r.ActiveSessions,
	)

	return r
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
