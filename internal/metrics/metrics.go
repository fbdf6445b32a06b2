// Package metrics exposes Prometheus instrumentation for route registration
// and route queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "routeplanner"

// Metrics groups the collectors recorded by the route service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registrations  *prometheus.CounterVec
	queries        *prometheus.CounterVec
	searchDuration prometheus.Histogram
	storedRoutes   prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Route registration attempts by outcome category.",
		}, []string{"outcome"}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Best-route queries by outcome category.",
		}, []string{"outcome"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent in the exhaustive path search.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		storedRoutes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_routes",
			Help:      "Number of routes seen in the store at the last operation.",
		}),
	}
}

// Registration counts one registration attempt.
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// Query counts one query.
func (m *Metrics) Query(outcome string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(outcome).Inc()
}

// ObserveSearch records how long a path search took.
func (m *Metrics) ObserveSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(d.Seconds())
}

// StoredRoutes sets the stored route gauge.
func (m *Metrics) StoredRoutes(n int) {
	if m == nil {
		return
	}
	m.storedRoutes.Set(float64(n))
}
