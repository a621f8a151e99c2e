package catalog

import "github.com/prometheus/client_golang/prometheus"

// Lookup outcomes recorded in metrics
const (
	outcomeFound       = "found"
	outcomeNotFound    = "not_found"
	outcomeError       = "error"
	outcomeCircuitOpen = "circuit_open"
)

// Metrics records catalog lookups. A nil *Metrics records nothing.
type Metrics struct {
	lookups *prometheus.CounterVec
	latency prometheus.Histogram
	dropped prometheus.Counter
}

// NewMetrics creates catalog metrics registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "favorites_catalog_lookups_total",
				Help: "Catalog product lookups by outcome",
			},
			[]string{"outcome"},
		),
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "favorites_catalog_lookup_duration_seconds",
				Help:    "Duration of catalog product lookups in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "favorites_catalog_dropped_products_total",
				Help: "Favorited products left out of a list because the catalog could not serve them",
			},
		),
	}
	reg.MustRegister(m.lookups, m.latency, m.dropped)
	return m
}

func (m *Metrics) observe(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
	m.latency.Observe(seconds)
}

func (m *Metrics) drop(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dropped.Add(float64(n))
}
