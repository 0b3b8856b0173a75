package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters shared by the catalog client and the item
// cache. A nil *Metrics is valid and records nothing.
type Metrics struct {
	APIRequests  *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "api_requests_total",
			Help:      "Requests sent to the catalog API by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "cache_lookups_total",
			Help:      "Item cache lookups by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
