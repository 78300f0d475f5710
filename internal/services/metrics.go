package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service-level Prometheus collectors. The registerer is
// injected so tests can use a private registry instead of the process-global
// default.
type Metrics struct {
	RecommendationsTotal  *prometheus.CounterVec
	SearchRequestsTotal   *prometheus.CounterVec
	InteractionsTotal     *prometheus.CounterVec
	RecommendationLatency *prometheus.HistogramVec
	CatalogueFetchErrors  prometheus.Counter
	CacheHitsTotal        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecommendationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_recommendations_total",
				Help: "Recommendation requests served, by strategy",
			},
			[]string{"strategy"},
		),
		SearchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_search_requests_total",
				Help: "Search requests served, by ranking preset",
			},
			[]string{"preset"},
		),
		InteractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_interactions_total",
				Help: "Interaction events recorded, by action",
			},
			[]string{"action"},
		),
		RecommendationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_recommendation_duration_seconds",
				Help:    "Recommendation pipeline latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		CatalogueFetchErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "nexus_catalogue_fetch_errors_total",
				Help: "Catalogue fetches that fell through every source",
			},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_cache_hits_total",
				Help: "Recommendation cache lookups, by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.RecommendationsTotal,
		m.SearchRequestsTotal,
		m.InteractionsTotal,
		m.RecommendationLatency,
		m.CatalogueFetchErrors,
		m.CacheHitsTotal,
	)
	return m
}
