package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of Prometheus collectors the planner registers on
// /metrics.
type Metrics struct {
	QueryDuration      prometheus.Histogram
	IterationCapHits   prometheus.Counter
	WalkFallbackRuns   prometheus.Counter
	GeocodeCacheHits   prometheus.Counter
	GeocodeCacheMisses prometheus.Counter
}

// New creates and registers the planner's metrics on registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transitplanner_query_duration_seconds",
			Help:    "Wall-clock duration of a complete journey query, including walk-fallback fan-out.",
			Buckets: prometheus.DefBuckets,
		}),
		IterationCapHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitplanner_search_iteration_cap_total",
			Help: "Number of queries whose returned result came from a Best-First Search that exhausted its iteration cap.",
		}),
		WalkFallbackRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitplanner_walk_fallback_invocations_total",
			Help: "Number of times the walk-fallback orchestrator retried the search from a nearby stop.",
		}),
		GeocodeCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitplanner_geocode_cache_hits_total",
			Help: "Geocoder client cache hits.",
		}),
		GeocodeCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transitplanner_geocode_cache_misses_total",
			Help: "Geocoder client cache misses.",
		}),
	}

	registry.MustRegister(
		m.QueryDuration,
		m.IterationCapHits,
		m.WalkFallbackRuns,
		m.GeocodeCacheHits,
		m.GeocodeCacheMisses,
	)

	return m
}
