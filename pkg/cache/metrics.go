package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aprovafacil_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks cache misses, including reads downgraded to a
	// miss because the backend was unreachable.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aprovafacil_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aprovafacil_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "clear", "stats"
	)

	// CacheItems tracks the number of live items per backend, updated
	// on statistics snapshots.
	CacheItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aprovafacil_cache_items",
			Help: "Number of items held by the cache backend",
		},
		[]string{"backend"},
	)
)
