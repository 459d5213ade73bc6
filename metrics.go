package bundlecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bundlecache_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bundlecache_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	cacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bundlecache_cache_errors_total",
			Help: "Total number of cache storage errors",
		},
		[]string{"operation"}, // "get", "put", "purge"
	)

	buildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bundlecache_build_duration_seconds",
			Help:    "Duration of bundle builds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	buildFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bundlecache_build_failures_total",
			Help: "Total number of failed bundle builds",
		},
	)

	notModified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bundlecache_not_modified_total",
			Help: "Total number of 304 Not Modified responses",
		},
	)
)
