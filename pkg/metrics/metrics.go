package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homequest_api_requests_total",
			Help: "Total number of API requests issued by the client",
		},
		[]string{"method", "path", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homequest_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	RetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "homequest_api_retries_total",
			Help: "Total number of retried API requests",
		},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "homequest_cache_hits_total",
			Help: "Total number of query cache hits",
		},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "homequest_cache_misses_total",
			Help: "Total number of query cache misses",
		},
	)
	CacheInvalidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "homequest_cache_invalidations_total",
			Help: "Total number of cache entries invalidated by mutations",
		},
	)
	CacheRefetchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "homequest_cache_refetches_total",
			Help: "Total number of automatic refetches triggered by invalidation",
		},
	)
)

func Init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(RetriesTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheInvalidationsTotal)
	prometheus.MustRegister(CacheRefetchesTotal)
}
