// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ft_generation_duration_seconds",
			Help:    "Time spent synthesizing a payload",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"}, // "density", "traffic"
	)

	GeneratedPoints = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ft_generated_points",
			Help:    "Number of samples or cells in a generated payload",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		},
		[]string{"kind"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_cache_hits_total",
			Help: "Cache lookups that found an entry",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_cache_misses_total",
			Help: "Cache lookups that found nothing",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_cache_evictions_total",
			Help: "Entries evicted to respect cache capacity",
		},
		[]string{"cache"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_api_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ft_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	WarmerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ft_cache_warmer_runs_total",
			Help: "Cache warmer iterations by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordGeneration(kind string, duration time.Duration, points int) {
	GenerationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	GeneratedPoints.WithLabelValues(kind).Observe(float64(points))
}

func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

func RecordCacheEviction(cache string) {
	CacheEvictions.WithLabelValues(cache).Inc()
}

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APILatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordWarmerRun(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	WarmerRuns.WithLabelValues(outcome).Inc()
}
