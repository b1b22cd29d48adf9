package service

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService owns the Prometheus registry and collectors.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	scheduleRuns     prometheus.Counter
	schedulePlaced   prometheus.Counter
	scheduleUnplaced prometheus.Counter

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetricsService registers the collectors on a fresh registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	s := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		scheduleRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Scheduler proposal generations.",
		}),
		schedulePlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_stores_placed_total",
			Help: "Stores placed across all scheduler runs.",
		}),
		scheduleUnplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_stores_unplaced_total",
			Help: "Stores left unplaced across all scheduler runs.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Dashboard cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Dashboard cache misses.",
		}),
	}

	registry.MustRegister(
		s.httpRequests,
		s.httpDuration,
		s.scheduleRuns,
		s.schedulePlaced,
		s.scheduleUnplaced,
		s.cacheHits,
		s.cacheMisses,
	)
	return s
}

// Registry exposes the registry for the metrics endpoint.
func (s *MetricsService) Registry() *prometheus.Registry {
	return s.registry
}

// RecordHTTPRequest counts a completed request and its latency.
func (s *MetricsService) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	s.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScheduleRun counts one scheduler run and its outcome sizes.
func (s *MetricsService) RecordScheduleRun(placed, unplaced int) {
	s.scheduleRuns.Inc()
	s.schedulePlaced.Add(float64(placed))
	s.scheduleUnplaced.Add(float64(unplaced))
}

// RecordCacheOperation counts a cache hit or miss.
func (s *MetricsService) RecordCacheOperation(hit bool) {
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}
