package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService owns the Prometheus registry and the collectors for HTTP
// traffic, cache effectiveness and auto-reply relay calls. A nil service is
// a no-op so tests can skip wiring it.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	relayRequests *prometheus.CounterVec
	relayDuration prometheus.Histogram
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache hits by key.",
		}, []string{"key"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache misses by key.",
		}, []string{"key"}),
		relayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Auto-reply relay attempts by outcome.",
		}, []string{"outcome"}),
		relayDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relay_duration_seconds",
			Help:    "Auto-reply relay latency including fallback handling.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
	}

	registry.MustRegister(
		m.httpRequests, m.httpDuration,
		m.cacheHits, m.cacheMisses,
		m.relayRequests, m.relayDuration,
	)
	return m
}

// Registry exposes the custom registry for the /metrics handler.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsService) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *MetricsService) RecordCacheHit(key string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(key).Inc()
}

func (m *MetricsService) RecordCacheMiss(key string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(key).Inc()
}

// RecordRelay tracks one relay attempt. Outcome is "generated" when the
// upstream produced text, "fallback" when the canned reply was used.
func (m *MetricsService) RecordRelay(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.relayRequests.WithLabelValues(outcome).Inc()
	m.relayDuration.Observe(duration.Seconds())
}
