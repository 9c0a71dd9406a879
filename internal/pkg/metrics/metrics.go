// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gracepath"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route"},
	)

	generationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Provider attempts by provider, content kind and outcome.",
		},
		[]string{"provider", "kind", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "attempt_duration_seconds",
			Help:      "Latency of provider attempts.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	generationFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "fallbacks_total",
			Help:      "Requests answered from the static fallback pool.",
		},
		[]string{"kind"},
	)

	rateLimitDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Rate limit decisions by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by namespace and result.",
		},
		[]string{"namespace", "result"},
	)

	moderationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "moderation",
			Name:      "rejections_total",
			Help:      "Inputs rejected by the content moderator.",
		},
		[]string{"endpoint", "code"},
	)
)

// Rate limit results.
const (
	RateLimitAllowed  = "allowed"
	RateLimitRejected = "rejected"
	RateLimitFailOpen = "fail_open"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		generationAttempts,
		generationDuration,
		generationFallbacks,
		rateLimitDecisions,
		cacheLookups,
		moderationRejections,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordGenerationAttempt records one provider attempt.
func RecordGenerationAttempt(provider, kind, outcome string, latency time.Duration) {
	if provider == "" {
		provider = "unknown"
	}
	generationAttempts.WithLabelValues(provider, kind, outcome).Inc()
	generationDuration.WithLabelValues(provider).Observe(latency.Seconds())
}

// RecordFallback counts a request served from the fallback pool.
func RecordFallback(kind string) {
	generationFallbacks.WithLabelValues(kind).Inc()
}

// RecordRateLimit counts a rate limit decision.
func RecordRateLimit(endpoint, result string) {
	rateLimitDecisions.WithLabelValues(endpoint, result).Inc()
}

// RecordCacheLookup counts a cache lookup.
func RecordCacheLookup(ns, result string) {
	cacheLookups.WithLabelValues(ns, result).Inc()
}

// RecordModerationRejection counts a moderated input.
func RecordModerationRejection(endpoint, code string) {
	moderationRejections.WithLabelValues(endpoint, code).Inc()
}
