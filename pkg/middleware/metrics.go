package middleware

import (
	"strconv"
	"time"

	"github.com/fitpulse/fitpulse-api/pkg/common"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig defines configuration for the Prometheus metrics middleware.
type MetricsConfig struct {
	// Registry the collectors are registered with.
	// prometheus.DefaultRegisterer when nil.
	Registry prometheus.Registerer

	// Namespace and Subsystem qualify the metric names, typically the
	// product and the service (e.g. "fitpulse", "meals").
	Namespace string
	Subsystem string

	EnableLatency    bool // record request duration histogram
	EnableThroughput bool // record response body size counter
}

// MetricsCollector holds the collectors shared across invocations.
// Construct one per service at cold start.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	bytes    *prometheus.CounterVec
}

// NewMetricsCollector creates and registers the service's collectors.
func NewMetricsCollector(config MetricsConfig) *MetricsCollector {
	registry := config.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	c := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "requests_total",
			Help:      "Requests dispatched, by method, route pattern, and status.",
		}, []string{"method", "route", "status"}),
	}
	registry.MustRegister(c.requests)

	if config.EnableLatency {
		c.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request duration, by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})
		registry.MustRegister(c.latency)
	}

	if config.EnableThroughput {
		c.bytes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "response_bytes_total",
			Help:      "Response body bytes written, by method and route pattern.",
		}, []string{"method", "route"})
		registry.MustRegister(c.bytes)
	}

	return c
}

// Metrics creates a middleware recording per-invocation metrics against
// the collector. The route label is the matched pattern, not the
// concrete path, to keep cardinality bounded.
func Metrics(collector *MetricsCollector) Middleware {
	return func(req *common.Request, next common.Continuation) (*common.Response, error) {
		start := time.Now()

		resp, err := next(req)

		route := req.Route
		if route == "" {
			route = "unmatched"
		}

		status := "error"
		if err == nil && resp != nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		collector.requests.WithLabelValues(req.Method, route, status).Inc()

		if collector.latency != nil {
			collector.latency.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
		}
		if collector.bytes != nil && resp != nil {
			collector.bytes.WithLabelValues(req.Method, route).Add(float64(len(resp.Body)))
		}

		return resp, err
	}
}
