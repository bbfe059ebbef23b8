package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests served by the console
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// RemoteRequestsTotal tracks calls to the remote beer service
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_remote_requests_total",
			Help: "Total number of calls made to the remote beer service",
		},
		[]string{"method", "resource", "status"},
	)

	// RemoteRequestDuration tracks remote call latency
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_remote_request_duration_seconds",
			Help:    "Remote beer service call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"service", "circuit_name"},
	)

	// CircuitBreakerFailures tracks circuit breaker failures
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"service", "circuit_name"},
	)

	// BulkheadActiveRequests tracks remote calls in flight during view loads
	BulkheadActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bulkhead_active_requests",
			Help: "Number of active requests in bulkhead",
		},
		[]string{"service", "bulkhead_name"},
	)

	// ViewLoadsTotal tracks view loads by outcome
	ViewLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_view_loads_total",
			Help: "Total number of view loads",
		},
		[]string{"view", "outcome"},
	)

	// OrderSubmissionsTotal tracks order draft submissions by outcome
	OrderSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_order_submissions_total",
			Help: "Total number of order draft submissions",
		},
		[]string{"outcome"},
	)

	// StatusChangesTotal tracks order status change requests
	StatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_status_changes_total",
			Help: "Total number of order status change requests",
		},
		[]string{"to", "outcome"},
	)

	// LowStockBeers tracks how many beers were below the stock threshold at the last dashboard load
	LowStockBeers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_low_stock_beers",
			Help: "Number of beers below the low stock threshold",
		},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(
			serviceName,
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()

		RequestDuration.WithLabelValues(
			serviceName,
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// Outcome labels a result for the outcome-based counters.
func Outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "succeeded"
}
