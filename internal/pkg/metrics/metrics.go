package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safetrip_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StoreOperationDuration times document store calls by collection and operation.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safetrip_store_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)

	// StoreErrors counts failed document store calls.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_store_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"collection", "operation"},
	)

	// ListFallbacks counts list queries served by the full-scan path.
	ListFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_list_fallback_total",
			Help: "Ordered list queries that fell back to a full collection scan",
		},
		[]string{"collection"},
	)

	// ViewCountFailures counts swallowed view-count increments.
	ViewCountFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_view_count_failures_total",
			Help: "View count increments that failed and were dropped",
		},
		[]string{"collection"},
	)

	// CommentCountFailures counts comments whose parent counter was not incremented.
	CommentCountFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_comment_count_failures_total",
			Help: "Parent commentCount increments that failed after the comment was stored",
		},
		[]string{"parent"},
	)

	// AuthStateChanges counts sign-ins and sign-outs.
	AuthStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetrip_auth_state_changes_total",
			Help: "Completed sign-ins and sign-outs",
		},
		[]string{"event"},
	)
)

// ObserveStore records the duration and outcome of a store call.
func ObserveStore(collection, operation string, start time.Time, err error) {
	StoreOperationDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(collection, operation).Inc()
	}
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
