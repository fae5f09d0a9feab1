package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec
	RequestDurationHistogram *prometheus.HistogramVec
	ImportedTransactions     *prometheus.CounterVec

	namespace string
)

// Init initializes all Prometheus metrics
func Init(prefix string) {
	namespace = prefix

	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		},
		[]string{"method", "path", "status"},
	)

	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ImportedTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_transactions_total",
			Help:      "Transactions imported from the payment processor",
		},
		[]string{"result"},
	)
}

// Middleware tracks request count, errors and duration per route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		APIRequestCounter.WithLabelValues(c.Request.Method, path).Inc()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		RequestDurationHistogram.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 400 {
			APIErrorCounter.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}

// Handler returns the /metrics endpoint handler
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordImport counts an import outcome ("imported" or "skipped")
func RecordImport(result string, n int) {
	if ImportedTransactions == nil {
		return
	}
	ImportedTransactions.WithLabelValues(result).Add(float64(n))
}
