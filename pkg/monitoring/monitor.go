package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	AttemptsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_recorded_total",
			Help: "Quiz attempts persisted",
		},
	)

	RetakeGrantsDeactivated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retake_grants_deactivated_total",
			Help: "Retake permissions closed out by attempt reconciliation",
		},
		[]string{"match"},
	)

	QuizzesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quizzes_deleted_total",
			Help: "Quizzes removed by cascading delete",
		},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_validation_failures_total",
			Help: "Rejected quiz and question writes",
		},
		[]string{"operation"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AttemptsRecorded)
	prometheus.MustRegister(RetakeGrantsDeactivated)
	prometheus.MustRegister(QuizzesDeleted)
	prometheus.MustRegister(ValidationFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
