package monitoring

import (
	"strconv"
	"sync"
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

	// 作答提交次数
	ScoresSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_scores_submitted_total",
			Help: "Total number of submitted quiz attempts",
		},
	)

	ScoresFlagged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_scores_flag_changes_total",
			Help: "Flag changes made by administrators on quiz attempts",
		},
		[]string{"flagged"},
	)

	// kind: image / recording, result: ok / skipped / error
	UploadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_uploads_total",
			Help: "Uploaded files by kind and result",
		},
		[]string{"kind", "result"},
	)

	// 当前 websocket 连接数
	ChatConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_ws_connections",
			Help: "Number of open chat websocket connections",
		},
	)
)

var initOnce sync.Once

// Init 注册全部指标，可重复调用
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(ScoresSubmitted)
		prometheus.MustRegister(ScoresFlagged)
		prometheus.MustRegister(UploadCounter)
		prometheus.MustRegister(ChatConnections)
	})
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
