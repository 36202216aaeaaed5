package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API collectors on a private registry so several servers
// can live in one process.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	evaluations       *prometheus.CounterVec
	stageFallbacks    prometheus.Counter
	overallIndex      prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stress_evaluations_total",
			Help: "Total stress evaluations by severity and whether they were stored.",
		}, []string{"severity", "persisted"}),
		stageFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stress_stage_fallbacks_total",
			Help: "Evaluations scored with vegetative tables because the stage was unknown.",
		}),
		overallIndex: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stress_overall_index",
			Help:    "Distribution of overall stress indices.",
			Buckets: []float64{15, 30, 50, 70, 100},
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.evaluations,
		m.stageFallbacks,
		m.overallIndex,
	)
	return m
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Evaluation records one scored snapshot.
func (m *Metrics) Evaluation(severity string, overall float64, persisted, fallback bool) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(severity, strconv.FormatBool(persisted)).Inc()
	m.overallIndex.Observe(overall)
	if fallback {
		m.stageFallbacks.Inc()
	}
}
