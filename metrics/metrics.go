package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the dashboard collectors on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	normalized       prometheus.Counter
	matchScanRecords prometheus.Histogram
	exports          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "radar",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "radar",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	m.normalized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "radar",
		Name:      "mentions_normalized_total",
		Help:      "Mention records normalized into timeline events",
	})
	m.matchScanRecords = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "radar",
		Name:      "keyword_match_scan_records",
		Help:      "Records scanned per keyword mention count",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500},
	})
	m.exports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "radar",
		Name:      "mention_exports_total",
		Help:      "Mention reports produced, by action (copy, download)",
	}, []string{"action"})

	m.Registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.normalized,
		m.matchScanRecords,
		m.exports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ObserveNormalized(n int) {
	m.normalized.Add(float64(n))
}

func (m *Metrics) ObserveMatchScan(records int) {
	m.matchScanRecords.Observe(float64(records))
}

func (m *Metrics) ObserveExport(action string) {
	m.exports.WithLabelValues(action).Inc()
}
