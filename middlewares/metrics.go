package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	browseResults prometheus.Histogram
}

// NewMetrics registers the HTTP and catalog collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "food_catalog",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "food_catalog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		browseResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "food_catalog",
			Name:      "catalog_browse_results",
			Help:      "Items returned per catalog browse page.",
			Buckets:   []float64{0, 1, 3, 6, 9, 12},
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.browseResults)
	return m
}

// Handler records every request under its route template, not the raw path,
// so /food/:slug stays one series.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveBrowse(items int) {
	m.browseResults.Observe(float64(items))
}
