package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	status   *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewHTTPMetrics registers the collectors on reg.
func NewHTTPMetrics(reg *prometheus.Registry) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fyyur_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fyyur_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		status: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fyyur_http_status_category_total",
			Help: "Total number of responses by status category (2xx, 3xx, 4xx, 5xx)",
		}, []string{"category"}),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.duration, m.status)
	return m
}

// Middleware creates an Echo middleware function that records HTTP request
// metrics.  It expects the logger middleware (or another error sink) to
// have committed the response before it reads the status.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.requests.WithLabelValues(method, path, statusStr).Inc()
			m.duration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			if status >= 200 && status < 600 {
				m.status.WithLabelValues(strconv.Itoa(status/100) + "xx").Inc()
			}
			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
