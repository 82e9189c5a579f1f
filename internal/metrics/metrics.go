// Package metrics holds the Prometheus instrumentation for the aggregation
// service. All methods are safe to call on a nil *Metrics, which records
// nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	aggregations        *prometheus.CounterVec
	aggregationDuration *prometheus.HistogramVec
	degraded            *prometheus.CounterVec
	resolutions         *prometheus.CounterVec
	providerUp          *prometheus.GaugeVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinescope_aggregations_total",
			Help: "Media record aggregations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		aggregationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cinescope_aggregation_duration_seconds",
			Help:    "Time to build one media record.",
			Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 15, 30},
		}, []string{"kind"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinescope_degraded_total",
			Help: "Optional lookups that failed and fell back to neutral values, by source.",
		}, []string{"source"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinescope_letterboxd_resolutions_total",
			Help: "Letterboxd resolutions by the strategy that answered.",
		}, []string{"strategy"}),
		providerUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cinescope_provider_up",
			Help: "1 if the last connectivity check of a provider succeeded.",
		}, []string{"provider"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinescope_http_requests_total",
			Help: "Total HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cinescope_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.aggregations,
		m.aggregationDuration,
		m.degraded,
		m.resolutions,
		m.providerUp,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAggregation records one finished aggregation.
func (m *Metrics) ObserveAggregation(kind string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aggregations.WithLabelValues(kind, outcome).Inc()
	m.aggregationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Degraded counts a lookup that fell back to neutral values.
func (m *Metrics) Degraded(source string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(source).Inc()
}

// Resolved counts a Letterboxd resolution. strategy is "none" when every
// strategy came up empty.
func (m *Metrics) Resolved(strategy string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(strategy).Inc()
}

// SetProviderUp records the result of a provider connectivity check.
func (m *Metrics) SetProviderUp(provider string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.providerUp.WithLabelValues(provider).Set(v)
}

// Handler returns the scrape handler for GET /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency labelled by the route
// template rather than the raw URL.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			m.httpRequests.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
