package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics of the finance service on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	reportRuns       *prometheus.CounterVec
	reportDuration   *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	lineItemFailures prometheus.Counter
}

// NewMetrics initialises the registry and the service metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finance_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_report_generations_total",
		Help: "Report generations by report type and outcome.",
	}, []string{"report_type", "status"})
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finance_report_generation_duration_seconds",
		Help:    "Time spent building a report, including the ledger snapshot.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"report_type"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_report_cache_lookups_total",
		Help: "Report cache lookups by result.",
	}, []string{"result"})
	lineItems := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "finance_report_line_item_failures_total",
		Help: "Reports whose header was stored but whose line items failed to persist.",
	})
	registry.MustRegister(requests, duration, runs, reportDuration, cache, lineItems)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		reportRuns:       runs,
		reportDuration:   reportDuration,
		cacheLookups:     cache,
		lineItemFailures: lineItems,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// GinMiddleware records request counts and latency for every route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Registerer exposes the registry for custom collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// Gatherer exposes the registry for tests and push gateways.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}

// ReportTracker times one report generation.
type ReportTracker struct {
	metrics    *Metrics
	reportType string
	start      time.Time
}

// TrackReport starts timing a report generation.
func (m *Metrics) TrackReport(reportType string) *ReportTracker {
	return &ReportTracker{metrics: m, reportType: reportType, start: time.Now()}
}

// End records the duration and outcome and returns err untouched.
func (t *ReportTracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.reportRuns.WithLabelValues(t.reportType, status).Inc()
	t.metrics.reportDuration.WithLabelValues(t.reportType).Observe(time.Since(t.start).Seconds())
	return err
}

// CacheHit records a report cache hit.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheLookups.WithLabelValues("hit").Inc()
	}
}

// CacheMiss records a report cache miss.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheLookups.WithLabelValues("miss").Inc()
	}
}

// LineItemFailure records a report stored without its line items.
func (m *Metrics) LineItemFailure() {
	if m != nil {
		m.lineItemFailures.Inc()
	}
}
