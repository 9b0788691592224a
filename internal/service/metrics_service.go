package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	lookupDuration  *prometheus.HistogramVec
	placeholders    *prometheus.CounterVec
	superseded      *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	lookupDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_lookup_duration_seconds",
		Help:    "Duration of keyed document reads",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "found"})

	placeholders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "view_placeholders_total",
		Help: "Related documents rendered as placeholder labels",
	}, []string{"kind"})

	superseded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "view_requests_superseded_total",
		Help: "View loads discarded because a newer load of the same view started",
	}, []string{"view"})

	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, lookupDuration, placeholders, superseded, rateLimited, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		lookupDuration:  lookupDuration,
		placeholders:    placeholders,
		superseded:      superseded,
		rateLimited:     rateLimited,
	}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveDocumentLookup records keyed document read timing.
func (m *MetricsService) ObserveDocumentLookup(collection string, found bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.lookupDuration.WithLabelValues(collection, fmt.Sprintf("%t", found)).Observe(duration.Seconds())
}

// RecordPlaceholder counts a related document degraded to a placeholder.
func (m *MetricsService) RecordPlaceholder(kind string) {
	if m == nil {
		return
	}
	m.placeholders.WithLabelValues(kind).Inc()
}

// RecordSuperseded counts a discarded stale view load.
func (m *MetricsService) RecordSuperseded(view string) {
	if m == nil {
		return
	}
	m.superseded.WithLabelValues(view).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *MetricsService) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
