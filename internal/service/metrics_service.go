package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes recorded by MetricsService.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// duty schedule generator.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	generationTotal    *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	assignmentsGauge   *prometheus.GaugeVec
	balanceGauge       *prometheus.GaugeVec
}

// NewMetricsService registers collectors on a private registry.
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

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duty_schedule_cache_lookups_total",
		Help: "Schedule cache lookups by result",
	}, []string{"result"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duty_schedule_generations_total",
		Help: "Duty schedule generation runs by term and outcome",
	}, []string{"term", "outcome", "code"})

	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "duty_schedule_generation_seconds",
		Help:    "Wall time of a duty schedule generation including persistence",
		Buckets: prometheus.DefBuckets,
	}, []string{"term"})

	assignmentsGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "duty_schedule_assignments",
		Help: "Assignments in the last committed schedule per term",
	}, []string{"term"})

	balanceGauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "duty_schedule_balance_score",
		Help: "Balance score of the last committed schedule per term",
	}, []string{"term"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLookups, generationTotal, generationDuration, assignmentsGauge, balanceGauge, goroutines)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		cacheLookups:       cacheLookups,
		generationTotal:    generationTotal,
		generationDuration: generationDuration,
		assignmentsGauge:   assignmentsGauge,
		balanceGauge:       balanceGauge,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
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

// RecordCacheLookup counts a schedule cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveGeneration records a generation run. code is empty on success.
func (m *MetricsService) ObserveGeneration(term, outcome, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(term, outcome, code).Inc()
	m.generationDuration.WithLabelValues(term).Observe(duration.Seconds())
}

// SetScheduleGauges publishes size and balance of the committed schedule.
func (m *MetricsService) SetScheduleGauges(term string, assignments int, balance float64) {
	if m == nil {
		return
	}
	m.assignmentsGauge.WithLabelValues(term).Set(float64(assignments))
	m.balanceGauge.WithLabelValues(term).Set(balance)
}
