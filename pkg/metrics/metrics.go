package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	DiagnosesTotal         *prometheus.CounterVec
	EmergencyFlagsForced   prometheus.Counter
	DegradedResponsesTotal prometheus.Counter

	ExternalCallDuration *prometheus.HistogramVec
	RetryAttemptsTotal   *prometheus.CounterVec

	RateLimitedRequests prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		DiagnosesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "pipeline",
			Name:      "diagnoses_total",
			Help:      "Total diagnosis requests by terminal outcome.",
		}, []string{"outcome"}),

		EmergencyFlagsForced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "pipeline",
			Name:      "emergency_flags_forced_total",
			Help:      "Assessments where the pre-screener detected an emergency.",
		}),

		DegradedResponsesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "pipeline",
			Name:      "degraded_responses_total",
			Help:      "Responses served from the fixed insufficient-evidence fallback.",
		}),

		ExternalCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "External dependency call latency distribution.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 20.0, 45.0},
		}, []string{"dependency"}),

		RetryAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "upstream",
			Name:      "retry_attempts_total",
			Help:      "Rate-limit retries by external dependency.",
		}, []string{"dependency"}),

		RateLimitedRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "rate_limited_requests_total",
			Help:      "Inbound requests rejected by the per-IP rate limiter.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
