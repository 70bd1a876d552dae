// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	auditEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_audit_entries_total",
			Help: "Audit entries recorded by the state store",
		},
		[]string{"action"},
	)

	advisorRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_advisor_requests_total",
			Help: "Resolution advisor calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	advisorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_advisor_request_duration_seconds",
			Help:    "Resolution advisor call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"provider"},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

// Advisor outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ObserveHTTP records one served request
func ObserveHTTP(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAudit counts one audit entry
func RecordAudit(action string) {
	auditEntriesTotal.WithLabelValues(action).Inc()
}

// ObserveAdvisor records one advisor call
func ObserveAdvisor(provider, outcome string, duration time.Duration) {
	advisorRequestsTotal.WithLabelValues(provider, outcome).Inc()
	advisorDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordRateLimited counts one rejected request
func RecordRateLimited(scope string) {
	rateLimitedTotal.WithLabelValues(scope).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
