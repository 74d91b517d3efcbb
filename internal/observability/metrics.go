// Package observability bundles logging and the Prometheus metrics exposed by
// the service. Metric vectors are registered once with the default registry at
// package init; the /metrics endpoint serves them via promhttp.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce"

// RequestsTotal counts handled HTTP requests by route, method and status.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"path", "method", "status"},
)

// RequestDuration measures request latency per route and method.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// ErrorsTotal counts requests that resolved to a DomainError, by error code.
var ErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of requests that produced an application error.",
	},
	[]string{"path", "method", "code"},
)

// LoginsTotal counts login attempts by outcome (success/failure).
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts completed account registrations by assigned role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by assigned role.",
	},
	[]string{"role"},
)

// RecordRequest observes one finished request.
func RecordRequest(path, method string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError counts one application error.
func RecordError(path, method, code string) {
	ErrorsTotal.WithLabelValues(path, method, code).Inc()
}
