// Package metrics exposes Prometheus collectors for the backend service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	tuningJobTransitionsTotal  *prometheus.CounterVec
	docstoreOperationsTotal    *prometheus.CounterVec

	once        sync.Once
	initialized bool
)

// Init registers the Prometheus collectors. It is safe to call this function
// multiple times; recording functions are no-ops until it has been called.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and status.",
			},
			[]string{"method", "route", "status"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)

		tuningJobTransitionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuning_job_transitions_total",
				Help: "Total number of tuning job status transitions written by the lifecycle simulator.",
			},
			[]string{"status"},
		)

		docstoreOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docstore_operations_total",
				Help: "Total number of document store operations, labeled by backend, operation and outcome.",
			},
			[]string{"backend", "operation", "outcome"},
		)

		initialized = true
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if !initialized {
		return
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveTransition records one status write by the lifecycle simulator.
func ObserveTransition(status string) {
	if !initialized {
		return
	}
	tuningJobTransitionsTotal.WithLabelValues(status).Inc()
}

// ObserveStoreOperation records one document store call and its outcome.
func ObserveStoreOperation(backend, operation string, err error) {
	if !initialized {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	docstoreOperationsTotal.WithLabelValues(backend, operation, outcome).Inc()
}
