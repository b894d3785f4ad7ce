// Package metrics holds the process-wide Prometheus collectors
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Breaker states as exported on the state gauge
const (
	StateClosed   = 0
	StateHalfOpen = 1
	StateOpen     = 2
)

var (
	// SourceReadDuration times every read against the twin data store
	SourceReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twindata_read_duration_seconds",
			Help:    "Duration of twin data store reads",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"op", "result"}, // result: ok, error
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// AnalyticsRequests counts engine operations served over HTTP
	AnalyticsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_requests_total",
			Help: "Analytics operations served, by operation and error code or ok",
		},
		[]string{"op", "code"},
	)
)

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler { return promhttp.Handler() }
