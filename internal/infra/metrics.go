package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequests counts calls to the club backend by method and status
	// ("error" when no response came back).
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caisse",
		Name:      "backend_requests_total",
		Help:      "Requests sent to the club backend.",
	}, []string{"method", "status"})

	// Dispatches counts reducer actions applied to terminal states.
	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caisse",
		Name:      "dispatches_total",
		Help:      "Actions dispatched to terminal working states.",
	}, []string{"action"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "caisse",
		Name:      "http_request_duration_seconds",
		Help:      "Local API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
