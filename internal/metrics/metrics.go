// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served API requests by method, route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noteshare",
		Name:      "http_requests_total",
		Help:      "API requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes handler latency, including simulated latency.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "noteshare",
		Name:      "http_request_duration_seconds",
		Help:      "API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SnapshotWrites counts successful snapshot writes per store key.
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noteshare",
		Name:      "snapshot_writes_total",
		Help:      "Store snapshots written to durable storage, by key.",
	}, []string{"key"})

	// StoreResults counts store operations that return a Result, by operation and outcome.
	StoreResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "noteshare",
		Name:      "store_results_total",
		Help:      "Store operation outcomes, by operation and success.",
	}, []string{"operation", "success"})
)
