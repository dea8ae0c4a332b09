// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts full orchestrator runs.
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eataway_runs_total",
		Help: "Number of completed route generation runs.",
	})

	// DriverResults counts per-driver outcomes by status.
	DriverResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eataway_driver_results_total",
		Help: "Per-driver pipeline outcomes.",
	}, []string{"driver", "status"})

	// DirectionsDuration observes external directions-service call latency.
	DirectionsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eataway_directions_request_seconds",
		Help:    "Latency of directions service requests.",
		Buckets: prometheus.DefBuckets,
	})

	// RouteCacheLookups counts optimized-route cache hits and misses.
	RouteCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eataway_route_cache_lookups_total",
		Help: "Optimized-route cache lookups by outcome.",
	}, []string{"outcome"})
)
