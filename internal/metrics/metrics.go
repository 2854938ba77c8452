// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests counts HTTP requests by endpoint and status code.
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_pricing_requests_total",
			Help: "HTTP requests handled, by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	// Calculations times engine runs by mode.
	Calculations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_pricing_calculation_seconds",
			Help:    "Time spent pricing a plan",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"mode"},
	)

	// CalculationErrors counts engine failures by mode and error type.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_pricing_calculation_errors_total",
			Help: "Plans the engine refused to price",
		},
		[]string{"mode", "error_type"},
	)

	// InfeasiblePlans counts priced plans that had to be clamped.
	InfeasiblePlans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_pricing_infeasible_plans_total",
			Help: "Priced plans flagged infeasible, by diagnostic",
		},
		[]string{"mode", "diagnostic"},
	)

	// CacheLookups counts result cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_pricing_cache_lookups_total",
			Help: "Result cache lookups",
		},
		[]string{"result"},
	)
)
