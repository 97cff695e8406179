package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog request metrics
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog requests by operation and outcome.",
		},
		[]string{"operation", "status"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Latency of catalog requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Interaction flow metrics
var (
	FlowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_flows_total",
			Help: "Total number of user interaction flows (search, expand) by outcome.",
		},
		[]string{"flow", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		CatalogRequestsTotal,
		CatalogRequestDuration,
		FlowsTotal,
	)
}
