package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTraversalMetrics() {
	r.TraversalsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pathmetrics_traversals_total",
			Help: "Total number of frontier expansions executed",
		},
	)

	r.TraversalDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathmetrics_traversal_duration_seconds",
			Help:    "Frontier expansion duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)

	r.TraversalNodesVisited = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathmetrics_traversal_nodes_visited",
			Help:    "Number of nodes visited per traversal",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
	)
}
