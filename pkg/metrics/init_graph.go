package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathmetrics_graph_nodes_total",
			Help: "Number of nodes with at least one outgoing edge",
		},
	)

	r.GraphDistinctNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathmetrics_graph_distinct_nodes_total",
			Help: "Number of distinct node IDs seen as edge endpoints",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pathmetrics_graph_edges_total",
			Help: "Number of edges currently held in the graph",
		},
	)
}
