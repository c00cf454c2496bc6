package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLoadMetrics() {
	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathmetrics_loads_total",
			Help: "Total number of edge list loads",
		},
		[]string{"status"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathmetrics_load_duration_seconds",
			Help:    "Edge list load duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)

	r.LinesParsedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pathmetrics_lines_parsed_total",
			Help: "Total number of edge list lines parsed",
		},
	)

	r.EdgesLoadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pathmetrics_edges_loaded_total",
			Help: "Total number of edges added from loads",
		},
	)
}
