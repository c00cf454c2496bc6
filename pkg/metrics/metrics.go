package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordLoad records an edge list load with its outcome
func (r *Registry) RecordLoad(status string, duration time.Duration, lines, edges int) {
	r.LoadsTotal.WithLabelValues(status).Inc()
	r.LoadDuration.Observe(duration.Seconds())
	r.LinesParsedTotal.Add(float64(lines))
	r.EdgesLoadedTotal.Add(float64(edges))
}

// RecordTraversal records a frontier expansion
func (r *Registry) RecordTraversal(duration time.Duration, nodesVisited int) {
	r.TraversalsTotal.Inc()
	r.TraversalDuration.Observe(duration.Seconds())
	r.TraversalNodesVisited.Observe(float64(nodesVisited))
}

// RecordReport records a statistics report computation
func (r *Registry) RecordReport(denominator, status string, duration time.Duration) {
	r.ReportsTotal.WithLabelValues(denominator, status).Inc()
	r.ReportDuration.Observe(duration.Seconds())

	if duration > time.Second {
		r.SlowReports.Inc()
	}
}

// SetGraphSize updates the graph size gauges after a load
func (r *Registry) SetGraphSize(nodes, distinctNodes, edges int) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphDistinctNodesTotal.Set(float64(distinctNodes))
	r.GraphEdgesTotal.Set(float64(edges))
}
