package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Load Metrics
	LoadsTotal       *prometheus.CounterVec
	LoadDuration     prometheus.Histogram
	LinesParsedTotal prometheus.Counter
	EdgesLoadedTotal prometheus.Counter

	// Graph Metrics
	GraphNodesTotal         prometheus.Gauge
	GraphDistinctNodesTotal prometheus.Gauge
	GraphEdgesTotal         prometheus.Gauge

	// Traversal Metrics
	TraversalsTotal       prometheus.Counter
	TraversalDuration     prometheus.Histogram
	TraversalNodesVisited prometheus.Histogram

	// Report Metrics
	ReportsTotal   *prometheus.CounterVec
	ReportDuration prometheus.Histogram
	SlowReports    prometheus.Counter

	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initLoadMetrics()
	r.initGraphMetrics()
	r.initTraversalMetrics()
	r.initReportMetrics()
	r.initHTTPMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
