package api

import (
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// HealthResponse reports server liveness and basic graph state.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}

// MetricsResponse reports graph and process statistics as JSON.
// The Prometheus exposition lives at /metrics/prometheus.
type MetricsResponse struct {
	// Graph stats
	NodeCount         int `json:"node_count"`
	DistinctNodeCount int `json:"distinct_node_count"`
	EdgeCount         int `json:"edge_count"`

	// System stats
	MemoryUsedMB  uint64 `json:"memory_used_mb"`
	MemoryTotalMB uint64 `json:"memory_total_mb"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`

	// Server stats
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// BatchStatsRequest asks for statistics from several source nodes.
type BatchStatsRequest struct {
	Sources     []uint64 `json:"sources"`
	Denominator string   `json:"denominator,omitempty"`
	Workers     int      `json:"workers,omitempty"`
}

// BatchStatsResponse carries one report per requested source, ordered
// by source node ID.
type BatchStatsResponse struct {
	Count   int             `json:"count"`
	Reports []*stats.Report `json:"reports"`
	Time    string          `json:"time"`
}

// DistributionResponse carries the distance histogram for one source.
type DistributionResponse struct {
	Source    uint64                    `json:"source"`
	Reachable int                       `json:"reachable"`
	Entries   []stats.DistributionEntry `json:"entries"`
	Truncated bool                      `json:"truncated,omitempty"`
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
