package graph

import (
	"sync/atomic"
)

// Statistics holds graph size and operation counters
type Statistics struct {
	NodeCount         int
	DistinctNodeCount int
	EdgeCount         int
	EdgesAdded        uint64
	NeighborQueries   uint64
}

// GetStatistics returns current graph statistics
func (g *Graph) GetStatistics() Statistics {
	return Statistics{
		NodeCount:         g.NodeCount(),
		DistinctNodeCount: g.DistinctNodeCount(),
		EdgeCount:         g.EdgeCount(),
		EdgesAdded:        atomic.LoadUint64(&g.edgesAdded),
		NeighborQueries:   atomic.LoadUint64(&g.neighborQueries),
	}
}
