package graph

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Config tunes graph construction
type Config struct {
	// ExpectedNodes presizes the adjacency map (0 = no hint)
	ExpectedNodes int
}

// DefaultConfig returns the default graph configuration
func DefaultConfig() Config {
	return Config{}
}

// Graph is an in-memory directed graph stored as adjacency lists.
// Neighbor lists keep insertion order; duplicate edges and self-loops
// are recorded as given.
type Graph struct {
	mu        sync.RWMutex
	adjacency map[uint64][]uint64
	seen      map[uint64]struct{} // every node ID that appeared as an endpoint

	// Operation counters (atomic)
	edgesAdded      uint64
	neighborQueries uint64
}

// New creates an empty graph
func New() *Graph {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an empty graph with the given configuration
func NewWithConfig(config Config) *Graph {
	hint := config.ExpectedNodes
	if hint < 0 {
		hint = 0
	}
	return &Graph{
		adjacency: make(map[uint64][]uint64, hint),
		seen:      make(map[uint64]struct{}, hint),
	}
}

// AddEdge records a directed edge from -> to. It always succeeds:
// unknown endpoints are created implicitly, and duplicates and
// self-loops are appended like any other edge.
func (g *Graph) AddEdge(from, to uint64) {
	g.mu.Lock()
	g.adjacency[from] = append(g.adjacency[from], to)
	g.seen[from] = struct{}{}
	g.seen[to] = struct{}{}
	g.mu.Unlock()

	atomic.AddUint64(&g.edgesAdded, 1)
}

// Neighbors returns the out-neighbors of a node in insertion order.
// Nodes with no out-edges (or never seen at all) get an empty slice.
func (g *Graph) Neighbors(id uint64) []uint64 {
	atomic.AddUint64(&g.neighborQueries, 1)

	g.mu.RLock()
	defer g.mu.RUnlock()

	stored, exists := g.adjacency[id]
	if !exists {
		return []uint64{}
	}

	// Copy so callers can hold the slice across later AddEdge calls
	neighbors := make([]uint64, len(stored))
	copy(neighbors, stored)
	return neighbors
}

// NodeCount returns the number of nodes that have at least one
// out-edge. Nodes appearing only as edge targets are not counted.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency)
}

// DistinctNodeCount returns the number of distinct node IDs seen as
// either endpoint of any edge.
func (g *Graph) DistinctNodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.seen)
}

// EdgeCount returns the total number of recorded edges, duplicates
// included.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0
	for _, neighbors := range g.adjacency {
		total += len(neighbors)
	}
	return total
}

// HasNode reports whether the node ID appeared as any edge endpoint
func (g *Graph) HasNode(id uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.seen[id]
	return exists
}

// SourceNodes returns the IDs of all nodes with at least one
// out-edge, sorted ascending.
func (g *Graph) SourceNodes() []uint64 {
	g.mu.RLock()
	sources := make([]uint64, 0, len(g.adjacency))
	for id := range g.adjacency {
		sources = append(sources, id)
	}
	g.mu.RUnlock()

	sort.Slice(sources, func(i, j int) bool {
		return sources[i] < sources[j]
	})
	return sources
}
