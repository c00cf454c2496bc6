package traversal

import (
	"fmt"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
)

// Options configures a single-source traversal.
type Options struct {
	MaxDepth int // 0 = unbounded; otherwise stop expanding past this hop count
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{MaxDepth: 0}
}

// Result holds the outcome of a single-source traversal.
type Result struct {
	Source    uint64
	Distances map[uint64]int // node ID → hop count from Source
	Reachable int            // number of entries in Distances
	MaxDepth  int            // deepest hop count recorded
}

type frontierEntry struct {
	nodeID uint64
	dist   int
}

// DistanceMap performs an unbounded frontier expansion from source and
// returns the hop count to every reachable node. The source is always
// present at distance 0, even when it has no out-edges or was never
// recorded in the graph.
func DistanceMap(g *graph.Graph, source uint64) map[uint64]int {
	result, _ := Traverse(g, source, DefaultOptions())
	return result.Distances
}

// Traverse performs a breadth-first frontier expansion from source.
// Each node is enqueued at most once, at its first discovery; FIFO
// expansion makes that first-discovery distance the minimum hop count.
// Cycles, self-loops and duplicate edges cannot extend the work-list,
// so the traversal always terminates.
func Traverse(g *graph.Graph, source uint64, opts Options) (*Result, error) {
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("MaxDepth must be >= 0, got %d", opts.MaxDepth)
	}

	visited := map[uint64]bool{source: true}
	distances := make(map[uint64]int)
	maxDepth := 0

	queue := []frontierEntry{{nodeID: source, dist: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		distances[current.nodeID] = current.dist
		if current.dist > maxDepth {
			maxDepth = current.dist
		}

		if opts.MaxDepth > 0 && current.dist >= opts.MaxDepth {
			continue
		}

		for _, neighborID := range g.Neighbors(current.nodeID) {
			if visited[neighborID] {
				continue
			}
			visited[neighborID] = true
			queue = append(queue, frontierEntry{nodeID: neighborID, dist: current.dist + 1})
		}
	}

	return &Result{
		Source:    source,
		Distances: distances,
		Reachable: len(distances),
		MaxDepth:  maxDepth,
	}, nil
}
