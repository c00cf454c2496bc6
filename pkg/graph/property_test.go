package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGraphInvariants uses property-based testing to verify store invariants
// These properties should ALWAYS hold for any sequence of AddEdge calls
func TestGraphInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: NodeCount equals the number of distinct edge sources
	properties.Property("node count equals distinct sources", prop.ForAll(
		func(endpoints []uint64) bool {
			g := New()

			// Fold the slice into consecutive (from, to) pairs
			sources := make(map[uint64]struct{})
			for i := 0; i+1 < len(endpoints); i += 2 {
				g.AddEdge(endpoints[i], endpoints[i+1])
				sources[endpoints[i]] = struct{}{}
			}

			return g.NodeCount() == len(sources)
		},
		gen.SliceOf(gen.UInt64()),
	))

	// Property 2: Neighbors returns targets in insertion order, duplicates kept
	properties.Property("neighbors preserve insertion order", prop.ForAll(
		func(source uint64, targets []uint64) bool {
			g := New()

			for _, to := range targets {
				g.AddEdge(source, to)
			}

			neighbors := g.Neighbors(source)
			if len(neighbors) != len(targets) {
				return false
			}
			for i := range targets {
				if neighbors[i] != targets[i] {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.SliceOf(gen.UInt64()),
	))

	// Property 3: EdgeCount equals the number of AddEdge calls
	properties.Property("edge count equals edges added", prop.ForAll(
		func(endpoints []uint64) bool {
			g := New()

			added := 0
			for i := 0; i+1 < len(endpoints); i += 2 {
				g.AddEdge(endpoints[i], endpoints[i+1])
				added++
			}

			return g.EdgeCount() == added && g.GetStatistics().EdgesAdded == uint64(added)
		},
		gen.SliceOf(gen.UInt64()),
	))

	// Property 4: Every endpoint of a recorded edge is a known node
	properties.Property("endpoints are always seen", prop.ForAll(
		func(from, to uint64) bool {
			g := New()

			g.AddEdge(from, to)

			return g.HasNode(from) && g.HasNode(to)
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
