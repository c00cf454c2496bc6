package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/pools"
	"github.com/dd0wney/cluso-pathmetrics/pkg/traversal"
)

// ErrEmptyGraph is returned when a statistic divides by a node count
// and the selected denominator is zero.
var ErrEmptyGraph = fmt.Errorf("graph has no nodes")

// Denominator selects which node population divides path-length sums.
type Denominator string

const (
	// DenomEdgeSources divides by the number of nodes with at least one
	// out-edge. Legacy behavior and the default.
	DenomEdgeSources Denominator = "edge-sources"
	// DenomReachable divides by the number of nodes the traversal reached.
	DenomReachable Denominator = "reachable"
	// DenomDistinctNodes divides by every node ID seen as an edge endpoint.
	DenomDistinctNodes Denominator = "distinct"
)

// Valid reports whether d names a known denominator mode.
func (d Denominator) Valid() bool {
	switch d {
	case DenomEdgeSources, DenomReachable, DenomDistinctNodes:
		return true
	}
	return false
}

// Options configures statistic computation.
type Options struct {
	Denominator Denominator
}

// DefaultOptions returns the legacy denominator.
func DefaultOptions() Options {
	return Options{Denominator: DenomEdgeSources}
}

// AverageShortestPathLength returns the mean hop count from source,
// summing over every reachable node and dividing by the legacy
// denominator (nodes with out-edges).
func AverageShortestPathLength(g *graph.Graph, source uint64) (float64, error) {
	return AverageShortestPathLengthWithOptions(g, source, DefaultOptions())
}

// AverageShortestPathLengthWithOptions is AverageShortestPathLength
// with an explicit denominator choice.
func AverageShortestPathLengthWithOptions(g *graph.Graph, source uint64, opts Options) (float64, error) {
	distances := traversal.DistanceMap(g, source)
	return averageOf(distances, denominatorValue(g, distances, opts.Denominator))
}

// StandardDeviation returns the population standard deviation of hop
// counts from source, using the same denominator as the average.
func StandardDeviation(g *graph.Graph, source uint64) (float64, error) {
	return StandardDeviationWithOptions(g, source, DefaultOptions())
}

// StandardDeviationWithOptions is StandardDeviation with an explicit
// denominator choice.
func StandardDeviationWithOptions(g *graph.Graph, source uint64, opts Options) (float64, error) {
	distances := traversal.DistanceMap(g, source)
	return stdDevOf(distances, denominatorValue(g, distances, opts.Denominator))
}

// MaxShortestPathLength returns the largest hop count from source.
// An empty distance map yields the maximum representable int.
func MaxShortestPathLength(g *graph.Graph, source uint64) int {
	return maxOf(traversal.DistanceMap(g, source))
}

// MinShortestPathLength returns the smallest hop count from source.
// An empty distance map yields the maximum representable int.
func MinShortestPathLength(g *graph.Graph, source uint64) int {
	return minOf(traversal.DistanceMap(g, source))
}

// MedianShortestPathLength returns the median hop count from source.
// Even-sized value sets average the two middle values with integer
// truncation.
func MedianShortestPathLength(g *graph.Graph, source uint64) int {
	return medianOf(traversal.DistanceMap(g, source))
}

// DistanceDistribution returns a histogram of hop counts from source:
// distance → number of nodes at that distance.
func DistanceDistribution(g *graph.Graph, source uint64) map[int]int {
	return distributionOf(traversal.DistanceMap(g, source))
}

// denominatorValue resolves a denominator mode against the graph and
// the traversal's distance map. Unknown modes fall back to the legacy
// edge-source count.
func denominatorValue(g *graph.Graph, distances map[uint64]int, d Denominator) int {
	switch d {
	case DenomReachable:
		return len(distances)
	case DenomDistinctNodes:
		return g.DistinctNodeCount()
	default:
		return g.NodeCount()
	}
}

func averageOf(distances map[uint64]int, denom int) (float64, error) {
	if denom == 0 {
		return 0, ErrEmptyGraph
	}

	total := 0
	for _, dist := range distances {
		total += dist
	}
	return float64(total) / float64(denom), nil
}

func stdDevOf(distances map[uint64]int, denom int) (float64, error) {
	avg, err := averageOf(distances, denom)
	if err != nil {
		return 0, err
	}

	sumSquares := 0.0
	for _, dist := range distances {
		diff := float64(dist) - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(denom)), nil
}

func maxOf(distances map[uint64]int) int {
	if len(distances) == 0 {
		return math.MaxInt
	}

	max := 0
	for _, dist := range distances {
		if dist > max {
			max = dist
		}
	}
	return max
}

func minOf(distances map[uint64]int) int {
	if len(distances) == 0 {
		return math.MaxInt
	}

	min := math.MaxInt
	for _, dist := range distances {
		if dist < min {
			min = dist
		}
	}
	return min
}

func medianOf(distances map[uint64]int) int {
	if len(distances) == 0 {
		return 0
	}

	// Use pooled buffer for collecting and sorting values
	values := pools.GetInts(len(distances))
	for _, dist := range distances {
		values = append(values, dist)
	}
	sort.Ints(values)

	n := len(values)
	var median int
	if n%2 == 1 {
		median = values[n/2]
	} else {
		median = (values[n/2-1] + values[n/2]) / 2
	}

	pools.PutInts(values)
	return median
}

func distributionOf(distances map[uint64]int) map[int]int {
	distribution := make(map[int]int)
	for _, dist := range distances {
		distribution[dist]++
	}
	return distribution
}
