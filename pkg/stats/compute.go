package stats

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/traversal"
)

// Report bundles every statistic derived from a single traversal.
type Report struct {
	Source       uint64      `json:"source"`
	Denominator  Denominator `json:"denominator"`
	NodeCount    int         `json:"node_count"`
	Reachable    int         `json:"reachable"`
	Average      float64     `json:"average"`
	StdDev       float64     `json:"std_dev"`
	Max          int         `json:"max"`
	Min          int         `json:"min"`
	Median       int         `json:"median"`
	Distribution map[int]int `json:"distribution"`
}

// DistributionEntry is one row of a distance histogram.
type DistributionEntry struct {
	Distance int `json:"distance"`
	Count    int `json:"count"`
}

// Compute runs one traversal from source and derives all statistics
// from its distance map. The standalone per-statistic functions each
// traverse on their own; Compute shares a single traversal across all
// of them.
func Compute(g *graph.Graph, source uint64, opts Options) (*Report, error) {
	if opts.Denominator == "" {
		opts.Denominator = DenomEdgeSources
	}
	if !opts.Denominator.Valid() {
		return nil, fmt.Errorf("unknown denominator %q", opts.Denominator)
	}

	distances := traversal.DistanceMap(g, source)
	denom := denominatorValue(g, distances, opts.Denominator)

	avg, err := averageOf(distances, denom)
	if err != nil {
		return nil, err
	}
	stdDev, err := stdDevOf(distances, denom)
	if err != nil {
		return nil, err
	}

	return &Report{
		Source:       source,
		Denominator:  opts.Denominator,
		NodeCount:    g.NodeCount(),
		Reachable:    len(distances),
		Average:      avg,
		StdDev:       stdDev,
		Max:          maxOf(distances),
		Min:          minOf(distances),
		Median:       medianOf(distances),
		Distribution: distributionOf(distances),
	}, nil
}

// SortedDistribution flattens a histogram into rows ordered by
// ascending distance.
func SortedDistribution(distribution map[int]int) []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(distribution))
	for dist, count := range distribution {
		entries = append(entries, DistributionEntry{Distance: dist, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Distance < entries[j].Distance
	})
	return entries
}
