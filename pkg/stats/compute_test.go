package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
)

// TestCompute_Diamond tests that a single-traversal report carries every
// statistic.
func TestCompute_Diamond(t *testing.T) {
	g := diamondGraph()

	report, err := Compute(g, 0, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.Source != 0 {
		t.Errorf("expected source 0, got %d", report.Source)
	}
	if report.Denominator != DenomEdgeSources {
		t.Errorf("expected denominator %q, got %q", DenomEdgeSources, report.Denominator)
	}
	if report.NodeCount != 3 {
		t.Errorf("expected node count 3, got %d", report.NodeCount)
	}
	if report.Reachable != 4 {
		t.Errorf("expected 4 reachable nodes, got %d", report.Reachable)
	}
	if math.Abs(report.Average-4.0/3.0) > epsilon {
		t.Errorf("expected average %f, got %f", 4.0/3.0, report.Average)
	}
	if math.Abs(report.StdDev-math.Sqrt(22.0/27.0)) > epsilon {
		t.Errorf("expected std dev %f, got %f", math.Sqrt(22.0/27.0), report.StdDev)
	}
	if report.Max != 2 {
		t.Errorf("expected max 2, got %d", report.Max)
	}
	if report.Min != 0 {
		t.Errorf("expected min 0, got %d", report.Min)
	}
	if report.Median != 1 {
		t.Errorf("expected median 1, got %d", report.Median)
	}
	if len(report.Distribution) != 3 {
		t.Errorf("expected 3 distribution buckets, got %d", len(report.Distribution))
	}
}

// TestCompute_DefaultsDenominator tests that a zero-value denominator
// falls back to edge sources.
func TestCompute_DefaultsDenominator(t *testing.T) {
	g := diamondGraph()

	report, err := Compute(g, 0, Options{})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if report.Denominator != DenomEdgeSources {
		t.Errorf("expected default denominator %q, got %q", DenomEdgeSources, report.Denominator)
	}
}

// TestCompute_UnknownDenominator tests rejection of unrecognized modes.
func TestCompute_UnknownDenominator(t *testing.T) {
	g := diamondGraph()

	_, err := Compute(g, 0, Options{Denominator: "per-galaxy"})
	if err == nil {
		t.Fatal("expected error for unknown denominator")
	}
}

// TestCompute_EmptyGraph tests the empty-graph sentinel.
func TestCompute_EmptyGraph(t *testing.T) {
	g := graph.New()

	_, err := Compute(g, 0, DefaultOptions())
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("expected ErrEmptyGraph, got %v", err)
	}
}

// TestCompute_MatchesStandaloneFunctions tests that sharing one
// traversal produces the same numbers as traversing per statistic.
func TestCompute_MatchesStandaloneFunctions(t *testing.T) {
	g := graph.New()
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 4)
	g.AddEdge(2, 3)
	g.AddEdge(3, 4)
	g.AddEdge(4, 0)

	report, err := Compute(g, 0, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	avg, err := AverageShortestPathLength(g, 0)
	if err != nil {
		t.Fatalf("AverageShortestPathLength failed: %v", err)
	}
	stdDev, err := StandardDeviation(g, 0)
	if err != nil {
		t.Fatalf("StandardDeviation failed: %v", err)
	}

	if report.Average != avg {
		t.Errorf("average mismatch: report %f, standalone %f", report.Average, avg)
	}
	if report.StdDev != stdDev {
		t.Errorf("std dev mismatch: report %f, standalone %f", report.StdDev, stdDev)
	}
	if report.Max != MaxShortestPathLength(g, 0) {
		t.Error("max mismatch between report and standalone function")
	}
	if report.Min != MinShortestPathLength(g, 0) {
		t.Error("min mismatch between report and standalone function")
	}
	if report.Median != MedianShortestPathLength(g, 0) {
		t.Error("median mismatch between report and standalone function")
	}
}

// TestSortedDistribution_AscendingOrder tests row ordering by distance.
func TestSortedDistribution_AscendingOrder(t *testing.T) {
	entries := SortedDistribution(map[int]int{3: 7, 0: 1, 2: 5, 1: 2})

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i, want := range []DistributionEntry{{0, 1}, {1, 2}, {2, 5}, {3, 7}} {
		if entries[i] != want {
			t.Errorf("entry %d: expected %+v, got %+v", i, want, entries[i])
		}
	}
}

// TestSortedDistribution_Empty tests the empty histogram.
func TestSortedDistribution_Empty(t *testing.T) {
	entries := SortedDistribution(map[int]int{})
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
