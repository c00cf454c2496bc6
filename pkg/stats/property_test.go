package stats

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
)

// buildGraph folds a flat endpoint list into consecutive (from, to)
// pairs. IDs are kept small so random graphs stay connected enough to
// be interesting.
func buildGraph(endpoints []uint64) *graph.Graph {
	g := graph.New()
	for i := 0; i+1 < len(endpoints); i += 2 {
		g.AddEdge(endpoints[i], endpoints[i+1])
	}
	return g
}

// TestStatisticsInvariants runs randomized property checks over the
// statistic derivations.
func TestStatisticsInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("distribution counts sum to reachable nodes", prop.ForAll(
		func(endpoints []uint64, source uint64) bool {
			g := buildGraph(endpoints)
			if g.NodeCount() == 0 {
				_, err := Compute(g, source, DefaultOptions())
				return err != nil
			}

			report, err := Compute(g, source, DefaultOptions())
			if err != nil {
				return false
			}
			total := 0
			for _, count := range report.Distribution {
				total += count
			}
			return total == report.Reachable
		},
		gen.SliceOf(gen.UInt64Range(0, 15)),
		gen.UInt64Range(0, 15),
	))

	properties.Property("median sits between min and max", prop.ForAll(
		func(endpoints []uint64, source uint64) bool {
			g := buildGraph(endpoints)
			if g.NodeCount() == 0 {
				return true
			}

			report, err := Compute(g, source, DefaultOptions())
			if err != nil {
				return false
			}
			return report.Min <= report.Median && report.Median <= report.Max
		},
		gen.SliceOf(gen.UInt64Range(0, 15)),
		gen.UInt64Range(0, 15),
	))

	properties.Property("standard deviation is non-negative and finite", prop.ForAll(
		func(endpoints []uint64, source uint64) bool {
			g := buildGraph(endpoints)
			if g.NodeCount() == 0 {
				return true
			}

			stdDev, err := StandardDeviation(g, source)
			if err != nil {
				return false
			}
			return stdDev >= 0 && !math.IsNaN(stdDev) && !math.IsInf(stdDev, 0)
		},
		gen.SliceOf(gen.UInt64Range(0, 15)),
		gen.UInt64Range(0, 15),
	))

	properties.Property("reachable denominator averages the distance map exactly", prop.ForAll(
		func(endpoints []uint64, source uint64) bool {
			g := buildGraph(endpoints)

			report, err := Compute(g, source, Options{Denominator: DenomReachable})
			if err != nil {
				return false
			}

			total := 0
			for dist, count := range report.Distribution {
				total += dist * count
			}
			want := float64(total) / float64(report.Reachable)
			return math.Abs(report.Average-want) < 1e-9
		},
		gen.SliceOf(gen.UInt64Range(0, 15)),
		gen.UInt64Range(0, 15),
	))

	properties.TestingRun(t)
}
