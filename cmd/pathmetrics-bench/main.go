package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/edgelist"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/parallel"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
	"github.com/dd0wney/cluso-pathmetrics/pkg/validation"
)

// maxQueries caps a benchmark run at something that finishes.
const maxQueries = 100000

func main() {
	file := flag.String("file", "", "Path to the edge list file")
	skip := flag.Int("skip", 4, "Header lines to skip before edge records")
	numQueries := flag.Int("queries", 100, "Number of single-source computations to run")
	batchSize := flag.Int("batch", 64, "Sources per parallel batch run")
	flag.Parse()

	if *file == "" {
		fmt.Println("Usage: pathmetrics-bench -file edges.txt [-queries 100] [-batch 64]")
		os.Exit(1)
	}

	// Zero or negative counts would divide by zero in the summary
	// blocks; clamp rather than error.
	queries := validation.ClampInt(*numQueries, 1, maxQueries)
	batch := validation.ClampInt(*batchSize, 1, validation.MaxBatchSources)

	fmt.Printf("🛣️  Path Metrics Benchmark\n")
	fmt.Printf("==========================\n\n")

	g := benchmarkLoad(*file, *skip)

	gs := g.GetStatistics()
	if gs.NodeCount == 0 {
		fmt.Printf("❌ Edge list produced an empty graph\n")
		os.Exit(1)
	}

	fmt.Printf("\n🎯 Running %d single-source computations...\n\n", queries)
	benchmarkCompute(g, queries)

	fmt.Printf("\n⚡ Running parallel batch scaling...\n\n")
	benchmarkParallel(g, batch)
}

func benchmarkLoad(path string, skip int) *graph.Graph {
	opts := edgelist.LoadOptions{SkipLines: skip}

	fmt.Printf("📂 Loading %s...\n\n", path)
	fmt.Printf("%-10s %-12s %-14s %s\n", "Reader", "Edges", "Time", "Edges/sec")
	fmt.Printf("──────────────────────────────────────────────────\n")

	start := time.Now()
	g, err := edgelist.LoadFile(path, opts)
	if err != nil {
		log.Fatalf("Failed to load edge list: %v", err)
	}
	buffered := time.Since(start)
	fmt.Printf("%-10s %-12d %-14s %.0f\n",
		"buffered", g.EdgeCount(), buffered.Round(time.Millisecond),
		float64(g.EdgeCount())/buffered.Seconds())

	start = time.Now()
	mg, err := edgelist.LoadFileMmap(path, opts)
	if err != nil {
		log.Fatalf("Failed to mmap edge list: %v", err)
	}
	mapped := time.Since(start)
	fmt.Printf("%-10s %-12d %-14s %.0f\n",
		"mmap", mg.EdgeCount(), mapped.Round(time.Millisecond),
		float64(mg.EdgeCount())/mapped.Seconds())

	gs := g.GetStatistics()
	fmt.Printf("\n   Sources:  %d\n", gs.NodeCount)
	fmt.Printf("   Distinct: %d\n", gs.DistinctNodeCount)
	fmt.Printf("   Edges:    %d\n", gs.EdgeCount)

	return g
}

func benchmarkCompute(g *graph.Graph, numQueries int) {
	sources := g.SourceNodes()

	results := struct {
		totalTime      time.Duration
		minTime        time.Duration
		maxTime        time.Duration
		totalReachable int
		maxHops        int
	}{
		minTime: time.Hour,
	}

	const displayLimit = 20

	fmt.Printf("%-8s %-12s %-12s %-10s %s\n", "Query", "Source", "Reachable", "Max hops", "Time")
	fmt.Printf("───────────────────────────────────────────────────────\n")

	for i := 0; i < numQueries; i++ {
		source := sources[rand.Intn(len(sources))]

		start := time.Now()
		rep, err := stats.Compute(g, source, stats.DefaultOptions())
		elapsed := time.Since(start)
		if err != nil {
			log.Fatalf("Computation failed for source %d: %v", source, err)
		}

		if i < displayLimit {
			fmt.Printf("#%-7d %-12d %-12d %-10d %s\n",
				i+1, source, rep.Reachable, rep.Max, elapsed)
		}

		results.totalTime += elapsed
		results.totalReachable += rep.Reachable
		if rep.Max > results.maxHops {
			results.maxHops = rep.Max
		}
		if elapsed < results.minTime {
			results.minTime = elapsed
		}
		if elapsed > results.maxTime {
			results.maxTime = elapsed
		}
	}
	if numQueries > displayLimit {
		fmt.Printf("... (%d more)\n", numQueries-displayLimit)
	}

	fmt.Printf("\n📈 Computation Statistics\n")
	fmt.Printf("─────────────────────────\n")
	fmt.Printf("Total queries:  %d\n", numQueries)
	fmt.Printf("Avg reachable:  %.1f nodes\n", float64(results.totalReachable)/float64(numQueries))
	fmt.Printf("Max distance:   %d hops\n", results.maxHops)
	fmt.Printf("\nPerformance:\n")
	fmt.Printf("  Average:      %s per query\n", results.totalTime/time.Duration(numQueries))
	fmt.Printf("  Min:          %s\n", results.minTime)
	fmt.Printf("  Max:          %s\n", results.maxTime)
	fmt.Printf("  Throughput:   %.0f queries/sec\n",
		float64(numQueries)/results.totalTime.Seconds())
}

func benchmarkParallel(g *graph.Graph, batchSize int) {
	sources := g.SourceNodes()
	if len(sources) > batchSize {
		sources = sources[:batchSize]
	}

	workerCounts := []int{1, 2, 4, 8}

	fmt.Printf("%-10s %-12s %-14s %s\n", "Workers", "Sources", "Time", "Speedup")
	fmt.Printf("────────────────────────────────────────────\n")

	var baseline time.Duration
	for _, workers := range workerCounts {
		start := time.Now()
		if _, err := parallel.ComputeAll(g, sources, stats.DefaultOptions(), workers); err != nil {
			log.Fatalf("Batch computation failed: %v", err)
		}
		elapsed := time.Since(start)

		if workers == 1 {
			baseline = elapsed
		}
		fmt.Printf("%-10d %-12d %-14s %.2fx\n",
			workers, len(sources), elapsed.Round(time.Millisecond),
			float64(baseline)/float64(elapsed))
	}
}
