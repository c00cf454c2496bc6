package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/config"
	"github.com/dd0wney/cluso-pathmetrics/pkg/edgelist"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/logging"
	"github.com/dd0wney/cluso-pathmetrics/pkg/metrics"
	"github.com/dd0wney/cluso-pathmetrics/pkg/parallel"
	"github.com/dd0wney/cluso-pathmetrics/pkg/report"
	"github.com/dd0wney/cluso-pathmetrics/pkg/snapshot"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

func main() {
	file := flag.String("file", "", "Path to the edge list file")
	skip := flag.Int("skip", 4, "Header lines to skip before edge records")
	source := flag.Uint64("source", 0, "Source node for single-source statistics")
	sourcesFlag := flag.String("sources", "", "Comma separated source nodes for batch mode")
	denominator := flag.String("denominator", string(stats.DenomEdgeSources), "Average denominator: edge-sources, reachable, or distinct")
	workers := flag.Int("workers", 4, "Batch mode concurrency")
	top := flag.Int("top", 10, "Distribution rows to show in text reports")
	format := flag.String("format", "text", "Output format: text or json")
	cache := flag.String("cache", "", "Snapshot cache path (read if present, written after parse)")
	useMmap := flag.Bool("mmap", false, "Memory map the edge list instead of buffered reads")
	configPath := flag.String("config", "", "Optional YAML run config (flags override file values)")
	flag.Parse()

	cfg := config.DefaultRunConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags the user passed explicitly override the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.File = *file
		case "skip":
			cfg.SkipLines = *skip
		case "source":
			cfg.Source = *source
		case "denominator":
			cfg.Denominator = *denominator
		case "workers":
			cfg.Workers = *workers
		case "top":
			cfg.Top = *top
		case "format":
			cfg.Format = *format
		case "cache":
			cfg.Cache = *cache
		}
	})
	if *sourcesFlag != "" {
		parsed, err := parseSources(*sourcesFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			os.Exit(1)
		}
		cfg.Sources = parsed
	}

	if cfg.File == "" {
		fmt.Println("Usage: pathmetrics -file edges.txt [-source 0] [-sources 0,42,7] [-denominator edge-sources] [-format text]")
		fmt.Println()
		fmt.Println("Computes shortest path statistics over a directed edge list.")
		fmt.Println("Edge lists are SNAP-style dumps: header lines followed by")
		fmt.Println("whitespace separated 'from to' node ID pairs.")
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The report goes to stdout; progress and logs go to stderr so
	// json output stays pipeable.
	logger := logging.DefaultLogger().With(logging.Component("pathmetrics"))

	fmt.Fprintf(os.Stderr, "🚀 Path metrics - loading %s\n", cfg.File)
	start := time.Now()
	g, err := loadGraph(cfg, *useMmap, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ load failed: %v\n", err)
		os.Exit(1)
	}
	gs := g.GetStatistics()
	fmt.Fprintf(os.Stderr, "✅ Graph ready: %d source nodes, %d distinct nodes, %d edges (%.2fs)\n",
		gs.NodeCount, gs.DistinctNodeCount, gs.EdgeCount, time.Since(start).Seconds())

	opts := stats.Options{Denominator: stats.Denominator(cfg.Denominator)}

	var doc *report.Document
	if len(cfg.Sources) > 0 {
		fmt.Fprintf(os.Stderr, "📊 Computing statistics for %d sources (%d workers)\n", len(cfg.Sources), cfg.Workers)
		results, err := parallel.ComputeAll(g, cfg.Sources, opts, cfg.Workers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ batch computation failed: %v\n", err)
			os.Exit(1)
		}
		doc = report.NewFromMap(results)
	} else {
		fmt.Fprintf(os.Stderr, "📊 Computing statistics from source node %d\n", cfg.Source)
		rep, err := stats.Compute(g, cfg.Source, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ computation failed: %v\n", err)
			os.Exit(1)
		}
		doc = report.New(rep)
	}

	switch cfg.Format {
	case "json":
		err = report.JSON(os.Stdout, doc)
	default:
		err = report.Text(os.Stdout, doc, cfg.Top)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ rendering failed: %v\n", err)
		os.Exit(1)
	}
}

// loadGraph reads the snapshot cache when one exists, otherwise parses
// the edge list and writes the cache for next time.
func loadGraph(cfg *config.RunConfig, useMmap bool, logger logging.Logger) (*graph.Graph, error) {
	if cfg.Cache != "" {
		g, err := snapshot.Read(cfg.Cache)
		if err == nil {
			fmt.Fprintf(os.Stderr, "💾 Loaded snapshot cache %s\n", cfg.Cache)
			return g, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot cache %s: %w", cfg.Cache, err)
		}
	}

	opts := edgelist.LoadOptions{
		SkipLines: cfg.SkipLines,
		Logger:    logger,
		Metrics:   metrics.DefaultRegistry(),
	}
	load := edgelist.LoadFile
	if useMmap {
		load = edgelist.LoadFileMmap
	}

	g, err := load(cfg.File, opts)
	if err != nil {
		return nil, err
	}

	if cfg.Cache != "" {
		if err := snapshot.Write(cfg.Cache, g); err != nil {
			logger.Warn("snapshot cache write failed",
				logging.Path(cfg.Cache),
				logging.Error(err),
			)
		} else {
			fmt.Fprintf(os.Stderr, "💾 Wrote snapshot cache %s\n", cfg.Cache)
		}
	}

	return g, nil
}

// parseSources splits a comma separated node ID list.
func parseSources(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	sources := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad source node %q", part)
		}
		sources = append(sources, id)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no source nodes in %q", s)
	}
	return sources, nil
}
