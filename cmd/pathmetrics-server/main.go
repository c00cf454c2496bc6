package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dd0wney/cluso-pathmetrics/pkg/api"
	"github.com/dd0wney/cluso-pathmetrics/pkg/config"
	"github.com/dd0wney/cluso-pathmetrics/pkg/edgelist"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/metrics"
	"github.com/dd0wney/cluso-pathmetrics/pkg/snapshot"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (default :8080, or set PORT)")
	file := flag.String("file", "", "Path to the edge list file")
	skip := flag.Int("skip", 4, "Header lines to skip before edge records")
	cache := flag.String("cache", "", "Snapshot cache path (read if present, written after parse)")
	useMmap := flag.Bool("mmap", false, "Memory map the edge list instead of buffered reads")
	configPath := flag.String("config", "", "Optional YAML run config (flags override file values)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.DefaultRunConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.ListenAddr = *addr
		case "file":
			cfg.File = *file
		case "skip":
			cfg.SkipLines = *skip
		case "cache":
			cfg.Cache = *cache
		}
	})

	// Get address from env if not provided
	if *addr == "" {
		if envPort := os.Getenv("PORT"); envPort != "" {
			cfg.ListenAddr = ":" + envPort
		}
	}

	if cfg.File == "" {
		fmt.Println("Usage: pathmetrics-server -file edges.txt [-addr :8080] [-cache graph.snap]")
		fmt.Println()
		fmt.Println("Serves shortest path statistics for a directed edge list over HTTP.")
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Cluso Path Metrics Server starting",
		"file", cfg.File,
		"addr", cfg.ListenAddr,
	)

	g, err := loadGraph(cfg, *useMmap, logger)
	if err != nil {
		logger.Error("failed to load graph", "error", err)
		os.Exit(1)
	}

	gs := g.GetStatistics()
	logger.Info("graph loaded",
		"nodes", gs.NodeCount,
		"distinct_nodes", gs.DistinctNodeCount,
		"edges", gs.EdgeCount,
	)

	server := api.NewServer(g, cfg.ListenAddr)
	// Load metrics were recorded on the default registry. Serve that
	// same registry so /metrics/prometheus includes them.
	server.SetRegistry(metrics.DefaultRegistry())
	if err := server.Start(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// loadGraph reads the snapshot cache when one exists, otherwise parses
// the edge list and writes the cache for next time.
func loadGraph(cfg *config.RunConfig, useMmap bool, logger *slog.Logger) (*graph.Graph, error) {
	if cfg.Cache != "" {
		g, err := snapshot.Read(cfg.Cache)
		if err == nil {
			logger.Info("loaded snapshot cache", "path", cfg.Cache)
			return g, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot cache %s: %w", cfg.Cache, err)
		}
	}

	opts := edgelist.LoadOptions{
		SkipLines: cfg.SkipLines,
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
			logger.Warn("snapshot cache write failed", "path", cfg.Cache, "error", err)
		} else {
			logger.Info("wrote snapshot cache", "path", cfg.Cache)
		}
	}

	return g, nil
}
