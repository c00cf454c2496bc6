// Package edgelist parses whitespace separated edge pair files into
// graphs. Files may carry a fixed number of header lines to skip, the
// layout used by the SNAP road network dumps.
package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/logging"
	"github.com/dd0wney/cluso-pathmetrics/pkg/metrics"
)

// ErrMalformedRecord is returned when an edge list line cannot be
// parsed as a pair of node IDs.
var ErrMalformedRecord = fmt.Errorf("malformed edge record")

const (
	// maxLineSize bounds the scanner buffer for unusually wide lines.
	maxLineSize = 1024 * 1024

	// progressInterval is how many edges pass between progress logs.
	progressInterval = 1000000
)

// LoadOptions configures edge list parsing.
type LoadOptions struct {
	// SkipLines is the number of header lines to discard before parsing.
	SkipLines int

	// ExpectedNodes pre-sizes the graph's adjacency index.
	ExpectedNodes int

	// Logger receives progress and outcome logs. Nil disables logging.
	Logger logging.Logger

	// Metrics receives load observations. Nil disables instrumentation.
	Metrics *metrics.Registry
}

// DefaultLoadOptions matches the SNAP dump layout: four header lines
// followed by tab separated node ID pairs.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SkipLines: 4}
}

// Load parses edge pairs from r into a new graph. Parsing is fail
// fast: the first malformed record aborts the load with its 1-based
// line number in the input.
func Load(r io.Reader, opts LoadOptions) (*graph.Graph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	start := time.Now()
	g := graph.NewWithConfig(graph.Config{ExpectedNodes: opts.ExpectedNodes})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	edges := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= opts.SkipLines {
			continue
		}

		from, to, err := parsePair(scanner.Text())
		if err != nil {
			if opts.Metrics != nil {
				opts.Metrics.RecordLoad("error", time.Since(start), lineNum, edges)
			}
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		g.AddEdge(from, to)
		edges++

		if edges%progressInterval == 0 {
			logger.Info("load progress",
				logging.Component("edgelist"),
				logging.Lines(lineNum),
				logging.Edges(edges),
			)
		}
	}
	if err := scanner.Err(); err != nil {
		if opts.Metrics != nil {
			opts.Metrics.RecordLoad("error", time.Since(start), lineNum, edges)
		}
		return nil, fmt.Errorf("reading edge list: %w", err)
	}

	elapsed := time.Since(start)
	if opts.Metrics != nil {
		opts.Metrics.RecordLoad("success", elapsed, lineNum, edges)
		opts.Metrics.SetGraphSize(g.NodeCount(), g.DistinctNodeCount(), g.EdgeCount())
	}
	logger.Info("edge list loaded",
		logging.Component("edgelist"),
		logging.Lines(lineNum),
		logging.Edges(edges),
		logging.Count(g.NodeCount()),
		logging.Latency(elapsed),
	)

	return g, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string, opts LoadOptions) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge list: %w", err)
	}
	defer f.Close()

	return Load(f, opts)
}

// LoadFileMmap memory maps path and parses it in place. Worth using
// for edge lists in the multi-gigabyte range where a second buffered
// pass through the page cache hurts.
func LoadFileMmap(path string, opts LoadOptions) (*graph.Graph, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap edge list: %w", err)
	}
	defer reader.Close()

	section := io.NewSectionReader(reader, 0, int64(reader.Len()))
	return Load(section, opts)
}

// parsePair splits one line into a (from, to) node ID pair.
func parsePair(line string) (uint64, uint64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d: %w", len(fields), ErrMalformedRecord)
	}

	from, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad source node %q: %w", fields[0], ErrMalformedRecord)
	}

	to, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad target node %q: %w", fields[1], ErrMalformedRecord)
	}

	return from, to, nil
}
