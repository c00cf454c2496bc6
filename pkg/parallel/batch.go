package parallel

import (
	"fmt"
	"sync"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// ComputeAll computes one statistics report per source, fanned out
// across a worker pool. The graph is shared read-only between workers;
// each traversal owns its own state. Results are keyed by source, so
// duplicate sources collapse to a single entry.
//
// The first failing source poisons the batch: queued work returns
// early and the error is reported with its source.
func ComputeAll(g *graph.Graph, sources []uint64, opts stats.Options, workers int) (map[uint64]*stats.Report, error) {
	results := make(map[uint64]*stats.Report, len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	pool, err := NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		firstErr error
	)

	for _, source := range sources {
		pool.Submit(func() {
			mu.Lock()
			poisoned := firstErr != nil
			mu.Unlock()
			if poisoned {
				return
			}

			report, err := stats.Compute(g, source, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("source %d: %w", source, err)
				}
				return
			}
			results[source] = report
		})
	}

	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
