// Package report renders statistics reports for humans and machines.
//
// A Document wraps one or more per-source reports with a run ID and a
// timestamp so batch output stays traceable. Text writes the aligned
// console layout, JSON the machine-readable one.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// Document is a complete statistics run ready for rendering.
type Document struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Reports     []*stats.Report `json:"reports"`
}

// New wraps reports in a Document with a fresh run ID. Reports are
// ordered by source node so output is deterministic.
func New(reports ...*stats.Report) *Document {
	doc := &Document{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Reports:     reports,
	}
	sort.Slice(doc.Reports, func(i, j int) bool {
		return doc.Reports[i].Source < doc.Reports[j].Source
	})
	return doc
}

// NewFromMap builds a Document from a batch-run result map.
func NewFromMap(results map[uint64]*stats.Report) *Document {
	reports := make([]*stats.Report, 0, len(results))
	for _, r := range results {
		reports = append(reports, r)
	}
	return New(reports...)
}

// Text writes the console report. top limits how many distribution
// rows are shown per source; rows appear in ascending distance order.
func Text(w io.Writer, doc *Document, top int) error {
	if _, err := fmt.Fprintf(w, "📊 Shortest Path Statistics\n"); err != nil {
		return err
	}
	fmt.Fprintf(w, "───────────────────────────\n")
	fmt.Fprintf(w, "Run:        %s\n", doc.RunID)
	fmt.Fprintf(w, "Generated:  %s\n", doc.GeneratedAt.Format(time.RFC3339))

	for _, r := range doc.Reports {
		fmt.Fprintf(w, "\nSource node %d (denominator: %s)\n", r.Source, r.Denominator)
		fmt.Fprintf(w, "  Nodes with edges:  %d\n", r.NodeCount)
		fmt.Fprintf(w, "  Reachable:         %d\n", r.Reachable)
		fmt.Fprintf(w, "  Average:           %.4f\n", r.Average)
		fmt.Fprintf(w, "  Std deviation:     %.4f\n", r.StdDev)
		fmt.Fprintf(w, "  Max:               %d hops\n", r.Max)
		fmt.Fprintf(w, "  Min:               %d hops\n", r.Min)
		fmt.Fprintf(w, "  Median:            %d hops\n", r.Median)

		entries := stats.SortedDistribution(r.Distribution)
		shown := len(entries)
		if top > 0 && shown > top {
			shown = top
		}

		fmt.Fprintf(w, "\n  Distance distribution")
		if shown < len(entries) {
			fmt.Fprintf(w, " (first %d of %d)", shown, len(entries))
		}
		fmt.Fprintf(w, ":\n")
		fmt.Fprintf(w, "  %-10s %s\n", "Distance", "Nodes")

		for _, e := range entries[:shown] {
			if _, err := fmt.Fprintf(w, "  %-10d %d\n", e.Distance, e.Count); err != nil {
				return err
			}
		}
	}

	return nil
}

// JSON writes the document as indented JSON.
func JSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
