package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/parallel"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
	"github.com/dd0wney/cluso-pathmetrics/pkg/validation"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.graph.GetStatistics()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		NodeCount: st.NodeCount,
		EdgeCount: st.EdgeCount,
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	st := s.graph.GetStatistics()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(s.startTime)

	response := MetricsResponse{
		NodeCount:         st.NodeCount,
		DistinctNodeCount: st.DistinctNodeCount,
		EdgeCount:         st.EdgeCount,

		MemoryUsedMB:  m.Alloc / 1024 / 1024,
		MemoryTotalMB: m.Sys / 1024 / 1024,
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),

		Uptime:        uptime.String(),
		UptimeSeconds: int64(uptime.Seconds()),
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	source, err := queryUint64(r, "source")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	denominator := r.URL.Query().Get("denominator")

	req := validation.StatsRequest{Source: source, Denominator: denominator}
	if err := validation.ValidateStatsRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := stats.DefaultOptions()
	if denominator != "" {
		opts.Denominator = stats.Denominator(denominator)
	}

	start := time.Now()
	report, err := stats.Compute(s.graph, source, opts)
	elapsed := time.Since(start)

	if err != nil {
		s.registry.RecordReport(string(opts.Denominator), "error", elapsed)
		if errors.Is(err, stats.ErrEmptyGraph) {
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.registry.RecordReport(string(opts.Denominator), "success", elapsed)
	s.registry.RecordTraversal(elapsed, report.Reachable)
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleBatchStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BatchStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vreq := validation.BatchStatsRequest{
		Sources:     req.Sources,
		Denominator: req.Denominator,
		Workers:     req.Workers,
	}
	if err := validation.ValidateBatchStatsRequest(&vreq); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := stats.DefaultOptions()
	if req.Denominator != "" {
		opts.Denominator = stats.Denominator(req.Denominator)
	}
	workers := req.Workers
	if workers <= 0 {
		workers = 4
	}

	start := time.Now()
	results, err := parallel.ComputeAll(s.graph, req.Sources, opts, workers)
	elapsed := time.Since(start)

	if err != nil {
		s.registry.RecordReport(string(opts.Denominator), "error", elapsed)
		if errors.Is(err, stats.ErrEmptyGraph) {
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.registry.RecordReport(string(opts.Denominator), "success", elapsed)

	reports := make([]*stats.Report, 0, len(results))
	for _, report := range results {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Source < reports[j].Source
	})

	response := BatchStatsResponse{
		Count:   len(reports),
		Reports: reports,
		Time:    elapsed.String(),
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	source, err := queryUint64(r, "source")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	top, err := queryInt(r, "top", 0)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	vreq := validation.DistributionRequest{Source: source, Top: top}
	if err := validation.ValidateDistributionRequest(&vreq); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries := stats.SortedDistribution(stats.DistanceDistribution(s.graph, source))

	reachable := 0
	for _, e := range entries {
		reachable += e.Count
	}

	truncated := false
	if top > 0 && len(entries) > top {
		entries = entries[:top]
		truncated = true
	}

	response := DistributionResponse{
		Source:    source,
		Reachable: reachable,
		Entries:   entries,
		Truncated: truncated,
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if s.graphqlHandler == nil {
		s.respondError(w, http.StatusServiceUnavailable, "GraphQL endpoint not available")
		return
	}

	// Preflight goes straight through
	if r.Method == http.MethodOptions {
		s.graphqlHandler.ServeHTTP(w, r)
		return
	}

	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.graphqlHandler.ServeHTTP(w, r)
}
