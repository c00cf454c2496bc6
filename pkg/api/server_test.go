package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// setupTestServer builds a server over the diamond graph
//
//	0 → 1 → 3
//	0 → 2 → 3
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	g := graph.New()
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)

	return NewServer(g, ":0")
}

// TestHandleHealth tests the GET /health endpoint
func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", resp.NodeCount)
	}
	if resp.EdgeCount != 4 {
		t.Errorf("EdgeCount = %d, want 4", resp.EdgeCount)
	}
}

// TestHandleMetrics tests the GET /metrics endpoint
func TestHandleMetrics(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	server.handleMetrics(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp MetricsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.NodeCount != 3 || resp.DistinctNodeCount != 4 || resp.EdgeCount != 4 {
		t.Errorf("Graph counts = %d/%d/%d, want 3/4/4",
			resp.NodeCount, resp.DistinctNodeCount, resp.EdgeCount)
	}
	if resp.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want at least 1", resp.NumCPU)
	}
}

// TestHandleMetrics_MethodNotAllowed tests rejecting POST /metrics
func TestHandleMetrics_MethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/metrics", nil)
	rr := httptest.NewRecorder()

	server.handleMetrics(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

// TestHandleStats tests the GET /stats endpoint
func TestHandleStats(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats?source=0", nil)
	rr := httptest.NewRecorder()

	server.handleStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var report stats.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if report.Source != 0 {
		t.Errorf("Source = %d, want 0", report.Source)
	}
	if math.Abs(report.Average-4.0/3.0) > 1e-9 {
		t.Errorf("Average = %v, want 4/3", report.Average)
	}
	if report.Max != 2 || report.Min != 0 || report.Median != 1 {
		t.Errorf("Max/Min/Median = %d/%d/%d, want 2/0/1", report.Max, report.Min, report.Median)
	}
	if report.Reachable != 4 {
		t.Errorf("Reachable = %d, want 4", report.Reachable)
	}
}

// TestHandleStats_DenominatorModes tests the denominator query parameter
func TestHandleStats_DenominatorModes(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		denominator string
		wantAverage float64
	}{
		{"edge-sources", 4.0 / 3.0},
		{"reachable", 1.0},
		{"distinct", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.denominator, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/stats?source=0&denominator="+tt.denominator, nil)
			rr := httptest.NewRecorder()

			server.handleStats(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
			}

			var report stats.Report
			if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}

			if math.Abs(report.Average-tt.wantAverage) > 1e-9 {
				t.Errorf("Average = %v, want %v", report.Average, tt.wantAverage)
			}
		})
	}
}

// TestHandleStats_BadRequests tests parameter validation
func TestHandleStats_BadRequests(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name string
		url  string
	}{
		{"missing source", "/stats"},
		{"non-numeric source", "/stats?source=abc"},
		{"negative source", "/stats?source=-1"},
		{"unknown denominator", "/stats?source=0&denominator=per-galaxy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()

			server.handleStats(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Error response is not JSON: %v", err)
			}
			if resp.Code != http.StatusBadRequest {
				t.Errorf("Error code = %d, want %d", resp.Code, http.StatusBadRequest)
			}
		})
	}
}

// TestHandleStats_EmptyGraph tests statistics over a graph with no edges
func TestHandleStats_EmptyGraph(t *testing.T) {
	server := NewServer(graph.New(), ":0")

	req := httptest.NewRequest(http.MethodGet, "/stats?source=0", nil)
	rr := httptest.NewRecorder()

	server.handleStats(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

// TestHandleStats_MethodNotAllowed tests rejecting POST /stats
func TestHandleStats_MethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/stats?source=0", nil)
	rr := httptest.NewRecorder()

	server.handleStats(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

// TestHandleBatchStats tests the POST /stats/batch endpoint
func TestHandleBatchStats(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(BatchStatsRequest{
		Sources:     []uint64{1, 0},
		Denominator: "reachable",
		Workers:     2,
	})
	req := httptest.NewRequest(http.MethodPost, "/stats/batch", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	server.handleBatchStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp BatchStatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if resp.Reports[0].Source != 0 || resp.Reports[1].Source != 1 {
		t.Errorf("Reports not sorted by source: %d, %d",
			resp.Reports[0].Source, resp.Reports[1].Source)
	}
	if resp.Reports[0].Reachable != 4 {
		t.Errorf("Source 0 Reachable = %d, want 4", resp.Reports[0].Reachable)
	}
}

// TestHandleBatchStats_BadRequests tests body validation
func TestHandleBatchStats_BadRequests(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "{not json"},
		{"empty sources", `{"sources": []}`},
		{"unknown denominator", `{"sources": [0], "denominator": "bogus"}`},
		{"too many workers", `{"sources": [0], "workers": 100000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/stats/batch", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			server.handleBatchStats(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
		})
	}
}

// TestHandleBatchStats_MethodNotAllowed tests rejecting GET /stats/batch
func TestHandleBatchStats_MethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats/batch", nil)
	rr := httptest.NewRecorder()

	server.handleBatchStats(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

// TestHandleDistribution tests the GET /distribution endpoint
func TestHandleDistribution(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/distribution?source=0", nil)
	rr := httptest.NewRecorder()

	server.handleDistribution(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp DistributionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Reachable != 4 {
		t.Errorf("Reachable = %d, want 4", resp.Reachable)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Distance != 0 || resp.Entries[1].Distance != 1 || resp.Entries[2].Distance != 2 {
		t.Errorf("Entries not in ascending distance order: %+v", resp.Entries)
	}
	if resp.Truncated {
		t.Error("Expected untruncated distribution")
	}
}

// TestHandleDistribution_Top tests histogram truncation
func TestHandleDistribution_Top(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/distribution?source=0&top=1", nil)
	rr := httptest.NewRecorder()

	server.handleDistribution(rr, req)

	var resp DistributionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(resp.Entries) != 1 {
		t.Fatalf("Expected 1 entry with top=1, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Distance != 0 {
		t.Errorf("Expected nearest bucket first, got distance %d", resp.Entries[0].Distance)
	}
	if !resp.Truncated {
		t.Error("Expected Truncated flag")
	}
	if resp.Reachable != 4 {
		t.Errorf("Reachable = %d, want full total 4 despite truncation", resp.Reachable)
	}
}

// TestHandleDistribution_BadRequests tests parameter validation
func TestHandleDistribution_BadRequests(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name string
		url  string
	}{
		{"missing source", "/distribution"},
		{"non-numeric source", "/distribution?source=xyz"},
		{"non-numeric top", "/distribution?source=0&top=many"},
		{"top too large", "/distribution?source=0&top=99999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()

			server.handleDistribution(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
		})
	}
}
