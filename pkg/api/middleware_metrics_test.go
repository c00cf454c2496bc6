package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// TestMetricsMiddleware_RecordsRequests tests request counting through the full handler
func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	server := setupTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	counter, err := server.registry.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/health", "200")
	if err != nil {
		t.Fatalf("Failed to get counter: %v", err)
	}

	pm := &dto.Metric{}
	if err := counter.Write(pm); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if pm.GetCounter().GetValue() != 1 {
		t.Errorf("Request count = %v, want 1", pm.GetCounter().GetValue())
	}
}

// TestMetricsMiddleware_RecordsErrorStatus tests status code labeling
func TestMetricsMiddleware_RecordsErrorStatus(t *testing.T) {
	server := setupTestServer(t)
	handler := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil) // missing source
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	counter, err := server.registry.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/stats", "400")
	if err != nil {
		t.Fatalf("Failed to get counter: %v", err)
	}

	pm := &dto.Metric{}
	if err := counter.Write(pm); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if pm.GetCounter().GetValue() != 1 {
		t.Errorf("Request count = %v, want 1", pm.GetCounter().GetValue())
	}
}

// TestMetricsResponseWriter tests status and size capture
func TestMetricsResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapper := &metricsResponseWriter{
		ResponseWriter: rr,
		statusCode:     http.StatusOK,
	}

	wrapper.WriteHeader(http.StatusTeapot)
	n, err := wrapper.Write([]byte("short and stout"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if wrapper.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want %d", wrapper.statusCode, http.StatusTeapot)
	}
	if wrapper.bytesWritten != n {
		t.Errorf("bytesWritten = %d, want %d", wrapper.bytesWritten, n)
	}
}

// TestRefreshGauges_SetsGraphSize tests one gauge refresh pass
func TestRefreshGauges_SetsGraphSize(t *testing.T) {
	server := setupTestServer(t)

	server.refreshGauges()

	pm := &dto.Metric{}
	if err := server.registry.GraphNodesTotal.Write(pm); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if pm.GetGauge().GetValue() != 3 {
		t.Errorf("Graph nodes gauge = %v, want 3", pm.GetGauge().GetValue())
	}
}

// TestUpdateMetricsPeriodically_StopsOnShutdown tests the gauge
// refresher exits once the shutdown channel closes
func TestUpdateMetricsPeriodically_StopsOnShutdown(t *testing.T) {
	server := setupTestServer(t)

	stop := make(chan struct{})
	close(stop)

	done := make(chan struct{})
	go func() {
		server.updateMetricsPeriodically(stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("gauge refresher still running after shutdown")
	}
}

// TestPrometheusEndpoint tests the Prometheus exposition route
func TestPrometheusEndpoint(t *testing.T) {
	server := setupTestServer(t)
	handler := server.Handler()

	// Drive one request through the middleware so labeled series exist
	warmup := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(httptest.NewRecorder(), warmup)

	req := httptest.NewRequest(http.MethodGet, "/metrics/prometheus", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	body, err := io.ReadAll(rr.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	exposition := string(body)
	if !strings.Contains(exposition, "pathmetrics_http_requests_total") {
		t.Error("Exposition missing pathmetrics_http_requests_total")
	}
	if !strings.Contains(exposition, "pathmetrics_") {
		t.Error("Exposition missing pathmetrics_ metrics")
	}
}

// TestHandleGraphQL_ThroughRouter tests the /graphql route end to end
func TestHandleGraphQL_ThroughRouter(t *testing.T) {
	server := setupTestServer(t)
	handler := server.Handler()

	body, _ := json.Marshal(map[string]string{"query": `{ graph { nodes edges } }`})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Graph struct {
				Nodes int `json:"nodes"`
				Edges int `json:"edges"`
			} `json:"graph"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Data.Graph.Nodes != 3 || resp.Data.Graph.Edges != 4 {
		t.Errorf("graph = %+v, want nodes 3 edges 4", resp.Data.Graph)
	}
}

// TestHandleGraphQL_MethodNotAllowed tests rejecting GET /graphql
func TestHandleGraphQL_MethodNotAllowed(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rr := httptest.NewRecorder()

	server.handleGraphQL(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}
