// Package api serves shortest-path statistics over HTTP.
//
// The server holds one immutable in-memory graph, loaded before
// startup. Every endpoint reads from it; nothing mutates it, so
// handlers need no locking.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graphql"
	"github.com/dd0wney/cluso-pathmetrics/pkg/logging"
	"github.com/dd0wney/cluso-pathmetrics/pkg/metrics"
	"github.com/dd0wney/cluso-pathmetrics/pkg/server"
)

// NewServer creates a new API server over a loaded graph.
func NewServer(g *graph.Graph, addr string) *Server {
	logger := logging.DefaultLogger().With(logging.Component("api"))

	schema, err := graphql.GenerateSchema(g)
	var graphqlHandler *graphql.GraphQLHandler
	if err != nil {
		logger.Warn("failed to generate GraphQL schema", logging.Error(err))
	} else {
		graphqlHandler = graphql.NewGraphQLHandler(schema)
	}

	return &Server{
		graph:          g,
		registry:       metrics.NewRegistry(),
		logger:         logger,
		graphqlHandler: graphqlHandler,
		startTime:      time.Now(),
		version:        "1.0.0",
		addr:           addr,
	}
}

// SetRegistry replaces the metrics registry. Call before Start.
func (s *Server) SetRegistry(registry *metrics.Registry) {
	s.registry = registry
}

// SetLogger replaces the server logger. Call before Start.
func (s *Server) SetLogger(logger logging.Logger) {
	s.logger = logger
}

// Handler builds the route table wrapped in the metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.Handle("/metrics/prometheus", promhttp.HandlerFor(
		s.registry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	// Statistics endpoints
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/stats/batch", s.handleBatchStats)
	mux.HandleFunc("/distribution", s.handleDistribution)

	// GraphQL endpoint
	mux.HandleFunc("/graphql", s.handleGraphQL)

	return s.metricsMiddleware(mux)
}

// Start runs the server until a termination signal drains it.
func (s *Server) Start() error {
	s.logger.Info("starting path-metrics API server",
		logging.String("addr", s.addr),
		logging.Int("nodes", s.graph.NodeCount()),
		logging.Edges(s.graph.EdgeCount()))

	gs := server.NewGracefulServer(s.addr, s.Handler())

	// The gauge refresher stops when the server begins draining.
	go s.updateMetricsPeriodically(gs.ShutdownChannel())

	return gs.Start()
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	s.respondJSON(w, status, response)
}
