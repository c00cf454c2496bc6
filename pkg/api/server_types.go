package api

import (
	"time"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graphql"
	"github.com/dd0wney/cluso-pathmetrics/pkg/logging"
	"github.com/dd0wney/cluso-pathmetrics/pkg/metrics"
)

// Server represents the HTTP API server
type Server struct {
	graph          *graph.Graph
	registry       *metrics.Registry
	logger         logging.Logger
	graphqlHandler *graphql.GraphQLHandler
	startTime      time.Time
	version        string
	addr           string
}
