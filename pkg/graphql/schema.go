// Package graphql exposes the statistics pipeline over GraphQL.
//
// The schema is static: the underlying graph is an unlabeled adjacency
// structure, so queries cover graph size, per-source statistics, and
// distance distributions rather than generated per-label types.
package graphql

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// GenerateSchema builds the GraphQL schema over a loaded graph.
func GenerateSchema(g *graph.Graph) (graphql.Schema, error) {
	graphInfoType := createGraphInfoType()
	statsType := createStatsType()
	entryType := createDistributionEntryType()

	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return "ok", nil
			},
		},
		"graph": &graphql.Field{
			Type: graphInfoType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return g.GetStatistics(), nil
			},
		},
		"stats": &graphql.Field{
			Type: statsType,
			Args: graphql.FieldConfigArgument{
				"source": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.ID),
				},
				"denominator": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
			},
			Resolve: createStatsResolver(g),
		},
		"distribution": &graphql.Field{
			Type: graphql.NewList(entryType),
			Args: graphql.FieldConfigArgument{
				"source": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.ID),
				},
			},
			Resolve: createDistributionResolver(g),
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

// createGraphInfoType describes graph size counters.
func createGraphInfoType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "GraphInfo",
		Fields: graphql.Fields{
			"nodes": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if st, ok := p.Source.(graph.Statistics); ok {
						return st.NodeCount, nil
					}
					return nil, nil
				},
			},
			"distinctNodes": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if st, ok := p.Source.(graph.Statistics); ok {
						return st.DistinctNodeCount, nil
					}
					return nil, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if st, ok := p.Source.(graph.Statistics); ok {
						return st.EdgeCount, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// createStatsType describes one per-source statistics report.
func createStatsType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"source": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return strconv.FormatUint(r.Source, 10), nil
					}
					return nil, nil
				},
			},
			"denominator": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return string(r.Denominator), nil
					}
					return nil, nil
				},
			},
			"nodeCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.NodeCount, nil
					}
					return nil, nil
				},
			},
			"reachable": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.Reachable, nil
					}
					return nil, nil
				},
			},
			"average": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.Average, nil
					}
					return nil, nil
				},
			},
			"stdDev": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.StdDev, nil
					}
					return nil, nil
				},
			},
			"max": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.Max, nil
					}
					return nil, nil
				},
			},
			"min": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.Min, nil
					}
					return nil, nil
				},
			},
			"median": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*stats.Report); ok {
						return r.Median, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// createDistributionEntryType describes one distance histogram row.
func createDistributionEntryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "DistributionEntry",
		Fields: graphql.Fields{
			"distance": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := p.Source.(stats.DistributionEntry); ok {
						return e.Distance, nil
					}
					return nil, nil
				},
			},
			"count": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := p.Source.(stats.DistributionEntry); ok {
						return e.Count, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// createStatsResolver computes a full statistics report for one source.
func createStatsResolver(g *graph.Graph) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		source, err := sourceArg(p)
		if err != nil {
			return nil, err
		}

		opts := stats.DefaultOptions()
		if d, ok := p.Args["denominator"].(string); ok && d != "" {
			opts.Denominator = stats.Denominator(d)
		}

		return stats.Compute(g, source, opts)
	}
}

// createDistributionResolver returns the distance histogram for one source.
func createDistributionResolver(g *graph.Graph) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		source, err := sourceArg(p)
		if err != nil {
			return nil, err
		}

		return stats.SortedDistribution(stats.DistanceDistribution(g, source)), nil
	}
}

// sourceArg parses the required source ID argument.
func sourceArg(p graphql.ResolveParams) (uint64, error) {
	idStr, ok := p.Args["source"].(string)
	if !ok {
		return 0, fmt.Errorf("source argument is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("source must be a numeric node ID: %w", err)
	}
	return id, nil
}
