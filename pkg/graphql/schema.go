// Package graphql exposes the read-only surface (node, edge, neighbors,
// shortestPath) of a peer.Context through a graphql-go schema, alongside
// the JSON HTTP API in pkg/api.
package graphql

import (
	"fmt"

	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/graphql-go/graphql"
)

// GenerateSchema builds the fixed four-query schema backed by ctx. Unlike a
// dynamic per-label schema, every query here is known up front: the graph
// has one node shape (a bare id) and no properties.
func GenerateSchema(ctx *peer.Context) (graphql.Schema, error) {
	queryFields := graphql.Fields{
		"node": &graphql.Field{
			Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Node",
				Fields: graphql.Fields{
					"nodeId":  &graphql.Field{Type: graphql.String},
					"inGraph": &graphql.Field{Type: graphql.Boolean},
				},
			}),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: nodeResolver(ctx),
		},
		"edge": &graphql.Field{
			Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Edge",
				Fields: graphql.Fields{
					"inGraph": &graphql.Field{Type: graphql.Boolean},
				},
			}),
			Args: graphql.FieldConfigArgument{
				"a": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"b": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: edgeResolver(ctx),
		},
		"neighbors": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: neighborsResolver(ctx),
		},
		"shortestPath": &graphql.Field{
			Type: graphql.Int,
			Args: graphql.FieldConfigArgument{
				"a": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"b": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: shortestPathResolver(ctx),
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}
