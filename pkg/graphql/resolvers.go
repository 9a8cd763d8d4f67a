package graphql

import (
	"strconv"

	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/graphql-go/graphql"
)

func argUint64(p graphql.ResolveParams, name string) (uint64, error) {
	s, _ := p.Args[name].(string)
	return strconv.ParseUint(s, 10, 64)
}

func nodeResolver(ctx *peer.Context) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		id, err := argUint64(p, "id")
		if err != nil {
			return nil, err
		}
		_, inGraph := ctx.GetNode(id)
		return map[string]any{
			"nodeId":  strconv.FormatUint(id, 10),
			"inGraph": inGraph,
		}, nil
	}
}

func edgeResolver(ctx *peer.Context) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		a, err := argUint64(p, "a")
		if err != nil {
			return nil, err
		}
		b, err := argUint64(p, "b")
		if err != nil {
			return nil, err
		}
		_, inGraph := ctx.GetEdge(a, b)
		return map[string]any{"inGraph": inGraph}, nil
	}
}

func neighborsResolver(ctx *peer.Context) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		id, err := argUint64(p, "id")
		if err != nil {
			return nil, err
		}
		_, neighbors := ctx.GetNeighbors(id)
		out := make([]string, len(neighbors))
		for i, n := range neighbors {
			out[i] = strconv.FormatUint(n, 10)
		}
		return out, nil
	}
}

func shortestPathResolver(ctx *peer.Context) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		a, err := argUint64(p, "a")
		if err != nil {
			return nil, err
		}
		b, err := argUint64(p, "b")
		if err != nil {
			return nil, err
		}
		_, dist := ctx.ShortestPath(a, b)
		return int(dist), nil
	}
}
