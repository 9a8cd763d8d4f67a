package graphql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/partition"
	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/dd0wney/graphdb/pkg/replication"
)

type nopTransport struct{}

func (nopTransport) Serve(addr string, applier replication.Applier) error { return nil }
func (nopTransport) Call(addr string, req replication.Request, timeout time.Duration) (replication.Response, error) {
	return replication.Response{}, nil
}

func testContext(self int) *peer.Context {
	table := partition.Table{"a", "b", "c"}
	client := replication.NewClient(nopTransport{}, time.Second)
	return peer.New(self, table, client, nil, metrics.NewRegistry())
}

func TestGenerateSchemaNodeQuery(t *testing.T) {
	ctx := testContext(0)
	ctx.AddNode(3)

	schema, err := GenerateSchema(ctx)
	require.NoError(t, err)

	result := ExecuteQuery(`{ node(id: "3") { nodeId inGraph } }`, schema)
	require.False(t, result.HasErrors(), "%v", result.Errors)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	node, ok := data["node"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, node["inGraph"])
}

func TestGenerateSchemaShortestPathSameNode(t *testing.T) {
	ctx := testContext(0)
	ctx.AddNode(3)

	schema, err := GenerateSchema(ctx)
	require.NoError(t, err)

	result := ExecuteQuery(`{ shortestPath(a: "3", b: "3") }`, schema)
	require.False(t, result.HasErrors(), "%v", result.Errors)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, data["shortestPath"])
}
