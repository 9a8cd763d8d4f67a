package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/partition"
	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/dd0wney/graphdb/pkg/replication"
)

// noopTransport always fails Call; tests that only touch a single partition
// never need it to succeed, since add_node/get_node/get_neighbors for a
// locally-owned id never leave the process.
type noopTransport struct{}

func (noopTransport) Serve(addr string, applier replication.Applier) error { return nil }
func (noopTransport) Call(addr string, req replication.Request, timeout time.Duration) (replication.Response, error) {
	return replication.Response{}, errors.New("dial failed")
}

func newTestServer(self int) *httptest.Server {
	table := partition.Table{"peer-0", "peer-1", "peer-2"}
	client := replication.NewClient(noopTransport{}, time.Second)
	ctx := peer.New(self, table, client, nil, metrics.NewRegistry())
	router := NewRouter(ctx, nil, metrics.NewRegistry())
	return httptest.NewServer(router)
}

func post(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	resp, err := http.Post(srv.URL+path, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func postRaw(t *testing.T, srv *httptest.Server, path string, raw string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(raw))
	require.NoError(t, err)
	return resp
}

// partitionOwning finds a node id owned by partition self, starting at
// seed, so tests work regardless of which partition is under test.
func partitionOwning(self int, seed uint64) uint64 {
	for id := seed; ; id++ {
		if partition.Owner(id) == self {
			return id
		}
	}
}

func TestAddNodeLocalSucceedsAndEchoesBody(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 1)
	resp := post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.JSONEq(t, fmt.Sprintf(`{"node_id":%d}`, id), buf.String())
}

func TestAddNodeTwiceReturnsNoContent(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 1)
	post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id}).Body.Close()
	resp := post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAddNodeWrongPartitionRejected(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(1, 1)
	resp := post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddNodeMalformedJSONReturnsLegacyError(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	resp := postRaw(t, srv, "/api/v1/add_node", "not json")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestAddNodeMissingFieldReturnsLegacyError(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	resp := postRaw(t, srv, "/api/v1/add_node", `{"other":1}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.Equal(t, "Could not find node_id in JSON\n", buf.String())
}

func TestGetNodeReportsPresence(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 1)
	post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id}).Body.Close()

	resp := post(t, srv, "/api/v1/get_node", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out["in_graph"])
}

func TestShortestPathMissingNodeAIDUsesLegacyMessage(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	resp := postRaw(t, srv, "/api/v1/shortest_path", `{"node_b_id":1}`)
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.Equal(t, "Could not find node_id in JSON\n", buf.String())
}

func TestShortestPathSameNodeReturnsNoContent(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 1)
	post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id}).Body.Close()

	resp := post(t, srv, "/api/v1/shortest_path", map[string]uint64{"node_a_id": id, "node_b_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGetNeighborsUnknownNodeReturns404(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 999)
	resp := post(t, srv, "/api/v1/get_neighbors", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetNeighborsKnownNodeWithNoEdgesReturnsEmptyList(t *testing.T) {
	srv := newTestServer(0)
	defer srv.Close()

	id := partitionOwning(0, 999)
	post(t, srv, "/api/v1/add_node", map[string]uint64{"node_id": id}).Body.Close()

	resp := post(t, srv, "/api/v1/get_neighbors", map[string]uint64{"node_id": id})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out["neighbors"])
}
