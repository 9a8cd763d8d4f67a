// Package api is the HTTP front-end (component D): it parses JSON request
// bodies, enforces partition ownership rules by delegating to pkg/peer, and
// maps results to the HTTP status table.
package api

import (
	"net/http"
	"strconv"

	"github.com/dd0wney/graphdb/pkg/logging"
	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/dd0wney/graphdb/pkg/storage"
)

// Server holds the dependencies every handler needs: the peer context that
// owns the graph, a logger, and the metrics registry.
type Server struct {
	ctx     *peer.Context
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewServer returns a Server dispatching to ctx.
func NewServer(ctx *peer.Context, logger logging.Logger, reg *metrics.Registry) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &Server{ctx: ctx, logger: logger, metrics: reg}
}

// AddNode handles POST /api/v1/add_node.
func (s *Server) AddNode(w http.ResponseWriter, r *http.Request) {
	fields, raw, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	nodeID, ok := fieldUint64(fields, "node_id")
	if !ok {
		writeLegacyError(w, "Could not find node_id in JSON")
		return
	}

	res := s.ctx.AddNode(nodeID)
	if code := mutationCode(res); code == http.StatusOK {
		writeEcho(w, raw)
	} else {
		w.WriteHeader(code)
	}
}

// RemoveNode handles POST /api/v1/remove_node.
func (s *Server) RemoveNode(w http.ResponseWriter, r *http.Request) {
	fields, raw, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	nodeID, ok := fieldUint64(fields, "node_id")
	if !ok {
		writeLegacyError(w, "Could not find node_id in JSON")
		return
	}

	res := s.ctx.RemoveNode(nodeID)
	if code := mutationCode(res); code == http.StatusOK {
		writeEcho(w, raw)
	} else {
		w.WriteHeader(code)
	}
}

// AddEdge handles POST /api/v1/add_edge.
func (s *Server) AddEdge(w http.ResponseWriter, r *http.Request) {
	fields, raw, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	a, ok := fieldUint64(fields, "node_a_id")
	if !ok {
		writeLegacyError(w, "Could not find node_a_id in JSON")
		return
	}
	b, ok := fieldUint64(fields, "node_b_id")
	if !ok {
		writeLegacyError(w, "Could not find node_b_id in JSON")
		return
	}

	res := s.ctx.AddEdge(r.Context(), a, b)
	if code := mutationCode(res); code == http.StatusOK {
		writeEcho(w, raw)
	} else {
		w.WriteHeader(code)
	}
}

// RemoveEdge handles POST /api/v1/remove_edge.
func (s *Server) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	fields, raw, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	a, ok := fieldUint64(fields, "node_a_id")
	if !ok {
		writeLegacyError(w, "Could not find node_a_id in JSON")
		return
	}
	b, ok := fieldUint64(fields, "node_b_id")
	if !ok {
		writeLegacyError(w, "Could not find node_b_id in JSON")
		return
	}

	res := s.ctx.RemoveEdge(r.Context(), a, b)
	if code := mutationCode(res); code == http.StatusOK {
		writeEcho(w, raw)
	} else {
		w.WriteHeader(code)
	}
}

// GetNode handles POST /api/v1/get_node. It always succeeds; in_graph
// reports local presence.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	fields, _, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	nodeID, ok := fieldUint64(fields, "node_id")
	if !ok {
		writeLegacyError(w, "Could not find node_id in JSON")
		return
	}

	_, inGraph := s.ctx.GetNode(nodeID)
	writeJSON(w, http.StatusOK, map[string]bool{"in_graph": inGraph})
}

// GetEdge handles POST /api/v1/get_edge.
func (s *Server) GetEdge(w http.ResponseWriter, r *http.Request) {
	fields, _, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	a, ok := fieldUint64(fields, "node_a_id")
	if !ok {
		writeLegacyError(w, "Could not find node_a_id in JSON")
		return
	}
	b, ok := fieldUint64(fields, "node_b_id")
	if !ok {
		writeLegacyError(w, "Could not find node_b_id in JSON")
		return
	}

	status, inGraph := s.ctx.GetEdge(a, b)
	if status != storage.StatusSuccess {
		w.WriteHeader(statusCode(status))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"in_graph": inGraph})
}

// GetNeighbors handles POST /api/v1/get_neighbors.
func (s *Server) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	fields, _, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	nodeID, ok := fieldUint64(fields, "node_id")
	if !ok {
		writeLegacyError(w, "Could not find node_id in JSON")
		return
	}

	status, neighbors := s.ctx.GetNeighbors(nodeID)
	if status != storage.StatusSuccess {
		w.WriteHeader(statusCode(status))
		return
	}
	if neighbors == nil {
		neighbors = []uint64{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"node_id": nodeID, "neighbors": neighbors})
}

// ShortestPath handles POST /api/v1/shortest_path. The missing-node_a_id
// error message names "node_id", not "node_a_id" — a literal quirk of the
// server this protocol is compatible with, preserved rather than fixed.
func (s *Server) ShortestPath(w http.ResponseWriter, r *http.Request) {
	fields, _, err := parseBody(r)
	if err != nil {
		writeLegacyError(w, "Error in JSON")
		return
	}
	a, ok := fieldUint64(fields, "node_a_id")
	if !ok {
		writeLegacyError(w, "Could not find node_id in JSON")
		return
	}
	b, ok := fieldUint64(fields, "node_b_id")
	if !ok {
		writeLegacyError(w, "Could not find node_b_id in JSON")
		return
	}

	status, dist := s.ctx.ShortestPath(a, b)
	if status != storage.StatusSuccess {
		w.WriteHeader(statusCode(status))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"distance": strconv.FormatUint(dist, 10)})
}
