package api

import (
	"net/http"

	"github.com/dd0wney/graphdb/pkg/peer"
	"github.com/dd0wney/graphdb/pkg/storage"
)

// mutationCode maps a peer.Result to the HTTP status for a mutating
// endpoint (add_node, add_edge, remove_node, remove_edge), per §6's table.
func mutationCode(res peer.Result) int {
	if res.RPCFailed {
		return http.StatusInternalServerError
	}
	return statusCode(res.Status)
}

// statusCode maps a graph status alone to an HTTP status, used by read
// endpoints that never produce RPCFailed.
func statusCode(status storage.Status) int {
	switch status {
	case storage.StatusSuccess:
		return http.StatusOK
	case storage.StatusExists:
		return http.StatusNoContent
	case storage.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
