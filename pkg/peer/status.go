package peer

import (
	"github.com/dd0wney/graphdb/pkg/replication"
	"github.com/dd0wney/graphdb/pkg/storage"
)

// toWireStatus converts a local graph status to the wire vocabulary
// exchanged with a peer. storage.Status and replication.Status share the
// same four names by construction; this just crosses the package boundary
// so replication stays independent of the storage package.
func toWireStatus(s storage.Status) replication.Status {
	switch s {
	case storage.StatusSuccess:
		return replication.StatusSuccess
	case storage.StatusExists:
		return replication.StatusExists
	case storage.StatusNotFound:
		return replication.StatusNotFound
	default:
		return replication.StatusError
	}
}

// fromWireStatus is toWireStatus's inverse, used when a remote peer's
// response status must be reported to an HTTP client as if it were a local
// graph status (§4.2.1 step 4: "propagate the remote status to the
// client").
func fromWireStatus(s replication.Status) storage.Status {
	switch s {
	case replication.StatusSuccess:
		return storage.StatusSuccess
	case replication.StatusExists:
		return storage.StatusExists
	case replication.StatusNotFound:
		return storage.StatusNotFound
	default:
		return storage.StatusError
	}
}
