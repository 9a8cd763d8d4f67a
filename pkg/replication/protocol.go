// Package replication implements the peer-to-peer RPC channel (components B
// and C of the service) used to replicate edges whose endpoints live on two
// different partitions. The wire format is small, JSON-encoded request/
// response pair exchanged over a synchronous request/reply socket; see
// zmq_transport.go and nng_transport.go for the two interchangeable socket
// backends.
package replication

import "fmt"

// Op identifies which graph mutation a Request carries. AddNode and
// RemoveNode are part of the wire protocol for future extensions (§4.2.2 of
// the design); the current peer-to-peer flow only ever sends AddEdge and
// RemoveEdge.
type Op uint8

const (
	OpAddNode Op = iota
	OpRemoveNode
	OpAddEdge
	OpRemoveEdge
)

func (o Op) String() string {
	switch o {
	case OpAddNode:
		return "ADD_NODE"
	case OpRemoveNode:
		return "REMOVE_NODE"
	case OpAddEdge:
		return "ADD_EDGE"
	case OpRemoveEdge:
		return "REMOVE_EDGE"
	default:
		return fmt.Sprintf("OP(%d)", uint8(o))
	}
}

// Status is the wire vocabulary exchanged between peers. RPC_FAILED is
// deliberately absent: it is synthesized locally by the caller when the
// transport itself fails (connection refused, timeout, malformed response)
// and is never encoded on the wire.
type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusExists   Status = "EXISTS"
	StatusNotFound Status = "NOT_FOUND"
	StatusError    Status = "ERROR"
)

// Request is one RPC call: for AddEdge/RemoveEdge, NodeAID is always the
// "lo" endpoint and NodeBID the "hi" endpoint, matching the field ordering
// used by the original replicator implementation this protocol is modeled
// on. For AddNode/RemoveNode only NodeAID is meaningful.
type Request struct {
	Op        Op     `json:"op" validate:"min=0,max=3"`
	NodeAID   uint64 `json:"node_a_id"`
	NodeBID   uint64 `json:"node_b_id,omitempty"`
	RequestID string `json:"request_id" validate:"required"`
}

// Response is the reply to a Request.
type Response struct {
	Status Status `json:"status" validate:"oneof=SUCCESS EXISTS NOT_FOUND ERROR"`
}

// Applier is implemented by whatever owns the local graph (pkg/peer.Context)
// and is invoked by a Server for every inbound Request.
type Applier interface {
	Apply(req Request) Response
}
