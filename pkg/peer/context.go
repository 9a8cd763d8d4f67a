// Package peer ties the graph store, partition scheme, and replication
// client together behind the single process-wide mutex the concurrency
// model calls for: every HTTP handler and every inbound RPC handler
// acquires it before touching the graph, and the scope spans the full
// handler body including any outbound replication call.
package peer

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dd0wney/graphdb/pkg/logging"
	"github.com/dd0wney/graphdb/pkg/metrics"
	"github.com/dd0wney/graphdb/pkg/partition"
	"github.com/dd0wney/graphdb/pkg/replication"
	"github.com/dd0wney/graphdb/pkg/storage"
)

// Result is what every Context operation returns: a graph status plus a
// flag distinguishing a transport failure to a peer (RPC_FAILED, mapped to
// HTTP 500) from a graph-level status (mapped per the HTTP table).
type Result struct {
	Status    storage.Status
	RPCFailed bool
}

// Context is the per-peer runtime state: its partition scheme, its slice of
// the graph, the peer table, a client for outbound replication calls, and
// the single mutex guarding all of it.
type Context struct {
	self    int
	scheme  partition.Scheme
	table   partition.Table
	graph   *storage.Graph
	client  *replication.Client
	logger  logging.Logger
	metrics *metrics.Registry

	mu sync.Mutex
}

// New returns a Context for partition self (0-based), with the given peer
// table and replication client. logger and reg may be nil, in which case a
// no-op logger and the process-wide default registry are used.
func New(self int, table partition.Table, client *replication.Client, logger logging.Logger, reg *metrics.Registry) *Context {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &Context{
		self:    self,
		scheme:  partition.New(self),
		table:   table,
		graph:   storage.NewGraph(),
		client:  client,
		logger:  logger,
		metrics: reg,
	}
}

func (c *Context) peerAddr(part int) string {
	return c.table.Peer(part)
}

// AddNode applies addNode locally if this peer owns id, otherwise rejects
// with ERROR (the client routed to the wrong peer).
func (c *Context) AddNode(id uint64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.scheme.IsLocal(id) {
		c.logger.Warn("add_node: wrong partition", logging.NodeID(id), logging.Partition(c.self))
		return Result{Status: storage.StatusError}
	}

	status := c.graph.AddNode(id)
	c.recordStorage("add_node", status)
	return Result{Status: status}
}

// RemoveNode applies removeNode locally if this peer owns id, otherwise
// rejects with ERROR.
func (c *Context) RemoveNode(id uint64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.scheme.IsLocal(id) {
		c.logger.Warn("remove_node: wrong partition", logging.NodeID(id), logging.Partition(c.self))
		return Result{Status: storage.StatusError}
	}

	status := c.graph.RemoveNode(id)
	c.recordStorage("remove_node", status)
	return Result{Status: status}
}

// AddEdge implements the full classify-and-replicate flow of §4.2 for a
// two-endpoint mutation. ctx bounds the outbound RPC, if one is needed.
func (c *Context) AddEdge(ctx context.Context, a, b uint64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	class, lo, hi := c.scheme.Classify(a, b)
	switch class {
	case partition.ClassNeitherLocal, partition.ClassCrossHigher:
		c.logger.Warn("add_edge: wrong partition", logging.NodeAID(a), logging.NodeBID(b))
		return Result{Status: storage.StatusError}

	case partition.ClassBothLocal:
		status := c.graph.AddEdge(a, b)
		c.recordStorage("add_edge", status)
		return Result{Status: status}

	default: // ClassCrossLower: self is lo, responsible for the edge.
		if _, present := c.graph.GetNode(lo); !present {
			c.recordStorage("add_edge", storage.StatusNotFound)
			return Result{Status: storage.StatusNotFound}
		}

		req := replication.Request{Op: replication.OpAddEdge, NodeAID: lo, NodeBID: hi}
		start := time.Now()
		resp, err := c.client.Call(ctx, c.peerAddr(partition.Owner(hi)), req)
		elapsed := time.Since(start)
		if err != nil {
			c.logger.Error("add_edge: rpc failed", logging.Error(err), logging.NodeAID(lo), logging.NodeBID(hi))
			c.recordReplicationCall(partition.Owner(hi), "RPC_FAILED", elapsed)
			return Result{RPCFailed: true}
		}
		c.recordReplicationCall(partition.Owner(hi), string(resp.Status), elapsed)

		if resp.Status != replication.StatusSuccess {
			status := fromWireStatus(resp.Status)
			c.recordStorage("add_edge", status)
			return Result{Status: status}
		}

		c.graph.EnsurePlaceholder(hi)
		status := c.graph.AddEdge(lo, hi)
		c.recordStorage("add_edge", status)
		return Result{Status: status}
	}
}

// RemoveEdge mirrors AddEdge for §4.2.1's REMOVE_EDGE flow.
func (c *Context) RemoveEdge(ctx context.Context, a, b uint64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	class, lo, hi := c.scheme.Classify(a, b)
	switch class {
	case partition.ClassNeitherLocal, partition.ClassCrossHigher:
		c.logger.Warn("remove_edge: wrong partition", logging.NodeAID(a), logging.NodeBID(b))
		return Result{Status: storage.StatusError}

	case partition.ClassBothLocal:
		status := c.graph.RemoveEdge(a, b)
		c.recordStorage("remove_edge", status)
		return Result{Status: status}

	default: // ClassCrossLower
		if _, present := c.graph.GetNode(lo); !present {
			c.recordStorage("remove_edge", storage.StatusNotFound)
			return Result{Status: storage.StatusNotFound}
		}

		req := replication.Request{Op: replication.OpRemoveEdge, NodeAID: lo, NodeBID: hi}
		start := time.Now()
		resp, err := c.client.Call(ctx, c.peerAddr(partition.Owner(hi)), req)
		elapsed := time.Since(start)
		if err != nil {
			c.logger.Error("remove_edge: rpc failed", logging.Error(err), logging.NodeAID(lo), logging.NodeBID(hi))
			c.recordReplicationCall(partition.Owner(hi), "RPC_FAILED", elapsed)
			return Result{RPCFailed: true}
		}
		c.recordReplicationCall(partition.Owner(hi), string(resp.Status), elapsed)

		if resp.Status != replication.StatusSuccess {
			status := fromWireStatus(resp.Status)
			c.recordStorage("remove_edge", status)
			return Result{Status: status}
		}

		status := c.graph.RemoveEdge(lo, hi)
		c.recordStorage("remove_edge", status)
		return Result{Status: status}
	}
}

// GetNode, GetEdge, GetNeighbors, and ShortestPath are read paths: they
// never route by ownership and never replicate. A peer answers whatever its
// own local store holds, which for cross-partition edges includes the
// placeholder-backed copy materialized by replication.

func (c *Context) GetNode(id uint64) (storage.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph.GetNode(id)
}

func (c *Context) GetEdge(a, b uint64) (storage.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph.GetEdge(a, b)
}

func (c *Context) GetNeighbors(id uint64) (storage.Status, []uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph.GetNeighbors(id)
}

func (c *Context) ShortestPath(a, b uint64) (storage.Status, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph.ShortestPath(a, b)
}

// Apply implements replication.Applier: the inbound RPC behavior of §4.2.2,
// run under the same mutex as every HTTP handler.
func (c *Context) Apply(req replication.Request) replication.Response {
	c.mu.Lock()
	defer c.mu.Unlock()

	var status storage.Status
	switch req.Op {
	case replication.OpAddNode:
		status = c.graph.AddNode(req.NodeAID)

	case replication.OpRemoveNode:
		status = c.graph.RemoveNode(req.NodeAID)

	case replication.OpAddEdge:
		// req.NodeAID is lo (foreign), req.NodeBID is hi (this peer's own).
		if _, present := c.graph.GetNode(req.NodeBID); !present {
			status = storage.StatusNotFound
			break
		}
		c.graph.EnsurePlaceholder(req.NodeAID)
		status = c.graph.AddEdge(req.NodeAID, req.NodeBID)

	case replication.OpRemoveEdge:
		status = c.graph.RemoveEdge(req.NodeAID, req.NodeBID)

	default:
		status = storage.StatusError
	}

	c.recordStorage(req.Op.String(), status)
	c.metrics.RecordReplicationInbound(req.Op.String(), string(toWireStatus(status)))
	return replication.Response{Status: toWireStatus(status)}
}

func (c *Context) recordStorage(op string, status storage.Status) {
	c.metrics.RecordStorageOperation(op, status.String())
}

func (c *Context) recordReplicationCall(peerPartition int, status string, elapsed time.Duration) {
	c.metrics.RecordReplicationCall(strconv.Itoa(peerPartition), status, elapsed)
}
