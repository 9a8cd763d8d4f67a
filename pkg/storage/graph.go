// Package storage implements the in-memory undirected graph held by a
// single partition peer. All operations are atomic with respect to each
// other; Graph provides its own locking so it can be exercised directly in
// tests without the coarser peer-level lock.
package storage

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors. No Graph operation returns ErrSelfLoop: a self-loop is
// reported as StatusError, and handlers only ever see Status.
var (
	ErrSelfLoop = errors.New("self-loop is not a valid edge")
)

// Status is the result code returned by every Graph operation, mirroring
// the SUCCESS/EXISTS/NOT_FOUND/ERROR vocabulary of the replication wire
// protocol so the two layers never need translation tables beyond string
// rendering.
type Status int

const (
	StatusSuccess Status = iota
	StatusExists
	StatusNotFound
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusExists:
		return "EXISTS"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("STATUS(%d)", int(s))
	}
}

// entry is one node's adjacency record. neighbors preserves insertion
// order; index gives O(1) membership/removal without scanning the slice.
type entry struct {
	neighbors   []uint64
	index       map[uint64]int
	placeholder bool
}

func newEntry() *entry {
	return &entry{index: make(map[uint64]int)}
}

func (e *entry) has(id uint64) bool {
	_, ok := e.index[id]
	return ok
}

// add appends id to the neighbor list if absent. Re-adding a previously
// removed neighbor places it at the end, per the insertion-order contract.
func (e *entry) add(id uint64) {
	if e.has(id) {
		return
	}
	e.index[id] = len(e.neighbors)
	e.neighbors = append(e.neighbors, id)
}

// remove deletes id from the neighbor list, shifting later entries down and
// fixing up their recorded positions.
func (e *entry) remove(id uint64) {
	pos, ok := e.index[id]
	if !ok {
		return
	}
	e.neighbors = append(e.neighbors[:pos], e.neighbors[pos+1:]...)
	delete(e.index, id)
	for i := pos; i < len(e.neighbors); i++ {
		e.index[e.neighbors[i]] = i
	}
}

// Graph is the local subgraph held by one peer: a mapping from node id to
// its ordered neighbor set.
type Graph struct {
	mu    sync.Mutex
	nodes map[uint64]*entry
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[uint64]*entry)}
}

// AddNode inserts id with an empty neighbor set.
func (g *Graph) AddNode(id uint64) Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addNodeLocked(id)
}

func (g *Graph) addNodeLocked(id uint64) Status {
	if _, ok := g.nodes[id]; ok {
		return StatusExists
	}
	g.nodes[id] = newEntry()
	return StatusSuccess
}

// EnsurePlaceholder inserts id as a non-owned placeholder if absent, and is
// a no-op if the node (owned or placeholder) already exists. It never
// reports EXISTS: callers don't need to distinguish "already there" from
// "just created" for this bookkeeping path.
func (g *Graph) EnsurePlaceholder(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[id]; ok {
		return
	}
	e := newEntry()
	e.placeholder = true
	g.nodes[id] = e
}

// RemoveNode deletes id and removes it from every neighbor set that
// referenced it.
func (g *Graph) RemoveNode(id uint64) Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.nodes[id]
	if !ok {
		return StatusNotFound
	}
	for _, n := range append([]uint64(nil), e.neighbors...) {
		if other, ok := g.nodes[n]; ok {
			other.remove(id)
		}
	}
	delete(g.nodes, id)
	return StatusSuccess
}

// AddEdge records the undirected edge {a,b}. Both endpoints must already
// exist (as owned nodes or placeholders); the insertion is always
// double-sided, so getEdge(a,b) == getEdge(b,a) holds immediately.
func (g *Graph) AddEdge(a, b uint64) Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEdgeLocked(a, b)
}

func (g *Graph) addEdgeLocked(a, b uint64) Status {
	if a == b {
		return StatusError
	}
	ea, ok := g.nodes[a]
	if !ok {
		return StatusNotFound
	}
	eb, ok := g.nodes[b]
	if !ok {
		return StatusNotFound
	}
	if ea.has(b) {
		return StatusExists
	}
	ea.add(b)
	eb.add(a)
	return StatusSuccess
}

// RemoveEdge removes the undirected edge {a,b}, if both endpoints and the
// edge exist.
func (g *Graph) RemoveEdge(a, b uint64) Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	ea, ok := g.nodes[a]
	if !ok {
		return StatusNotFound
	}
	eb, ok := g.nodes[b]
	if !ok {
		return StatusNotFound
	}
	if !ea.has(b) {
		return StatusNotFound
	}
	ea.remove(b)
	eb.remove(a)
	return StatusSuccess
}

// GetNode reports whether id is present locally. Always returns
// StatusSuccess; the boolean carries the actual answer.
func (g *Graph) GetNode(id uint64) (Status, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.nodes[id]
	return StatusSuccess, ok
}

// GetEdge reports whether {a,b} is recorded, checking either endpoint's
// neighbor set (the two are expected to agree, but a peer holding only one
// side of a cross-partition edge during a transient failure can still
// answer from whichever side it has).
func (g *Graph) GetEdge(a, b uint64) (Status, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if a == b {
		return StatusError, false
	}
	ea, aok := g.nodes[a]
	eb, bok := g.nodes[b]
	if !aok || !bok {
		return StatusNotFound, false
	}
	return StatusSuccess, ea.has(b) || eb.has(a)
}

// GetNeighbors returns id's neighbors in insertion order.
func (g *Graph) GetNeighbors(id uint64) (Status, []uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.nodes[id]
	if !ok {
		return StatusNotFound, nil
	}
	out := make([]uint64, len(e.neighbors))
	copy(out, e.neighbors)
	return StatusSuccess, out
}

// ShortestPath returns the unweighted BFS hop distance between a and b,
// considering only locally-held adjacency (cross-partition neighbors are
// present as placeholders but their own neighbors are not, so this is a
// partial view of the global graph; see package peer for the caveat this
// implies for cross-partition pairs).
//
// a == b returns (StatusExists, 0): the distance is trivially zero, and this
// case is reported as EXISTS rather than SUCCESS by convention.
func (g *Graph) ShortestPath(a, b uint64) (Status, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if a == b {
		return StatusExists, 0
	}
	if _, ok := g.nodes[a]; !ok {
		return StatusNotFound, 0
	}
	if _, ok := g.nodes[b]; !ok {
		return StatusNotFound, 0
	}

	visited := map[uint64]bool{a: true}
	queue := []uint64{a}
	dist := map[uint64]uint64{a: 0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			return StatusSuccess, dist[cur]
		}
		e := g.nodes[cur]
		if e == nil {
			continue
		}
		for _, n := range e.neighbors {
			if visited[n] {
				continue
			}
			visited[n] = true
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return StatusNotFound, 0
}
