// SPDX-License-Identifier: MIT

// Package core defines the Arena, Node, Graph types, graph options and the
// sentinel errors shared by all graph operations.
package core

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrNilGraph indicates a nil *Graph receiver or argument.
	ErrNilGraph = errors.New("core: graph is nil")

	// ErrNodeNotFound indicates an operation referenced a node absent from the graph.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrDirectednessMismatch indicates a Union of a directed and an undirected graph.
	ErrDirectednessMismatch = errors.New("core: cannot union graphs of differing directedness")

	// ErrArenaMismatch indicates a Union of graphs whose nodes live in different arenas.
	ErrArenaMismatch = errors.New("core: cannot union graphs backed by different arenas")
)

// Kind is the role tag of a node. The set is open: packages declare their
// own kinds next to the payload types that go with them.
type Kind string

// Kinds shared by the sampler models.
const (
	KindRandomizer  Kind = "randomizer"
	KindComputation Kind = "computation"
	KindOutput      Kind = "output"
	KindHoldOutput  Kind = "hold_output"
	KindRandGen     Kind = "rand_gen"
)

// ProductKind returns the composite kind of a Monte Carlo product node.
func ProductKind(top, bottom Kind) Kind {
	return top + "_" + bottom
}

// NodeID is an opaque handle into an Arena.
type NodeID uint32

// NoNode is the zero-value-like sentinel for "no node".
const NoNode NodeID = math.MaxUint32

// String returns the stable node name.
func (id NodeID) String() string {
	if id == NoNode {
		return "v<none>"
	}
	return fmt.Sprintf("v%d", uint32(id))
}

// Payload is the typed per-role data attached to a node.
type Payload interface {
	fmt.Stringer
}

// Node is a snapshot of a node record: handle, role tag and payload.
type Node struct {
	// ID is the arena handle and stable name of the node.
	ID NodeID

	// Kind is the role tag.
	Kind Kind

	// Data holds the typed payload; nil for nodes without one.
	Data Payload
}

// String renders "name kind payload".
func (n Node) String() string {
	if n.Data == nil {
		return n.ID.String() + " " + string(n.Kind)
	}
	return n.ID.String() + " " + string(n.Kind) + " " + n.Data.String()
}

// Arena owns node records. Handles are dense indexes into the arena and are
// never reused.
type Arena struct {
	mu    sync.RWMutex
	nodes []Node
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 0, 64)}
}

// Len returns the number of nodes ever allocated in the arena.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.nodes)
}

// Node returns the record for id, regardless of which graph holds it.
func (a *Arena) Node(id NodeID) (Node, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if int(id) >= len(a.nodes) {
		return Node{}, fmt.Errorf("Arena.Node(%s): %w", id, ErrNodeNotFound)
	}

	return a.nodes[id], nil
}

// alloc registers a new node record and returns its handle.
func (a *Arena) alloc(kind Kind, data Payload) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{ID: id, Kind: kind, Data: data})

	return id
}

// set overwrites the kind and payload of an existing record.
func (a *Arena) set(id NodeID, kind Kind, data Payload) {
	a.mu.Lock()
	a.nodes[id].Kind = kind
	a.nodes[id].Data = data
	a.mu.Unlock()
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the directedness of all edges (true = directed).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// WithMultiEdges permits parallel edges between the same nodes.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithArena backs the graph by an existing arena so that it can later be
// merged with other graphs of the same arena. Panics on nil.
func WithArena(a *Arena) GraphOption {
	if a == nil {
		panic("core: WithArena(nil)")
	}
	return func(g *Graph) { g.arena = a }
}

// Graph is an adjacency structure over arena nodes.
//
// adjacency[id] holds the ordered neighbor handles of id; every handle that
// appears in a neighbor slice is itself a key. order records node insertion
// order for deterministic enumeration.
type Graph struct {
	mu sync.RWMutex

	// Configuration flags
	directed   bool
	allowLoops bool
	allowMulti bool

	// Storage
	arena     *Arena
	adjacency map[NodeID][]NodeID
	order     []NodeID
	edges     int
}

// NewGraph creates an empty Graph. By default it is undirected, without
// loops or parallel edges, and backed by a fresh Arena.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		adjacency: make(map[NodeID][]NodeID),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.arena == nil {
		g.arena = NewArena()
	}

	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool { return g.allowMulti }

// Arena returns the arena backing the graph's nodes.
func (g *Graph) Arena() *Arena { return g.arena }
