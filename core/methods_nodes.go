// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Nodes() returns handles in insertion order.
//
// Concurrency:
//   - Graph adjacency protected by g.mu; node records by the arena's own lock.

package core

import "fmt"

// AddNode allocates a node in the graph's arena, registers it with an empty
// neighbor list and returns its handle.
//
// Implementation:
//   - Stage 1: Allocate the record in the arena (fresh, never-reused handle).
//   - Stage 2: Under g.mu, register an empty adjacency slice and append to order.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddNode(kind Kind, data Payload) NodeID {
	id := g.arena.alloc(kind, data)

	g.mu.Lock()
	g.adjacency[id] = nil
	g.order = append(g.order, id)
	g.mu.Unlock()

	return id
}

// Adopt registers an existing arena node in g without edges. Adopting a
// node g already holds is a no-op.
//
// Errors:
//   - ErrNodeNotFound: id was never allocated in g's arena.
func (g *Graph) Adopt(id NodeID) error {
	if _, err := g.arena.Node(id); err != nil {
		return fmt.Errorf("Graph.Adopt: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
		g.order = append(g.order, id)
	}

	return nil
}

// HasNode reports whether id is a node of this graph (not merely of its arena).
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[id]

	return ok
}

// Node returns the record of a node held by this graph.
//
// Errors:
//   - ErrNodeNotFound: id is not a node of g.
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.HasNode(id) {
		return Node{}, fmt.Errorf("Graph.Node(%s): %w", id, ErrNodeNotFound)
	}

	return g.arena.Node(id)
}

// Kind returns the role tag of id, or "" if id is not a node of g.
func (g *Graph) Kind(id NodeID) Kind {
	n, err := g.Node(id)
	if err != nil {
		return ""
	}

	return n.Kind
}

// SetPayload re-tags a node with a new kind and payload. Used when a
// sub-graph absorbed through Union needs model-level annotations.
func (g *Graph) SetPayload(id NodeID, kind Kind, data Payload) error {
	if !g.HasNode(id) {
		return fmt.Errorf("Graph.SetPayload(%s): %w", id, ErrNodeNotFound)
	}
	g.arena.set(id, kind, data)

	return nil
}

// Nodes returns all node handles in insertion order. The slice is a copy.
// Complexity: O(V)
func (g *Graph) Nodes() []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeID, len(g.order))
	copy(out, g.order)

	return out
}

// NodesOfKind returns the handles whose kind equals kind, in insertion order.
func (g *Graph) NodesOfKind(kind Kind) []NodeID {
	var out []NodeID
	for _, id := range g.Nodes() {
		if g.Kind(id) == kind {
			out = append(out, id)
		}
	}

	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.order)
}

// String lists every node followed by its neighbor names, one per line.
func (g *Graph) String() string {
	var s string
	for _, id := range g.Nodes() {
		n, _ := g.arena.Node(id)
		s += n.String() + " ->"
		nbrs, _ := g.Neighbors(id)
		for i, nb := range nbrs {
			if i > 0 {
				s += ","
			}
			s += " " + nb.String()
		}
		s += "\n"
	}

	return s
}
