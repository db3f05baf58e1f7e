// File: methods_edges.go
// Role: Edge insertion and neighborhood queries.
//
// Determinism:
//   - Neighbors() preserves edge insertion order.
//
// Concurrency:
//   - Neighbors() returns the live adjacency slice; callers treat it as read-only.

package core

import "fmt"

// AddEdge connects a and b. In undirected mode both directions are inserted
// under one lock acquisition; a self-loop is stored once.
//
// Implementation:
//   - Stage 1: Validate both endpoints belong to g (ErrNodeNotFound).
//   - Stage 2: Enforce loop policy (ErrLoopNotAllowed).
//   - Stage 3: Enforce parallel-edge policy (ErrMultiEdgeNotAllowed).
//   - Stage 4: Append b to a's neighbors, and a to b's unless directed.
//
// Complexity:
//   - Time O(deg(a)) for the duplicate check, Space O(1) amortized.
func (g *Graph) AddEdge(a, b NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[a]; !ok {
		return fmt.Errorf("Graph.AddEdge(%s→%s): %w", a, b, ErrNodeNotFound)
	}
	if _, ok := g.adjacency[b]; !ok {
		return fmt.Errorf("Graph.AddEdge(%s→%s): %w", a, b, ErrNodeNotFound)
	}
	if a == b && !g.allowLoops {
		return fmt.Errorf("Graph.AddEdge(%s→%s): %w", a, b, ErrLoopNotAllowed)
	}
	if !g.allowMulti && contains(g.adjacency[a], b) {
		return fmt.Errorf("Graph.AddEdge(%s→%s): %w", a, b, ErrMultiEdgeNotAllowed)
	}

	g.adjacency[a] = append(g.adjacency[a], b)
	if !g.directed && a != b {
		g.adjacency[b] = append(g.adjacency[b], a)
	}
	g.edges++

	return nil
}

// HasEdge reports whether b is a neighbor of a.
func (g *Graph) HasEdge(a, b NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return contains(g.adjacency[a], b)
}

// Neighbors returns the ordered neighbor handles of id.
//
// The returned slice aliases internal storage and must not be modified.
// It is stable once the graph is no longer being built.
//
// Errors:
//   - ErrNodeNotFound: id is not a node of g.
//
// Complexity: O(1)
func (g *Graph) Neighbors(id NodeID) ([]NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("Graph.Neighbors(%s): %w", id, ErrNodeNotFound)
	}

	return nbrs, nil
}

// Degree returns the number of neighbor entries of id (parallel edges count
// once per entry).
func (g *Graph) Degree(id NodeID) (int, error) {
	nbrs, err := g.Neighbors(id)
	if err != nil {
		return 0, err
	}

	return len(nbrs), nil
}

// EdgeCount returns the number of edges (an undirected edge counts once).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// contains is a linear membership test over a neighbor slice.
func contains(nbrs []NodeID, id NodeID) bool {
	for _, n := range nbrs {
		if n == id {
			return true
		}
	}

	return false
}
