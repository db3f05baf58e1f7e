// File: methods_union.go
// Role: Merging graphs that share an arena.
//
// Determinism:
//   - Receiver nodes and neighbors keep their order; new entries are appended
//     in the other graph's order.

package core

import "fmt"

// Union merges other into g. For every node present in either graph, the
// resulting neighbor set is the union of both graphs' neighbor sets for that
// node. Nothing is overwritten, so shared nodes (a randomness network held by
// two model halves) keep the edges contributed by each side.
//
// Implementation:
//   - Stage 1: Validate inputs (ErrNilGraph), directedness (ErrDirectednessMismatch)
//     and shared arena (ErrArenaMismatch).
//   - Stage 2: Snapshot other's adjacency under its read lock.
//   - Stage 3: Under g's write lock, register unseen nodes and append unseen
//     neighbors (set semantics).
//   - Stage 4: Recount edges.
//
// Behavior highlights:
//   - Commutative and idempotent on per-node edge sets.
//   - g.Union(g) is a no-op.
//
// Complexity:
//   - Time O(V + E·d) where d bounds per-node degree, Space O(V + E) snapshot.
func (g *Graph) Union(other *Graph) error {
	if g == nil || other == nil {
		return ErrNilGraph
	}
	if g == other {
		return nil
	}
	if g.directed != other.directed {
		return fmt.Errorf("Graph.Union: directed=%t vs %t: %w", g.directed, other.directed, ErrDirectednessMismatch)
	}
	if g.arena != other.arena {
		return fmt.Errorf("Graph.Union: %w", ErrArenaMismatch)
	}

	// Snapshot other first so that the two locks are never held together.
	other.mu.RLock()
	order := make([]NodeID, len(other.order))
	copy(order, other.order)
	adj := make(map[NodeID][]NodeID, len(other.adjacency))
	for id, nbrs := range other.adjacency {
		cp := make([]NodeID, len(nbrs))
		copy(cp, nbrs)
		adj[id] = cp
	}
	other.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range order {
		mine, seen := g.adjacency[id]
		if !seen {
			g.order = append(g.order, id)
		}
		for _, nb := range adj[id] {
			if !contains(mine, nb) {
				mine = append(mine, nb)
			}
		}
		g.adjacency[id] = mine
	}
	g.edges = countEdges(g.adjacency, g.directed)

	return nil
}

// countEdges recomputes the edge count from adjacency entries.
func countEdges(adj map[NodeID][]NodeID, directed bool) int {
	var entries, loops int
	for id, nbrs := range adj {
		entries += len(nbrs)
		for _, nb := range nbrs {
			if nb == id {
				loops++
			}
		}
	}
	if directed {
		return entries
	}

	return (entries-loops)/2 + loops
}
