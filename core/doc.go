// Package core provides the arena-backed Graph used by every hourglass model.
//
// A Graph G = (V,E) stores, for each node, an ordered slice of neighbor
// handles. Nodes live in an Arena and are referenced by opaque NodeID
// handles; several graphs may share one Arena so that sub-graphs (a
// randomness network, a computation trace) can be built independently and
// later absorbed into a composite model with Union.
//
// Behaviors:
//
//   - Undirected by default; WithDirected(true) stores one direction only.
//   - Self-loops rejected unless WithLoops().
//   - Parallel edges rejected unless WithMultiEdges().
//   - Nodes() enumerates in insertion order, Neighbors() in edge insertion
//     order. Neither order carries meaning beyond display and reproducibility.
//
// Node identity:
//
//	NodeID      opaque arena index; String() is the stable node name ("v17").
//	Kind        open role tag ("randomizer", "computation", "output", …).
//	Payload     typed per-role data (fmt.Stringer); packages add their own.
//
// Core methods:
//
//	AddNode(kind, payload) NodeID        // O(1)
//	AddEdge(a, b) error                  // O(deg) duplicate check
//	Union(other) error                   // O(V+E), edge-set union per node
//	Neighbors(id) ([]NodeID, error)      // O(1), read-only view
//	Node(id) (Node, error)               // O(1)
//	SetPayload(id, kind, payload) error  // re-tag an absorbed node
//
// Errors:
//
//	ErrNodeNotFound          – handle not present in the graph
//	ErrLoopNotAllowed        – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed   – parallel edge when multi-edges disabled
//	ErrDirectednessMismatch  – Union of directed with undirected graph
//	ErrArenaMismatch         – Union of graphs backed by different arenas
//	ErrNilGraph              – nil receiver or argument
//
// Graphs are safe for concurrent readers once construction is complete;
// mutation is guarded by a sync.RWMutex but the models never mutate a graph
// after building it.
package core
