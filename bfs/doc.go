// Package bfs provides breadth-first search over a core.Graph: hop distances,
// shortest-path parents and visit order.
//
// Search accepts several sources and measures every node against the nearest
// one, which is how trace depth is measured from a whole randomness network
// at once. BFS is the single-source form.
//
//	res, err := bfs.Search(g, networkNodes, bfs.WithMaxDepth(8))
//	path, err := res.PathTo(id)
//
// Options: WithContext (cancellation), WithOnVisit (per-node hook that may
// stop the search), WithMaxDepth (hop limit, 0 = none).
//
// Neighbors are expanded in insertion order, so Order, Depth and Parent are
// reproducible. Time O(V+E), memory O(V).
package bfs
