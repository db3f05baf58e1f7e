// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
)

// BFS searches g from a single start node.
func BFS(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	return Search(g, []core.NodeID{start}, opts...)
}

// Search runs one breadth-first search from all sources at once, so Depth is
// the distance to the nearest of them. Duplicate sources are ignored.
//
// Errors: ErrGraphNil, ErrNoSource, ErrSourceNotFound, ErrOptionViolation,
// ctx.Err() after cancellation, and OnVisit errors (wrapped). On the last
// two the partial result is returned as well.
//
// Complexity: O(V + E).
func Search(g *core.Graph, sources []core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	if len(sources) == 0 {
		return nil, ErrNoSource
	}

	n := g.NodeCount()
	res := &Result{
		Order:  make([]core.NodeID, 0, n),
		Depth:  make(map[core.NodeID]int, n),
		Parent: make(map[core.NodeID]core.NodeID, n),
	}
	queue := make([]core.NodeID, 0, n)
	for _, s := range sources {
		if !g.HasNode(s) {
			return nil, fmt.Errorf("bfs: %s: %w", s, ErrSourceNotFound)
		}
		if _, seen := res.Depth[s]; !seen {
			res.Depth[s] = 0
			queue = append(queue, s)
		}
	}

	for head := 0; head < len(queue); head++ {
		if err := o.ctx.Err(); err != nil {
			return res, err
		}
		id := queue[head]
		d := res.Depth[id]
		res.Order = append(res.Order, id)
		if o.onVisit != nil {
			if err := o.onVisit(id, d); err != nil {
				return res, fmt.Errorf("bfs: visit %s: %w", id, err)
			}
		}
		if o.maxDepth > 0 && d == o.maxDepth {
			continue
		}

		nbrs, err := g.Neighbors(id)
		if err != nil {
			return res, fmt.Errorf("bfs: neighbors of %s: %w", id, err)
		}
		for _, nb := range nbrs {
			if _, seen := res.Depth[nb]; seen {
				continue
			}
			res.Depth[nb] = d + 1
			res.Parent[nb] = id
			queue = append(queue, nb)
		}
	}

	return res, nil
}

// Components partitions g into connected components, each listed in BFS
// order from its first node in g's insertion order. Edges are followed in
// their stored direction.
func Components(g *core.Graph) ([][]core.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[core.NodeID]bool, g.NodeCount())
	var out [][]core.NodeID
	for _, id := range g.Nodes() {
		if seen[id] {
			continue
		}
		res, err := BFS(g, id)
		if err != nil {
			return nil, err
		}
		for _, v := range res.Order {
			seen[v] = true
		}
		out = append(out, res.Order)
	}

	return out, nil
}
