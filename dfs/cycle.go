// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/hourglass/core"
)

// DetectCycles reports the cycles closed by DFS back edges in g: every
// gray→gray edge yields the cycle along the current path. In undirected
// graphs the edge back to the DFS parent is not a cycle. Each cycle is
// returned closed ([v0, ..., v0]) in its minimal rotation, and the list is
// sorted for deterministic output.
//
// With WithFilterNeighbor the search runs on the induced subgraph.
//
// A nil graph is cycle-free.
//
// Complexity: O(V + E + C·L) time (C cycles, L average length).
func DetectCycles(g *core.Graph, opts ...Option) (bool, [][]core.NodeID, error) {
	if g == nil {
		return false, nil, nil
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	nodes := g.Nodes()
	c := &cycleFinder{
		g:      g,
		keep:   o.keep,
		state:  make(map[core.NodeID]int, len(nodes)),
		path:   make([]core.NodeID, 0, len(nodes)),
		seen:   make(map[string]struct{}),
	}
	for _, v := range nodes {
		if c.keep != nil && !c.keep(v) {
			continue
		}
		if c.state[v] == white {
			if err := c.visit(v, core.NoNode); err != nil {
				return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
			}
		}
	}

	sort.Slice(c.cycles, func(i, j int) bool {
		return joinSig(c.cycles[i]) < joinSig(c.cycles[j])
	})
	if len(c.cycles) == 0 {
		return false, nil, nil
	}

	return true, c.cycles, nil
}

type cycleFinder struct {
	g      *core.Graph
	keep   func(core.NodeID) bool
	state  map[core.NodeID]int
	path   []core.NodeID
	seen   map[string]struct{}
	cycles [][]core.NodeID
}

// visit colors id gray, explores its neighbors and records back edges.
func (c *cycleFinder) visit(id, parent core.NodeID) error {
	c.state[id] = gray
	c.path = append(c.path, id)

	nbrs, err := c.g.Neighbors(id)
	if err != nil {
		return fmt.Errorf("Neighbors(%s): %w", id, err)
	}
	for _, nbr := range nbrs {
		if c.keep != nil && !c.keep(nbr) {
			continue
		}
		// Trivial backtrack along the tree edge.
		if !c.g.Directed() && nbr == parent {
			continue
		}
		switch c.state[nbr] {
		case white:
			if err = c.visit(nbr, id); err != nil {
				return err
			}
		case gray:
			segLen := len(c.path) - indexOf(c.path, nbr)
			if segLen < 2 && !c.g.Looped() {
				continue
			}
			if segLen == 2 && !c.g.Directed() {
				continue
			}
			c.record(nbr)
		}
	}

	c.path = c.path[:len(c.path)-1]
	c.state[id] = black

	return nil
}

// record closes the path segment starting at start and keeps it if its
// canonical form is new.
func (c *cycleFinder) record(start core.NodeID) {
	idx := indexOf(c.path, start)
	seq := append([]core.NodeID(nil), c.path[idx:]...)
	seq = append(seq, start)

	sig, canon := canonical(seq)
	if _, exists := c.seen[sig]; !exists {
		c.seen[sig] = struct{}{}
		c.cycles = append(c.cycles, canon)
	}
}

// canonical picks the smaller of the minimal forward rotation and the
// minimal rotation of the reversal, closes it, and returns its signature.
func canonical(cycle []core.NodeID) (string, []core.NodeID) {
	base := cycle[:len(cycle)-1]
	rotF := MinimalRotation(base)
	rotB := MinimalRotation(reverse(base))
	picker := rotF
	if compare(rotB, rotF) < 0 {
		picker = rotB
	}
	closed := append(append([]core.NodeID(nil), picker...), picker[0])

	return joinSig(closed), closed
}
