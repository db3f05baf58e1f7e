// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
)

// Adjacency lays g out as an n×n matrix where entry (i,j) counts the
// occurrences of node j in the neighbor list of node i.
//
// Algorithm:
//  1. Build the Index in node insertion order.
//  2. Allocate an n×n zero matrix.
//  3. For every node i and every neighbor entry j: A[i][j] += 1.
//
// For an undirected graph A is symmetric and row i sums to deg(i).
//
// Errors: ErrGraphNil, ErrBadShape (empty graph).
// Complexity: O(V² + E) time, O(V²) memory.
func Adjacency(g *core.Graph) (*Dense, *Index, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	idx := NewIndex(g.Nodes())
	a, err := NewDense(idx.Len(), idx.Len())
	if err != nil {
		return nil, nil, fmt.Errorf("matrix.Adjacency: %w", err)
	}
	for i, id := range idx.ids {
		nbrs, err := g.Neighbors(id)
		if err != nil {
			return nil, nil, fmt.Errorf("matrix.Adjacency: %w", err)
		}
		for _, nb := range nbrs {
			j, ok := idx.rows[nb]
			if !ok {
				return nil, nil, fmt.Errorf("matrix.Adjacency(%s): %w", nb, ErrUnknownNode)
			}
			a.data[i*a.c+j]++
		}
	}

	return a, idx, nil
}
