// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/hourglass/core"

// Matrix represents a two-dimensional mutable array of float64 values.
//
// All methods are expected O(1).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf for non-finite v.
	Set(i, j int, v float64) error
}

// Index maps node handles to matrix rows and back.
// Rows follow the graph's node insertion order, so two builds of the same
// graph always agree.
type Index struct {
	rows map[core.NodeID]int
	ids  []core.NodeID
}

// NewIndex assigns rows 0..n-1 to ids in the given order.
func NewIndex(ids []core.NodeID) *Index {
	idx := &Index{rows: make(map[core.NodeID]int, len(ids)), ids: make([]core.NodeID, len(ids))}
	copy(idx.ids, ids)
	for i, id := range ids {
		idx.rows[id] = i
	}

	return idx
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int { return len(x.ids) }

// Row returns the row of id.
func (x *Index) Row(id core.NodeID) (int, error) {
	r, ok := x.rows[id]
	if !ok {
		return 0, ErrUnknownNode
	}

	return r, nil
}

// IDs returns a copy of the row order.
func (x *Index) IDs() []core.NodeID {
	out := make([]core.NodeID, len(x.ids))
	copy(out, x.ids)

	return out
}
