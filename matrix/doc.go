// SPDX-License-Identifier: MIT

// Package matrix offers a row-major dense float64 matrix and the small set of
// kernels the model statistics need.
//
// The matrix package provides:
//
//   - Dense, a flat row-major Matrix with bounds-checked At/Set, and NewDiag.
//   - Mul, VecMul, Transpose and RowSums for chaining linear maps.
//   - Adjacency, which lays a core.Graph out as an n×n count matrix together
//     with the Index that maps node handles to rows.
//   - AllClose for tolerance comparisons, e.g. of a flow matrix against its
//     transpose.
//
// Matrices are best for small models where O(V²) memory is acceptable. A
// 10-bit Las Vegas hourglass already has tens of thousands of nodes; use
// them on small bit counts or restricted node sets.
package matrix
