// SPDX-License-Identifier: MIT

// Package stats computes the long-run behaviour of the discrete random walk
// on a sampler model.
//
// The discrete walk is the lazy chain
//
//	P[i][i] += 1/(deg(i)+1)
//	P[i][j] += 1/(deg(i)+1)  for every occurrence of j among i's neighbors
//
// TransitionMatrix builds P densely, Stationary finds π = πP by power
// iteration from the uniform vector, and DegreeStationary gives the closed
// form π(i) ∝ deg(i)+1 that holds on undirected graphs. ByKind folds a
// distribution into the total mass per node kind, which is how much of its
// time the walker spends computing, diffusing randomness, or outputting.
//
// DetailedBalance checks π_i·P_ij = π_j·P_ji on the dense flow matrix, which
// holds for every undirected model and fails for one-way chains.
//
// Describe reports node, edge and component counts, the depth of the traces
// below the randomizer network and the number of cycles the stitching leaves
// among the trace nodes. ShortestTo finds the nearest node of interest, e.g.
// the closest output, from a walker's start.
//
// Dense matrices cost O(V²) memory; use DegreeStationary for large models.
package stats
