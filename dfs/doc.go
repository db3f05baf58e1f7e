// SPDX-License-Identifier: MIT

// Package dfs finds cycles in a core.Graph by depth-first search.
//
// DetectCycles colors nodes white, gray and black and reports the cycle closed
// by every back edge, deduplicated by a canonical rotation (Booth's
// algorithm, MinimalRotation). With WithFilterNeighbor it searches an
// induced subgraph, e.g. a sampler model without its randomizer network,
// where stitched tracks close loops and plain tracks do not.
//
// In undirected graphs the tree edge back to the parent is not a cycle, and
// self-loops count only on graphs built WithLoops.
//
// Complexity: O(V + E + C·L) time for C cycles of average length L,
// O(V + L_max) memory.
package dfs
