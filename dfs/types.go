// SPDX-License-Identifier: MIT

package dfs

import "github.com/katalvlaran/hourglass/core"

// Visitation states.
const (
	white = iota // not visited yet
	gray         // on the recursion stack
	black        // fully explored
)

// Option configures DetectCycles.
type Option func(*options)

type options struct {
	keep func(id core.NodeID) bool
}

// WithFilterNeighbor restricts the search to the nodes for which fn returns
// true: the others are neither roots nor neighbors.
func WithFilterNeighbor(fn func(id core.NodeID) bool) Option {
	return func(o *options) { o.keep = fn }
}
