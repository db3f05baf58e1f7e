// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/hourglass/core"
)

var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrNoSource is returned when a search is given no source at all.
	ErrNoSource = errors.New("bfs: no source node")

	// ErrSourceNotFound is returned when a source is not a node of the graph.
	ErrSourceNotFound = errors.New("bfs: source node not in graph")

	// ErrOptionViolation is returned for an invalid option value.
	ErrOptionViolation = errors.New("bfs: invalid option")

	// ErrUnreachable is returned by PathTo for a node the search never reached.
	ErrUnreachable = errors.New("bfs: node not reached")
)

// Option tunes a search.
type Option func(*options)

type options struct {
	ctx      context.Context
	onVisit  func(id core.NodeID, depth int) error
	maxDepth int
	err      error
}

func newOptions(opts []Option) options {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithContext makes the search stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithOnVisit calls fn as each node leaves the queue. A non-nil error stops
// the search; it is returned wrapped, next to the partial result.
func WithOnVisit(fn func(id core.NodeID, depth int) error) Option {
	return func(o *options) { o.onVisit = fn }
}

// WithMaxDepth leaves nodes farther than d hops from every source
// undiscovered. d == 0 means no limit; d < 0 is ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth %d < 0", ErrOptionViolation, d)
			return
		}
		o.maxDepth = d
	}
}

// Result is a breadth-first forest rooted at the sources.
type Result struct {
	// Order lists nodes in the order they left the queue.
	Order []core.NodeID

	// Depth is the hop distance to the nearest source, for every
	// discovered node.
	Depth map[core.NodeID]int

	// Parent is the predecessor on one shortest path; sources have none.
	Parent map[core.NodeID]core.NodeID
}

// MaxDepth returns the largest discovered distance, 0 for a bare source.
func (r *Result) MaxDepth() int {
	deepest := 0
	for _, d := range r.Depth {
		if d > deepest {
			deepest = d
		}
	}

	return deepest
}

// PathTo returns the nodes from dest's nearest source to dest, both ends
// included.
func (r *Result) PathTo(dest core.NodeID) ([]core.NodeID, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("bfs: PathTo(%s): %w", dest, ErrUnreachable)
	}
	path := make([]core.NodeID, d+1)
	for cur, i := dest, d; i >= 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}

	return path, nil
}
