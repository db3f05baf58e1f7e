// SPDX-License-Identifier: MIT

package stats

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/matrix"
)

// Sentinel errors.
var (
	// ErrDisconnected indicates a graph with more than one component; its
	// stationary distribution is not unique.
	ErrDisconnected = errors.New("stats: graph is not connected")

	// ErrDirected indicates a directed graph where an undirected one is required.
	ErrDirected = errors.New("stats: graph is directed")

	// ErrNotConverged indicates power iteration hit its iteration cap.
	ErrNotConverged = errors.New("stats: power iteration did not converge")

	// ErrNotStochastic indicates a transition row that does not sum to 1.
	ErrNotStochastic = errors.New("stats: transition matrix is not stochastic")

	// ErrIndexMismatch indicates a distribution built for another graph.
	ErrIndexMismatch = errors.New("stats: distribution does not index this graph")
)

// Default power-iteration settings.
const (
	DefaultTolerance     = 1e-12
	DefaultMaxIterations = 1_000_000
)

// Option configures Stationary.
type Option func(*config)

type config struct {
	tol     float64
	maxIter int
}

// WithTolerance sets the L1 change below which iteration stops.
// Panics if eps <= 0.
func WithTolerance(eps float64) Option {
	if eps <= 0 {
		panic(fmt.Sprintf("stats: WithTolerance(%g): must be > 0", eps))
	}
	return func(c *config) { c.tol = eps }
}

// WithMaxIterations caps the number of power steps. Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("stats: WithMaxIterations(%d): must be > 0", n))
	}
	return func(c *config) { c.maxIter = n }
}

// Distribution is a probability vector over the nodes of one graph.
type Distribution struct {
	// Index maps nodes to positions in Pi.
	Index *matrix.Index

	// Pi holds the probability of each indexed node; it sums to 1.
	Pi []float64

	// Iterations is the number of power steps taken (0 for closed forms).
	Iterations int
}

// Of returns the probability of id.
func (d *Distribution) Of(id core.NodeID) (float64, error) {
	r, err := d.Index.Row(id)
	if err != nil {
		return 0, fmt.Errorf("Distribution.Of(%s): %w", id, err)
	}

	return d.Pi[r], nil
}

// KindMass is the share of a distribution carried by one node kind.
type KindMass struct {
	Kind  core.Kind
	Nodes int
	Mass  float64
}

// String renders "kind nodes=N mass=M".
func (k KindMass) String() string {
	return fmt.Sprintf("%s nodes=%d mass=%.6f", k.Kind, k.Nodes, k.Mass)
}
