// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/matrix"
)

// TransitionMatrix returns the lazy transition matrix of the discrete walk on
// g and the node index of its rows. Every row sums to 1.
//
// Complexity: O(V² + E) time, O(V²) memory.
func TransitionMatrix(g *core.Graph) (*matrix.Dense, *matrix.Index, error) {
	if g == nil {
		return nil, nil, fmt.Errorf("stats.TransitionMatrix: %w", core.ErrNilGraph)
	}
	p, idx, err := matrix.Adjacency(g)
	if err != nil {
		return nil, nil, fmt.Errorf("stats.TransitionMatrix: %w", err)
	}
	for i, id := range idx.IDs() {
		deg, err := g.Degree(id)
		if err != nil {
			return nil, nil, fmt.Errorf("stats.TransitionMatrix: %w", err)
		}
		w := 1 / float64(deg+1)
		row, _ := p.Row(i)
		for j, count := range row {
			v := count * w
			if j == i {
				v += w
			}
			if v != 0 {
				if err = p.Set(i, j, v); err != nil {
					return nil, nil, fmt.Errorf("stats.TransitionMatrix: %w", err)
				}
			}
		}
	}

	sums, err := matrix.RowSums(p)
	if err != nil {
		return nil, nil, fmt.Errorf("stats.TransitionMatrix: %w", err)
	}
	for i, sum := range sums {
		if math.Abs(sum-1) > stochasticSlack {
			return nil, nil, fmt.Errorf("stats.TransitionMatrix: row %d sums to %g: %w", i, sum, ErrNotStochastic)
		}
	}

	return p, idx, nil
}

// stochasticSlack bounds the rounding error of a row sum.
const stochasticSlack = 1e-9

// DetailedBalance reports whether π_i·P_ij = π_j·P_ji holds for every pair,
// i.e. whether the lazy walk is reversible under d. The flow matrix diag(π)·P
// is compared with its transpose.
//
// Complexity: O(V²) time and memory.
func DetailedBalance(g *core.Graph, d *Distribution) (bool, error) {
	if d == nil || d.Index == nil || g == nil || d.Index.Len() != g.NodeCount() {
		return false, fmt.Errorf("stats.DetailedBalance: %w", ErrIndexMismatch)
	}
	p, idx, err := TransitionMatrix(g)
	if err != nil {
		return false, fmt.Errorf("stats.DetailedBalance: %w", err)
	}
	pi := make([]float64, idx.Len())
	for i, id := range idx.IDs() {
		if pi[i], err = d.Of(id); err != nil {
			return false, fmt.Errorf("stats.DetailedBalance: %w: %w", ErrIndexMismatch, err)
		}
	}
	diag, err := matrix.NewDiag(pi)
	if err != nil {
		return false, fmt.Errorf("stats.DetailedBalance: %w", err)
	}
	flow, err := matrix.Mul(diag, p)
	if err != nil {
		return false, fmt.Errorf("stats.DetailedBalance: %w", err)
	}
	back, err := matrix.Transpose(flow)
	if err != nil {
		return false, fmt.Errorf("stats.DetailedBalance: %w", err)
	}
	ok, err := matrix.AllClose(flow, back, 1e-9, 1e-12)
	if err != nil {
		return false, fmt.Errorf("stats.DetailedBalance: %w", err)
	}

	return ok, nil
}

// Stationary finds π = πP for the lazy walk on a connected graph by power
// iteration from the uniform vector.
//
// Errors:
//   - core.ErrNilGraph, matrix.ErrBadShape (empty graph).
//   - ErrDisconnected: g has more than one component.
//   - ErrNotConverged: the L1 change stayed above the tolerance.
func Stationary(g *core.Graph, opts ...Option) (*Distribution, error) {
	cfg := config{tol: DefaultTolerance, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := connected(g); err != nil {
		return nil, fmt.Errorf("stats.Stationary: %w", err)
	}
	p, idx, err := TransitionMatrix(g)
	if err != nil {
		return nil, fmt.Errorf("stats.Stationary: %w", err)
	}

	n := idx.Len()
	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1 / float64(n)
	}
	for it := 1; it <= cfg.maxIter; it++ {
		next, err := matrix.VecMul(pi, p)
		if err != nil {
			return nil, fmt.Errorf("stats.Stationary: %w", err)
		}
		var delta float64
		for i := range next {
			delta += math.Abs(next[i] - pi[i])
		}
		pi = next
		if delta < cfg.tol {
			return &Distribution{Index: idx, Pi: pi, Iterations: it}, nil
		}
	}

	return nil, fmt.Errorf("stats.Stationary after %d steps: %w", cfg.maxIter, ErrNotConverged)
}

// DegreeStationary returns the closed-form stationary distribution of the
// lazy walk on a connected undirected graph, π(i) = (deg(i)+1) / Σ(deg+1).
// It needs no matrix and scales to large models.
func DegreeStationary(g *core.Graph) (*Distribution, error) {
	if g == nil {
		return nil, fmt.Errorf("stats.DegreeStationary: %w", core.ErrNilGraph)
	}
	if g.Directed() {
		return nil, fmt.Errorf("stats.DegreeStationary: %w", ErrDirected)
	}
	if err := connected(g); err != nil {
		return nil, fmt.Errorf("stats.DegreeStationary: %w", err)
	}
	idx := matrix.NewIndex(g.Nodes())
	pi := make([]float64, idx.Len())
	var total float64
	for i, id := range idx.IDs() {
		deg, err := g.Degree(id)
		if err != nil {
			return nil, fmt.Errorf("stats.DegreeStationary: %w", err)
		}
		pi[i] = float64(deg + 1)
		total += pi[i]
	}
	for i := range pi {
		pi[i] /= total
	}

	return &Distribution{Index: idx, Pi: pi}, nil
}

// ByKind sums d over the nodes of each kind, sorted by kind name.
func ByKind(g *core.Graph, d *Distribution) ([]KindMass, error) {
	if g == nil {
		return nil, fmt.Errorf("stats.ByKind: %w", core.ErrNilGraph)
	}
	if d == nil || d.Index == nil || d.Index.Len() != g.NodeCount() {
		return nil, fmt.Errorf("stats.ByKind: %w", ErrIndexMismatch)
	}
	byKind := make(map[core.Kind]*KindMass)
	for i, id := range d.Index.IDs() {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("stats.ByKind(%s): %w", id, ErrIndexMismatch)
		}
		k := g.Kind(id)
		km, ok := byKind[k]
		if !ok {
			km = &KindMass{Kind: k}
			byKind[k] = km
		}
		km.Nodes++
		km.Mass += d.Pi[i]
	}

	out := make([]KindMass, 0, len(byKind))
	for _, km := range byKind {
		out = append(out, *km)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })

	return out, nil
}

// connected fails unless g is non-empty with a single component.
func connected(g *core.Graph) error {
	if g == nil {
		return core.ErrNilGraph
	}
	comps, err := bfs.Components(g)
	if err != nil {
		return err
	}
	switch len(comps) {
	case 0:
		return matrix.ErrBadShape
	case 1:
		return nil
	}

	return fmt.Errorf("%d components: %w", len(comps), ErrDisconnected)
}
