// SPDX-License-Identifier: MIT

// Package walk runs random walks over a read-only core.Graph.
//
// Two disciplines:
//
//	Discrete    pick uniformly among the neighbors and the current node
//	            itself (self-loop with probability 1/(deg+1)); clock += 1.
//	Continuous  draw an Exp(1) firing time per neighbor edge, move to the
//	            earliest; clock += that time. No self-loops.
//
// A Walk owns its random source and is not safe for concurrent use; several
// walks may share one graph.
package walk

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/hourglass/core"
)

var (
	// ErrDeadEnd indicates a continuous step from a node without neighbors.
	ErrDeadEnd = errors.New("walk: node has no neighbors")

	// ErrStartNotFound indicates a start node absent from the graph.
	ErrStartNotFound = errors.New("walk: start node not in graph")

	// ErrNoCandidates indicates RandomStart was given nothing to choose from.
	ErrNoCandidates = errors.New("walk: no start candidates")

	// ErrDiscipline indicates an unknown discipline name.
	ErrDiscipline = errors.New("walk: unknown discipline")
)

// Discipline selects how a walk steps.
type Discipline uint8

// Disciplines.
const (
	Continuous Discipline = iota
	Discrete
)

// String renders the discipline name.
func (d Discipline) String() string {
	if d == Discrete {
		return "discrete"
	}
	return "continuous"
}

// ParseDiscipline maps "continuous" and "discrete" to a Discipline.
func ParseDiscipline(s string) (Discipline, error) {
	switch s {
	case "continuous":
		return Continuous, nil
	case "discrete":
		return Discrete, nil
	}
	return Continuous, fmt.Errorf("%q: %w", s, ErrDiscipline)
}

// Option configures New.
type Option func(*config)

type config struct {
	discipline Discipline
	rng        *rand.Rand
	onStep     func(core.NodeID)
}

// WithDiscipline selects the stepping discipline (default Continuous).
func WithDiscipline(d Discipline) Option {
	return func(c *config) { c.discipline = d }
}

// WithSeed seeds the walk's own source; seed 0 maps to DefaultSeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = RNGFromSeed(seed) }
}

// WithRand hands the walk an existing source. The walk takes ownership.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("walk: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithOnStep registers a hook called with the new node after every step.
func WithOnStep(fn func(core.NodeID)) Option {
	return func(c *config) { c.onStep = fn }
}

// Walk is a walker on a graph it does not own.
type Walk struct {
	g          *core.Graph
	cur        core.NodeID
	clock      float64
	steps      uint64
	rng        *rand.Rand
	discipline Discipline
	onStep     func(core.NodeID)
}

// New places a walker on start at clock 0.
func New(g *core.Graph, start core.NodeID, opts ...Option) (*Walk, error) {
	if g == nil {
		return nil, fmt.Errorf("walk.New: %w", core.ErrNilGraph)
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("walk.New(%s): %w", start, ErrStartNotFound)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = RNGFromSeed(0)
	}

	return &Walk{
		g:          g,
		cur:        start,
		rng:        cfg.rng,
		discipline: cfg.discipline,
		onStep:     cfg.onStep,
	}, nil
}

// Step advances the walker once and returns its new node.
//
// Errors:
//   - ErrDeadEnd: continuous step from a node without neighbors.
func (w *Walk) Step() (core.NodeID, error) {
	nbrs, err := w.g.Neighbors(w.cur)
	if err != nil {
		return w.cur, fmt.Errorf("Walk.Step: %w", err)
	}

	if w.discipline == Discrete {
		w.stepDiscrete(nbrs)
	} else {
		if len(nbrs) == 0 {
			return w.cur, fmt.Errorf("Walk.Step(%s): %w", w.cur, ErrDeadEnd)
		}
		w.stepContinuous(nbrs)
	}
	w.steps++
	if w.onStep != nil {
		w.onStep(w.cur)
	}

	return w.cur, nil
}

// stepDiscrete chooses uniformly from nbrs ∪ {cur}.
func (w *Walk) stepDiscrete(nbrs []core.NodeID) {
	n := len(nbrs)
	self := true
	for _, nb := range nbrs {
		if nb == w.cur {
			self = false
			break
		}
	}
	if self {
		n++
	}
	if k := w.rng.Intn(n); k < len(nbrs) {
		w.cur = nbrs[k]
	}
	w.clock++
}

// stepContinuous races one Exp(1) clock per neighbor edge.
func (w *Walk) stepContinuous(nbrs []core.NodeID) {
	best := w.rng.ExpFloat64()
	next := nbrs[0]
	for _, nb := range nbrs[1:] {
		if t := w.rng.ExpFloat64(); t < best {
			best, next = t, nb
		}
	}
	w.cur = next
	w.clock += best
}

// RunForTime steps while the clock has not passed start+t and returns the
// node then occupied. The last step may overshoot start+t.
func (w *Walk) RunForTime(t float64) (core.NodeID, error) {
	end := w.clock + t
	for w.clock <= end {
		if _, err := w.Step(); err != nil {
			return w.cur, err
		}
	}

	return w.cur, nil
}

// RunSteps takes n steps and returns the final node.
func (w *Walk) RunSteps(n int) (core.NodeID, error) {
	for i := 0; i < n; i++ {
		if _, err := w.Step(); err != nil {
			return w.cur, err
		}
	}

	return w.cur, nil
}

// Current returns the node the walker occupies.
func (w *Walk) Current() core.NodeID { return w.cur }

// Clock returns the simulated time elapsed since New.
func (w *Walk) Clock() float64 { return w.clock }

// Steps returns the number of steps taken.
func (w *Walk) Steps() uint64 { return w.steps }

// Graph returns the graph being walked.
func (w *Walk) Graph() *core.Graph { return w.g }

// Discipline returns the stepping discipline.
func (w *Walk) Discipline() Discipline { return w.discipline }

// Rand returns the walk's source, for choices that must stay on the same stream.
func (w *Walk) Rand() *rand.Rand { return w.rng }

// RandomStart picks one of candidates uniformly with rng.
func RandomStart(candidates []core.NodeID, rng *rand.Rand) (core.NodeID, error) {
	if len(candidates) == 0 {
		return core.NoNode, ErrNoCandidates
	}
	if rng == nil {
		rng = RNGFromSeed(0)
	}

	return candidates[rng.Intn(len(candidates))], nil
}
