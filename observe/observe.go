// SPDX-License-Identifier: MIT

// Package observe wraps a random walk on a sampler model with the rule that
// decides whether the walker currently sits on a fresh sample.
//
//   - LasVegas: ready when the walker is on an output node of the half
//     opposite to the last accepted one. A sample is accepted only after
//     the walker has crossed the shared network, so it is independent of
//     the previous one.
//   - MonteCarlo: each side of the product carries a reset flag set whenever
//     that side enters network layer 0. Observing reports the flag of the
//     side that is outputting and clears it.
package observe

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/randomizer"
	"github.com/katalvlaran/hourglass/sampler"
	"github.com/katalvlaran/hourglass/walk"
)

var (
	// ErrInvalidProductState indicates a Monte Carlo node with both or
	// neither side in its output region.
	ErrInvalidProductState = errors.New("observe: product node has both or neither side outputting")

	// ErrNotProduct indicates a Monte Carlo walk on a node without a Product payload.
	ErrNotProduct = errors.New("observe: node is not a product node")

	// ErrNilModel indicates a nil sampler model.
	ErrNilModel = errors.New("observe: model is nil")
)

// Observer is a walk plus a freshness rule.
type Observer interface {
	// Walk returns the underlying walk; advance it, then call Observe.
	Walk() *walk.Walk

	// Observe reports whether the current node is a fresh sample.
	Observe() (ready bool, at core.NodeID, err error)
}

// Option configures an observer's walk.
type Option func(*config)

type config struct {
	rng        *rand.Rand
	discipline walk.Discipline
	start      core.NodeID
}

// WithSeed seeds the walk; seed 0 maps to walk.DefaultSeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = walk.RNGFromSeed(seed) }
}

// WithRand hands the observer an existing source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("observe: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithDiscipline selects the walk discipline (default continuous).
func WithDiscipline(d walk.Discipline) Option {
	return func(c *config) { c.discipline = d }
}

// WithStart fixes the start node instead of drawing it at random.
func WithStart(id core.NodeID) Option {
	return func(c *config) { c.start = id }
}

func newConfig(opts []Option) config {
	cfg := config{start: core.NoNode}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = walk.RNGFromSeed(0)
	}

	return cfg
}

// pickStart returns cfg.start or a uniform draw from candidates.
func (cfg config) pickStart(candidates []core.NodeID) (core.NodeID, error) {
	if cfg.start != core.NoNode {
		return cfg.start, nil
	}
	return walk.RandomStart(candidates, cfg.rng)
}

// LasVegas is the half-alternation protocol.
type LasVegas struct {
	w     *walk.Walk
	model *sampler.LasVegas
	half  sampler.Half
}

// NewLasVegas starts a walk on a node that carries a half (uniformly chosen
// unless WithStart is given) and remembers that half.
func NewLasVegas(model *sampler.LasVegas, opts ...Option) (*LasVegas, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	cfg := newConfig(opts)
	start, err := cfg.pickStart(model.Halved())
	if err != nil {
		return nil, fmt.Errorf("observe.NewLasVegas: %w", err)
	}
	n, err := model.Graph.Node(start)
	if err != nil {
		return nil, fmt.Errorf("observe.NewLasVegas: %w", err)
	}
	half, _ := sampler.HalfOf(n.Data)

	w, err := walk.New(model.Graph, start, walk.WithRand(cfg.rng), walk.WithDiscipline(cfg.discipline))
	if err != nil {
		return nil, fmt.Errorf("observe.NewLasVegas: %w", err)
	}

	return &LasVegas{w: w, model: model, half: half}, nil
}

// Walk returns the underlying walk.
func (o *LasVegas) Walk() *walk.Walk { return o.w }

// Half returns the half of the last accepted sample (initially the start's).
func (o *LasVegas) Half() sampler.Half { return o.half }

// Observe is ready when the walker is on an output node whose half differs
// from the stored one; the stored half then flips.
func (o *LasVegas) Observe() (bool, core.NodeID, error) {
	at := o.w.Current()
	n, err := o.model.Graph.Node(at)
	if err != nil {
		return false, at, fmt.Errorf("LasVegas.Observe: %w", err)
	}
	if n.Kind != core.KindOutput {
		return false, at, nil
	}
	half, ok := sampler.HalfOf(n.Data)
	if !ok || half == o.half {
		return false, at, nil
	}
	o.half = half

	return true, at, nil
}

// MonteCarlo is the reset-flag protocol.
type MonteCarlo struct {
	w           *walk.Walk
	model       *sampler.MonteCarlo
	topReset    bool
	bottomReset bool
	hookErr     error
}

// NewMonteCarlo starts a walk on a uniformly chosen product node (unless
// WithStart is given) with both reset flags set.
func NewMonteCarlo(model *sampler.MonteCarlo, opts ...Option) (*MonteCarlo, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	cfg := newConfig(opts)
	start, err := cfg.pickStart(model.Graph.Nodes())
	if err != nil {
		return nil, fmt.Errorf("observe.NewMonteCarlo: %w", err)
	}

	o := &MonteCarlo{model: model, topReset: true, bottomReset: true}
	o.w, err = walk.New(model.Graph, start,
		walk.WithRand(cfg.rng),
		walk.WithDiscipline(cfg.discipline),
		walk.WithOnStep(o.track),
	)
	if err != nil {
		return nil, fmt.Errorf("observe.NewMonteCarlo: %w", err)
	}

	return o, nil
}

// track sets the reset flag of each side that just entered network layer 0.
func (o *MonteCarlo) track(id core.NodeID) {
	p, err := o.product(id)
	if err != nil {
		o.hookErr = err
		return
	}
	if atNetworkBottom(p.Top) {
		o.topReset = true
	}
	if atNetworkBottom(p.Bottom) {
		o.bottomReset = true
	}
}

// Walk returns the underlying walk.
func (o *MonteCarlo) Walk() *walk.Walk { return o.w }

// Resets returns the top and bottom reset flags.
func (o *MonteCarlo) Resets() (top, bottom bool) { return o.topReset, o.bottomReset }

// Observe reports the reset flag of the outputting side and clears it.
//
// Errors:
//   - ErrNotProduct: the walk reached a node without a Product payload.
//   - ErrInvalidProductState: both or neither side is outputting.
func (o *MonteCarlo) Observe() (bool, core.NodeID, error) {
	at := o.w.Current()
	if o.hookErr != nil {
		return false, at, fmt.Errorf("MonteCarlo.Observe: %w", o.hookErr)
	}
	p, err := o.product(at)
	if err != nil {
		return false, at, fmt.Errorf("MonteCarlo.Observe: %w", err)
	}
	half, _, err := OutputtingHalfOf(p)
	if err != nil {
		return false, at, fmt.Errorf("MonteCarlo.Observe(%s): %w", at, err)
	}

	var ready bool
	if half == sampler.Top {
		ready, o.topReset = o.topReset, false
	} else {
		ready, o.bottomReset = o.bottomReset, false
	}

	return ready, at, nil
}

func (o *MonteCarlo) product(id core.NodeID) (sampler.Product, error) {
	n, err := o.model.Graph.Node(id)
	if err != nil {
		return sampler.Product{}, err
	}
	p, ok := n.Data.(sampler.Product)
	if !ok {
		return sampler.Product{}, fmt.Errorf("%s: %w", id, ErrNotProduct)
	}

	return p, nil
}

// OutputtingHalfOf returns the side of p whose component is an output node
// while the other is still a randomizer or computation node, together with
// that component.
//
// Errors:
//   - ErrInvalidProductState: both sides output, or neither does.
func OutputtingHalfOf(p sampler.Product) (sampler.Half, core.Node, error) {
	topOut := p.Top.Kind == core.KindOutput
	bottomOut := p.Bottom.Kind == core.KindOutput
	switch {
	case topOut && !bottomOut && working(p.Bottom.Kind):
		return sampler.Top, p.Top, nil
	case bottomOut && !topOut && working(p.Top.Kind):
		return sampler.Bottom, p.Bottom, nil
	}

	return sampler.NoHalf, core.Node{}, fmt.Errorf("top %s, bottom %s: %w", p.Top.Kind, p.Bottom.Kind, ErrInvalidProductState)
}

func working(k core.Kind) bool {
	return k == core.KindRandomizer || k == core.KindComputation
}

func atNetworkBottom(n core.Node) bool {
	c, ok := n.Data.(randomizer.Cell)
	return ok && n.Kind == core.KindRandomizer && c.Layer == 0
}
