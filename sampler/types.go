// SPDX-License-Identifier: MIT

package sampler

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/machine"
)

// Sentinel errors for model construction.
var (
	// ErrHalf indicates a half other than Top, Bottom or NoHalf.
	ErrHalf = errors.New("sampler: unknown half")

	// ErrOutputLength indicates an output-length policy returned less than 1.
	ErrOutputLength = errors.New("sampler: output window must hold at least one node")

	// ErrTrackMismatch indicates two tracks or halves that should mirror each
	// other ended up with different shapes.
	ErrTrackMismatch = errors.New("sampler: mirrored structures differ")

	// ErrCompLength indicates a negative battery computation length.
	ErrCompLength = errors.New("sampler: computation length must be non-negative")
)

// Half names the side of an hourglass a node belongs to.
type Half string

// Halves. NoHalf is used by Monte Carlo halves, which are told apart by
// their position in the product instead.
const (
	Top    Half = "top"
	Bottom Half = "bottom"
	NoHalf Half = ""
)

// Opposite returns the other half; NoHalf maps to itself.
func (h Half) Opposite() Half {
	switch h {
	case Top:
		return Bottom
	case Bottom:
		return Top
	}
	return NoHalf
}

func (h Half) valid() bool { return h == Top || h == Bottom || h == NoHalf }

// Step is the payload of a computation node inside a model.
type Step struct {
	Config     machine.Configuration
	Half       Half
	Randomness string // random string the track was seeded with
	Track      int    // 0 or 1
	Depth      int    // distance from the track start
}

// String renders the step.
func (s Step) String() string {
	return fmt.Sprintf("{half:%s rand:%s track:%d depth:%d %s}", s.Half, s.Randomness, s.Track, s.Depth, s.Config)
}

// Output is the payload of an output node: the halting configuration,
// repeated along the output window. Counter is 0 on the halting node.
type Output struct {
	Step
	Counter int
}

// String renders the output.
func (o Output) String() string {
	return fmt.Sprintf("{counter:%d %s}", o.Counter, o.Step)
}

// Battery is the payload of a rand_gen node of a battery hourglass.
type Battery struct {
	Half       Half
	Layer      int
	Randomness int // bits decided so far
	Battery    int // merge inputs not yet consumed
}

// String renders the battery cell.
func (b Battery) String() string {
	return fmt.Sprintf("{half:%s layer:%d randomness:%d battery:%d}", b.Half, b.Layer, b.Randomness, b.Battery)
}

// Hold is the payload of the computation and hold_output chains of a
// battery hourglass.
type Hold struct {
	Half       Half
	Randomness int
	Counter    int
}

// String renders the hold cell.
func (h Hold) String() string {
	return fmt.Sprintf("{half:%s randomness:%d counter:%d}", h.Half, h.Randomness, h.Counter)
}

// Product is the payload of a Monte Carlo node: the pair of half-nodes it
// stands for, with their records as of construction.
type Product struct {
	Layer       int
	Top, Bottom core.Node
}

// String renders the product.
func (p Product) String() string {
	return fmt.Sprintf("{layer:%d top:%s bottom:%s}", p.Layer, p.Top, p.Bottom)
}

// HalfOf returns the half recorded in a model payload.
func HalfOf(data core.Payload) (Half, bool) {
	switch d := data.(type) {
	case Step:
		return d.Half, true
	case Output:
		return d.Half, true
	case Battery:
		return d.Half, true
	case Hold:
		return d.Half, true
	}
	return NoHalf, false
}

// OutputLength maps the number of steps of a trace to the length of its
// output window, the halting node included.
type OutputLength func(steps int) int

// LasVegasOutput returns steps -> 2·steps + bits + 1.
func LasVegasOutput(bits int) OutputLength {
	return func(steps int) int { return 2*steps + bits + 1 }
}

// MonteCarloOutput returns steps -> steps + bits + 1. With this window, and
// traces of one common length, the two halves of a Monte Carlo product never
// sit in their output regions together.
func MonteCarloOutput(bits int) OutputLength {
	return func(steps int) int { return steps + bits + 1 }
}

// Option configures model construction.
type Option func(*config)

type config struct {
	output     OutputLength
	traceLimit int
	stitch     bool
}

func newConfig(opts []Option) config {
	cfg := config{traceLimit: machine.DefaultTraceLimit, stitch: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithOutputLength overrides the model's output-window policy. Panics on nil.
func WithOutputLength(f OutputLength) Option {
	if f == nil {
		panic("sampler: WithOutputLength(nil)")
	}
	return func(c *config) { c.output = f }
}

// WithTraceLimit caps every trace at n forward steps; n <= 0 panics.
func WithTraceLimit(n int) Option {
	if n <= 0 {
		panic("sampler: WithTraceLimit(n<=0)")
	}
	return func(c *config) { c.traceLimit = n }
}

// WithoutStitching leaves the two tracks of each random string unlinked.
func WithoutStitching() Option {
	return func(c *config) { c.stitch = false }
}
