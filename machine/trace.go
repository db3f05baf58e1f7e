// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
)

// DefaultTraceLimit bounds the number of forward steps Trace will take.
const DefaultTraceLimit = 1 << 20

// Configuration is the payload of a computation node: the tape snapshot,
// head position and state at one point of a run.
type Configuration struct {
	Tape  string
	Head  int
	State string
}

// String renders the configuration.
func (c Configuration) String() string {
	return fmt.Sprintf("{tape:%s head:%d state:%s}", c.Tape, c.Head, c.State)
}

// Trace is the path graph of one forward run.
type Trace struct {
	// Graph holds the configuration nodes connected in run order.
	Graph *core.Graph

	// First is the initial configuration, Last the halting one (kind output).
	First, Last core.NodeID

	// Path lists the nodes in run order; len(Path) == Steps+1.
	Path []core.NodeID

	// Steps is the number of forward transitions taken.
	Steps int
}

// TraceOption configures Trace.
type TraceOption func(*traceConfig)

type traceConfig struct {
	limit int
	arena *core.Arena
}

// WithTraceLimit caps the forward steps; n <= 0 panics.
func WithTraceLimit(n int) TraceOption {
	if n <= 0 {
		panic("machine: WithTraceLimit(n<=0)")
	}
	return func(c *traceConfig) { c.limit = n }
}

// WithTraceArena allocates trace nodes in arena so the trace can later be
// merged into a model graph with Union. Panics on nil.
func WithTraceArena(arena *core.Arena) TraceOption {
	if arena == nil {
		panic("machine: WithTraceArena(nil)")
	}
	return func(c *traceConfig) { c.arena = arena }
}

// Trace runs the machine forward from its current configuration until it
// halts, recording one computation node per configuration connected in
// sequence. The halting configuration is tagged core.KindOutput. The machine
// is left in its halted configuration.
//
// A machine that halts immediately yields a one-node trace (First == Last).
//
// Errors:
//   - ErrNilRules: the machine has no rules.
//   - ErrStepLimit: the run did not halt within the limit.
func (m *Machine) Trace(opts ...TraceOption) (*Trace, error) {
	if m.rules == nil {
		return nil, ErrNilRules
	}
	cfg := traceConfig{limit: DefaultTraceLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	var g *core.Graph
	if cfg.arena != nil {
		g = core.NewGraph(core.WithArena(cfg.arena))
	} else {
		g = core.NewGraph()
	}

	first := g.AddNode(core.KindComputation, m.Snapshot())
	tr := &Trace{Graph: g, First: first, Last: first, Path: []core.NodeID{first}}
	for !m.Forward() {
		if tr.Steps == cfg.limit {
			return nil, fmt.Errorf("Trace: state %q after %d steps: %w", m.state, tr.Steps, ErrStepLimit)
		}
		next := g.AddNode(core.KindComputation, m.Snapshot())
		if err := g.AddEdge(tr.Last, next); err != nil {
			return nil, fmt.Errorf("Trace: %w", err)
		}
		tr.Last = next
		tr.Path = append(tr.Path, next)
		tr.Steps++
	}

	last, err := g.Node(tr.Last)
	if err != nil {
		return nil, fmt.Errorf("Trace: %w", err)
	}
	if err = g.SetPayload(tr.Last, core.KindOutput, last.Data); err != nil {
		return nil, fmt.Errorf("Trace: %w", err)
	}

	return tr, nil
}
