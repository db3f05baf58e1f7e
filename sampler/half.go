// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/randomizer"
)

// HalfHourglass is one side of an hourglass: a randomness network plus, for
// every string of its outer layer, two stitched computation tracks seeded
// with that string and extended by an output window.
type HalfHourglass struct {
	// Graph shares its arena with the network it was built on.
	Graph *core.Graph

	half   Half
	net    *randomizer.Network
	outer  int             // network layer the tracks hang from
	layers [][]core.NodeID // network layers (outer last), then track depths
}

// NewHalf builds a half over net. The network is absorbed with Union, so net
// may be shared with another half (Las Vegas) or owned alone (Monte Carlo).
//
// Implementation:
//   - Stage 1: Validate half (ErrHalf) and rules (machine.ErrNilRules); the
//     output policy defaults to LasVegasOutput(net.Bits()).
//   - Stage 2: Absorb the network and order its layers so the outer layer
//     (B for Top/NoHalf, 0 for Bottom) comes last.
//   - Stage 3: For each outer string s and track 0, 1: trace the machine on
//     tape s, absorb the trace, re-tag its nodes, append the output window
//     and join the track start to the node of s.
//   - Stage 4: Stitch track-1 node i to track-0 nodes i-1 and i+1.
//
// Both tracks of a string replay the same deterministic run, so they have
// the same depth; a mismatch is reported as ErrTrackMismatch.
func NewHalf(net *randomizer.Network, rules *machine.Rules, initial string, half Half, opts ...Option) (*HalfHourglass, error) {
	if net == nil {
		return nil, fmt.Errorf("NewHalf: %w", core.ErrNilGraph)
	}
	if rules == nil {
		return nil, fmt.Errorf("NewHalf: %w", machine.ErrNilRules)
	}
	if !half.valid() {
		return nil, fmt.Errorf("NewHalf(%q): %w", half, ErrHalf)
	}
	cfg := newConfig(opts)
	if cfg.output == nil {
		cfg.output = LasVegasOutput(net.Bits())
	}

	h := &HalfHourglass{
		Graph: core.NewGraph(core.WithArena(net.Graph.Arena())),
		half:  half,
		net:   net,
		outer: net.Bits(),
	}
	if err := h.Graph.Union(net.Graph); err != nil {
		return nil, fmt.Errorf("NewHalf: %w", err)
	}
	for l := 0; l < net.Depth(); l++ {
		row, _ := net.LayerNodes(l)
		h.layers = append(h.layers, row)
	}
	if half == Bottom {
		h.outer = 0
		reverseLayers(h.layers)
	}

	entries, _ := net.Layer(h.outer)
	for _, e := range entries {
		var tracks [2][]core.NodeID
		for track := range tracks {
			path, err := h.addTrack(rules, initial, e, track, cfg)
			if err != nil {
				return nil, fmt.Errorf("NewHalf(%s): string %q track %d: %w", half, e.Bits, track, err)
			}
			tracks[track] = path
		}
		if len(tracks[0]) != len(tracks[1]) {
			return nil, fmt.Errorf("NewHalf(%s): string %q: %w", half, e.Bits, ErrTrackMismatch)
		}
		if cfg.stitch {
			if err := h.stitch(tracks[0], tracks[1]); err != nil {
				return nil, fmt.Errorf("NewHalf(%s): %w", half, err)
			}
		}
	}

	return h, nil
}

// addTrack builds one track for outer entry e and returns its nodes in depth order.
func (h *HalfHourglass) addTrack(rules *machine.Rules, initial string, e randomizer.Entry, track int, cfg config) ([]core.NodeID, error) {
	tr, err := machine.FromBits(rules, e.Bits, initial).Trace(
		machine.WithTraceArena(h.Graph.Arena()),
		machine.WithTraceLimit(cfg.traceLimit),
	)
	if err != nil {
		return nil, err
	}
	window := cfg.output(tr.Steps)
	if window < 1 {
		return nil, fmt.Errorf("window=%d for %d steps: %w", window, tr.Steps, ErrOutputLength)
	}
	if err = h.Graph.Union(tr.Graph); err != nil {
		return nil, err
	}

	path := make([]core.NodeID, 0, len(tr.Path)+window-1)
	var final machine.Configuration
	for depth, id := range tr.Path {
		node, err := h.Graph.Node(id)
		if err != nil {
			return nil, err
		}
		step := Step{
			Config:     node.Data.(machine.Configuration),
			Half:       h.half,
			Randomness: e.Bits,
			Track:      track,
			Depth:      depth,
		}
		if id == tr.Last {
			err = h.Graph.SetPayload(id, core.KindOutput, Output{Step: step})
			final = step.Config
		} else {
			err = h.Graph.SetPayload(id, core.KindComputation, step)
		}
		if err != nil {
			return nil, err
		}
		path = append(path, id)
	}

	prev := tr.Last
	for counter := 1; counter < window; counter++ {
		id := h.Graph.AddNode(core.KindOutput, Output{
			Step: Step{
				Config:     final,
				Half:       h.half,
				Randomness: e.Bits,
				Track:      track,
				Depth:      tr.Steps + counter,
			},
			Counter: counter,
		})
		if err = h.Graph.AddEdge(prev, id); err != nil {
			return nil, err
		}
		path = append(path, id)
		prev = id
	}

	if err = h.Graph.AddEdge(e.Node, tr.First); err != nil {
		return nil, err
	}
	for depth, id := range path {
		row := h.depthRow(depth)
		h.layers[row] = append(h.layers[row], id)
	}

	return path, nil
}

// stitch joins track-1 node i to track-0 nodes i-1 and i+1.
func (h *HalfHourglass) stitch(zero, one []core.NodeID) error {
	for i, id := range one {
		if i > 0 {
			if err := h.Graph.AddEdge(id, zero[i-1]); err != nil {
				return err
			}
		}
		if i < len(zero)-1 {
			if err := h.Graph.AddEdge(id, zero[i+1]); err != nil {
				return err
			}
		}
	}

	return nil
}

// depthRow returns the layer index of track depth d, growing the list as needed.
func (h *HalfHourglass) depthRow(d int) int {
	row := h.net.Depth() + d
	for len(h.layers) <= row {
		h.layers = append(h.layers, nil)
	}

	return row
}

// Half returns the side this half was built for.
func (h *HalfHourglass) Half() Half { return h.half }

// Network returns the randomness network the half hangs from.
func (h *HalfHourglass) Network() *randomizer.Network { return h.net }

// OuterLayer returns the network layer the tracks are attached to.
func (h *HalfHourglass) OuterLayer() int { return h.outer }

// Layers returns the network layers ordered toward the outer layer, followed
// by one row per track depth. Rows are copies.
func (h *HalfHourglass) Layers() [][]core.NodeID {
	out := make([][]core.NodeID, len(h.layers))
	for i, row := range h.layers {
		out[i] = append([]core.NodeID(nil), row...)
	}

	return out
}

func reverseLayers(layers [][]core.NodeID) {
	for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
		layers[i], layers[j] = layers[j], layers[i]
	}
}
