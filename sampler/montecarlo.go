// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/randomizer"
)

// MonteCarlo is the layer-wise product of two independent halves. Product
// layer i pairs layer i of the top half with layer i of the bottom half
// counted from its far end, so the top climbs out of its network while the
// bottom descends into its own.
type MonteCarlo struct {
	// Graph holds only product nodes; it lives on its own arena.
	Graph *core.Graph

	TopHalf, BottomHalf *HalfHourglass

	layers [][]core.NodeID
}

type pair struct{ top, bottom core.NodeID }

// NewMonteCarlo builds the Monte Carlo sampler. The output window defaults
// to MonteCarloOutput(bits).
//
// Every product with an output component has exactly one outputting side only
// when the machine halts after the same number of steps on every string. With
// uneven traces some products pair two outputs; observing one of them fails
// with observe.ErrInvalidProductState and aborts the run.
//
// Implementation:
//   - Stage 1: Build two halves, each on a fresh network and arena, without a
//     half label.
//   - Stage 2: For every layer i and every (t, b) in top[i] × reversed-bottom[i]
//     add a product node of kind ProductKind(kind t, kind b).
//   - Stage 3: For i >= 1, join (t, b) to every (t', b') of layer i-1 with t'
//     adjacent to t and b' adjacent to b.
//
// Complexity: Time O(Σ_i |top_i|·|bottom_i|·d²), d the half degree.
func NewMonteCarlo(bits int, rules *machine.Rules, initial string, opts ...Option) (*MonteCarlo, error) {
	opts = append([]Option{WithOutputLength(MonteCarloOutput(bits))}, opts...)

	mc := &MonteCarlo{Graph: core.NewGraph()}
	var err error
	if mc.TopHalf, err = newIsolatedHalf(bits, rules, initial, opts); err != nil {
		return nil, fmt.Errorf("NewMonteCarlo: top: %w", err)
	}
	if mc.BottomHalf, err = newIsolatedHalf(bits, rules, initial, opts); err != nil {
		return nil, fmt.Errorf("NewMonteCarlo: bottom: %w", err)
	}

	top := mc.TopHalf.Layers()
	bottom := mc.BottomHalf.Layers()
	if len(top) != len(bottom) {
		return nil, fmt.Errorf("NewMonteCarlo: %d vs %d layers: %w", len(top), len(bottom), ErrTrackMismatch)
	}
	reverseLayers(bottom)

	var prev map[pair]core.NodeID
	for i := range top {
		cur := make(map[pair]core.NodeID, len(top[i])*len(bottom[i]))
		row := make([]core.NodeID, 0, len(top[i])*len(bottom[i]))
		for _, t := range top[i] {
			tn, err := mc.TopHalf.Graph.Node(t)
			if err != nil {
				return nil, fmt.Errorf("NewMonteCarlo: %w", err)
			}
			for _, b := range bottom[i] {
				bn, err := mc.BottomHalf.Graph.Node(b)
				if err != nil {
					return nil, fmt.Errorf("NewMonteCarlo: %w", err)
				}
				id := mc.Graph.AddNode(core.ProductKind(tn.Kind, bn.Kind), Product{Layer: i, Top: tn, Bottom: bn})
				cur[pair{t, b}] = id
				row = append(row, id)
				if i == 0 {
					continue
				}
				if err = mc.linkBelow(prev, id, t, b); err != nil {
					return nil, fmt.Errorf("NewMonteCarlo: %w", err)
				}
			}
		}
		mc.layers = append(mc.layers, row)
		prev = cur
	}

	return mc, nil
}

// linkBelow joins product node id = (t, b) to the previous-layer products
// whose components neighbor t and b.
func (mc *MonteCarlo) linkBelow(prev map[pair]core.NodeID, id, t, b core.NodeID) error {
	tn, err := mc.TopHalf.Graph.Neighbors(t)
	if err != nil {
		return err
	}
	bn, err := mc.BottomHalf.Graph.Neighbors(b)
	if err != nil {
		return err
	}
	for _, tt := range tn {
		for _, bb := range bn {
			below, ok := prev[pair{tt, bb}]
			if !ok || mc.Graph.HasEdge(below, id) {
				continue
			}
			if err = mc.Graph.AddEdge(below, id); err != nil {
				return err
			}
		}
	}

	return nil
}

func newIsolatedHalf(bits int, rules *machine.Rules, initial string, opts []Option) (*HalfHourglass, error) {
	net, err := randomizer.New(bits, randomizer.WithArena(core.NewArena()))
	if err != nil {
		return nil, err
	}

	return NewHalf(net, rules, initial, NoHalf, opts...)
}

// Layers returns the product layers. Rows are copies.
func (mc *MonteCarlo) Layers() [][]core.NodeID {
	out := make([][]core.NodeID, len(mc.layers))
	for i, row := range mc.layers {
		out[i] = append([]core.NodeID(nil), row...)
	}

	return out
}
