// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/randomizer"
)

// BatteryHourglass is the abstract hourglass that does not run a machine.
// Each half is a binary merge tree of rand_gen nodes: layer i holds 2^i
// randomness values times 2^(B-i) batteries, and every node consumes two
// batteries of the layer below. Each of the 2^B top nodes carries a
// computation chain and a hold_output chain of compLength nodes each. The
// two halves are joined node-by-node along their core (layer 0) rows.
type BatteryHourglass struct {
	Graph *core.Graph

	core [2][]core.NodeID // core rows of the top and bottom halves
}

// NewBatteryHourglass builds the battery hourglass.
//
// Errors:
//   - randomizer.ErrBits: bits outside [0, randomizer.MaxBits].
//   - ErrCompLength: compLength < 0.
func NewBatteryHourglass(bits, compLength int) (*BatteryHourglass, error) {
	if bits < 0 || bits > randomizer.MaxBits {
		return nil, fmt.Errorf("NewBatteryHourglass(%d): %w", bits, randomizer.ErrBits)
	}
	if compLength < 0 {
		return nil, fmt.Errorf("NewBatteryHourglass: compLength=%d: %w", compLength, ErrCompLength)
	}

	bh := &BatteryHourglass{Graph: core.NewGraph()}
	for i, half := range []Half{Top, Bottom} {
		row, err := bh.addHalf(bits, compLength, half)
		if err != nil {
			return nil, fmt.Errorf("NewBatteryHourglass: %w", err)
		}
		bh.core[i] = row
	}
	for i := range bh.core[0] {
		if err := bh.Graph.AddEdge(bh.core[0][i], bh.core[1][i]); err != nil {
			return nil, fmt.Errorf("NewBatteryHourglass: %w", err)
		}
	}

	return bh, nil
}

// addHalf builds one merge tree with its chains and returns its core row.
func (bh *BatteryHourglass) addHalf(bits, compLength int, half Half) ([]core.NodeID, error) {
	g := bh.Graph
	width := 1 << bits

	coreRow := make([]core.NodeID, width)
	for b := 0; b < width; b++ {
		coreRow[b] = g.AddNode(core.KindRandGen, Battery{Half: half, Battery: b})
	}

	prev := coreRow
	for layer := 1; layer <= bits; layer++ {
		batteries := 1 << (bits - layer)
		row := make([]core.NodeID, 0, width)
		for r := 0; r < 1<<layer; r++ {
			for b := 0; b < batteries; b++ {
				id := g.AddNode(core.KindRandGen, Battery{Half: half, Layer: layer, Randomness: r, Battery: b})
				left := (r/2)*(2*batteries) + 2*b
				if err := g.AddEdge(id, prev[left]); err != nil {
					return nil, err
				}
				if err := g.AddEdge(id, prev[left+1]); err != nil {
					return nil, err
				}
				row = append(row, id)
			}
		}
		prev = row
	}

	for r, top := range prev {
		last := top
		for _, kind := range []core.Kind{core.KindComputation, core.KindHoldOutput} {
			for counter := 0; counter < compLength; counter++ {
				id := g.AddNode(kind, Hold{Half: half, Randomness: r, Counter: counter})
				if err := g.AddEdge(id, last); err != nil {
					return nil, err
				}
				last = id
			}
		}
	}

	return coreRow, nil
}

// Core returns the core row of the given half (Top or Bottom).
func (bh *BatteryHourglass) Core(half Half) ([]core.NodeID, error) {
	switch half {
	case Top:
		return append([]core.NodeID(nil), bh.core[0]...), nil
	case Bottom:
		return append([]core.NodeID(nil), bh.core[1]...), nil
	}
	return nil, fmt.Errorf("BatteryHourglass.Core(%q): %w", half, ErrHalf)
}
