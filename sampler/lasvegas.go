// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/randomizer"
)

// LasVegas is the shared-network hourglass: a top half hanging from layer B
// and a bottom half hanging from layer 0 of one randomness network. The
// halves meet only inside the network.
type LasVegas struct {
	Graph   *core.Graph
	Network *randomizer.Network
	Top     *HalfHourglass
	Bottom  *HalfHourglass
}

// NewLasVegas builds the Las Vegas sampler. The output window defaults to
// LasVegasOutput(bits).
func NewLasVegas(bits int, rules *machine.Rules, initial string, opts ...Option) (*LasVegas, error) {
	arena := core.NewArena()
	net, err := randomizer.New(bits, randomizer.WithArena(arena))
	if err != nil {
		return nil, fmt.Errorf("NewLasVegas: %w", err)
	}
	opts = append([]Option{WithOutputLength(LasVegasOutput(bits))}, opts...)

	lv := &LasVegas{Graph: core.NewGraph(core.WithArena(arena)), Network: net}
	if lv.Top, err = NewHalf(net, rules, initial, Top, opts...); err != nil {
		return nil, fmt.Errorf("NewLasVegas: %w", err)
	}
	if lv.Bottom, err = NewHalf(net, rules, initial, Bottom, opts...); err != nil {
		return nil, fmt.Errorf("NewLasVegas: %w", err)
	}
	for _, half := range []*HalfHourglass{lv.Top, lv.Bottom} {
		if err = lv.Graph.Union(half.Graph); err != nil {
			return nil, fmt.Errorf("NewLasVegas: %w", err)
		}
	}

	return lv, nil
}

// Halved returns every node that carries a half, in graph order. Las Vegas
// walks start from one of them.
func (lv *LasVegas) Halved() []core.NodeID {
	var out []core.NodeID
	for _, id := range lv.Graph.Nodes() {
		n, err := lv.Graph.Node(id)
		if err != nil {
			continue
		}
		if _, ok := HalfOf(n.Data); ok {
			out = append(out, id)
		}
	}

	return out
}
