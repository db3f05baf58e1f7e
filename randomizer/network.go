// SPDX-License-Identifier: MIT

package randomizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/hourglass/core"
)

// MaxBits bounds the network width; 2^MaxBits nodes per layer is already
// far beyond what a random walk can mix.
const MaxBits = 20

var (
	// ErrBits indicates a bit count outside [0, MaxBits].
	ErrBits = errors.New("randomizer: random bits out of range")

	// ErrLayer indicates a layer index outside [0, B].
	ErrLayer = errors.New("randomizer: layer out of range")
)

// Cell is the payload of a network node.
type Cell struct {
	Layer int
	Bits  string
}

// String renders the cell.
func (c Cell) String() string {
	return fmt.Sprintf("{layer:%d bits:%s}", c.Layer, c.Bits)
}

// Entry pairs a bit string with its node in one layer.
type Entry struct {
	Bits string
	Node core.NodeID
}

// Option configures New.
type Option func(*config)

type config struct {
	arena *core.Arena
}

// WithArena allocates the network nodes in arena. Panics on nil.
func WithArena(arena *core.Arena) Option {
	if arena == nil {
		panic("randomizer: WithArena(nil)")
	}
	return func(c *config) { c.arena = arena }
}

// Network is the layered bit-flip graph.
type Network struct {
	// Graph holds every network node, all of kind core.KindRandomizer.
	Graph *core.Graph

	bits   int
	layers [][]core.NodeID // layers[L][v]: node of string with integer value v
}

// New builds the network for the given number of random bits.
//
// Implementation:
//   - Stage 1: Validate bits (ErrBits).
//   - Stage 2: Allocate layer 0, one node per string in increasing value.
//   - Stage 3: For L = 1..B allocate the layer and join each node to the
//     same string and to the string with character L-1 flipped below it.
func New(bits int, opts ...Option) (*Network, error) {
	if bits < 0 || bits > MaxBits {
		return nil, fmt.Errorf("randomizer.New(%d): %w", bits, ErrBits)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	g := core.NewGraph()
	if cfg.arena != nil {
		g = core.NewGraph(core.WithArena(cfg.arena))
	}

	width := 1 << bits
	n := &Network{Graph: g, bits: bits, layers: make([][]core.NodeID, bits+1)}
	for layer := 0; layer <= bits; layer++ {
		row := make([]core.NodeID, width)
		for v := 0; v < width; v++ {
			row[v] = g.AddNode(core.KindRandomizer, Cell{Layer: layer, Bits: BitString(uint64(v), bits)})
		}
		n.layers[layer] = row
		if layer == 0 {
			continue
		}

		below := n.layers[layer-1]
		mask := 1 << (bits - layer)
		for v, id := range row {
			if err := g.AddEdge(id, below[v]); err != nil {
				return nil, fmt.Errorf("randomizer.New: %w", err)
			}
			if err := g.AddEdge(id, below[v^mask]); err != nil {
				return nil, fmt.Errorf("randomizer.New: %w", err)
			}
		}
	}

	return n, nil
}

// Bits returns B.
func (n *Network) Bits() int { return n.bits }

// Depth returns the number of layers, B+1.
func (n *Network) Depth() int { return len(n.layers) }

// Layer returns the entries of layer l ordered by string value.
func (n *Network) Layer(l int) ([]Entry, error) {
	if l < 0 || l >= len(n.layers) {
		return nil, fmt.Errorf("Network.Layer(%d): %w", l, ErrLayer)
	}
	out := make([]Entry, len(n.layers[l]))
	for v, id := range n.layers[l] {
		out[v] = Entry{Bits: BitString(uint64(v), n.bits), Node: id}
	}

	return out, nil
}

// LayerNodes returns the node handles of layer l ordered by string value.
// The slice is a copy.
func (n *Network) LayerNodes(l int) ([]core.NodeID, error) {
	if l < 0 || l >= len(n.layers) {
		return nil, fmt.Errorf("Network.LayerNodes(%d): %w", l, ErrLayer)
	}
	out := make([]core.NodeID, len(n.layers[l]))
	copy(out, n.layers[l])

	return out, nil
}

// Bottom returns layer 0.
func (n *Network) Bottom() []Entry {
	e, _ := n.Layer(0)
	return e
}

// Top returns layer B.
func (n *Network) Top() []Entry {
	e, _ := n.Layer(n.bits)
	return e
}

// Lookup returns the node of bits in layer l.
func (n *Network) Lookup(l int, bits string) (core.NodeID, bool) {
	if l < 0 || l >= len(n.layers) || len(bits) != n.bits {
		return core.NoNode, false
	}
	if n.bits == 0 {
		return n.layers[l][0], true
	}
	v, err := strconv.ParseUint(bits, 2, 64)
	if err != nil {
		return core.NoNode, false
	}

	return n.layers[l][v], true
}

// BitString renders the low width bits of v most significant first.
func BitString(v uint64, width int) string {
	var b strings.Builder
	b.Grow(width)
	for k := width - 1; k >= 0; k-- {
		if v>>uint(k)&1 == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}
