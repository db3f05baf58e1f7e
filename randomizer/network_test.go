package randomizer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/randomizer"
)

func TestNew_TwoBits(t *testing.T) {
	net, err := randomizer.New(2)
	require.NoError(t, err)

	top := net.Top()
	require.Len(t, top, 4)
	bits := make([]string, len(top))
	for i, e := range top {
		bits[i] = e.Bits
	}
	assert.Equal(t, []string{"00", "01", "10", "11"}, bits)

	n01, ok := net.Lookup(1, "01")
	require.True(t, ok)
	b01, _ := net.Lookup(0, "01")
	b11, _ := net.Lookup(0, "11")
	nbrs, err := net.Graph.Neighbors(n01)
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.NodeID{b01, b11}, belowLayer(t, net, nbrs, 0))

	// layer 2 flips the second character.
	n2, _ := net.Lookup(2, "01")
	c01, _ := net.Lookup(1, "01")
	c00, _ := net.Lookup(1, "00")
	nbrs, err = net.Graph.Neighbors(n2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.NodeID{c01, c00}, nbrs)
}

func TestNew_Shape(t *testing.T) {
	for bits := 0; bits <= 5; bits++ {
		t.Run(fmt.Sprintf("B=%d", bits), func(t *testing.T) {
			net, err := randomizer.New(bits)
			require.NoError(t, err)

			width := 1 << bits
			assert.Equal(t, bits+1, net.Depth())
			assert.Equal(t, (bits+1)*width, net.Graph.NodeCount())
			assert.Equal(t, 2*bits*width, net.Graph.EdgeCount())

			for l := 0; l <= bits; l++ {
				entries, err := net.Layer(l)
				require.NoError(t, err)
				require.Len(t, entries, width)
				for _, e := range entries {
					node, err := net.Graph.Node(e.Node)
					require.NoError(t, err)
					assert.Equal(t, core.KindRandomizer, node.Kind)
					assert.Equal(t, randomizer.Cell{Layer: l, Bits: e.Bits}, node.Data)
					if l == 0 {
						continue
					}
					nbrs, err := net.Graph.Neighbors(e.Node)
					require.NoError(t, err)
					assert.Len(t, belowLayer(t, net, nbrs, l-1), 2, "node %s of layer %d", e.Bits, l)
				}
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := randomizer.New(-1)
	assert.ErrorIs(t, err, randomizer.ErrBits)
	_, err = randomizer.New(randomizer.MaxBits + 1)
	assert.ErrorIs(t, err, randomizer.ErrBits)

	net, err := randomizer.New(1)
	require.NoError(t, err)
	_, err = net.Layer(2)
	assert.ErrorIs(t, err, randomizer.ErrLayer)
	_, ok := net.Lookup(0, "00")
	assert.False(t, ok)
	_, ok = net.Lookup(0, "x")
	assert.False(t, ok)
}

func TestNew_SharedArena(t *testing.T) {
	arena := core.NewArena()
	a, err := randomizer.New(1, randomizer.WithArena(arena))
	require.NoError(t, err)
	b, err := randomizer.New(1, randomizer.WithArena(arena))
	require.NoError(t, err)

	assert.Equal(t, 8, arena.Len())
	require.NoError(t, a.Graph.Union(b.Graph))
	assert.Equal(t, 8, a.Graph.NodeCount())
	assert.Panics(t, func() { randomizer.WithArena(nil) })
}

func TestBitString(t *testing.T) {
	assert.Equal(t, "0101", randomizer.BitString(5, 4))
	assert.Equal(t, "", randomizer.BitString(7, 0))
	assert.Equal(t, "11", randomizer.BitString(7, 2))
}

// belowLayer keeps the neighbors that sit in layer l.
func belowLayer(t *testing.T, net *randomizer.Network, nbrs []core.NodeID, l int) []core.NodeID {
	t.Helper()
	var out []core.NodeID
	for _, id := range nbrs {
		node, err := net.Graph.Node(id)
		require.NoError(t, err)
		if node.Data.(randomizer.Cell).Layer == l {
			out = append(out, id)
		}
	}

	return out
}
