package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/matrix"
)

func fill(t *testing.T, rows, cols int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(rows, cols)
	require.NoError(t, err)
	for k, v := range vals {
		require.NoError(t, m.Set(k/cols, k%cols, v))
	}

	return m
}

func TestDense_Bounds(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	m := fill(t, 2, 2, 1, 2, 3, 4)
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row)
	_, err = m.Row(5)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestNewDiag(t *testing.T) {
	d, err := matrix.NewDiag([]float64{2, 3})
	require.NoError(t, err)
	ok, err := matrix.AllClose(d, fill(t, 2, 2, 2, 0, 0, 3), 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = matrix.NewDiag(nil)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.NewDiag([]float64{math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMul(t *testing.T) {
	a := fill(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := fill(t, 3, 2, 7, 8, 9, 10, 11, 12)
	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	want := fill(t, 2, 2, 58, 64, 139, 154)
	ok, err := matrix.AllClose(got, want, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok, got)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	id, err := matrix.NewDiag([]float64{1, 1, 1})
	require.NoError(t, err)
	same, err := matrix.Mul(a, id)
	require.NoError(t, err)
	ok, _ = matrix.AllClose(same, a, 0, 0)
	assert.True(t, ok)
}

func TestVecMul(t *testing.T) {
	m := fill(t, 2, 3, 1, 2, 3, 4, 5, 6)
	out, err := matrix.VecMul([]float64{1, 2}, m)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 12, 15}, out)

	_, err = matrix.VecMul([]float64{1}, m)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeAndRowSums(t *testing.T) {
	m := fill(t, 2, 3, 1, 2, 3, 4, 5, 6)
	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Rows())
	v, _ := tr.At(2, 1)
	assert.Equal(t, 6.0, v)

	sums, err := matrix.RowSums(tr)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sums)
}

func TestAllClose(t *testing.T) {
	a := fill(t, 1, 2, 1, 2)
	b := fill(t, 1, 2, 1, 2.001)
	ok, err := matrix.AllClose(a, b, 0, 1e-2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = matrix.AllClose(a, b, 0, -1e-6)
	assert.False(t, ok)
	_, err = matrix.AllClose(a, fill(t, 2, 1), 0, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAdjacency(t *testing.T) {
	_, _, err := matrix.Adjacency(nil)
	assert.ErrorIs(t, err, matrix.ErrGraphNil)
	_, _, err = matrix.Adjacency(core.NewGraph())
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	g := core.NewGraph(core.WithLoops())
	a := g.AddNode(core.KindComputation, nil)
	b := g.AddNode(core.KindComputation, nil)
	c := g.AddNode(core.KindComputation, nil)
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(b, c))
	require.NoError(t, g.AddEdge(c, c))

	adj, idx, err := matrix.Adjacency(g)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())
	assert.Equal(t, []core.NodeID{a, b, c}, idx.IDs())

	want := fill(t, 3, 3,
		0, 1, 0,
		1, 0, 1,
		0, 1, 1)
	ok, _ := matrix.AllClose(adj, want, 0, 0)
	assert.True(t, ok, adj)

	r, err := idx.Row(c)
	require.NoError(t, err)
	assert.Equal(t, 2, r)
	_, err = idx.Row(core.NoNode)
	assert.ErrorIs(t, err, matrix.ErrUnknownNode)
}
