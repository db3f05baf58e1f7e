package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/dfs"
	"github.com/katalvlaran/hourglass/machine"
)

// flipper inverts every bit while sweeping right, halting on the first blank:
//
//	a, 0 -> 1, b
//	a, 1 -> 0, b
//	b -> R, a
func flipper(t *testing.T) *machine.Rules {
	t.Helper()
	r := machine.NewRules()
	require.NoError(t, r.AddReadWrite("a", "0", "1", "b"))
	require.NoError(t, r.AddReadWrite("a", "1", "0", "b"))
	require.NoError(t, r.AddMove("b", machine.Right, "a"))

	return r
}

func TestRules_ReverseTableIsInverse(t *testing.T) {
	r := flipper(t)

	rev, ok := r.Reverse("b")
	require.True(t, ok)
	require.Equal(t, machine.ReadWriteKind, rev.Kind())
	act, ok := rev.Action("1")
	require.True(t, ok)
	assert.Equal(t, machine.Action{Write: "0", Next: "a"}, act)

	back, ok := r.Reverse("a")
	require.True(t, ok)
	mv, isMove := back.Move()
	require.True(t, isMove)
	assert.Equal(t, machine.Move{Dir: machine.Left, Next: "b"}, mv)
	assert.Equal(t, []string{"a", "b"}, r.States())
}

func TestRules_Conflicts(t *testing.T) {
	r := machine.NewRules()
	require.NoError(t, r.AddReadWrite("a", "0", "1", "b"))
	require.NoError(t, r.AddReadWrite("a", "0", "1", "b"), "identical redeclaration is allowed")

	assert.ErrorIs(t, r.AddReadWrite("a", "0", "0", "b"), machine.ErrConflictingReadWrite)
	assert.ErrorIs(t, r.AddMove("a", machine.Right, "c"), machine.ErrConflictingMove)
	// c,0 -> 1,b would make (b, 1) reversible to both a and c.
	assert.ErrorIs(t, r.AddReadWrite("c", "0", "1", "b"), machine.ErrReverseMismatch)

	require.NoError(t, r.AddMove("m", machine.Right, "n"))
	assert.ErrorIs(t, r.AddMove("m", machine.Left, "n"), machine.ErrConflictingMove)
	assert.ErrorIs(t, r.AddReadWrite("m", "0", "1", "z"), machine.ErrRuleKind)
	assert.ErrorIs(t, r.AddMove("o", machine.Left, "n"), machine.ErrReverseMismatch)
	// reverse slot of b already reads/writes.
	assert.ErrorIs(t, r.AddMove("p", machine.Right, "b"), machine.ErrRuleKind)
	assert.ErrorIs(t, r.AddReadWrite("", "0", "1", "b"), machine.ErrEmptyState)
	assert.ErrorIs(t, r.AddMove("q", machine.Direction(3), "r"), machine.ErrBadDirection)
}

func TestRules_FailedAddLeavesTablesUntouched(t *testing.T) {
	r := machine.NewRules()
	require.NoError(t, r.AddReadWrite("a", "0", "1", "b"))
	before := r.String()

	require.Error(t, r.AddReadWrite("c", "0", "1", "b"))
	assert.Equal(t, before, r.String())
	_, ok := r.Forward("c")
	assert.False(t, ok)
}

func TestFromTables(t *testing.T) {
	r := flipper(t)

	rebuilt, err := machine.FromTables(r.Table(machine.Forward), r.Table(machine.Reverse))
	require.NoError(t, err)
	assert.Equal(t, r.String(), rebuilt.String())

	inv, err := machine.Invert(r.Table(machine.Forward))
	require.NoError(t, err)
	assert.Len(t, inv, 2)

	tampered := machine.Table{
		"a": machine.MoveRule(machine.Right, "b"),
	}
	_, err = machine.FromTables(r.Table(machine.Forward), tampered)
	assert.ErrorIs(t, err, machine.ErrReverseMismatch)

	wrongDir := machine.Table{
		"b": machine.ReadWriteRule(map[string]machine.Action{"1": {Write: "0", Next: "a"}, "0": {Write: "1", Next: "a"}}),
		"a": machine.MoveRule(machine.Right, "b"),
	}
	_, err = machine.FromTables(r.Table(machine.Forward), wrongDir)
	assert.ErrorIs(t, err, machine.ErrReverseMismatch)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]machine.Direction{"L": machine.Left, "C": machine.Stay, "R": machine.Right} {
		got, err := machine.ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, in, got.String())
	}
	_, err := machine.ParseDirection("X")
	assert.ErrorIs(t, err, machine.ErrBadDirection)
}

func TestMachine_ForwardRun(t *testing.T) {
	m := machine.FromBits(flipper(t), "01", "a")

	steps := 0
	for !m.Forward() {
		steps++
	}
	assert.Equal(t, 4, steps)
	assert.True(t, m.Halted())
	assert.Equal(t, "10", m.Tape())
	assert.Equal(t, 2, m.Head())
	assert.Equal(t, "a", m.State())
	assert.Equal(t, machine.Blank, m.Read())
}

func TestMachine_NegativeCellsSerializeInOrder(t *testing.T) {
	r := machine.NewRules()
	require.NoError(t, r.AddMove("a", machine.Left, "b"))
	require.NoError(t, r.AddReadWrite("b", machine.Blank, "x", "c"))

	m := machine.FromBits(r, "01", "a")
	for !m.Forward() {
	}
	assert.Equal(t, -1, m.Head())
	assert.Equal(t, "x01", m.Tape())
	assert.Equal(t, map[int]string{-1: "x", 0: "0", 1: "1"}, m.Cells())
}

// Every non-halting forward step is undone by one reverse step.
func TestMachine_ReversibilityRoundTrip(t *testing.T) {
	rules := flipper(t)
	for _, input := range []string{"", "0", "1", "01", "110", "0101"} {
		m := machine.FromBits(rules, input, "a")
		for {
			before := m.Snapshot()
			twin := m.Clone()
			if twin.Forward() {
				break
			}
			require.False(t, twin.Reverse(), "input %q: reverse must not halt after a forward step", input)
			require.Equal(t, before, twin.Snapshot(), "input %q", input)
			m.Forward()
		}
	}
}

func TestMachine_ReverseRunRestoresInput(t *testing.T) {
	m := machine.FromBits(flipper(t), "011", "a")
	steps := 0
	for !m.Forward() {
		steps++
	}
	for i := 0; i < steps; i++ {
		require.False(t, m.Reverse())
	}
	assert.Equal(t, "011", m.Tape())
	assert.Equal(t, 0, m.Head())
	assert.Equal(t, "a", m.State())
}

func TestTrace_AlwaysHaltIsSingleNode(t *testing.T) {
	r := machine.NewRules()
	require.NoError(t, r.AddMove("z", machine.Right, "y"))

	tr, err := machine.New(r, nil, "a").Trace()
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Graph.NodeCount())
	assert.Equal(t, tr.First, tr.Last)
	assert.Equal(t, 0, tr.Steps)
	assert.Equal(t, core.KindOutput, tr.Graph.Kind(tr.Last))
}

func TestTrace_PathGraph(t *testing.T) {
	arena := core.NewArena()
	tr, err := machine.FromBits(flipper(t), "01", "a").Trace(machine.WithTraceArena(arena))
	require.NoError(t, err)

	require.Equal(t, 4, tr.Steps)
	require.Len(t, tr.Path, 5)
	assert.Same(t, arena, tr.Graph.Arena())
	assert.Equal(t, 4, tr.Graph.EdgeCount())

	for i := 1; i < len(tr.Path); i++ {
		assert.True(t, tr.Graph.HasEdge(tr.Path[i-1], tr.Path[i]))
	}
	first, err := tr.Graph.Node(tr.First)
	require.NoError(t, err)
	assert.Equal(t, core.KindComputation, first.Kind)
	assert.Equal(t, machine.Configuration{Tape: "01", Head: 0, State: "a"}, first.Data)

	last, err := tr.Graph.Node(tr.Last)
	require.NoError(t, err)
	assert.Equal(t, core.KindOutput, last.Kind)
	assert.Equal(t, machine.Configuration{Tape: "10", Head: 2, State: "a"}, last.Data)

	walked, err := bfs.BFS(tr.Graph, tr.First)
	require.NoError(t, err)
	assert.Equal(t, len(tr.Path)-1, walked.Depth[tr.Last])
	hasCycle, _, err := dfs.DetectCycles(tr.Graph)
	require.NoError(t, err)
	assert.False(t, hasCycle)
}

func TestTrace_Deterministic(t *testing.T) {
	rules := flipper(t)
	a, err := machine.FromBits(rules, "0110", "a").Trace()
	require.NoError(t, err)
	b, err := machine.FromBits(rules, "0110", "a").Trace()
	require.NoError(t, err)

	require.Equal(t, a.Steps, b.Steps)
	for i := range a.Path {
		na, _ := a.Graph.Node(a.Path[i])
		nb, _ := b.Graph.Node(b.Path[i])
		assert.Equal(t, na.Data, nb.Data)
	}
}

func TestTrace_StepLimit(t *testing.T) {
	r := machine.NewRules()
	require.NoError(t, r.AddMove("a", machine.Right, "b"))
	require.NoError(t, r.AddMove("b", machine.Right, "a"))

	_, err := machine.New(r, nil, "a").Trace(machine.WithTraceLimit(10))
	assert.ErrorIs(t, err, machine.ErrStepLimit)

	_, err = machine.New(nil, nil, "a").Trace()
	assert.ErrorIs(t, err, machine.ErrNilRules)
}

func TestLongestComputationPath(t *testing.T) {
	rules := flipper(t)

	n, err := machine.LongestComputationPath(rules, "a", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = machine.LongestComputationPath(rules, "a", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = machine.LongestComputationPath(rules, "a", 3, 2)
	assert.ErrorIs(t, err, machine.ErrStepLimit)
	_, err = machine.LongestComputationPath(rules, "a", -1, 0)
	assert.ErrorIs(t, err, machine.ErrInputLength)
	_, err = machine.LongestComputationPath(nil, "a", 1, 0)
	assert.ErrorIs(t, err, machine.ErrNilRules)
}
