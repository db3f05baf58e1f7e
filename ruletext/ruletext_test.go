package ruletext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/ruletext"
)

func TestParse_Flipper(t *testing.T) {
	rules, err := ruletext.ParseFile("testdata/flipper.tm")
	require.NoError(t, err)

	fwd, ok := rules.Forward("a")
	require.True(t, ok)
	assert.Equal(t, machine.ReadWriteKind, fwd.Kind())
	assert.Equal(t, 2, fwd.Symbols())

	mv, ok := rules.Forward("b")
	require.True(t, ok)
	move, isMove := mv.Move()
	require.True(t, isMove)
	assert.Equal(t, machine.Move{Dir: machine.Right, Next: "a"}, move)

	m := machine.FromBits(rules, "0011", "a")
	for !m.Forward() {
	}
	assert.Equal(t, "1100", m.Tape())
}

func TestParse_WhitespaceAndComments(t *testing.T) {
	compact, err := ruletext.Parse("a,0->1,b\nb->R,a")
	require.NoError(t, err)
	spaced, err := ruletext.Parse(`
		# leading comment

		a , 0 ->  1 , b   # trailing comment
		b -> R , a
	`)
	require.NoError(t, err)
	assert.Equal(t, compact.String(), spaced.String())

	empty, err := ruletext.Parse("# nothing here\n\n")
	require.NoError(t, err)
	assert.Empty(t, empty.States())
}

func TestParse_Malformed(t *testing.T) {
	for name, text := range map[string]string{
		"no arrow":       "a, 0, 1, b",
		"short rhs":      "a, 0 -> 1",
		"long lhs":       "a, 0, 1 -> 1, b",
		"bad direction":  "a -> X, b",
		"dangling arrow": "->",
		"missing state":  ", 0 -> 1, b",
		"long rhs":       "a -> R, b, c",
		"two rules":      "a -> R, b c -> L, d\n",
		"split rule":     "a, 0 ->\n1, b",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ruletext.Parse(text)
			assert.ErrorIs(t, err, machine.ErrMalformedRule)
		})
	}

	_, err := ruletext.Parse("a -> X, b")
	assert.ErrorIs(t, err, machine.ErrBadDirection)
}

func TestParse_Conflicts(t *testing.T) {
	_, err := ruletext.Parse("a -> R, b\na -> L, c")
	assert.ErrorIs(t, err, machine.ErrConflictingMove)

	_, err = ruletext.Parse("a, 0 -> 1, b\na, 0 -> 0, b")
	assert.ErrorIs(t, err, machine.ErrConflictingReadWrite)

	_, err = ruletext.Parse("a -> R, c\nb -> R, c")
	assert.ErrorIs(t, err, machine.ErrReverseMismatch)

	_, err = ruletext.Parse("a -> R, b\na, 0 -> 1, c")
	assert.ErrorIs(t, err, machine.ErrRuleKind)
	assert.Contains(t, err.Error(), "2:1")
}

func TestParseReader(t *testing.T) {
	rules, err := ruletext.ParseReader("inline", strings.NewReader("a -> L, b\nb, _ -> x, c\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rules.States())

	_, err = ruletext.ParseFile("testdata/missing.tm")
	assert.Error(t, err)
}
