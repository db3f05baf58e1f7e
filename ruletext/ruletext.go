// SPDX-License-Identifier: MIT

// Package ruletext parses the textual rule format into machine.Rules.
//
// One rule per line, blank lines and "#" comments ignored, spaces optional:
//
//	# flip the bit under the head, then step right
//	a, 0 -> 1, b     read/write: in a reading 0, write 1 and enter b
//	a, 1 -> 0, b
//	b -> R, a        move: in b, move the head right and enter a
//
// Directions are L, C (stay) and R. A state with no rule halts the machine.
// Syntax errors wrap machine.ErrMalformedRule; rule-table conflicts wrap the
// matching machine sentinel instead (ErrConflictingMove, ErrReverseMismatch).
package ruletext

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/hourglass/machine"
)

// ruleFile holds one rule per line; a rule must be followed by a newline or
// the end of input.
type ruleFile struct {
	Lines []*ruleLine `parser:"EOL* ( @@ ( EOL+ @@? )* )?"`
}

type ruleLine struct {
	Pos lexer.Position

	State string  `parser:"@Ident"`
	Read  *string `parser:"( \",\" @Ident )?"`
	Arg   string  `parser:"\"->\" @Ident"`
	Next  string  `parser:"\",\" @Ident"`
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `,`},
	{Name: "Ident", Pattern: `[^\s,#>-]+`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var ruleParser = participle.MustBuild[ruleFile](
	participle.Lexer(ruleLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses rule text into a consistent forward/reverse rule set.
func Parse(text string) (*machine.Rules, error) {
	file, err := ruleParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("ruletext: %w: %v", machine.ErrMalformedRule, err)
	}

	return build(file)
}

// ParseReader parses rule text read from r; name is used in error positions.
func ParseReader(name string, r io.Reader) (*machine.Rules, error) {
	file, err := ruleParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("ruletext: %w: %v", machine.ErrMalformedRule, err)
	}

	return build(file)
}

// ParseFile parses the rule file at path.
func ParseFile(path string) (*machine.Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ruletext: %w", err)
	}
	defer f.Close()

	return ParseReader(path, f)
}

// build replays the parsed lines in file order; the first conflicting line aborts.
func build(file *ruleFile) (*machine.Rules, error) {
	rules := machine.NewRules()
	for _, ln := range file.Lines {
		if ln.Read != nil {
			if err := rules.AddReadWrite(ln.State, *ln.Read, ln.Arg, ln.Next); err != nil {
				return nil, fmt.Errorf("ruletext: %s: %w", ln.Pos, err)
			}
			continue
		}

		dir, err := machine.ParseDirection(ln.Arg)
		if err != nil {
			return nil, fmt.Errorf("ruletext: %s: %w: %w", ln.Pos, machine.ErrMalformedRule, err)
		}
		if err = rules.AddMove(ln.State, dir, ln.Next); err != nil {
			return nil, fmt.Errorf("ruletext: %s: %w", ln.Pos, err)
		}
	}

	return rules, nil
}
