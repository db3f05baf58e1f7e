// SPDX-License-Identifier: MIT

// Package machine defines the reversible Turing machine, its rule tables,
// and the sentinel errors raised while constructing them.
//
// Rule model:
//
//	move rule       state -> dir, next        (head moves, tape untouched)
//	read/write rule state, read -> write, next (tape cell rewritten)
//
// A state carries either one move rule or a set of read/write actions keyed
// by the symbol under the head, never both. Every forward rule is mirrored
// into the reverse table as it is added, so an inconsistent pair of tables
// is rejected at construction and stepping can never fail at run time.
package machine

import (
	"errors"
	"fmt"
)

// Sentinel errors for rule construction and execution.
var (
	// ErrMalformedRule indicates a rule line that cannot be parsed.
	ErrMalformedRule = errors.New("machine: malformed rule")

	// ErrConflictingReadWrite indicates two different actions for the same (state, symbol).
	ErrConflictingReadWrite = errors.New("machine: conflicting read/write rules")

	// ErrConflictingMove indicates a second rule declared for a state that already has a move rule
	// (or a move rule declared for a state that already reads/writes).
	ErrConflictingMove = errors.New("machine: conflicting movement rule")

	// ErrReverseMismatch indicates the reverse table is not the exact inverse of the forward one.
	ErrReverseMismatch = errors.New("machine: forward/reverse rule mismatch")

	// ErrRuleKind indicates a read/write action added to a move rule or vice versa.
	ErrRuleKind = errors.New("machine: read/write rule conflicts with movement rule")

	// ErrBadDirection indicates a head direction other than L, C or R.
	ErrBadDirection = errors.New("machine: invalid direction")

	// ErrEmptyState indicates an empty state or symbol name.
	ErrEmptyState = errors.New("machine: empty state or symbol")

	// ErrNilRules indicates a nil *Rules.
	ErrNilRules = errors.New("machine: rules are nil")

	// ErrInputLength indicates an input length outside [0, 62].
	ErrInputLength = errors.New("machine: input length out of range")

	// ErrStepLimit indicates a run exceeded its step budget without halting.
	ErrStepLimit = errors.New("machine: step limit exceeded")
)

// Blank is the symbol read from tape cells that were never written.
const Blank = "_"

// Direction is a head movement.
type Direction int8

// Head directions.
const (
	Left  Direction = -1
	Stay  Direction = 0
	Right Direction = 1
)

// ParseDirection maps "L", "C", "R" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "L":
		return Left, nil
	case "C":
		return Stay, nil
	case "R":
		return Right, nil
	}

	return Stay, fmt.Errorf("%q: %w", s, ErrBadDirection)
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction { return -d }

// String renders the direction letter.
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "C"
}

// Orientation selects which rule table a step consults.
type Orientation uint8

// Step orientations.
const (
	Forward Orientation = iota
	Reverse
)

// String renders the orientation name.
func (o Orientation) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// RuleKind distinguishes move rules from read/write rules.
type RuleKind uint8

// Rule kinds.
const (
	MoveKind RuleKind = iota
	ReadWriteKind
)

// Move is the action of a move rule.
type Move struct {
	Dir  Direction
	Next string
}

// Action is a read/write entry: symbol to write and state to enter.
type Action struct {
	Write string
	Next  string
}

// Rule is the transition of one state: either a Move or per-symbol Actions.
type Rule struct {
	kind    RuleKind
	move    Move
	actions map[string]Action
}

// MoveRule returns a move rule.
func MoveRule(dir Direction, next string) *Rule {
	return &Rule{kind: MoveKind, move: Move{Dir: dir, Next: next}}
}

// ReadWriteRule returns a read/write rule holding a copy of actions.
func ReadWriteRule(actions map[string]Action) *Rule {
	r := &Rule{kind: ReadWriteKind, actions: make(map[string]Action, len(actions))}
	for sym, a := range actions {
		r.actions[sym] = a
	}

	return r
}

// Kind reports whether the rule moves or reads/writes.
func (r *Rule) Kind() RuleKind { return r.kind }

// Move returns the move action; ok is false for read/write rules.
func (r *Rule) Move() (Move, bool) {
	return r.move, r.kind == MoveKind
}

// Action returns the read/write action for symbol; ok is false when the rule
// is a move rule or has no entry for symbol.
func (r *Rule) Action(symbol string) (Action, bool) {
	if r.kind != ReadWriteKind {
		return Action{}, false
	}
	a, ok := r.actions[symbol]

	return a, ok
}

// Symbols returns the number of read/write entries.
func (r *Rule) Symbols() int { return len(r.actions) }

// equal reports structural equality of two rules.
func (r *Rule) equal(o *Rule) bool {
	if r.kind != o.kind {
		return false
	}
	if r.kind == MoveKind {
		return r.move == o.move
	}
	if len(r.actions) != len(o.actions) {
		return false
	}
	for sym, a := range r.actions {
		if b, ok := o.actions[sym]; !ok || a != b {
			return false
		}
	}

	return true
}

// String renders the rule for debugging.
func (r *Rule) String() string {
	if r.kind == MoveKind {
		return fmt.Sprintf("move (%s, %s)", r.move.Dir, r.move.Next)
	}
	return fmt.Sprintf("rw %v", r.actions)
}

// Table maps a state to its rule.
type Table map[string]*Rule
