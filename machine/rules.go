// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"
	"sort"
	"strings"
)

// Rules holds the forward table and its exact inverse.
type Rules struct {
	forward Table
	reverse Table
}

// NewRules returns an empty rule set.
func NewRules() *Rules {
	return &Rules{forward: make(Table), reverse: make(Table)}
}

// AddReadWrite declares "state, read -> write, next" and mirrors it as
// "next, write -> read, state" in the reverse table.
//
// Implementation:
//   - Stage 1: Validate names (ErrEmptyState).
//   - Stage 2: Check the forward slot: a move rule there is ErrRuleKind, a
//     different action for read is ErrConflictingReadWrite.
//   - Stage 3: Check the reverse slot likewise; a different action there
//     means the forward table is not injective (ErrReverseMismatch).
//   - Stage 4: Commit both entries.
//
// Nothing is written unless every check passes.
func (r *Rules) AddReadWrite(state, read, write, next string) error {
	if state == "" || read == "" || write == "" || next == "" {
		return fmt.Errorf("AddReadWrite(%s,%s->%s,%s): %w", state, read, write, next, ErrEmptyState)
	}
	fwd := Action{Write: write, Next: next}
	rev := Action{Write: read, Next: state}

	if err := checkActionSlot(r.forward, state, read, fwd, ErrConflictingReadWrite); err != nil {
		return fmt.Errorf("AddReadWrite(%s,%s->%s,%s): %w", state, read, write, next, err)
	}
	if err := checkActionSlot(r.reverse, next, write, rev, ErrReverseMismatch); err != nil {
		return fmt.Errorf("AddReadWrite(%s,%s->%s,%s): reverse: %w", state, read, write, next, err)
	}

	actionSlot(r.forward, state)[read] = fwd
	actionSlot(r.reverse, next)[write] = rev

	return nil
}

// AddMove declares "state -> dir, next" and mirrors it as
// "next -> opposite(dir), state".
//
// Errors:
//   - ErrConflictingMove: state already has any forward rule.
//   - ErrRuleKind: next already reads/writes in the reverse table.
//   - ErrReverseMismatch: next already has a different reverse move.
func (r *Rules) AddMove(state string, dir Direction, next string) error {
	if state == "" || next == "" {
		return fmt.Errorf("AddMove(%s->%s,%s): %w", state, dir, next, ErrEmptyState)
	}
	if dir < Left || dir > Right {
		return fmt.Errorf("AddMove(%s->%d,%s): %w", state, dir, next, ErrBadDirection)
	}
	if _, exists := r.forward[state]; exists {
		return fmt.Errorf("AddMove(%s->%s,%s): %w", state, dir, next, ErrConflictingMove)
	}

	rev := MoveRule(dir.Opposite(), state)
	if existing, ok := r.reverse[next]; ok {
		if existing.kind != MoveKind {
			return fmt.Errorf("AddMove(%s->%s,%s): reverse: %w", state, dir, next, ErrRuleKind)
		}
		if !existing.equal(rev) {
			return fmt.Errorf("AddMove(%s->%s,%s): reverse: %w", state, dir, next, ErrReverseMismatch)
		}
	}

	r.forward[state] = MoveRule(dir, next)
	r.reverse[next] = rev

	return nil
}

// Forward returns the forward rule of state.
func (r *Rules) Forward(state string) (*Rule, bool) {
	rule, ok := r.forward[state]
	return rule, ok
}

// Reverse returns the reverse rule of state.
func (r *Rules) Reverse(state string) (*Rule, bool) {
	rule, ok := r.reverse[state]
	return rule, ok
}

// Table returns the table consulted for orientation o. Callers must not mutate it.
func (r *Rules) Table(o Orientation) Table {
	if r == nil {
		return nil
	}
	if o == Reverse {
		return r.reverse
	}
	return r.forward
}

// States returns every state named in either table, sorted.
func (r *Rules) States() []string {
	seen := make(map[string]struct{}, len(r.forward)+len(r.reverse))
	for s := range r.forward {
		seen[s] = struct{}{}
	}
	for s := range r.reverse {
		seen[s] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}

// String renders both tables with sorted states.
func (r *Rules) String() string {
	var b strings.Builder
	b.WriteString("Forward:\n")
	writeTable(&b, r.forward)
	b.WriteString("Reverse:\n")
	writeTable(&b, r.reverse)

	return b.String()
}

// Invert builds the reverse table of forward, failing on any conflict.
func Invert(forward Table) (Table, error) {
	r, err := replay(forward)
	if err != nil {
		return nil, err
	}

	return r.reverse, nil
}

// FromTables constructs Rules from an already-split pair of tables and
// verifies that reverse is exactly the inverse of forward.
//
// Errors:
//   - any error of AddMove/AddReadWrite while replaying forward.
//   - ErrReverseMismatch: reverse differs from the computed inverse.
func FromTables(forward, reverse Table) (*Rules, error) {
	r, err := replay(forward)
	if err != nil {
		return nil, err
	}
	if len(r.reverse) != len(reverse) {
		return nil, fmt.Errorf("FromTables: %d reverse states, want %d: %w", len(reverse), len(r.reverse), ErrReverseMismatch)
	}
	for state, want := range r.reverse {
		got, ok := reverse[state]
		if !ok || got == nil || !got.equal(want) {
			return nil, fmt.Errorf("FromTables: state %q: %w", state, ErrReverseMismatch)
		}
	}

	return r, nil
}

// replay adds every rule of forward, in sorted state order, to fresh Rules.
func replay(forward Table) (*Rules, error) {
	r := NewRules()
	states := make([]string, 0, len(forward))
	for s := range forward {
		states = append(states, s)
	}
	sort.Strings(states)

	for _, state := range states {
		rule := forward[state]
		if rule == nil {
			return nil, fmt.Errorf("state %q: %w", state, ErrNilRules)
		}
		if rule.kind == MoveKind {
			if err := r.AddMove(state, rule.move.Dir, rule.move.Next); err != nil {
				return nil, err
			}
			continue
		}
		syms := make([]string, 0, len(rule.actions))
		for sym := range rule.actions {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			a := rule.actions[sym]
			if err := r.AddReadWrite(state, sym, a.Write, a.Next); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

// checkActionSlot validates that table[state] can take action for symbol.
func checkActionSlot(table Table, state, symbol string, action Action, conflict error) error {
	rule, ok := table[state]
	if !ok {
		return nil
	}
	if rule.kind == MoveKind {
		return ErrRuleKind
	}
	if existing, ok := rule.actions[symbol]; ok && existing != action {
		return conflict
	}

	return nil
}

// actionSlot returns the action map of table[state], creating the rule if needed.
func actionSlot(table Table, state string) map[string]Action {
	rule, ok := table[state]
	if !ok {
		rule = &Rule{kind: ReadWriteKind, actions: make(map[string]Action)}
		table[state] = rule
	}

	return rule.actions
}

func writeTable(b *strings.Builder, t Table) {
	states := make([]string, 0, len(t))
	for s := range t {
		states = append(states, s)
	}
	sort.Strings(states)
	for _, s := range states {
		fmt.Fprintf(b, "%s->%s\n", s, t[s])
	}
}
