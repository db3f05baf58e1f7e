// SPDX-License-Identifier: MIT

package machine

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// Machine is a reversible Turing machine: sparse tape, head, state and a
// halted flag. The tape is an ordered map so that serialization walks cells
// in index order, negative indices included.
type Machine struct {
	rules  *Rules
	tape   *treemap.Map // int -> string
	head   int
	state  string
	halted bool
}

// New returns a machine with head 0 in state initial. tape is copied.
func New(rules *Rules, tape map[int]string, initial string) *Machine {
	m := &Machine{
		rules: rules,
		tape:  treemap.NewWithIntComparator(),
		state: initial,
	}
	for i, sym := range tape {
		m.tape.Put(i, sym)
	}

	return m
}

// FromBits returns a machine whose tape holds bits[i] at cell i.
func FromBits(rules *Rules, bits, initial string) *Machine {
	tape := make(map[int]string, len(bits))
	for i, c := range bits {
		tape[i] = string(c)
	}

	return New(rules, tape, initial)
}

// Step applies one transition of the chosen table and reports whether the
// machine halted. A state without a rule, or a read/write rule without an
// entry for the symbol under the head, halts the machine and leaves tape,
// head and state untouched.
func (m *Machine) Step(o Orientation) bool {
	rule, ok := m.rules.Table(o)[m.state]
	if !ok {
		m.halted = true
		return true
	}

	if mv, isMove := rule.Move(); isMove {
		m.head += int(mv.Dir)
		m.state = mv.Next
		m.halted = false
		return false
	}

	action, ok := rule.Action(m.Read())
	if !ok {
		m.halted = true
		return true
	}
	m.tape.Put(m.head, action.Write)
	m.state = action.Next
	m.halted = false

	return false
}

// Forward is Step(Forward).
func (m *Machine) Forward() bool { return m.Step(Forward) }

// Reverse is Step(Reverse).
func (m *Machine) Reverse() bool { return m.Step(Reverse) }

// Read returns the symbol under the head, Blank for unwritten cells.
func (m *Machine) Read() string {
	if v, found := m.tape.Get(m.head); found {
		return v.(string)
	}
	return Blank
}

// Head returns the head position.
func (m *Machine) Head() int { return m.head }

// State returns the current state.
func (m *Machine) State() string { return m.state }

// Halted reports whether the last step found no applicable rule.
func (m *Machine) Halted() bool { return m.halted }

// Rules returns the rule set driving the machine.
func (m *Machine) Rules() *Rules { return m.rules }

// Tape returns the written cells concatenated in index order.
func (m *Machine) Tape() string {
	var b strings.Builder
	for _, v := range m.tape.Values() {
		b.WriteString(v.(string))
	}

	return b.String()
}

// Cells returns a copy of the written cells.
func (m *Machine) Cells() map[int]string {
	out := make(map[int]string, m.tape.Size())
	it := m.tape.Iterator()
	for it.Next() {
		out[it.Key().(int)] = it.Value().(string)
	}

	return out
}

// Snapshot captures the current configuration.
func (m *Machine) Snapshot() Configuration {
	return Configuration{Tape: m.Tape(), Head: m.head, State: m.state}
}

// Clone returns an independent machine in the same configuration.
func (m *Machine) Clone() *Machine {
	c := New(m.rules, m.Cells(), m.state)
	c.head = m.head
	c.halted = m.halted

	return c
}
