// SPDX-License-Identifier: MIT

package experiment

import (
	"fmt"

	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/ruletext"
)

// DefaultRules inverts every bit of the randomness string and halts on the
// first blank cell: two steps per bit.
const DefaultRules = `# bit inverter
a,0->1,b
a,1->0,b
b->R,a
`

// LoadRules parses c.RulesFile, or DefaultRules when it is empty.
func (c Config) LoadRules() (*machine.Rules, error) {
	if c.RulesFile == "" {
		return ruletext.Parse(DefaultRules)
	}
	rules, err := ruletext.ParseFile(c.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("experiment: rules: %w", err)
	}

	return rules, nil
}
