// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/experiment"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/sampler"
)

const modelBattery = "battery"

// modelFlags selects and parameterises a sampler model.
type modelFlags struct {
	model      string
	bits       int
	rulesFile  string
	initial    string
	compLength int
	traceLimit int
	stitch     bool
}

func (f *modelFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.model, "model", experiment.ModelLasVegas, "model: lasvegas, montecarlo or battery")
	fs.IntVar(&f.bits, "bits", 2, "random bits B")
	fs.StringVar(&f.rulesFile, "rules", "", "rule-text file (default: built-in bit inverter)")
	fs.StringVar(&f.initial, "initial", "a", "initial machine state")
	fs.IntVar(&f.compLength, "comp-length", 3, "battery model: computation and hold chain length")
	fs.IntVar(&f.traceLimit, "trace-limit", machine.DefaultTraceLimit, "maximum forward steps per trace")
	fs.BoolVar(&f.stitch, "stitch", true, "cross-link the two tracks of each randomness string")
}

func (f *modelFlags) rules() (*machine.Rules, error) {
	return experiment.Config{RulesFile: f.rulesFile}.LoadRules()
}

// build returns the model graph and the nodes a walk may start from.
func (f *modelFlags) build() (*core.Graph, []core.NodeID, error) {
	if f.model == modelBattery {
		bh, err := sampler.NewBatteryHourglass(f.bits, f.compLength)
		if err != nil {
			return nil, nil, err
		}
		top, _ := bh.Core(sampler.Top)
		bottom, _ := bh.Core(sampler.Bottom)
		return bh.Graph, append(top, bottom...), nil
	}

	rules, err := f.rules()
	if err != nil {
		return nil, nil, err
	}
	opts := []sampler.Option{sampler.WithTraceLimit(f.traceLimit)}
	if !f.stitch {
		opts = append(opts, sampler.WithoutStitching())
	}
	switch f.model {
	case experiment.ModelLasVegas:
		lv, err := sampler.NewLasVegas(f.bits, rules, f.initial, opts...)
		if err != nil {
			return nil, nil, err
		}
		return lv.Graph, lv.Halved(), nil
	case experiment.ModelMonteCarlo:
		mc, err := sampler.NewMonteCarlo(f.bits, rules, f.initial, opts...)
		if err != nil {
			return nil, nil, err
		}
		return mc.Graph, mc.Graph.Nodes(), nil
	}

	return nil, nil, fmt.Errorf("unknown model %q", f.model)
}
