// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hourglass/experiment"
)

func newCurveCmd(a *app) *cobra.Command {
	var (
		configPath  string
		output      string
		showMetrics bool
		cfg         = experiment.DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Measure the probability of a fresh sample over repeated observations",
		Long: `curve runs the Las Vegas or Monte Carlo measurement.

Configuration is read from --config, then HOURGLASS_* environment variables,
then any flag given explicitly on the command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := experiment.ReadConfig(configPath)
			if err != nil {
				return err
			}
			overrideChanged(cmd, &loaded, cfg)
			if err = loaded.Validate(); err != nil {
				return err
			}
			rules, err := loaded.LoadRules()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			metrics, err := experiment.NewMetrics(reg)
			if err != nil {
				return err
			}
			r := experiment.NewRunner(experiment.WithLogger(a.log), experiment.WithMetrics(metrics))
			rep, err := r.Run(cmd.Context(), loaded, rules)
			if err != nil {
				return err
			}

			switch output {
			case "yaml":
				err = rep.WriteYAML(a.out)
			case "table":
				err = rep.WriteTable(a.out)
			default:
				err = fmt.Errorf("--output %q: want table or yaml", output)
			}
			if err != nil || !showMetrics {
				return err
			}
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			return writeCounters(a.out, families)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configPath, "config", "", "YAML config file")
	fs.StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	fs.BoolVar(&showMetrics, "metrics", false, "print walk and observation counters after the curve")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "lasvegas or montecarlo")
	fs.IntVar(&cfg.RandomBits, "bits", cfg.RandomBits, "random bits B")
	fs.StringVar(&cfg.RulesFile, "rules", cfg.RulesFile, "rule-text file")
	fs.StringVar(&cfg.InitialState, "initial", cfg.InitialState, "initial machine state")
	fs.StringVar(&cfg.Discipline, "discipline", cfg.Discipline, "continuous or discrete")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "parent seed")
	fs.IntVar(&cfg.Trials, "trials", cfg.Trials, "trials")
	fs.IntVar(&cfg.Measurements, "measurements", cfg.Measurements, "Las Vegas measurements per trial")
	fs.Float64Var(&cfg.SamplingPeriod, "sampling-period", cfg.SamplingPeriod, "time between measurements")
	fs.Float64Var(&cfg.TimeIncrement, "time-increment", cfg.TimeIncrement, "Monte Carlo time step")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent walkers")
	fs.IntVar(&cfg.TraceLimit, "trace-limit", cfg.TraceLimit, "maximum forward steps per trace")
	fs.BoolVar(&cfg.Stitch, "stitch", cfg.Stitch, "cross-link the two tracks of each randomness string")

	return cmd
}

// overrideChanged copies into dst every field whose flag was set explicitly.
func overrideChanged(cmd *cobra.Command, dst *experiment.Config, src experiment.Config) {
	set := map[string]func(){
		"model":           func() { dst.Model = src.Model },
		"bits":            func() { dst.RandomBits = src.RandomBits },
		"rules":           func() { dst.RulesFile = src.RulesFile },
		"initial":         func() { dst.InitialState = src.InitialState },
		"discipline":      func() { dst.Discipline = src.Discipline },
		"seed":            func() { dst.Seed = src.Seed },
		"trials":          func() { dst.Trials = src.Trials },
		"measurements":    func() { dst.Measurements = src.Measurements },
		"sampling-period": func() { dst.SamplingPeriod = src.SamplingPeriod },
		"time-increment":  func() { dst.TimeIncrement = src.TimeIncrement },
		"workers":         func() { dst.Workers = src.Workers },
		"trace-limit":     func() { dst.TraceLimit = src.TraceLimit },
		"stitch":          func() { dst.Stitch = src.Stitch },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// writeCounters prints every counter series as name{labels} value.
func writeCounters(w io.Writer, families []*dto.MetricFamily) error {
	var lines []string
	for _, f := range families {
		if f.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range f.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", f.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}
