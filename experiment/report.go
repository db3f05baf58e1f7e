// SPDX-License-Identifier: MIT

package experiment

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Point is one value of a curve.
type Point struct {
	X           float64 `yaml:"x"`
	Probability float64 `yaml:"probability"`
}

// Report is the outcome of one Run.
type Report struct {
	RunID    string        `yaml:"run_id"`
	Model    string        `yaml:"model"`
	Nodes    int           `yaml:"nodes"`
	Edges    int           `yaml:"edges"`
	Trials   int           `yaml:"trials"`
	XLabel   string        `yaml:"x_label"`
	Points   []Point       `yaml:"points"`
	Duration time.Duration `yaml:"duration"`
}

// X labels.
const (
	LabelMeasurements = "measurements"
	LabelTime         = "time"
)

// newPoints turns per-point hit counts into probabilities. Las Vegas points
// are numbered 1..n; Monte Carlo points sit at 0, inc, 2*inc, ...
func newPoints(model string, hits []int, trials int, inc float64) []Point {
	out := make([]Point, len(hits))
	for j, h := range hits {
		x := float64(j + 1)
		if model == ModelMonteCarlo {
			x = float64(j) * inc
		}
		out[j] = Point{X: x, Probability: float64(h) / float64(trials)}
	}

	return out
}

// WriteTable writes a two-column aligned table.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# run %s model=%s nodes=%d edges=%d trials=%d\n", r.RunID, r.Model, r.Nodes, r.Edges, r.Trials)
	fmt.Fprintf(tw, "%s\tprobability\n", r.XLabel)
	for _, p := range r.Points {
		fmt.Fprintf(tw, "%g\t%.4f\n", p.X, p.Probability)
	}

	return tw.Flush()
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("experiment: encode report: %w", err)
	}

	return enc.Close()
}
