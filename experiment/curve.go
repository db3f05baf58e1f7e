// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/hourglass/observe"
)

// ErrCurveArgs indicates a non-positive point count, period or trial count.
var ErrCurveArgs = errors.New("experiment: points, period and trials must be positive")

// ReadyCurve runs trials on one persistent observer. A trial takes up to
// points measurements, advancing the walk by period before each; from its
// first ready measurement on, every remaining point counts as a hit.
// hits[j] is the number of trials ready by point j.
//
// The context is checked between trials.
func ReadyCurve(ctx context.Context, o observe.Observer, points int, period float64, trials int) ([]int, error) {
	return readyCurve(ctx, o, points, period, trials, recorder{})
}

func readyCurve(ctx context.Context, o observe.Observer, points int, period float64, trials int, rec recorder) ([]int, error) {
	if points <= 0 || period <= 0 || trials <= 0 {
		return nil, ErrCurveArgs
	}
	hits := make([]int, points)
	w := o.Walk()
	for trial := 0; trial < trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found := false
		for j := 0; j < points; j++ {
			if found {
				hits[j]++
				continue
			}
			before := w.Steps()
			if _, err := w.RunForTime(period); err != nil {
				return nil, fmt.Errorf("trial %d point %d: %w", trial, j, err)
			}
			rec.stepped(w.Steps() - before)

			ready, _, err := o.Observe()
			if err != nil {
				return nil, fmt.Errorf("trial %d point %d: %w", trial, j, err)
			}
			rec.observed(ready)
			if ready {
				found = true
				hits[j]++
				rec.firstReady(j + 1)
			}
		}
	}

	return hits, nil
}
