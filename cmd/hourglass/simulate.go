// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/sampler"
	"github.com/katalvlaran/hourglass/stats"
	"github.com/katalvlaran/hourglass/walk"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		mf         modelFlags
		seed       int64
		rounds     int
		steps      int
		discipline string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print the stationary mass per node kind, then walk the model and report where the walker is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := walk.ParseDiscipline(discipline)
			if err != nil {
				return err
			}
			g, starts, err := mf.build()
			if err != nil {
				return err
			}
			a.log.Info("model built", slog.String("model", mf.model), slog.Int("nodes", g.NodeCount()), slog.Int("edges", g.EdgeCount()))

			dist, err := stats.DegreeStationary(g)
			if err != nil {
				return err
			}
			masses, err := stats.ByKind(g, dist)
			if err != nil {
				return err
			}
			for _, m := range masses {
				fmt.Fprintln(a.out, m)
			}

			rng := walk.RNGFromSeed(seed)
			start, err := walk.RandomStart(starts, rng)
			if err != nil {
				return err
			}
			near, err := stats.ShortestTo(cmd.Context(), g, start, reachedOutput, 0)
			switch {
			case errors.Is(err, bfs.ErrUnreachable):
				fmt.Fprintln(a.out, "nearest output: unreachable")
			case err != nil:
				return err
			default:
				fmt.Fprintf(a.out, "nearest output: %d steps\n", len(near)-1)
			}
			w, err := walk.New(g, start, walk.WithRand(rng), walk.WithDiscipline(d))
			if err != nil {
				return err
			}
			for i := 0; i < rounds; i++ {
				if err = cmd.Context().Err(); err != nil {
					return err
				}
				at, err := w.RunSteps(steps)
				if err != nil {
					return err
				}
				n, err := g.Node(at)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "walk is at %s\n", n)
			}
			a.log.Debug("walk finished", slog.Uint64("steps", w.Steps()), slog.Float64("clock", w.Clock()))

			return nil
		},
	}
	mf.register(cmd)
	fs := cmd.Flags()
	fs.Int64Var(&seed, "seed", walk.DefaultSeed, "walk seed")
	fs.IntVar(&rounds, "rounds", 10, "number of position reports")
	fs.IntVar(&steps, "steps", 10000, "steps between reports")
	fs.StringVar(&discipline, "discipline", walk.Continuous.String(), "continuous or discrete")

	return cmd
}

// reachedOutput reports whether a walker standing on n has a sample: an
// output or hold node, or a product with an output component.
func reachedOutput(n core.Node) bool {
	if p, ok := n.Data.(sampler.Product); ok {
		return p.Top.Kind == core.KindOutput || p.Bottom.Kind == core.KindOutput
	}

	return n.Kind == core.KindOutput || n.Kind == core.KindHoldOutput
}
