// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hourglass/stats"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		mf     modelFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Stationary distribution of the discrete walk, aggregated by node kind",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			g, _, err := mf.build()
			if err != nil {
				return err
			}

			var dist *stats.Distribution
			switch method {
			case "power":
				dist, err = stats.Stationary(g)
			case "degree":
				dist, err = stats.DegreeStationary(g)
			default:
				err = fmt.Errorf("--method %q: want power or degree", method)
			}
			if err != nil {
				return err
			}
			a.log.Info("stationary distribution",
				slog.String("method", method),
				slog.Int("nodes", g.NodeCount()),
				slog.Int("iterations", dist.Iterations),
			)

			masses, err := stats.ByKind(g, dist)
			if err != nil {
				return err
			}
			shape, err := stats.Describe(g)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "# %s\n", shape)
			if method == "power" {
				// The dense path already paid for the matrix, so check reversibility too.
				balanced, err := stats.DetailedBalance(g, dist)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "# detailed balance: %t\n", balanced)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "kind\tnodes\tmass")
			for _, m := range masses {
				fmt.Fprintf(tw, "%s\t%d\t%.6f\n", m.Kind, m.Nodes, m.Mass)
			}
			return tw.Flush()
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVar(&method, "method", "degree", "power (dense power iteration) or degree (closed form)")

	return cmd
}
