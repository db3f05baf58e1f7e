// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs.
type app struct {
	out      io.Writer
	errOut   io.Writer
	log      *slog.Logger
	logLevel string
	noColor  bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "hourglass",
		Short:         "Reversible-computation sampler models and random-walk experiments",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			a.log = slog.New(tint.NewHandler(a.errOut, &tint.Options{
				Level:      level,
				TimeFormat: time.TimeOnly,
				NoColor:    a.noColor,
			}))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored log output")

	root.AddCommand(
		newCurveCmd(a),
		newSimulateCmd(a),
		newStatsCmd(a),
		newLongestPathCmd(a),
	)

	return root
}
