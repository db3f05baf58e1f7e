// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hourglass/machine"
)

func newLongestPathCmd(a *app) *cobra.Command {
	var (
		mf     modelFlags
		length int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "longest-path",
		Short: "Longest forward computation over every input of the given length",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rules, err := mf.rules()
			if err != nil {
				return err
			}
			n, err := machine.LongestComputationPath(rules, mf.initial, length, limit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "longest computation path for %d-bit inputs: %d\n", length, n)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&mf.rulesFile, "rules", "", "rule-text file (default: built-in bit inverter)")
	fs.StringVar(&mf.initial, "initial", "a", "initial machine state")
	fs.IntVar(&length, "length", 2, "input length in bits")
	fs.IntVar(&limit, "limit", machine.DefaultTraceLimit, "maximum forward steps per input")

	return cmd
}
