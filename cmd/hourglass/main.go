// SPDX-License-Identifier: MIT

// Command hourglass builds reversible-computation sampler models, walks them
// and measures how quickly they produce fresh samples.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
