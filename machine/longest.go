// SPDX-License-Identifier: MIT

package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// LongestComputationPath runs the machine on every binary input of length
// inputLength and returns the largest number of forward steps taken before
// halting. This is brute force over 2^inputLength inputs and never returns
// for a non-halting input unless limit > 0, in which case a run longer than
// limit steps yields ErrStepLimit.
func LongestComputationPath(rules *Rules, initial string, inputLength, limit int) (int, error) {
	if rules == nil {
		return 0, ErrNilRules
	}
	if inputLength < 0 || inputLength > 62 {
		return 0, fmt.Errorf("LongestComputationPath: inputLength=%d: %w", inputLength, ErrInputLength)
	}

	longest := 0
	for inp := int64(0); inp < int64(1)<<inputLength; inp++ {
		m := FromBits(rules, padBits(inp, inputLength), initial)
		steps := 0
		for !m.Forward() {
			steps++
			if limit > 0 && steps > limit {
				return 0, fmt.Errorf("LongestComputationPath: input %s: %w", padBits(inp, inputLength), ErrStepLimit)
			}
		}
		if steps > longest {
			longest = steps
		}
	}

	return longest, nil
}

// padBits renders n as a most-significant-first bit string of the given width.
func padBits(n int64, width int) string {
	if width == 0 {
		return ""
	}
	s := strconv.FormatInt(n, 2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}

	return s
}
