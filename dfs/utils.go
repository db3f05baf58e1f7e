// SPDX-License-Identifier: MIT

package dfs

import (
	"strings"

	"github.com/katalvlaran/hourglass/core"
)

// indexOf returns the first index of val in s, or -1 if not found.
func indexOf(s []core.NodeID, val core.NodeID) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// reverse returns a new slice with the elements of s in reverse order.
func reverse(s []core.NodeID) []core.NodeID {
	out := make([]core.NodeID, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}

	return out
}

// compare orders equal-length slices lexicographically: -1, 0 or +1.
func compare(a, b []core.NodeID) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}

	return 0
}

// joinSig joins the node names of c with commas.
func joinSig(c []core.NodeID) string {
	parts := make([]string, len(c))
	for i, id := range c {
		parts[i] = id.String()
	}

	return strings.Join(parts, ",")
}

// MinimalRotation implements Booth's algorithm: the lexicographically
// minimal rotation of s, in O(n).
func MinimalRotation(s []core.NodeID) []core.NodeID {
	n := len(s)
	doubled := make([]core.NodeID, 0, 2*n)
	doubled = append(append(doubled, s...), s...)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	res := make([]core.NodeID, n)
	copy(res, doubled[k:k+n])

	return res
}
