// SPDX-License-Identifier: MIT

// Package hourglass builds the "hourglass" sampling models and measures how
// fast a lazy random walk on them finds a sample.
//
// What is an hourglass?
//
//	Two copies of a randomizer network (a layered graph whose outer layer
//	holds every B-bit string) are glued together. From each outer string
//	hangs the computation path of a deterministic machine run on that
//	string; the path ends in output nodes. A random walk that reaches an
//	output node has drawn a sample from the machine's output distribution.
//
// Models:
//
//	Las Vegas    two halves sharing one randomizer network; a walk keeps
//	             moving until it lands on an output.
//	Monte Carlo  the product of a top and a bottom half; a walk succeeds
//	             when either coordinate reaches an output.
//	Battery      a single core network feeding many halves; simulated only.
//
// Layout:
//
//	core/        arena-backed graph with typed node roles
//	machine/     rule-driven one-tape machine and its computation trace
//	ruletext/    text grammar for machine rules
//	randomizer/  layered randomizer network over B-bit strings
//	sampler/     half, Las Vegas, Monte Carlo and battery constructions
//	walk/        lazy random walk disciplines and seeding
//	observe/     observation protocols over a walk
//	bfs/, dfs/   traversal, connectivity and cycle checks
//	matrix/      dense adjacency and transition matrices
//	stats/       stationary distribution and per-kind mass
//	experiment/  configuration, ready-probability curves, reports, metrics
//	cmd/hourglass  the command-line front end
//
// Quick ASCII picture of a Las Vegas model with B = 1:
//
//	  out ─ ... ─ step ─┐       ┌─ step ─ ... ─ out
//	                    "0" ─── r
//	  out ─ ... ─ step ─┘       └─ step ─ ... ─ out
//
//	go install github.com/katalvlaran/hourglass/cmd/hourglass@latest
package hourglass
