// SPDX-License-Identifier: MIT

// Package experiment measures how quickly a walker on a sampler model
// produces a fresh sample.
//
// Two curves are supported:
//
//	lasvegas    probability that a valid output was observed by the N-th
//	            measurement, measurements taken SamplingPeriod apart
//	montecarlo  probability that an independent sample was observed by time
//	            t, t advancing in TimeIncrement steps up to 2*SamplingPeriod
//
// A single walker persists across the trials of one worker, as in a
// physical device that keeps running between measurements. Trials are split
// across Workers goroutines, each with its own observer and a seed derived
// from Config.Seed, so a run is reproducible for a fixed worker count.
package experiment
