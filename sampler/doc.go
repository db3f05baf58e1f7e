// Package sampler composes randomness networks and reversible-computation
// traces into the hourglass models a random walk samples from.
//
// Models
//
//   - HalfHourglass: one network plus, per outer random string s, two tracks
//     seeded with tape s. A track is the machine's trace followed by an
//     output window repeating the halting configuration. Track-1 node i is
//     stitched to track-0 nodes i-1 and i+1 so neither track is an isolated
//     chain.
//   - LasVegas: one shared network; the top half hangs from layer B, the
//     bottom half from layer 0. Output nodes carry their half, so a walker
//     can tell when it has crossed the network.
//   - MonteCarlo: two independent halves combined by a layer-wise product.
//     Product node (t, b) at layer i joins (t', b') at layer i-1 when t~t'
//     and b~b' in their halves.
//   - BatteryHourglass: the machine-free model made of rand_gen merge trees,
//     computation chains and hold_output chains.
//
// Payloads
//
//	randomizer.Cell  randomizer nodes
//	Step             computation nodes
//	Output           output nodes (Counter 0 on the halting configuration)
//	Product          Monte Carlo nodes
//	Battery, Hold    battery hourglass nodes
//
// Output windows
//
// The window length is a function of the trace step count c: 2c+B+1 for Las
// Vegas and c+B+1 for Monte Carlo by default, overridable with
// WithOutputLength.
package sampler
