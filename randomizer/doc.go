// Package randomizer builds the butterfly randomness network that feeds fresh
// random strings to the sampler models.
//
// What
//
//   - Layers 0..B, each holding one node for every B-bit string (2^B nodes).
//   - Node (L, s) for L >= 1 is joined to (L-1, s) and to (L-1, s') where s'
//     is s with character L-1 flipped. Bit strings are written most
//     significant bit first, so character 0 is the leftmost.
//   - The graph is undirected; every node above layer 0 has exactly two
//     neighbors in the layer below.
//
// A walker climbing from layer 0 to layer B makes one binary decision per
// layer and each decision can only change its own bit, so the string it
// arrives with at layer B is uniform over all 2^B values whatever the start.
//
// Usage
//
//	net, err := randomizer.New(2)
//	for _, e := range net.Top() {
//	    fmt.Println(e.Bits, e.Node) // "00" v8, "01" v9, ...
//	}
//
// Complexity: Time O(B·2^B), Space O(B·2^B).
package randomizer
