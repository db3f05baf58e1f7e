package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/randomizer"
)

// ExampleBFS_networkLayers walks a 2-bit randomness network from the bottom
// node "00". Every top string is B hops away: one decision per layer.
func ExampleBFS_networkLayers() {
	net, err := randomizer.New(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	start, _ := net.Lookup(0, "00")

	res, err := bfs.BFS(net.Graph, start)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, e := range net.Top() {
		fmt.Printf("%s:%d ", e.Bits, res.Depth[e.Node])
	}
	fmt.Println()
	// Output:
	// 00:2 01:2 10:2 11:2
}

// ExampleComponents shows that a randomness network is a single component.
func ExampleComponents() {
	net, _ := randomizer.New(3)
	comps, _ := bfs.Components(net.Graph)
	fmt.Println(len(comps), len(comps[0]))
	// Output:
	// 1 32
}
