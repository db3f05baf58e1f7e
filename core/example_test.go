package core_test

import (
	"fmt"

	"github.com/katalvlaran/hourglass/core"
)

// ExampleGraph_Union shows two graphs on one arena sharing a node; the
// merged graph keeps the edges each side contributed.
func ExampleGraph_Union() {
	arena := core.NewArena()
	left := core.NewGraph(core.WithArena(arena))
	right := core.NewGraph(core.WithArena(arena))

	hub := left.AddNode(core.KindRandomizer, nil)
	a := left.AddNode(core.KindComputation, nil)
	_ = left.AddEdge(hub, a)

	_ = right.Adopt(hub)
	b := right.AddNode(core.KindComputation, nil)
	_ = right.AddEdge(hub, b)

	_ = left.Union(right)
	nbrs, _ := left.Neighbors(hub)
	fmt.Println(nbrs, left.EdgeCount())

	// Output:
	// [v1 v2] 2
}
