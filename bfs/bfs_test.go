package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/core"
)

// nodes adds n payload-free computation nodes and returns their handles.
func nodes(g *core.Graph, n int) []core.NodeID {
	ids := make([]core.NodeID, n)
	for i := range ids {
		ids[i] = g.AddNode(core.KindComputation, nil)
	}
	return ids
}

// chain joins ids[i] to ids[i+1].
func chain(t *testing.T, g *core.Graph, ids []core.NodeID) {
	t.Helper()
	for i := 0; i+1 < len(ids); i++ {
		if err := g.AddEdge(ids[i], ids[i+1]); err != nil {
			t.Fatal(err)
		}
	}
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	// nil graph
	if _, err := bfs.BFS(nil, 0); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	// start vertex not found
	g := core.NewGraph()
	if _, err := bfs.BFS(g, 7); !errors.Is(err, bfs.ErrSourceNotFound) {
		t.Errorf("missing start: want ErrSourceNotFound, got %v", err)
	}
	if _, err := bfs.Search(g, nil); !errors.Is(err, bfs.ErrNoSource) {
		t.Errorf("no sources: want ErrNoSource, got %v", err)
	}
	// negative MaxDepth is a violation
	a := g.AddNode(core.KindComputation, nil)
	if _, err := bfs.BFS(g, a, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestCycleAndDepths covers a simple cycle and checks depths.
func TestCycleAndDepths(t *testing.T) {
	// A–B–C–D–A undirected cycle
	g := core.NewGraph()
	v := nodes(g, 4)
	chain(t, g, v)
	if err := g.AddEdge(v[3], v[0]); err != nil {
		t.Fatal(err)
	}

	res, err := bfs.BFS(g, v[0])
	if err != nil {
		t.Fatal(err)
	}
	if res.Order[0] != v[0] {
		t.Errorf("first vertex = %s; want %s", res.Order[0], v[0])
	}
	layer1 := map[core.NodeID]bool{res.Order[1]: true, res.Order[2]: true}
	if !layer1[v[1]] || !layer1[v[3]] {
		t.Errorf("depth-1 layer = %v; want {%s,%s}", res.Order[1:3], v[1], v[3])
	}
	if res.Order[3] != v[2] {
		t.Errorf("last vertex = %s; want %s", res.Order[3], v[2])
	}
	for id, want := range map[core.NodeID]int{v[0]: 0, v[1]: 1, v[3]: 1, v[2]: 2} {
		if got := res.Depth[id]; got != want {
			t.Errorf("Depth[%s] = %d; want %d", id, got, want)
		}
	}
}

// TestBFS_Disconnected ensures BFS only explores the component of the start vertex.
func TestBFS_Disconnected(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 4)
	chain(t, g, v[:2]) // component 1
	chain(t, g, v[2:]) // component 2

	resX, _ := bfs.BFS(g, v[0])
	if !reflect.DeepEqual(resX.Order, v[:2]) {
		t.Errorf("From %s: got %v; want %v", v[0], resX.Order, v[:2])
	}
	resP, _ := bfs.BFS(g, v[2])
	if !reflect.DeepEqual(resP.Order, v[2:]) {
		t.Errorf("From %s: got %v; want %v", v[2], resP.Order, v[2:])
	}
}

// TestComponents checks the partition and its BFS ordering.
func TestComponents(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 5)
	chain(t, g, v[:3])
	if err := g.AddEdge(v[4], v[3]); err != nil {
		t.Fatal(err)
	}

	comps, err := bfs.Components(g)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]core.NodeID{v[:3], {v[3], v[4]}}
	if !reflect.DeepEqual(comps, want) {
		t.Errorf("Components = %v; want %v", comps, want)
	}
	if _, err = bfs.Components(nil); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
}

// TestBFS_MaxDepth verifies WithMaxDepth behavior for positive, zero (no limit), and large depths.
func TestBFS_MaxDepth(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 3)
	chain(t, g, v)
	if res, _ := bfs.BFS(g, v[0], bfs.WithMaxDepth(1)); !reflect.DeepEqual(res.Order, v[:2]) {
		t.Errorf("MaxDepth=1: got %v; want %v", res.Order, v[:2])
	}
	if res, _ := bfs.BFS(g, v[0], bfs.WithMaxDepth(0)); !reflect.DeepEqual(res.Order, v) {
		t.Errorf("MaxDepth=0: got %v; want %v", res.Order, v)
	}
	if res, _ := bfs.BFS(g, v[0], bfs.WithMaxDepth(10)); !reflect.DeepEqual(res.Order, v) {
		t.Errorf("MaxDepth=10: got %v; want %v", res.Order, v)
	}
}

// TestBFS_SelfLoopAndParallelDedup ensures that loops and parallel edges do not enqueue twice.
func TestBFS_SelfLoopAndParallelDedup(t *testing.T) {
	g := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	v := nodes(g, 2)
	for _, e := range [][2]core.NodeID{{v[0], v[0]}, {v[0], v[1]}, {v[0], v[1]}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	res, _ := bfs.BFS(g, v[0])
	if !reflect.DeepEqual(res.Order, v) {
		t.Errorf("SelfLoop/Parallel: got %v; want %v", res.Order, v)
	}
}

// TestBFS_OnVisitStops checks the hook sees nodes in depth order and that
// its error ends the search with a partial result.
func TestBFS_OnVisitStops(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 4)
	chain(t, g, v)

	stop := errors.New("found")
	var depths []int
	res, err := bfs.BFS(g, v[0], bfs.WithOnVisit(func(id core.NodeID, d int) error {
		depths = append(depths, d)
		if id == v[2] {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) {
		t.Fatalf("want hook error, got %v", err)
	}
	if !reflect.DeepEqual(depths, []int{0, 1, 2}) {
		t.Errorf("visit depths = %v; want [0 1 2]", depths)
	}
	if !reflect.DeepEqual(res.Order, v[:3]) {
		t.Errorf("partial Order = %v; want %v", res.Order, v[:3])
	}
}

// TestSearch_MultiSource measures every node against its nearest source.
func TestSearch_MultiSource(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 7)
	chain(t, g, v)

	res, err := bfs.Search(g, []core.NodeID{v[0], v[6], v[0]})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 3, 2, 1, 0}
	for i, id := range v {
		if res.Depth[id] != want[i] {
			t.Errorf("Depth[%s] = %d; want %d", id, res.Depth[id], want[i])
		}
	}
	if res.MaxDepth() != 3 {
		t.Errorf("MaxDepth = %d; want 3", res.MaxDepth())
	}
	if path, _ := res.PathTo(v[4]); !reflect.DeepEqual(path, []core.NodeID{v[6], v[5], v[4]}) {
		t.Errorf("PathTo = %v; want from the nearer source", path)
	}
	if len(res.Order) != len(v) {
		t.Errorf("duplicate source visited twice: %v", res.Order)
	}
}

// TestBFS_PathTo covers trivial (start→start), multi-hop and unreachable targets.
func TestBFS_PathTo(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 4)
	chain(t, g, v[:3])
	res, _ := bfs.BFS(g, v[0])
	if path, _ := res.PathTo(v[0]); !reflect.DeepEqual(path, v[:1]) {
		t.Errorf("PathTo start: got %v; want %v", path, v[:1])
	}
	if path, _ := res.PathTo(v[2]); !reflect.DeepEqual(path, v[:3]) {
		t.Errorf("PathTo end: got %v; want %v", path, v[:3])
	}
	if _, err := res.PathTo(v[3]); !errors.Is(err, bfs.ErrUnreachable) {
		t.Errorf("PathTo unreachable: want ErrUnreachable, got %v", err)
	}
}

// TestBFS_Cancellation verifies that a cancelled context halts BFS promptly.
func TestBFS_Cancellation(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 101)
	chain(t, g, v)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // immediate
	if _, err := bfs.BFS(g, v[0], bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("Cancellation: want context.Canceled, got %v", err)
	}
}

// TestBFS_ConcurrentSafety ensures two concurrent BFS runs on the same graph do not interfere.
func TestBFS_ConcurrentSafety(t *testing.T) {
	g := core.NewGraph()
	v := nodes(g, 2)
	chain(t, g, v)
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { _, err := bfs.BFS(g, v[0]); errs <- err }()
	}
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Concurrent run #%d: unexpected error %v", i, err)
		}
	}
}
