// SPDX-License-Identifier: MIT

package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/hourglass/bfs"
	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/dfs"
)

// Structure summarizes the shape of a model graph.
type Structure struct {
	Nodes      int
	Edges      int
	Components int

	// TraceDepth is the largest hop distance from the randomizer networks
	// (randomizer and rand_gen nodes) to any node: the length of the longest
	// trace with its output tail. It is 0 for graphs without a network.
	TraceDepth int

	// TraceCycles counts the distinct cycles left once the networks are
	// removed. Unstitched traces are paths, so it is 0 for them.
	TraceCycles int
}

// String renders "nodes=N edges=E components=C trace_depth=D trace_cycles=T".
func (s Structure) String() string {
	return fmt.Sprintf("nodes=%d edges=%d components=%d trace_depth=%d trace_cycles=%d",
		s.Nodes, s.Edges, s.Components, s.TraceDepth, s.TraceCycles)
}

func inNetwork(k core.Kind) bool {
	return k == core.KindRandomizer || k == core.KindRandGen
}

// Describe measures g. Complexity is that of dfs.DetectCycles.
func Describe(g *core.Graph) (Structure, error) {
	if g == nil {
		return Structure{}, core.ErrNilGraph
	}
	comps, err := bfs.Components(g)
	if err != nil {
		return Structure{}, fmt.Errorf("Describe: %w", err)
	}

	var network []core.NodeID
	for _, id := range g.Nodes() {
		if inNetwork(g.Kind(id)) {
			network = append(network, id)
		}
	}
	depth := 0
	if len(network) > 0 {
		res, err := bfs.Search(g, network)
		if err != nil {
			return Structure{}, fmt.Errorf("Describe: %w", err)
		}
		depth = res.MaxDepth()
	}

	offNetwork := dfs.WithFilterNeighbor(func(id core.NodeID) bool { return !inNetwork(g.Kind(id)) })
	_, cycles, err := dfs.DetectCycles(g, offNetwork)
	if err != nil {
		return Structure{}, fmt.Errorf("Describe: %w", err)
	}

	return Structure{
		Nodes:       g.NodeCount(),
		Edges:       g.EdgeCount(),
		Components:  len(comps),
		TraceDepth:  depth,
		TraceCycles: len(cycles),
	}, nil
}

// errFound stops the search at the first match.
var errFound = errors.New("stats: target found")

// ShortestTo returns a shortest path from start to the nearest node for which
// match holds, both ends included. A walker needs at least len(path)-1 moves
// to get there. maxDepth bounds the search (0 = none).
//
// Errors: bfs.ErrUnreachable when no match lies within reach, ctx.Err(),
// and the bfs input errors.
func ShortestTo(ctx context.Context, g *core.Graph, start core.NodeID, match func(core.Node) bool, maxDepth int) ([]core.NodeID, error) {
	if g == nil {
		return nil, fmt.Errorf("stats.ShortestTo: %w", core.ErrNilGraph)
	}
	target := core.NoNode
	res, err := bfs.BFS(g, start,
		bfs.WithContext(ctx),
		bfs.WithMaxDepth(maxDepth),
		bfs.WithOnVisit(func(id core.NodeID, _ int) error {
			n, err := g.Node(id)
			if err != nil {
				return err
			}
			if match(n) {
				target = id
				return errFound
			}
			return nil
		}),
	)
	switch {
	case errors.Is(err, errFound):
	case err != nil:
		return nil, fmt.Errorf("stats.ShortestTo: %w", err)
	default:
		return nil, fmt.Errorf("stats.ShortestTo from %s: %w", start, bfs.ErrUnreachable)
	}

	return res.PathTo(target)
}
