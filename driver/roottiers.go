package driver

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/stepgraph"
)

// arrowPair is one candidate (leftArrow, rightArrow) resting stance.
type arrowPair struct {
	left, right int
}

// resolveTier looks up every candidate pair's resting, Normal-orientation
// GraphNode in graph, skipping any pair the graph never reached (a
// different MaxBracketSeparation or pad could make a candidate
// unreachable). A tier that resolves to zero nodes is simply never tried
// by §4.5.2's fallback loop.
func resolveTier(graph *stepgraph.StepGraph, pairs []arrowPair) []*stepgraph.GraphNode {
	var out []*stepgraph.GraphNode
	for _, p := range pairs {
		state := stepgraph.NodeState{}
		state.Feet[arrowdata.Left][0] = stepgraph.FootArrowState{Arrow: p.left, State: stepgraph.Resting}
		state.Feet[arrowdata.Left][1] = stepgraph.Invalid
		state.Feet[arrowdata.Right][0] = stepgraph.FootArrowState{Arrow: p.right, State: stepgraph.Resting}
		state.Feet[arrowdata.Right][1] = stepgraph.Invalid
		if node, ok := graph.FindNode(state); ok {
			out = append(out, node)
		}
	}
	return out
}

// SinglesToDoublesRootTiers builds the root-tier table of spec §4.5
// ("root_node_tiers: an ordered list of equivalence classes of candidate
// starting GraphNodes, most desired first... Example tiers for
// singles->doubles") against a built doubles StepGraph. The four tiers
// are, in spec's own order: centre-centre, centre-outward variants,
// two-middle-cluster variants, and singles starts in either half of the
// pad (SPEC_FULL "Root-tier table for singles→doubles": spec.md names the
// tiers without concrete arrow indices, so this is the concrete pinning
// that makes §4.5.2 fallback exercisable).
func SinglesToDoublesRootTiers(doubles *stepgraph.StepGraph) [][]*stepgraph.GraphNode {
	tiers := [][]arrowPair{
		// centre-centre: the pad's own default start stance.
		{{arrowdata.DoublesP1Right, arrowdata.DoublesP2Left}},
		// centre-outward: one foot steps out from centre-centre while the
		// other holds, in either direction.
		{
			{arrowdata.DoublesP1Up, arrowdata.DoublesP2Left},
			{arrowdata.DoublesP1Right, arrowdata.DoublesP2Up},
			{arrowdata.DoublesP1Down, arrowdata.DoublesP2Left},
			{arrowdata.DoublesP1Right, arrowdata.DoublesP2Down},
		},
		// two-middle-cluster: both feet within the four centre panels
		// (P1Up..P2Down), never touching the outer edges.
		{
			{arrowdata.DoublesP1Up, arrowdata.DoublesP1Right},
			{arrowdata.DoublesP1Up, arrowdata.DoublesP2Down},
			{arrowdata.DoublesP2Left, arrowdata.DoublesP2Down},
		},
		// singles starts in either half: the same stance the singles pad
		// itself starts from, replayed on just one half of doubles.
		{
			{arrowdata.DoublesP1Left, arrowdata.DoublesP1Right},
			{arrowdata.DoublesP2Left, arrowdata.DoublesP2Right},
		},
	}

	var out [][]*stepgraph.GraphNode
	for _, tier := range tiers {
		if nodes := resolveTier(doubles, tier); len(nodes) > 0 {
			out = append(out, nodes)
		}
	}
	return out
}

// SamePadRootTiers builds a single-tier root list for a pad-preserving
// conversion (input pad == output pad, spec §8's "Pad-preserving
// identity" property): the only acceptable starting stance is the output
// graph's own root.
func SamePadRootTiers(graph *stepgraph.StepGraph) [][]*stepgraph.GraphNode {
	return [][]*stepgraph.GraphNode{{graph.Root}}
}
