package stepgraph

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/steptype"
)

// StepGraph is the full reachability graph of two-footed body states over
// one pad, built once per pad and shared read-only across every song a
// process converts (spec §4.3, §5).
type StepGraph struct {
	Pad  arrowdata.PadDescriptor
	Root *GraphNode

	maxBracketSeparation int
	nodes                map[NodeState]*GraphNode
	order                []*GraphNode
}

// jumpUsableTypes returns, in a fixed order, every StepType the catalogue
// marks UsableInJump (spec §4.3).
func jumpUsableTypes() []steptype.StepType {
	var out []steptype.StepType
	for _, st := range steptype.All() {
		if steptype.Lookup(st).UsableInJump {
			out = append(out, st)
		}
	}
	return out
}

// Build enumerates the complete StepGraph for pad by level-order BFS from
// the given starting stance (spec §4.3). maxBracketSeparation is the
// CoreConfig MaxBracketSeparation the resulting graph was built against;
// StepGraphs for different separations are different graphs and must not
// be mixed.
func Build(pad arrowdata.PadDescriptor, leftStart, rightStart, maxBracketSeparation int) *StepGraph {
	g := &StepGraph{
		Pad:                  pad,
		maxBracketSeparation: maxBracketSeparation,
		nodes:                make(map[NodeState]*GraphNode),
	}

	root := NodeState{}
	root.Feet[arrowdata.Left][0] = FootArrowState{Arrow: leftStart, State: Resting}
	root.Feet[arrowdata.Left][1] = Invalid
	root.Feet[arrowdata.Right][0] = FootArrowState{Arrow: rightStart, State: Resting}
	root.Feet[arrowdata.Right][1] = Invalid
	g.Root = g.intern(root.Canonical())

	expanded := make(map[*GraphNode]bool)
	frontier := []*GraphNode{g.Root}
	for len(frontier) > 0 {
		var next []*GraphNode
		for _, node := range frontier {
			if expanded[node] {
				continue
			}
			expanded[node] = true
			for _, child := range g.expand(node) {
				if !expanded[child] {
					next = append(next, child)
				}
			}
		}
		frontier = next
	}
	return g
}

// intern returns the canonical *GraphNode for state, creating it (and
// assigning it the next sequential ID) on first sight.
func (g *StepGraph) intern(state NodeState) *GraphNode {
	state = state.Canonical()
	if n, ok := g.nodes[state]; ok {
		return n
	}
	n := newGraphNode(len(g.order), state)
	g.nodes[state] = n
	g.order = append(g.order, n)
	return n
}

// expand fires every single-foot StepType for both feet, plus every
// two-foot jump in both foot orderings, from node, recording resulting
// links and returning the set of newly-or-already-interned child nodes.
func (g *StepGraph) expand(node *GraphNode) []*GraphNode {
	var children []*GraphNode
	record := func(link GraphLink, dest NodeState) {
		child := g.intern(dest)
		node.addLink(link, child)
		children = append(children, child)
	}

	for _, foot := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
		for _, st := range steptype.All() {
			for _, r := range fillForStep(g.Pad, node.State, foot, st, g.maxBracketSeparation) {
				record(r.link, r.dest)
			}
		}
	}

	usable := jumpUsableTypes()
	for _, stL := range usable {
		for _, stR := range usable {
			// Order (Left, Right): Left's fill runs against node.State, then
			// Right's runs against each of Left's resulting intermediates.
			for _, r1 := range fillForStep(g.Pad, node.State, arrowdata.Left, stL, g.maxBracketSeparation) {
				for _, r2 := range fillForStep(g.Pad, r1.dest, arrowdata.Right, stR, g.maxBracketSeparation) {
					record(mergeLinks(r1.link, r2.link), r2.dest)
				}
			}
			// Order (Right, Left): the same pair of StepTypes, but applied in
			// the opposite order, can reach destinations the first order
			// misses (spec §4.3, §8's required jump-order-completeness test).
			for _, r1 := range fillForStep(g.Pad, node.State, arrowdata.Right, stR, g.maxBracketSeparation) {
				for _, r2 := range fillForStep(g.Pad, r1.dest, arrowdata.Left, stL, g.maxBracketSeparation) {
					record(mergeLinks(r2.link, r1.link), r2.dest)
				}
			}
		}
	}
	return children
}

// AllNodes returns every node in the graph in discovery order (root
// first). The slice is owned by the graph; callers must not mutate it.
func (g *StepGraph) AllNodes() []*GraphNode {
	return g.order
}

// FindNode returns the node for state if it was reached during Build.
func (g *StepGraph) FindNode(state NodeState) (*GraphNode, bool) {
	n, ok := g.nodes[state.Canonical()]
	return n, ok
}

// NodeCount returns how many distinct body states the graph reached.
func (g *StepGraph) NodeCount() int {
	return len(g.order)
}
