package stepgraph

import (
	"testing"

	"github.com/padflow/go-padflow/arrowdata"
)

func buildSingles(t *testing.T) *StepGraph {
	t.Helper()
	pad := arrowdata.Singles()
	return Build(pad, arrowdata.SinglesLeft, arrowdata.SinglesRight, 1)
}

func TestBuildReachesMoreThanRoot(t *testing.T) {
	g := buildSingles(t)
	if g.NodeCount() < 10 {
		t.Fatalf("expected a substantial reachability set from the singles start stance, got %d nodes", g.NodeCount())
	}
	if len(g.Root.Links) == 0 {
		t.Fatalf("root node has no outgoing links")
	}
}

func TestCanonicalizationKeepsLowerArrowInPortionZero(t *testing.T) {
	g := buildSingles(t)
	for _, n := range g.AllNodes() {
		for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
			heel, toe := n.State.Feet[f][0], n.State.Feet[f][1]
			if heel.Valid() && toe.Valid() && heel.Arrow > toe.Arrow {
				t.Errorf("node %d: foot %v not canonicalised: heel=%d toe=%d", n.ID, f, heel.Arrow, toe.Arrow)
			}
			if !heel.Valid() && toe.Valid() {
				t.Errorf("node %d: foot %v has an occupied portion 1 with an empty portion 0", n.ID, f)
			}
		}
	}
}

// TestJumpOrderCompletenessMatters constructs a StepGraph where the two
// requested jump orderings are known to reach different destination sets,
// per spec §8's required test: a foot that must step before the other can
// legally follow it (the second foot's legality depends on where the
// first foot just landed).
func TestJumpOrderCompletenessMatters(t *testing.T) {
	g := buildSingles(t)
	leftOrderOnly := map[NodeState]bool{}
	rightOrderOnly := map[NodeState]bool{}

	state := g.Root.State
	usable := jumpUsableTypes()
	for _, stL := range usable {
		for _, r1 := range fillForStep(g.Pad, state, arrowdata.Left, stL, g.maxBracketSeparation) {
			for _, stR := range usable {
				for _, r2 := range fillForStep(g.Pad, r1.dest, arrowdata.Right, stR, g.maxBracketSeparation) {
					leftOrderOnly[r2.dest.Canonical()] = true
				}
			}
		}
	}
	for _, stR := range usable {
		for _, r1 := range fillForStep(g.Pad, state, arrowdata.Right, stR, g.maxBracketSeparation) {
			for _, stL := range usable {
				for _, r2 := range fillForStep(g.Pad, r1.dest, arrowdata.Left, stL, g.maxBracketSeparation) {
					rightOrderOnly[r2.dest.Canonical()] = true
				}
			}
		}
	}

	if len(leftOrderOnly) == 0 || len(rightOrderOnly) == 0 {
		t.Fatalf("expected both jump orderings to reach at least one destination from the root")
	}

	missedByLeftOrder := 0
	for dest := range rightOrderOnly {
		if !leftOrderOnly[dest] {
			missedByLeftOrder++
		}
		if _, ok := g.FindNode(dest); !ok {
			t.Errorf("destination %+v reached by the (Right, Left) ordering is missing from the built graph", dest)
		}
	}
	if missedByLeftOrder == 0 {
		t.Errorf("expected the (Right, Left) ordering to reach a destination the (Left, Right) ordering misses")
	}
}

func TestFindNodeRoundTrips(t *testing.T) {
	g := buildSingles(t)
	n, ok := g.FindNode(g.Root.State)
	if !ok || n != g.Root {
		t.Fatalf("FindNode(root state) = %v, %v; want root, true", n, ok)
	}
}
