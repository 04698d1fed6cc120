// Package stepgraph builds the full state-transition graph of two-footed
// body states over a pad (spec §4.3) and enumerates the StepType
// catalogue's legality rules (spec §4.2) against arrowdata's relation
// tables (spec §4.1) to do it. The three are one tightly coupled
// subsystem, the way spec §1 describes them.
package stepgraph

import (
	"fmt"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/steptype"
)

// GraphArrowState is whether a foot-portion is resting or holding on its
// arrow. Rolls are represented identically to Holds here (spec §3) and
// distinguished only by a GraphLinkInstance annotation.
type GraphArrowState int

const (
	Resting GraphArrowState = iota
	Held
)

// FootArrowState is one foot-portion's occupancy: an arrow plus whether
// it is resting or held, or the sentinel Invalid (no arrow).
type FootArrowState struct {
	Arrow int
	State GraphArrowState
}

// Invalid is the sentinel FootArrowState for an unoccupied portion.
var Invalid = FootArrowState{Arrow: -1, State: Resting}

// Valid reports whether this portion occupies an arrow.
func (f FootArrowState) Valid() bool { return f.Arrow >= 0 }

// BodyOrientation is the torso's twist relative to the feet (spec §3).
type BodyOrientation int

const (
	Normal BodyOrientation = iota
	InvertedLeftOverRight
	InvertedRightOverLeft
)

// NodeState is the comparable (and hence hashable-by-value) body state:
// two feet of up to two portions each, plus orientation. Canonical()
// normalizes it so that GraphNode equality is structural equality of this
// type (spec §3, §8 "GraphNode canonicalisation").
type NodeState struct {
	// Feet[foot][portion].
	Feet        [2][2]FootArrowState
	Orientation BodyOrientation
}

// Portion returns the FootArrowState for (foot, portion).
func (s NodeState) Portion(f arrowdata.Foot, p arrowdata.FootPortion) FootArrowState {
	return s.Feet[f][p]
}

// WithPortion returns a copy of s with (foot, portion) set, before
// canonicalisation.
func (s NodeState) WithPortion(f arrowdata.Foot, p arrowdata.FootPortion, v FootArrowState) NodeState {
	out := s
	out.Feet[f][p] = v
	return out
}

// Canonical enforces spec §3/§8's invariant: for a fixed foot, if both
// portions are occupied the lower arrow index is stored in portion 0.
func (s NodeState) Canonical() NodeState {
	out := s
	for f := arrowdata.Left; f <= arrowdata.Right; f++ {
		heel, toe := out.Feet[f][0], out.Feet[f][1]
		if heel.Valid() && toe.Valid() && heel.Arrow > toe.Arrow {
			out.Feet[f][0], out.Feet[f][1] = toe, heel
		}
		if !heel.Valid() && toe.Valid() {
			out.Feet[f][0], out.Feet[f][1] = toe, Invalid
		}
	}
	return out
}

// OccupiedArrows returns the arrows foot f occupies (0, 1, or 2 of them),
// in portion order.
func (s NodeState) OccupiedArrows(f arrowdata.Foot) []int {
	var out []int
	for p := 0; p < 2; p++ {
		if v := s.Feet[f][p]; v.Valid() {
			out = append(out, v.Arrow)
		}
	}
	return out
}

// HeldAny reports whether any portion of foot f is Held.
func (s NodeState) HeldAny(f arrowdata.Foot) bool {
	for p := 0; p < 2; p++ {
		if v := s.Feet[f][p]; v.Valid() && v.State == Held {
			return true
		}
	}
	return false
}

// HeldAll reports whether every occupied portion of foot f is Held.
func (s NodeState) HeldAll(f arrowdata.Foot) bool {
	any := false
	for p := 0; p < 2; p++ {
		if v := s.Feet[f][p]; v.Valid() {
			any = true
			if v.State != Held {
				return false
			}
		}
	}
	return any
}

// OccupiedBy reports which foot/portion (if any) occupies arrow a,
// regardless of Resting/Held.
func (s NodeState) OccupiedBy(a int) (f arrowdata.Foot, p int, ok bool) {
	for foot := arrowdata.Left; foot <= arrowdata.Right; foot++ {
		for portion := 0; portion < 2; portion++ {
			v := s.Feet[foot][portion]
			if v.Valid() && v.Arrow == a {
				return foot, portion, true
			}
		}
	}
	return 0, 0, false
}

// LinkSlot is one (foot, portion) cell of a GraphLink.
type LinkSlot struct {
	Valid  bool
	Step   steptype.StepType
	Action steptype.FootAction
}

// GraphLink is a (Foot x FootPortion) -> optional (StepType, FootAction)
// table, spec §3. It is a plain comparable struct so it can key a map
// directly (GraphNode.Links below), the way reachability.Edge's
// Transition string keys dedup maps in the teacher.
type GraphLink struct {
	Slots [2][2]LinkSlot
}

// Slot returns the slot for (foot, portion).
func (l GraphLink) Slot(f arrowdata.Foot, p arrowdata.FootPortion) LinkSlot {
	return l.Slots[f][p]
}

// IsRelease reports whether any valid slot in the link carries a Release
// action. Spec §3 forbids mixing Release and non-Release on one foot; the
// constructors in fill.go never produce a link that would violate that.
func (l GraphLink) IsRelease() bool {
	for f := 0; f < 2; f++ {
		for p := 0; p < 2; p++ {
			s := l.Slots[f][p]
			if s.Valid && s.Action == steptype.Release {
				return true
			}
		}
	}
	return false
}

func (l GraphLink) String() string {
	return fmt.Sprintf("GraphLink%v", l.Slots)
}

// InstanceAnnotation re-colours an emitted action without changing graph
// structure (spec §3).
type InstanceAnnotation int

const (
	AnnotationNormal InstanceAnnotation = iota
	AnnotationRoll
	AnnotationFake
	AnnotationLift
)

// GraphLinkInstance is a GraphLink plus per-slot instance annotations
// (spec §3: composition, not inheritance, per DESIGN notes §9).
type GraphLinkInstance struct {
	Link        GraphLink
	Annotations [2][2]InstanceAnnotation
}

// GraphNode is one reachable two-footed body state. Nodes are
// arena-owned by the StepGraph that built them (spec §9: "never store
// owning pointers between graph entities" other than through the arena);
// Links holds, per outgoing GraphLink, the ordered set of GraphNodes it
// reaches — the graph has cycles (a SameArrow tap can lead back to the
// same node), so Links is populated after the node itself is interned.
type GraphNode struct {
	ID    int
	State NodeState
	Links map[GraphLink][]*GraphNode
}

func newGraphNode(id int, state NodeState) *GraphNode {
	return &GraphNode{ID: id, State: state, Links: make(map[GraphLink][]*GraphNode)}
}

// addLink records that firing link from n reaches to, without duplicating
// an existing (link, to) pair (GraphNode "ordered set" per spec §3).
func (n *GraphNode) addLink(link GraphLink, to *GraphNode) {
	for _, existing := range n.Links[link] {
		if existing == to {
			return
		}
	}
	n.Links[link] = append(n.Links[link], to)
}
