package expressedchart

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/steptype"
)

// stepCost implements spec §4.4's cost function: "the heart of the
// subsystem". It is additive and per-link; every branch below corresponds
// to a named rule in the spec's cost table. Where the spec describes a
// rule narratively rather than as a formula (the exact tie-break order
// among mine-hint/release-asymmetry/bracket-distance for a jump-derived
// NewArrow, the precise "other foot could bracket" predicate) this
// implementation picks the later, richer generation the spec directs
// implementers to adopt (spec §9 Open Questions) and encodes it as a
// concrete, monotonic approximation.
func stepCost(parent *searchNode, pad arrowdata.PadDescriptor, feet []arrowdata.Foot, stepOf map[arrowdata.Foot]steptype.StepType, touched map[int]steptype.FootAction, mineIndex map[int][]event.Position, pos event.Position) float64 {
	if len(feet) == 2 {
		return twoFootCost(pad, stepOf, touched)
	}
	f := feet[0]
	st := stepOf[f]
	base := singleFootBase(parent, pad, f, st, touched, mineIndex, pos)
	return base + streakPenalty(parent, f)
}

// streakPenalty is the "double/triple/quadruple step" escalation: it
// applies to every single-foot step type alike (spec §8 scenario 3
// requires SameArrow reiterations on a held lane to increase in cost the
// same way NewArrow ones do).
func streakPenalty(parent *searchNode, f arrowdata.Foot) float64 {
	if !parent.hasLastFoot || parent.lastFoot != f || parent.lastWasJump {
		return 0
	}
	streak := parent.sameFootStreak + 1
	return float64(streak) * 5
}

func singleFootBase(parent *searchNode, pad arrowdata.PadDescriptor, f arrowdata.Foot, st steptype.StepType, touched map[int]steptype.FootAction, mineIndex map[int][]event.Position, pos event.Position) float64 {
	other := f.Other()
	switch st {
	case steptype.SameArrow:
		cost := 0.0
		if !parent.node.State.HeldAny(other) && parent.node.State.HeldAny(f) {
			cost += 3
		}
		return cost

	case steptype.NewArrow:
		return newArrowCost(parent, pad, f, touched, mineIndex, pos)

	case steptype.CrossoverFront, steptype.CrossoverBehind:
		cost := 6.0
		if isDoubleStep(parent, f) && !anyMineHint(touched, mineIndex, pos) {
			cost += 10
		}
		return cost

	case steptype.InvertFront, steptype.InvertBehind:
		cost := 8.0
		if parent.lastFootSwap {
			cost += 15
		}
		if isDoubleStep(parent, f) && !anyMineHint(touched, mineIndex, pos) {
			cost += 10
		}
		return cost

	case steptype.FootSwap:
		cost := 10.0
		if anyMineHint(touched, mineIndex, pos) || mineHintOnFreeLane(pad, parent, mineIndex, pos) || parent.lastFootSwap {
			cost = 1
		}
		if isDoubleStep(parent, f) && !anyMineHint(touched, mineIndex, pos) {
			cost += 20
		}
		return cost

	case steptype.BracketHeelSameToeSame:
		return 0 // re-tap of a resting bracket, spec's "special low cost"

	case steptype.BracketHeelNewToeNew, steptype.BracketHeelNewToeSame, steptype.BracketHeelSameToeNew,
		steptype.BracketOneArrowHeelSame, steptype.BracketOneArrowHeelNew,
		steptype.BracketOneArrowToeSame, steptype.BracketOneArrowToeNew:
		return bracketEntryCost(parent, f)

	default:
		return 4
	}
}

// newArrowCost implements spec §4.4's NewArrow row. Alternating feet with
// no other penalty is the baseline (cost 0, spec §8 scenario 1). Whether
// the alternative foot could legally have taken the same arrow is already
// decided structurally by what links the StepGraph actually offers (an
// infeasible alternative never reaches this function as a competing
// candidate), so only genuinely competing conditions are priced here.
func newArrowCost(parent *searchNode, pad arrowdata.PadDescriptor, f arrowdata.Foot, touched map[int]steptype.FootAction, mineIndex map[int][]event.Position, pos event.Position) float64 {
	cost := 0.0
	other := f.Other()
	if parent.node.State.HeldAny(f) && parent.node.State.HeldAny(other) {
		cost += 2
	}

	if parent.lastWasJump {
		arrow := soleArrow(touched)
		otherArrows := parent.node.State.OccupiedArrows(other)
		if len(otherArrows) > 0 {
			otherWouldCross := false
			for _, oa := range otherArrows {
				if !pad.Relations(arrow).For(other).NonCrossoverPair.Has(oa) {
					otherWouldCross = true
				}
			}
			switch {
			case otherWouldCross:
				// Prefer this foot: cheapest, no addition (spec §8 scenario 2).
			case mineHintNear(mineIndex, arrow, pos) && !mineHintNearAny(mineIndex, otherArrows, pos):
				// Mine hint favors this foot: cheapest.
			case !parent.hasLastRelease[f] || !parent.hasLastRelease[other]:
				cost += 1
			case parent.lastRelease[f].Before(parent.lastRelease[other]):
				cost += 1 // the other foot released later: it "stays", so this foot taking the new arrow is natural
			default:
				cost += 4 // this foot released later or at the same time: it "stays", or the choice is ambiguous
			}
		}
	}
	return cost
}

func bracketEntryCost(parent *searchNode, f arrowdata.Foot) float64 {
	other := f.Other()
	cost := 4.0
	if parent.node.State.HeldAll(other) && len(parent.node.State.OccupiedArrows(other)) == 2 {
		cost = 0 // other foot's existing bracket hold forces this one
	} else if parent.hasLastFoot && parent.lastFoot == other {
		cost = 2 // preferred by movement: the other foot just acted
	}
	if isDoubleStep(parent, f) {
		cost += 8
	}
	return cost
}

// twoFootCost implements spec §4.4's jump/bracket-pair row.
func twoFootCost(pad arrowdata.PadDescriptor, stepOf map[arrowdata.Foot]steptype.StepType, touched map[int]steptype.FootAction) float64 {
	for _, st := range stepOf {
		if steptype.Lookup(st).IsBracket() {
			return 2 // three/four-arrow simultaneous event: flat low cost
		}
	}
	newCount := 0
	for _, st := range stepOf {
		if st != steptype.SameArrow {
			newCount++
		}
	}
	switch newCount {
	case 0:
		return 0 // both same-arrow: a pure re-tap jump
	case 1:
		return 2
	default:
		return 3
	}
}

func isDoubleStep(parent *searchNode, f arrowdata.Foot) bool {
	return parent.hasLastFoot && parent.lastFoot == f && !parent.lastWasJump
}

func soleArrow(touched map[int]steptype.FootAction) int {
	for a := range touched {
		return a
	}
	return -1
}

func mineHintNear(mineIndex map[int][]event.Position, arrow int, pos event.Position) bool {
	for _, mp := range mineIndex[arrow] {
		if mp.Before(pos) {
			return true
		}
	}
	return false
}

func mineHintNearAny(mineIndex map[int][]event.Position, arrows []int, pos event.Position) bool {
	for _, a := range arrows {
		if mineHintNear(mineIndex, a, pos) {
			return true
		}
	}
	return false
}

func anyMineHint(touched map[int]steptype.FootAction, mineIndex map[int][]event.Position, pos event.Position) bool {
	for a := range touched {
		if mineHintNear(mineIndex, a, pos) {
			return true
		}
	}
	return false
}

// mineHintOnFreeLane looks for the authoring convention spec §4.4 names
// for FootSwap: "a mine on another free lane hints it". A lane is free if
// neither foot currently occupies it.
func mineHintOnFreeLane(pad arrowdata.PadDescriptor, parent *searchNode, mineIndex map[int][]event.Position, pos event.Position) bool {
	for lane := 0; lane < pad.NumArrows; lane++ {
		if _, _, occ := parent.node.State.OccupiedBy(lane); occ {
			continue
		}
		if mineHintNear(mineIndex, lane, pos) {
			return true
		}
	}
	return false
}
