package stepgraph

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/steptype"
)

// fillResult is one destination a StepType's fill predicate produces from
// a given source state: the GraphLink that reaches it, and the state
// itself (not yet interned into a *GraphNode — the caller does that).
type fillResult struct {
	link GraphLink
	dest NodeState
}

func relations(pad arrowdata.PadDescriptor, arrow int, foot arrowdata.Foot) arrowdata.FootRelations {
	return pad.Relations(arrow).For(foot)
}

func allIn(set arrowdata.ArrowSet, arrows []int) bool {
	for _, a := range arrows {
		if !set.Has(a) {
			return false
		}
	}
	return true
}

func anyIn(set arrowdata.ArrowSet, arrows []int) bool {
	for _, a := range arrows {
		if set.Has(a) {
			return true
		}
	}
	return false
}

func actionState(a steptype.FootAction) GraphArrowState {
	if a == steptype.Hold {
		return Held
	}
	return Resting
}

func singleSlotLink(f arrowdata.Foot, p arrowdata.FootPortion, st steptype.StepType, action steptype.FootAction) GraphLink {
	var l GraphLink
	l.Slots[f][p] = LinkSlot{Valid: true, Step: st, Action: action}
	return l
}

func bracketLink(f arrowdata.Foot, st steptype.StepType, heelAction, toeAction steptype.FootAction) GraphLink {
	var l GraphLink
	l.Slots[f][arrowdata.Heel] = LinkSlot{Valid: true, Step: st, Action: heelAction}
	l.Slots[f][arrowdata.Toe] = LinkSlot{Valid: true, Step: st, Action: toeAction}
	return l
}

// mergeLinks combines a Left-foot-only link with a Right-foot-only link
// into the single GraphLink a jump produces (spec §4.3 jump enumeration).
func mergeLinks(leftOnly, rightOnly GraphLink) GraphLink {
	var out GraphLink
	out.Slots[arrowdata.Left] = leftOnly.Slots[arrowdata.Left]
	out.Slots[arrowdata.Right] = rightOnly.Slots[arrowdata.Right]
	return out
}

func unoccupiedArrows(pad arrowdata.PadDescriptor, state NodeState) []int {
	var out []int
	for a := 0; a < pad.NumArrows; a++ {
		if _, _, ok := state.OccupiedBy(a); !ok {
			out = append(out, a)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// alreadyCrossed reports whether foot f's current arrow is crossed
// relative to the other foot's current arrows (derived from arrowdata's
// NonCrossoverPair relation rather than stored as extra node state, since
// for every pad in this package crossedness is fully determined by
// current arrow positions).
func alreadyCrossed(pad arrowdata.PadDescriptor, state NodeState, f arrowdata.Foot) bool {
	mine := state.OccupiedArrows(f)
	other := state.OccupiedArrows(f.Other())
	if len(mine) == 0 || len(other) == 0 {
		return false
	}
	for _, a := range mine {
		if !allIn(relations(pad, a, f).NonCrossoverPair, other) {
			return true
		}
	}
	return false
}

// fillSameArrow implements the SameArrow tap/hold/release preconditions
// of spec §4.3's table. Restricted to a foot with a single occupied
// portion (the "Default" portion usage steptype.SameArrow is classified
// under).
func fillSameArrow(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot) []fillResult {
	if state.Feet[foot][1].Valid() {
		return nil
	}
	src := state.Feet[foot][0]
	if !src.Valid() {
		return nil
	}
	var out []fillResult
	switch src.State {
	case Resting:
		if state.HeldAny(foot) {
			return nil
		}
		for _, a := range state.OccupiedArrows(foot.Other()) {
			if a == src.Arrow {
				return nil // target arrow resting under other foot: forbids paradiddle
			}
		}
		for _, action := range []steptype.FootAction{steptype.Tap, steptype.Hold} {
			dest := state.WithPortion(foot, 0, FootArrowState{Arrow: src.Arrow, State: actionState(action)}).Canonical()
			out = append(out, fillResult{singleSlotLink(foot, arrowdata.Heel, steptype.SameArrow, action), dest})
		}
	case Held:
		dest := state.WithPortion(foot, 0, FootArrowState{Arrow: src.Arrow, State: Resting}).Canonical()
		out = append(out, fillResult{singleSlotLink(foot, arrowdata.Heel, steptype.SameArrow, steptype.Release), dest})
	}
	return out
}

// fillNewArrow implements spec §4.3's NewArrow row.
func fillNewArrow(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot) []fillResult {
	if state.Feet[foot][1].Valid() {
		return nil
	}
	src := state.Feet[foot][0]
	if !src.Valid() || state.HeldAny(foot) {
		return nil
	}
	other := state.OccupiedArrows(foot.Other())
	srcRel := relations(pad, src.Arrow, foot)

	var out []fillResult
	for target := 0; target < pad.NumArrows; target++ {
		if target == src.Arrow || !srcRel.ValidNext.Has(target) {
			continue
		}
		if _, _, occ := state.OccupiedBy(target); occ {
			continue
		}
		targetRel := relations(pad, target, foot)
		if !allIn(targetRel.NonCrossoverPair, other) {
			continue // would be a crossover
		}
		if len(other) > 0 && !anyIn(targetRel.NonCrossoverPair, other) {
			continue // not a valid pairing with any other-foot arrow
		}
		for _, action := range []steptype.FootAction{steptype.Tap, steptype.Hold} {
			dest := state.WithPortion(foot, 0, FootArrowState{Arrow: target, State: actionState(action)}).Canonical()
			out = append(out, fillResult{singleSlotLink(foot, arrowdata.Heel, steptype.NewArrow, action), dest})
		}
	}
	return out
}

// fillCrossover implements CrossoverFront/Behind: as fillNewArrow, but the
// target must be a crossover-pairing rather than a non-crossover one, the
// body must currently be Normal, and the foot must not already be crossed
// (spec: "forbidden if other foot already crossed over in the same
// direction or body is inverted oppositely").
func fillCrossover(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot, front bool) []fillResult {
	if state.Feet[foot][1].Valid() || state.Orientation != Normal {
		return nil
	}
	src := state.Feet[foot][0]
	if !src.Valid() || state.HeldAny(foot) {
		return nil
	}
	other := state.OccupiedArrows(foot.Other())
	if len(other) == 0 || alreadyCrossed(pad, state, foot) {
		return nil
	}
	srcRel := relations(pad, src.Arrow, foot)
	st := steptype.CrossoverBehind
	if front {
		st = steptype.CrossoverFront
	}

	var out []fillResult
	for target := 0; target < pad.NumArrows; target++ {
		if target == src.Arrow || !srcRel.ValidNext.Has(target) {
			continue
		}
		if _, _, occ := state.OccupiedBy(target); occ {
			continue
		}
		targetRel := relations(pad, target, foot)
		set := targetRel.CrossoverBehind
		if front {
			set = targetRel.CrossoverFront
		}
		if !allIn(set, other) {
			continue
		}
		for _, action := range []steptype.FootAction{steptype.Tap, steptype.Hold} {
			dest := state.WithPortion(foot, 0, FootArrowState{Arrow: target, State: actionState(action)}).Canonical()
			out = append(out, fillResult{singleSlotLink(foot, arrowdata.Heel, st, action), dest})
		}
	}
	return out
}

func invertedOrientation(foot arrowdata.Foot) BodyOrientation {
	if foot == arrowdata.Left {
		return InvertedLeftOverRight
	}
	return InvertedRightOverLeft
}

// fillInvert implements InvertFront/Behind: legal from Normal, or from an
// already-matching inversion (spec: "body may only be Normal or already
// inverted in the matching orientation").
func fillInvert(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot, front bool) []fillResult {
	if state.Feet[foot][1].Valid() {
		return nil
	}
	wantOrientation := invertedOrientation(foot)
	if state.Orientation != Normal && state.Orientation != wantOrientation {
		return nil
	}
	src := state.Feet[foot][0]
	if !src.Valid() || state.HeldAny(foot) {
		return nil
	}
	other := state.OccupiedArrows(foot.Other())
	if len(other) == 0 {
		return nil
	}
	srcRel := relations(pad, src.Arrow, foot)
	st := steptype.InvertBehind
	if front {
		st = steptype.InvertFront
	}

	var out []fillResult
	for target := 0; target < pad.NumArrows; target++ {
		if target == src.Arrow || !srcRel.ValidNext.Has(target) {
			continue
		}
		if _, _, occ := state.OccupiedBy(target); occ {
			continue
		}
		targetRel := relations(pad, target, foot)
		set := targetRel.InvertBehind
		if front {
			set = targetRel.InvertFront
		}
		if !allIn(set, other) {
			continue
		}
		for _, action := range []steptype.FootAction{steptype.Tap, steptype.Hold} {
			dest := state.WithPortion(foot, 0, FootArrowState{Arrow: target, State: actionState(action)})
			dest.Orientation = wantOrientation
			dest = dest.Canonical()
			out = append(out, fillResult{singleSlotLink(foot, arrowdata.Heel, st, action), dest})
		}
	}
	return out
}

// fillFootSwap implements spec's FootSwap row and glossary entry: both
// feet end up resting on the target arrow, and orientation returns to
// Normal.
func fillFootSwap(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot) []fillResult {
	other := foot.Other()
	if state.Feet[foot][1].Valid() || state.Feet[other][1].Valid() {
		return nil
	}
	if state.HeldAny(foot) || state.HeldAny(other) {
		return nil
	}
	src := state.Feet[foot][0]
	otherState := state.Feet[other][0]
	if !src.Valid() || !otherState.Valid() || otherState.State != Resting {
		return nil
	}
	target := otherState.Arrow
	if target == src.Arrow {
		return nil
	}

	dest := state
	dest = dest.WithPortion(foot, 0, FootArrowState{Arrow: target, State: Resting})
	dest = dest.WithPortion(other, 0, FootArrowState{Arrow: target, State: Resting})
	dest.Orientation = Normal
	dest = dest.Canonical()
	return []fillResult{{singleSlotLink(foot, arrowdata.Heel, steptype.FootSwap, steptype.Tap), dest}}
}

// fillBracketEntryAware implements every arity-2 placement StepType:
// BracketHeel{New,Same}Toe{New,Same} (requireSingleBefore=false, any
// prior foot occupancy) and BracketOneArrow{Heel,Toe}{Same,New}
// (requireSingleBefore=true: the foot must not already be bracketing).
// heelNew/toeNew select whether each portion's candidate arrows are the
// unoccupied pad (New) or the foot's already-occupied arrows (Same).
func fillBracketEntryAware(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot, st steptype.StepType, heelNew, toeNew bool, maxBracketSeparation int, requireSingleBefore bool) []fillResult {
	if state.HeldAny(foot) {
		return nil
	}
	existing := state.OccupiedArrows(foot)
	if requireSingleBefore && len(existing) > 1 {
		return nil
	}

	var heelCandidates, toeCandidates []int
	if heelNew {
		heelCandidates = unoccupiedArrows(pad, state)
	} else {
		heelCandidates = existing
	}
	if toeNew {
		toeCandidates = unoccupiedArrows(pad, state)
	} else {
		toeCandidates = existing
	}

	other := state.OccupiedArrows(foot.Other())
	var out []fillResult
	for _, h := range heelCandidates {
		for _, t := range toeCandidates {
			if h == t || abs(h-t) > maxBracketSeparation {
				continue
			}
			if !relations(pad, h, foot).BracketHeelToe.Has(t) {
				continue
			}
			if len(other) > 0 {
				hRel, tRel := relations(pad, h, foot), relations(pad, t, foot)
				if !anyIn(hRel.NonCrossoverPair, other) && !anyIn(tRel.NonCrossoverPair, other) {
					continue
				}
			}
			if len(existing) > 0 {
				fromExisting := false
				for _, e := range existing {
					if relations(pad, e, foot).ValidNext.Has(h) || relations(pad, e, foot).ValidNext.Has(t) || e == h || e == t {
						fromExisting = true
						break
					}
				}
				if !fromExisting {
					continue
				}
			}
			for _, action := range []steptype.FootAction{steptype.Tap, steptype.Hold} {
				dest := state
				dest = dest.WithPortion(foot, arrowdata.Heel, FootArrowState{Arrow: h, State: actionState(action)})
				dest = dest.WithPortion(foot, arrowdata.Toe, FootArrowState{Arrow: t, State: actionState(action)})
				dest = dest.Canonical()
				out = append(out, fillResult{bracketLink(foot, st, action, action), dest})
			}
		}
	}
	return out
}

// fillBracketRelease releases both portions of a bracketing foot
// simultaneously (spec §3 GraphLink invariant: bracket releases release
// both portions at once).
func fillBracketRelease(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot) []fillResult {
	heel, toe := state.Feet[foot][0], state.Feet[foot][1]
	if !heel.Valid() || !toe.Valid() || heel.State != Held || toe.State != Held {
		return nil
	}
	dest := state
	dest = dest.WithPortion(foot, arrowdata.Heel, FootArrowState{Arrow: heel.Arrow, State: Resting})
	dest = dest.WithPortion(foot, arrowdata.Toe, FootArrowState{Arrow: toe.Arrow, State: Resting})
	dest = dest.Canonical()
	link := bracketLink(foot, steptype.BracketHeelSameToeSame, steptype.Release, steptype.Release)
	return []fillResult{{link, dest}}
}

// fillForStep dispatches to the fill predicate for a single StepType on a
// single foot (spec §4.2's "fill predicate implementing the physical
// legality of the step"). Jump enumeration (spec §4.3) composes two calls
// to this function, one per real foot.
func fillForStep(pad arrowdata.PadDescriptor, state NodeState, foot arrowdata.Foot, st steptype.StepType, maxBracketSeparation int) []fillResult {
	switch st {
	case steptype.SameArrow:
		return fillSameArrow(pad, state, foot)
	case steptype.NewArrow:
		return fillNewArrow(pad, state, foot)
	case steptype.CrossoverFront:
		return fillCrossover(pad, state, foot, true)
	case steptype.CrossoverBehind:
		return fillCrossover(pad, state, foot, false)
	case steptype.InvertFront:
		return fillInvert(pad, state, foot, true)
	case steptype.InvertBehind:
		return fillInvert(pad, state, foot, false)
	case steptype.FootSwap:
		return fillFootSwap(pad, state, foot)
	case steptype.BracketHeelNewToeNew:
		return fillBracketEntryAware(pad, state, foot, st, true, true, maxBracketSeparation, false)
	case steptype.BracketHeelNewToeSame:
		return fillBracketEntryAware(pad, state, foot, st, true, false, maxBracketSeparation, false)
	case steptype.BracketHeelSameToeNew:
		return fillBracketEntryAware(pad, state, foot, st, false, true, maxBracketSeparation, false)
	case steptype.BracketHeelSameToeSame:
		out := fillBracketEntryAware(pad, state, foot, st, false, false, maxBracketSeparation, false)
		return append(out, fillBracketRelease(pad, state, foot)...)
	case steptype.BracketOneArrowHeelSame:
		return fillBracketEntryAware(pad, state, foot, st, false, true, maxBracketSeparation, true)
	case steptype.BracketOneArrowHeelNew:
		return fillBracketEntryAware(pad, state, foot, st, true, false, maxBracketSeparation, true)
	case steptype.BracketOneArrowToeSame:
		return fillBracketEntryAware(pad, state, foot, st, true, false, maxBracketSeparation, true)
	case steptype.BracketOneArrowToeNew:
		return fillBracketEntryAware(pad, state, foot, st, false, true, maxBracketSeparation, true)
	default:
		return nil
	}
}
