package stepgraph

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/steptype"
)

// ImpliedArrowActions reports, for a single traversal of link from parent to
// child, which FootAction each touched arrow received. A foot contributes
// to the result only if link carries a valid slot for it; per spec §3 both
// portions of a bracketing foot always share one FootAction, so the first
// valid slot's action speaks for the whole foot.
//
// Release actions are reported against the arrow the releasing portion
// already occupied in parent (a release never changes which arrow a
// portion sits on); Tap/Hold actions are reported against the arrows the
// foot occupies in child, since those are the portion's new landing spots
// and parent/child foot-portion indices can disagree after
// NodeState.Canonical reorders them.
func ImpliedArrowActions(parent *GraphNode, link GraphLink, child *GraphNode) map[int]steptype.FootAction {
	out := make(map[int]steptype.FootAction, 2)
	for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
		heel, toe := link.Slot(f, arrowdata.Heel), link.Slot(f, arrowdata.Toe)
		if !heel.Valid && !toe.Valid {
			continue
		}
		action := heel.Action
		if !heel.Valid {
			action = toe.Action
		}
		if action == steptype.Release {
			for _, a := range parent.State.OccupiedArrows(f) {
				out[a] = steptype.Release
			}
			continue
		}
		for _, a := range child.State.OccupiedArrows(f) {
			out[a] = action
		}
	}
	return out
}

// ArrowTouch is one arrow's FootAction plus the instance annotation that
// re-colours it at emission time (spec §4.5.4).
type ArrowTouch struct {
	Action     steptype.FootAction
	Annotation InstanceAnnotation
}

// ImpliedArrowTouches is ImpliedArrowActions plus, for each touched arrow,
// the InstanceAnnotation instance carries for the (foot, portion) that
// landed on it — Release actions read the annotation from the portion's
// position in parent (where it was still occupied), Tap/Hold actions from
// its position in child, mirroring ImpliedArrowActions' own parent/child
// split.
func ImpliedArrowTouches(parent *GraphNode, instance GraphLinkInstance, child *GraphNode) map[int]ArrowTouch {
	link := instance.Link
	out := make(map[int]ArrowTouch, 2)
	for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
		heel, toe := link.Slot(f, arrowdata.Heel), link.Slot(f, arrowdata.Toe)
		if !heel.Valid && !toe.Valid {
			continue
		}
		action := heel.Action
		if !heel.Valid {
			action = toe.Action
		}
		if action == steptype.Release {
			for p := 0; p < 2; p++ {
				v := parent.State.Feet[f][p]
				if v.Valid() {
					out[v.Arrow] = ArrowTouch{Action: steptype.Release, Annotation: instance.Annotations[f][p]}
				}
			}
			continue
		}
		for p := 0; p < 2; p++ {
			v := child.State.Feet[f][p]
			if v.Valid() {
				out[v.Arrow] = ArrowTouch{Action: action, Annotation: instance.Annotations[f][p]}
			}
		}
	}
	return out
}

// TouchedFeet reports which feet have at least one valid slot in link, and
// the StepType of each foot's first valid slot (Heel, else Toe); portions
// of one foot always agree on StepType per spec §3, so that one value
// represents the whole foot.
func TouchedFeet(link GraphLink) (feet []arrowdata.Foot, stepOf map[arrowdata.Foot]steptype.StepType) {
	stepOf = make(map[arrowdata.Foot]steptype.StepType, 2)
	for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
		heel, toe := link.Slot(f, arrowdata.Heel), link.Slot(f, arrowdata.Toe)
		if !heel.Valid && !toe.Valid {
			continue
		}
		feet = append(feet, f)
		if heel.Valid {
			stepOf[f] = heel.Step
		} else {
			stepOf[f] = toe.Step
		}
	}
	return feet, stepOf
}
