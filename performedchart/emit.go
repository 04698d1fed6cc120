package performedchart

import (
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// Emit walks chart's resolved step path and mine placements and produces
// the performance OutputEvents of spec §4.5.4: one event per non-None
// PerformanceFootAction, plus one LaneMine per placed mine, stable-sorted
// by (position, release-before-step, lane). The per-step lanes come out of
// a map, so SortOutput's lane tiebreaker — not just stable-sort over
// append order — is what makes this total order independent of Go's
// randomized map iteration. Pass-through timing events (TimeSignature,
// Tempo, Stop) are not chart's concern — spec §6 has the driver copy them
// from the input at the same position, since ExpressedChart/PerformedChart
// never carry them in the first place.
func Emit(chart *PerformedChart) []event.OutputEvent {
	var out []event.OutputEvent
	for _, step := range chart.Steps {
		for lane, touch := range step.Touched {
			kind, annotation, ok := performanceEvent(touch)
			if !ok {
				continue
			}
			out = append(out, event.OutputEvent{
				Position:   step.Position,
				Kind:       kind,
				Lane:       lane,
				Annotation: annotation,
			})
		}
	}
	for _, m := range chart.Mines {
		out = append(out, event.OutputEvent{Position: m.Position, Kind: event.LaneMine, Lane: m.Lane})
	}
	event.SortOutput(out)
	return out
}

// performanceEvent maps one ArrowTouch to the (Kind, Annotation) pair spec
// §4.5.4 prescribes: Release -> Release; Hold -> Roll if the instance
// marks it a roll, else Hold; Tap -> Fake if marked Fake, Lift if marked
// Lift, else a plain Tap. ok is false only for a FootAction the catalogue
// never actually produces (defensive; see steptype.FootAction).
func performanceEvent(t stepgraph.ArrowTouch) (event.Kind, event.Annotation, bool) {
	switch t.Action {
	case steptype.Release:
		return event.LaneHoldEnd, event.AnnotationNormal, true
	case steptype.Hold:
		if t.Annotation == stepgraph.AnnotationRoll {
			return event.LaneHoldStart, event.AnnotationRoll, true
		}
		return event.LaneHoldStart, event.AnnotationNormal, true
	case steptype.Tap:
		switch t.Annotation {
		case stepgraph.AnnotationFake:
			return event.LaneTap, event.AnnotationFake, true
		case stepgraph.AnnotationLift:
			return event.LaneTap, event.AnnotationLift, true
		default:
			return event.LaneTap, event.AnnotationNormal, true
		}
	default:
		return 0, 0, false
	}
}
