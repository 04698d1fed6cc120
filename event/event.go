// Package event defines the position-tagged events the core consumes
// from and produces to the external chart format (spec §3, §6), and the
// ordering and mine-classification vocabulary shared between
// expressedchart and performedchart.
package event

import "sort"

// Kind is the closed set of event kinds the core understands. Timing
// events (TimeSignature, Tempo, Stop) pass through untouched; the
// remaining kinds are the performance events the core reasons about.
type Kind int

const (
	TimeSignature Kind = iota
	Tempo
	Stop
	LaneTap
	LaneHoldStart
	LaneHoldEnd
	LaneMine
)

func (k Kind) String() string {
	switch k {
	case TimeSignature:
		return "TimeSignature"
	case Tempo:
		return "Tempo"
	case Stop:
		return "Stop"
	case LaneTap:
		return "LaneTap"
	case LaneHoldStart:
		return "LaneHoldStart"
	case LaneHoldEnd:
		return "LaneHoldEnd"
	case LaneMine:
		return "LaneMine"
	default:
		return "Kind(invalid)"
	}
}

// IsLaneEvent reports whether k carries a Lane (as opposed to a
// pass-through timing event).
func (k Kind) IsLaneEvent() bool {
	return k == LaneTap || k == LaneHoldStart || k == LaneHoldEnd || k == LaneMine
}

// priority orders events at the same Position: releases, then mines,
// then steps (spec §3); timing events carry no footing meaning and sort
// before any of them so they never reorder relative to the step they
// annotate.
func (k Kind) priority() int {
	switch k {
	case TimeSignature, Tempo, Stop:
		return 0
	case LaneHoldEnd:
		return 1
	case LaneMine:
		return 2
	default: // LaneTap, LaneHoldStart
		return 3
	}
}

// Annotation re-colours a performance action at emission time without
// changing which StepGraph link produced it (spec §3's GraphLinkInstance,
// spec §4.5.4's PerformanceFootAction). InputEvent uses only Roll;
// OutputEvent may also carry Fake and Lift when the emitted link's
// GraphLinkInstance is annotated that way (the ExpressedChart search itself
// records only Roll annotations).
type Annotation int

const (
	AnnotationNormal Annotation = iota
	AnnotationRoll
	AnnotationFake
	AnnotationLift
)

// Payload carries a pass-through timing event's data opaquely; the core
// never interprets it, only copies it from input to output at the same
// position (spec §6).
type Payload struct {
	Raw string
}

// InputEvent is one event consumed from the external format.
type InputEvent struct {
	Position Position
	Kind     Kind

	// Lane is valid only when Kind.IsLaneEvent(); otherwise it is -1.
	Lane int

	// Annotation is valid only for LaneHoldStart, where it records
	// whether the hold is a Roll.
	Annotation Annotation

	// Payload is valid only for TimeSignature, Tempo, and Stop.
	Payload Payload
}

// OutputEvent is one event produced to the external format. It has the
// same shape as InputEvent (spec §6: "OutputChart: ordered event list of
// the same shape as InputChart").
type OutputEvent struct {
	Position   Position
	Kind       Kind
	Lane       int
	Annotation Annotation
	Payload    Payload
}

// Sort stable-sorts events by (Position, kind-priority), the ordering
// guarantee spec §5 requires of output and spec §3 requires of input
// parsing.
func Sort(events []InputEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.Position.Compare(b.Position); c != 0 {
			return c < 0
		}
		return a.Kind.priority() < b.Kind.priority()
	})
}

// SortOutput stable-sorts output events by (Position, release-before-step,
// Lane), the total order spec §4.5.4 mandates for emission ("stable-sort by
// (position, release-before-step, lane)"). Lane is the required final
// tiebreaker: without it, two events sharing a Position and priority (both
// taps of a jump, two mines at one position) would retain whatever order
// they were appended to the slice in, which for map-sourced input is
// randomized per run and breaks the spec §8 Determinism invariant.
func SortOutput(events []OutputEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.Position.Compare(b.Position); c != 0 {
			return c < 0
		}
		if a.Kind.priority() != b.Kind.priority() {
			return a.Kind.priority() < b.Kind.priority()
		}
		return a.Lane < b.Lane
	})
}

// Partition splits the events sharing one Position into releases, mines,
// and steps, the order spec §4.4 requires ExpressedChart search to apply
// them in.
func Partition(atPosition []InputEvent) (releases, mines, steps []InputEvent) {
	for _, e := range atPosition {
		switch e.Kind {
		case LaneHoldEnd:
			releases = append(releases, e)
		case LaneMine:
			mines = append(mines, e)
		default:
			steps = append(steps, e)
		}
	}
	return releases, mines, steps
}

// GroupByPosition splits a Sort-ed event slice into consecutive runs that
// share the same Position, in order.
func GroupByPosition(events []InputEvent) [][]InputEvent {
	var groups [][]InputEvent
	var current []InputEvent
	for _, e := range events {
		if len(current) > 0 && !current[0].Position.Equal(e.Position) {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, e)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
