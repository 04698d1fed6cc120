package performedchart

import (
	"testing"

	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

func TestEmitTapProducesLaneTap(t *testing.T) {
	chart := &PerformedChart{
		Steps: []StepEvent{
			{
				Position: event.NewPosition(1, 4),
				Touched: map[int]stepgraph.ArrowTouch{
					2: {Action: steptype.Tap, Annotation: stepgraph.AnnotationNormal},
				},
			},
		},
	}

	out := Emit(chart)
	if len(out) != 1 {
		t.Fatalf("got %d events, want 1", len(out))
	}
	if out[0].Kind != event.LaneTap || out[0].Lane != 2 || out[0].Annotation != event.AnnotationNormal {
		t.Errorf("got %+v, want a plain LaneTap on lane 2", out[0])
	}
}

func TestEmitHoldMarksRollAnnotation(t *testing.T) {
	chart := &PerformedChart{
		Steps: []StepEvent{
			{
				Position: event.NewPosition(0, 1),
				Touched: map[int]stepgraph.ArrowTouch{
					0: {Action: steptype.Hold, Annotation: stepgraph.AnnotationRoll},
				},
			},
		},
	}

	out := Emit(chart)
	if len(out) != 1 || out[0].Kind != event.LaneHoldStart || out[0].Annotation != event.AnnotationRoll {
		t.Fatalf("got %+v, want a LaneHoldStart tagged Roll", out)
	}
}

func TestEmitFakeAndLiftTapAnnotations(t *testing.T) {
	chart := &PerformedChart{
		Steps: []StepEvent{
			{
				Position: event.NewPosition(0, 1),
				Touched: map[int]stepgraph.ArrowTouch{
					0: {Action: steptype.Tap, Annotation: stepgraph.AnnotationFake},
					1: {Action: steptype.Tap, Annotation: stepgraph.AnnotationLift},
				},
			},
		},
	}

	out := Emit(chart)
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2", len(out))
	}
	byLane := map[int]event.OutputEvent{}
	for _, e := range out {
		byLane[e.Lane] = e
	}
	if byLane[0].Annotation != event.AnnotationFake {
		t.Errorf("lane 0 annotation = %v, want Fake", byLane[0].Annotation)
	}
	if byLane[1].Annotation != event.AnnotationLift {
		t.Errorf("lane 1 annotation = %v, want Lift", byLane[1].Annotation)
	}
}

func TestEmitReleaseProducesLaneHoldEnd(t *testing.T) {
	chart := &PerformedChart{
		Steps: []StepEvent{
			{
				Position: event.NewPosition(1, 1),
				Touched: map[int]stepgraph.ArrowTouch{
					3: {Action: steptype.Release},
				},
			},
		},
	}

	out := Emit(chart)
	if len(out) != 1 || out[0].Kind != event.LaneHoldEnd || out[0].Lane != 3 {
		t.Fatalf("got %+v, want a LaneHoldEnd on lane 3", out)
	}
}

func TestEmitIncludesMinesSortedWithSteps(t *testing.T) {
	chart := &PerformedChart{
		Steps: []StepEvent{
			{
				Position: event.NewPosition(1, 1),
				Touched: map[int]stepgraph.ArrowTouch{
					0: {Action: steptype.Tap},
				},
			},
		},
		Mines: []MinePlacement{
			{Position: event.NewPosition(1, 2), Lane: 1},
		},
	}

	out := Emit(chart)
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2", len(out))
	}
	if out[0].Kind != event.LaneMine || out[0].Lane != 1 {
		t.Errorf("event 0 = %+v, want the mine at the earlier position", out[0])
	}
	if out[1].Kind != event.LaneTap || out[1].Lane != 0 {
		t.Errorf("event 1 = %+v, want the tap at the later position", out[1])
	}
}

func TestEmitEmptyChartProducesNoEvents(t *testing.T) {
	out := Emit(&PerformedChart{})
	if len(out) != 0 {
		t.Errorf("got %d events, want 0", len(out))
	}
}
