package expressedchart

import (
	"testing"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
)

func singlesGraph(t *testing.T) *stepgraph.StepGraph {
	t.Helper()
	pad := arrowdata.Singles()
	return stepgraph.Build(pad, arrowdata.SinglesLeft, arrowdata.SinglesRight, 1)
}

func tap(lane int, num, den int64) event.InputEvent {
	return event.InputEvent{Position: event.NewPosition(num, den), Kind: event.LaneTap, Lane: lane}
}

func holdStart(lane int, num, den int64) event.InputEvent {
	return event.InputEvent{Position: event.NewPosition(num, den), Kind: event.LaneHoldStart, Lane: lane}
}

func holdEnd(lane int, num, den int64) event.InputEvent {
	return event.InputEvent{Position: event.NewPosition(num, den), Kind: event.LaneHoldEnd, Lane: lane}
}

func mine(lane int, num, den int64) event.InputEvent {
	return event.InputEvent{Position: event.NewPosition(num, den), Kind: event.LaneMine, Lane: lane}
}

func TestExpressEmptyInput(t *testing.T) {
	g := singlesGraph(t)
	chart, err := Express(nil, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Steps) != 0 || len(chart.Mines) != 0 {
		t.Fatalf("expected an empty chart, got %+v", chart)
	}
}

func TestExpressRejectsUnclosedHold(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{holdStart(arrowdata.SinglesDown, 0, 1)}
	if _, err := Express(events, g); err == nil {
		t.Fatalf("expected an error for an input that ends mid-hold")
	}
}

func TestExpressRejectsDoubleHoldStart(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		holdStart(arrowdata.SinglesDown, 0, 1),
		holdStart(arrowdata.SinglesDown, 1, 4),
		holdEnd(arrowdata.SinglesDown, 1, 2),
	}
	if _, err := Express(events, g); err == nil {
		t.Fatalf("expected an error for a HoldStart on an already-held lane")
	}
}

func TestExpressRejectsUnmatchedHoldEnd(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{holdEnd(arrowdata.SinglesDown, 0, 1)}
	if _, err := Express(events, g); err == nil {
		t.Fatalf("expected an error for a HoldEnd with no matching HoldStart")
	}
}

func TestExpressAlternatingTapsProduceOneStepPerPosition(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		tap(arrowdata.SinglesDown, 0, 1),
		tap(arrowdata.SinglesUp, 1, 4),
		tap(arrowdata.SinglesDown, 1, 2),
	}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Steps) != 3 {
		t.Fatalf("expected 3 step events, got %d: %+v", len(chart.Steps), chart.Steps)
	}
	for i, want := range []event.Position{event.NewPosition(0, 1), event.NewPosition(1, 4), event.NewPosition(1, 2)} {
		if !chart.Steps[i].Position.Equal(want) {
			t.Errorf("step %d position = %v, want %v", i, chart.Steps[i].Position, want)
		}
	}
}

func TestExpressHoldThenReleaseProducesTwoSteps(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		holdStart(arrowdata.SinglesLeft, 0, 1),
		holdEnd(arrowdata.SinglesLeft, 1, 1),
	}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Steps) != 2 {
		t.Fatalf("expected a hold step and a release step, got %d: %+v", len(chart.Steps), chart.Steps)
	}
	if chart.Steps[1].Incoming.Link.IsRelease() == false {
		t.Errorf("second step should be the release, got %+v", chart.Steps[1].Incoming.Link)
	}
}

func TestExpressRejectsUnreachableJump(t *testing.T) {
	g := singlesGraph(t)
	// Tapping every lane at once from the start stance is not a reachable
	// two-footed move on a 4-panel pad: each foot would have to bracket an
	// adjacent pair that includes its own starting arrow, and no
	// jump-usable bracket StepType lands on one occupied and one new arrow.
	events := []event.InputEvent{
		tap(arrowdata.SinglesLeft, 0, 1),
		tap(arrowdata.SinglesDown, 0, 1),
		tap(arrowdata.SinglesUp, 0, 1),
		tap(arrowdata.SinglesRight, 0, 1),
	}
	if _, err := Express(events, g); err == nil {
		t.Fatalf("expected an ExpressionFailure for an unreachable 4-arrow jump")
	}
}

func TestClassifyMinesNoArrowForIsolatedMine(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{mine(arrowdata.SinglesUp, 0, 1)}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Mines) != 1 {
		t.Fatalf("expected one mine classification, got %d", len(chart.Mines))
	}
	if chart.Mines[0].Kind != event.NoArrow {
		t.Errorf("Kind = %v, want NoArrow", chart.Mines[0].Kind)
	}
	if chart.Mines[0].HasPairedFoot {
		t.Errorf("expected no paired foot for an isolated mine")
	}
}

func TestClassifyMinesAfterArrowFollowsAReleaseBeforeIt(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		holdStart(arrowdata.SinglesLeft, 0, 1),
		holdEnd(arrowdata.SinglesLeft, 1, 4),
		mine(arrowdata.SinglesUp, 1, 2),
	}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Mines) != 1 {
		t.Fatalf("expected one mine classification, got %d", len(chart.Mines))
	}
	m := chart.Mines[0]
	if m.Kind != event.AfterArrow {
		t.Errorf("Kind = %v, want AfterArrow", m.Kind)
	}
	if m.NthClosest != 1 {
		t.Errorf("NthClosest = %d, want 1 (only one arrow was released before the mine)", m.NthClosest)
	}
}

func TestClassifyMinesBeforeArrowFollowsAStepAfterIt(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		mine(arrowdata.SinglesUp, 0, 1),
		tap(arrowdata.SinglesDown, 1, 2),
	}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Mines) != 1 {
		t.Fatalf("expected one mine classification, got %d", len(chart.Mines))
	}
	if chart.Mines[0].Kind != event.BeforeArrow {
		t.Errorf("Kind = %v, want BeforeArrow", chart.Mines[0].Kind)
	}
	if chart.Mines[0].NthClosest != 1 {
		t.Errorf("NthClosest = %d, want 1 (only one arrow steps after the mine)", chart.Mines[0].NthClosest)
	}
}

func TestClassifyMinesRankDistinctArrowsInASimultaneousRelease(t *testing.T) {
	g := singlesGraph(t)
	events := []event.InputEvent{
		holdStart(arrowdata.SinglesLeft, 0, 1),
		holdStart(arrowdata.SinglesRight, 1, 4),
		holdEnd(arrowdata.SinglesLeft, 1, 2),
		holdEnd(arrowdata.SinglesRight, 1, 2),
		mine(arrowdata.SinglesDown, 3, 4),
		mine(arrowdata.SinglesUp, 3, 4),
	}
	chart, err := Express(events, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Mines) != 2 {
		t.Fatalf("expected two mine classifications, got %d", len(chart.Mines))
	}
	ranks := map[int]bool{}
	for _, m := range chart.Mines {
		if m.Kind != event.AfterArrow {
			t.Errorf("Kind = %v, want AfterArrow", m.Kind)
		}
		ranks[m.NthClosest] = true
	}
	if !ranks[1] || !ranks[2] {
		t.Errorf("expected the two mines to claim distinct ranks 1 and 2, got %+v", chart.Mines)
	}
}
