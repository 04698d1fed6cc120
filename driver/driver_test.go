package driver

import (
	"context"
	"testing"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/coreconfig"
	"github.com/padflow/go-padflow/corelog"
	"github.com/padflow/go-padflow/event"
)

func tap(lane int, num, den int64) event.InputEvent {
	return event.InputEvent{Position: event.NewPosition(num, den), Kind: event.LaneTap, Lane: lane}
}

func singlesConfig(seed string) coreconfig.CoreConfig {
	return coreconfig.Build(4).SeedSource(seed).Done()
}

func doublesConfig(seed string) coreconfig.CoreConfig {
	return coreconfig.Build(8).SeedSource(seed).Done()
}

func TestProcessSongEmptyInputProducesEmptyOutput(t *testing.T) {
	pad := arrowdata.Singles()
	cfg := singlesConfig("empty.sm")
	graphs, err := BuildGraphs(context.Background(), pad, pad, cfg, nil)
	if err != nil {
		t.Fatalf("BuildGraphs: %v", err)
	}
	graphs.RootTiers = SamePadRootTiers(graphs.Output)

	out, warnings, err := ProcessSong(graphs, Song{ID: "empty"}, cfg, corelog.New(nil), "1.0.0")
	if err != nil {
		t.Fatalf("ProcessSong: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(out.Events) != 0 {
		t.Errorf("expected empty output, got %d events", len(out.Events))
	}
}

// TestPadPreservingIdentity exercises spec §8's "Pad-preserving identity"
// property: converting singles to singles with identical config
// reproduces every input step at the same position and lane.
func TestPadPreservingIdentity(t *testing.T) {
	pad := arrowdata.Singles()
	cfg := singlesConfig("identity.sm")
	graphs, err := BuildGraphs(context.Background(), pad, pad, cfg, nil)
	if err != nil {
		t.Fatalf("BuildGraphs: %v", err)
	}
	graphs.RootTiers = SamePadRootTiers(graphs.Output)

	events := []event.InputEvent{
		tap(arrowdata.SinglesLeft, 0, 4),
		tap(arrowdata.SinglesDown, 1, 4),
		tap(arrowdata.SinglesUp, 2, 4),
		tap(arrowdata.SinglesRight, 3, 4),
	}
	song := Song{ID: "identity", Events: events}

	out, _, err := ProcessSong(graphs, song, cfg, corelog.New(nil), "1.0.0")
	if err != nil {
		t.Fatalf("ProcessSong: %v", err)
	}

	var steps []event.OutputEvent
	for _, e := range out.Events {
		if e.Kind == event.LaneTap {
			steps = append(steps, e)
		}
	}
	if len(steps) != len(events) {
		t.Fatalf("got %d taps, want %d", len(steps), len(events))
	}
	for i, in := range events {
		if !steps[i].Position.Equal(in.Position) || steps[i].Lane != in.Lane {
			t.Errorf("step %d = (pos=%v, lane=%d), want (pos=%v, lane=%d)", i, steps[i].Position, steps[i].Lane, in.Position, in.Lane)
		}
	}
}

// TestSinglesToDoublesProducesOneStepPerInputStep exercises the
// singles->doubles conversion end to end, including root-tier resolution.
func TestSinglesToDoublesProducesOneStepPerInputStep(t *testing.T) {
	inputPad, outputPad := arrowdata.Singles(), arrowdata.Doubles()
	cfg := doublesConfig("s2d.sm")

	outGraphForTiers, err := BuildGraphs(context.Background(), inputPad, outputPad, cfg, nil)
	if err != nil {
		t.Fatalf("BuildGraphs: %v", err)
	}
	tiers := SinglesToDoublesRootTiers(outGraphForTiers.Output)
	if len(tiers) == 0 {
		t.Fatalf("expected at least one resolvable root tier")
	}
	outGraphForTiers.RootTiers = tiers

	events := []event.InputEvent{
		tap(arrowdata.SinglesLeft, 0, 4),
		tap(arrowdata.SinglesDown, 1, 4),
		tap(arrowdata.SinglesUp, 2, 4),
		tap(arrowdata.SinglesRight, 3, 4),
	}
	song := Song{ID: "s2d", Events: events, Author: "someone", Description: "a chart"}

	out, _, err := ProcessSong(outGraphForTiers, song, cfg, corelog.New(nil), "1.2.3")
	if err != nil {
		t.Fatalf("ProcessSong: %v", err)
	}

	tapCount := 0
	for _, e := range out.Events {
		if e.Kind == event.LaneTap {
			tapCount++
			if e.Lane < 0 || e.Lane >= outputPad.NumArrows {
				t.Errorf("output lane %d out of range for doubles", e.Lane)
			}
		}
	}
	if tapCount != len(events) {
		t.Errorf("tapCount = %d, want %d", tapCount, len(events))
	}
	if out.Author != "[PF v1.2.3] someone" {
		t.Errorf("Author = %q, want tagged", out.Author)
	}
}

// TestProcessSongDeterministic exercises spec §8's Determinism property:
// the same (events, pads, config, seed) produces a byte-identical result
// across repeated runs.
func TestProcessSongDeterministic(t *testing.T) {
	inputPad, outputPad := arrowdata.Singles(), arrowdata.Doubles()
	cfg := doublesConfig("determinism.sm")
	graphs, err := BuildGraphs(context.Background(), inputPad, outputPad, cfg, nil)
	if err != nil {
		t.Fatalf("BuildGraphs: %v", err)
	}
	graphs.RootTiers = SinglesToDoublesRootTiers(graphs.Output)

	events := []event.InputEvent{
		tap(arrowdata.SinglesLeft, 0, 4),
		tap(arrowdata.SinglesRight, 1, 4),
		tap(arrowdata.SinglesDown, 2, 4),
		tap(arrowdata.SinglesUp, 3, 4),
	}
	song := Song{ID: "determinism", Events: events}

	a, _, err := ProcessSong(graphs, song, cfg, corelog.New(nil), "1.0.0")
	if err != nil {
		t.Fatalf("ProcessSong run 1: %v", err)
	}
	b, _, err := ProcessSong(graphs, song, cfg, corelog.New(nil), "1.0.0")
	if err != nil {
		t.Fatalf("ProcessSong run 2: %v", err)
	}
	if len(a.Events) != len(b.Events) {
		t.Fatalf("event counts differ across runs: %d vs %d", len(a.Events), len(b.Events))
	}
	for i := range a.Events {
		x, y := a.Events[i], b.Events[i]
		if !x.Position.Equal(y.Position) || x.Kind != y.Kind || x.Lane != y.Lane || x.Annotation != y.Annotation {
			t.Errorf("event %d differs across runs: %+v vs %+v", i, x, y)
		}
	}
}

func TestProcessBatchRunsIndependently(t *testing.T) {
	pad := arrowdata.Singles()
	cfg := singlesConfig("batch.sm")
	graphs, err := BuildGraphs(context.Background(), pad, pad, cfg, nil)
	if err != nil {
		t.Fatalf("BuildGraphs: %v", err)
	}
	graphs.RootTiers = SamePadRootTiers(graphs.Output)

	songs := []Song{
		{ID: "good", Events: []event.InputEvent{tap(arrowdata.SinglesLeft, 0, 1)}},
		{ID: "bad-unclosed-hold", Events: []event.InputEvent{
			{Position: event.NewPosition(0, 1), Kind: event.LaneHoldStart, Lane: arrowdata.SinglesDown},
		}},
	}

	results := ProcessBatch(context.Background(), songs, graphs, cfg, corelog.New(nil), "1.0.0", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	byID := map[string]BatchResult{}
	for _, r := range results {
		byID[r.SongID] = r
	}
	if byID["good"].Err != nil {
		t.Errorf("expected song 'good' to succeed, got %v", byID["good"].Err)
	}
	if byID["bad-unclosed-hold"].Err == nil {
		t.Errorf("expected song 'bad-unclosed-hold' to fail with an ExpressionFailure")
	}
}

func TestTagVersionIsIdempotentAcrossRuns(t *testing.T) {
	author, desc := TagVersion("Alice", "A fun chart", "1.0.0")
	author2, desc2 := TagVersion(author, desc, "1.1.0")
	if author2 != "[PF v1.1.0] Alice" {
		t.Errorf("Author = %q, want re-tagged without accumulating prefixes", author2)
	}
	if desc2 != "[PF v1.1.0] A fun chart" {
		t.Errorf("Description = %q, want re-tagged without accumulating prefixes", desc2)
	}
}

func TestShouldOverwritePrefersNewerVersion(t *testing.T) {
	if !ShouldOverwrite("untagged description", "1.0.0") {
		t.Errorf("expected overwrite of an untagged existing output")
	}
	if ShouldOverwrite("[PF v1.0.0] desc", "1.0.0") {
		t.Errorf("expected no overwrite when versions match")
	}
	if ShouldOverwrite("[PF v2.0.0] desc", "1.0.0") {
		t.Errorf("expected no overwrite when existing output is newer")
	}
	if !ShouldOverwrite("[PF v1.0.0] desc", "1.1.0") {
		t.Errorf("expected overwrite when existing output is older")
	}
}
