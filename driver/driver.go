// Package driver is the thin orchestration layer of spec §2 (component
// 6, "Driver"): it reads an input chart's events in, runs the three core
// searches (StepGraph is already built; ExpressedChart then
// PerformedChart), and produces an output chart's events, handling the
// per-song and per-batch concurrency spec §5 describes. File I/O, chart
// selection, and HTML rendering are explicitly out of core scope (spec
// §1, §6) and are not this package's job either — ProcessSong and
// ProcessBatch take and return in-memory event slices; a caller (like
// cmd/padflow) is the one that reads/writes files.
package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/coreconfig"
	"github.com/padflow/go-padflow/corelog"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/expressedchart"
	"github.com/padflow/go-padflow/performedchart"
	"github.com/padflow/go-padflow/stepgraph"
)

// Graphs holds the input and output pads' StepGraphs plus the
// PerformedChart substitution cache built against the output graph —
// everything that is built once per pad configuration and shared
// read-only across every song that configuration converts (spec §3
// Lifecycle, §5 "ArrowData, StepType catalogue, and each built StepGraph
// are read-only after initialisation and safe to share across threads").
type Graphs struct {
	Input  *stepgraph.StepGraph
	Output *stepgraph.StepGraph
	Cache  *performedchart.SubstitutionCache

	// RootTiers is the output pad's root-tier table for PerformedChart
	// search (spec §4.5). Callers building Graphs for a pad-preserving
	// conversion should pass SamePadRootTiers(Output); a singles->doubles
	// conversion passes SinglesToDoublesRootTiers(Output).
	RootTiers [][]*stepgraph.GraphNode
}

// BuildGraphs builds the input and output StepGraphs in parallel — spec
// §5: "the two StepGraphs... may be built in parallel on separate worker
// threads since they share no mutable state" — then builds the output
// graph's substitution cache, which depends on both graph and cfg and so
// cannot start until the output graph is done.
func BuildGraphs(ctx context.Context, inputPad, outputPad arrowdata.PadDescriptor, cfg coreconfig.CoreConfig, rootTiers [][]*stepgraph.GraphNode) (*Graphs, error) {
	var input, output *stepgraph.StepGraph
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		input = stepgraph.Build(inputPad, inputPad.LeftStartArrow, inputPad.RightStartArrow, cfg.MaxBracketSeparation)
		return ctx.Err()
	})
	g.Go(func() error {
		output = stepgraph.Build(outputPad, outputPad.LeftStartArrow, outputPad.RightStartArrow, cfg.MaxBracketSeparation)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache := performedchart.BuildSubstitutionCache(output, cfg)
	return &Graphs{Input: input, Output: output, Cache: cache, RootTiers: rootTiers}, nil
}

// Song is one chart-processing task: an identifier for logging, the
// input events, and the metadata the generator-version tag (spec §6) is
// written into.
type Song struct {
	ID          string
	Events      []event.InputEvent
	Author      string
	Description string
}

// OutputSong is the result of successfully converting a Song: the output
// events plus the re-tagged metadata (spec §6's "tagging emitted output
// charts with a generator version string").
type OutputSong struct {
	ID          string
	Events      []event.OutputEvent
	Author      string
	Description string
}

// ProcessSong runs the single-chart pipeline of spec §4/§5: parse (already
// done by the caller into song.Events) -> express -> perform -> emit,
// strictly sequentially within one song (spec §5: "inside one song the
// pipeline is strictly sequential"). Non-performance events (TimeSignature,
// Tempo, Stop) never enter the StepGraph searches; they are copied through
// from the input at the same position per spec §6, since the core's
// ExpressedChart/PerformedChart abstraction has no notion of them.
func ProcessSong(graphs *Graphs, song Song, cfg coreconfig.CoreConfig, logger *corelog.Logger, version string) (*OutputSong, []error, error) {
	taskID := uuid.NewString()
	logger.Infof(song.ID, "driver.task", "started (task=%s)", taskID)

	if len(song.Events) == 0 {
		logger.Infof(song.ID, "driver.task", "empty input, emitting empty output")
		author, desc := TagVersion(song.Author, song.Description, version)
		return &OutputSong{ID: song.ID, Author: author, Description: desc}, nil, nil
	}

	expressed, err := expressedchart.Express(song.Events, graphs.Input)
	if err != nil {
		logger.Errorf(song.ID, "expressedchart", "%v", err)
		return nil, nil, &corelog.ExpressionFailure{ChartID: song.ID, Reason: err.Error()}
	}

	// spec §5: "Random draws... are seeded deterministically from the
	// input-song file name" — each song overrides CoreConfig's own
	// random_seed_source (spec §6) with its own ID/filename so a shared
	// cfg value never leaks one song's shuffle order into another's.
	songCfg := cfg
	songCfg.RandomSeedSource = song.ID
	performed, warnings, err := performedchart.Perform(expressed, graphs.Output, graphs.Cache, graphs.RootTiers, songCfg, songCfg.RandomSeedSource)
	if err != nil {
		logger.Errorf(song.ID, "performedchart", "%v", err)
		return nil, nil, &corelog.PerformanceFailure{ChartID: song.ID, Reason: err.Error(), TiersTried: len(graphs.RootTiers)}
	}
	for _, w := range warnings {
		logger.Warnf(song.ID, "performedchart", "%v", w)
	}

	stepEvents := performedchart.Emit(performed)
	outEvents, err := mergeTimingEvents(song.Events, stepEvents)
	if err != nil {
		logger.Errorf(song.ID, "driver.emit", "%v", err)
		return nil, nil, &corelog.ProgrammerError{ChartID: song.ID, Message: err.Error()}
	}

	if n, m := nonMineCount(song.Events), nonMineOutputCount(outEvents); n != m {
		err := &corelog.ProgrammerError{ChartID: song.ID, Message: fmt.Sprintf("event-count property violated: %d non-mine input events, %d non-mine output events", n, m)}
		logger.Errorf(song.ID, "driver.invariant", "%v", err)
		return nil, nil, err
	}

	author, desc := TagVersion(song.Author, song.Description, version)
	logger.Infof(song.ID, "driver.task", "completed (task=%s)", taskID)
	return &OutputSong{ID: song.ID, Events: outEvents, Author: author, Description: desc}, warnings, nil
}

// mergeTimingEvents copies every non-lane event (TimeSignature, Tempo,
// Stop) from the input through to the output at the same position (spec
// §6) and merges it with the performed step/mine events, sorted by the
// same (position, kind-priority) rule as everything else.
func mergeTimingEvents(input []event.InputEvent, performed []event.OutputEvent) ([]event.OutputEvent, error) {
	out := append([]event.OutputEvent(nil), performed...)
	for _, e := range input {
		if e.Kind.IsLaneEvent() {
			continue
		}
		out = append(out, event.OutputEvent{Position: e.Position, Kind: e.Kind, Lane: -1, Payload: e.Payload})
	}
	event.SortOutput(out)
	return out, nil
}

func nonMineCount(events []event.InputEvent) int {
	n := 0
	for _, e := range events {
		if e.Kind != event.LaneMine {
			n++
		}
	}
	return n
}

func nonMineOutputCount(events []event.OutputEvent) int {
	n := 0
	for _, e := range events {
		if e.Kind != event.LaneMine {
			n++
		}
	}
	return n
}

// BatchResult pairs one input Song's ID with its conversion outcome.
type BatchResult struct {
	SongID string
	Output *OutputSong
	Err    error
}

// ProcessBatch dispatches songs across a worker pool (spec §5:
// "Per-song processing is embarrassingly parallel across songs and is
// dispatched through a worker pool"), bounding concurrency with
// errgroup.SetLimit the way the teacher bounds goroutine fan-out in
// cmd/pflow/sweep.go, except each song's failure is independent — one
// song's ExpressionFailure/PerformanceFailure never aborts the batch
// (spec §7: "the core never aborts the process... the driver decides
// per-song whether to skip").
func ProcessBatch(ctx context.Context, songs []Song, graphs *Graphs, cfg coreconfig.CoreConfig, logger *corelog.Logger, version string, concurrency int) []BatchResult {
	results := make([]BatchResult, len(songs))
	g, _ := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, song := range songs {
		i, song := i, song
		g.Go(func() error {
			out, _, err := ProcessSong(graphs, song, cfg, logger, version)
			results[i] = BatchResult{SongID: song.ID, Output: out, Err: err}
			return nil // per-song errors are recorded, not propagated (spec §7)
		})
	}
	_ = g.Wait()
	return results
}
