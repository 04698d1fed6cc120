// Package expressedchart turns a position-ordered InputEvent list into a
// pad-agnostic ExpressedChart: a best-first search over an input pad's
// StepGraph that explains the chart as the cheapest sequence of abstract
// foot actions (spec §4.4), plus a post-pass that classifies mines
// relative to the chosen path.
package expressedchart

import (
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
)

// StepEvent is one link the search traversed: the position it occurred at
// and the GraphLinkInstance describing the incoming link (spec §4.4). A
// release hop and a step hop are both represented this way; callers that
// only want placements should filter on Incoming.Link.IsRelease().
type StepEvent struct {
	Position event.Position
	Incoming stepgraph.GraphLinkInstance
}

// ExpressedChart is the pad-agnostic description of an input chart: the
// ordered foot actions that explain it, plus the classified mines (spec
// §3, §4.4).
type ExpressedChart struct {
	Steps []StepEvent
	Mines []event.MineClassification
}

// Error reports that no complete path through the input StepGraph
// matched the event sequence (spec §7 ExpressionFailure).
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "expressedchart: " + e.Reason }
