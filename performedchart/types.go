// Package performedchart re-expresses an ExpressedChart (spec §4.4) onto a
// different pad's StepGraph: a second best-first search, structurally
// identical to expressedchart's, that walks the same sequence of links but
// lets a configured StepType replacement map substitute what each link
// actually is, and costs candidates by how evenly they spread steps across
// the output pad's arrows instead of by foot-movement naturalness (spec
// §4.5).
package performedchart

import (
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
)

// StepEvent is one link the output-side search traversed, mirroring
// expressedchart.StepEvent's shape, plus the per-arrow FootAction and
// annotation the link implies (spec §4.5.4's emission input).
type StepEvent struct {
	Position event.Position
	Incoming stepgraph.GraphLinkInstance
	Touched  map[int]stepgraph.ArrowTouch
}

// MinePlacement is one mine re-placed on the output pad (spec §4.5.3).
type MinePlacement struct {
	Position event.Position
	Lane     int
}

// PerformedChart is the pad-specific result of §4.5's search: the ordered
// output-side steps plus the re-placed mines.
type PerformedChart struct {
	Steps []StepEvent
	Mines []MinePlacement
}

// Error reports that no root tier produced a complete output-side path.
type Error struct {
	Reason     string
	TiersTried int
}

func (e *Error) Error() string { return "performedchart: " + e.Reason }

// MineWarning records a mine that could not be placed on the output pad
// (spec §4.5.3, spec §7 MinePlacementWarning); the mine is dropped and the
// rest of the chart proceeds.
type MineWarning struct {
	Position event.Position
	Reason   string
}

func (w *MineWarning) Error() string { return "performedchart: dropped mine at " + w.Position.String() + ": " + w.Reason }

// FallbackNotice records that a non-tier-0 root was required (spec §4.5.2,
// spec §7 FallbackWarning).
type FallbackNotice struct {
	Tier int
}

func (n *FallbackNotice) Error() string { return "performedchart: fell back to root tier" }
