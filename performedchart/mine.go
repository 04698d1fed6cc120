package performedchart

import (
	"sort"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// arrowEvent is one touch of a single output-side arrow: a release or a
// step, with the foot that owned the arrow at that moment when
// determinable. Mirrors expressedchart's arrowEvent.
type arrowEvent struct {
	position  event.Position
	isRelease bool
	foot      arrowdata.Foot
	hasFoot   bool
}

// candidate is one output arrow competing to be paired with a re-placed
// mine, ranked by its time-distance from the mine's position (spec
// §4.5.3 mirrors §4.4's "n-th-closest chosen by time-proximity" recipe
// on the output path).
type candidate struct {
	arrow    int
	distance event.Position
	event    arrowEvent
}

// placeMines implements spec §4.5.3: re-place every input mine
// classification on the output pad by mirroring §4.4's n-th-closest
// recipe against the output path's own releases (AfterArrow) or steps
// (BeforeArrow), honouring the paired foot when the output side still
// has a matching touch for it. NoArrow mines go on the first lane that
// never carries an arrow anywhere in the chart. Mines that cannot be
// placed are dropped and reported as warnings.
func placeMines(chain []*searchNode, mines []event.MineClassification, pad arrowdata.PadDescriptor) ([]MinePlacement, []error) {
	byArrow := collectArrowTimelines(chain)
	usedArrows := everUsedArrows(byArrow)

	var out []MinePlacement
	var warnings []error
	claimedAfter := map[string]map[int]bool{}
	claimedBefore := map[string]map[int]bool{}

	for _, m := range mines {
		switch m.Kind {
		case event.NoArrow:
			lane, ok := firstUnusedLane(usedArrows, pad)
			if !ok {
				warnings = append(warnings, &MineWarning{Position: m.Position, Reason: "no lane is ever free of arrows on the output pad"})
				continue
			}
			out = append(out, MinePlacement{Position: m.Position, Lane: lane})

		case event.AfterArrow:
			cands := outstandingReleaseCandidates(byArrow, m.Position)
			if len(cands) == 0 {
				warnings = append(warnings, &MineWarning{Position: m.Position, Reason: "output path has no outstanding release to pair this mine with"})
				continue
			}
			out = append(out, placeFromCandidates(cands, m, claimedAfter))

		case event.BeforeArrow:
			cands := nextStepCandidates(byArrow, m.Position)
			if len(cands) == 0 {
				warnings = append(warnings, &MineWarning{Position: m.Position, Reason: "output path has no following step to pair this mine with"})
				continue
			}
			out = append(out, placeFromCandidates(cands, m, claimedBefore))

		default:
			warnings = append(warnings, &MineWarning{Position: m.Position, Reason: "unknown mine classification kind"})
		}
	}
	return out, warnings
}

// placeFromCandidates picks the candidate matching the mine's original
// paired foot if one is still unclaimed, otherwise the closest unclaimed
// candidate, so simultaneous mines pair with distinct output arrows
// whenever there are enough candidates (spec §4.5.3: "Two mines at the
// same position cannot claim the same arrow").
func placeFromCandidates(cands []candidate, m event.MineClassification, claimed map[string]map[int]bool) MinePlacement {
	key := m.Position.String()
	set := claimed[key]
	if set == nil {
		set = map[int]bool{}
		claimed[key] = set
	}

	if m.HasPairedFoot {
		for _, c := range cands {
			if !set[c.arrow] && c.event.hasFoot && c.event.foot == m.PairedFoot {
				set[c.arrow] = true
				return MinePlacement{Position: m.Position, Lane: c.arrow}
			}
		}
	}
	for _, c := range cands {
		if !set[c.arrow] {
			set[c.arrow] = true
			return MinePlacement{Position: m.Position, Lane: c.arrow}
		}
	}
	last := cands[len(cands)-1]
	set[last.arrow] = true
	return MinePlacement{Position: m.Position, Lane: last.arrow}
}

// collectArrowTimelines walks the resolved output-side path and, per
// arrow, records every release/step touch in position order.
func collectArrowTimelines(chain []*searchNode) map[int][]arrowEvent {
	byArrow := map[int][]arrowEvent{}
	for i := 1; i < len(chain); i++ {
		cur := chain[i]
		if !cur.hasIncoming {
			continue
		}
		prev := chain[i-1]
		touched := stepgraph.ImpliedArrowActions(prev.node, cur.incoming.Link, cur.node)
		for a, act := range touched {
			e := arrowEvent{position: cur.position, isRelease: act == steptype.Release}
			state := cur.node.State
			if e.isRelease {
				state = prev.node.State
			}
			if f, _, ok := state.OccupiedBy(a); ok {
				e.foot, e.hasFoot = f, true
			}
			byArrow[a] = append(byArrow[a], e)
		}
	}
	for a := range byArrow {
		sort.SliceStable(byArrow[a], func(i, j int) bool { return byArrow[a][i].position.Before(byArrow[a][j].position) })
	}
	return byArrow
}

func outstandingReleaseCandidates(byArrow map[int][]arrowEvent, p event.Position) []candidate {
	var out []candidate
	for arrow, evs := range byArrow {
		var last *arrowEvent
		for i := range evs {
			if !evs[i].position.Before(p) {
				break
			}
			ev := evs[i]
			last = &ev
		}
		if last != nil && last.isRelease {
			out = append(out, candidate{arrow: arrow, distance: event.Distance(p, last.position), event: *last})
		}
	}
	sortCandidates(out)
	return out
}

func nextStepCandidates(byArrow map[int][]arrowEvent, p event.Position) []candidate {
	var out []candidate
	for arrow, evs := range byArrow {
		for _, ev := range evs {
			if !ev.position.After(p) {
				continue
			}
			if !ev.isRelease {
				out = append(out, candidate{arrow: arrow, distance: event.Distance(ev.position, p), event: ev})
			}
			break
		}
	}
	sortCandidates(out)
	return out
}

func sortCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if c := cands[i].distance.Compare(cands[j].distance); c != 0 {
			return c < 0
		}
		return cands[i].arrow < cands[j].arrow
	})
}

func everUsedArrows(byArrow map[int][]arrowEvent) map[int]bool {
	used := map[int]bool{}
	for a := range byArrow {
		used[a] = true
	}
	return used
}

func firstUnusedLane(used map[int]bool, pad arrowdata.PadDescriptor) (int, bool) {
	for a := 0; a < pad.NumArrows; a++ {
		if !used[a] {
			return a, true
		}
	}
	return 0, false
}
