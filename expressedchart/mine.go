package expressedchart

import (
	"sort"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// arrowEvent is one touch of a single arrow along the resolved path: a
// release or a step (Tap/Hold alike), with the foot that owned the arrow
// at that moment when determinable.
type arrowEvent struct {
	position  event.Position
	isRelease bool
	foot      arrowdata.Foot
	hasFoot   bool
}

// candidate is one arrow competing to be paired with a mine, ranked by
// its time-distance from the mine's position (spec §4.4 step 3:
// "n-th-closest chosen by time-proximity").
type candidate struct {
	arrow    int
	distance event.Position
	event    arrowEvent
}

// classifyMines implements spec §4.4's mine-expression recipe exactly:
// for each input mine at position p, an arrow qualifies as an AfterArrow
// candidate if its most recent touch strictly before p was a release with
// no intervening step; failing that, an arrow qualifies as a BeforeArrow
// candidate if its next touch strictly after p is a step. Candidates are
// ranked by time-proximity to p; mines sharing a position draw from the
// same ranked list and claim distinct arrows while unclaimed candidates
// remain (once every candidate is claimed, further mines share the last).
func classifyMines(sorted []event.InputEvent, chain []*searchNode) []event.MineClassification {
	byArrow := collectArrowTimelines(chain)

	var mines []event.InputEvent
	for _, e := range sorted {
		if e.Kind == event.LaneMine {
			mines = append(mines, e)
		}
	}
	if len(mines) == 0 {
		return nil
	}

	claimedAfter := map[string]map[int]bool{}
	claimedBefore := map[string]map[int]bool{}

	out := make([]event.MineClassification, len(mines))
	for i, m := range mines {
		mc := event.MineClassification{Position: m.Position, OriginalArrow: m.Lane}

		if cands := outstandingReleaseCandidates(byArrow, m.Position); len(cands) > 0 {
			mc.Kind = event.AfterArrow
			rank, ev := pickCandidate(cands, claimedAfter, m.Position)
			mc.NthClosest = rank
			if ev != nil && ev.hasFoot {
				mc.PairedFoot, mc.HasPairedFoot = ev.foot, true
			}
		} else if cands := nextStepCandidates(byArrow, m.Position); len(cands) > 0 {
			mc.Kind = event.BeforeArrow
			rank, ev := pickCandidate(cands, claimedBefore, m.Position)
			mc.NthClosest = rank
			if ev != nil && ev.hasFoot {
				mc.PairedFoot, mc.HasPairedFoot = ev.foot, true
			}
		} else {
			mc.Kind = event.NoArrow
		}
		out[i] = mc
	}
	return out
}

// collectArrowTimelines walks the resolved path and, per arrow, records
// every release/step touch in position order.
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

// pickCandidate returns the 1-based rank and event of the first candidate
// not yet claimed by an earlier mine at the same position, so simultaneous
// mines pair with distinct arrows whenever there are enough candidates
// (spec §4.4: "mines at the same position compete for distinct arrows").
func pickCandidate(cands []candidate, claimed map[string]map[int]bool, p event.Position) (int, *arrowEvent) {
	key := p.String()
	set := claimed[key]
	if set == nil {
		set = map[int]bool{}
		claimed[key] = set
	}
	for i, c := range cands {
		if !set[c.arrow] {
			set[c.arrow] = true
			ev := c.event
			return i + 1, &ev
		}
	}
	last := cands[len(cands)-1]
	set[last.arrow] = true
	ev := last.event
	return len(cands), &ev
}
