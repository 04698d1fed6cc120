package expressedchart

import (
	"fmt"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// searchNode is one ChartSearchNode (spec §4.4): the frontier is a set of
// these, pruned after every position group to at most one per distinct
// GraphNode. Parent is a plain Go pointer rather than an arena index (spec
// §9 "SearchNode parent back-pointers with pruning" describes the arena
// technique for languages without a garbage collector; Go's GC reclaims a
// discarded chain once nothing else references it, so no manual sweep is
// needed here).
type searchNode struct {
	node     *stepgraph.GraphNode
	position event.Position
	cost     float64
	parent   *searchNode

	hasIncoming bool
	incoming    stepgraph.GraphLinkInstance

	// Cost-function memory (spec §4.4's "what the search knows about the
	// previous step"). Updated only by step hops, not release hops.
	hasLastFoot    bool
	lastFoot       arrowdata.Foot
	lastWasJump    bool
	lastFootSwap   bool
	sameFootStreak int // single-foot steps by lastFoot since its first in a row (0 after that first step)

	lastRelease    [2]event.Position
	hasLastRelease [2]bool
}

// Express runs the ExpressedChart search of spec §4.4 over graph for the
// given (already or not yet position-sorted) event list.
func Express(events []event.InputEvent, graph *stepgraph.StepGraph) (*ExpressedChart, error) {
	sorted := append([]event.InputEvent(nil), events...)
	event.Sort(sorted)

	if err := checkClosedHolds(sorted); err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return &ExpressedChart{}, nil
	}

	mineIndex := buildMineIndex(sorted)

	root := &searchNode{node: graph.Root, position: event.Zero}
	frontier := map[*stepgraph.GraphNode]*searchNode{graph.Root: root}

	for _, group := range event.GroupByPosition(sorted) {
		releases, mines, steps := event.Partition(group)
		_ = mines // classified in a post-pass over the resolved path
		pos := group[0].Position

		afterReleases, err := applyReleases(frontier, releases, pos)
		if err != nil {
			return nil, err
		}
		if len(afterReleases) == 0 {
			return nil, &Error{Reason: "no path satisfies the releases at " + pos.String()}
		}

		frontier, err = applySteps(afterReleases, steps, pos, mineIndex, graph.Pad)
		if err != nil {
			return nil, err
		}
		if len(frontier) == 0 {
			return nil, &Error{Reason: "no path matches the steps at " + pos.String()}
		}
	}

	best := bestOf(frontier)
	chain := collectChain(best)

	chart := &ExpressedChart{}
	for _, n := range chain {
		if n.hasIncoming {
			chart.Steps = append(chart.Steps, StepEvent{Position: n.position, Incoming: n.incoming})
		}
	}
	chart.Mines = classifyMines(sorted, chain)
	return chart, nil
}

// checkClosedHolds rejects an input whose event list ends with a lane
// still held (spec §8 "Input ending mid-hold -> ExpressionFailure").
func checkClosedHolds(sorted []event.InputEvent) error {
	open := map[int]bool{}
	for _, e := range sorted {
		switch e.Kind {
		case event.LaneHoldStart:
			if open[e.Lane] {
				return &Error{Reason: "lane already held at a new HoldStart"}
			}
			open[e.Lane] = true
		case event.LaneHoldEnd:
			if !open[e.Lane] {
				return &Error{Reason: "HoldEnd with no matching HoldStart"}
			}
			open[e.Lane] = false
		}
	}
	for lane, held := range open {
		if held {
			_ = lane
			return &Error{Reason: "input ends with an unclosed hold"}
		}
	}
	return nil
}

func buildMineIndex(sorted []event.InputEvent) map[int][]event.Position {
	idx := map[int][]event.Position{}
	for _, e := range sorted {
		if e.Kind == event.LaneMine {
			idx[e.Lane] = append(idx[e.Lane], e.Position)
		}
	}
	return idx
}

// releaseState is one partial path through the release sub-phase: the
// ChartSearchNode reached so far and the lanes still owed a release at
// this position.
type releaseState struct {
	sn        *searchNode
	remaining map[int]bool
}

// applyReleases resolves every LaneHoldEnd at pos by chaining zero-cost
// release hops (spec §4.4: "Releases are applied first... Releases cost
// 0"). A single-arrow release (SameArrow) is never UsableInJump, so two
// feet releasing single arrows take two hops; a jump link that releases
// both feet's brackets at once is matched in one hop. Returns, per
// distinct resulting GraphNode, the lowest-cost path that cleared every
// required lane.
func applyReleases(frontier map[*stepgraph.GraphNode]*searchNode, releases []event.InputEvent, pos event.Position) (map[*stepgraph.GraphNode]*searchNode, error) {
	required := map[int]bool{}
	for _, e := range releases {
		required[e.Lane] = true
	}
	if len(required) == 0 {
		return frontier, nil
	}

	results := map[*stepgraph.GraphNode]*searchNode{}
	var queue []releaseState
	for _, sn := range frontier {
		rem := make(map[int]bool, len(required))
		for k := range required {
			rem[k] = true
		}
		queue = append(queue, releaseState{sn: sn, remaining: rem})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.remaining) == 0 {
			keepBest(results, cur.sn)
			continue
		}
		for link, children := range cur.sn.node.Links {
			if !link.IsRelease() {
				continue
			}
			for _, child := range children {
				touched := stepgraph.ImpliedArrowActions(cur.sn.node, link, child)
				matched := map[int]bool{}
				ok := len(touched) > 0
				for a, act := range touched {
					if act != steptype.Release || !cur.remaining[a] {
						ok = false
						break
					}
					matched[a] = true
				}
				if !ok {
					continue
				}
				nextRemaining := make(map[int]bool, len(cur.remaining))
				for k := range cur.remaining {
					if !matched[k] {
						nextRemaining[k] = true
					}
				}
				child := &searchNode{
					node: child, position: pos, cost: cur.sn.cost, parent: cur.sn,
					hasIncoming: true, incoming: stepgraph.GraphLinkInstance{Link: link},
					hasLastFoot: cur.sn.hasLastFoot, lastFoot: cur.sn.lastFoot,
					lastWasJump: cur.sn.lastWasJump, lastFootSwap: cur.sn.lastFootSwap,
					sameFootStreak: cur.sn.sameFootStreak,
					lastRelease:    cur.sn.lastRelease, hasLastRelease: cur.sn.hasLastRelease,
				}
				for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
					if heel, toe := link.Slot(f, arrowdata.Heel), link.Slot(f, arrowdata.Toe); heel.Valid || toe.Valid {
						child.lastRelease[f] = pos
						child.hasLastRelease[f] = true
					}
				}
				queue = append(queue, releaseState{sn: child, remaining: nextRemaining})
			}
		}
	}
	return results, nil
}

// applySteps resolves the taps/hold-starts at pos with a single GraphLink
// (spec §4.3's jump enumeration already covers every simultaneous
// combination the graph can produce; §4.4 just has to find the one whose
// implied per-arrow action set matches the input exactly).
func applySteps(frontier map[*stepgraph.GraphNode]*searchNode, steps []event.InputEvent, pos event.Position, mineIndex map[int][]event.Position, pad arrowdata.PadDescriptor) (map[*stepgraph.GraphNode]*searchNode, error) {
	requiredTaps := map[int]bool{}
	requiredHolds := map[int]bool{}
	rollLane := map[int]bool{}
	for _, e := range steps {
		switch e.Kind {
		case event.LaneTap:
			requiredTaps[e.Lane] = true
		case event.LaneHoldStart:
			requiredHolds[e.Lane] = true
			if e.Annotation == event.AnnotationRoll {
				rollLane[e.Lane] = true
			}
		}
	}
	if len(requiredTaps) == 0 && len(requiredHolds) == 0 {
		return frontier, nil
	}

	results := map[*stepgraph.GraphNode]*searchNode{}
	for _, sn := range frontier {
		for link, children := range sn.node.Links {
			if link.IsRelease() {
				continue
			}
			for _, child := range children {
				touched := stepgraph.ImpliedArrowActions(sn.node, link, child)
				if !matchesSteps(touched, requiredTaps, requiredHolds) {
					continue
				}
				feet, stepOf := stepgraph.TouchedFeet(link)
				cost := stepCost(sn, pad, feet, stepOf, touched, mineIndex, pos)

				instance := stepgraph.GraphLinkInstance{Link: link}
				for _, f := range []arrowdata.Foot{arrowdata.Left, arrowdata.Right} {
					for p := 0; p < 2; p++ {
						slot := link.Slot(f, arrowdata.FootPortion(p))
						if !slot.Valid {
							continue
						}
						arrow := child.State.Feet[f][p].Arrow
						if rollLane[arrow] {
							instance.Annotations[f][p] = stepgraph.AnnotationRoll
						}
					}
				}

				nFeet := len(feet)
				next := &searchNode{
					node: child, position: pos, cost: sn.cost + cost, parent: sn,
					hasIncoming: true, incoming: instance,
					lastWasJump:  nFeet == 2,
					lastFootSwap: nFeet == 1 && stepOf[feet[0]] == steptype.FootSwap,
				}
				if nFeet == 1 {
					f := feet[0]
					next.hasLastFoot = true
					next.lastFoot = f
					if sn.hasLastFoot && sn.lastFoot == f && !sn.lastWasJump {
						next.sameFootStreak = sn.sameFootStreak + 1
					} else {
						next.sameFootStreak = 0
					}
				}
				next.lastRelease = sn.lastRelease
				next.hasLastRelease = sn.hasLastRelease
				keepBest(results, next)
			}
		}
	}
	return results, nil
}

func matchesSteps(touched map[int]steptype.FootAction, taps, holds map[int]bool) bool {
	if len(touched) != len(taps)+len(holds) {
		return false
	}
	for a := range taps {
		if touched[a] != steptype.Tap {
			return false
		}
	}
	for a := range holds {
		if touched[a] != steptype.Hold {
			return false
		}
	}
	return true
}

// keepBest enforces spec §4.4's pruning invariant: at most one SearchNode
// per distinct GraphNode survives, the one with lowest cumulative cost. A
// tie is broken by a criterion independent of map iteration order (the
// search's Determinism property, spec §8, must not depend on Go's
// randomised map ordering).
func keepBest(results map[*stepgraph.GraphNode]*searchNode, candidate *searchNode) {
	existing, ok := results[candidate.node]
	if !ok || candidate.cost < existing.cost || (candidate.cost == existing.cost && tieBreakKey(candidate) < tieBreakKey(existing)) {
		results[candidate.node] = candidate
	}
}

func tieBreakKey(sn *searchNode) string {
	parentID := -1
	if sn.parent != nil {
		parentID = sn.parent.node.ID
	}
	return fmt.Sprintf("%d|%s", parentID, sn.incoming.Link.String())
}

func bestOf(frontier map[*stepgraph.GraphNode]*searchNode) *searchNode {
	var best *searchNode
	for _, sn := range frontier {
		if best == nil || sn.cost < best.cost || (sn.cost == best.cost && sn.node.ID < best.node.ID) {
			best = sn
		}
	}
	return best
}

func collectChain(n *searchNode) []*searchNode {
	var rev []*searchNode
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	chain := make([]*searchNode, len(rev))
	for i, n := range rev {
		chain[len(rev)-1-i] = n
	}
	return chain
}
