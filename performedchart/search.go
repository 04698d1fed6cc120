package performedchart

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/padflow/go-padflow/coreconfig"
	"github.com/padflow/go-padflow/event"
	"github.com/padflow/go-padflow/expressedchart"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// searchNode is the output-side ChartSearchNode (spec §4.5): structurally
// the same record as expressedchart's, but its cost is the lane-usage
// deviation of the whole path so far rather than a per-link foot-movement
// cost, and its "state" consulted for collision-checking is the previous
// hop's incoming link and position rather than foot-streak bookkeeping.
type searchNode struct {
	node   *stepgraph.GraphNode
	parent *searchNode

	hasIncoming bool
	incoming    stepgraph.GraphLinkInstance
	position    event.Position

	counts []int
	total  int
	cost   float64
}

// Perform runs the PerformedChart search of spec §4.5: it replays
// expressed's resolved link sequence over graph, substituting each link
// via cache's replacement sets, honouring the release-step-collision rule
// (§4.5.1) and falling back through rootTiers (§4.5.2) until one produces
// a complete path. seedSource derives the deterministic shuffle order for
// both tier order and replacement order (spec §5). Returned warnings are
// *FallbackNotice and *MineWarning values for the caller to log.
func Perform(expressed *expressedchart.ExpressedChart, graph *stepgraph.StepGraph, cache *SubstitutionCache, rootTiers [][]*stepgraph.GraphNode, cfg coreconfig.CoreConfig, seedSource string) (*PerformedChart, []error, error) {
	rng := deterministicRand(seedSource)
	var warnings []error

	for tier, roots := range rootTiers {
		for _, root := range shuffleNodes(roots, rng) {
			best, ok := performFromRoot(expressed, graph, cache, cfg, root, rng)
			if !ok {
				continue
			}
			if tier > 0 {
				warnings = append(warnings, &FallbackNotice{Tier: tier})
			}
			chain := collectChain(best)
			chart := buildChart(chain)
			mines, mineWarnings := placeMines(chain, expressed.Mines, graph.Pad)
			chart.Mines = mines
			for _, w := range mineWarnings {
				warnings = append(warnings, w)
			}
			return chart, warnings, nil
		}
	}
	return nil, warnings, &Error{Reason: "no root tier produced a complete path", TiersTried: len(rootTiers)}
}

func performFromRoot(expressed *expressedchart.ExpressedChart, graph *stepgraph.StepGraph, cache *SubstitutionCache, cfg coreconfig.CoreConfig, root *stepgraph.GraphNode, rng *rand.Rand) (*searchNode, bool) {
	frontier := map[*stepgraph.GraphNode]*searchNode{
		root: {node: root, counts: make([]int, graph.Pad.NumArrows)},
	}

	for _, step := range expressed.Steps {
		replacements := shuffleLinks(cache.ReplacementsFor(step.Incoming.Link), rng)
		next := map[*stepgraph.GraphNode]*searchNode{}
		for _, sn := range frontier {
			for _, repl := range replacements {
				children, ok := sn.node.Links[repl]
				if !ok {
					continue
				}
				for _, child := range children {
					touched := stepgraph.ImpliedArrowActions(sn.node, repl, child)
					if collidesWithPriorRelease(sn, step.Position, touched) {
						continue
					}
					instance := stepgraph.GraphLinkInstance{Link: repl, Annotations: step.Incoming.Annotations}
					candidate := extend(sn, child, instance, step.Position, touched, cfg)
					keepBestPerformed(next, candidate)
				}
			}
		}
		if len(next) == 0 {
			return nil, false
		}
		frontier = next
	}

	return bestPerformed(frontier), len(frontier) > 0
}

// collidesWithPriorRelease implements spec §4.5.1: reject a candidate that
// places a non-Release action on an arrow the immediately preceding hop,
// at the same position, just released.
func collidesWithPriorRelease(parent *searchNode, pos event.Position, touched map[int]steptype.FootAction) bool {
	if !parent.hasIncoming || !parent.incoming.Link.IsRelease() || !parent.position.Equal(pos) {
		return false
	}
	released := stepgraph.ImpliedArrowActions(parent.parent.node, parent.incoming.Link, parent.node)
	for a, act := range touched {
		if act == steptype.Release {
			continue
		}
		if relAct, ok := released[a]; ok && relAct == steptype.Release {
			return true
		}
	}
	return false
}

func extend(parent *searchNode, child *stepgraph.GraphNode, instance stepgraph.GraphLinkInstance, pos event.Position, touched map[int]steptype.FootAction, cfg coreconfig.CoreConfig) *searchNode {
	counts := append([]int(nil), parent.counts...)
	total := parent.total
	for a, act := range touched {
		if act == steptype.Release {
			continue
		}
		if a >= 0 && a < len(counts) {
			counts[a]++
			total++
		}
	}
	return &searchNode{
		node: child, parent: parent,
		hasIncoming: true, incoming: instance, position: pos,
		counts: counts, total: total,
		cost: laneDeviation(counts, total, cfg.OutputDesiredArrowWeights),
	}
}

// laneDeviation implements spec §4.5's cost: sum over arrows of
// |count(a)/total - target_weight(a)|, divided by NumArrows. weights is
// normalised to sum to 1 here (spec §6) rather than trusted to already sum
// to 1 — CoreConfig.OutputDesiredArrowWeights can reach this function from
// any construction path, not only Builder.Done/coreconfig.ReadJSON, both of
// which already normalise.
func laneDeviation(counts []int, total int, weights []float64) float64 {
	if total == 0 {
		return 0
	}
	weightSum := 0.0
	for _, w := range weights {
		weightSum += w
	}
	sum := 0.0
	for a, c := range counts {
		w := 0.0
		if a < len(weights) && weightSum > 0 {
			w = weights[a] / weightSum
		}
		sum += math.Abs(float64(c)/float64(total) - w)
	}
	return sum / float64(len(counts))
}

// keepBestPerformed mirrors expressedchart.keepBest: one lowest-cost
// SearchNode survives per distinct GraphNode, with a map-order-independent
// tie-break.
func keepBestPerformed(results map[*stepgraph.GraphNode]*searchNode, candidate *searchNode) {
	existing, ok := results[candidate.node]
	if !ok || candidate.cost < existing.cost || (candidate.cost == existing.cost && performedTieBreakKey(candidate) < performedTieBreakKey(existing)) {
		results[candidate.node] = candidate
	}
}

func performedTieBreakKey(sn *searchNode) string {
	parentID := -1
	if sn.parent != nil {
		parentID = sn.parent.node.ID
	}
	return fmt.Sprintf("%d|%s", parentID, sn.incoming.Link.String())
}

func bestPerformed(frontier map[*stepgraph.GraphNode]*searchNode) *searchNode {
	var best *searchNode
	for _, sn := range frontier {
		if best == nil || sn.cost < best.cost || (sn.cost == best.cost && sn.node.ID < best.node.ID) {
			best = sn
		}
	}
	return best
}

// collectChain returns the path from root to n in traversal order.
func collectChain(n *searchNode) []*searchNode {
	var rev []*searchNode
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	chain := make([]*searchNode, len(rev))
	for i, sn := range rev {
		chain[len(rev)-1-i] = sn
	}
	return chain
}

func buildChart(chain []*searchNode) *PerformedChart {
	chart := &PerformedChart{}
	for _, cur := range chain {
		if cur.hasIncoming {
			touches := stepgraph.ImpliedArrowTouches(cur.parent.node, cur.incoming, cur.node)
			chart.Steps = append(chart.Steps, StepEvent{Position: cur.position, Incoming: cur.incoming, Touched: touches})
		}
	}
	return chart
}

// deterministicRand derives a reproducible *rand.Rand from seedSource
// (spec §5: "seeded deterministically from the input-song file name"):
// the seed is the first 8 bytes, big-endian, of the sha256 digest of
// seedSource, which is the same on every platform.
func deterministicRand(seedSource string) *rand.Rand {
	h := sha256.Sum256([]byte(seedSource))
	seed := int64(binary.BigEndian.Uint64(h[:8]))
	return rand.New(rand.NewSource(seed))
}

func shuffleNodes(nodes []*stepgraph.GraphNode, rng *rand.Rand) []*stepgraph.GraphNode {
	out := append([]*stepgraph.GraphNode(nil), nodes...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func shuffleLinks(links []stepgraph.GraphLink, rng *rand.Rand) []stepgraph.GraphLink {
	out := append([]stepgraph.GraphLink(nil), links...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
