package performedchart

import (
	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/coreconfig"
	"github.com/padflow/go-padflow/stepgraph"
	"github.com/padflow/go-padflow/steptype"
)

// SubstitutionCache is the GraphLink -> acceptable-replacement-GraphLinks
// table of spec §4.5, computed once per (output StepGraph, CoreConfig)
// pair and shared read-only across every search that StepGraph serves.
type SubstitutionCache struct {
	replacements map[stepgraph.GraphLink][]stepgraph.GraphLink
}

// BuildSubstitutionCache enumerates every distinct GraphLink present as an
// outgoing edge anywhere in graph and computes its replacement set from
// cfg's StepType replacement map. A replacement link keeps every slot's
// FootAction identical to the original and never mixes StepTypes across
// the two portions of one foot (a foot's whole contribution is replaced
// together, per spec §4.5); candidates whose arity differs from the
// original foot's step are skipped, since they could not occupy the same
// slot shape.
func BuildSubstitutionCache(graph *stepgraph.StepGraph, cfg coreconfig.CoreConfig) *SubstitutionCache {
	cache := &SubstitutionCache{replacements: map[stepgraph.GraphLink][]stepgraph.GraphLink{}}
	seen := map[stepgraph.GraphLink]bool{}
	for _, n := range graph.AllNodes() {
		for link := range n.Links {
			if seen[link] {
				continue
			}
			seen[link] = true
			cache.replacements[link] = buildReplacements(link, cfg)
		}
	}
	return cache
}

// ReplacementsFor returns the cached replacement list for link, original
// link first, or just [link] if link was never recorded (defensive: every
// link a live search encounters should have been seen while building the
// cache from the same graph).
func (c *SubstitutionCache) ReplacementsFor(link stepgraph.GraphLink) []stepgraph.GraphLink {
	if repls, ok := c.replacements[link]; ok {
		return repls
	}
	return []stepgraph.GraphLink{link}
}

func buildReplacements(link stepgraph.GraphLink, cfg coreconfig.CoreConfig) []stepgraph.GraphLink {
	feet, stepOf := stepgraph.TouchedFeet(link)
	if len(feet) == 0 {
		return []stepgraph.GraphLink{link}
	}

	perFoot := make([][]steptype.StepType, len(feet))
	for i, f := range feet {
		perFoot[i] = candidateTypes(stepOf[f], cfg)
	}

	seen := map[stepgraph.GraphLink]bool{}
	var out []stepgraph.GraphLink
	assignment := make(map[arrowdata.Foot]steptype.StepType, len(feet))

	var combine func(i int)
	combine = func(i int) {
		if i == len(feet) {
			candidate := substituteLink(link, feet, assignment)
			if !seen[candidate] {
				seen[candidate] = true
				out = append(out, candidate)
			}
			return
		}
		for _, st := range perFoot[i] {
			assignment[feet[i]] = st
			combine(i + 1)
		}
	}
	combine(0)

	return orderOriginalFirst(out, link)
}

// candidateTypes lists orig plus every StepType cfg allows to replace it,
// restricted to types of the same arity (a same-arity restriction keeps
// the slot shape of the original link intact; spec §4.5 does not say how
// to handle an arity-changing replacement, so this implementation never
// offers one — see DESIGN.md).
func candidateTypes(orig steptype.StepType, cfg coreconfig.CoreConfig) []steptype.StepType {
	arity := steptype.Lookup(orig).Arity
	repls := cfg.StepTypeReplacements[orig]
	out := make([]steptype.StepType, 0, len(repls)+1)
	haveOrig := false
	for _, st := range repls {
		if steptype.Lookup(st).Arity != arity {
			continue
		}
		if st == orig {
			haveOrig = true
		}
		out = append(out, st)
	}
	if !haveOrig {
		out = append([]steptype.StepType{orig}, out...)
	}
	return out
}

func substituteLink(link stepgraph.GraphLink, feet []arrowdata.Foot, assignment map[arrowdata.Foot]steptype.StepType) stepgraph.GraphLink {
	out := link
	for _, f := range feet {
		st := assignment[f]
		for p := 0; p < 2; p++ {
			slot := out.Slots[f][p]
			if !slot.Valid {
				continue
			}
			slot.Step = st
			out.Slots[f][p] = slot
		}
	}
	return out
}

func orderOriginalFirst(links []stepgraph.GraphLink, original stepgraph.GraphLink) []stepgraph.GraphLink {
	out := make([]stepgraph.GraphLink, 0, len(links))
	out = append(out, original)
	for _, l := range links {
		if l != original {
			out = append(out, l)
		}
	}
	return out
}
