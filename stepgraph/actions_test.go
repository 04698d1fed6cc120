package stepgraph

import (
	"testing"

	"github.com/padflow/go-padflow/arrowdata"
	"github.com/padflow/go-padflow/steptype"
)

// TestImpliedArrowTouchesCarriesAnnotationFromRequestedPortion exercises the
// Tap side of ImpliedArrowTouches: the arrow receiving the touch must be
// read from child (where the canonical portion index may have moved), and
// its annotation must be the instance's annotation for that same portion.
func TestImpliedArrowTouchesCarriesAnnotationFromRequestedPortion(t *testing.T) {
	g := buildSingles(t)
	parent := g.Root
	var childOf *GraphNode
	var link GraphLink
	for l, nodes := range parent.Links {
		if l.IsRelease() {
			continue
		}
		if feet, _ := TouchedFeet(l); len(feet) == 1 && feet[0] == arrowdata.Left {
			link, childOf = l, nodes[0]
			break
		}
	}
	if childOf == nil {
		t.Fatalf("expected root to have a single-left-foot outgoing link")
	}

	instance := GraphLinkInstance{Link: link}
	instance.Annotations[arrowdata.Left][0] = AnnotationFake

	touches := ImpliedArrowTouches(parent, instance, childOf)
	arrow := childOf.State.Feet[arrowdata.Left][0].Arrow
	touch, ok := touches[arrow]
	if !ok {
		t.Fatalf("expected a touch on arrow %d, got %v", arrow, touches)
	}
	if touch.Action != steptype.Tap && touch.Action != steptype.Hold {
		t.Errorf("touch.Action = %v, want Tap or Hold", touch.Action)
	}
	if touch.Annotation != AnnotationFake {
		t.Errorf("touch.Annotation = %v, want AnnotationFake", touch.Annotation)
	}
}

// TestImpliedArrowTouchesReleaseReadsParentAnnotation exercises the Release
// side: the touched arrow and its annotation must both come from parent,
// since a release doesn't move to a new arrow.
func TestImpliedArrowTouchesReleaseReadsParentAnnotation(t *testing.T) {
	g := buildSingles(t)
	root := g.Root

	// Find a hold-start link out of root, to reach a node with a held foot.
	var holdLink GraphLink
	var held *GraphNode
	for l, nodes := range root.Links {
		if l.IsRelease() {
			continue
		}
		feet, stepOf := TouchedFeet(l)
		if len(feet) == 1 && l.Slot(feet[0], arrowdata.Heel).Action == steptype.Hold {
			holdLink, held = l, nodes[0]
			_ = stepOf
			break
		}
	}
	if held == nil {
		t.Skip("no single-foot hold-start link reachable from root with maxBracketSeparation=1")
	}

	holdInstance := GraphLinkInstance{Link: holdLink}
	holdInstance.Annotations[arrowdata.Left][0] = AnnotationRoll
	holdingFoot, _ := TouchedFeet(holdLink)
	f := holdingFoot[0]
	holdInstance.Annotations[f][0] = AnnotationRoll

	var releaseLink GraphLink
	var releasedTo *GraphNode
	for l, nodes := range held.Links {
		if l.IsRelease() {
			releaseLink, releasedTo = l, nodes[0]
			break
		}
	}
	if releasedTo == nil {
		t.Skip("no release link reachable from the held node")
	}

	releaseInstance := GraphLinkInstance{Link: releaseLink}
	releaseInstance.Annotations[f][0] = AnnotationRoll

	touches := ImpliedArrowTouches(held, releaseInstance, releasedTo)
	arrow := held.State.Feet[f][0].Arrow
	touch, ok := touches[arrow]
	if !ok {
		t.Fatalf("expected a release touch on arrow %d, got %v", arrow, touches)
	}
	if touch.Action != steptype.Release {
		t.Errorf("touch.Action = %v, want Release", touch.Action)
	}
	if touch.Annotation != AnnotationRoll {
		t.Errorf("touch.Annotation = %v, want AnnotationRoll (carried from the hold)", touch.Annotation)
	}
}
