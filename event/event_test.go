package event

import "testing"

func TestPositionOrdering(t *testing.T) {
	a := NewPosition(1, 4)
	b := NewPosition(1, 2)
	if !a.Before(b) {
		t.Errorf("expected 1/4 before 1/2")
	}
	if !NewPosition(2, 4).Equal(NewPosition(1, 2)) {
		t.Errorf("expected 2/4 to equal 1/2 once reduced")
	}
}

func TestSortOrdersReleasesBeforeMinesBeforeSteps(t *testing.T) {
	p := Zero
	events := []InputEvent{
		{Position: p, Kind: LaneTap, Lane: 0},
		{Position: p, Kind: LaneMine, Lane: 1},
		{Position: p, Kind: LaneHoldEnd, Lane: 2},
	}
	Sort(events)
	want := []Kind{LaneHoldEnd, LaneMine, LaneTap}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("position %d: got %v, want %v", i, events[i].Kind, k)
		}
	}
}

func TestGroupByPosition(t *testing.T) {
	events := []InputEvent{
		{Position: NewPosition(0, 1), Kind: LaneTap, Lane: 0},
		{Position: NewPosition(0, 1), Kind: LaneTap, Lane: 1},
		{Position: NewPosition(1, 4), Kind: LaneTap, Lane: 2},
	}
	groups := GroupByPosition(events)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0]) != 2 || len(groups[1]) != 1 {
		t.Errorf("unexpected group sizes: %d, %d", len(groups[0]), len(groups[1]))
	}
}

func TestPartitionSplitsReleasesMinesSteps(t *testing.T) {
	p := Zero
	releases, mines, steps := Partition([]InputEvent{
		{Position: p, Kind: LaneHoldEnd, Lane: 0},
		{Position: p, Kind: LaneMine, Lane: 1},
		{Position: p, Kind: LaneTap, Lane: 2},
		{Position: p, Kind: LaneHoldStart, Lane: 3},
	})
	if len(releases) != 1 || len(mines) != 1 || len(steps) != 2 {
		t.Errorf("got %d releases, %d mines, %d steps", len(releases), len(mines), len(steps))
	}
}
