package event

import "github.com/padflow/go-padflow/arrowdata"

// MineKind is how a mine relates to the nearest step (spec §3, §4.4).
type MineKind int

const (
	AfterArrow MineKind = iota
	BeforeArrow
	NoArrow
)

func (k MineKind) String() string {
	switch k {
	case AfterArrow:
		return "AfterArrow"
	case BeforeArrow:
		return "BeforeArrow"
	case NoArrow:
		return "NoArrow"
	default:
		return "MineKind(invalid)"
	}
}

// MineClassification is the pad-agnostic description ExpressedChart
// records for one input mine (spec §4.4's mine-expression recipe) and
// that PerformedChart re-places on the output pad (spec §4.5.3).
type MineClassification struct {
	Position Position
	Kind     MineKind

	// NthClosest is 1 for the nearest qualifying arrow, 2 for the next,
	// and so on (spec §4.4 step 3).
	NthClosest int

	// PairedFoot is the foot on the arrow the mine is paired with, when
	// determinable: the foot that released it (AfterArrow) or the foot
	// that steps on it next (BeforeArrow).
	PairedFoot    arrowdata.Foot
	HasPairedFoot bool

	// OriginalArrow is the input-pad arrow the mine was paired with; it
	// has no meaning on the output pad and is carried only for
	// diagnostics (spec §8's mine-classification round-trip property
	// compares NthClosest/PairedFoot, not OriginalArrow).
	OriginalArrow int
}
