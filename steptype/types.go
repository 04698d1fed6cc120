// Package steptype defines the closed catalogue of StepTypes (spec §4.2):
// their arity, which foot portions they use, whether they may appear in a
// jump, and the handful of per-type predicates the StepGraph builder
// consults while enumerating transitions.
package steptype

// StepType is the closed set of ways a foot (or foot pair) can move.
type StepType int

const (
	SameArrow StepType = iota
	NewArrow
	CrossoverFront
	CrossoverBehind
	InvertFront
	InvertBehind
	FootSwap
	BracketHeelNewToeNew
	BracketHeelNewToeSame
	BracketHeelSameToeNew
	BracketHeelSameToeSame
	BracketOneArrowHeelSame
	BracketOneArrowHeelNew
	BracketOneArrowToeSame
	BracketOneArrowToeNew

	numStepTypes
)

var names = [...]string{
	SameArrow:               "SameArrow",
	NewArrow:                "NewArrow",
	CrossoverFront:          "CrossoverFront",
	CrossoverBehind:         "CrossoverBehind",
	InvertFront:             "InvertFront",
	InvertBehind:            "InvertBehind",
	FootSwap:                "FootSwap",
	BracketHeelNewToeNew:    "BracketHeelNewToeNew",
	BracketHeelNewToeSame:   "BracketHeelNewToeSame",
	BracketHeelSameToeNew:   "BracketHeelSameToeNew",
	BracketHeelSameToeSame:  "BracketHeelSameToeSame",
	BracketOneArrowHeelSame: "BracketOneArrowHeelSame",
	BracketOneArrowHeelNew:  "BracketOneArrowHeelNew",
	BracketOneArrowToeSame:  "BracketOneArrowToeSame",
	BracketOneArrowToeNew:   "BracketOneArrowToeNew",
}

func (t StepType) String() string {
	if t < 0 || int(t) >= len(names) {
		return "StepType(invalid)"
	}
	return names[t]
}

// Parse returns the StepType named s, for round-tripping the catalogue
// through a human-readable configuration format.
func Parse(s string) (StepType, bool) {
	for _, st := range All() {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// All returns every StepType in declaration order.
func All() []StepType {
	out := make([]StepType, numStepTypes)
	for i := range out {
		out[i] = StepType(i)
	}
	return out
}

// FootPortions lists which of a foot's portions a StepType touches.
type FootPortions int

const (
	Default FootPortions = iota // single, non-bracket: uses the foot's only occupied/landing portion
	HeelOnly
	ToeOnly
	HeelAndToe
)

// Info is the immutable classification record for one StepType (spec
// §4.2). It is pure data, analogous to the Transition{Label, Role} record
// petri.Transition carries for a Petri net transition.
type Info struct {
	Type StepType

	// Arity is 1 for single-arrow steps, 2 for brackets.
	Arity int

	// Portions identifies which foot portion(s) this step occupies.
	Portions FootPortions

	// UsableInJump marks StepTypes eligible for the two-foot jump
	// enumeration in StepGraph construction (spec §4.3).
	UsableInJump bool

	// OnlyConsiderCurrentArrows marks StepTypes whose candidate arrows
	// during StepGraph construction are only the arrows the foot already
	// occupies (set for SameArrow and BracketHeelSameToeSame). The
	// stepgraph fill predicates apply that restriction themselves; they do
	// not read this flag.
	OnlyConsiderCurrentArrows bool

	// IsFootSwap is true only for FootSwap: a static property of the type.
	// Release, by contrast, is not a StepType of its own — it is any
	// StepType paired with FootAction Release at a given link slot (spec
	// §3's GraphLink) — so there is no IsRelease field here; see
	// stepgraph.GraphLink.IsRelease.
	IsFootSwap bool
}

// IsBracket reports whether this StepType occupies both foot portions.
func (i Info) IsBracket() bool { return i.Arity == 2 }

var catalogue = [...]Info{
	SameArrow: {
		Type: SameArrow, Arity: 1, Portions: Default,
		OnlyConsiderCurrentArrows: true,
	},
	NewArrow: {
		Type: NewArrow, Arity: 1, Portions: Default, UsableInJump: true,
	},
	CrossoverFront: {
		Type: CrossoverFront, Arity: 1, Portions: Default, UsableInJump: true,
	},
	CrossoverBehind: {
		Type: CrossoverBehind, Arity: 1, Portions: Default, UsableInJump: true,
	},
	InvertFront: {
		Type: InvertFront, Arity: 1, Portions: Default, UsableInJump: true,
	},
	InvertBehind: {
		Type: InvertBehind, Arity: 1, Portions: Default, UsableInJump: true,
	},
	FootSwap: {
		Type: FootSwap, Arity: 1, Portions: Default, IsFootSwap: true,
	},
	BracketHeelNewToeNew: {
		Type: BracketHeelNewToeNew, Arity: 2, Portions: HeelAndToe, UsableInJump: true,
	},
	BracketHeelNewToeSame: {
		Type: BracketHeelNewToeSame, Arity: 2, Portions: HeelAndToe,
	},
	BracketHeelSameToeNew: {
		Type: BracketHeelSameToeNew, Arity: 2, Portions: HeelAndToe,
	},
	BracketHeelSameToeSame: {
		Type: BracketHeelSameToeSame, Arity: 2, Portions: HeelAndToe,
		OnlyConsiderCurrentArrows: true, UsableInJump: true,
	},
	BracketOneArrowHeelSame: {
		Type: BracketOneArrowHeelSame, Arity: 2, Portions: HeelAndToe,
	},
	BracketOneArrowHeelNew: {
		Type: BracketOneArrowHeelNew, Arity: 2, Portions: HeelAndToe,
	},
	BracketOneArrowToeSame: {
		Type: BracketOneArrowToeSame, Arity: 2, Portions: HeelAndToe,
	},
	BracketOneArrowToeNew: {
		Type: BracketOneArrowToeNew, Arity: 2, Portions: HeelAndToe,
	},
}

// Lookup returns the classification record for t.
func Lookup(t StepType) Info {
	if t < 0 || int(t) >= len(catalogue) {
		panic("steptype: invalid StepType " + t.String())
	}
	return catalogue[t]
}

// FootAction is one of the three ways a foot-portion's occupancy changes
// across a link (spec §3). Rolls are Hold plus a GraphLinkInstance
// annotation (spec §9 open question, resolved in favour of the
// annotation-only approach) so FootAction itself never needs a Roll value.
type FootAction int

const (
	Tap FootAction = iota
	Hold
	Release
)

func (a FootAction) String() string {
	switch a {
	case Tap:
		return "Tap"
	case Hold:
		return "Hold"
	case Release:
		return "Release"
	default:
		return "FootAction(invalid)"
	}
}
