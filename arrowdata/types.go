// Package arrowdata holds the static per-arrow adjacency relations for a
// pad (4-panel singles, 8-panel doubles, or any other layout whose
// relation tables are supplied). The tables are pure data: they never
// change once a PadDescriptor is constructed.
package arrowdata

import "fmt"

// Foot identifies which foot a relation or body-state slot belongs to.
type Foot int

const (
	Left Foot = iota
	Right
)

// Other returns the opposite foot.
func (f Foot) Other() Foot {
	if f == Left {
		return Right
	}
	return Left
}

func (f Foot) String() string {
	if f == Left {
		return "L"
	}
	return "R"
}

// FootPortion distinguishes the two arrows a single foot may occupy in a
// bracket. Portion 0 (Heel) also serves as the "default"/"only" portion
// for non-bracket steps; portion 1 (Toe) is the "second" portion.
type FootPortion int

const (
	Heel FootPortion = iota
	Toe
)

// MaxArrowsPerFoot bounds the number of arrows a single foot can occupy
// at once (one per portion).
const MaxArrowsPerFoot = 2

// ArrowSet is a bitmap over arrow indices. 32 bits comfortably covers any
// pad this package is expected to describe (doubles has 8 arrows).
type ArrowSet uint32

// NewArrowSet builds a set from a list of arrow indices.
func NewArrowSet(arrows ...int) ArrowSet {
	var s ArrowSet
	for _, a := range arrows {
		s |= 1 << uint(a)
	}
	return s
}

// Has reports whether arrow a is a member of the set.
func (s ArrowSet) Has(a int) bool {
	if a < 0 {
		return false
	}
	return s&(1<<uint(a)) != 0
}

// Add returns a new set with arrow a added.
func (s ArrowSet) Add(a int) ArrowSet {
	return s | (1 << uint(a))
}

// Intersect returns the intersection of s and o.
func (s ArrowSet) Intersect(o ArrowSet) ArrowSet {
	return s & o
}

// Empty reports whether the set has no members.
func (s ArrowSet) Empty() bool {
	return s == 0
}

// Arrows returns the set's members in ascending order.
func (s ArrowSet) Arrows(numArrows int) []int {
	var out []int
	for a := 0; a < numArrows; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// FootRelations is everything ArrowData records about a single
// (arrow, foot) pair: the sets of other arrows related to it by each of
// the relation kinds in spec §4.1.
type FootRelations struct {
	// ValidNext is the set of arrows this foot may step to next from the
	// owning arrow (a basic physical-reach constraint).
	ValidNext ArrowSet

	// BracketHeelToe(b) holds when the owning arrow and b are bracketable
	// with the owning arrow taken by the heel and b by the toe.
	BracketHeelToe ArrowSet
	// BracketToeHeel is the same pairing with heel/toe roles swapped.
	BracketToeHeel ArrowSet

	// NonCrossoverPair is the set of arrows the OTHER foot may occupy,
	// given this foot is on the owning arrow, without that being a
	// crossover (a "pairing" in spec terms).
	NonCrossoverPair ArrowSet

	// CrossoverFront/CrossoverBehind are the arrows the other foot may
	// take that place it crossed in front of / behind this foot.
	CrossoverFront  ArrowSet
	CrossoverBehind ArrowSet

	// InvertFront/InvertBehind are the arrows the other foot may take
	// that invert the body orientation, front or behind.
	InvertFront  ArrowSet
	InvertBehind ArrowSet
}

// ArrowData is the full per-arrow record: one FootRelations per foot.
type ArrowData struct {
	Left  FootRelations
	Right FootRelations
}

// For returns the relations for the given foot.
func (d ArrowData) For(f Foot) FootRelations {
	if f == Left {
		return d.Left
	}
	return d.Right
}

// PadDescriptor is the complete description of a pad's geometry: how many
// arrows it has, where each foot starts, and the ArrowData for each arrow.
type PadDescriptor struct {
	Name            string
	NumArrows       int
	LeftStartArrow  int
	RightStartArrow int
	Arrows          []ArrowData // len == NumArrows
}

// Relations returns the ArrowData for arrow a, panicking if out of range
// (an out-of-range arrow index is a ProgrammerError: it can only happen if
// the caller mis-sized PadDescriptor.Arrows, which is checked at startup
// by Validate).
func (p PadDescriptor) Relations(a int) ArrowData {
	if a < 0 || a >= len(p.Arrows) {
		panic(fmt.Sprintf("arrowdata: arrow %d out of range for pad %q (NumArrows=%d)", a, p.Name, p.NumArrows))
	}
	return p.Arrows[a]
}
