package arrowdata

import "fmt"

// MirrorArrow reflects an arrow index across the centre of a NumArrows-wide
// pad: i <-> NumArrows-1-i.
func MirrorArrow(numArrows, a int) int {
	return numArrows - 1 - a
}

func mirrorSet(numArrows int, s ArrowSet) ArrowSet {
	var out ArrowSet
	for a := 0; a < numArrows; a++ {
		if s.Has(a) {
			out = out.Add(MirrorArrow(numArrows, a))
		}
	}
	return out
}

// MirrorRelations reflects a FootRelations record authored for one foot
// into the record its opposite-foot mirror image must satisfy. Every
// relation mirrors straight across except bracketability, which swaps
// heel and toe roles (spec §4.1: "bracketability inverts across the
// heel/toe mirror, matching the physical meaning of heel/toe").
func MirrorRelations(numArrows int, r FootRelations) FootRelations {
	return FootRelations{
		ValidNext:        mirrorSet(numArrows, r.ValidNext),
		BracketHeelToe:   mirrorSet(numArrows, r.BracketToeHeel),
		BracketToeHeel:   mirrorSet(numArrows, r.BracketHeelToe),
		NonCrossoverPair: mirrorSet(numArrows, r.NonCrossoverPair),
		CrossoverFront:   mirrorSet(numArrows, r.CrossoverFront),
		CrossoverBehind:  mirrorSet(numArrows, r.CrossoverBehind),
		InvertFront:      mirrorSet(numArrows, r.InvertFront),
		InvertBehind:     mirrorSet(numArrows, r.InvertBehind),
	}
}

// BuildMirrored constructs a full PadDescriptor's Arrows slice from
// Left-foot relations alone, deriving each arrow's Right-foot relations by
// mirroring the Left-foot relations of its reflected arrow. This is the
// authoring pattern used by Singles and Doubles below: it makes the
// mirror-symmetry invariant hold by construction instead of by manual
// bookkeeping across two hand-written tables.
func BuildMirrored(numArrows int, left []FootRelations) []ArrowData {
	if len(left) != numArrows {
		panic(fmt.Sprintf("arrowdata: BuildMirrored got %d left relations for %d arrows", len(left), numArrows))
	}
	out := make([]ArrowData, numArrows)
	for a := 0; a < numArrows; a++ {
		mirrored := MirrorArrow(numArrows, a)
		out[a] = ArrowData{
			Left:  left[a],
			Right: MirrorRelations(numArrows, left[mirrored]),
		}
	}
	return out
}

// Validate asserts the pad's mirror-symmetry invariant (spec §4.1, §8):
// reflecting arrow index and foot must preserve every relation, save that
// bracketability swaps heel/toe roles on reflection. It returns one error
// per violation found; a well-formed pad returns nil.
func Validate(p PadDescriptor) []error {
	var errs []error
	n := p.NumArrows
	if len(p.Arrows) != n {
		errs = append(errs, fmt.Errorf("arrowdata: pad %q declares NumArrows=%d but has %d arrow records", p.Name, n, len(p.Arrows)))
		return errs
	}

	check := func(a int, f Foot, name string, got, want ArrowSet) {
		if got != want {
			errs = append(errs, fmt.Errorf("arrowdata: pad %q mirror asymmetry: arrow %d foot %s relation %s = %#x, want %#x (mirror of arrow %d foot %s)",
				p.Name, a, f, name, got, want, MirrorArrow(n, a), f.Other()))
		}
	}

	for a := 0; a < n; a++ {
		mirror := MirrorArrow(n, a)
		for _, f := range []Foot{Left, Right} {
			own := p.Relations(a).For(f)
			other := p.Relations(mirror).For(f.Other())

			check(a, f, "ValidNext", own.ValidNext, mirrorSet(n, other.ValidNext))
			check(a, f, "NonCrossoverPair", own.NonCrossoverPair, mirrorSet(n, other.NonCrossoverPair))
			check(a, f, "CrossoverFront", own.CrossoverFront, mirrorSet(n, other.CrossoverFront))
			check(a, f, "CrossoverBehind", own.CrossoverBehind, mirrorSet(n, other.CrossoverBehind))
			check(a, f, "InvertFront", own.InvertFront, mirrorSet(n, other.InvertFront))
			check(a, f, "InvertBehind", own.InvertBehind, mirrorSet(n, other.InvertBehind))

			// Bracketability flips heel/toe across the mirror.
			check(a, f, "BracketHeelToe", own.BracketHeelToe, mirrorSet(n, other.BracketToeHeel))
			check(a, f, "BracketToeHeel", own.BracketToeHeel, mirrorSet(n, other.BracketHeelToe))
		}
	}
	return errs
}

// MustValidate panics if p is not mirror-symmetric. Called from the
// package init() of every built-in pad, per spec §4.1 ("implementations
// must assert this on startup").
func MustValidate(p PadDescriptor) {
	if errs := Validate(p); len(errs) > 0 {
		panic(fmt.Sprintf("arrowdata: pad %q failed mirror-symmetry validation: %v", p.Name, errs[0]))
	}
}
