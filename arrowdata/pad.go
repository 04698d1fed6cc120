package arrowdata

// linearPad builds the Left-foot relation table for a pad whose arrows are
// laid out in left-to-right physical order by increasing index (true for
// both Singles, indexed L,D,U,R, and Doubles, indexed as two Singles pads
// placed side by side). Under this layout a single rule captures
// crossover/inversion for every pad this package describes: the body is
// crossed whenever the right foot's arrow index is less than the left
// foot's — a statement that is foot/mirror-symmetric by construction, so
// BuildMirrored only ever needs the Left-foot table.
//
//   - reachDistance bounds ValidNext: a foot may step to any arrow within
//     reachDistance of its current one.
//   - bracketDistance bounds which adjacent-arrow pairs are bracketable
//     (always exactly 1: a bracket is a heel+toe pair on touching panels).
//   - invertDistance bounds how tight a crossover must be to count as an
//     inversion rather than a plain crossover.
func linearPad(numArrows, reachDistance, bracketDistance, invertDistance int) []FootRelations {
	rels := make([]FootRelations, numArrows)
	for a := 0; a < numArrows; a++ {
		var r FootRelations
		for b := 0; b < numArrows; b++ {
			dist := b - a
			if dist < 0 {
				dist = -dist
			}
			if dist > 0 && dist <= reachDistance {
				r.ValidNext = r.ValidNext.Add(b)
			}
			if b >= a {
				r.NonCrossoverPair = r.NonCrossoverPair.Add(b)
			} else {
				r.CrossoverFront = r.CrossoverFront.Add(b)
				r.CrossoverBehind = r.CrossoverBehind.Add(b)
				if a-b <= invertDistance {
					r.InvertFront = r.InvertFront.Add(b)
					r.InvertBehind = r.InvertBehind.Add(b)
				}
			}
			if dist > 0 && dist <= bracketDistance {
				if b == a+dist {
					r.BracketHeelToe = r.BracketHeelToe.Add(b)
				} else {
					r.BracketToeHeel = r.BracketToeHeel.Add(b)
				}
			}
		}
		rels[a] = r
	}
	return rels
}
