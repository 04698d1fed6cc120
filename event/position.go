package event

import (
	"fmt"
	"math/big"
)

// Position is a totally ordered, exactly comparable point in a chart's
// timeline (spec §3: "a position that is totally ordered and supports
// equality"). It is a reduced rational number of measures from the start
// of the chart, which is the only representation that is exact across the
// odd time signatures and 1/192-resolution holds real charts use; a
// floating-point beat count would accumulate rounding error across a long
// chart and silently break the determinism property (spec §8).
type Position struct {
	rat *big.Rat
}

// NewPosition returns the position num/den measures from the start.
func NewPosition(num, den int64) Position {
	return Position{rat: big.NewRat(num, den)}
}

// Zero is the position at the start of the chart.
var Zero = NewPosition(0, 1)

// Compare returns -1, 0, or 1 as p is before, equal to, or after q.
func (p Position) Compare(q Position) int {
	return p.rat.Cmp(q.rat)
}

// Equal reports whether p and q denote the same position.
func (p Position) Equal(q Position) bool {
	return p.Compare(q) == 0
}

// Before reports whether p strictly precedes q.
func (p Position) Before(q Position) bool {
	return p.Compare(q) < 0
}

// After reports whether p strictly follows q.
func (p Position) After(q Position) bool {
	return p.Compare(q) > 0
}

// Distance returns the absolute difference between p and q, used to rank
// mine-pairing candidates by time-proximity to the mine (spec §4.4).
func Distance(p, q Position) Position {
	d := new(big.Rat).Sub(p.rat, q.rat)
	d.Abs(d)
	return Position{rat: d}
}

func (p Position) String() string {
	if p.rat == nil {
		return "0/1"
	}
	return fmt.Sprintf("%s/%s", p.rat.Num(), p.rat.Denom())
}
