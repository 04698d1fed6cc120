package arrowdata

// Singles arrow indices: Left, Down, Up, Right.
const (
	SinglesLeft  = 0
	SinglesDown  = 1
	SinglesUp    = 2
	SinglesRight = 3
)

var singlesPad = PadDescriptor{
	Name:            "singles",
	NumArrows:       4,
	LeftStartArrow:  SinglesLeft,
	RightStartArrow: SinglesRight,
	Arrows:          BuildMirrored(4, linearPad(4, 3, 1, 1)),
}

func init() {
	MustValidate(singlesPad)
}

// Singles returns the 4-panel pad descriptor.
func Singles() PadDescriptor {
	return singlesPad
}
