package arrowdata

// Doubles arrow indices: two Singles pads (Left, Down, Up, Right) placed
// side by side. 0-3 is the first pad, 4-7 the second; arrows 3 and 4 sit
// at the shared boundary between the pads.
const (
	DoublesP1Left  = 0
	DoublesP1Down  = 1
	DoublesP1Up    = 2
	DoublesP1Right = 3
	DoublesP2Left  = 4
	DoublesP2Down  = 5
	DoublesP2Up    = 6
	DoublesP2Right = 7
)

var doublesPad = PadDescriptor{
	Name:            "doubles",
	NumArrows:       8,
	LeftStartArrow:  DoublesP1Right,
	RightStartArrow: DoublesP2Left,
	Arrows:          BuildMirrored(8, linearPad(8, 4, 1, 1)),
}

func init() {
	MustValidate(doublesPad)
}

// Doubles returns the 8-panel pad descriptor. The default start arrows
// are the centre-centre position (P1-Right, P2-Left), the first root tier
// a singles->doubles performance prefers (spec §4.5, SPEC_FULL "Root-tier
// table").
func Doubles() PadDescriptor {
	return doublesPad
}
