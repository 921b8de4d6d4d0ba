package board

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// PawnDirection is the row delta of a single pawn advance.
func (s Side) PawnDirection() int8 {
	if s == SideWhite {
		return -1
	}
	return 1
}

// PawnStartRow is the row from which pawns may advance two squares.
func (s Side) PawnStartRow() int8 {
	if s == SideWhite {
		return 6
	}
	return 1
}

// BackRow is the row the side's king and rooks start on.
func (s Side) BackRow() int8 {
	if s == SideWhite {
		return 7
	}
	return 0
}

// PromotionRow is the last row reachable by the side's pawns.
func (s Side) PromotionRow() int8 {
	return s.Opposite().BackRow()
}
