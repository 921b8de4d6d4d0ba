package board

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteKingside
	CastleDirectionWhiteQueenside
	CastleDirectionBlackKingside
	CastleDirectionBlackQueenside
)

func NewCastleDirection(s Side, kingside bool) CastleDirection {
	switch {
	case s == SideWhite && kingside:
		return CastleDirectionWhiteKingside
	case s == SideWhite:
		return CastleDirectionWhiteQueenside
	case s == SideBlack && kingside:
		return CastleDirectionBlackKingside
	case s == SideBlack:
		return CastleDirectionBlackQueenside
	default:
		return CastleDirectionUnknown
	}
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteKingside:
		return "White 0-0"
	case CastleDirectionWhiteQueenside:
		return "White 0-0-0"
	case CastleDirectionBlackKingside:
		return "Black 0-0"
	case CastleDirectionBlackQueenside:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteKingside || d == CastleDirectionWhiteQueenside
}

func (d CastleDirection) IsKingside() bool {
	return d == CastleDirectionWhiteKingside || d == CastleDirectionBlackKingside
}

// CastleRights holds the four castling permissions as a bit mask.
type CastleRights uint8

const CastleRightsAll CastleRights = 0b1111

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	return c.IsAllowed(NewCastleDirection(s, true)) || c.IsAllowed(NewCastleDirection(s, false))
}

func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	var s string
	if c.IsAllowed(CastleDirectionWhiteKingside) {
		s += "K"
	}
	if c.IsAllowed(CastleDirectionWhiteQueenside) {
		s += "Q"
	}
	if c.IsAllowed(CastleDirectionBlackKingside) {
		s += "k"
	}
	if c.IsAllowed(CastleDirectionBlackQueenside) {
		s += "q"
	}
	return s
}
