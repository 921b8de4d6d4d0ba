package board

import "github.com/daystram/ply/position"

// Move describes one ply. Moved and Captured are snapshots of the board the
// move was built from, so a Move is only meaningful against that position.
type Move struct {
	From, To position.Square
	Moved    Cell
	Captured Cell

	IsEnPassant bool
	IsCastle    bool
	IsPromote   bool
}

// NewMove builds the move from one square to another on the given board,
// deriving the en passant, castle and promotion flags from the position.
func NewMove(b *Board, from, to position.Square) Move {
	mv := Move{
		From:     from,
		To:       to,
		Moved:    b.Cell(from),
		Captured: b.Cell(to),
	}
	s := mv.Moved.Side()
	switch mv.Moved.Piece() {
	case PiecePawn:
		mv.IsPromote = to.Row == s.PromotionRow()
		if from.Col != to.Col && to == b.enPassant && mv.Captured.IsEmpty() {
			mv.IsEnPassant = true
			mv.Captured = NewCell(s.Opposite(), PiecePawn)
		}
	case PieceKing:
		mv.IsCastle = from.Row == to.Row && (to.Col-from.Col == 2 || from.Col-to.Col == 2)
	}
	return mv
}

// Equals compares squares and flags only; piece snapshots are informational.
func (m Move) Equals(other Move) bool {
	return m.From == other.From && m.To == other.To &&
		m.IsEnPassant == other.IsEnPassant &&
		m.IsCastle == other.IsCastle &&
		m.IsPromote == other.IsPromote
}

func (m Move) IsNull() bool {
	return m.Moved.IsEmpty()
}

func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

func (m Move) String() string {
	return m.Notation()
}

// Notation returns the coordinate notation of the move, e.g. "e2e4".
func (m Move) Notation() string {
	return m.From.Notation() + m.To.Notation()
}

func (m Move) UCI() string {
	if m.IsPromote {
		return m.Notation() + PawnPromotePiece.SymbolFEN(SideBlack)
	}
	return m.Notation()
}

func (m Move) Algebra() string {
	if m.IsCastle {
		if m.To.Col > m.From.Col {
			return "0-0"
		}
		return "0-0-0"
	}
	var nt string
	if p := m.Moved.Piece(); p != PiecePawn {
		nt = p.SymbolFEN(SideWhite) // SideWhite because it returns capital symbols
	}
	if m.IsCapture() {
		if m.Moved.Piece() == PiecePawn {
			nt += position.NotationComponentCol(m.From.Col)
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote {
		nt += "=" + PawnPromotePiece.SymbolFEN(SideWhite)
	}
	if m.IsEnPassant {
		nt += " e.p."
	}
	return nt
}
