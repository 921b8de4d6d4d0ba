package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromotePiece is the only piece a pawn promotes to.
const PawnPromotePiece = PieceQueen

var (
	pieceNames   = [...]string{"", "Pawn", "Bishop", "Knight", "Rook", "Queen", "King"}
	pieceLetters = [...]rune{0, 'P', 'B', 'N', 'R', 'Q', 'K'}
	pieceGlyphs  = [2 + 1][PieceKing + 1]string{
		SideWhite: {"", "♙", "♗", "♘", "♖", "♕", "♔"},
		SideBlack: {"", "♟", "♝", "♞", "♜", "♛", "♚"},
	}
)

func (p Piece) IsValid() bool {
	return p > PieceUnknown && p <= PieceKing
}

func (p Piece) String() string {
	if !p.IsValid() {
		return ""
	}
	return pieceNames[p]
}

// SymbolFEN returns the piece letter, upper case for white and lower case
// for black.
func (p Piece) SymbolFEN(s Side) string {
	if !p.IsValid() {
		return ""
	}
	sym := pieceLetters[p]
	if s == SideBlack {
		sym |= 0x20
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side) string {
	if !p.IsValid() || (s != SideWhite && s != SideBlack) {
		return ""
	}
	return pieceGlyphs[s][p]
}

// NewCellFromSymbol is the inverse of Cell.String for occupied squares.
func NewCellFromSymbol(sym rune) (Cell, bool) {
	s := SideWhite
	if sym >= 'a' && sym <= 'z' {
		s, sym = SideBlack, sym&^0x20
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		if pieceLetters[p] == sym {
			return NewCell(s, p), true
		}
	}
	return CellEmpty, false
}

// Cell is the content of one board square, packed as side<<4 | piece.
// The zero value is an empty square.
type Cell uint8

const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	return Cell(uint8(s)<<4 + uint8(p))
}

func (c Cell) Side() Side {
	return Side(c >> 4)
}

func (c Cell) Piece() Piece {
	return Piece(c & 0x0F)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) Is(s Side, p Piece) bool {
	return c == NewCell(s, p)
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "--"
	}
	return c.Piece().SymbolFEN(c.Side())
}
