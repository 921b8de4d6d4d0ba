package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/ply/position"
)

var (
	ErrInvalidFEN = errors.New("invalid fen")

	drawLight = color.New(color.FgBlack, color.BgHiWhite)
	drawDark  = color.New(color.FgBlack, color.BgGreen)
	drawLabel = color.New(color.Bold)
)

// Board is the full game state: the grid, the side to move, castling and
// en passant metadata, and the history needed to undo every applied move.
// A Board is not safe for concurrent use; Clone it to hand a copy to another
// goroutine.
type Board struct {
	// grid data
	cells   [Height][Width]Cell
	kingPos [2 + 1]position.Square

	// meta
	turn          Side
	castleRights  CastleRights
	enPassant     position.Square
	halfMoveClock uint16
	fullMoveClock uint16

	// history, one entry per applied move
	moveLog          []Move
	castleRightsLog  []CastleRights
	enPassantLog     []position.Square
	halfMoveClockLog []uint16
	scanLog          []scan

	// scratch, recomputed by GetValidMoves
	inCheck   bool
	pins      []Pin
	checks    []Check
	checkmate bool
	stalemate bool
}

// scan is the scratch left by GetValidMoves. Its slices are never written
// after the scan, so logged copies may share them.
type scan struct {
	inCheck   bool
	pins      []Pin
	checks    []Check
	checkmate bool
	stalemate bool
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{
		enPassant: position.NoSquare,
	}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) Turn() Side {
	return b.turn
}

// Cell returns the content of sq, or CellEmpty if sq is off the board.
func (b *Board) Cell(sq position.Square) Cell {
	if !sq.IsValid() {
		return CellEmpty
	}
	return b.cells[sq.Row][sq.Col]
}

func (b *Board) KingSquare(s Side) position.Square {
	return b.kingPos[s]
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// EnPassant returns the en passant target square, or position.NoSquare.
func (b *Board) EnPassant() position.Square {
	return b.enPassant
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

func (b *Board) Ply() int {
	return len(b.moveLog)
}

// History returns a copy of the applied moves, oldest first.
func (b *Board) History() []Move {
	return append([]Move(nil), b.moveLog...)
}

// InCheck, Pins, Checks, Checkmate and Stalemate report the result of the
// last GetValidMoves call.
func (b *Board) InCheck() bool {
	return b.inCheck
}

func (b *Board) Pins() []Pin {
	return b.pins
}

func (b *Board) Checks() []Check {
	return b.checks
}

func (b *Board) Checkmate() bool {
	return b.checkmate
}

func (b *Board) Stalemate() bool {
	return b.stalemate
}

// State recomputes the legal moves of the side to move and summarizes them.
func (b *Board) State() State {
	mvs := b.GetValidMoves()
	switch {
	case b.checkmate:
		return StateCheckmate
	case b.stalemate:
		return StateStalemate
	case b.inCheck && len(mvs) > 0:
		return StateCheck
	default:
		return StateRunning
	}
}

func (b *Board) set(sq position.Square, c Cell) {
	b.cells[sq.Row][sq.Col] = c
}

// MakeMove applies mv, which must have been built against the current
// position, and records everything UndoMove needs to reverse it.
func (b *Board) MakeMove(mv Move) {
	b.moveLog = append(b.moveLog, mv)
	b.castleRightsLog = append(b.castleRightsLog, b.castleRights)
	b.enPassantLog = append(b.enPassantLog, b.enPassant)
	b.halfMoveClockLog = append(b.halfMoveClockLog, b.halfMoveClock)
	b.scanLog = append(b.scanLog, scan{
		inCheck:   b.inCheck,
		pins:      b.pins,
		checks:    b.checks,
		checkmate: b.checkmate,
		stalemate: b.stalemate,
	})

	s := mv.Moved.Side()
	b.set(mv.From, CellEmpty)
	b.set(mv.To, mv.Moved)

	if mv.Moved.Piece() == PieceKing {
		b.kingPos[s] = mv.To
	}
	if mv.IsEnPassant {
		b.set(position.NewSquare(mv.From.Row, mv.To.Col), CellEmpty)
	}
	if mv.IsCastle {
		from, to := castleRookHops(mv)
		b.set(to, b.Cell(from))
		b.set(from, CellEmpty)
	}
	if mv.IsPromote {
		b.set(mv.To, NewCell(s, PawnPromotePiece))
	}

	// update enPassant
	b.enPassant = position.NoSquare
	if mv.Moved.Piece() == PiecePawn && (mv.To.Row-mv.From.Row == 2 || mv.From.Row-mv.To.Row == 2) {
		b.enPassant = position.NewSquare((mv.From.Row+mv.To.Row)/2, mv.From.Col)
	}

	b.updateCastleRights(mv)

	// update half move clock
	if mv.Moved.Piece() == PiecePawn || mv.IsCapture() {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}

	// update full move clock
	if b.turn == SideBlack {
		b.fullMoveClock++
	}

	b.turn = b.turn.Opposite()
}

// UndoMove reverts the last applied move, including the legality scratch
// reported by InCheck, Pins, Checks, Checkmate and Stalemate. It is a no-op
// on an empty history.
func (b *Board) UndoMove() {
	n := len(b.moveLog) - 1
	if n < 0 {
		return
	}
	mv := b.moveLog[n]
	b.moveLog = b.moveLog[:n]

	b.set(mv.From, mv.Moved)
	b.set(mv.To, mv.Captured)

	if mv.Moved.Piece() == PieceKing {
		b.kingPos[mv.Moved.Side()] = mv.From
	}
	if mv.IsEnPassant {
		b.set(mv.To, CellEmpty)
		b.set(position.NewSquare(mv.From.Row, mv.To.Col), mv.Captured)
	}
	if mv.IsCastle {
		from, to := castleRookHops(mv)
		b.set(from, b.Cell(to))
		b.set(to, CellEmpty)
	}

	b.castleRights = b.castleRightsLog[n]
	b.castleRightsLog = b.castleRightsLog[:n]
	b.enPassant = b.enPassantLog[n]
	b.enPassantLog = b.enPassantLog[:n]
	b.halfMoveClock = b.halfMoveClockLog[n]
	b.halfMoveClockLog = b.halfMoveClockLog[:n]

	b.turn = b.turn.Opposite()
	if b.turn == SideBlack {
		b.fullMoveClock--
	}

	sc := b.scanLog[n]
	b.scanLog = b.scanLog[:n]
	b.inCheck, b.pins, b.checks = sc.inCheck, sc.pins, sc.checks
	b.checkmate, b.stalemate = sc.checkmate, sc.stalemate
}

// castleRookHops returns the rook's squares before and after a castle move.
func castleRookHops(mv Move) (position.Square, position.Square) {
	if mv.To.Col > mv.From.Col {
		return position.NewSquare(mv.To.Row, mv.To.Col+1), position.NewSquare(mv.To.Row, mv.To.Col-1)
	}
	return position.NewSquare(mv.To.Row, mv.To.Col-2), position.NewSquare(mv.To.Row, mv.To.Col+1)
}

func (b *Board) updateCastleRights(mv Move) {
	if mv.Moved.Piece() == PieceKing {
		s := mv.Moved.Side()
		b.castleRights.Set(NewCastleDirection(s, true), false)
		b.castleRights.Set(NewCastleDirection(s, false), false)
	}
	// a rook leaving its corner, or anything landing on it, ends that right
	for d := CastleDirectionWhiteKingside; d <= CastleDirectionBlackQueenside; d++ {
		if mv.From == posCastleRook[d] || mv.To == posCastleRook[d] {
			b.castleRights.Set(d, false)
		}
	}
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	bb := *b
	bb.moveLog = append([]Move(nil), b.moveLog...)
	bb.castleRightsLog = append([]CastleRights(nil), b.castleRightsLog...)
	bb.enPassantLog = append([]position.Square(nil), b.enPassantLog...)
	bb.halfMoveClockLog = append([]uint16(nil), b.halfMoveClockLog...)
	bb.scanLog = append([]scan(nil), b.scanLog...)
	bb.pins = append([]Pin(nil), b.pins...)
	bb.checks = append([]Check(nil), b.checks...)
	return &bb
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for row := int8(0); row < Height; row++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", position.NotationComponentRow(row)))
		for col := int8(0); col < Width; col++ {
			c := b.cells[row][col]
			sym := " "
			if !c.IsEmpty() {
				sym = c.String()
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for col := int8(0); col < Width; col++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", position.NotationComponentCol(col)))
	}
	return builder.String()
}

func (b *Board) Draw() string {
	builder := strings.Builder{}
	for row := int8(0); row < Height; row++ {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %s ", position.NotationComponentRow(row)))
		for col := int8(0); col < Width; col++ {
			c := b.cells[row][col]
			sym := " "
			if !c.IsEmpty() {
				sym = c.Piece().SymbolUnicode(c.Side())
			}
			paint := drawLight
			if (row+col)%2 == 1 {
				paint = drawDark
			}
			_, _ = builder.WriteString(paint.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := int8(0); col < Width; col++ {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %s ", position.NotationComponentCol(col)))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %s\nenp:  %s\nhalf: %4d\nfull: %4d\nstat: %s",
		b.castleRights, b.enPassant, b.halfMoveClock, b.fullMoveClock, b.State())
}
