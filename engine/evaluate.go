package engine

import (
	"github.com/daystram/ply/board"
	"github.com/daystram/ply/position"
)

var (
	scorePiece = [6 + 1]int32{
		board.PiecePawn:   100,
		board.PieceKnight: 300,
		board.PieceBishop: 300,
		board.PieceRook:   500,
		board.PieceQueen:  1000,
		board.PieceKing:   0,
	}

	// knights are worth more towards the centre; the table is symmetric
	// across both axes so it needs no per-side flip
	scoreKnightPosition = [board.Height][board.Width]int32{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 2, 2, 2, 2, 2, 2, 1},
		{1, 2, 3, 3, 3, 3, 2, 1},
		{1, 2, 3, 4, 4, 3, 2, 1},
		{1, 2, 3, 4, 4, 3, 2, 1},
		{1, 2, 3, 3, 3, 3, 2, 1},
		{1, 2, 2, 2, 2, 2, 2, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	scoreKnightPositionWeight int32 = 20
)

// Evaluate scores b from White's point of view: positive favours White.
// Terminal flags are read from the last GetValidMoves call on b, so a
// mated side to move scores as a loss for that side and stalemate as 0.
func Evaluate(b *board.Board) int32 {
	if b.Checkmate() {
		if b.Turn() == board.SideWhite {
			return -ScoreCheckmate
		}
		return ScoreCheckmate
	}
	if b.Stalemate() {
		return 0
	}

	var score int32
	for row := int8(0); row < board.Height; row++ {
		for col := int8(0); col < board.Width; col++ {
			c := b.Cell(position.NewSquare(row, col))
			if c.IsEmpty() {
				continue
			}
			s := scorePiece[c.Piece()]
			if c.Piece() == board.PieceKnight {
				s += scoreKnightPosition[row][col] * scoreKnightPositionWeight
			}
			if c.Side() == board.SideWhite {
				score += s
			} else {
				score -= s
			}
		}
	}
	return score
}
