package board

import (
	"slices"

	"github.com/daystram/ply/position"
)

// GetValidMoves returns every legal move of the side to move. As a side
// effect it refreshes the cached check, pin and terminal state.
func (b *Board) GetValidMoves() []Move {
	b.inCheck, b.pins, b.checks = b.CheckForPinsAndChecks()
	king := b.kingPos[b.turn]

	var mvs []Move
	switch len(b.checks) {
	case 0:
		mvs = b.generatePseudoLegalMoves()
	case 1:
		check := b.checks[0]
		valid := b.checkResolvingSquares(king, check)
		all := b.generatePseudoLegalMoves()
		mvs = make([]Move, 0, len(all))
		for _, mv := range all {
			switch {
			case mv.Moved.Piece() == PieceKing:
			case slices.Contains(valid, mv.To):
			case mv.IsEnPassant && position.NewSquare(mv.From.Row, mv.To.Col) == check.Square:
			default:
				continue
			}
			mvs = append(mvs, mv)
		}
	default:
		// double check, only the King can move
		mvs = b.genKingMoves(king, nil)
	}

	b.checkmate = len(mvs) == 0 && b.inCheck
	b.stalemate = len(mvs) == 0 && !b.inCheck
	return mvs
}

// IsLegal reports whether mv is among the legal moves of the current position.
func (b *Board) IsLegal(mv Move) bool {
	for _, legal := range b.GetValidMoves() {
		if legal.Equals(mv) {
			return true
		}
	}
	return false
}

// generatePseudoLegalMoves generates moves that respect pins and King safety
// but not the need to answer a check.
func (b *Board) generatePseudoLegalMoves() []Move {
	mvs := make([]Move, 0, 64)
	for row := int8(0); row < Height; row++ {
		for col := int8(0); col < Width; col++ {
			c := b.cells[row][col]
			if c.IsEmpty() || c.Side() != b.turn {
				continue
			}
			mvs = b.genPieceMoves(position.NewSquare(row, col), c.Piece(), mvs)
		}
	}
	return mvs
}

func (b *Board) genPieceMoves(from position.Square, p Piece, mvs []Move) []Move {
	switch p {
	case PiecePawn:
		return b.genPawnMoves(from, mvs)
	case PieceKnight:
		return b.genKnightMoves(from, mvs)
	case PieceBishop:
		return b.genSlidingMoves(from, diagonalDirections, mvs)
	case PieceRook:
		return b.genSlidingMoves(from, orthogonalDirections, mvs)
	case PieceQueen:
		mvs = b.genSlidingMoves(from, orthogonalDirections, mvs)
		return b.genSlidingMoves(from, diagonalDirections, mvs)
	case PieceKing:
		return b.genKingMoves(from, mvs)
	default:
		return mvs
	}
}

func (b *Board) genPawnMoves(from position.Square, mvs []Move) []Move {
	s := b.turn
	pinDir, pinned := b.pinFor(from)

	forward := position.Direction{Row: s.PawnDirection()}
	if !pinned || forward.IsAlong(pinDir) {
		one := from.Add(forward, 1)
		if one.IsValid() && b.Cell(one).IsEmpty() {
			mvs = append(mvs, NewMove(b, from, one))
			two := from.Add(forward, 2)
			if from.Row == s.PawnStartRow() && b.Cell(two).IsEmpty() {
				mvs = append(mvs, NewMove(b, from, two))
			}
		}
	}

	for _, dc := range [2]int8{-1, 1} {
		capture := position.Direction{Row: s.PawnDirection(), Col: dc}
		if pinned && !capture.IsAlong(pinDir) {
			continue
		}
		to := from.Add(capture, 1)
		if !to.IsValid() {
			continue
		}
		if c := b.Cell(to); !c.IsEmpty() {
			if c.Side() != s {
				mvs = append(mvs, NewMove(b, from, to))
			}
			continue
		}
		if to == b.enPassant && b.isEnPassantSafe(from, to) {
			mvs = append(mvs, NewMove(b, from, to))
		}
	}
	return mvs
}

// isEnPassantSafe rejects an en passant capture that empties the squares
// shielding the King. Both pawns leave the rank at once, which the pin scan
// cannot see, and the captured pawn may have been blocking a diagonal.
func (b *Board) isEnPassantSafe(from, to position.Square) bool {
	king := b.kingPos[b.turn]
	if king.Row == from.Row {
		return b.isEnPassantRankSafe(king, from, to)
	}
	return b.isEnPassantDiagonalSafe(king, position.NewSquare(from.Row, to.Col))
}

func (b *Board) isEnPassantRankSafe(king, from, to position.Square) bool {
	lo, hi := min(from.Col, to.Col), max(from.Col, to.Col)

	var inside [2]int8 // inclusive, empty when the King is adjacent
	var outsideFrom, step int8
	if king.Col < lo {
		inside = [2]int8{king.Col + 1, lo - 1}
		outsideFrom, step = hi+1, 1
	} else {
		inside = [2]int8{hi + 1, king.Col - 1}
		outsideFrom, step = lo-1, -1
	}
	for col := inside[0]; col <= inside[1]; col++ {
		if !b.cells[from.Row][col].IsEmpty() {
			return true
		}
	}
	for col := outsideFrom; 0 <= col && col < Width; col += step {
		c := b.cells[from.Row][col]
		if c.IsEmpty() {
			continue
		}
		return !(c.Side() != b.turn && (c.Piece() == PieceRook || c.Piece() == PieceQueen))
	}
	return true
}

func (b *Board) isEnPassantDiagonalSafe(king, captured position.Square) bool {
	dr, dc := captured.Row-king.Row, captured.Col-king.Col
	if dr != dc && dr != -dc {
		return true
	}
	d := position.Direction{Row: sign(dr), Col: sign(dc)}
	for i := int8(1); i < Width; i++ {
		sq := king.Add(d, i)
		if !sq.IsValid() {
			break
		}
		c := b.Cell(sq)
		if sq == captured || c.IsEmpty() {
			continue
		}
		return !(c.Side() != b.turn && (c.Piece() == PieceBishop || c.Piece() == PieceQueen))
	}
	return true
}

func sign(x int8) int8 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func (b *Board) genKnightMoves(from position.Square, mvs []Move) []Move {
	// a pinned knight can never stay on its pin axis
	if _, pinned := b.pinFor(from); pinned {
		return mvs
	}
	for _, o := range knightOffsets {
		to := from.Add(o, 1)
		if !to.IsValid() {
			continue
		}
		if c := b.Cell(to); c.IsEmpty() || c.Side() != b.turn {
			mvs = append(mvs, NewMove(b, from, to))
		}
	}
	return mvs
}

func (b *Board) genSlidingMoves(from position.Square, dirs []position.Direction, mvs []Move) []Move {
	pinDir, pinned := b.pinFor(from)
	for _, d := range dirs {
		if pinned && !d.IsAlong(pinDir) {
			continue
		}
		for i := int8(1); i < Width; i++ {
			to := from.Add(d, i)
			if !to.IsValid() {
				break
			}
			c := b.Cell(to)
			if c.IsEmpty() {
				mvs = append(mvs, NewMove(b, from, to))
				continue
			}
			if c.Side() != b.turn {
				mvs = append(mvs, NewMove(b, from, to))
			}
			break
		}
	}
	return mvs
}

func (b *Board) genKingMoves(from position.Square, mvs []Move) []Move {
	s := b.turn
	for _, d := range directions {
		to := from.Add(d, 1)
		if !to.IsValid() {
			continue
		}
		if c := b.Cell(to); !c.IsEmpty() && c.Side() == s {
			continue
		}
		b.kingPos[s] = to
		inCheck, _, _ := b.CheckForPinsAndChecks()
		b.kingPos[s] = from
		if !inCheck {
			mvs = append(mvs, NewMove(b, from, to))
		}
	}
	return b.genCastleMoves(from, mvs)
}

func (b *Board) genCastleMoves(from position.Square, mvs []Move) []Move {
	s := b.turn
	if !b.castleRights.IsSideAllowed(s) || from != position.NewSquare(s.BackRow(), 4) {
		return mvs
	}
	if b.SquareUnderAttack(from, s) {
		return mvs
	}

	east := position.Direction{Col: 1}
	if d := NewCastleDirection(s, true); b.castleRights.IsAllowed(d) && b.Cell(posCastleRook[d]).Is(s, PieceRook) &&
		b.isCastlePathClear(from, east, 2, 2) {
		mvs = append(mvs, NewMove(b, from, from.Add(east, 2)))
	}
	west := position.Direction{Col: -1}
	if d := NewCastleDirection(s, false); b.castleRights.IsAllowed(d) && b.Cell(posCastleRook[d]).Is(s, PieceRook) &&
		b.isCastlePathClear(from, west, 3, 2) {
		mvs = append(mvs, NewMove(b, from, from.Add(west, 2)))
	}
	return mvs
}

// isCastlePathClear checks that the first empty squares along d are empty
// and the first transit squares the King crosses are not attacked.
func (b *Board) isCastlePathClear(from position.Square, d position.Direction, empty, transit int8) bool {
	for i := int8(1); i <= empty; i++ {
		if !b.Cell(from.Add(d, i)).IsEmpty() {
			return false
		}
	}
	for i := int8(1); i <= transit; i++ {
		if b.SquareUnderAttack(from.Add(d, i), b.turn) {
			return false
		}
	}
	return true
}
