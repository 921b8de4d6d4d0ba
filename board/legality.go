package board

import (
	"github.com/daystram/ply/position"
)

// Pin is an allied piece that may only move along Direction (either way)
// without exposing its King.
type Pin struct {
	Square    position.Square
	Direction position.Direction
}

// Check is an enemy piece attacking the King. Direction points from the King
// toward the attacker and is zero for knight checks.
type Check struct {
	Square    position.Square
	Direction position.Direction
}

// CheckForPinsAndChecks scans outward from the King of the side to move.
func (b *Board) CheckForPinsAndChecks() (bool, []Pin, []Check) {
	return b.scanPinsAndChecks(b.kingPos[b.turn], b.turn)
}

// IsKingChecked reports whether the King of the side to move is attacked,
// without touching the cached pins and checks.
func (b *Board) IsKingChecked() bool {
	inCheck, _, _ := b.CheckForPinsAndChecks()
	return inCheck
}

func (b *Board) scanPinsAndChecks(from position.Square, ally Side) (bool, []Pin, []Check) {
	var (
		inCheck bool
		pins    []Pin
		checks  []Check
	)
	enemy := ally.Opposite()
	for j, d := range directions {
		possiblePin := position.NoSquare
		for i := int8(1); i < Width; i++ {
			sq := from.Add(d, i)
			if !sq.IsValid() {
				break
			}
			c := b.Cell(sq)
			if c.IsEmpty() {
				continue
			}
			if c.Side() == ally {
				if c.Piece() == PieceKing {
					// the King may be probing a square away from its own cell
					continue
				}
				if possiblePin == position.NoSquare {
					possiblePin = sq
					continue
				}
				break
			}
			if attacksAlong(c.Piece(), enemy, j, i) {
				if possiblePin == position.NoSquare {
					inCheck = true
					checks = append(checks, Check{Square: sq, Direction: d})
				} else {
					pins = append(pins, Pin{Square: possiblePin, Direction: d})
				}
			}
			break
		}
	}

	for _, o := range knightOffsets {
		sq := from.Add(o, 1)
		if b.Cell(sq).Is(enemy, PieceKnight) {
			inCheck = true
			checks = append(checks, Check{Square: sq})
		}
	}
	return inCheck, pins, checks
}

// SquareUnderAttack reports whether any piece of ally's opponent attacks sq.
// Rays stop at the first piece of either side.
func (b *Board) SquareUnderAttack(sq position.Square, ally Side) bool {
	enemy := ally.Opposite()
	for j, d := range directions {
		for i := int8(1); i < Width; i++ {
			to := sq.Add(d, i)
			if !to.IsValid() {
				break
			}
			c := b.Cell(to)
			if c.IsEmpty() {
				continue
			}
			if c.Side() == enemy && attacksAlong(c.Piece(), enemy, j, i) {
				return true
			}
			break
		}
	}

	for _, o := range knightOffsets {
		if b.Cell(sq.Add(o, 1)).Is(enemy, PieceKnight) {
			return true
		}
	}
	return false
}

// attacksAlong reports whether a piece of the attacker side, found dist
// squares away along directions[dirIndex], attacks the origin square.
func attacksAlong(p Piece, attacker Side, dirIndex int, dist int8) bool {
	switch p {
	case PieceRook:
		return isOrthogonal(dirIndex)
	case PieceBishop:
		return !isOrthogonal(dirIndex)
	case PieceQueen:
		return true
	case PieceKing:
		return dist == 1
	case PiecePawn:
		// a pawn sits one step behind the squares it attacks
		return dist == 1 && !isOrthogonal(dirIndex) && directions[dirIndex].Row == -attacker.PawnDirection()
	default:
		return false
	}
}

// pinFor returns the pin axis of the piece on sq, if it is pinned.
func (b *Board) pinFor(sq position.Square) (position.Direction, bool) {
	for _, pin := range b.pins {
		if pin.Square == sq {
			return pin.Direction, true
		}
	}
	return position.Direction{}, false
}

// checkResolvingSquares lists the squares a non-King move may land on to
// answer a single check: the checker itself, plus the line in between for sliders.
func (b *Board) checkResolvingSquares(king position.Square, check Check) []position.Square {
	if check.Direction.IsZero() || b.Cell(check.Square).Piece() == PieceKnight {
		return []position.Square{check.Square}
	}
	var squares []position.Square
	for i := int8(1); i < Width; i++ {
		sq := king.Add(check.Direction, i)
		squares = append(squares, sq)
		if sq == check.Square || !sq.IsValid() {
			break
		}
	}
	return squares
}
