package board

import (
	"github.com/daystram/ply/position"
)

const (
	Width  = position.MaxComponentScalar
	Height = position.MaxComponentScalar

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var (
	// Ray directions scanned outward from a square. The first four are
	// orthogonal (rook lines), the last four diagonal (bishop lines).
	directions = [8]position.Direction{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: 1, Col: 0},
		{Row: 0, Col: 1},
		{Row: -1, Col: -1},
		{Row: -1, Col: 1},
		{Row: 1, Col: -1},
		{Row: 1, Col: 1},
	}
	orthogonalDirections = directions[:4]
	diagonalDirections   = directions[4:]

	knightOffsets = [8]position.Direction{
		{Row: -2, Col: -1},
		{Row: -2, Col: 1},
		{Row: -1, Col: -2},
		{Row: -1, Col: 2},
		{Row: 1, Col: -2},
		{Row: 1, Col: 2},
		{Row: 2, Col: -1},
		{Row: 2, Col: 1},
	}

	maskCastleRights = [4 + 1]CastleRights{
		CastleDirectionWhiteKingside:  0b1000,
		CastleDirectionWhiteQueenside: 0b0100,
		CastleDirectionBlackKingside:  0b0010,
		CastleDirectionBlackQueenside: 0b0001,
	}

	// Home squares of the rooks guarded by each castling right.
	posCastleRook = [4 + 1]position.Square{
		CastleDirectionWhiteKingside:  {Row: 7, Col: 7},
		CastleDirectionWhiteQueenside: {Row: 7, Col: 0},
		CastleDirectionBlackKingside:  {Row: 0, Col: 7},
		CastleDirectionBlackQueenside: {Row: 0, Col: 0},
	}
)

func isOrthogonal(dirIndex int) bool {
	return dirIndex < 4
}
