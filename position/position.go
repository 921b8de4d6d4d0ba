package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar int8 = 8
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")

	// NoSquare marks the absence of a square, e.g. when no en passant target exists.
	NoSquare = Square{Row: -1, Col: -1}

	rowsToRanks = [MaxComponentScalar]string{"8", "7", "6", "5", "4", "3", "2", "1"}
	colsToFiles = [MaxComponentScalar]string{"a", "b", "c", "d", "e", "f", "g", "h"}
)

// Square is a (row, col) pair. Row 0 is Black's back rank, col 0 is the a-file.
type Square struct {
	Row, Col int8
}

// Direction is a step vector between two squares.
type Direction struct {
	Row, Col int8
}

func NewSquare(row, col int8) Square {
	return Square{Row: row, Col: col}
}

func NewSquareFromNotation(n string) (Square, error) {
	row, col, err := notationToRowCol(n)
	if err != nil {
		return NoSquare, err
	}
	return Square{Row: row, Col: col}, nil
}

func (s Square) String() string {
	return s.Notation()
}

func (s Square) Notation() string {
	if !s.IsValid() {
		return ""
	}
	return colsToFiles[s.Col] + rowsToRanks[s.Row]
}

func (s Square) IsValid() bool {
	return 0 <= s.Row && s.Row < MaxComponentScalar && 0 <= s.Col && s.Col < MaxComponentScalar
}

// Add returns the square n steps away along d. The result may be off the board.
func (s Square) Add(d Direction, n int8) Square {
	return Square{Row: s.Row + d.Row*n, Col: s.Col + d.Col*n}
}

func (d Direction) Opposite() Direction {
	return Direction{Row: -d.Row, Col: -d.Col}
}

func (d Direction) IsZero() bool {
	return d.Row == 0 && d.Col == 0
}

// IsAlong reports whether d points along the axis of other, in either direction.
func (d Direction) IsAlong(other Direction) bool {
	return d == other || d == other.Opposite()
}

func notationToRowCol(n string) (int8, int8, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	col, err := notationToCol(n[0])
	if err != nil {
		return 0, 0, err
	}
	row, err := notationToRow(n[1])
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func notationToCol(x byte) (int8, error) {
	col := int8(x) - 'a'
	if col < 0 || MaxComponentScalar <= col {
		return 0, ErrInvalidNotation
	}
	return col, nil
}

func notationToRow(y byte) (int8, error) {
	rank := int8(y) - '1'
	if rank < 0 || MaxComponentScalar <= rank {
		return 0, ErrInvalidNotation
	}
	return MaxComponentScalar - 1 - rank, nil
}

func NotationComponentCol(col int8) string {
	if col < 0 || MaxComponentScalar <= col {
		return ""
	}
	return colsToFiles[col]
}

func NotationComponentRow(row int8) string {
	if row < 0 || MaxComponentScalar <= row {
		return ""
	}
	return rowsToRanks[row]
}
