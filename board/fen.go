package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/ply/position"
)

const fenFields = 6

// UnmarshalFEN loads fen into b. b is only fully initialized on success.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	fields := strings.Fields(fen)
	if len(fields) != fenFields {
		return fmt.Errorf("%w: want %d fields, got %d", ErrInvalidFEN, fenFields, len(fields))
	}

	if err := b.parsePlacement(fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	rights, err := parseCastleRights(fields[2])
	if err != nil {
		return err
	}
	b.castleRights = rights

	b.enPassant = position.NoSquare
	if fields[3] != "-" {
		sq, err := position.NewSquareFromNotation(fields[3])
		if err != nil {
			return fmt.Errorf("%w: en passant: %v", ErrInvalidFEN, err)
		}
		// the square the opponent's pawn just skipped over
		mover := b.turn.Opposite()
		origin := position.NewSquare(mover.PawnStartRow(), sq.Col)
		pushed := position.NewSquare(sq.Row+mover.PawnDirection(), sq.Col)
		if sq.Row != mover.PawnStartRow()+mover.PawnDirection() ||
			!b.Cell(origin).IsEmpty() || !b.Cell(sq).IsEmpty() || !b.Cell(pushed).Is(mover, PiecePawn) {
			return fmt.Errorf("%w: en passant square %s", ErrInvalidFEN, fields[3])
		}
		b.enPassant = sq
	}

	clocks := [2]*uint16{&b.halfMoveClock, &b.fullMoveClock}
	for i, ptr := range clocks {
		v, err := strconv.ParseUint(fields[4+i], 10, 16)
		if err != nil {
			return fmt.Errorf("%w: clock %q", ErrInvalidFEN, fields[4+i])
		}
		*ptr = uint16(v)
	}
	return nil
}

func (b *Board) parsePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != int(Height) {
		return fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, Height, len(ranks))
	}

	var kings [2 + 1]int
	for row, rank := range ranks {
		col := int8(0)
		for _, sym := range rank {
			if col >= Width {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, row+1)
			}
			if sym >= '1' && sym <= '8' {
				col += int8(sym - '0')
				if col > Width {
					return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, row+1)
				}
				continue
			}
			c, ok := NewCellFromSymbol(sym)
			if !ok {
				return fmt.Errorf("%w: unknown symbol %q", ErrInvalidFEN, sym)
			}
			sq := position.NewSquare(int8(row), col)
			b.set(sq, c)
			if c.Piece() == PieceKing {
				b.kingPos[c.Side()] = sq
				kings[c.Side()]++
			}
			col++
		}
		if col != Width {
			return fmt.Errorf("%w: rank %d is short", ErrInvalidFEN, row+1)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	return nil
}

func parseCastleRights(field string) (CastleRights, error) {
	var rights CastleRights
	if field == "-" {
		return rights, nil
	}
	if field == "" || len(field) > 4 {
		return 0, fmt.Errorf("%w: castling rights %q", ErrInvalidFEN, field)
	}
	for _, sym := range field {
		d := CastleDirectionUnknown
		switch sym {
		case 'K':
			d = CastleDirectionWhiteKingside
		case 'Q':
			d = CastleDirectionWhiteQueenside
		case 'k':
			d = CastleDirectionBlackKingside
		case 'q':
			d = CastleDirectionBlackQueenside
		}
		if d == CastleDirectionUnknown || rights.IsAllowed(d) {
			return 0, fmt.Errorf("%w: castling rights %q", ErrInvalidFEN, field)
		}
		rights.Set(d, true)
	}
	return rights, nil
}

// MarshalFEN serializes b. Castling rights are written in KQkq order.
func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", errors.New("nil board")
	}
	ranks := make([]string, 0, Height)
	for row := int8(0); row < Height; row++ {
		var rank strings.Builder
		empty := 0
		for col := int8(0); col < Width; col++ {
			c := b.cells[row][col]
			if c.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				_, _ = rank.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			_, _ = rank.WriteString(c.String())
		}
		if empty > 0 {
			_, _ = rank.WriteString(strconv.Itoa(empty))
		}
		ranks = append(ranks, rank.String())
	}

	turn := "w"
	if b.turn == SideBlack {
		turn = "b"
	}
	enPassant := "-"
	if b.enPassant.IsValid() {
		enPassant = b.enPassant.Notation()
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		strings.Join(ranks, "/"), turn, b.castleRights, enPassant, b.halfMoveClock, b.fullMoveClock), nil
}
