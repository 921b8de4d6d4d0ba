package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/daystram/ply/board"
)

func movegen(w io.Writer, fen string, draw bool) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "to move:", b.Turn())
	fmt.Fprintln(w, b.Dump())
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.DebugString())
	mvs := b.GetValidMoves()
	dumpMoves(w, mvs)

	if draw {
		for _, mv := range mvs {
			b.MakeMove(mv)
			fmt.Fprintln(w, mv.Algebra())
			fmt.Fprintln(w, b.Draw())
			fmt.Fprintln(w, b.FEN())
			b.UndoMove()
		}
	}
	return nil
}

func dumpMoves(w io.Writer, mvs []board.Move) {
	for i, mv := range mvs {
		fmt.Fprintf(w, "option %*d: [%s] [%s] %s %s => %s (cap=%v) (enp=%v) (cas=%v) (pro=%v)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.Moved.Piece(), mv.From, mv.To,
			mv.IsCapture(), mv.IsEnPassant, mv.IsCastle, mv.IsPromote)
	}
}
