package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/daystram/ply/board"
)

// step plays random legal moves and reports the average cost of the board
// operations along the way.
func step(w io.Writer, fen string, count int, seed uint64) error {
	var (
		timesGetValidMoves []time.Duration
		timesMakeMove      []time.Duration
		timesUndoMove      []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	start := b.FEN()
	r := rand.New(rand.NewPCG(seed, seed))

	for i := 0; i < count; i++ {
		t1 := time.Now()
		mvs := b.GetValidMoves()
		timesGetValidMoves = append(timesGetValidMoves, time.Since(t1))
		if len(mvs) == 0 {
			break
		}
		mv := mvs[r.IntN(len(mvs))]

		t1 = time.Now()
		b.MakeMove(mv)
		timesMakeMove = append(timesMakeMove, time.Since(t1))

		fmt.Fprintf(w, "[#%d] %s: %s\n", b.FullMoveClock(), mv.Moved.Side(), mv.Algebra())
	}
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.FEN())
	fmt.Fprintln(w, b.DebugString())

	for b.Ply() > 0 {
		t1 := time.Now()
		b.UndoMove()
		timesUndoMove = append(timesUndoMove, time.Since(t1))
	}
	if b.FEN() != start {
		return fmt.Errorf("board not restored after undo: got=%s want=%s", b.FEN(), start)
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}
	fmt.Fprintln(w, "genmv:", avg(timesGetValidMoves))
	fmt.Fprintln(w, "make: ", avg(timesMakeMove))
	fmt.Fprintln(w, "undo: ", avg(timesUndoMove))
	return nil
}
