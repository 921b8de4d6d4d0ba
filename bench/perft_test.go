package bench

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/daystram/ply/board"
)

// Results obtained from https://www.chessprogramming.org/Perft_Results.
// Positions are limited to depths without promotions, since pawns only ever
// promote to a Queen here.
var perftTests = map[string][]struct {
	depth    int
	want     Counters
	parallel bool
}{
	board.DefaultStartingPositionFEN: {
		{depth: 0, want: Counters{Nodes: 1}},
		{depth: 1, want: Counters{Nodes: 20}},
		{depth: 2, want: Counters{Nodes: 400}},
		{depth: 3, want: Counters{Nodes: 8_902, Captures: 34, Checks: 12}, parallel: true},
		{depth: 4, want: Counters{Nodes: 197_281, Captures: 1_576, Checks: 469}},
	},
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1": {
		{depth: 1, want: Counters{Nodes: 48, Captures: 8, Castles: 2}},
		{depth: 2, want: Counters{Nodes: 2_039, Captures: 351, EnPassants: 1, Castles: 91, Checks: 3}, parallel: true},
		{depth: 3, want: Counters{Nodes: 97_862, Captures: 17_102, EnPassants: 45, Castles: 3_162, Checks: 993}},
	},
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": {
		{depth: 1, want: Counters{Nodes: 14, Captures: 1, Checks: 2}},
		{depth: 2, want: Counters{Nodes: 191, Captures: 14, Checks: 10}},
		{depth: 3, want: Counters{Nodes: 2_812, Captures: 209, EnPassants: 2, Checks: 267}, parallel: true},
		{depth: 4, want: Counters{Nodes: 43_238, Captures: 3_348, EnPassants: 123, Checks: 1_680}},
	},
}

func TestPerft(t *testing.T) {
	t.Parallel()

	for fen, constraints := range perftTests {
		fen := fen
		for _, tt := range constraints {
			tt := tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()

				b, err := board.NewBoard(board.WithFEN(fen))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				got := Perft(b, tt.depth, nil)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("unexpected counters (-want +got):\n%s", diff)
				}
				if b.FEN() != fen || b.Ply() != 0 {
					t.Errorf("board not restored: got=%s", b.FEN())
				}
			})
		}
	}
}

func TestPerftParallel(t *testing.T) {
	t.Parallel()

	for fen, constraints := range perftTests {
		fen := fen
		for _, tt := range constraints {
			if !tt.parallel {
				continue
			}
			tt := tt
			t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, fen), func(t *testing.T) {
				t.Parallel()

				b, err := board.NewBoard(board.WithFEN(fen))
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				got, err := PerftParallel(context.Background(), b, tt.depth, nil)
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("unexpected counters (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestPerftParallelCanceled(t *testing.T) {
	t.Parallel()

	b, err := board.NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := PerftParallel(ctx, b, 3, nil); err != context.Canceled {
		t.Errorf("unexpected error: got=%v want=%v", err, context.Canceled)
	}
}

func TestRunDivide(t *testing.T) {
	t.Parallel()

	for _, parallel := range []bool{false, true} {
		divided := make(map[string]uint64)
		rep, err := Run(context.Background(), Config{
			FEN:      board.DefaultStartingPositionFEN,
			Depth:    2,
			Parallel: parallel,
			Divide: func(mv board.Move, nodes uint64) {
				divided[mv.UCI()] = nodes
			},
		})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if rep.Counters.Nodes != 400 {
			t.Errorf("unexpected nodes: got=%d want=%d", rep.Counters.Nodes, 400)
		}
		if len(divided) != 20 {
			t.Errorf("unexpected root moves: got=%d want=%d", len(divided), 20)
		}
		for mv, nodes := range divided {
			if nodes != 20 {
				t.Errorf("unexpected nodes below %s: got=%d want=%d", mv, nodes, 20)
			}
		}
		if !strings.HasPrefix(rep.String(), "d=2 nodes=400 ") {
			t.Errorf("unexpected report: %s", rep)
		}
	}

	if _, err := Run(context.Background(), Config{FEN: "invalid", Depth: 1}); err == nil {
		t.Errorf("expected error for invalid FEN")
	}
}
