package engine

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/daystram/ply/board"
)

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatalf("cannot parse %q: %v", fen, err)
	}
	return b
}

func TestNewEngineDepth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		depth int
		want  int
	}{
		{depth: 0, want: DefaultDepth},
		{depth: -4, want: 1},
		{depth: 1, want: 1},
		{depth: 5, want: 5},
		{depth: 100, want: MaxDepth},
	}
	for _, tt := range tests {
		if got := NewEngine(&EngineConfig{Depth: tt.depth}).Depth(); got != tt.want {
			t.Errorf("unexpected depth for %d: got=%d want=%d", tt.depth, got, tt.want)
		}
	}
	if got := NewEngine(nil).Depth(); got != DefaultDepth {
		t.Errorf("unexpected default depth: got=%d want=%d", got, DefaultDepth)
	}
}

func TestFindBestMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{name: "back rank mate", fen: "7k/6pp/8/8/8/8/8/R5K1 w - - 0 1", want: "a1a8"},
		{name: "black back rank mate", fen: "r5k1/8/8/8/8/8/6PP/7K b - - 0 1", want: "a8a1"},
		{name: "hanging queen", fen: "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1", want: "d1d5"},
	}
	for _, tt := range tests {
		tt := tt
		for depth := 1; depth <= 3; depth++ {
			depth := depth
			t.Run(fmt.Sprintf("%s/depth=%d", tt.name, depth), func(t *testing.T) {
				t.Parallel()

				b := mustBoard(t, tt.fen)
				e := NewEngine(&EngineConfig{Depth: depth, Seed: 42})
				mv := e.FindBestMove(b, b.GetValidMoves())
				if got := mv.Notation(); got != tt.want {
					t.Errorf("unexpected best move: got=%s want=%s", got, tt.want)
				}
			})
		}
	}
}

func TestSearchMateScore(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, "7k/6pp/8/8/8/8/8/R5K1 w - - 0 1")
	res := NewEngine(&EngineConfig{Depth: 3, Seed: 1}).Search(b, b.GetValidMoves())
	if want := ScoreCheckmate - 1; res.Score != want {
		t.Errorf("unexpected score: got=%d want=%d", res.Score, want)
	}
	if got := FormatScore(res.Score); got != "#+1" {
		t.Errorf("unexpected formatted score: got=%s want=#+1", got)
	}
	if res.Nodes == 0 {
		t.Errorf("no nodes counted")
	}
}

func TestFindBestMoveRestoresBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen     string
		preMove bool
	}{
		{fen: board.DefaultStartingPositionFEN, preMove: true},
		{fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", preMove: true},
		{fen: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", preMove: true},
		{fen: "8/P6k/8/8/8/8/8/K7 w - - 0 1", preMove: true},
		{fen: "4k3/8/8/8/8/8/4r3/R3K3 w - - 0 1"},  // in check
		{fen: "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1"}, // pinned bishop
	}
	for _, tt := range tests {
		fen := tt.fen
		b := mustBoard(t, fen)
		if tt.preMove {
			b.MakeMove(b.GetValidMoves()[0])
		}
		beforeFEN, beforeHistory := b.FEN(), b.History()

		mvs := b.GetValidMoves()
		beforeInCheck, beforePins, beforeChecks := b.InCheck(), b.Pins(), b.Checks()
		NewEngine(&EngineConfig{Depth: 2, Seed: 3}).FindBestMove(b, mvs)

		if diff := cmp.Diff(beforeFEN, b.FEN()); diff != "" {
			t.Errorf("search changed the board (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(beforeHistory, b.History()); diff != "" {
			t.Errorf("search changed the history (-want +got):\n%s", diff)
		}
		if b.InCheck() != beforeInCheck {
			t.Errorf("search changed in check for %s: got=%v want=%v", fen, b.InCheck(), beforeInCheck)
		}
		if diff := cmp.Diff(beforePins, b.Pins()); diff != "" {
			t.Errorf("search changed the pins of %s (-want +got):\n%s", fen, diff)
		}
		if diff := cmp.Diff(beforeChecks, b.Checks()); diff != "" {
			t.Errorf("search changed the checks of %s (-want +got):\n%s", fen, diff)
		}
		if diff := cmp.Diff(mvs, b.GetValidMoves()); diff != "" {
			t.Errorf("search changed the legal moves (-want +got):\n%s", diff)
		}
	}
}

func TestFindBestMoveNoMoves(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, "R6k/6pp/8/8/8/8/8/6K1 b - - 0 1")
	if mv := NewEngine(nil).FindBestMove(b, b.GetValidMoves()); !mv.IsNull() {
		t.Errorf("expected no move, got %s", mv)
	}
}

func TestFindBestMoveDeterministic(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	mvs := b.GetValidMoves()
	first := NewEngine(&EngineConfig{Depth: 2, Seed: 99}).FindBestMove(b, mvs)
	second := NewEngine(&EngineConfig{Depth: 2, Seed: 99}).FindBestMove(b, mvs)
	if !first.Equals(second) {
		t.Errorf("same seed picked different moves: %s and %s", first, second)
	}
}

func TestFindRandomMove(t *testing.T) {
	t.Parallel()

	b := mustBoard(t, board.DefaultStartingPositionFEN)
	mvs := b.GetValidMoves()
	e := NewEngine(&EngineConfig{Seed: 5})
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		mv := e.FindRandomMove(mvs)
		if !b.IsLegal(mv) {
			t.Fatalf("random move %s is not legal", mv)
		}
		seen[mv.Notation()] = true
	}
	if len(seen) < len(mvs)/2 {
		t.Errorf("random moves poorly spread: %d of %d seen", len(seen), len(mvs))
	}
	if mv := e.FindRandomMove(nil); !mv.IsNull() {
		t.Errorf("expected no move from an empty list, got %s", mv)
	}
}

func TestFormatScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score int32
		want  string
	}{
		{score: 0, want: "0"},
		{score: 150, want: "+1.50"},
		{score: -20, want: "-0.20"},
		{score: ScoreCheckmate - 1, want: "#+1"},
		{score: ScoreCheckmate - 3, want: "#+2"},
		{score: -(ScoreCheckmate - 2), want: "#-1"},
		{score: ScoreInfinite, want: "+inf"},
		{score: -ScoreInfinite, want: "-inf"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.score); got != tt.want {
			t.Errorf("unexpected format for %d: got=%s want=%s", tt.score, got, tt.want)
		}
	}
}

func TestXorshift(t *testing.T) {
	t.Parallel()

	a, b := newXorshift(0), newXorshift(defaultSeed)
	for i := 0; i < 16; i++ {
		x, y := a.Uint64(), b.Uint64()
		if x != y {
			t.Fatalf("zero seed should fall back to the default seed")
		}
		if x == 0 {
			t.Fatalf("xorshift produced zero")
		}
	}
}
