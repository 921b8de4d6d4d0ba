package board

import (
	"errors"
	"testing"
)

func TestFEN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen     string
		wantErr bool
	}{
		{fen: DefaultStartingPositionFEN, wantErr: false},
		{fen: "r3k2r/1bppqppp/p1n2n2/2b1p3/B3P3/2NP1N2/1PP2PPP/R1BQ1RK1 b kq - 2 10", wantErr: false},
		{fen: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", wantErr: false},
		{fen: "r4rk1/5ppp/p2p4/1bb1p3/BP6/2PP4/5PPP/R1B1R1K1 b - b3 0 20", wantErr: false},
		{fen: "8/5k2/4N3/8/8/3K4/8/8 w - - 0 71", wantErr: false},
		{fen: "R4k1r/1pNQ3p/4ppp1/8/3Pb1q1/5N2/5PPP/4KB1R b K - 5 22", wantErr: false},
		{fen: "1n2k2r/4pp1p/6p1/8/3b3P/8/5q2/r1K5 w k - 2 31", wantErr: false},
		{fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", wantErr: false},
		{fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", wantErr: false},
		{fen: "", wantErr: true},
		{fen: "invalid fen", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K badside - - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b badcastlingrights - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b - - -100 -100", wantErr: true},
		{fen: "8/3Rn3/badboard/p5kp/2B1P3/2P3bP/PP3R2/7K b - - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b - e4 1 38", wantErr: true},
		{fen: "8/8/8/8/8/8/8/8 w - - 1 0", wantErr: true},
		{fen: "4k3/8/8/8/8/8/3PP3/4K3 w - e3 0 1", wantErr: true},
		{fen: "4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1", wantErr: true},
		{fen: "4k3/8/8/8/4p3/8/8/4K3 b - e3 0 1", wantErr: true},
		{fen: "4k3/8/8/8/4P3/8/4P3/4K3 b - e3 0 1", wantErr: true},
		{fen: "4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1", wantErr: false},
		{fen: "7k/7k/8/8/8/8/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/1/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8//8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K1 w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K w - - 1 0 extrasegment", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFEN) {
					t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidFEN)
				}
				return
			}
			if err != nil {
				t.Fatal("unexpected error:", err)
			}

			if gotFEN := b.FEN(); gotFEN != tt.fen {
				t.Errorf("unexpected FEN: got=%s want=%s", gotFEN, tt.fen)
			}
		})
	}
}
