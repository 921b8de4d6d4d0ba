package position

import (
	"errors"
	"testing"
)

func TestNewSquareFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Square
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Square{Row: 4, Col: 4},
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Square{Row: 0, Col: 7},
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Square{Row: 7, Col: 0},
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewSquareFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestSquareNotation(t *testing.T) {
	t.Parallel()
	for row := int8(0); row < MaxComponentScalar; row++ {
		for col := int8(0); col < MaxComponentScalar; col++ {
			sq := NewSquare(row, col)
			got, err := NewSquareFromNotation(sq.Notation())
			if err != nil {
				t.Fatalf("unexpected error for %v: %v", sq, err)
			}
			if got != sq {
				t.Errorf("unexpected square: got=%v want=%v", got, sq)
			}
		}
	}
	if got := NoSquare.Notation(); got != "" {
		t.Errorf("unexpected notation for NoSquare: got=%q want=%q", got, "")
	}
	if got := NewSquare(6, 4).Notation(); got != "e2" {
		t.Errorf("unexpected notation: got=%s want=%s", got, "e2")
	}
}

func TestDirection(t *testing.T) {
	t.Parallel()
	d := Direction{Row: -1, Col: 1}
	if !d.IsAlong(Direction{Row: 1, Col: -1}) {
		t.Error("opposite direction should be along the same axis")
	}
	if d.IsAlong(Direction{Row: 1, Col: 1}) {
		t.Error("crossing diagonal should not be along the axis")
	}
	if got, want := NewSquare(6, 4).Add(Direction{Row: -1, Col: 0}, 2), NewSquare(4, 4); got != want {
		t.Errorf("unexpected square: got=%v want=%v", got, want)
	}
	if NewSquare(0, 0).Add(d, 1).IsValid() {
		t.Error("square off the board should be invalid")
	}
}
