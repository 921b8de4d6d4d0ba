package game

import (
	"context"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
)

// Future is the one-shot result of a computer move search running on its
// own copy of the game.
type Future struct {
	ply    int
	fen    string
	done   chan struct{}
	result engine.Result
}

// Wait blocks until the search finishes or ctx is done. A canceled wait
// abandons the search; its result is discarded once it completes.
func (f *Future) Wait(ctx context.Context) (board.Move, error) {
	select {
	case <-f.done:
		return f.result.Move, nil
	case <-ctx.Done():
		return board.Move{}, ctx.Err()
	}
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the full search result. It must only be called after Done
// is closed.
func (f *Future) Result() engine.Result {
	return f.result
}

// Ply is the game ply the search was started at.
func (f *Future) Ply() int {
	return f.ply
}

// FEN is the position the search was started from.
func (f *Future) FEN() string {
	return f.fen
}
