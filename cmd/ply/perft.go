package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/daystram/ply/bench"
	"github.com/daystram/ply/board"
)

func perft(ctx context.Context, w io.Writer, logger zerolog.Logger, fen string, depth int, parallel, divide bool) error {
	logger.Info().Int("depth", depth).Bool("parallel", parallel).Str("fen", fen).Msg("starting perft")

	cfg := bench.Config{
		FEN:      fen,
		Depth:    depth,
		Parallel: parallel,
	}
	if divide {
		cfg.Divide = func(mv board.Move, nodes uint64) {
			fmt.Fprintf(w, "%s: %d\n", mv.UCI(), nodes)
		}
	}
	rep, err := bench.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, rep)
	return nil
}
