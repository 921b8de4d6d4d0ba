package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/game"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")
	debug   = flag.Bool("debug", false, "enable debug logging")
	fen     = flag.String("fen", board.DefaultStartingPositionFEN, "starting position")
	depth   = flag.Int("depth", 0, "search depth in plies, 0 for the default")
	seed    = flag.Uint64("seed", 0, "random seed, 0 for a clock based seed")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepCount = flag.Int("step.count", 500, "maximum plies in step mode")

	perftDepth    = flag.Int("perft", 0, "run perft mode to the given depth")
	perftParallel = flag.Bool("perft.parallel", true, "split perft by root move")
	perftDivide   = flag.Bool("perft.divide", false, "print node counts per root move")

	playRun   = flag.Bool("play", false, "run play mode")
	playWhite = flag.String("play.white", "human", "white player: human, computer or random")
	playBlack = flag.String("play.black", "computer", "black player: human, computer or random")
	playPlies = flag.Int("play.plies", 200, "maximum plies in play mode")
)

func main() {
	flag.Parse()

	logger := newLogger(*debug)
	if *profile {
		runProfiler(logger)
	}

	err := realMain(context.Background(), logger)
	if err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Msgf("starting pprof endpoint: http://%s/debug/pprof", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(ctx context.Context, logger zerolog.Logger) error {
	switch {
	case *movegenRun:
		return movegen(os.Stdout, *fen, *movegenDraw)
	case *stepRun:
		return step(os.Stdout, *fen, *stepCount, *seed)
	case *perftDepth > 0:
		return perft(ctx, os.Stdout, logger, *fen, *perftDepth, *perftParallel, *perftDivide)
	case *playRun:
		white, err := parsePlayer(*playWhite)
		if err != nil {
			return err
		}
		black, err := parsePlayer(*playBlack)
		if err != nil {
			return err
		}
		return play(ctx, os.Stdin, os.Stdout, &game.SessionConfig{
			FEN:    *fen,
			White:  white,
			Black:  black,
			Depth:  *depth,
			Seed:   *seed,
			Logger: &logger,
		}, *playPlies)
	default:
		flag.Usage()
		return nil
	}
}

func parsePlayer(s string) (game.Player, error) {
	for _, p := range []game.Player{game.PlayerHuman, game.PlayerComputer, game.PlayerRandom} {
		if p.String() == s {
			return p, nil
		}
	}
	return game.PlayerHuman, fmt.Errorf("unknown player %q", s)
}
