package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"

	"github.com/daystram/ply/board"
)

const (
	ScoreInfinite  int32 = math.MaxInt32
	ScoreCheckmate int32 = 1_000_000

	DefaultDepth = 3
	MaxDepth     = 16

	// mate scores are shortened by the distance to the mate, never by more
	// than this many plies
	maxMateDistance = 1024
)

type EngineConfig struct {
	// Depth is the number of plies searched. Zero selects DefaultDepth,
	// anything else is clamped into [1, MaxDepth].
	Depth int
	// Seed drives the root move shuffle. Zero seeds from the clock.
	Seed   uint64
	Logger *zerolog.Logger
}

// Result is the outcome of one search: the chosen root move and its score
// from the point of view of the side to move.
type Result struct {
	Move    board.Move
	Score   int32
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// Engine runs fixed depth negamax searches. It mutates the searched Board in
// place and restores it before returning, so one Engine must not search two
// boards at once, and a Board must not be searched by two Engines at once.
type Engine struct {
	depth  int
	rand   *rand.Rand
	logger zerolog.Logger

	nodes uint64
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	depth := DefaultDepth
	if cfg.Depth != 0 {
		depth = clamp(cfg.Depth, 1, MaxDepth)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Engine{
		depth:  depth,
		rand:   rand.New(newXorshift(seed)),
		logger: logger.With().Str("component", "engine").Logger(),
	}
}

func (e *Engine) Depth() int {
	return e.depth
}

// FindRandomMove returns a uniformly chosen move from mvs, or the zero Move
// if mvs is empty.
func (e *Engine) FindRandomMove(mvs []board.Move) board.Move {
	if len(mvs) == 0 {
		return board.Move{}
	}
	return mvs[e.rand.IntN(len(mvs))]
}

// FindBestMove returns the best of the legal moves mvs of b, or the zero Move
// if there is none. b is left exactly as it was given.
func (e *Engine) FindBestMove(b *board.Board, mvs []board.Move) board.Move {
	return e.Search(b, mvs).Move
}

// Search is FindBestMove with the score and search statistics attached.
func (e *Engine) Search(b *board.Board, mvs []board.Move) Result {
	res := Result{Depth: e.depth}
	if len(mvs) == 0 {
		return res
	}

	// equal scores keep the first move found, shuffling varies the pick
	root := make([]board.Move, len(mvs))
	copy(root, mvs)
	e.rand.Shuffle(len(root), func(i, j int) {
		root[i], root[j] = root[j], root[i]
	})

	turnMultiplier := int32(1)
	if b.Turn() == board.SideBlack {
		turnMultiplier = -1
	}

	e.nodes = 0
	startTime := time.Now()
	res.Score, res.Move = e.negamax(b, root, e.depth, 0, turnMultiplier, -ScoreInfinite, ScoreInfinite)
	res.Elapsed = time.Since(startTime)
	res.Nodes = e.nodes

	e.logger.Debug().
		Str("fen", b.FEN()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Float64("nps", float64(res.Nodes)/(res.Elapsed+1).Seconds()).
		Str("score", FormatScore(res.Score)).
		Stringer("move", res.Move).
		Dur("elapsed", res.Elapsed).
		Msg("search done")
	return res
}

// negamax scores the position for the side to move, given its legal moves,
// and returns the move that reached that score. turnMultiplier is +1 when
// White is to move and -1 otherwise.
func (e *Engine) negamax(
	b *board.Board,
	mvs []board.Move,
	depth, dist int,
	turnMultiplier, alpha, beta int32,
) (int32, board.Move) {
	e.nodes++

	// leaf or terminal node
	if depth == 0 || len(mvs) == 0 {
		score := turnMultiplier * Evaluate(b)
		if b.Checkmate() {
			// a later mate is less bad for the mated side
			score += int32(min(dist, maxMateDistance))
		}
		return score, board.Move{}
	}

	bestScore := -ScoreInfinite
	var bestMove board.Move
	for _, mv := range mvs {
		b.MakeMove(mv)
		childScore, _ := e.negamax(b, b.GetValidMoves(), depth-1, dist+1, -turnMultiplier, -beta, -alpha)
		b.UndoMove()

		if score := -childScore; score > bestScore {
			bestScore = score
			bestMove = mv
		}
		alpha = max(alpha, bestScore)
		if alpha >= beta {
			break // remaining siblings cannot change the result
		}
	}
	return bestScore, bestMove
}

// IsMateScore reports whether s announces a forced mate for either side.
func IsMateScore(s int32) bool {
	return abs(s) > ScoreCheckmate-maxMateDistance-1 && abs(s) <= ScoreCheckmate
}

// FormatScore renders a score in pawns, or as "#+n"/"#-n" full moves to mate.
func FormatScore(s int32) string {
	switch {
	case s == ScoreInfinite:
		return "+inf"
	case s == -ScoreInfinite:
		return "-inf"
	case IsMateScore(s) && s > 0:
		return fmt.Sprintf("#+%d", (ScoreCheckmate-s+1)/2)
	case IsMateScore(s):
		return fmt.Sprintf("#-%d", (ScoreCheckmate+s)/2)
	case s > 0:
		return fmt.Sprintf("+%.2f", float64(s)/100)
	case s < 0:
		return fmt.Sprintf("%.2f", float64(s)/100)
	default:
		return "0"
	}
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	return min(max(x, lo), hi)
}
