package bench

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/ply/board"
)

// Counters tallies the leaf moves of a perft walk. Captures, en passant,
// castles, promotions and checks are counted on the moves of the last ply.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (c *Counters) add(o Counters) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassants += o.EnPassants
	c.Castles += o.Castles
	c.Promotions += o.Promotions
	c.Checks += o.Checks
}

func (c *Counters) countLeaf(b *board.Board, mv board.Move) {
	c.Nodes++
	if mv.IsCapture() {
		c.Captures++
	}
	if mv.IsEnPassant {
		c.EnPassants++
	}
	if mv.IsCastle {
		c.Castles++
	}
	if mv.IsPromote {
		c.Promotions++
	}
	b.MakeMove(mv)
	if b.IsKingChecked() {
		c.Checks++
	}
	b.UndoMove()
}

// DivideFunc receives the node count below each root move.
type DivideFunc func(mv board.Move, nodes uint64)

type Config struct {
	FEN      string
	Depth    int
	Parallel bool
	Divide   DivideFunc
}

type Report struct {
	Depth    int
	Counters Counters
	Elapsed  time.Duration
}

func (r Report) String() string {
	return message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			r.Depth, r.Counters.Nodes, int(float64(r.Counters.Nodes)/(r.Elapsed+1).Seconds()),
			r.Counters.Captures, r.Counters.EnPassants, r.Counters.Castles, r.Counters.Promotions, r.Counters.Checks,
			r.Elapsed.Seconds())
}

// Run loads cfg.FEN and counts the leaf nodes cfg.Depth plies below it.
func Run(ctx context.Context, cfg Config) (Report, error) {
	b, err := board.NewBoard(board.WithFEN(cfg.FEN))
	if err != nil {
		return Report{}, err
	}

	rep := Report{Depth: cfg.Depth}
	start := time.Now()
	if cfg.Parallel {
		rep.Counters, err = PerftParallel(ctx, b, cfg.Depth, cfg.Divide)
	} else {
		rep.Counters = Perft(b, cfg.Depth, cfg.Divide)
	}
	rep.Elapsed = time.Since(start)
	return rep, err
}

// Perft walks the move tree of b with make and undo on the one board.
func Perft(b *board.Board, depth int, divide DivideFunc) Counters {
	var c Counters
	if depth <= 1 || divide == nil {
		perft(b, depth, &c)
		return c
	}
	for _, mv := range b.GetValidMoves() {
		var child Counters
		b.MakeMove(mv)
		perft(b, depth-1, &child)
		b.UndoMove()
		divide(mv, child.Nodes)
		c.add(child)
	}
	return c
}

func perft(b *board.Board, depth int, c *Counters) {
	if depth <= 0 {
		c.Nodes++
		return
	}
	mvs := b.GetValidMoves()
	if depth == 1 {
		for _, mv := range mvs {
			c.countLeaf(b, mv)
		}
		return
	}
	for _, mv := range mvs {
		b.MakeMove(mv)
		perft(b, depth-1, c)
		b.UndoMove()
	}
}

// PerftParallel splits the walk by root move, each subtree on its own clone
// of b. b itself is never mutated.
func PerftParallel(ctx context.Context, b *board.Board, depth int, divide DivideFunc) (Counters, error) {
	if depth <= 1 {
		return Perft(b.Clone(), depth, divide), nil
	}

	mvs := b.GetValidMoves()
	results := make([]Counters, len(mvs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, mv := range mvs {
		i, mv := i, mv
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bb := b.Clone()
			bb.MakeMove(mv)
			perft(bb, depth-1, &results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Counters{}, err
	}

	var c Counters
	for i, mv := range mvs {
		if divide != nil {
			divide(mv, results[i].Nodes)
		}
		c.add(results[i])
	}
	return c, nil
}
