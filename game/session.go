package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
	"github.com/daystram/ply/position"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrNotComputerTurn = errors.New("not the computer's turn")
	ErrStaleResult     = errors.New("search result is stale")
	ErrSearchPending   = errors.New("search still running")
)

type Player uint8

const (
	PlayerHuman Player = iota
	PlayerComputer
	PlayerRandom
)

func (p Player) String() string {
	switch p {
	case PlayerHuman:
		return "human"
	case PlayerComputer:
		return "computer"
	case PlayerRandom:
		return "random"
	default:
		return ""
	}
}

type SessionConfig struct {
	FEN          string
	White, Black Player
	Depth        int
	// Seed makes computer play reproducible. Zero seeds from the clock.
	Seed   uint64
	Logger *zerolog.Logger
}

// Session drives one game: it validates and applies moves for either side,
// and searches for the computer's moves in the background. It is safe for
// concurrent use.
type Session struct {
	mu sync.Mutex
	b  *board.Board
	// legal moves of the current position, refreshed after every change
	mvs []board.Move

	start     *board.Board
	firstMove int
	players   [2 + 1]Player
	depth     int
	seed      uint64
	logger    zerolog.Logger
}

func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		cfg = &SessionConfig{}
	}
	fen := cfg.FEN
	if fen == "" {
		fen = board.DefaultStartingPositionFEN
	}
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	s := &Session{
		b:         b,
		start:     b.Clone(),
		firstMove: int(b.FullMoveClock()),
		depth:     cfg.Depth,
		seed:      cfg.Seed,
		logger:    logger.With().Str("component", "game").Logger(),
	}
	s.players[board.SideWhite] = cfg.White
	s.players[board.SideBlack] = cfg.Black
	s.mvs = s.b.GetValidMoves()
	return s, nil
}

// Reset starts the game over from its initial position. Futures started
// before the reset are rejected by ApplyFuture unless the game is back at
// their position.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.b = s.start.Clone()
	s.mvs = s.b.GetValidMoves()
	s.logger.Info().Str("fen", s.b.FEN()).Msg("game reset")
}

// FirstMoveNumber is the full move number of the initial position.
func (s *Session) FirstMoveNumber() int {
	return s.firstMove
}

// Board returns a copy of the current position.
func (s *Session) Board() *board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Clone()
}

func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.FEN()
}

func (s *Session) Turn() board.Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Turn()
}

func (s *Session) Player(side board.Side) Player {
	return s.players[side]
}

func (s *Session) IsComputerTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[s.b.Turn()] != PlayerHuman
}

// ValidMoves returns a copy of the legal moves of the current position.
func (s *Session) ValidMoves() []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]board.Move(nil), s.mvs...)
}

func (s *Session) History() []board.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.History()
}

func (s *Session) State() board.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() board.State {
	switch {
	case s.b.Checkmate():
		return board.StateCheckmate
	case s.b.Stalemate():
		return board.StateStalemate
	case s.b.InCheck():
		return board.StateCheck
	default:
		return board.StateRunning
	}
}

// Play applies the legal move going from one square to the other.
func (s *Session) Play(from, to position.Square) (board.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state().IsRunning() {
		return board.Move{}, ErrGameOver
	}
	for _, mv := range s.mvs {
		if mv.From == from && mv.To == to {
			s.apply(mv)
			return mv, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
}

// PlayNotation is Play for coordinate notation such as "e2e4" or "a7a8q".
func (s *Session) PlayNotation(n string) (board.Move, error) {
	// pawns only promote to a Queen
	if len(n) != 4 && (len(n) != 5 || n[4] != 'q') {
		return board.Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, n)
	}
	from, err := position.NewSquareFromNotation(n[:2])
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	to, err := position.NewSquareFromNotation(n[2:4])
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return s.Play(from, to)
}

// Apply applies mv if it is legal in the current position, for instance
// a move produced by a Future.
func (s *Session) Apply(mv board.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state().IsRunning() {
		return ErrGameOver
	}
	for _, legal := range s.mvs {
		if legal.Equals(mv) {
			s.apply(legal)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
}

// ApplyFuture plays the move found by f. The game must still be at the ply
// and position the search started from, even if moves were undone and
// replayed in between.
func (s *Session) ApplyFuture(f *Future) error {
	select {
	case <-f.Done():
	default:
		return ErrSearchPending
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Ply() != s.b.Ply() || f.FEN() != s.b.FEN() {
		return fmt.Errorf("%w: started at ply %d, game is at ply %d", ErrStaleResult, f.Ply(), s.b.Ply())
	}
	if !s.state().IsRunning() {
		return ErrGameOver
	}
	mv := f.Result().Move
	for _, legal := range s.mvs {
		if legal.Equals(mv) {
			s.apply(legal)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
}

func (s *Session) apply(mv board.Move) {
	s.b.MakeMove(mv)
	s.mvs = s.b.GetValidMoves()
	s.logger.Info().
		Int("ply", s.b.Ply()).
		Str("move", mv.Algebra()).
		Str("state", s.state().String()).
		Msg("move played")
}

// Undo takes back the last move. It reports false when there is none.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.b.Ply() == 0 {
		return false
	}
	s.b.UndoMove()
	s.mvs = s.b.GetValidMoves()
	s.logger.Info().Int("ply", s.b.Ply()).Msg("move undone")
	return true
}

// ThinkAsync starts searching for the move of the computer side to move.
// The search runs on a copy of the game, so the session stays usable while
// it runs; ApplyFuture rejects the result once the game has moved on.
func (s *Session) ThinkAsync() (*Future, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[s.b.Turn()]
	if player == PlayerHuman {
		return nil, ErrNotComputerTurn
	}
	if !s.state().IsRunning() {
		return nil, ErrGameOver
	}

	var seed uint64
	if s.seed != 0 {
		seed = s.seed + uint64(s.b.Ply())
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Depth:  s.depth,
		Seed:   seed,
		Logger: &s.logger,
	})
	b, mvs := s.b.Clone(), append([]board.Move(nil), s.mvs...)
	f := &Future{
		ply:  b.Ply(),
		fen:  b.FEN(),
		done: make(chan struct{}),
	}
	logger := s.logger

	go func() {
		defer close(f.done)
		if player == PlayerRandom {
			f.result = engine.Result{Move: e.FindRandomMove(mvs)}
		} else {
			f.result = e.Search(b, mvs)
			if f.result.Move.IsNull() {
				f.result.Move = e.FindRandomMove(mvs)
			}
		}
		logger.Debug().
			Int("ply", f.ply).
			Stringer("player", player).
			Stringer("move", f.result.Move).
			Msg("search finished")
	}()
	return f, nil
}
