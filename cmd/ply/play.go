package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
	"github.com/daystram/ply/game"
)

// play runs one game. Computer sides search in the background while human
// sides read commands from r.
func play(ctx context.Context, r io.Reader, w io.Writer, cfg *game.SessionConfig, maxPlies int) error {
	s, err := game.NewSession(cfg)
	if err != nil {
		return err
	}
	reader := bufio.NewReader(r)
	fmt.Fprintln(w, s.Board().Draw())

	var nodes uint64
	var thinking time.Duration
	for s.State().IsRunning() && len(s.History()) < maxPlies {
		if !s.IsComputerTurn() {
			quit, err := humanTurn(reader, w, s)
			if err != nil {
				return err
			}
			if quit {
				break
			}
			continue
		}

		f, err := s.ThinkAsync()
		if err != nil {
			return err
		}
		mv, err := f.Wait(ctx)
		if err != nil {
			return err
		}
		res := f.Result()
		nodes += res.Nodes
		thinking += res.Elapsed
		if err := s.ApplyFuture(f); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s plays %s (%s)\n", mv.Moved.Side(), mv.Algebra(), engine.FormatScore(res.Score))
		fmt.Fprintln(w, s.Board().Draw())
	}

	fmt.Fprintln(w, "result:", s.State())
	fmt.Fprintln(w, dumpHistory(s.History(), s.FirstMoveNumber()))
	fmt.Fprintln(w, message.NewPrinter(language.English).
		Sprintf("searched %d nodes in %.3fs", nodes, thinking.Seconds()))
	return nil
}

// humanTurn handles one console command. It reports true when the player
// asks to quit.
func humanTurn(reader *bufio.Reader, w io.Writer, s *game.Session) (bool, error) {
	fmt.Fprintf(w, "%s to move> ", s.Turn())
	cmd, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) && cmd == "" {
		return true, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	cmd = strings.TrimSpace(cmd)

	switch args := strings.Fields(cmd); {
	case len(args) == 0:
	case args[0] == "quit":
		return true, nil
	case args[0] == "d":
		fmt.Fprintln(w, s.Board().Draw())
		fmt.Fprintln(w, s.FEN())
	case args[0] == "moves":
		for _, mv := range s.ValidMoves() {
			fmt.Fprintf(w, "%s ", mv.UCI())
		}
		fmt.Fprintln(w)
	case args[0] == "reset":
		s.Reset()
		fmt.Fprintln(w, s.Board().Draw())
	case args[0] == "undo":
		// take back the computer's reply as well
		s.Undo()
		for s.IsComputerTurn() && s.Undo() {
		}
		fmt.Fprintln(w, s.Board().Draw())
	default:
		mv, err := s.PlayNotation(args[0])
		if errors.Is(err, game.ErrIllegalMove) {
			fmt.Fprintln(w, err)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "%s plays %s\n", mv.Moved.Side(), mv.Algebra())
		fmt.Fprintln(w, s.Board().Draw())
	}
	return false, nil
}

// dumpHistory numbers mvs from the full move number n of the first move.
func dumpHistory(mvs []board.Move, n int) string {
	builder := strings.Builder{}
	for i, mv := range mvs {
		if i > 0 {
			_, _ = builder.WriteRune(' ')
		}
		switch {
		case mv.Moved.Side() == board.SideWhite:
			_, _ = builder.WriteString(fmt.Sprintf("%d. ", n))
		case i == 0:
			_, _ = builder.WriteString(fmt.Sprintf("%d... ", n))
		}
		_, _ = builder.WriteString(mv.Algebra())
		if mv.Moved.Side() == board.SideBlack {
			n++
		}
	}
	return builder.String()
}
