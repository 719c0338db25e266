// Package game plays a checkers game to the end, each side choosing its move
// with a fixed-depth negamax search.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/heuristic"
	"github.com/domino14/draughts/movegen"
	"github.com/domino14/draughts/negamax"
)

// RepetitionLimit is how many times a position, with the same side to move,
// may occur before the game is declared drawn.
const RepetitionLimit = 3

var (
	ErrInvalidDepth = errors.New("search depth must be at least 1")
	ErrNoHeuristic  = errors.New("a heuristic is required for each side")
)

type Outcome int

const (
	Unfinished Outcome = iota
	RedWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case RedWins:
		return "red-wins"
	case BlackWins:
		return "black-wins"
	case Draw:
		return "draw"
	}
	return "unfinished"
}

func winner(s board.Side) Outcome {
	if s == board.Red {
		return RedWins
	}
	return BlackWins
}

// Trace is every board of a game, starting with the initial one.
type Trace []board.Board

// String renders each board as 8 lines, with one blank line between boards.
func (t Trace) String() string {
	return strings.Join(lo.Map(t, func(b board.Board, _ int) string {
		return b.String()
	}), "\n\n")
}

type Result struct {
	Trace   Trace
	Outcome Outcome
	// Plies is the number of moves played, len(Trace) - 1.
	Plies int
}

type Options struct {
	// LogStream, if set, receives one YAML document fragment per ply.
	LogStream io.Writer
	// Generator defaults to a caching generator private to the game.
	Generator movegen.MoveGenerator
	// DisableTranspositionTable runs every search without a table.
	DisableTranspositionTable bool
}

// LogPly is a single ply, meant for serializing to the log stream.
type LogPly struct {
	Ply        int     `yaml:"ply"`
	Side       string  `yaml:"side"`
	Heuristic  string  `yaml:"heuristic"`
	Score      int     `yaml:"score"`
	Nodes      uint64  `yaml:"nodes"`
	ElapsedSec float64 `yaml:"elapsed_sec"`
	Board      string  `yaml:"board"`
}

// Play plays out a game from initial, with first to move. Each side searches
// to depth using heuristics[side]; sides with the same heuristic name share a
// solver and its transposition table. The game ends when the side to move
// has no legal move, or when a position repeats RepetitionLimit times.
//
// The context is checked between plies only. If it is cancelled, the game so
// far is returned along with the context's error.
func Play(ctx context.Context, initial board.Board, first board.Side, depth int,
	heuristics [2]heuristic.Heuristic, opts Options) (Result, error) {

	if depth < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	for _, h := range heuristics {
		if h == nil {
			return Result{}, ErrNoHeuristic
		}
	}
	gen := opts.Generator
	if gen == nil {
		gen = movegen.NewGenerator()
	}
	solvers := make(map[string]*negamax.Solver)
	for _, h := range heuristics {
		if _, ok := solvers[h.Name()]; ok {
			continue
		}
		s := negamax.NewSolver(gen, nil)
		s.SetTranspositionTableOptim(!opts.DisableTranspositionTable)
		solvers[h.Name()] = s
	}

	res := Result{Trace: Trace{initial}}
	seen := newPositionCounter()
	seen.add(initial, first)

	cur, side := initial, first
	tstart := time.Now()
	for res.Outcome == Unfinished {
		if err := ctx.Err(); err != nil {
			log.Info().Int("plies", res.Plies).Msg("game-cancelled")
			return res, err
		}
		h := heuristics[side]
		solver := solvers[h.Name()]
		nodesBefore := solver.Nodes()
		ts := time.Now()

		score, next, ok := solver.Solve(cur, side, depth, h)
		if !ok {
			res.Outcome = winner(side.Opponent())
			break
		}
		res.Trace = append(res.Trace, next)
		res.Plies++
		log.Debug().Int("ply", res.Plies).Str("side", side.String()).
			Int("score", score).Msg("ply-played")
		if opts.LogStream != nil {
			writeLogPly(opts.LogStream, LogPly{
				Ply:        res.Plies,
				Side:       side.String(),
				Heuristic:  h.Name(),
				Score:      score,
				Nodes:      solver.Nodes() - nodesBefore,
				ElapsedSec: time.Since(ts).Seconds(),
				Board:      next.String(),
			})
		}

		cur, side = next, side.Opponent()
		if seen.add(cur, side) >= RepetitionLimit {
			res.Outcome = Draw
		}
	}

	log.Info().
		Str("outcome", res.Outcome.String()).
		Int("plies", res.Plies).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("game-over")
	return res, nil
}

func writeLogPly(w io.Writer, p LogPly) {
	out, err := yaml.Marshal([]LogPly{p})
	if err != nil {
		log.Err(err).Msg("marshal-log-ply")
		return
	}
	if _, err := w.Write(out); err != nil {
		log.Err(err).Msg("write-log-ply")
	}
}

type positionCounter map[board.Key]int

func newPositionCounter() positionCounter {
	return make(positionCounter)
}

// add records one more occurrence of b with s to move and returns how many
// times it has been seen.
func (c positionCounter) add(b board.Board, s board.Side) int {
	k := b.Key(s)
	c[k]++
	return c[k]
}
