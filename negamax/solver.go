// Package negamax implements a depth-limited negamax search with alpha-beta
// pruning and a transposition table.
package negamax

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/heuristic"
	"github.com/domino14/draughts/movegen"
)

// Solver searches checkers positions. A Solver, and the table it uses, must
// only be used with a single heuristic: table entries do not record which
// heuristic produced them.
type Solver struct {
	movegen movegen.MoveGenerator
	ttable  *TranspositionTable

	transpositionTableOptim bool

	nodes atomic.Uint64

	logStream io.Writer
}

// NewSolver creates a solver. If tt is nil the solver gets a fresh table.
func NewSolver(m movegen.MoveGenerator, tt *TranspositionTable) *Solver {
	if tt == nil {
		tt = NewTranspositionTable(DefaultShardsPowerOf2)
	}
	return &Solver{
		movegen:                 m,
		ttable:                  tt,
		transpositionTableOptim: true,
	}
}

func (s *Solver) SetTranspositionTableOptim(o bool) {
	s.transpositionTableOptim = o
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// SetLogStream makes the solver write every visited node to w, as an
// indented YAML-like tree. This is very slow and only meant for debugging
// shallow searches.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes is the number of nodes visited since the solver was created.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Mate scores are stored relative to the node they were found at, so that a
// stored forced win means the same thing wherever the position shows up
// again in the tree.
func scoreToTable(score, ply int) int {
	switch {
	case score > heuristic.MateThreshold:
		return score + ply
	case score < -heuristic.MateThreshold:
		return score - ply
	}
	return score
}

func scoreFromTable(score, ply int) int {
	switch {
	case score > heuristic.MateThreshold:
		return score - ply
	case score < -heuristic.MateThreshold:
		return score + ply
	}
	return score
}

// Search returns the negamax value of b for player, searched to the given
// remaining depth within the window (α, β), along with the best successor.
// ok is false when there is no successor to report: at depth zero, or when
// player has no legal move.
//
// The returned value is fail-soft: if it is at most α it is an upper bound on
// the true value, if it is at least β it is a lower bound, otherwise it is
// exact. originalDepth is the depth the search started at; it is used to
// score losses by distance from the root.
func (s *Solver) Search(b board.Board, player board.Side, depth, α, β int,
	h heuristic.Heuristic, originalDepth int) (int, board.Board, bool) {

	s.nodes.Add(1)
	alphaOrig := α
	ply := originalDepth - depth

	// Nothing is stored at depth zero, so there is no point in probing.
	if s.transpositionTableOptim && depth > 0 {
		ttEntry := s.ttable.lookup(&b, player)
		// Only entries searched to exactly this depth are used, so that a
		// search with the table gives the same answer as one without.
		if ttEntry.valid() && ttEntry.depth == depth {
			score := scoreFromTable(ttEntry.score, ply)
			best, ok := ttEntry.move()
			switch ttEntry.flag {
			case TTExact:
				return score, best, ok
			case TTLower:
				if score >= β {
					return score, best, ok
				}
				// Stay one below the bound, so that a child worth exactly
				// the bound is still searched as exact and can be picked.
				α = max(α, score-1)
			case TTUpper:
				if score <= α {
					return score, best, ok
				}
				β = min(β, score)
			}
		}
	}

	if depth == 0 {
		return h.Score(&b, player, depth, originalDepth), board.Board{}, false
	}

	children := s.movegen.Successors(b, player)
	if len(children) == 0 {
		return heuristic.LossScore(depth, originalDepth), board.Board{}, false
	}

	opp := player.Opponent()
	bestIdx := -1
	bestValue := 0
	var indent string
	if s.logStream != nil {
		indent = strings.Repeat(" ", 2*ply)
		fmt.Fprintf(s.logStream, "%vchildren:\n", indent)
	}
	for i := range children {
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "%v- child: %d\n", indent, i)
		}
		value, _, _ := s.Search(children[i], opp, depth-1, -β, -α, h, originalDepth)
		value = -value
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "%v  value: %d\n", indent, value)
		}
		if bestIdx < 0 || value > bestValue {
			bestIdx = i
			bestValue = value
		}
		α = max(α, bestValue)
		if α >= β {
			break // beta cut-off
		}
	}

	if s.transpositionTableOptim {
		entryToStore := TableEntry{
			score:   scoreToTable(bestValue, ply),
			depth:   depth,
			hasBest: true,
			best:    children[bestIdx],
		}
		if bestValue <= alphaOrig {
			entryToStore.flag = TTUpper
		} else if bestValue >= β {
			entryToStore.flag = TTLower
		} else {
			entryToStore.flag = TTExact
		}
		s.ttable.store(&b, player, entryToStore)
	}
	return bestValue, children[bestIdx], true
}

// Solve searches b to the given depth with a full window.
func (s *Solver) Solve(b board.Board, player board.Side, depth int, h heuristic.Heuristic) (int, board.Board, bool) {
	log.Debug().Int("depth", depth).Str("player", player.String()).
		Str("heuristic", h.Name()).Msg("negamax-solve-config")
	tstart := time.Now()
	nodesBefore := s.nodes.Load()
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "- depth: %d\n", depth)
	}

	score, best, ok := s.Search(b, player, depth, -heuristic.LossMagnitude, heuristic.LossMagnitude, h, depth)

	log.Debug().
		Int("score", score).
		Bool("has-move", ok).
		Uint64("nodes", s.nodes.Load()-nodesBefore).
		Uint64("ttable-created", s.ttable.Created()).
		Uint64("ttable-lookups", s.ttable.Lookups()).
		Uint64("ttable-hits", s.ttable.Hits()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return score, best, ok
}
