// Package heuristic contains static evaluation functions used at the leaves
// of the search.
package heuristic

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/draughts/board"
)

// LossMagnitude is the score of a lost position at the root. A loss found
// n plies below the root scores -LossMagnitude + n, so quicker losses are
// worse and quicker wins are better.
const LossMagnitude = 100000

// MateThreshold separates material scores from forced win/loss scores. Any
// score with a larger magnitude is a mate-distance score.
const MateThreshold = LossMagnitude - 10000

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// A Heuristic scores a position from player's point of view. Implementations
// must be pure: the same arguments always give the same score, and b is
// never modified.
type Heuristic interface {
	Score(b *board.Board, player board.Side, depth, originalDepth int) int
	Name() string
}

// LossScore is the score for a player who has lost at the given depth.
func LossScore(depth, originalDepth int) int {
	return -LossMagnitude + (originalDepth - depth)
}

// IsMateScore returns true if score encodes a forced win or loss.
func IsMateScore(score int) bool {
	return score > MateThreshold || score < -MateThreshold
}

type materialFunc func(p board.Piece) int

func material(b *board.Board, player board.Side, depth, originalDepth int, value materialFunc) int {
	squares := board.Squares()
	if !lo.SomeBy(squares, func(sq board.Square) bool { return b.At(sq).BelongsTo(player) }) {
		return LossScore(depth, originalDepth)
	}
	opp := player.Opponent()
	return lo.SumBy(squares, func(sq board.Square) int {
		p := b.At(sq)
		switch {
		case p.BelongsTo(player):
			return value(p)
		case p.BelongsTo(opp):
			return -value(p)
		}
		return 0
	})
}

// PieceCount counts the player's pieces minus the opponent's. A player with
// no pieces left has lost.
type PieceCount struct{}

func (PieceCount) Score(b *board.Board, player board.Side, depth, originalDepth int) int {
	return material(b, player, depth, originalDepth, func(board.Piece) int { return 1 })
}

func (PieceCount) Name() string {
	return "piece-count"
}

// WeightedMaterial values kings above men.
type WeightedMaterial struct {
	Man  int
	King int
}

// DefaultWeightedMaterial counts a king as one and a half men.
var DefaultWeightedMaterial = WeightedMaterial{Man: 2, King: 3}

func (w WeightedMaterial) Score(b *board.Board, player board.Side, depth, originalDepth int) int {
	return material(b, player, depth, originalDepth, func(p board.Piece) int {
		if p.IsKing() {
			return w.King
		}
		return w.Man
	})
}

func (w WeightedMaterial) Name() string {
	return fmt.Sprintf("weighted-%d-%d", w.Man, w.King)
}

var registry = map[string]Heuristic{
	"piece-count": PieceCount{},
	"weighted":    DefaultWeightedMaterial,
}

// FromName looks up one of the built-in heuristics.
func FromName(name string) (Heuristic, error) {
	h, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownHeuristic, name, Names())
	}
	return h, nil
}

// Names lists the built-in heuristics.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}
