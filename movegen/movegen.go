// Package movegen contains all the move-generating functions. A move is
// represented by the board it produces, so every generator returns a list
// of successor boards.
package movegen

import (
	"github.com/domino14/draughts/board"
)

// MoveGenerator returns the legal successors of a position. An empty result
// means the side to move has no legal move.
type MoveGenerator interface {
	Successors(b board.Board, s board.Side) []board.Board
}

// AllJumps returns every capture available to side s. Multi-jump chains are
// followed to the end: a capture that can be continued is only returned in
// its extended forms. A piece that lands on its side's promotion row is
// crowned and its chain ends there, even if another capture would be
// available.
func AllJumps(b board.Board, s board.Side) []board.Board {
	var jumps []board.Board
	for _, sq := range board.Squares() {
		if !b.At(sq).BelongsTo(s) {
			continue
		}
		jumps = jumpsFrom(b, s, sq, jumps)
	}
	return jumps
}

// jumpsFrom appends to out every complete capture chain starting with the
// piece on sq.
func jumpsFrom(b board.Board, s board.Side, sq board.Square, out []board.Board) []board.Board {
	opp := s.Opponent()
	for _, d := range board.Directions(b.At(sq), s) {
		over := sq.Add(d)
		landing := sq.Add(d.Scale(2))
		if !b.At(over).BelongsTo(opp) || b.At(landing) != board.Empty {
			continue
		}
		next := b.Move(sq, landing).With(over, board.Empty)
		if landing.Y == s.PromotionRow() {
			out = append(out, next.With(landing, s.King()))
			continue
		}
		before := len(out)
		out = jumpsFrom(next, s, landing, out)
		if len(out) == before {
			out = append(out, next)
		}
	}
	return out
}

// SimpleMoves returns every non-capturing move for side s.
func SimpleMoves(b board.Board, s board.Side) []board.Board {
	var moves []board.Board
	for _, sq := range board.Squares() {
		p := b.At(sq)
		for _, d := range board.Directions(p, s) {
			to := sq.Add(d)
			if b.At(to) != board.Empty {
				continue
			}
			next := b.Move(sq, to)
			if to.Y == s.PromotionRow() {
				next = next.With(to, s.King())
			}
			moves = append(moves, next)
		}
	}
	return moves
}

// GenerateSuccessors returns the legal successors for side s. Captures are
// compulsory: if any exist, simple moves are not offered.
func GenerateSuccessors(b board.Board, s board.Side) []board.Board {
	if jumps := AllJumps(b, s); len(jumps) > 0 {
		return jumps
	}
	return SimpleMoves(b, s)
}
