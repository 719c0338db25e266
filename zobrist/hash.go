package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/draughts/board"
)

const bignum = 1<<63 - 2

// numPieceKinds counts the pieces that can occupy a square (empty excluded).
const numPieceKinds = int(board.BlackKing)

// generate a zobrist hash for a checkers position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	blackToMove uint64

	posTable [board.Dim * board.Dim][numPieceKinds]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.blackToMove = frand.Uint64n(bignum) + 1
}

// Hash computes the full hash of a position with s to move.
func (z *Zobrist) Hash(b *board.Board, s board.Side) uint64 {
	key := uint64(0)
	for y := 0; y < board.Dim; y++ {
		for x := 0; x < board.Dim; x++ {
			p := b[y][x]
			if p == board.Empty {
				continue
			}
			key ^= z.posTable[y*board.Dim+x][p-1]
		}
	}
	if s == board.Black {
		key ^= z.blackToMove
	}
	return key
}

// Toggle xors a single piece on a square into or out of key. Applying it
// twice with the same arguments restores the original key.
func (z *Zobrist) Toggle(key uint64, sq board.Square, p board.Piece) uint64 {
	if p == board.Empty || p >= board.OffBoard || !sq.OnBoard() {
		return key
	}
	return key ^ z.posTable[sq.Y*board.Dim+sq.X][p-1]
}

// FlipSide switches the side to move in key.
func (z *Zobrist) FlipSide(key uint64) uint64 {
	return key ^ z.blackToMove
}
