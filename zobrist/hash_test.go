package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/draughts/board"
)

func TestHashSideToMove(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	b := board.StartingPosition()
	hr := z.Hash(&b, board.Red)
	hb := z.Hash(&b, board.Black)
	is.True(hr != hb)
	is.Equal(z.FlipSide(hr), hb)
	is.Equal(z.FlipSide(hb), hr)

	c := board.StartingPosition()
	is.Equal(z.Hash(&c, board.Red), hr)
}

func TestHashAfterMove(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	b := board.StartingPosition()
	h := z.Hash(&b, board.Red)

	from, to := board.Square{X: 0, Y: 5}, board.Square{X: 1, Y: 4}
	moved := b.Move(from, to)

	// Incrementally update the key: remove from origin, add at destination,
	// flip side.
	h1 := z.Toggle(h, from, board.RedMan)
	h1 = z.Toggle(h1, to, board.RedMan)
	h1 = z.FlipSide(h1)
	is.Equal(h1, z.Hash(&moved, board.Black))

	// And undo it.
	h2 := z.FlipSide(h1)
	h2 = z.Toggle(h2, to, board.RedMan)
	h2 = z.Toggle(h2, from, board.RedMan)
	is.Equal(h2, h)
}

func TestToggleIgnoresEmptyAndOffBoard(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()
	is.Equal(z.Toggle(42, board.Square{X: 3, Y: 3}, board.Empty), uint64(42))
	is.Equal(z.Toggle(42, board.Square{X: -1, Y: 3}, board.RedKing), uint64(42))
}
