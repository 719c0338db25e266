package board

// Packed is a fixed-width encoding of a board, 4 bits per square, row-major.
// Two boards are equal if and only if their packed forms are equal.
type Packed [4]uint64

const squaresPerWord = 16

// Pack encodes the board.
func (b Board) Pack() Packed {
	var p Packed
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			idx := y*Dim + x
			p[idx/squaresPerWord] |= uint64(b[y][x]) << (4 * (idx % squaresPerWord))
		}
	}
	return p
}

// Unpack is the inverse of Pack.
func (p Packed) Unpack() Board {
	var b Board
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			idx := y*Dim + x
			b[y][x] = Piece((p[idx/squaresPerWord] >> (4 * (idx % squaresPerWord))) & 0xf)
		}
	}
	return b
}

// A Key identifies a position together with the side to move. It is
// comparable and can be used as a map key.
type Key struct {
	Board Packed
	Side  Side
}

// Key returns the lookup key for this board with s to move.
func (b Board) Key(s Side) Key {
	return Key{Board: b.Pack(), Side: s}
}
