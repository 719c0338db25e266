package board

import "fmt"

// Dim is the width and height of a checkers board.
const Dim = 8

// A Square is a coordinate on the board. X is the column, Y is the row;
// row 0 is the top of the board as rendered.
type Square struct {
	X, Y int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// OnBoard returns true if both coordinates are within [0, Dim).
func (s Square) OnBoard() bool {
	return s.X >= 0 && s.X < Dim && s.Y >= 0 && s.Y < Dim
}

// Add returns the square reached by moving along d once.
func (s Square) Add(d Direction) Square {
	return Square{X: s.X + d.DX, Y: s.Y + d.DY}
}

// A Direction is one of the four diagonal unit vectors.
type Direction struct {
	DX, DY int
}

// Scale multiplies the vector; a jump lands at d.Scale(2).
func (d Direction) Scale(k int) Direction {
	return Direction{DX: d.DX * k, DY: d.DY * k}
}

var (
	UpperLeft  = Direction{-1, -1}
	UpperRight = Direction{1, -1}
	LowerLeft  = Direction{-1, 1}
	LowerRight = Direction{1, 1}
)

var (
	redManDirs   = []Direction{UpperLeft, UpperRight}
	blackManDirs = []Direction{LowerLeft, LowerRight}
	kingDirs     = []Direction{UpperLeft, UpperRight, LowerLeft, LowerRight}
)

// Directions returns the directions piece p may move in when it is side's
// turn. Pieces that do not belong to side get no directions. Red moves up
// the board, black moves down; kings move both ways.
// The returned slice is shared and must not be modified.
func Directions(p Piece, side Side) []Direction {
	switch {
	case p == side.Man() && side == Red:
		return redManDirs
	case p == side.Man() && side == Black:
		return blackManDirs
	case p == side.King():
		return kingDirs
	}
	return nil
}
