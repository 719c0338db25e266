package board

import (
	"errors"
	"fmt"
)

// A Piece is the content of a single square.
type Piece uint8

const (
	Empty Piece = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
	// OffBoard is returned when reading outside of the board. It is never
	// stored in a Board.
	OffBoard
)

const pieceRunes = ".rRbB"

var ErrInvalidBoardFormat = errors.New("invalid board format")

// PieceFromRune converts a character of the text board format to a Piece.
func PieceFromRune(r rune) (Piece, error) {
	switch r {
	case '.':
		return Empty, nil
	case 'r':
		return RedMan, nil
	case 'R':
		return RedKing, nil
	case 'b':
		return BlackMan, nil
	case 'B':
		return BlackKing, nil
	}
	return Empty, fmt.Errorf("%w: unrecognized character %q", ErrInvalidBoardFormat, r)
}

// Rune is the character used for the piece in the text board format.
func (p Piece) Rune() rune {
	if p >= OffBoard {
		return '?'
	}
	return rune(pieceRunes[p])
}

func (p Piece) String() string {
	return string(p.Rune())
}

// IsKing returns true for crowned pieces of either color.
func (p Piece) IsKing() bool {
	return p == RedKing || p == BlackKing
}

// BelongsTo returns true if p is a man or king of the given side.
func (p Piece) BelongsTo(s Side) bool {
	return p == s.Man() || p == s.King()
}

// A Side is one of the two players.
type Side uint8

const (
	Red Side = iota
	Black
)

// ParseSide accepts the player characters used by the board format.
func ParseSide(s string) (Side, error) {
	switch s {
	case "r", "R", "red":
		return Red, nil
	case "b", "B", "black":
		return Black, nil
	}
	return Red, fmt.Errorf("unrecognized side %q", s)
}

func (s Side) String() string {
	if s == Black {
		return "b"
	}
	return "r"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

// Man returns the uncrowned piece of this side.
func (s Side) Man() Piece {
	if s == Black {
		return BlackMan
	}
	return RedMan
}

// King returns the crowned piece of this side.
func (s Side) King() Piece {
	if s == Black {
		return BlackKing
	}
	return RedKing
}

// PromotionRow is the row on which this side's men are crowned.
func (s Side) PromotionRow() int {
	if s == Black {
		return Dim - 1
	}
	return 0
}
