package board

import (
	"fmt"
	"strings"
)

// A Board is an 8x8 grid of pieces, indexed [row][column]. Boards are values:
// assigning one copies it, and none of the methods below modify the receiver.
type Board [Dim][Dim]Piece

// squareOrder is the order in which move generation visits squares:
// column by column, top to bottom within a column. Successor order (and
// therefore tie-breaking in the search) depends on it.
var squareOrder = func() []Square {
	sqs := make([]Square, 0, Dim*Dim)
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			sqs = append(sqs, Square{X: x, Y: y})
		}
	}
	return sqs
}()

// Squares returns every square in move generation order. The slice is shared
// and must not be modified.
func Squares() []Square {
	return squareOrder
}

// At returns the piece at sq, or OffBoard if sq is outside the board.
func (b *Board) At(sq Square) Piece {
	if !sq.OnBoard() {
		return OffBoard
	}
	return b[sq.Y][sq.X]
}

// With returns a copy of the board with p placed on sq.
func (b Board) With(sq Square, p Piece) Board {
	if sq.OnBoard() {
		b[sq.Y][sq.X] = p
	}
	return b
}

// Move returns a copy of the board with the piece on from relocated to to.
func (b Board) Move(from, to Square) Board {
	p := b.At(from)
	return b.With(from, Empty).With(to, p)
}

// Count returns the number of pieces (men and kings) of the given side.
func (b *Board) Count(s Side) int {
	n := 0
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			if b[y][x].BelongsTo(s) {
				n++
			}
		}
	}
	return n
}

// CountPiece returns the number of squares holding exactly p.
func (b *Board) CountPiece(p Piece) int {
	n := 0
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			if b[y][x] == p {
				n++
			}
		}
	}
	return n
}

// String renders the board in the canonical text format: 8 lines of 8
// characters, no trailing newline.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Dim * (Dim + 1))
	for y := 0; y < Dim; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < Dim; x++ {
			sb.WriteRune(b[y][x].Rune())
		}
	}
	return sb.String()
}

// Parse reads a board in the canonical text format. Trailing blank lines
// and carriage returns are ignored.
func Parse(s string) (Board, error) {
	var b Board
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) != Dim {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoardFormat, Dim, len(lines))
	}
	for y, line := range lines {
		line = strings.TrimRight(line, " \t")
		if len(line) != Dim {
			return b, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrInvalidBoardFormat, y, len(line), Dim)
		}
		for x, r := range line {
			p, err := PieceFromRune(r)
			if err != nil {
				return b, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			b[y][x] = p
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// fixed positions.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseTrace reads a sequence of boards separated by blank lines.
func ParseTrace(s string) ([]Board, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var boards []Board
	for i, chunk := range strings.Split(strings.TrimSpace(s), "\n\n") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		b, err := Parse(chunk)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i, err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// StartingPosition is the standard opening setup: black men on the dark
// squares of the top three rows, red men on the bottom three.
func StartingPosition() Board {
	var b Board
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			switch {
			case y < 3:
				b[y][x] = BlackMan
			case y > 4:
				b[y][x] = RedMan
			}
		}
	}
	return b
}
