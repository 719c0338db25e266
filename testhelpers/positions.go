package testhelpers

import (
	"lukechampine.com/frand"

	"github.com/domino14/draughts/board"
)

var allPieces = []board.Piece{board.RedMan, board.RedKing, board.BlackMan, board.BlackKing}

// RandomPosition scatters between minPieces and maxPieces random pieces over
// the dark squares. Pieces may overwrite each other, and men may sit on
// their own promotion row; the move generator has to cope with both.
func RandomPosition(minPieces, maxPieces int) board.Board {
	var b board.Board
	n := minPieces
	if maxPieces > minPieces {
		n += frand.Intn(maxPieces - minPieces + 1)
	}
	for i := 0; i < n; i++ {
		x, y := frand.Intn(board.Dim), frand.Intn(board.Dim)
		if (x+y)%2 == 0 {
			x = (x + 1) % board.Dim
		}
		b = b.With(board.Square{X: x, Y: y}, allPieces[frand.Intn(len(allPieces))])
	}
	return b
}

// RandomSide picks a side to move.
func RandomSide() board.Side {
	return board.Side(frand.Intn(2))
}

// WinInOne has red to move and capture black's last piece.
var WinInOne = board.MustParse(`........
........
........
....b...
...r....
........
........
........`)

// RedStuck has a red man on its promotion row and no other red piece, so red
// has no legal move.
var RedStuck = board.MustParse(`.r......
........
........
........
........
........
........
......b.`)
