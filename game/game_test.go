package game

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/heuristic"
	"github.com/domino14/draughts/movegen"
	"github.com/domino14/draughts/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

var pieceCount = [2]heuristic.Heuristic{heuristic.PieceCount{}, heuristic.PieceCount{}}

// assertLegal checks every board in the trace follows from the one before.
func assertLegal(t *testing.T, tr Trace, first board.Side) {
	side := first
	for i := 1; i < len(tr); i++ {
		assert.Contains(t, movegen.GenerateSuccessors(tr[i-1], side), tr[i], "ply %d", i)
		side = side.Opponent()
	}
}

func TestPlayFromStart(t *testing.T) {
	is := is.New(t)
	start := board.StartingPosition()
	res, err := Play(context.Background(), start, board.Red, 3, pieceCount, Options{})
	is.NoErr(err)
	is.Equal(res.Trace[0], start)
	is.Equal(res.Plies, len(res.Trace)-1)
	is.True(res.Outcome != Unfinished)
	assertLegal(t, res.Trace, board.Red)

	again, err := Play(context.Background(), start, board.Red, 3, pieceCount, Options{})
	is.NoErr(err)
	is.Equal(again.Trace, res.Trace)
	is.Equal(again.Outcome, res.Outcome)
}

func TestPlayWithoutTableMatches(t *testing.T) {
	is := is.New(t)
	start := board.StartingPosition()
	withTT, err := Play(context.Background(), start, board.Black, 3, pieceCount, Options{})
	is.NoErr(err)
	without, err := Play(context.Background(), start, board.Black, 3, pieceCount,
		Options{DisableTranspositionTable: true, Generator: movegen.Uncached})
	is.NoErr(err)
	is.Equal(withTT.Trace, without.Trace)
	is.Equal(withTT.Outcome, without.Outcome)
}

func TestPlayTwoHeuristics(t *testing.T) {
	is := is.New(t)
	hs := [2]heuristic.Heuristic{heuristic.PieceCount{}, heuristic.DefaultWeightedMaterial}
	res, err := Play(context.Background(), board.StartingPosition(), board.Red, 2, hs, Options{})
	is.NoErr(err)
	is.True(res.Outcome != Unfinished)
	assertLegal(t, res.Trace, board.Red)
}

func TestFirstPlayerCannotMove(t *testing.T) {
	is := is.New(t)
	res, err := Play(context.Background(), testhelpers.RedStuck, board.Red, 4, pieceCount, Options{})
	is.NoErr(err)
	is.Equal(len(res.Trace), 1)
	is.Equal(res.Plies, 0)
	is.Equal(res.Outcome, BlackWins)
}

func TestWinInOne(t *testing.T) {
	is := is.New(t)
	res, err := Play(context.Background(), testhelpers.WinInOne, board.Red, 5, pieceCount, Options{})
	is.NoErr(err)
	is.Equal(res.Plies, 1)
	is.Equal(res.Outcome, RedWins)
	is.Equal(res.Trace[1].Count(board.Black), 0)
}

func TestPositionCounter(t *testing.T) {
	is := is.New(t)
	c := newPositionCounter()
	b := board.StartingPosition()
	is.Equal(c.add(b, board.Red), 1)
	is.Equal(c.add(b, board.Black), 1)
	is.Equal(c.add(b, board.Red), 2)
	is.Equal(c.add(b, board.Red), RepetitionLimit)
}

func TestKingsShuffleToADraw(t *testing.T) {
	is := is.New(t)
	// Two lone kings either run into a capture or shuffle until a position
	// comes up for the third time.
	b := board.MustParse(`.......B
........
........
........
........
........
........
R.......`)
	res, err := Play(context.Background(), b, board.Red, 1, pieceCount, Options{})
	is.NoErr(err)
	assertLegal(t, res.Trace, board.Red)
	if res.Outcome == Draw {
		last := res.Trace[len(res.Trace)-1]
		n := 0
		side := board.Red
		for _, tb := range res.Trace {
			if tb == last && side == board.Side(res.Plies%2) {
				n++
			}
			side = side.Opponent()
		}
		is.Equal(n, RepetitionLimit)
	}
}

func TestPlayCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Play(ctx, board.StartingPosition(), board.Red, 3, pieceCount, Options{})
	is.True(errors.Is(err, context.Canceled))
	is.Equal(len(res.Trace), 1)
}

func TestBadArguments(t *testing.T) {
	is := is.New(t)
	_, err := Play(context.Background(), board.StartingPosition(), board.Red, 0, pieceCount, Options{})
	is.True(errors.Is(err, ErrInvalidDepth))
	_, err = Play(context.Background(), board.StartingPosition(), board.Red, 2,
		[2]heuristic.Heuristic{heuristic.PieceCount{}, nil}, Options{})
	is.True(errors.Is(err, ErrNoHeuristic))
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	res, err := Play(context.Background(), board.StartingPosition(), board.Red, 2, pieceCount,
		Options{LogStream: &buf})
	is.NoErr(err)

	var plies []LogPly
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &plies))
	is.Equal(len(plies), res.Plies)
	is.Equal(plies[0].Ply, 1)
	is.Equal(plies[0].Side, "r")
	is.Equal(plies[0].Heuristic, "piece-count")
	is.Equal(plies[0].Board, res.Trace[1].String())
	is.Equal(plies[1].Side, "b")
}

func TestTraceString(t *testing.T) {
	b := board.StartingPosition()
	tr := Trace{b, b}
	assert.Equal(t, b.String()+"\n\n"+b.String(), tr.String())
	assert.Equal(t, "", Trace{}.String())
}
