package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/gameio"
	"github.com/domino14/draughts/heuristic"
	"github.com/domino14/draughts/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func writePuzzle(t *testing.T, dir, name string, b board.Board) string {
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestRunPuzzles(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	outDir := t.TempDir()
	puzzles := []string{
		writePuzzle(t, dir, "start.txt", board.StartingPosition()),
		writePuzzle(t, dir, "win.txt", testhelpers.WinInOne),
	}
	results, err := RunPuzzles(context.Background(), BenchOptions{
		Puzzles:     puzzles,
		OutDir:      outDir,
		Depth:       2,
		Repeat:      2,
		Parallelism: 2,
		First:       board.Red,
		Heuristics:  [2]heuristic.Heuristic{heuristic.PieceCount{}, heuristic.PieceCount{}},
	})
	is.NoErr(err)
	is.Equal(len(results), 2)

	is.Equal(results[0].Puzzle, puzzles[0])
	is.Equal(results[0].Output, filepath.Join(outDir, "start.out.txt"))
	is.Equal(len(results[0].Seconds), 2)
	is.True(results[0].Mean > 0)
	trace, err := gameio.ReadTrace(results[0].Output)
	is.NoErr(err)
	is.Equal(results[0].Boards, len(trace))
	is.Equal(trace[0], board.StartingPosition())

	is.Equal(results[1].Boards, 2)
	is.Equal(results[1].Outcome.String(), "red-wins")

	var buf bytes.Buffer
	is.NoErr(WriteReport(&buf, results))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.HasPrefix(lines[1], puzzles[1]+": time "))
	is.True(strings.HasSuffix(lines[1], "2 boards, red-wins"))
	is.True(strings.HasPrefix(lines[2], "total mean time: "))
}

func TestRunPuzzlesBadInput(t *testing.T) {
	is := is.New(t)
	_, err := RunPuzzles(context.Background(), BenchOptions{
		Puzzles:    []string{filepath.Join(t.TempDir(), "missing.txt")},
		OutDir:     t.TempDir(),
		Depth:      2,
		Repeat:     1,
		Heuristics: [2]heuristic.Heuristic{heuristic.PieceCount{}, heuristic.PieceCount{}},
	})
	is.True(errors.Is(err, gameio.ErrFileRead))
}

func TestOnlyOneBenchAtATime(t *testing.T) {
	is := is.New(t)
	IsBenchmarking.Add(1)
	defer IsBenchmarking.Add(-1)
	_, err := RunPuzzles(context.Background(), BenchOptions{})
	is.True(errors.Is(err, ErrAlreadyRunning))
}

func TestOutputPath(t *testing.T) {
	is := is.New(t)
	is.Equal(OutputPath("out", "/tmp/puzzles/p3.txt"), filepath.Join("out", "p3.out.txt"))
	is.Equal(OutputPath("out", "p4"), filepath.Join("out", "p4.out.txt"))
}
