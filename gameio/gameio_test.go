package gameio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/game"
	"github.com/domino14/draughts/movegen"
)

func TestReadBoard(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	fn := filepath.Join(dir, "input.txt")
	start := board.StartingPosition()
	is.NoErr(os.WriteFile(fn, []byte(start.String()+"\n"), 0o644))

	b, err := ReadBoard(fn)
	is.NoErr(err)
	is.Equal(b, start)
}

func TestReadBoardErrors(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	_, err := ReadBoard(filepath.Join(dir, "missing.txt"))
	is.True(errors.Is(err, ErrFileRead))
	is.True(errors.Is(err, os.ErrNotExist))

	fn := filepath.Join(dir, "bad.txt")
	is.NoErr(os.WriteFile(fn, []byte("........\n"), 0o644))
	_, err = ReadBoard(fn)
	is.True(errors.Is(err, board.ErrInvalidBoardFormat))
	is.True(strings.Contains(err.Error(), "bad.txt"))
}

func TestWriteReadTrace(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	fn := filepath.Join(dir, "output.txt")
	start := board.StartingPosition()
	tr := game.Trace{start, movegen.GenerateSuccessors(start, board.Red)[0]}

	is.NoErr(WriteTrace(fn, tr))
	contents, err := os.ReadFile(fn)
	is.NoErr(err)
	// 8 lines per board and a blank line between them, no trailing newline.
	lines := strings.Split(string(contents), "\n")
	is.Equal(len(lines), 17)
	is.Equal(lines[8], "")
	is.True(!strings.HasSuffix(string(contents), "\n"))

	back, err := ReadTrace(fn)
	is.NoErr(err)
	assert.Equal(t, tr, back)
}

func TestWriteTraceError(t *testing.T) {
	is := is.New(t)
	err := WriteTrace(filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt"),
		game.Trace{board.StartingPosition()})
	is.True(errors.Is(err, ErrFileWrite))
}
