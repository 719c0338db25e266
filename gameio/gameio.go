// Package gameio reads and writes boards and game traces in their plain
// text form.
package gameio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/game"
)

var (
	ErrFileRead  = errors.New("could not read file")
	ErrFileWrite = errors.New("could not write file")
)

// ReadBoardFromReader parses a single board.
func ReadBoardFromReader(r io.Reader) (board.Board, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	return board.Parse(string(contents))
}

// ReadBoard parses the board in the given file.
func ReadBoard(filename string) (board.Board, error) {
	f, err := os.Open(filename)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()
	b, err := ReadBoardFromReader(f)
	if err != nil {
		return board.Board{}, fmt.Errorf("%s: %w", filename, err)
	}
	return b, nil
}

// ReadTrace parses every board of a trace file.
func ReadTrace(filename string) (game.Trace, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	boards, err := board.ParseTrace(string(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return game.Trace(boards), nil
}

// WriteTraceTo writes the trace with one blank line between boards and no
// trailing newline.
func WriteTraceTo(w io.Writer, t game.Trace) error {
	if _, err := io.WriteString(w, t.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrFileWrite, err)
	}
	return nil
}

// WriteTrace creates or truncates filename and writes the trace to it.
func WriteTrace(filename string, t game.Trace) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileWrite, err)
	}
	if err := WriteTraceTo(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileWrite, err)
	}
	log.Debug().Str("filename", filename).Int("boards", len(t)).Msg("wrote-trace")
	return nil
}
