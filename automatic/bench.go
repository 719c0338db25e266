// Package automatic runs the solver over many puzzles without supervision
// and collects timing statistics.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/game"
	"github.com/domino14/draughts/gameio"
	"github.com/domino14/draughts/heuristic"
)

var (
	PuzzleCounter  *expvar.Int
	IsBenchmarking *expvar.Int
)

func init() {
	PuzzleCounter = expvar.NewInt("puzzleCounter")
	IsBenchmarking = expvar.NewInt("isBenchmarking")
}

var ErrAlreadyRunning = errors.New("a benchmark is already running, please wait till complete")

type BenchOptions struct {
	Puzzles     []string
	OutDir      string
	Depth       int
	Repeat      int
	Parallelism int
	First       board.Side
	Heuristics  [2]heuristic.Heuristic
}

type PuzzleResult struct {
	Puzzle  string
	Output  string
	Seconds []float64
	Mean    float64
	StdDev  float64
	// Boards is the number of boards read back from the output file.
	Boards  int
	Outcome game.Outcome
}

// OutputPath is where the trace for puzzle is written.
func OutputPath(outDir, puzzle string) string {
	base := filepath.Base(puzzle)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+".out.txt")
}

// RunPuzzles plays out every puzzle opts.Repeat times. Up to
// opts.Parallelism puzzles run at once; each game owns its solver, so no
// table is shared between goroutines. Results are in the order of
// opts.Puzzles.
func RunPuzzles(ctx context.Context, opts BenchOptions) ([]PuzzleResult, error) {
	if IsBenchmarking.Value() > 0 {
		return nil, ErrAlreadyRunning
	}
	IsBenchmarking.Add(1)
	defer IsBenchmarking.Add(-1)

	log.Debug().Int("puzzles", len(opts.Puzzles)).Int("parallelism", opts.Parallelism).
		Int("repeat", opts.Repeat).Msg("starting-bench")
	results := make([]PuzzleResult, len(opts.Puzzles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallelism, 1))
	for i, puzzle := range opts.Puzzles {
		i, puzzle := i, puzzle
		g.Go(func() error {
			res, err := runPuzzle(ctx, puzzle, opts)
			if err != nil {
				return err
			}
			results[i] = res
			PuzzleCounter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runPuzzle(ctx context.Context, puzzle string, opts BenchOptions) (PuzzleResult, error) {
	res := PuzzleResult{Puzzle: puzzle, Output: OutputPath(opts.OutDir, puzzle)}
	initial, err := gameio.ReadBoard(puzzle)
	if err != nil {
		return res, err
	}
	repeat := max(opts.Repeat, 1)
	for i := 0; i < repeat; i++ {
		ts := time.Now()
		played, err := game.Play(ctx, initial, opts.First, opts.Depth, opts.Heuristics, game.Options{})
		if err != nil {
			return res, fmt.Errorf("%s: %w", puzzle, err)
		}
		if err := gameio.WriteTrace(res.Output, played.Trace); err != nil {
			return res, err
		}
		res.Seconds = append(res.Seconds, time.Since(ts).Seconds())
		res.Outcome = played.Outcome
	}
	res.Mean, res.StdDev = stat.MeanStdDev(res.Seconds, nil)
	if len(res.Seconds) < 2 {
		res.StdDev = 0
	}
	trace, err := gameio.ReadTrace(res.Output)
	if err != nil {
		return res, err
	}
	res.Boards = len(trace)
	log.Info().Str("puzzle", puzzle).Float64("mean-sec", res.Mean).
		Float64("stddev-sec", res.StdDev).Int("boards", res.Boards).
		Str("outcome", res.Outcome.String()).Msg("puzzle-solved")
	return res, nil
}

// WriteReport prints one line per puzzle and a total.
func WriteReport(w io.Writer, results []PuzzleResult) error {
	lines := lo.Map(results, func(r PuzzleResult, _ int) string {
		return fmt.Sprintf("%s: time %.3fs ± %.3fs, %d boards, %s",
			r.Puzzle, r.Mean, r.StdDev, r.Boards, r.Outcome)
	})
	total := lo.SumBy(results, func(r PuzzleResult) float64 { return r.Mean })
	lines = append(lines, fmt.Sprintf("total mean time: %.3fs", total))
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
