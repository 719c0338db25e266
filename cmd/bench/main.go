package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/draughts/automatic"
	"github.com/domino14/draughts/config"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.LoadBench(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))

	first, err := cfg.FirstSide()
	if err != nil {
		log.Fatal().Err(err).Msg("first-side")
	}
	hs, err := cfg.Heuristics(first)
	if err != nil {
		log.Fatal().Err(err).Msg("heuristics")
	}
	outDir := cfg.GetString(config.ConfigOutDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("outdir")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := automatic.RunPuzzles(ctx, automatic.BenchOptions{
		Puzzles:     cfg.GetStringSlice(config.ConfigPuzzles),
		OutDir:      outDir,
		Depth:       cfg.GetInt(config.ConfigDepth),
		Repeat:      cfg.GetInt(config.ConfigRepeat),
		Parallelism: cfg.GetInt(config.ConfigParallelism),
		First:       first,
		Heuristics:  hs,
	})
	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("bench")
	}
	if err := automatic.WriteReport(os.Stdout, results); err != nil {
		log.Fatal().Err(err).Msg("report")
	}
}
