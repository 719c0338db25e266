package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/draughts/config"
	"github.com/domino14/draughts/game"
	"github.com/domino14/draughts/gameio"
)

var (
	GitVersion string
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "checkers: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).
		Msg("loaded-config")
	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			log.Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	initial, err := gameio.ReadBoard(cfg.GetString(config.ConfigInputFile))
	if err != nil {
		log.Err(err).Msg("read-input")
		return 1
	}
	first, err := cfg.FirstSide()
	if err != nil {
		log.Err(err).Msg("first-side")
		return 1
	}
	hs, err := cfg.Heuristics(first)
	if err != nil {
		log.Err(err).Msg("heuristics")
		return 1
	}

	opts := game.Options{}
	if fn := cfg.GetString(config.ConfigLogStream); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Err(err).Msg("could not create log stream")
			return 1
		}
		defer f.Close()
		opts.LogStream = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, playErr := game.Play(ctx, initial, first, cfg.GetInt(config.ConfigDepth), hs, opts)
	if playErr != nil {
		// Keep whatever was played before the interruption.
		log.Err(playErr).Int("plies", res.Plies).Msg("game-interrupted")
	}
	if len(res.Trace) == 0 {
		return 1
	}
	if err := gameio.WriteTrace(cfg.GetString(config.ConfigOutputFile), res.Trace); err != nil {
		log.Err(err).Msg("write-output")
		return 1
	}
	log.Info().Str("outputfile", cfg.GetString(config.ConfigOutputFile)).
		Int("boards", len(res.Trace)).Str("outcome", res.Outcome.String()).Msg("wrote-trace")
	if playErr != nil {
		return 1
	}
	return 0
}
