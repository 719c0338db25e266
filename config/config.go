// Package config holds the settings of the checkers binaries. Settings come
// from command-line flags and, optionally, a YAML file named by --config;
// flags win over the file.
package config

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/heuristic"
)

const (
	ConfigInputFile    = "inputfile"
	ConfigOutputFile   = "outputfile"
	ConfigDepth        = "depth"
	ConfigFirst        = "first"
	ConfigHeuristic    = "heuristic"
	ConfigOppHeuristic = "opp-heuristic"
	ConfigLogStream    = "log-stream"
	ConfigDebug        = "debug"
	ConfigCPUProfile   = "cpu-profile"
	ConfigFile         = "config"

	ConfigOutDir      = "outdir"
	ConfigRepeat      = "repeat"
	ConfigParallelism = "parallelism"
	ConfigPuzzles     = "puzzles"
)

// DefaultDepth is the search depth used when none is given.
const DefaultDepth = 13

var (
	ErrMissingFlag  = errors.New("missing required flag")
	ErrInvalidValue = errors.New("invalid setting")
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every setting at its default.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.SetDefault(ConfigDepth, DefaultDepth)
	c.SetDefault(ConfigFirst, "r")
	c.SetDefault(ConfigHeuristic, "piece-count")
	c.SetDefault(ConfigOppHeuristic, "")
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigRepeat, 8)
	c.SetDefault(ConfigParallelism, 1)
	c.SetDefault(ConfigOutDir, ".")
	return c
}

func commonFlags(fs *pflag.FlagSet) {
	fs.Int(ConfigDepth, DefaultDepth, "search depth in plies")
	fs.String(ConfigHeuristic, "piece-count", fmt.Sprintf("heuristic for the first player %v", heuristic.Names()))
	fs.String(ConfigOppHeuristic, "", "heuristic for the second player (default: same as --heuristic)")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "YAML file with settings")
}

// Load parses the arguments of the checkers binary.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("checkers", pflag.ContinueOnError)
	fs.String(ConfigInputFile, "", "file with the initial board (required)")
	fs.String(ConfigOutputFile, "", "file to write the game trace to (required)")
	fs.String(ConfigFirst, "r", "side to move first: r or b")
	fs.String(ConfigLogStream, "", "write a YAML log of every ply to this file")
	commonFlags(fs)
	if err := c.load(fs, args); err != nil {
		return err
	}
	for _, req := range []string{ConfigInputFile, ConfigOutputFile} {
		if c.GetString(req) == "" {
			return fmt.Errorf("%w: --%s", ErrMissingFlag, req)
		}
	}
	if _, err := c.FirstSide(); err != nil {
		return err
	}
	return nil
}

// LoadBench parses the arguments of the bench binary. Every positional
// argument is a puzzle file.
func (c *Config) LoadBench(args []string) error {
	fs := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	fs.String(ConfigOutDir, ".", "directory for the output traces")
	fs.Int(ConfigRepeat, 8, "how many times to solve each puzzle")
	fs.Int(ConfigParallelism, 1, "how many puzzles to solve at once")
	fs.String(ConfigFirst, "r", "side to move first: r or b")
	commonFlags(fs)
	if err := c.load(fs, args); err != nil {
		return err
	}
	c.Set(ConfigPuzzles, fs.Args())
	if len(fs.Args()) == 0 {
		return fmt.Errorf("%w: at least one puzzle file", ErrMissingFlag)
	}
	if c.GetInt(ConfigRepeat) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidValue, ConfigRepeat)
	}
	if c.GetInt(ConfigParallelism) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidValue, ConfigParallelism)
	}
	if _, err := c.FirstSide(); err != nil {
		return err
	}
	return nil
}

func (c *Config) load(fs *pflag.FlagSet, args []string) error {
	if c.Viper == nil {
		c.Viper = DefaultConfig().Viper
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", cfgFile, err)
		}
	}
	if d := c.GetInt(ConfigDepth); d < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidValue, ConfigDepth, d)
	}
	if _, err := c.Heuristics(board.Red); err != nil {
		return err
	}
	return nil
}

func (c *Config) FirstSide() (board.Side, error) {
	s, err := board.ParseSide(c.GetString(ConfigFirst))
	if err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrInvalidValue, ConfigFirst, err)
	}
	return s, nil
}

// Heuristics returns the heuristic of each side, indexed by side. The side
// moving first uses --heuristic, the other --opp-heuristic.
func (c *Config) Heuristics(first board.Side) ([2]heuristic.Heuristic, error) {
	var hs [2]heuristic.Heuristic
	name := c.GetString(ConfigHeuristic)
	oppName := c.GetString(ConfigOppHeuristic)
	if oppName == "" {
		oppName = name
	}
	h, err := heuristic.FromName(name)
	if err != nil {
		return hs, err
	}
	opp, err := heuristic.FromName(oppName)
	if err != nil {
		return hs, err
	}
	hs[first] = h
	hs[first.Opponent()] = opp
	return hs, nil
}

// SanitizedSettings returns the settings that are set, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return lo.OmitBy(c.AllSettings(), func(_ string, v any) bool {
		s, ok := v.(string)
		return ok && s == ""
	})
}
