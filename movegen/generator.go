package movegen

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/cache"
)

// Generator is a MoveGenerator that expands each (board, side) pair only
// once and serves repeats from a successor cache.
type Generator struct {
	cache *cache.SuccessorCache
}

func NewGenerator() *Generator {
	return &Generator{cache: cache.NewSuccessorCache()}
}

// NewGeneratorWithCache lets several generators share one cache.
func NewGeneratorWithCache(c *cache.SuccessorCache) *Generator {
	return &Generator{cache: c}
}

func (g *Generator) Successors(b board.Board, s board.Side) []board.Board {
	return g.cache.Load(b, s, GenerateSuccessors)
}

func (g *Generator) Cache() *cache.SuccessorCache {
	return g.cache
}

// LogStats writes the cache counters at debug level.
func (g *Generator) LogStats() {
	log.Debug().
		Int("entries", g.cache.Len()).
		Uint64("hits", g.cache.Hits()).
		Uint64("misses", g.cache.Misses()).
		Msg("successor-cache-stats")
}

// plain generates successors without memoization.
type plain struct{}

func (plain) Successors(b board.Board, s board.Side) []board.Board {
	return GenerateSuccessors(b, s)
}

// Uncached is a MoveGenerator that recomputes successors on every call.
var Uncached MoveGenerator = plain{}
