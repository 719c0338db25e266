package cache

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/draughts/board"
)

// The cache package memoizes successor lists. Boards are plain values, so the
// list of positions reachable from a (board, side) pair lives here instead of
// on the board itself. An entry is computed at most once and is never
// invalidated; the cache grows for as long as its owner keeps it.

type LoadFunc func(b board.Board, s board.Side) []board.Board

type SuccessorCache struct {
	sync.Mutex
	objects map[board.Key][]board.Board

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewSuccessorCache() *SuccessorCache {
	return &SuccessorCache{objects: make(map[board.Key][]board.Board)}
}

// Load returns the cached successors for b with s to move, calling loadFunc
// to compute them the first time. Callers must not modify the returned
// slice.
func (c *SuccessorCache) Load(b board.Board, s board.Side, loadFunc LoadFunc) []board.Board {
	key := b.Key(s)
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		c.hits.Add(1)
		return obj
	}
	c.misses.Add(1)
	obj := loadFunc(b, s)
	c.objects[key] = obj
	return obj
}

func (c *SuccessorCache) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}

func (c *SuccessorCache) Hits() uint64 {
	return c.hits.Load()
}

func (c *SuccessorCache) Misses() uint64 {
	return c.misses.Load()
}

// Reset drops every entry.
func (c *SuccessorCache) Reset() {
	c.Lock()
	defer c.Unlock()
	log.Debug().Int("entries", len(c.objects)).Msg("resetting-successor-cache")
	c.objects = make(map[board.Key][]board.Board)
	c.hits.Store(0)
	c.misses.Store(0)
}
