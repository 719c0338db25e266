package negamax

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/draughts/board"
	"github.com/domino14/draughts/zobrist"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// DefaultShardsPowerOf2 gives 64 shards.
const DefaultShardsPowerOf2 = 6

type TableEntry struct {
	score   int
	depth   int
	flag    uint8
	hasBest bool
	best    board.Board
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

func (t TableEntry) move() (board.Board, bool) {
	return t.best, t.hasBest
}

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

type shard struct {
	TableLock
	entries map[board.Key]TableEntry
}

// TranspositionTable maps a position and side to move to the best result
// found for it so far. Entries are overwritten, never evicted; the table
// grows until it is Reset. The key does not include the search depth.
//
// The table is split into shards picked by zobrist hash so that, in
// multi-threaded mode, writers to different shards do not contend. Within a
// shard, positions are compared by their packed form, so hash collisions
// cannot alias two positions.
type TranspositionTable struct {
	shards    []shard
	shardMask uint64
	created   atomic.Uint64
	lookups   atomic.Uint64
	hits      atomic.Uint64

	zobrist *zobrist.Zobrist
}

// NewTranspositionTable creates a table with 2^shardsPowerOf2 shards, in
// single-threaded mode.
func NewTranspositionTable(shardsPowerOf2 int) *TranspositionTable {
	if shardsPowerOf2 < 0 {
		shardsPowerOf2 = 0
	}
	n := 1 << shardsPowerOf2
	t := &TranspositionTable{
		shards:    make([]shard, n),
		shardMask: uint64(n - 1),
		zobrist:   &zobrist.Zobrist{},
	}
	t.zobrist.Initialize()
	for i := range t.shards {
		t.shards[i].entries = make(map[board.Key]TableEntry)
	}
	t.SetSingleThreadedMode()
	log.Debug().Int("shards", n).
		Uint64("total-system-memory-bytes", memory.TotalMemory()).
		Msg("transposition-table-created")
	return t
}

func (t *TranspositionTable) SetSingleThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = &FakeLock{}
	}
}

// SetMultiThreadedMode guards every shard with its own lock. It must be
// called before the table is shared between goroutines.
func (t *TranspositionTable) SetMultiThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = new(sync.RWMutex)
	}
}

func (t *TranspositionTable) shardFor(b *board.Board, s board.Side) *shard {
	return &t.shards[t.zobrist.Hash(b, s)&t.shardMask]
}

func (t *TranspositionTable) lookup(b *board.Board, s board.Side) TableEntry {
	sh := t.shardFor(b, s)
	key := b.Key(s)
	t.lookups.Add(1)
	sh.RLock()
	defer sh.RUnlock()
	entry, ok := sh.entries[key]
	if !ok {
		return TableEntry{}
	}
	t.hits.Add(1)
	return entry
}

func (t *TranspositionTable) store(b *board.Board, s board.Side, tentry TableEntry) {
	sh := t.shardFor(b, s)
	key := b.Key(s)
	sh.Lock()
	defer sh.Unlock()
	// just overwrite whatever is there.
	sh.entries[key] = tentry
	t.created.Add(1)
}

// Reset drops every entry and zeroes the counters.
func (t *TranspositionTable) Reset() {
	n := 0
	for i := range t.shards {
		sh := &t.shards[i]
		sh.Lock()
		n += len(sh.entries)
		sh.entries = make(map[board.Key]TableEntry)
		sh.Unlock()
	}
	log.Debug().Int("dropped-entries", n).Msg("transposition-table-reset")
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}

// Len is the number of positions stored.
func (t *TranspositionTable) Len() int {
	n := 0
	for i := range t.shards {
		sh := &t.shards[i]
		sh.RLock()
		n += len(sh.entries)
		sh.RUnlock()
	}
	return n
}

func (t *TranspositionTable) Created() uint64 { return t.created.Load() }
func (t *TranspositionTable) Lookups() uint64 { return t.lookups.Load() }
func (t *TranspositionTable) Hits() uint64    { return t.hits.Load() }
