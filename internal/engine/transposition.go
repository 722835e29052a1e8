package engine

import (
	"sync"
	"sync/atomic"
)

// Bound indicates how a stored score relates to the true minimax value.
type Bound uint8

const (
	BoundExact Bound = iota // Score is the minimax value
	BoundLower              // Failed high: value >= Score
	BoundUpper              // Failed low: value <= Score
)

// Number of shards for table locking (power of 2 for fast modulo)
const tableShardCount = 256
const tableShardMask = tableShardCount - 1

// ScoreEntry is one slot of the score table.
type ScoreEntry struct {
	Key   uint64 // Full 64-bit key for verification
	Score int32
	Depth int8 // Remaining depth plus one; zero marks an empty slot
	Bound Bound
	Age   uint8 // Generation for replacement
}

// Usable reports whether the entry can stand in for a search of the same
// child with window (alpha, beta).
func (e ScoreEntry) Usable(alpha, beta int) bool {
	switch e.Bound {
	case BoundExact:
		return true
	case BoundUpper:
		return int(e.Score) <= alpha
	case BoundLower:
		return int(e.Score) >= beta
	}
	return false
}

// boundFor classifies a score returned by a search with window (alpha, beta).
func boundFor(score, alpha, beta int) Bound {
	switch {
	case score <= alpha:
		return BoundUpper
	case score >= beta:
		return BoundLower
	default:
		return BoundExact
	}
}

// ScoreTable caches the score of playing a move in a position, searched to a
// given depth with a given maximizing flag. Keys come from board.MoveKey.
// Uses sharded locking so one table may be shared between searchers.
type ScoreTable struct {
	entries []ScoreEntry
	shards  [tableShardCount]sync.RWMutex
	size    uint64
	mask    uint64
	age     atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewScoreTable creates a score table with the given size in MB.
func NewScoreTable(sizeMB int) *ScoreTable {
	entrySize := uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries < tableShardCount {
		numEntries = tableShardCount
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &ScoreTable{
		entries: make([]ScoreEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (t *ScoreTable) shardIndex(idx uint64) int {
	return int(idx & tableShardMask)
}

// Probe looks up a key. Returns the entry and true if found.
func (t *ScoreTable) Probe(key uint64) (ScoreEntry, bool) {
	t.probes.Add(1)

	idx := key & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].RLock()
	entry := t.entries[idx]
	t.shards[shard].RUnlock()

	if entry.Key == key && entry.Depth > 0 {
		t.hits.Add(1)
		return entry, true
	}

	return ScoreEntry{}, false
}

// Store saves a score.
func (t *ScoreTable) Store(key uint64, depth int, score int, bound Bound) {
	idx := key & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].Lock()
	entry := &t.entries[idx]

	// Replace entries from an older search, or shallower ones from this search.
	currentAge := uint8(t.age.Load())
	if entry.Depth == 0 || entry.Age != currentAge || depth+1 >= int(entry.Depth) {
		entry.Key = key
		entry.Score = int32(score)
		entry.Depth = int8(depth + 1)
		entry.Bound = bound
		entry.Age = currentAge
	}
	t.shards[shard].Unlock()
}

// NewSearch increments the age counter for a new search.
func (t *ScoreTable) NewSearch() {
	t.age.Add(1)
}

// Clear empties the table and resets the statistics.
func (t *ScoreTable) Clear() {
	for i := range t.shards {
		t.shards[i].Lock()
	}
	for i := range t.entries {
		t.entries[i] = ScoreEntry{}
	}
	for i := range t.shards {
		t.shards[i].Unlock()
	}
	t.age.Store(0)
	t.hits.Store(0)
	t.probes.Store(0)
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (t *ScoreTable) HashFull() int {
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > t.size {
		sampleSize = int(t.size)
	}

	currentAge := uint8(t.age.Load())
	for i := 0; i < sampleSize; i++ {
		idx := uint64(i)
		shard := t.shardIndex(idx)
		t.shards[shard].RLock()
		e := t.entries[idx]
		t.shards[shard].RUnlock()
		if e.Depth > 0 && e.Age == currentAge {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (t *ScoreTable) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (t *ScoreTable) Size() uint64 {
	return t.size
}
