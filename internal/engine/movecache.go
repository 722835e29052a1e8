package engine

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/checkersplay/internal/board"
)

// CachedMove is a completed root search result.
type CachedMove struct {
	Move  board.Move
	Score int
}

// MoveCache remembers the best move of fully searched positions, keyed by
// layout, rule set and depth. Bounded by entry count.
type MoveCache struct {
	cache *ristretto.Cache[string, CachedMove]
}

// NewMoveCache creates a move cache holding about maxEntries results.
func NewMoveCache(maxEntries int64) (*MoveCache, error) {
	if maxEntries < 1 {
		maxEntries = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, CachedMove]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("move cache: %w", err)
	}
	return &MoveCache{cache: cache}, nil
}

func moveCacheKey(b *board.Board, depth int) string {
	key := b.Layout() + "/" + strconv.Itoa(depth)
	if b.Rules().KingsMoveBackward {
		key += "/k"
	}
	return key
}

// Get returns the cached result for b searched to depth.
func (mc *MoveCache) Get(b *board.Board, depth int) (CachedMove, bool) {
	return mc.cache.Get(moveCacheKey(b, depth))
}

// Put records a completed result. Writes are applied asynchronously.
func (mc *MoveCache) Put(b *board.Board, depth int, cm CachedMove) {
	mc.cache.Set(moveCacheKey(b, depth), cm, 1)
}

// Wait blocks until pending writes are visible to Get.
func (mc *MoveCache) Wait() {
	mc.cache.Wait()
}

// Hits returns the number of successful lookups.
func (mc *MoveCache) Hits() uint64 {
	return mc.cache.Metrics.Hits()
}

// Clear drops every cached result.
func (mc *MoveCache) Clear() {
	mc.cache.Clear()
}

// Close stops the cache's background goroutines.
func (mc *MoveCache) Close() {
	mc.cache.Close()
}
