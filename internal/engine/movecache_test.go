package engine

import (
	"testing"

	"github.com/hailam/checkersplay/internal/board"
)

func TestMoveCache(t *testing.T) {
	mc, err := NewMoveCache(64)
	if err != nil {
		t.Fatalf("NewMoveCache: %v", err)
	}
	defer mc.Close()

	b := board.NewGame()
	want := CachedMove{Move: board.NewMove(board.Coord{Row: 5, Col: 6}, board.Coord{Row: 4, Col: 7}), Score: 3}

	if _, ok := mc.Get(b, 4); ok {
		t.Fatal("Expected miss on empty cache")
	}

	mc.Put(b, 4, want)
	mc.Wait()

	got, ok := mc.Get(b, 4)
	if !ok || got != want {
		t.Fatalf("Get = (%+v, %v), want (%+v, true)", got, ok, want)
	}
	if _, ok := mc.Get(b, 5); ok {
		t.Error("hit for a different depth")
	}

	kings := b.Clone()
	kings.SetRules(board.Rules{KingsMoveBackward: true})
	if _, ok := mc.Get(kings, 4); ok {
		t.Error("hit for a different rule set")
	}
	if mc.Hits() == 0 {
		t.Error("Hits() = 0 after a hit")
	}

	mc.Clear()
	if _, ok := mc.Get(b, 4); ok {
		t.Error("hit after Clear")
	}
}

func TestEngineUsesMoveCache(t *testing.T) {
	eng := newTestEngine(t, Options{TableSizeMB: 1, MoveCacheEntries: 64})
	b := board.NewGame()

	first := eng.ChooseSearchMove(t.Context(), b, 3)
	eng.moves.Wait()
	second := eng.ChooseSearchMove(t.Context(), b, 3)

	if second.Move != first.Move || second.Score != first.Score {
		t.Errorf("cached %s (%d), searched %s (%d)", second.Move, second.Score, first.Move, first.Score)
	}
	if eng.Stats().MoveCacheHits == 0 {
		t.Error("move cache not consulted")
	}
}
