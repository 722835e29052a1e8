package engine

import (
	"math/rand"
	"testing"

	"github.com/hailam/checkersplay/internal/board"
)

func TestHeuristicTiers(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		tier   func(*board.Board) (board.Move, bool)
		want   string
	}{
		{"forced capture", "8/8/8/8/5o2/m3m3/8/6o1 m", forcedCapture, "e3-g5"},
		{"forced capture takes the first piece", "8/2o5/3m4/8/3o4/2m5/8/8 m", forcedCapture, "d6-b8"},
		{"trade into contested square", "8/2o5/3m4/8/3o4/2m5/8/8 m", safetyTrade, "c3-e5"},
		{"edge move", board.StartLayout, edgeMove, "g3-h4"},
		{"edge move for opp", "1o1o1o1o/o1o1o1o1/1o1o1o1o/8/8/m1m1m1m1/1m1m1m1m/m1m1m1m1 o", edgeMove, "b6-a5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := tc.tier(mustLayout(t, tc.layout))
			if !ok {
				t.Fatal("tier found no move")
			}
			if m.String() != tc.want {
				t.Errorf("move = %s, want %s", m, tc.want)
			}
		})
	}
}

func TestHeuristicTiersFindNothing(t *testing.T) {
	b := mustLayout(t, "8/8/8/8/8/2m5/8/6o1 m")

	if m, ok := forcedCapture(b); ok {
		t.Errorf("forcedCapture = %s", m)
	}
	if m, ok := safetyTrade(b); ok {
		t.Errorf("safetyTrade = %s", m)
	}
	if m, ok := edgeMove(b); ok {
		t.Errorf("edgeMove = %s", m)
	}
}

func TestLandsSafely(t *testing.T) {
	b := mustLayout(t, "8/8/8/4o3/8/2m5/8/8 m")

	tests := []struct {
		move string
		safe bool
	}{
		{"c3-d4", false},
		{"c3-b4", true},
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			m, err := board.ParseMove(tc.move)
			if err != nil {
				t.Fatal(err)
			}
			if got := landsSafely(b, m); got != tc.safe {
				t.Errorf("landsSafely(%s) = %v, want %v", tc.move, got, tc.safe)
			}
		})
	}
}

func TestHeuristicRandomTier(t *testing.T) {
	b := mustLayout(t, "8/8/8/8/8/2m1m3/8/6o1 m")

	seen := map[board.Move]bool{}
	for seed := int64(0); seed < 50; seed++ {
		m, ok := NewHeuristic(seed).Choose(b)
		if !ok {
			t.Fatal("Choose found no move")
		}
		if !isLegal(b, m) {
			t.Fatalf("seed %d: illegal move %s", seed, m)
		}
		seen[m] = true
	}
	if len(seen) < 2 {
		t.Errorf("random tier always picked %v", seen)
	}

	// Same seed, same choice.
	a, _ := NewHeuristic(7).Choose(b)
	c, _ := NewHeuristic(7).Choose(b)
	if a != c {
		t.Errorf("seeded choices differ: %s vs %s", a, c)
	}
}

func TestHeuristicNoMovablePiece(t *testing.T) {
	b := mustLayout(t, "1m6/8/8/8/8/8/8/o7 m")
	if m, ok := NewHeuristic(1).Choose(b); ok {
		t.Errorf("Choose = %s, want none", m)
	}
}

func TestHeuristicRandomTierGivesUp(t *testing.T) {
	// Both steps of d4 can be jumped by d6, so no draw is ever safe.
	b := mustLayout(t, "8/8/3o4/8/3m4/8/8/8 m")
	movable := b.MovablePieces(board.My)

	for seed := int64(0); seed < 10; seed++ {
		h := NewHeuristic(seed)
		got, ok := h.Choose(b)
		if !ok {
			t.Fatal("Choose found no move")
		}

		// One first draw plus one retry per movable piece.
		ref := rand.New(rand.NewSource(seed))
		want := board.NoMove
		for i := 0; i <= len(movable); i++ {
			from := movable[ref.Intn(len(movable))]
			cands := b.CandidateMoves(from)
			want = board.NewMove(from, cands[ref.Intn(len(cands))].To)
		}

		if got != want {
			t.Errorf("seed %d: Choose = %s, want last draw %s", seed, got, want)
		}
		if h.rng.Int63() != ref.Int63() {
			t.Errorf("seed %d: random tier made the wrong number of draws", seed)
		}
	}
}
