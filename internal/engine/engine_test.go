package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hailam/checkersplay/internal/board"
)

func mustLayout(t *testing.T, layout string) *board.Board {
	t.Helper()
	b, err := board.ParseLayout(layout)
	if err != nil {
		t.Fatalf("ParseLayout(%q): %v", layout, err)
	}
	return b
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	eng, err := NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(eng.Close)
	return eng
}

func isLegal(b *board.Board, m board.Move) bool {
	for _, legal := range b.Moves(b.Turn()) {
		if legal == m {
			return true
		}
	}
	return false
}

// plainMinimax is minimax without pruning or caching.
func plainMinimax(b *board.Board, depth int, maximizing bool) int {
	if over, _ := b.GameOver(); over || depth == 0 {
		return Evaluate(b)
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	for _, m := range b.Moves(b.Turn()) {
		child := b.Clone()
		child.MakeMove(m)
		score := plainMinimax(child, depth-1, !maximizing)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

var searchLayouts = []string{
	board.StartLayout,
	"1o6/8/8/4o3/8/2o5/1m6/8 m",
	"8/8/3o1o2/8/1m1m4/8/8/8 o",
	"1O6/8/3o4/8/8/2m5/8/M1m5 m",
	"1o1o4/o1o5/5o2/4m3/1o6/m1m1m3/1m1m4/8 m",
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		layout string
		want   int
	}{
		{board.StartLayout, 0},
		{"8/8/8/8/3o4/2m5/1m6/8 m", -111},
		{"1O6/8/3o4/8/8/2m5/8/M1m5 m", -11},
	}

	for _, tc := range tests {
		t.Run(tc.layout, func(t *testing.T) {
			if got := Evaluate(mustLayout(t, tc.layout)); got != tc.want {
				t.Errorf("Evaluate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEvaluateWithTable(t *testing.T) {
	et := NewEvalTable(1)
	b := mustLayout(t, "8/8/8/8/3o4/2m5/1m6/8 m")

	if _, found := et.Probe(b.Hash()); found {
		t.Fatal("Expected cache miss on first probe")
	}
	first := EvaluateWithTable(b, et)
	if score, found := et.Probe(b.Hash()); !found || score != first {
		t.Errorf("Probe = (%d, %v), want (%d, true)", score, found, first)
	}
	if got := EvaluateWithTable(b, et); got != Evaluate(b) {
		t.Errorf("cached evaluation %d != %d", got, Evaluate(b))
	}
}

func TestMinimaxMatchesPlainMinimax(t *testing.T) {
	for _, layout := range searchLayouts {
		b := mustLayout(t, layout)
		for depth := 0; depth <= 3; depth++ {
			maximizing := b.Turn() == board.Opp
			want := plainMinimax(b, depth, maximizing)

			pruned := NewSearcher(nil, nil)
			if got := pruned.Minimax(b, depth, maximizing, -Infinity, Infinity); got != want {
				t.Errorf("%s depth %d: pruned = %d, plain = %d", layout, depth, got, want)
			}

			cached := NewSearcher(NewScoreTable(1), NewEvalTable(1))
			for run := 0; run < 2; run++ {
				if got := cached.Minimax(b, depth, maximizing, -Infinity, Infinity); got != want {
					t.Errorf("%s depth %d run %d: cached = %d, plain = %d", layout, depth, run, got, want)
				}
			}
		}
	}
}

func TestBestMoveKnownResults(t *testing.T) {
	tests := []struct {
		layout string
		depth  int
		move   string
		score  int
	}{
		{board.StartLayout, 1, "g3-h4", 0},
		{board.StartLayout, 2, "a3-b4", 9},
		{"1o6/8/8/4o3/8/2o5/1m6/8 m", 3, "b2-d4", 0},
		{"8/8/3o1o2/8/1m1m4/8/8/8 o", 2, "d6-e5", 10},
		{"1O6/8/3o4/8/8/2m5/8/M1m5 m", 3, "c3-b4", 11},
	}

	for _, tc := range tests {
		t.Run(tc.layout, func(t *testing.T) {
			s := NewSearcher(nil, nil)
			res := s.BestMove(mustLayout(t, tc.layout), tc.depth)
			if !res.Completed {
				t.Fatal("search did not complete")
			}
			if res.Move.String() != tc.move || res.Score != tc.score {
				t.Errorf("BestMove = %s (%d), want %s (%d)", res.Move, res.Score, tc.move, tc.score)
			}
		})
	}
}

func TestScoreCacheDoesNotChangeResult(t *testing.T) {
	for _, layout := range searchLayouts {
		b := mustLayout(t, layout)
		for depth := 1; depth <= 4; depth++ {
			plain := NewSearcher(nil, nil).BestMove(b, depth)

			cached := NewSearcher(NewScoreTable(1), NewEvalTable(1))
			for run := 0; run < 2; run++ {
				got := cached.BestMove(b, depth)
				if got.Move != plain.Move || got.Score != plain.Score {
					t.Errorf("%s depth %d run %d: cached %s (%d), uncached %s (%d)",
						layout, depth, run, got.Move, got.Score, plain.Move, plain.Score)
				}
			}
		}
	}
}

func TestCacheHitsCounted(t *testing.T) {
	s := NewSearcher(NewScoreTable(1), nil)
	b := board.NewGame()

	first := s.BestMove(b, 3)
	s.Reset()
	second := s.BestMove(b, 3)

	if second.CacheHits == 0 {
		t.Error("second search had no cache hits")
	}
	if second.Nodes >= first.Nodes {
		t.Errorf("second search visited %d nodes, first %d", second.Nodes, first.Nodes)
	}
	t.Logf("first: %d nodes, second: %d nodes, %d hits", first.Nodes, second.Nodes, second.CacheHits)
}

func TestChooseSearchMoveDeterministic(t *testing.T) {
	b := mustLayout(t, "1o1o4/o1o5/5o2/4m3/1o6/m1m1m3/1m1m4/8 m")
	ctx := context.Background()

	eng := newTestEngine(t, Options{TableSizeMB: 1, EvalSizeMB: 1, MoveCacheEntries: 64, Seed: 1})
	first := eng.ChooseSearchMove(ctx, b, 4)
	for i := 0; i < 3; i++ {
		if got := eng.ChooseSearchMove(ctx, b, 4); got.Move != first.Move {
			t.Fatalf("call %d = %s, want %s", i, got.Move, first.Move)
		}
	}

	fresh := newTestEngine(t, Options{Seed: 99})
	if got := fresh.ChooseSearchMove(ctx, b, 4); got.Move != first.Move || got.Score != first.Score {
		t.Errorf("cacheless engine = %s (%d), want %s (%d)", got.Move, got.Score, first.Move, first.Score)
	}
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	b := board.NewGame()
	before := b.Layout()

	eng := newTestEngine(t, Options{TableSizeMB: 1})
	eng.ChooseSearchMove(context.Background(), b, 3)

	if b.Layout() != before {
		t.Errorf("board changed to %s", b.Layout())
	}
}

func TestCancelledSearchReturnsFirstLegalMove(t *testing.T) {
	b := board.NewGame()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newTestEngine(t, Options{TableSizeMB: 1, MoveCacheEntries: 64})
	res := eng.ChooseSearchMove(ctx, b, 6)

	if res.Completed {
		t.Error("cancelled search reported completion")
	}
	if want := b.Moves(board.My)[0]; res.Move != want {
		t.Errorf("Move = %s, want first legal move %s", res.Move, want)
	}
}

func TestNodeLimit(t *testing.T) {
	b := board.NewGame()
	eng := newTestEngine(t, Options{TableSizeMB: 1})

	res := eng.SearchWithLimits(context.Background(), b, SearchLimits{Depth: 9, Nodes: 2000})
	if !isLegal(b, res.Move) {
		t.Fatalf("illegal move %s", res.Move)
	}
	if res.Depth >= 9 {
		t.Errorf("reached depth %d on a 2000 node budget", res.Depth)
	}
	t.Logf("depth %d, move %s", res.Depth, res.Move)
}

func TestMoveTimeLimit(t *testing.T) {
	b := board.NewGame()
	eng := newTestEngine(t, Options{TableSizeMB: 1})

	start := time.Now()
	res := eng.SearchWithLimits(context.Background(), b, SearchLimits{Depth: MaxDepth, MoveTime: 50 * time.Millisecond})
	elapsed := time.Since(start)

	if !isLegal(b, res.Move) {
		t.Fatalf("illegal move %s", res.Move)
	}
	if elapsed > 2*time.Second {
		t.Errorf("search took %v on a 50ms budget", elapsed)
	}
}

func TestOnInfoReportsEachDepth(t *testing.T) {
	b := board.NewGame()
	eng := newTestEngine(t, Options{TableSizeMB: 1})

	var depths []int
	eng.OnInfo = func(info SearchInfo) {
		depths = append(depths, info.Depth)
	}
	res := eng.SearchWithLimits(context.Background(), b, SearchLimits{Depth: 3})

	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Errorf("OnInfo depths = %v, want [1 2 3]", depths)
	}
	if res.Depth != 3 || !res.Completed {
		t.Errorf("result depth %d completed %v", res.Depth, res.Completed)
	}
}

func TestChooseMoveEasyUsesHeuristic(t *testing.T) {
	b := mustLayout(t, "8/8/8/8/5o2/m3m3/8/6o1 m")
	eng := newTestEngine(t, Options{Seed: 1})
	eng.SetDifficulty(Easy)

	if got := eng.ChooseMove(context.Background(), b); got.String() != "e3-g5" {
		t.Errorf("ChooseMove = %s, want e3-g5", got)
	}
}

func TestChooseMoveNoMoves(t *testing.T) {
	b := mustLayout(t, "1m6/8/8/8/8/8/8/o7 m")
	eng := newTestEngine(t, Options{TableSizeMB: 1})

	for _, d := range []Difficulty{Easy, Medium} {
		eng.SetDifficulty(d)
		if got := eng.ChooseMove(context.Background(), b); !got.IsNone() {
			t.Errorf("%v: ChooseMove = %s, want none", d, got)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDifficulty("brutal"); err == nil {
		t.Error("ParseDifficulty accepted an unknown name")
	}
}

func TestPerft(t *testing.T) {
	eng := newTestEngine(t, Options{})
	if got := eng.Perft(board.NewGame(), 3); got != 369 {
		t.Errorf("Perft(3) = %d, want 369", got)
	}
}
