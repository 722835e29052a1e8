package selfplay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
)

func randomPlayers(seed int64) Players {
	return Players{My: NewRandomPlayer(seed), Opp: NewRandomPlayer(seed + 1)}
}

func TestPlayGame(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rec, err := PlayGame(context.Background(), randomPlayers(seed), 300)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if rec.Plies != len(rec.Samples) {
			t.Errorf("seed %d: %d plies, %d samples", seed, rec.Plies, len(rec.Samples))
		}
		if rec.Plies > 300 {
			t.Errorf("seed %d: played %d plies past the cap", seed, rec.Plies)
		}
		if rec.Samples[0].Side != board.My || rec.Samples[0].Board != board.NewGame().Flatten() {
			t.Errorf("seed %d: first sample is not My from the start position", seed)
		}
		t.Logf("seed %d: winner %s after %d plies", seed, rec.Winner, rec.Plies)
	}
}

func TestPlayGameDeterministic(t *testing.T) {
	a, err := PlayGame(context.Background(), randomPlayers(7), 200)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PlayGame(context.Background(), randomPlayers(7), 200)
	if err != nil {
		t.Fatal(err)
	}
	if a.Winner != b.Winner || a.Plies != b.Plies {
		t.Errorf("same seed gave %s/%d and %s/%d", a.Winner, a.Plies, b.Winner, b.Plies)
	}
}

func TestPlyCapIsADraw(t *testing.T) {
	rec, err := PlayGame(context.Background(), randomPlayers(1), 4)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Winner != board.NoSide || rec.Plies != 4 {
		t.Errorf("got winner %s after %d plies, want a draw after 4", rec.Winner, rec.Plies)
	}
}

func TestPlayFinishedPosition(t *testing.T) {
	b, err := board.ParseLayout("1m6/8/8/8/8/8/8/o7 m")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := Play(context.Background(), b, randomPlayers(1), 10)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Winner != board.Opp || rec.Plies != 0 {
		t.Errorf("got winner %s after %d plies, want Opp after 0", rec.Winner, rec.Plies)
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := PlayGame(ctx, randomPlayers(1), 100); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestEnginePlayers(t *testing.T) {
	eng, err := engine.NewEngine(engine.Options{TableSizeMB: 1, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()

	players := Players{My: NewSearchPlayer(eng, 2), Opp: NewHeuristicPlayer(eng)}
	rec, err := PlayGame(context.Background(), players, 40)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Plies == 0 {
		t.Error("no plies played")
	}
	// Depth 2 from the start plays a3-b4.
	if got := rec.Samples[0].Move.String(); got != "a3-b4" {
		t.Errorf("first move = %s, want a3-b4", got)
	}
}

func TestDataPoints(t *testing.T) {
	b, err := board.ParseLayout("8/8/8/8/8/m7/8/1o6 m")
	if err != nil {
		t.Fatal(err)
	}
	myMove := board.NewMove(board.Coord{Row: 5, Col: 0}, board.Coord{Row: 4, Col: 1})
	oppMove := board.NewMove(board.Coord{Row: 7, Col: 1}, board.Coord{Row: 6, Col: 2})
	samples := []Sample{
		{Side: board.My, Board: b.Flatten(), Move: myMove},
		{Side: board.Opp, Board: b.Flatten(), Move: oppMove},
	}

	t.Run("winner only", func(t *testing.T) {
		points := DataPoints(GameRecord{Winner: board.My, Samples: samples})
		if len(points) != 1 {
			t.Fatalf("got %d points, want 1", len(points))
		}
		p := points[0]
		// (5,0) rotated is (2,7), index 23.
		if p.Board[23] != int8(board.MyMan) || p.Board[40] != 0 {
			t.Errorf("board not rotated: %v", p.Board)
		}
		if p.Move != [4]int{2, 7, 3, 6} {
			t.Errorf("Move = %v, want [2 7 3 6]", p.Move)
		}
	})

	t.Run("opp kept as is", func(t *testing.T) {
		points := DataPoints(GameRecord{Winner: board.Opp, Samples: samples})
		if len(points) != 1 || points[0].Board != b.Flatten() || points[0].Move != [4]int{7, 1, 6, 2} {
			t.Errorf("points = %+v", points)
		}
	})

	t.Run("draw keeps both", func(t *testing.T) {
		if n := len(DataPoints(GameRecord{Winner: board.NoSide, Samples: samples})); n != 2 {
			t.Errorf("got %d points, want 2", n)
		}
	})
}

func TestNormalize(t *testing.T) {
	flat := board.NewGame().Flatten()
	in := Normalize(flat)

	if len(in) != InputSize {
		t.Fatalf("len = %d, want %d", len(in), InputSize)
	}
	ones := 0
	for _, v := range in {
		ones += int(v)
	}
	if ones != 64 {
		t.Errorf("%d ones, want one per square", ones)
	}

	// My man on (5,0): plane 3, square 40, then reversed.
	if in[InputSize-1-(3*64+40)] != 1 {
		t.Error("My man at a3 not encoded")
	}
	// Empty (3,0): plane 2, square 24.
	if in[InputSize-1-(2*64+24)] != 1 {
		t.Error("empty a5 not encoded")
	}
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Games = 6
	cfg.Workers = 3
	cfg.MaxPlies = 150
	cfg.Normalize = true
	cfg.LogEvery = 0

	var out bytes.Buffer
	sum, err := Run(context.Background(), cfg, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Games != 6 || sum.MyWins+sum.OppWins+sum.Draws != 6 {
		t.Errorf("summary = %+v", sum)
	}

	lines := 0
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var p DataPoint
		if err := json.Unmarshal(scanner.Bytes(), &p); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if len(p.Input) != InputSize {
			t.Errorf("line %d: input has %d values", lines, len(p.Input))
		}
		key := string(scanner.Bytes())
		if seen[key] {
			t.Errorf("duplicate line %d", lines)
		}
		seen[key] = true
		lines++
	}
	if lines != sum.Points {
		t.Errorf("wrote %d lines, summary says %d", lines, sum.Points)
	}

	// Random games are seeded per game, so a rerun gives the same totals.
	again, err := Run(context.Background(), cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if again != sum {
		t.Errorf("rerun summary %+v, first %+v", again, sum)
	}
}

func TestParsePlayerKind(t *testing.T) {
	for _, k := range []PlayerKind{KindRandom, KindHeuristic, KindSearch} {
		got, err := ParsePlayerKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePlayerKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePlayerKind("perfect"); err == nil {
		t.Error("accepted an unknown kind")
	}
}
