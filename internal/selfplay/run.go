package selfplay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"golang.org/x/sync/errgroup"
)

// Config configures a self-play run.
type Config struct {
	Games     int
	Workers   int
	MaxPlies  int
	Seed      int64
	Kind      PlayerKind
	Depth     int  // Search depth of KindSearch players
	Normalize bool // Also write the one-hot input of each point
	Rules     board.Rules
	LogEvery  int // Log progress every LogEvery games; 0 disables
}

// DefaultConfig returns the settings of the command-line tool.
func DefaultConfig() Config {
	return Config{
		Games:    100,
		Workers:  4,
		MaxPlies: 200,
		Seed:     1,
		Kind:     KindRandom,
		Depth:    3,
		Rules:    board.DefaultRules(),
		LogEvery: 100,
	}
}

// Summary reports what a run produced.
type Summary struct {
	Games      int
	MyWins     int
	OppWins    int
	Draws      int
	Points     int // Data points written
	Duplicates int // Data points dropped as already written
}

// Run plays cfg.Games games on cfg.Workers goroutines and writes the
// de-duplicated data points to w as JSON lines. Each worker owns its engine.
func Run(ctx context.Context, cfg Config, w io.Writer) (Summary, error) {
	if cfg.Games < 0 || cfg.MaxPlies < 0 {
		return Summary{}, errors.New("games and max plies must not be negative")
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	records := make(chan GameRecord)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	done := make(chan struct{})
	for worker := 0; worker < workers; worker++ {
		g.Go(func() error {
			eng, err := newWorkerEngine(cfg, worker)
			if err != nil {
				return err
			}
			defer eng.Close()

			for game := range jobs {
				rec, err := Play(ctx, board.NewGameWithRules(cfg.Rules), newPlayers(cfg, eng, game), cfg.MaxPlies)
				if err != nil {
					return fmt.Errorf("game %d: %w", game, err)
				}
				select {
				case records <- rec:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		g.Wait()
		close(done)
	}()

	var sum Summary
	seen := make(map[uint64]struct{})
	enc := json.NewEncoder(w)
	var writeErr error

collect:
	for {
		select {
		case rec := <-records:
			sum.Games++
			switch rec.Winner {
			case board.My:
				sum.MyWins++
			case board.Opp:
				sum.OppWins++
			default:
				sum.Draws++
			}

			for _, p := range DataPoints(rec) {
				key := p.digest()
				if _, dup := seen[key]; dup {
					sum.Duplicates++
					continue
				}
				seen[key] = struct{}{}
				if cfg.Normalize {
					p.Input = Normalize(p.Board)
				}
				if writeErr == nil {
					writeErr = enc.Encode(p)
				}
				sum.Points++
			}

			if cfg.LogEvery > 0 && sum.Games%cfg.LogEvery == 0 {
				log.Printf("[selfplay] %d/%d games, %d points", sum.Games, cfg.Games, sum.Points)
			}
		case <-done:
			break collect
		}
	}

	if err := g.Wait(); err != nil {
		return sum, err
	}
	if writeErr != nil {
		return sum, fmt.Errorf("write data points: %w", writeErr)
	}
	return sum, nil
}

// newWorkerEngine creates the engine a worker's players share.
func newWorkerEngine(cfg Config, worker int) (*engine.Engine, error) {
	opts := engine.Options{Seed: cfg.Seed + int64(worker)}
	if cfg.Kind == KindSearch {
		opts.TableSizeMB = 8
		opts.EvalSizeMB = 2
	}
	return engine.NewEngine(opts)
}

// newPlayers builds the players of one game. Random players are seeded
// from the game index so a game plays the same on any worker.
func newPlayers(cfg Config, eng *engine.Engine, game int) Players {
	switch cfg.Kind {
	case KindHeuristic:
		p := NewHeuristicPlayer(eng)
		return Players{My: p, Opp: p}
	case KindSearch:
		p := NewSearchPlayer(eng, cfg.Depth)
		return Players{My: p, Opp: p}
	default:
		seed := cfg.Seed + 2*int64(game)
		return Players{My: NewRandomPlayer(seed), Opp: NewRandomPlayer(seed + 1)}
	}
}
