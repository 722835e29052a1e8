package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hailam/checkersplay/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth     int
	Score     int
	Nodes     uint64
	CacheHits uint64
	Time      time.Duration
	Move      board.Move
	HashFull  int // Permille of score table used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = DefaultDepth)
	Nodes    uint64        // Maximum nodes (0 = no limit)
	MoveTime time.Duration // Time for this move (0 = no limit)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // Heuristic selector, no search
	Medium                   // Depth 5
	Hard                     // Depth 9
)

// DifficultySettings maps difficulty to search limits. Easy does not search.
var DifficultySettings = map[Difficulty]SearchLimits{
	Medium: {Depth: 5, MoveTime: 2 * time.Second},
	Hard:   {Depth: DefaultDepth, MoveTime: 5 * time.Second},
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses "easy", "medium" or "hard" (any case).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Options configures a new Engine.
type Options struct {
	TableSizeMB      int   // Score table size; 0 disables the score table
	EvalSizeMB       int   // Evaluation cache size; 0 disables it
	MoveCacheEntries int64 // Move cache capacity; 0 disables it
	Seed             int64 // Seed of the heuristic's random tier
}

// DefaultOptions returns the options used by the front ends.
func DefaultOptions() Options {
	return Options{
		TableSizeMB:      16,
		EvalSizeMB:       4,
		MoveCacheEntries: 4096,
		Seed:             time.Now().UnixNano(),
	}
}

// Stats summarizes the engine's cache usage.
type Stats struct {
	Nodes         uint64  // Nodes of the last search
	CacheHits     uint64  // Score table hits of the last search
	TableHitRate  float64 // Percentage over the engine's lifetime
	HashFull      int
	MoveCacheHits uint64
}

// Engine is the draughts AI engine. It is not safe for concurrent searches.
type Engine struct {
	searcher   *Searcher
	table      *ScoreTable
	evals      *EvalTable
	moves      *MoveCache
	heuristic  *Heuristic
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new engine.
func NewEngine(opts Options) (*Engine, error) {
	e := &Engine{
		heuristic:  NewHeuristic(opts.Seed),
		difficulty: Medium,
	}
	if opts.TableSizeMB > 0 {
		e.table = NewScoreTable(opts.TableSizeMB)
	}
	if opts.EvalSizeMB > 0 {
		e.evals = NewEvalTable(opts.EvalSizeMB)
	}
	if opts.MoveCacheEntries > 0 {
		mc, err := NewMoveCache(opts.MoveCacheEntries)
		if err != nil {
			return nil, err
		}
		e.moves = mc
	}
	e.searcher = NewSearcher(e.table, e.evals)
	return e, nil
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// ChooseMove picks a move for the side to move at the current difficulty.
// It returns NoMove when that side cannot move.
func (e *Engine) ChooseMove(ctx context.Context, b *board.Board) board.Move {
	if e.difficulty == Easy {
		return e.ChooseHeuristicMove(b)
	}
	return e.SearchWithLimits(ctx, b, DifficultySettings[e.difficulty]).Move
}

// ChooseHeuristicMove picks a move with the no-search heuristic.
func (e *Engine) ChooseHeuristicMove(b *board.Board) board.Move {
	m, ok := e.heuristic.Choose(b)
	if !ok {
		return board.NoMove
	}
	return m
}

// ChooseSearchMove searches b to exactly depth. Only ctx bounds it.
func (e *Engine) ChooseSearchMove(ctx context.Context, b *board.Board, depth int) Result {
	return e.search(ctx, b, depth, SearchLimits{})
}

// SearchWithLimits searches with iterative deepening up to limits.Depth and
// returns the deepest completed iteration. If not even depth 1 completes,
// the partial result of depth 1 is returned.
func (e *Engine) SearchWithLimits(ctx context.Context, b *board.Board, limits SearchLimits) Result {
	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	startTime := time.Now()
	budget := NewTimeManager()
	budget.Init(limits)

	var best Result
	var used uint64
	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && !budget.CanStartIteration() {
			break
		}

		// Each iteration gets what is left of the budgets.
		iterLimits := limits
		if limits.MoveTime > 0 {
			iterLimits.MoveTime = limits.MoveTime - time.Since(startTime)
			if iterLimits.MoveTime <= 0 {
				break
			}
		}
		if limits.Nodes > 0 {
			if used >= limits.Nodes {
				break
			}
			iterLimits.Nodes = limits.Nodes - used
		}

		res := e.search(ctx, b, depth, iterLimits)
		used += res.Nodes
		if !res.Completed {
			if depth == 1 {
				best = res
			}
			break
		}
		best = res

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:     depth,
				Score:     res.Score,
				Nodes:     res.Nodes,
				CacheHits: res.CacheHits,
				Time:      time.Since(startTime),
				Move:      res.Move,
				HashFull:  e.hashFull(),
			})
		}

		// Nothing to search: no moves, or a single forced one.
		if res.Move.IsNone() || len(b.Moves(b.Turn())) == 1 {
			break
		}
	}

	return best
}

// search runs one root search, going through the move cache.
func (e *Engine) search(ctx context.Context, b *board.Board, depth int, limits SearchLimits) Result {
	if e.moves != nil {
		if cm, ok := e.moves.Get(b, depth); ok {
			return Result{Move: cm.Move, Score: cm.Score, Depth: depth, Completed: true}
		}
	}

	if e.table != nil {
		e.table.NewSearch()
	}
	e.searcher.Begin(ctx, limits)
	res := e.searcher.BestMove(b, depth)

	if res.Completed && e.moves != nil {
		e.moves.Put(b, depth, CachedMove{Move: res.Move, Score: res.Score})
	}
	return res
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear clears every cache.
func (e *Engine) Clear() {
	if e.table != nil {
		e.table.Clear()
	}
	if e.evals != nil {
		e.evals.Clear()
	}
	if e.moves != nil {
		e.moves.Clear()
	}
}

// Close releases the move cache.
func (e *Engine) Close() {
	if e.moves != nil {
		e.moves.Close()
	}
}

// Stats returns cache statistics.
func (e *Engine) Stats() Stats {
	st := Stats{
		Nodes:     e.searcher.Nodes(),
		CacheHits: e.searcher.CacheHits(),
		HashFull:  e.hashFull(),
	}
	if e.table != nil {
		st.TableHitRate = e.table.HitRate()
	}
	if e.moves != nil {
		st.MoveCacheHits = e.moves.Hits()
	}
	return st
}

func (e *Engine) hashFull() int {
	if e.table == nil {
		return 0
	}
	return e.table.HashFull()
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(b *board.Board, depth int) int64 {
	return board.Perft(b, depth)
}

// Evaluate returns the static evaluation of a position, Opp-positive.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b)
}
