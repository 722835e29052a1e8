package engine

import (
	"context"
	"sync/atomic"

	"github.com/hailam/checkersplay/internal/board"
)

// Search constants
const (
	Infinity     = 1 << 30
	DefaultDepth = 9
	MaxDepth     = 63
)

// Limits are polled once every pollInterval nodes.
const pollInterval = 1024

// Result is the outcome of a root search.
type Result struct {
	Move      board.Move
	Score     int // From the perspective of the side to move
	Depth     int
	Nodes     uint64
	CacheHits uint64
	// Completed is false when a limit stopped the search early. Move is then
	// the best fully scored root move, or the first legal move if none was.
	Completed bool
}

// Searcher performs minimax search with alpha-beta pruning.
type Searcher struct {
	table    *ScoreTable // nil disables the score cache
	evals    *EvalTable  // nil disables the evaluation cache
	tm       *TimeManager
	ctx      context.Context
	stopFlag atomic.Bool

	nodes     uint64
	cacheHits uint64
}

// NewSearcher creates a new searcher. Either table may be nil.
func NewSearcher(table *ScoreTable, evals *EvalTable) *Searcher {
	return &Searcher{
		table: table,
		evals: evals,
		tm:    NewTimeManager(),
		ctx:   context.Background(),
	}
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset resets the searcher for a new search without limits.
func (s *Searcher) Reset() {
	s.Begin(context.Background(), SearchLimits{})
}

// Begin resets the searcher for a new search bounded by ctx and limits.
// Limits.Depth is ignored here.
func (s *Searcher) Begin(ctx context.Context, limits SearchLimits) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.tm.Init(limits)
	s.stopFlag.Store(false)
	s.nodes = 0
	s.cacheHits = 0
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// CacheHits returns the number of child scores taken from the score table.
func (s *Searcher) CacheHits() uint64 {
	return s.cacheHits
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// checkLimits raises the stop flag once the context is done or a budget is spent.
func (s *Searcher) checkLimits() {
	if s.ctx.Err() != nil || s.tm.ShouldStop(s.nodes) {
		s.stopFlag.Store(true)
	}
}

// Minimax returns the minimax value of b searched to depth, with an
// Opp-positive score: Opp is the maximizing side when maximizing is true.
//
// Child scores are looked up in the score table before recursing. An entry is
// only used when its bound decides the child within the current window, so
// the value returned for an infinite window is the exact minimax value.
// When the search is stopped the return value is meaningless.
func (s *Searcher) Minimax(b *board.Board, depth int, maximizing bool, alpha, beta int) int {
	if s.nodes&(pollInterval-1) == 0 {
		s.checkLimits()
	}
	if s.stopFlag.Load() {
		return 0
	}
	s.nodes++

	if depth <= 0 {
		return EvaluateWithTable(b, s.evals)
	}
	if over, _ := b.GameOver(); over {
		return EvaluateWithTable(b, s.evals)
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}
	hash := b.Hash()

	for _, from := range b.MovablePieces(b.Turn()) {
		for _, c := range b.CandidateMoves(from) {
			m := board.NewMove(from, c.To)

			score, ok := s.probe(hash, m, depth-1, !maximizing, alpha, beta)
			if !ok {
				child := b.Clone()
				if err := child.MakeMove(m); err != nil {
					continue
				}
				score = s.Minimax(child, depth-1, !maximizing, alpha, beta)
				if s.stopFlag.Load() {
					return 0
				}
				s.store(hash, m, depth-1, !maximizing, score, alpha, beta)
			}

			if maximizing {
				if score > best {
					best = score
				}
				if best > alpha {
					alpha = best
				}
			} else {
				if score < best {
					best = score
				}
				if best < beta {
					beta = best
				}
			}
			if beta <= alpha {
				return best
			}
		}
	}

	return best
}

// BestMove scores every move of the side to move with a full-window Minimax
// of depth on the resulting position, and returns the strictly greatest. Ties
// keep the first move found.
func (s *Searcher) BestMove(b *board.Board, depth int) Result {
	if depth > MaxDepth {
		depth = MaxDepth
	}
	res := Result{Move: board.NoMove, Score: -Infinity, Depth: depth}
	root := b.Turn()
	childMax := root.Other() == board.Opp
	hash := b.Hash()
	firstLegal := board.NoMove

	for _, from := range b.MovablePieces(root) {
		for _, c := range b.CandidateMoves(from) {
			m := board.NewMove(from, c.To)
			if firstLegal.IsNone() {
				firstLegal = m
			}

			score, ok := s.probe(hash, m, depth, childMax, -Infinity, Infinity)
			if !ok {
				child := b.Clone()
				if err := child.MakeMove(m); err != nil {
					continue
				}
				score = s.Minimax(child, depth, childMax, -Infinity, Infinity)
				if s.stopFlag.Load() {
					if res.Move.IsNone() {
						res.Move = firstLegal
						res.Score = 0
					}
					res.Nodes, res.CacheHits = s.nodes, s.cacheHits
					return res
				}
				s.store(hash, m, depth, childMax, score, -Infinity, Infinity)
			}

			score = ForSide(score, root)
			if res.Move.IsNone() || score > res.Score {
				res.Move = m
				res.Score = score
			}
		}
	}

	if res.Move.IsNone() {
		res.Score = 0
	}
	res.Completed = true
	res.Nodes, res.CacheHits = s.nodes, s.cacheHits
	return res
}

func (s *Searcher) probe(hash uint64, m board.Move, depth int, maximizing bool, alpha, beta int) (int, bool) {
	if s.table == nil {
		return 0, false
	}
	entry, found := s.table.Probe(board.MoveKey(hash, m, depth, maximizing))
	if !found || !entry.Usable(alpha, beta) {
		return 0, false
	}
	s.cacheHits++
	return int(entry.Score), true
}

func (s *Searcher) store(hash uint64, m board.Move, depth int, maximizing bool, score, alpha, beta int) {
	if s.table == nil {
		return
	}
	s.table.Store(board.MoveKey(hash, m, depth, maximizing), depth, score, boundFor(score, alpha, beta))
}
