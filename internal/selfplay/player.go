// Package selfplay plays computer-vs-computer games and turns them into
// training samples.
package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
)

// Player picks moves for one side.
type Player interface {
	Name() string
	// Move returns a move for the side to move, or NoMove if it has none.
	Move(ctx context.Context, b *board.Board) board.Move
}

// RandomPlayer picks a uniformly random movable piece, then a uniformly
// random candidate of that piece.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer creates a random player.
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string { return "random" }

func (p *RandomPlayer) Move(_ context.Context, b *board.Board) board.Move {
	movable := b.MovablePieces(b.Turn())
	if len(movable) == 0 {
		return board.NoMove
	}
	from := movable[p.rng.Intn(len(movable))]
	cands := b.CandidateMoves(from)
	return board.NewMove(from, cands[p.rng.Intn(len(cands))].To)
}

// HeuristicPlayer plays the engine's no-search heuristic.
type HeuristicPlayer struct {
	eng *engine.Engine
}

// NewHeuristicPlayer creates a heuristic player over eng.
func NewHeuristicPlayer(eng *engine.Engine) *HeuristicPlayer {
	return &HeuristicPlayer{eng: eng}
}

func (p *HeuristicPlayer) Name() string { return "heuristic" }

func (p *HeuristicPlayer) Move(_ context.Context, b *board.Board) board.Move {
	return p.eng.ChooseHeuristicMove(b)
}

// SearchPlayer plays the engine's fixed-depth search.
type SearchPlayer struct {
	eng   *engine.Engine
	depth int
}

// NewSearchPlayer creates a player searching depth plies with eng.
func NewSearchPlayer(eng *engine.Engine, depth int) *SearchPlayer {
	return &SearchPlayer{eng: eng, depth: depth}
}

func (p *SearchPlayer) Name() string { return fmt.Sprintf("search-d%d", p.depth) }

func (p *SearchPlayer) Move(ctx context.Context, b *board.Board) board.Move {
	return p.eng.ChooseSearchMove(ctx, b, p.depth).Move
}

// Players assigns a player to each side.
type Players struct {
	My, Opp Player
}

// For returns the player of side s.
func (p Players) For(s board.Side) Player {
	if s == board.Opp {
		return p.Opp
	}
	return p.My
}

// PlayerKind selects the player type used by Run.
type PlayerKind int

const (
	KindRandom PlayerKind = iota
	KindHeuristic
	KindSearch
)

// String returns the kind name.
func (k PlayerKind) String() string {
	switch k {
	case KindHeuristic:
		return "heuristic"
	case KindSearch:
		return "search"
	default:
		return "random"
	}
}

// ParsePlayerKind parses "random", "heuristic" or "search".
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return KindRandom, nil
	case "heuristic", "easy":
		return KindHeuristic, nil
	case "search":
		return KindSearch, nil
	}
	return KindRandom, fmt.Errorf("unknown player kind %q", s)
}
