package engine

import (
	"math/rand"

	"github.com/hailam/checkersplay/internal/board"
)

// Heuristic picks a move without lookahead. It tries, in order: a forced
// capture, a trade into a square both sides can capture into, a move onto
// an edge column, and finally a random move that does not hang the piece.
type Heuristic struct {
	rng *rand.Rand
}

// NewHeuristic creates a selector whose random tier is seeded with seed.
func NewHeuristic(seed int64) *Heuristic {
	return &Heuristic{rng: rand.New(rand.NewSource(seed))}
}

// Choose returns a move for the side to move. It returns false only when
// that side has no movable piece.
func (h *Heuristic) Choose(b *board.Board) (board.Move, bool) {
	if m, ok := forcedCapture(b); ok {
		return m, true
	}
	if m, ok := safetyTrade(b); ok {
		return m, true
	}
	if m, ok := edgeMove(b); ok {
		return m, true
	}
	return h.safeRandom(b)
}

// forcedCapture returns the first capturing candidate of the first movable
// piece that has one.
func forcedCapture(b *board.Board) (board.Move, bool) {
	for _, from := range b.MovablePieces(b.Turn()) {
		for _, c := range b.CandidateMoves(from) {
			if c.IsCapture() {
				return board.NewMove(from, c.To), true
			}
		}
	}
	return board.NoMove, false
}

// safetyTrade returns a capture of the side to move landing on a square the
// other side could also capture into.
func safetyTrade(b *board.Board) (board.Move, bool) {
	us := b.Turn()

	var contested board.Squares
	for _, sq := range b.MovablePieces(us.Other()) {
		for _, c := range b.CandidateMoves(sq) {
			if c.IsCapture() {
				contested = contested.Add(c.To)
			}
		}
	}
	if contested == 0 {
		return board.NoMove, false
	}

	for _, from := range b.MovablePieces(us) {
		for _, c := range b.CandidateMoves(from) {
			if c.IsCapture() && contested.Has(c.To) {
				return board.NewMove(from, c.To), true
			}
		}
	}
	return board.NoMove, false
}

// edgeMove returns the first move landing on column 0 or 7.
func edgeMove(b *board.Board) (board.Move, bool) {
	for _, from := range b.MovablePieces(b.Turn()) {
		for _, c := range b.CandidateMoves(from) {
			if c.To.Col == 0 || c.To.Col == board.Size-1 {
				return board.NewMove(from, c.To), true
			}
		}
	}
	return board.NoMove, false
}

// safeRandom draws a uniformly random movable piece and candidate until the
// piece lands safely. After one retry per movable piece it keeps the last draw.
func (h *Heuristic) safeRandom(b *board.Board) (board.Move, bool) {
	movable := b.MovablePieces(b.Turn())
	if len(movable) == 0 {
		return board.NoMove, false
	}

	m := board.NoMove
	for attempt := 0; attempt <= len(movable); attempt++ {
		from := movable[h.rng.Intn(len(movable))]
		cands := b.CandidateMoves(from)
		m = board.NewMove(from, cands[h.rng.Intn(len(cands))].To)
		if landsSafely(b, m) {
			return m, true
		}
	}
	return m, true
}

// landsSafely reports whether, after m, no enemy candidate jumps the square
// the piece moved to.
func landsSafely(b *board.Board, m board.Move) bool {
	child := b.Clone()
	if err := child.MakeMove(m); err != nil {
		return false
	}

	for _, sq := range child.MovablePieces(child.Turn()) {
		for _, c := range child.CandidateMoves(sq) {
			if c.Captured == m.To {
				return false
			}
		}
	}
	return true
}
