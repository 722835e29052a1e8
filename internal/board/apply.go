package board

import "fmt"

// ApplyMove plays the piece at from onto to for the side to move.
//
// A capture removes the piece jumped by the candidate's final hop, and the
// piece keeps jumping from its landing square as long as a capture is
// available. Every hop, capture or not, forfeits the first other movable piece
// of the mover that had a capture available. The side to move toggles once
// per call.
//
// Out-of-range coordinates return ErrInvalidCoordinate without touching the
// board. Any other illegal request returns ErrIllegalMove; the turn only
// passes if the rules say PassTurnOnIllegal.
func (b *Board) ApplyMove(from, to Coord) error {
	if !from.Valid() {
		return fmt.Errorf("%w: origin (%d,%d)", ErrInvalidCoordinate, from.Row, from.Col)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: destination (%d,%d)", ErrInvalidCoordinate, to.Row, to.Col)
	}

	mover := b.At(from)
	cand, ok := Candidate{}, false
	if mover != Empty && mover.Side() == b.turn {
		cand, ok = b.FindCandidate(from, to)
	}
	if !ok {
		if b.rules.IllegalMoves == PassTurnOnIllegal {
			b.toggleTurn()
			b.RecomputePieceLists()
		}
		return fmt.Errorf("%w: %v-%v", ErrIllegalMove, from, to)
	}

	b.play(from, cand)
	b.toggleTurn()
	b.RecomputePieceLists()
	return nil
}

// MakeMove applies m. See ApplyMove.
func (b *Board) MakeMove(m Move) error {
	return b.ApplyMove(m.From, m.To)
}

// play executes a validated candidate and any forced continuation.
// It never touches the side to move.
func (b *Board) play(from Coord, c Candidate) {
	mover := b.At(from)

	if c.IsCapture() {
		b.setCell(c.Captured, Empty)
	}
	b.forfeitHangingPiece(from, mover.Side())

	placed := mover
	if c.To.Row == lastRank(mover.Side()) {
		placed = mover.Promoted()
	}
	b.setCell(from, Empty)
	b.setCell(c.To, placed)

	if !c.IsCapture() {
		return
	}
	for _, next := range b.CandidateMoves(c.To) {
		if next.IsCapture() {
			b.play(c.To, next)
			return
		}
	}
}

// forfeitHangingPiece removes the first movable piece of s, other than the one
// on from, that could have captured.
func (b *Board) forfeitHangingPiece(from Coord, s Side) {
	for _, sq := range b.MovablePieces(s) {
		if sq != from && b.HasCapture(sq) {
			b.setCell(sq, Empty)
			return
		}
	}
}
