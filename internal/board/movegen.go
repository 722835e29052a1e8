package board

type direction struct {
	dr, dc int
}

// Jumps are scanned upper-left, upper-right, lower-left, lower-right.
var jumpDirections = [4]direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Steps are scanned lower-right, upper-right, upper-left, lower-left.
var stepDirections = [4]direction{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}

// GenerateMoves returns the candidate moves of the piece at origin.
//
// Jumps are looked for in all four directions. Every jump recurses from its
// landing square to find chained jumps; visited holds the origins already
// jumped from on the current branch, so a chain never lands on one of them
// again. The immediate jump and all downstream jumps are returned in one flat
// list. Plain steps are only generated for a top-level call (empty visited
// set) that found no jump at all.
func (b *Board) GenerateMoves(origin Coord, visited Squares) []Candidate {
	mover := b.At(origin)
	if mover == Empty {
		return nil
	}

	moves := b.appendJumps(nil, origin, mover, visited, 0, nil)
	if len(moves) > 0 || visited != 0 {
		return moves
	}
	return b.appendSteps(moves, origin, mover)
}

// CandidateMoves returns the legal candidates of the piece at origin, or nil
// if origin is off-board or empty.
func (b *Board) CandidateMoves(origin Coord) []Candidate {
	if !origin.Valid() {
		return nil
	}
	return b.GenerateMoves(origin, 0)
}

// appendJumps appends the jumps of mover from sq and recurses into chains.
// visited and jumped are per-branch values; siblings never see each other's.
func (b *Board) appendJumps(moves []Candidate, sq Coord, mover Cell, visited, jumped Squares, path []Coord) []Candidate {
	branchVisited := visited.Add(sq)

	for _, d := range jumpDirections {
		over := sq.Add(d.dr, d.dc)
		land := sq.Add(2*d.dr, 2*d.dc)
		if !land.Valid() {
			continue
		}
		if branchVisited.Has(land) || jumped.Has(over) {
			continue
		}
		if !mover.Enemy(b.At(over)) || b.At(land) != Empty {
			continue
		}

		hops := make([]Coord, len(path)+1)
		copy(hops, path)
		hops[len(path)] = over

		moves = append(moves, Candidate{To: land, Captured: over, Path: hops})
		moves = b.appendJumps(moves, land, mover, branchVisited, jumped.Add(over), hops)
	}

	return moves
}

// appendSteps appends the single diagonal steps of mover from sq.
func (b *Board) appendSteps(moves []Candidate, sq Coord, mover Cell) []Candidate {
	fwd := forward(mover.Side())
	anyDir := mover.IsKing() && b.rules.KingsMoveBackward

	for _, d := range stepDirections {
		if d.dr != fwd && !anyDir {
			continue
		}
		to := sq.Add(d.dr, d.dc)
		if !to.Valid() || b.At(to) != Empty {
			continue
		}
		moves = append(moves, Candidate{To: to, Captured: NoCoord})
	}

	return moves
}

// HasCapture returns true if the piece at sq can jump right now.
func (b *Board) HasCapture(sq Coord) bool {
	mover := b.At(sq)
	if mover == Empty {
		return false
	}
	for _, d := range jumpDirections {
		land := sq.Add(2*d.dr, 2*d.dc)
		if land.Valid() && b.At(land) == Empty && mover.Enemy(b.At(sq.Add(d.dr, d.dc))) {
			return true
		}
	}
	return false
}

// hasMoves returns true if the piece at sq has at least one candidate.
// Equivalent to len(CandidateMoves(sq)) > 0 without building the list.
func (b *Board) hasMoves(sq Coord) bool {
	if b.HasCapture(sq) {
		return true
	}
	mover := b.At(sq)
	if mover == Empty {
		return false
	}
	fwd := forward(mover.Side())
	anyDir := mover.IsKing() && b.rules.KingsMoveBackward
	for _, d := range stepDirections {
		if d.dr != fwd && !anyDir {
			continue
		}
		to := sq.Add(d.dr, d.dc)
		if to.Valid() && b.At(to) == Empty {
			return true
		}
	}
	return false
}

// MovablePieces returns every piece of s with at least one candidate move,
// in row-major order. The piece lists are rebuilt first.
func (b *Board) MovablePieces(s Side) []Coord {
	b.RecomputePieceLists()

	var movable []Coord
	for _, sq := range b.Pieces(s) {
		if b.hasMoves(sq) {
			movable = append(movable, sq)
		}
	}
	return movable
}

// Moves returns every (origin, destination) pair available to s, in the order
// MovablePieces and CandidateMoves produce them. Chained destinations appear
// alongside their intermediate hops.
func (b *Board) Moves(s Side) []Move {
	var moves []Move
	for _, from := range b.MovablePieces(s) {
		for _, c := range b.CandidateMoves(from) {
			moves = append(moves, NewMove(from, c.To))
		}
	}
	return moves
}

// FindCandidate returns the first candidate of from that lands on to.
func (b *Board) FindCandidate(from, to Coord) (Candidate, bool) {
	for _, c := range b.CandidateMoves(from) {
		if c.To == to {
			return c, true
		}
	}
	return Candidate{}, false
}

// hasMovable returns true if s has at least one piece with a candidate move.
func (b *Board) hasMovable(s Side) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := Coord{row, col}
			if b.grid[row][col].Side() == s && b.hasMoves(sq) {
				return true
			}
		}
	}
	return false
}

// GameOver reports whether the game has finished and who won.
// A side without pieces loses; otherwise a side without a movable piece
// loses. When both sides are stuck, Opp is the winner.
func (b *Board) GameOver() (bool, Side) {
	myCount, oppCount := b.Count(My), b.Count(Opp)
	switch {
	case myCount == 0 && oppCount > 0:
		return true, Opp
	case oppCount == 0 && myCount > 0:
		return true, My
	}

	switch {
	case !b.hasMovable(My):
		return true, Opp
	case !b.hasMovable(Opp):
		return true, My
	}
	return false, NoSide
}
