package board

// Perft counts the leaf nodes of the move tree at the given depth.
// It follows ApplyMove exactly, so chains and forfeits are included.
func Perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := b.Moves(b.Turn())
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		child := b.Clone()
		if err := child.MakeMove(m); err != nil {
			continue
		}
		nodes += Perft(child, depth-1)
	}
	return nodes
}
