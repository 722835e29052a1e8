package selfplay

import (
	"context"
	"fmt"

	"github.com/hailam/checkersplay/internal/board"
)

// Sample is one decision taken during a game.
type Sample struct {
	Side  board.Side
	Board [board.Size * board.Size]int8 // Position before the move
	Move  board.Move
}

// GameRecord is the outcome of one game.
type GameRecord struct {
	Winner  board.Side // NoSide when the ply cap was reached
	Plies   int
	Samples []Sample
}

// PlayGame plays a game from the initial position.
func PlayGame(ctx context.Context, players Players, maxPlies int) (GameRecord, error) {
	return Play(ctx, board.NewGame(), players, maxPlies)
}

// Play plays b out until the game ends or maxPlies moves were made. b is
// modified.
func Play(ctx context.Context, b *board.Board, players Players, maxPlies int) (GameRecord, error) {
	var rec GameRecord

	for {
		if over, winner := b.GameOver(); over {
			rec.Winner = winner
			return rec, nil
		}
		if rec.Plies >= maxPlies {
			rec.Winner = board.NoSide
			return rec, nil
		}
		if err := ctx.Err(); err != nil {
			return rec, err
		}

		side := b.Turn()
		m := players.For(side).Move(ctx, b)
		if m.IsNone() {
			return rec, fmt.Errorf("%s player returned no move at ply %d", side, rec.Plies)
		}

		rec.Samples = append(rec.Samples, Sample{Side: side, Board: b.Flatten(), Move: m})
		if err := b.MakeMove(m); err != nil {
			return rec, fmt.Errorf("ply %d: %w", rec.Plies, err)
		}
		rec.Plies++
	}
}
