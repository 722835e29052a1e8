package board

import (
	"fmt"
	"strings"
)

// IllegalMovePolicy decides what ApplyMove does with a move that is not legal.
type IllegalMovePolicy uint8

const (
	// RejectIllegal returns ErrIllegalMove and leaves the turn unchanged.
	RejectIllegal IllegalMovePolicy = iota
	// PassTurnOnIllegal returns ErrIllegalMove but still hands the turn over.
	PassTurnOnIllegal
)

// String returns the policy name.
func (p IllegalMovePolicy) String() string {
	if p == PassTurnOnIllegal {
		return "pass"
	}
	return "reject"
}

// Rules holds the rule switches of a game.
type Rules struct {
	// KingsMoveBackward lets kings step in all four directions.
	// Off by default: kings step like men of their side.
	KingsMoveBackward bool
	IllegalMoves      IllegalMovePolicy
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{}
}

// Board is an 8x8 draughts position.
type Board struct {
	grid  [Size][Size]Cell
	turn  Side
	rules Rules

	// Piece lists, rebuilt from grid by RecomputePieceLists. They are a cache
	// and may be stale after a capture until the next rescan.
	myPieces  []Coord
	oppPieces []Coord

	// Zobrist hash of grid and side to move, maintained incrementally
	hash uint64
}

// NewGame creates the starting position with default rules.
func NewGame() *Board {
	return NewGameWithRules(DefaultRules())
}

// NewGameWithRules creates the starting position with the given rules.
func NewGameWithRules(rules Rules) *Board {
	b := NewEmpty(rules)
	b.Initialize()
	return b
}

// NewEmpty creates an empty board with My to move.
func NewEmpty(rules Rules) *Board {
	b := &Board{turn: My, rules: rules}
	b.hash = b.ComputeHash()
	return b
}

// Initialize lays out the standard starting position on dark squares:
// Opp men on rows 0-2, My men on rows 5-7, rows 3-4 empty. My moves first.
func (b *Board) Initialize() {
	b.grid = [Size][Size]Cell{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := Coord{row, col}
			if !c.Dark() {
				continue
			}
			switch {
			case row <= 2:
				b.grid[row][col] = OppMan
			case row >= 5:
				b.grid[row][col] = MyMan
			}
		}
	}
	b.turn = My
	b.hash = b.ComputeHash()
	b.RecomputePieceLists()
}

// Clone returns an independent copy: grid, side to move, rules, hash and piece lists.
func (b *Board) Clone() *Board {
	nb := *b
	nb.myPieces = append([]Coord(nil), b.myPieces...)
	nb.oppPieces = append([]Coord(nil), b.oppPieces...)
	return &nb
}

// Rules returns the rule switches of the board.
func (b *Board) Rules() Rules {
	return b.rules
}

// SetRules replaces the rule switches.
func (b *Board) SetRules(r Rules) {
	if r.KingsMoveBackward != b.rules.KingsMoveBackward {
		b.hash ^= zobristKingsBack
	}
	b.rules = r
}

// Turn returns the side to move.
func (b *Board) Turn() Side {
	return b.turn
}

// SetTurn sets the side to move.
func (b *Board) SetTurn(s Side) {
	if s == b.turn || (s != My && s != Opp) {
		return
	}
	b.toggleTurn()
}

func (b *Board) toggleTurn() {
	b.turn = b.turn.Other()
	b.hash ^= zobristOppToMove
}

// Hash returns the Zobrist hash of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// At returns the cell at c, or Empty for an off-board coordinate.
func (b *Board) At(c Coord) Cell {
	if !c.Valid() {
		return Empty
	}
	return b.grid[c.Row][c.Col]
}

// Set places a cell on the board (for setting up positions).
func (b *Board) Set(c Coord, cell Cell) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinate, c)
	}
	b.setCell(c, cell)
	return nil
}

// setCell writes a cell and keeps the hash in sync.
func (b *Board) setCell(c Coord, cell Cell) {
	old := b.grid[c.Row][c.Col]
	if old == cell {
		return
	}
	if old != Empty {
		b.hash ^= zobristCellKey(old, c)
	}
	if cell != Empty {
		b.hash ^= zobristCellKey(cell, c)
	}
	b.grid[c.Row][c.Col] = cell
}

// RecomputePieceLists rescans the grid and rebuilds both piece lists.
// Cells >= MyMan are mine, cells <= OppMan are the opponent's.
func (b *Board) RecomputePieceLists() {
	// Fresh slices: callers may still hold the previous lists.
	b.myPieces = make([]Coord, 0, 12)
	b.oppPieces = make([]Coord, 0, 12)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			cell := b.grid[row][col]
			if cell >= MyMan {
				b.myPieces = append(b.myPieces, Coord{row, col})
			} else if cell <= OppMan {
				b.oppPieces = append(b.oppPieces, Coord{row, col})
			}
		}
	}
}

// Pieces returns the cached piece list of a side (see RecomputePieceLists).
func (b *Board) Pieces(s Side) []Coord {
	if s == My {
		return b.myPieces
	}
	return b.oppPieces
}

// Count returns the number of pieces of a side on the grid.
func (b *Board) Count(s Side) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col].Side() == s {
				n++
			}
		}
	}
	return n
}

// CountCell returns the number of squares holding exactly cell.
func (b *Board) CountCell(cell Cell) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col] == cell {
				n++
			}
		}
	}
	return n
}

// Flatten returns the cell values in row-major order.
func (b *Board) Flatten() [Size * Size]int8 {
	var flat [Size * Size]int8
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			flat[row*Size+col] = int8(b.grid[row][col])
		}
	}
	return flat
}

// String returns a visual representation of the position.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d  ", Size-row)
		for col := 0; col < Size; col++ {
			sb.WriteByte(b.grid[row][col].Char())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.turn)
	fmt.Fprintf(&sb, "Pieces: My %d, Opp %d\n", b.Count(My), b.Count(Opp))
	fmt.Fprintf(&sb, "Hash: %016x\n", b.hash)
	return sb.String()
}
