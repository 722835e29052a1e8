// Package board implements the draughts position model, move generation and
// turn execution.
package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// Size is the number of rows and columns.
const Size = 8

var (
	// ErrInvalidCoordinate is returned for a row or column outside [0,7].
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrIllegalMove is returned when the destination is not a candidate of the origin.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidLayout is returned by ParseLayout for malformed input.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Coord is a (row, column) pair. Row 0 is the Opp back rank, row 7 the My back rank.
type Coord struct {
	Row, Col int
}

// NoCoord represents an absent coordinate.
var NoCoord = Coord{-1, -1}

// NewCoord creates a coordinate, rejecting values outside the board.
func NewCoord(row, col int) (Coord, error) {
	c := Coord{row, col}
	if !c.Valid() {
		return NoCoord, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, row, col)
	}
	return c, nil
}

// Valid returns true if the coordinate is on the board.
func (c Coord) Valid() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// Dark returns true for playable squares, where row and column parity differ.
func (c Coord) Dark() bool {
	return (c.Row+c.Col)%2 == 1
}

// Index returns the row-major index (0-63).
func (c Coord) Index() int {
	return c.Row*Size + c.Col
}

// CoordFromIndex is the inverse of Index.
func CoordFromIndex(i int) Coord {
	return Coord{i / Size, i % Size}
}

// Add returns the coordinate offset by (dr, dc). The result may be off-board.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{c.Row + dr, c.Col + dc}
}

// Mirror returns the coordinate rotated by 180 degrees.
func (c Coord) Mirror() Coord {
	return Coord{Size - 1 - c.Row, Size - 1 - c.Col}
}

// String returns algebraic notation: file a-h for columns 0-7, rank 8-1 for rows 0-7.
func (c Coord) String() string {
	if !c.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+c.Col, '8'-c.Row)
}

// ParseCoord parses algebraic notation (e.g., "c3").
func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return NoCoord, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	col := int(s[0]) - 'a'
	row := '8' - int(s[1])
	return NewCoord(row, col)
}

// Squares is a set of board coordinates. It is a value type: copying a set
// gives an independent set.
type Squares uint64

// Add returns the set with c included.
func (s Squares) Add(c Coord) Squares {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c.Index())
}

// Has returns true if c is in the set.
func (s Squares) Has(c Coord) bool {
	return c.Valid() && s&(1<<uint(c.Index())) != 0
}

// Len returns the number of coordinates in the set.
func (s Squares) Len() int {
	return bits.OnesCount64(uint64(s))
}

// SquaresOf builds a set from coordinates.
func SquaresOf(cs ...Coord) Squares {
	var s Squares
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}
