package board

import (
	"fmt"
	"strings"
)

// Candidate is a legal destination for one piece.
// Captured is the piece removed by the final hop, or NoCoord for a plain step.
// Path lists every piece jumped from the origin to To, in order. Only Captured
// leaves the board when the candidate is played.
type Candidate struct {
	To       Coord
	Captured Coord
	Path     []Coord
}

// IsCapture returns true if the candidate jumps at least one piece.
func (c Candidate) IsCapture() bool {
	return len(c.Path) > 0
}

// String returns a short description, e.g. "e5x" for a capture.
func (c Candidate) String() string {
	if c.IsCapture() {
		return c.To.String() + "x" + c.Captured.String()
	}
	return c.To.String()
}

// Move is an (origin, destination) pair.
type Move struct {
	From, To Coord
}

// NoMove represents an absent move.
var NoMove = Move{NoCoord, NoCoord}

// NewMove creates a move.
func NewMove(from, to Coord) Move {
	return Move{From: from, To: to}
}

// IsNone returns true for NoMove.
func (m Move) IsNone() bool {
	return m == NoMove
}

// String returns "c3-d4" notation.
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	return m.From.String() + "-" + m.To.String()
}

// ParseMove parses "c3-d4", "c3d4" or "c3 d4".
func ParseMove(s string) (Move, error) {
	s = strings.NewReplacer("-", "", " ", "", "x", "").Replace(strings.TrimSpace(s))
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseCoord(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseCoord(s[2:4])
	if err != nil {
		return NoMove, err
	}
	return NewMove(from, to), nil
}
