package board

// Side identifies a player. The numeric value is the sign carried by that
// side's cells.
type Side int8

const (
	Opp    Side = -1
	NoSide Side = 0
	My     Side = 1
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return -s
}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case My:
		return "My"
	case Opp:
		return "Opp"
	default:
		return "NoSide"
	}
}

// Char returns the layout character for the side to move.
func (s Side) Char() byte {
	if s == Opp {
		return 'o'
	}
	return 'm'
}

// Cell is the content of one square.
// Encoded as: sign = side, magnitude = rank (1 man, 2 king).
type Cell int8

const (
	OppKing Cell = -2
	OppMan  Cell = -1
	Empty   Cell = 0
	MyMan   Cell = 1
	MyKing  Cell = 2
)

// Side returns the owner of the cell, or NoSide if empty.
func (c Cell) Side() Side {
	switch {
	case c > 0:
		return My
	case c < 0:
		return Opp
	default:
		return NoSide
	}
}

// IsEmpty returns true if no piece occupies the cell.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// IsKing returns true for a promoted piece of either side.
func (c Cell) IsKing() bool {
	return c == MyKing || c == OppKing
}

// Promoted returns the king of the cell's side. Kings and empty cells are
// returned unchanged.
func (c Cell) Promoted() Cell {
	switch c {
	case MyMan:
		return MyKing
	case OppMan:
		return OppKing
	default:
		return c
	}
}

// Enemy returns true if other holds a piece of the opposite side.
func (c Cell) Enemy(other Cell) bool {
	return c != Empty && other != Empty && (c > 0) != (other > 0)
}

// String returns the layout character for the cell.
func (c Cell) String() string {
	return string(c.Char())
}

// Char returns the layout character: m/M for My, o/O for Opp, '.' if empty.
func (c Cell) Char() byte {
	switch c {
	case MyMan:
		return 'm'
	case MyKing:
		return 'M'
	case OppMan:
		return 'o'
	case OppKing:
		return 'O'
	default:
		return '.'
	}
}

// CellFromChar converts a layout character to a Cell.
func CellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case 'm':
		return MyMan, true
	case 'M':
		return MyKing, true
	case 'o':
		return OppMan, true
	case 'O':
		return OppKing, true
	default:
		return Empty, false
	}
}

// lastRank returns the promotion row for a side.
func lastRank(s Side) int {
	if s == My {
		return 0
	}
	return Size - 1
}

// forward returns the row delta of a man's step for a side.
func forward(s Side) int {
	if s == My {
		return -1
	}
	return 1
}
