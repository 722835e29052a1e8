package board

import (
	"fmt"
	"strings"
)

// StartLayout is the layout string of the starting position.
const StartLayout = "1o1o1o1o/o1o1o1o1/1o1o1o1o/8/8/m1m1m1m1/1m1m1m1m/m1m1m1m1 m"

// ParseLayout parses a layout string and returns a Board with default rules.
//
// The first field lists rows 0 to 7 separated by '/', using m/M for My
// men/kings, o/O for Opp men/kings and digits for runs of empty squares.
// The optional second field is the side to move ("m" or "o", default "m").
func ParseLayout(layout string) (*Board, error) {
	parts := strings.Fields(layout)
	if len(parts) < 1 || len(parts) > 2 {
		return nil, fmt.Errorf("%w: need 1 or 2 fields, got %d", ErrInvalidLayout, len(parts))
	}

	b := NewEmpty(DefaultRules())
	if err := parseRows(b, parts[0]); err != nil {
		return nil, err
	}

	b.turn = My
	if len(parts) == 2 {
		switch parts[1] {
		case "m":
		case "o":
			b.turn = Opp
		default:
			return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidLayout, parts[1])
		}
	}

	b.hash = b.ComputeHash()
	b.RecomputePieceLists()
	return b, nil
}

func parseRows(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != Size {
		return fmt.Errorf("%w: need %d rows, got %d", ErrInvalidLayout, Size, len(rows))
	}

	for row, rowStr := range rows {
		col := 0
		for i := 0; i < len(rowStr); i++ {
			ch := rowStr[i]
			if col >= Size {
				return fmt.Errorf("%w: too many squares in row %d", ErrInvalidLayout, row)
			}

			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}

			cell, ok := CellFromChar(ch)
			if !ok {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidLayout, ch)
			}
			c := Coord{row, col}
			if !c.Dark() {
				return fmt.Errorf("%w: piece on light square %v", ErrInvalidLayout, c)
			}
			b.grid[row][col] = cell
			col++
		}

		if col != Size {
			return fmt.Errorf("%w: invalid number of squares in row %d: got %d", ErrInvalidLayout, row, col)
		}
	}

	return nil
}

// Layout returns the layout string of the board (see ParseLayout).
func (b *Board) Layout() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			cell := b.grid[row][col]
			if cell == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(cell.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(b.turn.Char())
	return sb.String()
}
