package selfplay

import (
	"github.com/cespare/xxhash/v2"
	"github.com/hailam/checkersplay/internal/board"
)

// planes are the cell values encoded by Normalize, in plane order.
var planes = [...]int8{-2, -1, 0, 1, 2}

// InputSize is the length of a normalized board.
const InputSize = len(planes) * board.Size * board.Size

// DataPoint is a training sample seen from Opp's side of the board.
type DataPoint struct {
	Board [board.Size * board.Size]int8 `json:"board"`
	Move  [4]int                        `json:"move"` // from row, from col, to row, to col
	Input []uint8                       `json:"input,omitempty"`
}

// DataPoints keeps the samples of the winner, or of both sides after a
// draw. My samples are rotated by 180 degrees so every point is seen from
// the same side.
func DataPoints(rec GameRecord) []DataPoint {
	var points []DataPoint
	for _, s := range rec.Samples {
		if rec.Winner != board.NoSide && s.Side != rec.Winner {
			continue
		}

		p := DataPoint{Board: s.Board}
		from, to := s.Move.From, s.Move.To
		if s.Side == board.My {
			for i := range s.Board {
				p.Board[i] = s.Board[len(s.Board)-1-i]
			}
			from, to = from.Mirror(), to.Mirror()
		}
		p.Move = [4]int{from.Row, from.Col, to.Row, to.Col}
		points = append(points, p)
	}
	return points
}

// Normalize one-hot encodes a flattened board: one 64-square plane per cell
// value from -2 to 2, concatenated, then reversed.
func Normalize(flat [board.Size * board.Size]int8) []uint8 {
	out := make([]uint8, 0, InputSize)
	for _, v := range planes {
		for _, cell := range flat {
			if cell == v {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// digest identifies a data point for de-duplication.
func (p DataPoint) digest() uint64 {
	var buf [board.Size*board.Size + 4]byte
	for i, v := range p.Board {
		buf[i] = byte(v)
	}
	for i, v := range p.Move {
		buf[board.Size*board.Size+i] = byte(v)
	}
	return xxhash.Sum64(buf[:])
}
