// Package engine implements the draughts AI: static evaluation, minimax
// search with alpha-beta pruning, and the no-search heuristic selector.
package engine

import (
	"github.com/hailam/checkersplay/internal/board"
)

// Evaluation weights
const (
	KingWeight     = 1000
	ThreatWeight   = 100
	MobilityWeight = 10
	ManWeight      = 1
)

// SideTerms holds the raw counts the evaluation is built from, for one side.
type SideTerms struct {
	Kings    int
	Men      int
	Mobility int // Candidate moves of all movable pieces
	Threats  int // Capturing candidates among them
}

// Terms returns the evaluation counts of both sides.
func Terms(b *board.Board) (my, opp SideTerms) {
	my = sideTerms(b, board.My)
	opp = sideTerms(b, board.Opp)
	return my, opp
}

func sideTerms(b *board.Board, s board.Side) SideTerms {
	var t SideTerms
	if s == board.My {
		t.Kings = b.CountCell(board.MyKing)
		t.Men = b.CountCell(board.MyMan)
	} else {
		t.Kings = b.CountCell(board.OppKing)
		t.Men = b.CountCell(board.OppMan)
	}

	for _, sq := range b.MovablePieces(s) {
		for _, c := range b.CandidateMoves(sq) {
			t.Mobility++
			if c.IsCapture() {
				t.Threats++
			}
		}
	}
	return t
}

// Evaluate returns the static evaluation of a position.
// Positive scores favor Opp, negative scores favor My, whoever is to move.
func Evaluate(b *board.Board) int {
	my, opp := Terms(b)
	return KingWeight*(opp.Kings-my.Kings) +
		ThreatWeight*(opp.Threats-my.Threats) +
		MobilityWeight*(opp.Mobility-my.Mobility) +
		ManWeight*(opp.Men-my.Men)
}

// EvaluateWithTable is Evaluate backed by an evaluation cache.
// A nil table evaluates directly.
func EvaluateWithTable(b *board.Board, et *EvalTable) int {
	if et == nil {
		return Evaluate(b)
	}
	if score, found := et.Probe(b.Hash()); found {
		return score
	}
	score := Evaluate(b)
	et.Store(b.Hash(), score)
	return score
}

// ForSide converts an Opp-positive score to the perspective of s.
func ForSide(score int, s board.Side) int {
	if s == board.My {
		return -score
	}
	return score
}
