package board

import "testing"

func TestInitialPosition(t *testing.T) {
	b := NewGame()

	if b.Turn() != My {
		t.Errorf("Turn() = %v, want My", b.Turn())
	}
	if got := b.Count(My); got != 12 {
		t.Errorf("Count(My) = %d, want 12", got)
	}
	if got := b.Count(Opp); got != 12 {
		t.Errorf("Count(Opp) = %d, want 12", got)
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			c := Coord{row, col}
			cell := b.At(c)
			if cell == Empty {
				continue
			}
			if !c.Dark() {
				t.Errorf("piece %v on light square %v", cell, c)
			}
			if row == 3 || row == 4 {
				t.Errorf("piece %v on middle row %v", cell, c)
			}
			if row <= 2 && cell != OppMan {
				t.Errorf("At(%v) = %v, want OppMan", c, cell)
			}
			if row >= 5 && cell != MyMan {
				t.Errorf("At(%v) = %v, want MyMan", c, cell)
			}
		}
	}
}

func TestPieceListsFollowGrid(t *testing.T) {
	b := NewEmpty(DefaultRules())
	b.Set(Coord{0, 1}, OppKing)
	b.Set(Coord{2, 3}, OppMan)
	b.Set(Coord{5, 4}, MyMan)
	b.Set(Coord{7, 6}, MyKing)
	b.RecomputePieceLists()

	mine := b.Pieces(My)
	if len(mine) != 2 || mine[0] != (Coord{5, 4}) || mine[1] != (Coord{7, 6}) {
		t.Errorf("Pieces(My) = %v, want [e3 g1]", mine)
	}
	theirs := b.Pieces(Opp)
	if len(theirs) != 2 || theirs[0] != (Coord{0, 1}) || theirs[1] != (Coord{2, 3}) {
		t.Errorf("Pieces(Opp) = %v, want [b8 d6]", theirs)
	}

	// Lists are a cache: stale until the next rescan.
	b.Set(Coord{2, 3}, Empty)
	if len(b.Pieces(Opp)) != 2 {
		t.Errorf("Pieces(Opp) changed before rescan")
	}
	b.RecomputePieceLists()
	if len(b.Pieces(Opp)) != 1 {
		t.Errorf("Pieces(Opp) = %v after rescan, want 1 piece", b.Pieces(Opp))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewGame()
	c := b.Clone()

	if err := c.ApplyMove(Coord{5, 2}, Coord{4, 3}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	if b.Turn() != My {
		t.Errorf("original turn changed to %v", b.Turn())
	}
	if b.At(Coord{5, 2}) != MyMan || b.At(Coord{4, 3}) != Empty {
		t.Errorf("original grid changed:%v", b)
	}
	if b.Hash() == c.Hash() {
		t.Errorf("clone hash did not change after a move")
	}
}

func TestHashIncremental(t *testing.T) {
	b := NewGame()
	moves := []string{"c3-d4", "f6-e5", "d4-f6"}

	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := b.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%s): %v", s, err)
		}
		if b.Hash() != b.ComputeHash() {
			t.Fatalf("after %s: Hash() = %016x, ComputeHash() = %016x", s, b.Hash(), b.ComputeHash())
		}
	}
}

func TestHashSideToMove(t *testing.T) {
	b := NewGame()
	h := b.Hash()
	b.SetTurn(Opp)
	if b.Hash() == h {
		t.Error("hash ignores side to move")
	}
	b.SetTurn(My)
	if b.Hash() != h {
		t.Error("hash did not return after toggling back")
	}
}

func TestSetRejectsInvalidCoordinate(t *testing.T) {
	b := NewEmpty(DefaultRules())
	if err := b.Set(Coord{8, 0}, MyMan); err == nil {
		t.Error("Set accepted an off-board coordinate")
	}
	if b.At(Coord{-1, 3}) != Empty {
		t.Error("At off-board is not Empty")
	}
}

func TestCoordNotation(t *testing.T) {
	tests := []struct {
		c    Coord
		want string
	}{
		{Coord{0, 0}, "a8"},
		{Coord{7, 0}, "a1"},
		{Coord{5, 2}, "c3"},
		{Coord{7, 7}, "h1"},
		{NoCoord, "-"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.c.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
			if !tc.c.Valid() {
				return
			}
			back, err := ParseCoord(tc.want)
			if err != nil || back != tc.c {
				t.Errorf("ParseCoord(%q) = %v, %v", tc.want, back, err)
			}
		})
	}

	for _, bad := range []string{"", "i1", "a9", "a0", "abc"} {
		if _, err := ParseCoord(bad); err == nil {
			t.Errorf("ParseCoord(%q) succeeded", bad)
		}
	}
}

func TestParseMove(t *testing.T) {
	want := NewMove(Coord{5, 2}, Coord{4, 3})
	for _, s := range []string{"c3-d4", "c3d4", "c3 d4", "c3xd4"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", s, err)
			continue
		}
		if m != want {
			t.Errorf("ParseMove(%q) = %v, want %v", s, m, want)
		}
	}
	if _, err := ParseMove("c3"); err == nil {
		t.Error("ParseMove accepted a single square")
	}
	if NoMove.String() != "0000" {
		t.Errorf("NoMove.String() = %q", NoMove.String())
	}
}

func TestSquaresIsValueType(t *testing.T) {
	a := SquaresOf(Coord{1, 2})
	b := a.Add(Coord{3, 4})

	if a.Has(Coord{3, 4}) {
		t.Error("Add mutated the receiver")
	}
	if !b.Has(Coord{1, 2}) || !b.Has(Coord{3, 4}) || b.Len() != 2 {
		t.Errorf("b = %b, want two squares", b)
	}
	if a.Add(NoCoord) != a {
		t.Error("Add(NoCoord) changed the set")
	}
}

func TestHashCoversKingRule(t *testing.T) {
	b := NewGame()
	h := b.Hash()

	b.SetRules(Rules{KingsMoveBackward: true})
	if b.Hash() == h {
		t.Error("hash ignores KingsMoveBackward")
	}
	if b.Hash() != b.ComputeHash() {
		t.Error("SetRules left the hash out of sync")
	}

	b.SetRules(Rules{KingsMoveBackward: true, IllegalMoves: PassTurnOnIllegal})
	if b.Hash() != b.ComputeHash() {
		t.Error("hash out of sync after changing the illegal-move policy")
	}
}
