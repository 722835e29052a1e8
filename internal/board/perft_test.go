package board

import "testing"

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	b := NewGame()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 7},
		{2, 49},
		{3, 369},
		{4, 2746},
		// Depth 5 takes longer, enable for thorough testing:
		// {5, 22314},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(b, tc.depth)
			if got != tc.expected {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftDoubleJump counts a position where the first move is a forced chain.
// Layout: 1o6/8/8/4o3/8/2o5/1m6/8 m
func TestPerftDoubleJump(t *testing.T) {
	b, err := ParseLayout("1o6/8/8/4o3/8/2o5/1m6/8 m")
	if err != nil {
		t.Fatalf("Failed to parse layout: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 2},
		{2, 6},
		{3, 12},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(b, tc.depth)
			if got != tc.expected {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestPerftLeavesBoardUntouched(t *testing.T) {
	b := NewGame()
	before := b.Layout()
	hash := b.Hash()

	Perft(b, 3)

	if b.Layout() != before || b.Hash() != hash {
		t.Errorf("Perft mutated the board: %s", b.Layout())
	}
}
