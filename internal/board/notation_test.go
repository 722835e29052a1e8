package board

import (
	"errors"
	"testing"
)

func TestStartLayout(t *testing.T) {
	if got := NewGame().Layout(); got != StartLayout {
		t.Errorf("NewGame().Layout() = %q, want %q", got, StartLayout)
	}

	b := mustLayout(t, StartLayout)
	if b.Hash() != NewGame().Hash() {
		t.Error("parsed start layout hashes differently")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	layouts := []string{
		StartLayout,
		"1o6/8/8/4o3/8/2o5/1m6/8 m",
		"8/8/8/8/3M4/8/8/6O1 o",
		"1O1O1O1O/8/8/8/8/8/8/M1M1M1M1 m",
	}

	for _, l := range layouts {
		t.Run(l, func(t *testing.T) {
			b := mustLayout(t, l)
			if got := b.Layout(); got != l {
				t.Errorf("Layout() = %q", got)
			}
		})
	}
}

func TestParseLayoutDefaultsToMy(t *testing.T) {
	b := mustLayout(t, "8/8/8/8/8/2m5/8/6o1")
	if b.Turn() != My {
		t.Errorf("Turn() = %v, want My", b.Turn())
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"empty", ""},
		{"too few rows", "8/8/8 m"},
		{"light square", "o7/8/8/8/8/8/8/8 m"},
		{"bad piece", "1x6/8/8/8/8/8/8/8 m"},
		{"too many squares", "1o7/8/8/8/8/8/8/8 m"},
		{"short row", "1o/8/8/8/8/8/8/8 m"},
		{"bad side", "8/8/8/8/8/8/8/8 w"},
		{"extra field", "8/8/8/8/8/8/8/8 m 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLayout(tc.layout); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("ParseLayout(%q) error = %v, want ErrInvalidLayout", tc.layout, err)
			}
		})
	}
}
