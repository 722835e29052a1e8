package render

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/hailam/checkersplay/internal/board"
)

func newTestDiagram(t *testing.T) *Diagram {
	t.Helper()
	d, err := New(40)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func cornerOf(d *Diagram, row, col int) image.Point {
	return d.SquareRect(board.Coord{Row: row, Col: col}).Min
}

func centerOf(d *Diagram, row, col int) image.Point {
	r := d.SquareRect(board.Coord{Row: row, Col: col})
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestSprites(t *testing.T) {
	s, err := NewSprites(32)
	if err != nil {
		t.Fatalf("NewSprites: %v", err)
	}

	for _, c := range []board.Cell{board.MyMan, board.MyKing, board.OppMan, board.OppKing} {
		img := s.Piece(c)
		if img == nil {
			t.Fatalf("no sprite for %v", c)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("%v sprite is %v, want 32x32", c, b)
		}
		// The disc covers the center, the corners stay transparent.
		if _, _, _, a := img.At(16, 16).RGBA(); a == 0 {
			t.Errorf("%v sprite is transparent at its center", c)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Errorf("%v sprite is opaque at its corner", c)
		}
	}

	if s.Piece(board.Empty) != nil {
		t.Error("empty cell has a sprite")
	}
	if _, err := NewSprites(0); err == nil {
		t.Error("NewSprites(0) succeeded")
	}
}

func TestRenderStartPosition(t *testing.T) {
	d := newTestDiagram(t)
	theme := DefaultTheme()
	img := d.Render(board.NewGame(), Highlights{})

	if got, want := img.Bounds().Dx(), d.ImageSize(); got != want {
		t.Fatalf("width = %d, want %d", got, want)
	}

	tests := []struct {
		name string
		at   image.Point
		want bool // true: pixel must equal the square color
	}{
		{"empty dark square", centerOf(d, 3, 0), true},
		{"light square", centerOf(d, 0, 0), true},
		{"opp man", centerOf(d, 0, 1), false},
		{"my man", centerOf(d, 7, 0), false},
		{"corner under a piece", cornerOf(d, 0, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := (tc.at.Y - d.margin) / d.squareSize
			col := (tc.at.X - d.margin) / d.squareSize
			sq := theme.LightSquare
			if (board.Coord{Row: row, Col: col}).Dark() {
				sq = theme.DarkSquare
			}
			if got := img.RGBAAt(tc.at.X, tc.at.Y) == sq; got != tc.want {
				t.Errorf("pixel %v = %v, square color %v", tc.at, img.RGBAAt(tc.at.X, tc.at.Y), sq)
			}
		})
	}
}

func TestRenderHighlights(t *testing.T) {
	d := newTestDiagram(t)
	theme := DefaultTheme()
	b := board.NewGame()

	from := board.Coord{Row: 5, Col: 2}
	to := board.Coord{Row: 4, Col: 3}
	var targets []board.Coord
	for _, c := range b.CandidateMoves(from) {
		targets = append(targets, c.To)
	}

	img := d.Render(b, Highlights{LastMove: board.NewMove(from, to), Targets: targets})

	p := cornerOf(d, 4, 3)
	if img.RGBAAt(p.X, p.Y) == theme.DarkSquare {
		t.Error("last move destination is not tinted")
	}
	for _, c := range targets {
		p := centerOf(d, c.Row, c.Col)
		if got := img.RGBAAt(p.X, p.Y); got != theme.TargetColor {
			t.Errorf("target %s center = %v, want %v", c, got, theme.TargetColor)
		}
	}
}

func TestWritePNG(t *testing.T) {
	d := newTestDiagram(t)

	var buf bytes.Buffer
	if err := d.WritePNG(&buf, board.NewGame(), Highlights{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != d.ImageSize() {
		t.Errorf("decoded width %d, want %d", img.Bounds().Dx(), d.ImageSize())
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := d.SaveFile(path, board.NewGame(), Highlights{}); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
}
