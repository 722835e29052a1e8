package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/hailam/checkersplay/internal/board"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Theme defines the colors of a diagram.
type Theme struct {
	LightSquare   color.RGBA
	DarkSquare    color.RGBA
	LastMoveColor color.RGBA
	TargetColor   color.RGBA
	Background    color.RGBA
	LabelColor    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare:   color.RGBA{240, 217, 181, 255},
		DarkSquare:    color.RGBA{181, 136, 99, 255},
		LastMoveColor: color.RGBA{180, 190, 100, 110},
		TargetColor:   color.RGBA{130, 151, 105, 200},
		Background:    color.RGBA{40, 44, 52, 255},
		LabelColor:    color.RGBA{220, 220, 220, 255},
	}
}

// Highlights marks squares on a diagram.
type Highlights struct {
	LastMove board.Move    // Origin and destination are tinted
	Targets  []board.Coord // Drawn as dots, e.g. the candidates of a selected piece
}

// Diagram renders boards to images: an 8x8 grid of squareSize pixels with a
// margin holding file and rank labels.
type Diagram struct {
	sprites    *Sprites
	theme      Theme
	squareSize int
	margin     int
}

// New creates a diagram renderer with the default theme.
func New(squareSize int) (*Diagram, error) {
	sprites, err := NewSprites(squareSize)
	if err != nil {
		return nil, err
	}
	return &Diagram{
		sprites:    sprites,
		theme:      DefaultTheme(),
		squareSize: squareSize,
		margin:     20,
	}, nil
}

// SetTheme replaces the colors.
func (d *Diagram) SetTheme(t Theme) {
	d.theme = t
}

// Sprites returns the piece sprites.
func (d *Diagram) Sprites() *Sprites {
	return d.sprites
}

// ImageSize returns the width (and height) of rendered images.
func (d *Diagram) ImageSize() int {
	return 2*d.margin + board.Size*d.squareSize
}

// SquareRect returns the pixel rectangle of a square.
func (d *Diagram) SquareRect(c board.Coord) image.Rectangle {
	x := d.margin + c.Col*d.squareSize
	y := d.margin + c.Row*d.squareSize
	return image.Rect(x, y, x+d.squareSize, y+d.squareSize)
}

// Render draws b with the given highlights.
func (d *Diagram) Render(b *board.Board, hl Highlights) *image.RGBA {
	size := d.ImageSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(d.theme.Background), image.Point{}, draw.Src)

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			c := board.Coord{Row: row, Col: col}
			sq := d.theme.LightSquare
			if c.Dark() {
				sq = d.theme.DarkSquare
			}
			draw.Draw(img, d.SquareRect(c), image.NewUniform(sq), image.Point{}, draw.Src)
		}
	}

	if !hl.LastMove.IsNone() {
		tint := image.NewUniform(d.theme.LastMoveColor)
		draw.Draw(img, d.SquareRect(hl.LastMove.From), tint, image.Point{}, draw.Over)
		draw.Draw(img, d.SquareRect(hl.LastMove.To), tint, image.Point{}, draw.Over)
	}

	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			c := board.Coord{Row: row, Col: col}
			sprite := d.sprites.Piece(b.At(c))
			if sprite == nil {
				continue
			}
			r := d.SquareRect(c)
			draw.Draw(img, r, sprite, image.Point{}, draw.Over)
		}
	}

	for _, t := range hl.Targets {
		d.drawDot(img, d.SquareRect(t))
	}

	d.drawLabels(img)
	return img
}

// drawDot fills a small centered disc.
func (d *Diagram) drawDot(img *image.RGBA, r image.Rectangle) {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	radius := d.squareSize * 3 / 20
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				img.Set(cx+x, cy+y, d.theme.TargetColor)
			}
		}
	}
}

// drawLabels writes files a-h below the board and ranks 8-1 to its left.
func (d *Diagram) drawLabels(img *image.RGBA) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(d.theme.LabelColor),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	boardEnd := d.margin + board.Size*d.squareSize

	for i := 0; i < board.Size; i++ {
		file := string(rune('a' + i))
		w := drawer.MeasureString(file).Ceil()
		x := d.margin + i*d.squareSize + (d.squareSize-w)/2
		drawer.Dot = fixed.P(x, boardEnd+(d.margin+ascent)/2)
		drawer.DrawString(file)

		rank := string(rune('8' - i))
		w = drawer.MeasureString(rank).Ceil()
		y := d.margin + i*d.squareSize + (d.squareSize+ascent)/2
		drawer.Dot = fixed.P((d.margin-w)/2, y)
		drawer.DrawString(rank)
	}
}

// WritePNG renders b and encodes it as PNG to w.
func (d *Diagram) WritePNG(w io.Writer, b *board.Board, hl Highlights) error {
	return png.Encode(w, d.Render(b, hl))
}

// SaveFile renders b to a PNG file at path.
func (d *Diagram) SaveFile(path string, b *board.Board, hl Highlights) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create diagram: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := d.WritePNG(bw, b, hl); err != nil {
		f.Close()
		return fmt.Errorf("encode diagram: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
