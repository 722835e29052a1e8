// Package render draws board diagrams as PNG images.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// pieceFiles maps cells to their asset file paths.
var pieceFiles = map[board.Cell]string{
	board.MyMan:   "assets/pieces/my_man.svg",
	board.MyKing:  "assets/pieces/my_king.svg",
	board.OppMan:  "assets/pieces/opp_man.svg",
	board.OppKing: "assets/pieces/opp_king.svg",
}

// Sprites holds one rasterized image per piece kind.
type Sprites struct {
	pieces      map[board.Cell]*image.RGBA
	size        int
	renderScale int // SVGs are rasterized at size*renderScale, then scaled down
}

// NewSprites rasterizes the piece sprites at size x size pixels.
func NewSprites(size int) (*Sprites, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sprite size must be positive, got %d", size)
	}
	s := &Sprites{
		pieces:      make(map[board.Cell]*image.RGBA, len(pieceFiles)),
		size:        size,
		renderScale: 3,
	}
	for cell, path := range pieceFiles {
		img, err := s.rasterize(path)
		if err != nil {
			return nil, err
		}
		s.pieces[cell] = img
	}
	return s, nil
}

func (s *Sprites) rasterize(path string) (*image.RGBA, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read piece asset %s: %w", path, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse SVG %s: %w", path, err)
	}

	big := s.size * s.renderScale
	icon.SetTarget(0, 0, float64(big), float64(big))

	hi := image.NewRGBA(image.Rect(0, 0, big, big))
	scanner := rasterx.NewScannerGV(big, big, hi, hi.Bounds())
	raster := rasterx.NewDasher(big, big, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Over, nil)
	return out, nil
}

// Piece returns the sprite for a cell, or nil for an empty cell.
func (s *Sprites) Piece(c board.Cell) image.Image {
	img, ok := s.pieces[c]
	if !ok {
		return nil
	}
	return img
}

// Size returns the side length of a sprite in pixels.
func (s *Sprites) Size() int {
	return s.size
}
