package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/render"
)

// spriteOversample is how much larger than a logical square the piece
// images are rasterized, so they stay sharp on HiDPI displays.
const spriteOversample = 2

// SpriteManager holds the piece images as GPU textures.
type SpriteManager struct {
	pieces map[board.Cell]*ebiten.Image
	size   int // Logical square size
	pixels int // Texture size
}

// NewSpriteManager rasterizes the piece artwork for squares of size logical pixels.
func NewSpriteManager(size int) (*SpriteManager, error) {
	src, err := render.NewSprites(size * spriteOversample)
	if err != nil {
		return nil, err
	}
	sm := &SpriteManager{
		pieces: make(map[board.Cell]*ebiten.Image),
		size:   size,
		pixels: src.Size(),
	}
	for _, cell := range []board.Cell{board.MyMan, board.MyKing, board.OppMan, board.OppKing} {
		if img := src.Piece(cell); img != nil {
			sm.pieces[cell] = ebiten.NewImageFromImage(img)
		}
	}
	return sm, nil
}

// DrawPieceAt draws a piece with its top-left corner at logical (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, cell board.Cell, x, y float64, alpha float32) {
	img, ok := sm.pieces[cell]
	if !ok {
		return
	}
	k := float64(sm.size) * UIScale / float64(sm.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(x*UIScale, y*UIScale)
	op.Filter = ebiten.FilterLinear
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	screen.DrawImage(img, op)
}
