package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/render"
)

// Theme extends the diagram colors with the interactive highlights.
type Theme struct {
	render.Theme
	SelectedSquare color.RGBA
	MovableColor   color.RGBA
	CaptureColor   color.RGBA
	HintColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Theme:          render.DefaultTheme(),
		SelectedSquare: color.RGBA{247, 247, 105, 160},
		MovableColor:   color.RGBA{247, 247, 105, 70},
		CaptureColor:   color.RGBA{200, 70, 60, 210},
		HintColor:      color.RGBA{80, 150, 230, 200},
	}
}

// Renderer draws the board, highlights and pieces.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	squareSize int
	flipped    bool // Opp at the bottom
}

// NewRenderer creates a renderer for squares of squareSize logical pixels.
func NewRenderer(squareSize int) (*Renderer, error) {
	sprites, err := NewSpriteManager(squareSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		sprites:    sprites,
		theme:      DefaultTheme(),
		squareSize: squareSize,
	}, nil
}

// SetFlipped puts Opp's home rows at the bottom of the screen.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether the board is drawn from Opp's side.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// Theme returns the color theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// DrawBoard draws the squares and the coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			c := board.Coord{Row: row, Col: col}
			clr := r.theme.LightSquare
			if c.Dark() {
				clr = r.theme.DarkSquare
			}
			r.fillSquare(screen, c, clr)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates writes files along the bottom edge and ranks along the
// left edge, inside the squares.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	f := GetFaceWithSize(coordFontSize)
	if f == nil {
		return
	}
	bottom, left := board.Size-1, 0
	if r.flipped {
		bottom, left = 0, board.Size-1
	}
	for i := 0; i < board.Size; i++ {
		file := board.Coord{Row: bottom, Col: i}
		x, y := r.SquareToScreen(file)
		label := file.String()[:1]
		_, h := MeasureText(label, f)
		drawText(screen, label, f, float64(x+r.squareSize-10), float64(y+r.squareSize)-h/UIScale-2, r.labelColor(file))

		rank := board.Coord{Row: i, Col: left}
		x, y = r.SquareToScreen(rank)
		drawText(screen, rank.String()[1:], f, float64(x+3), float64(y+2), r.labelColor(rank))
	}
}

// labelColor contrasts with the square the label sits on.
func (r *Renderer) labelColor(c board.Coord) color.RGBA {
	if c.Dark() {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the movable pieces, the selected piece
// and its candidate landing squares.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, movable []board.Coord, selected board.Coord, cands []board.Candidate, last board.Move) {
	if !last.IsNone() {
		r.fillSquare(screen, last.From, r.theme.LastMoveColor)
		r.fillSquare(screen, last.To, r.theme.LastMoveColor)
	}
	for _, sq := range movable {
		r.fillSquare(screen, sq, r.theme.MovableColor)
	}
	if selected == board.NoCoord {
		return
	}
	r.fillSquare(screen, selected, r.theme.SelectedSquare)

	for _, c := range cands {
		cx, cy := r.center(c.To)
		if !c.IsCapture() {
			vector.DrawFilledCircle(screen, cx, cy, scaleF(r.squareSize)*0.15, r.theme.TargetColor, true)
			continue
		}
		vector.StrokeCircle(screen, cx, cy, scaleF(r.squareSize)*0.42, scaleF(4), r.theme.CaptureColor, true)
		hx, hy := r.center(c.Captured)
		vector.StrokeLine(screen, hx-scaleF(10), hy-scaleF(10), hx+scaleF(10), hy+scaleF(10), scaleF(3), r.theme.CaptureColor, true)
		vector.StrokeLine(screen, hx-scaleF(10), hy+scaleF(10), hx+scaleF(10), hy-scaleF(10), scaleF(3), r.theme.CaptureColor, true)
	}
}

// DrawHint draws an arrow for a suggested move.
func (r *Renderer) DrawHint(screen *ebiten.Image, m board.Move) {
	if m.IsNone() {
		return
	}
	x0, y0 := r.center(m.From)
	x1, y1 := r.center(m.To)
	width := scaleF(6)
	vector.StrokeLine(screen, x0, y0, x1, y1, width, r.theme.HintColor, true)

	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	head := float64(scaleF(18))
	for _, da := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := x1 + float32(head*math.Cos(angle+da))
		hy := y1 + float32(head*math.Sin(angle+da))
		vector.StrokeLine(screen, x1, y1, hx, hy, width, r.theme.HintColor, true)
	}
}

// DrawPieces draws every piece except the one being dragged.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, dragFrom board.Coord, anims *AnimationManager) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			c := board.Coord{Row: row, Col: col}
			cell := b.At(c)
			if cell.IsEmpty() || c == dragFrom {
				continue
			}
			x, y := r.SquareToScreen(c)
			fx, fy := float64(x), float64(y)
			if anims != nil {
				dx, dy := anims.ShakeOffset(c)
				fx, fy = fx+dx, fy+dy
			}
			r.sprites.DrawPieceAt(screen, cell, fx, fy, 1)
		}
	}
}

// DrawCaptured draws pieces that were just taken, fading out in place.
func (r *Renderer) DrawCaptured(screen *ebiten.Image, anims *AnimationManager) {
	for _, f := range anims.Fading() {
		x, y := r.SquareToScreen(f.sq)
		r.sprites.DrawPieceAt(screen, f.cell, float64(x), float64(y), anims.FadeAlpha(f.sq))
	}
}

// DrawDraggedPiece draws a piece centered on the logical mouse position.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, cell board.Cell, mouseX, mouseY int) {
	half := float64(r.squareSize) / 2
	r.sprites.DrawPieceAt(screen, cell, float64(mouseX)-half, float64(mouseY)-half, 1)
}

func (r *Renderer) fillSquare(screen *ebiten.Image, c board.Coord, clr color.RGBA) {
	x, y := r.SquareToScreen(c)
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(r.squareSize), scaleF(r.squareSize), clr, false)
}

// center returns the screen-space center of a square.
func (r *Renderer) center(c board.Coord) (float32, float32) {
	x, y := r.SquareToScreen(c)
	return scaleF(x) + scaleF(r.squareSize)/2, scaleF(y) + scaleF(r.squareSize)/2
}

// SquareToScreen returns the logical top-left corner of a square.
func (r *Renderer) SquareToScreen(c board.Coord) (int, int) {
	row, col := c.Row, c.Col
	if r.flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare returns the square under logical (x, y), or NoCoord.
func (r *Renderer) ScreenToSquare(x, y int) board.Coord {
	if x < 0 || y < 0 {
		return board.NoCoord
	}
	row, col := y/r.squareSize, x/r.squareSize
	if row >= board.Size || col >= board.Size {
		return board.NoCoord
	}
	if r.flipped {
		row, col = board.Size-1-row, board.Size-1-col
	}
	return board.Coord{Row: row, Col: col}
}
