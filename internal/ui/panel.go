package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/storage"
)

// Panel dimensions
const (
	PanelPadding    = 20
	ButtonHeight    = 38
	TabHeight       = 32
	SectionLabelH   = 20
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	moveRowH        = 22
	statusBarH      = 92
)

var (
	statusThinking = color.RGBA{100, 180, 255, 255}
	statusGameOver = color.RGBA{255, 200, 80, 255}
	moveRowAlt     = color.RGBA{44, 48, 54, 255}
)

// Panel is the side panel: actions, mode and difficulty, move list, status.
type Panel struct {
	game      *Game
	collapsed bool

	collapseBtn *Button
	buttons     []*Button
	modeTabs    *ButtonGroup
	diffTabs    *ButtonGroup

	movesTop   int
	scrollY    int
	maxScrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.layout()
	return p
}

// layout positions every control for the current collapsed state.
func (p *Panel) layout() {
	tabY := (ScreenHeight - CollapseButtonH) / 2
	collapseX := BoardSize
	if p.collapsed {
		collapseX = BoardSize + 2
	}
	p.collapseBtn = NewButton(collapseX, tabY, CollapseButtonW, CollapseButtonH, "", p.toggleCollapse)

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding + 8

	newGame := NewButton(x, y, w, ButtonHeight, "New Game", p.game.NewGameAction)
	newGame.Primary = true
	y += ButtonHeight + 8
	half := (w - 8) / 2
	p.buttons = []*Button{
		newGame,
		NewButton(x, y, half, ButtonHeight-6, "Settings", p.game.ShowSettings),
		NewButton(x+half+8, y, w-half-8, ButtonHeight-6, "Save Diagram", p.game.SaveDiagram),
	}
	y += ButtonHeight - 6 + 20

	p.modeTabs = NewButtonGroup(x, y+SectionLabelH, []string{"vs Human", "vs Computer"}, int(p.game.Mode()), w/2, TabHeight)
	y += SectionLabelH + TabHeight + 16
	p.diffTabs = NewButtonGroup(x, y+SectionLabelH, []string{"Easy", "Medium", "Hard"}, int(p.game.Difficulty()), w/3, TabHeight-2)
	y += SectionLabelH + TabHeight + 16

	p.movesTop = y + SectionLabelH
}

// HandleInput processes panel input and reports whether it was consumed.
func (p *Panel) HandleInput(input *InputHandler) bool {
	if p.collapseBtn.Update(input) {
		return true
	}
	if p.collapsed {
		return false
	}

	mx, my := input.MousePosition()
	if dy := input.WheelY(); dy != 0 && mx >= BoardSize && my >= p.movesTop && my < ScreenHeight-statusBarH {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(dy*30)))
	}

	for _, b := range p.buttons {
		if b.Update(input) {
			return true
		}
	}

	p.modeTabs.Selected = int(p.game.Mode())
	if p.modeTabs.Update(input) {
		p.game.SetMode(storage.GameMode(p.modeTabs.Selected))
		return true
	}
	p.diffTabs.Selected = int(p.game.Difficulty())
	if p.diffTabs.Update(input) {
		p.game.SetDifficulty(storage.Difficulty(p.diffTabs.Selected))
		return true
	}
	return mx >= BoardSize && input.IsLeftJustPressed()
}

// AnyButtonHovered reports whether the cursor is over a control.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.Hovered() {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, b := range p.buttons {
		if b.Hovered() {
			return true
		}
	}
	return p.modeTabs.Hovered() || p.diffTabs.Hovered()
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.collapsed {
		fillRect(screen, rect{BoardSize, 0, CollapsedWidth, ScreenHeight}, panelBg)
		p.drawCollapseButton(screen)
		return
	}

	fillRect(screen, rect{BoardSize, 0, PanelWidth, ScreenHeight}, panelBg)
	for _, b := range p.buttons {
		b.Draw(screen)
	}

	x := BoardSize + PanelPadding
	drawSectionHeader(screen, "MODE", x, p.modeTabs.Y-SectionLabelH+2)
	p.modeTabs.Draw(screen)
	label := "DIFFICULTY"
	if p.game.Mode() == storage.ModeHumanVsHuman {
		label = "DIFFICULTY (hints)"
	}
	drawSectionHeader(screen, label, x, p.diffTabs.Y-SectionLabelH+2)
	p.diffTabs.Draw(screen)

	drawSectionHeader(screen, "MOVES", x, p.movesTop-SectionLabelH+2)
	p.drawMoveHistory(screen)
	p.drawStatusBar(screen)
	p.drawCollapseButton(screen)
}

// drawCollapseButton draws the edge tab with a chevron.
func (p *Panel) drawCollapseButton(screen *ebiten.Image) {
	b := p.collapseBtn
	c := buttonBg
	if b.Hovered() {
		c = buttonHoverBg
	}
	fillRect(screen, b.rect, c)

	cx, cy := scaleF(b.X+b.W/2), scaleF(b.Y+b.H/2)
	d := scaleF(4)
	if p.collapsed {
		d = -d
	}
	w := float32(2 * UIScale)
	vector.StrokeLine(screen, cx-d, cy-scaleF(6), cx+d, cy, w, textSecondary, true)
	vector.StrokeLine(screen, cx+d, cy, cx-d, cy+scaleF(6), w, textSecondary, true)
}

// drawMoveHistory lists the plies in numbered pairs, My first.
func (p *Panel) drawMoveHistory(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	bottom := ScreenHeight - statusBarH - 8
	area := rect{x, p.movesTop, w, bottom - p.movesTop}
	fillRect(screen, area, sectionBg)

	history := p.game.History()
	rows := (len(history) + 1) / 2
	visible := area.H / moveRowH
	p.maxScrollY = max(0, (rows-visible)*moveRowH)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	if len(history) == 0 {
		drawCentered(screen, "No moves yet", area, textSecondary)
		return
	}

	first := p.scrollY / moveRowH
	for row := first; row < rows && row < first+visible; row++ {
		y := area.Y + (row-first)*moveRowH
		if row%2 == 1 {
			fillRect(screen, rect{x, y, w, moveRowH}, moveRowAlt)
		}
		drawLeft(screen, fmt.Sprintf("%d.", row+1), rect{x + 8, y, 40, moveRowH}, textSecondary)
		drawLeft(screen, history[2*row], rect{x + 48, y, 110, moveRowH}, textPrimary)
		if 2*row+1 < len(history) {
			drawLeft(screen, history[2*row+1], rect{x + 160, y, 110, moveRowH}, textPrimary)
		}
	}
}

// drawStatusBar shows whose turn it is, the piece counts and the player's record.
func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := ScreenHeight - statusBarH
	drawDivider(screen, x, y, w)

	status, c := p.game.StatusText()
	drawLeft(screen, status, rect{x, y + 8, w, 22}, c)

	b := p.game.Board()
	counts := fmt.Sprintf("%s %d (%d kings)   %s %d (%d kings)",
		sideName(board.My), b.Count(board.My), b.CountCell(board.MyKing),
		sideName(board.Opp), b.Count(board.Opp), b.CountCell(board.OppKing))
	drawLeft(screen, counts, rect{x, y + 32, w, 22}, textSecondary)

	if st := p.game.Stats(); st != nil {
		record := fmt.Sprintf("%s: %dW %dL %dD (%.0f%%)", p.game.Username(), st.Wins, st.Losses, st.Draws, st.GetWinRate())
		drawLeft(screen, record, rect{x, y + 56, w, 22}, textSecondary)
	}
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel and resizes the window to match.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.layout()
	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
