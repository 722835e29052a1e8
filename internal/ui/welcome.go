package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/checkersplay/internal/storage"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 400
	WelcomeHeight = 360
	WelcomePadX   = 32
)

// WelcomeScreen asks for a name and a side on first launch.
type WelcomeScreen struct {
	visible bool
	box     rect

	nameInput *TextInput
	side      *ButtonGroup
	startBtn  *Button

	onComplete func(username string, side storage.PlayerSide)
}

// NewWelcomeScreen creates a hidden welcome screen.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{
		box: rect{(ScreenWidth - WelcomeWidth) / 2, (ScreenHeight - WelcomeHeight) / 2, WelcomeWidth, WelcomeHeight},
	}
	x := ws.box.X + WelcomePadX
	w := WelcomeWidth - WelcomePadX*2
	ws.nameInput = NewTextInput(x, ws.box.Y+150, w, 38, "Enter your name", 20)
	ws.side = NewButtonGroup(x, ws.box.Y+230, []string{"Light (moves first)", "Dark"}, 0, w/2, 32)
	ws.startBtn = NewButton(x, ws.box.Y+WelcomeHeight-64, w, 40, "Start Playing", ws.complete)
	ws.startBtn.Primary = true
	return ws
}

// Show opens the welcome screen.
func (ws *WelcomeScreen) Show(onComplete func(string, storage.PlayerSide)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
	ws.nameInput.SetFocused(true)
}

// IsVisible returns whether the screen is shown.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

func (ws *WelcomeScreen) complete() {
	name := strings.TrimSpace(ws.nameInput.Value)
	if name == "" {
		name = "Player"
	}
	ws.visible = false
	if ws.onComplete != nil {
		ws.onComplete(name, storage.PlayerSide(ws.side.Selected))
	}
}

// Update handles input. It consumes all input while visible.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if input.IsKeyJustPressed(ebiten.KeyEnter) {
		ws.complete()
		return true
	}
	ws.nameInput.Update(input)
	ws.side.Update(input)
	ws.startBtn.Update(input)
	return true
}

// AnyButtonHovered reports whether the cursor is over a clickable control.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	return ws.visible && (ws.startBtn.Hovered() || ws.side.Hovered())
}

// Draw renders the welcome screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image) {
	if !ws.visible {
		return
	}
	drawModalFrame(screen, ws.box, "CHECKERSPLAY")
	ws.drawIcon(screen)

	subtitle := rect{ws.box.X, ws.box.Y + 100, ws.box.W, 20}
	drawCentered(screen, "Welcome! Set up your preferences.", subtitle, textSecondary)

	x := ws.box.X + WelcomePadX
	drawSectionHeader(screen, "YOUR NAME", x, ws.nameInput.Y-18)
	drawSectionHeader(screen, "PLAY AS", x, ws.side.Y-18)

	ws.nameInput.Draw(screen)
	ws.side.Draw(screen)
	ws.startBtn.Draw(screen)
}

// drawIcon draws a stack of two men, the usual king marker.
func (ws *WelcomeScreen) drawIcon(screen *ebiten.Image) {
	cx := scaleF(ws.box.X + ws.box.W/2)
	cy := scaleF(ws.box.Y + 72)
	r := scaleF(14)
	light := DefaultTheme().LightSquare
	vector.DrawFilledCircle(screen, cx, cy+scaleF(5), r, accentColor, true)
	vector.DrawFilledCircle(screen, cx, cy, r, light, true)
	vector.StrokeCircle(screen, cx, cy, r-scaleF(4), float32(2*UIScale), accentColor, true)
}
