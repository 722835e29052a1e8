package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/checkersplay/internal/storage"
)

// Settings modal dimensions
const (
	SettingsWidth  = 400
	SettingsHeight = 520
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// drawModalFrame dims the screen and draws a titled modal box.
func drawModalFrame(screen *ebiten.Image, box rect, title string) {
	fillRect(screen, rect{0, 0, ScreenWidth, ScreenHeight}, modalOverlay)
	fillRect(screen, box, modalBg)
	strokeRect(screen, box, 2, dividerColor)

	f := GetBoldFace()
	w, _ := MeasureText(title, f)
	drawText(screen, title, f, float64(box.X)+(float64(box.W)-w/UIScale)/2, float64(box.Y+16), textPrimary)
	drawDivider(screen, box.X, box.Y+44, box.W)
}

// SettingsModal edits the persisted preferences.
type SettingsModal struct {
	visible bool
	box     rect

	usernameInput *TextInput
	difficulty    *ButtonGroup
	side          *ButtonGroup
	kingsBackward *Checkbox
	passOnIllegal *Checkbox
	hints         *Checkbox
	sound         *Checkbox
	saveBtn       *Button
	cancelBtn     *Button

	prefs  storage.UserPreferences // Working copy
	onSave func(*storage.UserPreferences)
}

// NewSettingsModal creates a hidden settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		box: rect{(ScreenWidth - SettingsWidth) / 2, (ScreenHeight - SettingsHeight) / 2, SettingsWidth, SettingsHeight},
	}
	x := sm.box.X + SettingsPadX
	y := sm.box.Y
	w := SettingsWidth - SettingsPadX*2

	sm.usernameInput = NewTextInput(x, y+76, w, 36, "Enter your name", 20)
	sm.difficulty = NewButtonGroup(x, y+148, []string{"Easy", "Medium", "Hard"}, 1, w/3, 32)
	sm.side = NewButtonGroup(x, y+216, []string{"Light (moves first)", "Dark"}, 0, w/2, 32)
	sm.kingsBackward = NewCheckbox(x, y+284, "Kings move backward", false)
	sm.passOnIllegal = NewCheckbox(x, y+312, "Illegal move passes the turn", false)
	sm.hints = NewCheckbox(x, y+372, "Show hints on Easy", true)
	sm.sound = NewCheckbox(x, y+400, "Sound effects", true)

	btnY := y + SettingsHeight - SettingsPadY - 38
	right := sm.box.X + SettingsWidth - SettingsPadX
	sm.saveBtn = NewButton(right-100, btnY, 100, 38, "Save", sm.save)
	sm.saveBtn.Primary = true
	sm.cancelBtn = NewButton(right-212, btnY, 100, 38, "Cancel", sm.Hide)
	return sm
}

// Show opens the modal on a copy of prefs. onSave receives the edited copy.
func (sm *SettingsModal) Show(prefs *storage.UserPreferences, onSave func(*storage.UserPreferences)) {
	sm.visible = true
	sm.prefs = *prefs
	sm.onSave = onSave

	sm.usernameInput.Value = prefs.Username
	sm.usernameInput.SetFocused(false)
	sm.difficulty.Selected = int(prefs.Difficulty)
	sm.side.Selected = int(prefs.PlayerSide)
	sm.kingsBackward.Checked = prefs.KingsMoveBackward
	sm.passOnIllegal.Checked = prefs.PassTurnOnIllegal
	sm.hints.Checked = prefs.ShowHints
	sm.sound.Checked = prefs.SoundEnabled
}

// Hide closes the modal without saving.
func (sm *SettingsModal) Hide() {
	sm.visible = false
}

// IsVisible returns whether the modal is shown.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

func (sm *SettingsModal) save() {
	p := sm.prefs
	if name := strings.TrimSpace(sm.usernameInput.Value); name != "" {
		p.Username = name
	}
	p.Difficulty = storage.Difficulty(sm.difficulty.Selected)
	p.PlayerSide = storage.PlayerSide(sm.side.Selected)
	p.KingsMoveBackward = sm.kingsBackward.Checked
	p.PassTurnOnIllegal = sm.passOnIllegal.Checked
	p.ShowHints = sm.hints.Checked
	p.SoundEnabled = sm.sound.Checked

	sm.visible = false
	if sm.onSave != nil {
		sm.onSave(&p)
	}
}

// Update handles modal input. It consumes all input while visible.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}
	if sm.usernameInput.Update(input) {
		return true
	}
	if input.IsKeyJustPressed(ebiten.KeyEscape) {
		sm.Hide()
		return true
	}
	if input.IsKeyJustPressed(ebiten.KeyEnter) {
		sm.save()
		return true
	}

	sm.difficulty.Update(input)
	sm.side.Update(input)
	sm.kingsBackward.Update(input)
	sm.passOnIllegal.Update(input)
	sm.hints.Update(input)
	sm.sound.Update(input)
	if !sm.saveBtn.Update(input) {
		sm.cancelBtn.Update(input)
	}
	return true
}

// AnyButtonHovered reports whether the cursor is over a clickable control.
func (sm *SettingsModal) AnyButtonHovered() bool {
	return sm.visible && (sm.saveBtn.Hovered() || sm.cancelBtn.Hovered() || sm.difficulty.Hovered() || sm.side.Hovered())
}

// Draw renders the modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, sm.box, "Settings")

	x := sm.box.X + SettingsPadX
	y := sm.box.Y
	drawSectionHeader(screen, "NAME", x, y+58)
	drawSectionHeader(screen, "DIFFICULTY", x, y+130)
	drawSectionHeader(screen, "PLAY AS", x, y+198)
	drawSectionHeader(screen, "RULES (next game)", x, y+266)
	drawSectionHeader(screen, "ASSISTANCE", x, y+354)

	sm.usernameInput.Draw(screen)
	sm.difficulty.Draw(screen)
	sm.side.Draw(screen)
	sm.kingsBackward.Draw(screen)
	sm.passOnIllegal.Draw(screen)
	sm.hints.Draw(screen)
	sm.sound.Draw(screen)
	sm.cancelBtn.Draw(screen)
	sm.saveBtn.Draw(screen)
}
