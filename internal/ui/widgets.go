package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Palette shared by the panel, the modals and the widgets.
var (
	panelBg       = color.RGBA{32, 34, 38, 255}
	sectionBg     = color.RGBA{40, 43, 48, 255}
	dividerColor  = color.RGBA{58, 62, 68, 255}
	textPrimary   = color.RGBA{230, 232, 235, 255}
	textSecondary = color.RGBA{150, 155, 165, 255}
	accentColor   = color.RGBA{76, 175, 120, 255}
	warnColor     = color.RGBA{220, 170, 60, 255}

	buttonBg      = color.RGBA{56, 60, 66, 255}
	buttonHoverBg = color.RGBA{70, 75, 82, 255}
	buttonPressBg = color.RGBA{44, 47, 52, 255}
	primaryBg     = color.RGBA{60, 140, 95, 255}
	primaryHover  = color.RGBA{72, 160, 110, 255}
	tabActive     = color.RGBA{76, 132, 96, 255}
	borderColor   = color.RGBA{70, 75, 82, 255}

	widgetBg     = color.RGBA{48, 52, 58, 255}
	widgetHover  = color.RGBA{65, 70, 78, 255}
	inputText    = color.RGBA{240, 240, 245, 255}
	placeholder  = color.RGBA{120, 125, 135, 255}
	modalOverlay = color.RGBA{0, 0, 0, 150}
	modalBg      = color.RGBA{36, 39, 44, 255}
)

func fillRect(dst *ebiten.Image, r rect, c color.Color) {
	vector.DrawFilledRect(dst, scaleF(r.X), scaleF(r.Y), scaleF(r.W), scaleF(r.H), c, false)
}

func strokeRect(dst *ebiten.Image, r rect, width float32, c color.Color) {
	vector.StrokeRect(dst, scaleF(r.X), scaleF(r.Y), scaleF(r.W), scaleF(r.H), width*float32(UIScale), c, false)
}

// drawCentered draws s centered in r.
func drawCentered(dst *ebiten.Image, s string, r rect, c color.Color) {
	f := GetRegularFace()
	w, h := MeasureText(s, f)
	drawText(dst, s, f, float64(r.X)+(float64(r.W)-w/UIScale)/2, float64(r.Y)+(float64(r.H)-h/UIScale)/2, c)
}

// drawLeft draws s left-aligned and vertically centered in r.
func drawLeft(dst *ebiten.Image, s string, r rect, c color.Color) {
	f := GetRegularFace()
	_, h := MeasureText(s, f)
	drawText(dst, s, f, float64(r.X), float64(r.Y)+(float64(r.H)-h/UIScale)/2, c)
}

// Button is a clickable labelled rectangle.
type Button struct {
	rect
	Label   string
	Primary bool
	OnClick func()
	hovered bool
	pressed bool
}

// NewButton creates a button.
func NewButton(x, y, w, h int, label string, onClick func()) *Button {
	return &Button{rect: rect{x, y, w, h}, Label: label, OnClick: onClick}
}

// Update handles hover and click; it reports whether the button fired.
func (b *Button) Update(input *InputHandler) bool {
	b.hovered = input.Hovers(b.rect)
	b.pressed = b.hovered && input.IsLeftPressed()
	if input.Clicked(b.rect) {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

func (b *Button) Hovered() bool {
	return b.hovered
}

// Draw renders the button.
func (b *Button) Draw(dst *ebiten.Image) {
	bg := buttonBg
	switch {
	case b.pressed:
		bg = buttonPressBg
	case b.Primary && b.hovered:
		bg = primaryHover
	case b.Primary:
		bg = primaryBg
	case b.hovered:
		bg = buttonHoverBg
	}
	fillRect(dst, b.rect, bg)
	if b.hovered && !b.Primary {
		strokeRect(dst, b.rect, 1, accentColor)
	}
	drawCentered(dst, b.Label, b.rect, textPrimary)
}

// ButtonGroup is a row of mutually exclusive toggle buttons.
type ButtonGroup struct {
	X, Y, ButtonW, ButtonH int
	Options                []string
	Selected               int
	hovered                int
}

// NewButtonGroup creates a button group.
func NewButtonGroup(x, y int, options []string, selected, buttonW, buttonH int) *ButtonGroup {
	return &ButtonGroup{X: x, Y: y, ButtonW: buttonW, ButtonH: buttonH, Options: options, Selected: selected, hovered: -1}
}

func (bg *ButtonGroup) item(i int) rect {
	return rect{bg.X + i*bg.ButtonW, bg.Y, bg.ButtonW, bg.ButtonH}
}

// Update reports whether the selection changed.
func (bg *ButtonGroup) Update(input *InputHandler) bool {
	bg.hovered = -1
	for i := range bg.Options {
		if !input.Hovers(bg.item(i)) {
			continue
		}
		bg.hovered = i
		if input.IsLeftJustPressed() && bg.Selected != i {
			bg.Selected = i
			return true
		}
	}
	return false
}

func (bg *ButtonGroup) Hovered() bool {
	return bg.hovered >= 0
}

// Draw renders the group with the selected item highlighted.
func (bg *ButtonGroup) Draw(dst *ebiten.Image) {
	for i, label := range bg.Options {
		r := bg.item(i)
		c := buttonBg
		if i == bg.Selected {
			c = tabActive
		} else if i == bg.hovered {
			c = buttonHoverBg
		}
		fillRect(dst, r, c)
		strokeRect(dst, r, 1, borderColor)
		txt := textSecondary
		if i == bg.Selected {
			txt = textPrimary
		}
		drawCentered(dst, label, r, txt)
	}
}

// Checkbox is a labelled toggle.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

func (cb *Checkbox) bounds() rect {
	return rect{cb.X, cb.Y, 260, 22}
}

// Update reports whether the box was toggled.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.Hovers(cb.bounds())
	if input.Clicked(cb.bounds()) {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the box, its check mark and the label.
func (cb *Checkbox) Draw(dst *ebiten.Image) {
	box := rect{cb.X, cb.Y + 1, 20, 20}
	bg, border := widgetBg, borderColor
	if cb.hovered {
		bg, border = widgetHover, accentColor
	} else if cb.Checked {
		border = accentColor
	}
	fillRect(dst, box, bg)
	strokeRect(dst, box, 2, border)
	if cb.Checked {
		x, y := scaleF(box.X), scaleF(box.Y)
		w := float32(2 * UIScale)
		vector.StrokeLine(dst, x+scaleF(4), y+scaleF(10), x+scaleF(8), y+scaleF(14), w, accentColor, true)
		vector.StrokeLine(dst, x+scaleF(8), y+scaleF(14), x+scaleF(16), y+scaleF(6), w, accentColor, true)
	}

	txt := textSecondary
	if cb.Checked || cb.hovered {
		txt = textPrimary
	}
	drawLeft(dst, cb.Label, rect{cb.X + 30, cb.Y, 230, 22}, txt)
}

// TextInput is a single-line editable field.
type TextInput struct {
	rect
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	blink       int
}

// NewTextInput creates a text field.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{rect: rect{x, y, w, h}, Placeholder: placeholder, MaxLength: maxLen}
}

// Update handles focus and typing; it reports whether the field is focused.
func (ti *TextInput) Update(input *InputHandler) bool {
	ti.hovered = input.Hovers(ti.rect)
	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}
	ti.blink = (ti.blink + 1) % 60

	for _, c := range input.Chars() {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(c)
		}
	}
	if input.IsKeyRepeating(ebiten.KeyBackspace) && ti.Value != "" {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}
	if input.IsKeyJustPressed(ebiten.KeyEscape) || input.IsKeyJustPressed(ebiten.KeyEnter) {
		ti.focused = false
	}
	return true
}

// SetFocused sets the focus state.
func (ti *TextInput) SetFocused(focused bool) {
	ti.focused = focused
}

// Draw renders the field, the text or placeholder, and the caret.
func (ti *TextInput) Draw(dst *ebiten.Image) {
	bg, border := widgetBg, borderColor
	if ti.focused {
		border = accentColor
	} else if ti.hovered {
		bg = widgetHover
	}
	fillRect(dst, ti.rect, bg)
	strokeRect(dst, ti.rect, 2, border)

	inner := rect{ti.X + 10, ti.Y, ti.W - 20, ti.H}
	shown, c := ti.Value, color.Color(inputText)
	if shown == "" {
		shown, c = ti.Placeholder, placeholder
	}
	drawLeft(dst, shown, inner, c)

	if ti.focused && ti.blink < 30 {
		w, _ := MeasureText(ti.Value, GetRegularFace())
		caret := rect{inner.X + int(w/UIScale) + 2, ti.Y + 8, 2, ti.H - 16}
		fillRect(dst, caret, inputText)
	}
}

// drawDivider draws a horizontal rule.
func drawDivider(dst *ebiten.Image, x, y, w int) {
	fillRect(dst, rect{x, y, w, 1}, dividerColor)
}

// drawSectionHeader draws a small caps-style section title.
func drawSectionHeader(dst *ebiten.Image, title string, x, y int) {
	drawText(dst, title, GetFaceWithSize(12), float64(x), float64(y), textSecondary)
}
