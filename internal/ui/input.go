package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler samples mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY   int // Logical coordinates
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	wheelY           float64
	chars            []rune
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	rawX, rawY := ebiten.CursorPosition()
	scale := UIScale
	if scale < 1.0 {
		scale = 1.0
	}
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, ih.wheelY = ebiten.Wheel()
	ih.chars = ebiten.AppendInputChars(ih.chars[:0])
}

// MousePosition returns the mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

func (ih *InputHandler) IsLeftJustPressed() bool  { return ih.leftJustPressed }
func (ih *InputHandler) IsLeftJustReleased() bool { return ih.leftJustReleased }
func (ih *InputHandler) IsLeftPressed() bool      { return ih.leftPressed }

// WheelY returns the vertical wheel delta of this frame.
func (ih *InputHandler) WheelY() float64 {
	return ih.wheelY
}

// Chars returns the characters typed this frame.
func (ih *InputHandler) Chars() []rune {
	return ih.chars
}

// Hovers reports whether the mouse is inside r.
func (ih *InputHandler) Hovers(r rect) bool {
	return r.contains(ih.mouseX, ih.mouseY)
}

// Clicked reports whether the left button was just pressed inside r.
func (ih *InputHandler) Clicked(r rect) bool {
	return ih.leftJustPressed && r.contains(ih.mouseX, ih.mouseY)
}

// IsKeyJustPressed returns true if the key was just pressed.
func (ih *InputHandler) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// IsKeyRepeating reports a just-pressed key, then repeats while it is held.
func (ih *InputHandler) IsKeyRepeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}
