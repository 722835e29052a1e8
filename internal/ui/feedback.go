package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/checkersplay/internal/board"
)

// InvalidMoveReason says why a move attempt was rejected.
type InvalidMoveReason int

const (
	ReasonUnknown InvalidMoveReason = iota
	ReasonNotYourPiece
	ReasonPieceStuck
	ReasonOccupied
	ReasonMustJump
	ReasonNotDiagonal
)

var reasonMessages = map[InvalidMoveReason]string{
	ReasonNotYourPiece: "That is not your piece",
	ReasonPieceStuck:   "That piece has no moves",
	ReasonOccupied:     "Square is occupied",
	ReasonMustJump:     "This piece must jump",
	ReasonNotDiagonal:  "Pieces move one square diagonally",
}

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

var toastColors = map[ToastType][2]color.RGBA{
	ToastInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	ToastWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	ToastError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	ToastSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

// Toast is a transient notification.
type Toast struct {
	Message  string
	Type     ToastType
	Start    time.Time
	Duration time.Duration
}

// ToastManager stacks up to maxStack toasts over the board.
type ToastManager struct {
	toasts   []Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a toast, dropping the oldest beyond the stack limit.
func (tm *ToastManager) Show(message string, t ToastType, d time.Duration) {
	tm.toasts = append(tm.toasts, Toast{Message: message, Type: t, Start: time.Now(), Duration: d})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[len(tm.toasts)-tm.maxStack:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.Start) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders the toasts centered over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	f := GetRegularFace()
	if f == nil {
		return
	}
	const fade, padding = 0.2, 12.0

	y := 50.0
	for _, t := range tm.toasts {
		elapsed := time.Since(t.Start).Seconds()
		alpha := 1.0
		if elapsed < fade {
			alpha = elapsed / fade
		} else if remaining := t.Duration.Seconds() - elapsed; remaining < fade {
			alpha = remaining / fade
		}

		colors := toastColors[t.Type]
		bg, fg := colors[0], colors[1]
		bg.A = uint8(float64(bg.A) * alpha)
		fg.A = uint8(float64(fg.A) * alpha)

		w, h := MeasureText(t.Message, f)
		boxW, boxH := w/UIScale+padding*2, h/UIScale+padding*2
		x := float64(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x*UIScale), float32(y*UIScale), float32(boxW*UIScale), float32(boxH*UIScale), bg, false)
		drawText(screen, t.Message, f, x+padding, y+padding, fg)
		y += boxH + 8
	}
}

type shake struct {
	sq    board.Coord
	start time.Time
}

type flash struct {
	sq    board.Coord
	start time.Time
	color color.RGBA
}

type fadingPiece struct {
	sq    board.Coord
	cell  board.Cell
	start time.Time
}

const (
	shakeDuration = 300 * time.Millisecond
	flashDuration = 400 * time.Millisecond
	fadeDuration  = 350 * time.Millisecond
)

// AnimationManager runs shakes, square flashes and captured-piece fades.
type AnimationManager struct {
	shakes  []shake
	flashes []flash
	fades   []fadingPiece
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake shakes the piece on sq.
func (am *AnimationManager) StartShake(sq board.Coord) {
	am.shakes = append(am.shakes, shake{sq, time.Now()})
}

// StartFlash flashes sq with c.
func (am *AnimationManager) StartFlash(sq board.Coord, c color.RGBA) {
	am.flashes = append(am.flashes, flash{sq, time.Now(), c})
}

// StartFade fades out a piece that left sq.
func (am *AnimationManager) StartFade(sq board.Coord, cell board.Cell) {
	am.fades = append(am.fades, fadingPiece{sq, cell, time.Now()})
}

// Update drops finished animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.start) < shakeDuration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.start) < flashDuration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes

	fades := am.fades[:0]
	for _, f := range am.fades {
		if now.Sub(f.start) < fadeDuration {
			fades = append(fades, f)
		}
	}
	am.fades = fades
}

// ShakeOffset returns the logical offset of the piece on sq: a damped sine.
func (am *AnimationManager) ShakeOffset(sq board.Coord) (float64, float64) {
	for _, s := range am.shakes {
		if s.sq != sq {
			continue
		}
		p := time.Since(s.start).Seconds() / shakeDuration.Seconds()
		if p >= 1 {
			return 0, 0
		}
		return 8 * math.Exp(-5*p) * math.Sin(40*p), 0
	}
	return 0, 0
}

// Fading returns the captured pieces still fading out.
func (am *AnimationManager) Fading() []fadingPiece {
	return am.fades
}

// FadeAlpha returns the opacity of a fading piece on sq, or 1.
func (am *AnimationManager) FadeAlpha(sq board.Coord) float32 {
	for _, f := range am.fades {
		if f.sq == sq {
			p := time.Since(f.start).Seconds() / fadeDuration.Seconds()
			return float32(math.Max(0, 1-p))
		}
	}
	return 1
}

// DrawFlashes renders the flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	for _, f := range am.flashes {
		p := time.Since(f.start).Seconds() / flashDuration.Seconds()
		if p >= 1 {
			continue
		}
		c := f.color
		c.A = uint8(float64(c.A) * (1 - p))
		r.fillSquare(screen, f.sq, c)
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update advances toasts and animations.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes and toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for the renderer.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Info shows a plain notice.
func (fm *FeedbackManager) Info(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

// Error shows an error notice.
func (fm *FeedbackManager) Error(message string) {
	fm.toasts.Show(message, ToastError, 3*time.Second)
}

// OnInvalidMove reports a rejected move attempt.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Coord, reason InvalidMoveReason) {
	message, ok := reasonMessages[reason]
	if !ok {
		message = "Invalid move"
	}
	fm.toasts.Show(message, ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	if to.Valid() {
		fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	}
	fm.audio.Play(SoundInvalid)
}

// OnTurnPassed reports that an illegal attempt cost the mover their turn.
func (fm *FeedbackManager) OnTurnPassed(to string) {
	fm.toasts.Show("Illegal move: turn passes to "+to, ToastError, 3*time.Second)
}

// MoveEvent describes what a completed move did.
type MoveEvent struct {
	Captured  []capturedPiece // In jump order
	Promoted  bool
	Forfeited []capturedPiece // Mover's own pieces lost for skipping a jump
}

type capturedPiece struct {
	sq   board.Coord
	cell board.Cell
}

// OnMoveMade plays the sound and animations for a completed move.
func (fm *FeedbackManager) OnMoveMade(ev MoveEvent) {
	for _, p := range ev.Captured {
		fm.animations.StartFade(p.sq, p.cell)
	}
	for _, p := range ev.Forfeited {
		fm.animations.StartFade(p.sq, p.cell)
		fm.animations.StartFlash(p.sq, color.RGBA{255, 80, 80, 150})
	}

	switch {
	case ev.Promoted:
		fm.toasts.Show("Crowned!", ToastSuccess, 2*time.Second)
		fm.audio.Play(SoundPromote)
	case len(ev.Captured) > 1:
		fm.toasts.Show(fmt.Sprintf("%d-piece jump!", len(ev.Captured)), ToastInfo, 2*time.Second)
		fm.audio.Play(SoundChain)
	case len(ev.Captured) == 1:
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
	if len(ev.Forfeited) > 0 {
		fm.toasts.Show("Piece forfeited: a jump was available", ToastWarning, 3*time.Second)
	}
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(message string) {
	fm.toasts.Show(message, ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}
