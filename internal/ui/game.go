package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/render"
	"github.com/hailam/checkersplay/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / board.Size
	PanelWidth   = ScreenWidth - BoardSize
)

// sideName is the on-screen name of a side.
func sideName(s board.Side) string {
	if s == board.Opp {
		return "Dark"
	}
	return "Light"
}

// searchTask runs one search at a time on its own engine in the background.
// Results carry the position generation they were started for.
type searchTask[T any] struct {
	eng     *engine.Engine
	cancel  context.CancelFunc
	done    chan T
	gen     int
	running bool
}

func (t *searchTask[T]) start(gen int, fn func(ctx context.Context, eng *engine.Engine) T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan T, 1)
	t.cancel, t.done, t.gen, t.running = cancel, done, gen, true
	eng := t.eng
	go func() {
		done <- fn(ctx, eng)
	}()
}

// poll returns the result once the search has finished.
func (t *searchTask[T]) poll() (result T, gen int, ok bool) {
	if !t.running {
		return result, 0, false
	}
	select {
	case result = <-t.done:
		t.running = false
		t.cancel()
		return result, t.gen, true
	default:
		return result, 0, false
	}
}

// stop cancels a running search and waits until it releases the engine.
func (t *searchTask[T]) stop() {
	if !t.running {
		return
	}
	t.cancel()
	<-t.done
	t.running = false
}

// Game implements ebiten.Game.
type Game struct {
	board    *board.Board
	history  []string
	lastMove board.Move
	gen      int // Bumped whenever the position changes

	// Selection
	selected   board.Coord
	candidates []board.Candidate
	dragging   bool
	dragFrom   board.Coord

	// Settings
	mode       storage.GameMode
	difficulty storage.Difficulty
	humanSide  board.Side
	username   string

	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	diagram  *render.Diagram

	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen

	ai       searchTask[board.Move]
	hint     searchTask[engine.Result]
	hintMove board.Move

	gameOver   bool
	gameResult string
	startTime  time.Time
}

// NewGame creates the game, opening storage and both engines.
func NewGame() (*Game, error) {
	renderer, err := NewRenderer(SquareSize)
	if err != nil {
		return nil, fmt.Errorf("load piece sprites: %w", err)
	}
	aiEngine, err := engine.NewEngine(engine.DefaultOptions())
	if err != nil {
		return nil, err
	}
	hintEngine, err := engine.NewEngine(engine.Options{TableSizeMB: 4, EvalSizeMB: 1, MoveCacheEntries: 512})
	if err != nil {
		aiEngine.Close()
		return nil, err
	}

	g := &Game{
		selected:  board.NoCoord,
		dragFrom:  board.NoCoord,
		lastMove:  board.NoMove,
		hintMove:  board.NoMove,
		humanSide: board.My,
		renderer:  renderer,
		input:     NewInputHandler(),
		feedback:  NewFeedbackManager(),
	}
	g.ai.eng = aiEngine
	g.hint.eng = hintEngine

	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	g.loadPreferences()

	g.panel = NewPanel(g)
	g.settingsModal = NewSettingsModal()
	g.welcomeScreen = NewWelcomeScreen()

	g.NewGameAction()
	g.checkFirstLaunch()
	return g, nil
}

// loadPreferences loads preferences and stats and applies them.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.stats = storage.NewGameStats()
	if g.storage != nil {
		if prefs, err := g.storage.LoadPreferences(); err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			g.prefs = prefs
		}
		if stats, err := g.storage.LoadStats(); err != nil {
			log.Printf("Warning: Failed to load stats: %v", err)
		} else {
			g.stats = stats
		}
	}
	g.applyPreferences()
}

// applyPreferences pushes g.prefs into the game, engine and feedback.
// Rule changes take effect on the next game.
func (g *Game) applyPreferences() {
	g.username = g.prefs.Username
	g.mode = g.prefs.GameMode
	g.SetDifficulty(g.prefs.Difficulty)
	g.setHumanSide(g.prefs.PlayerSide)
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
}

// savePreferences writes g.prefs to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.prefs.LastPlayed = time.Now()
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// checkFirstLaunch shows the welcome screen on first launch.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}
	g.welcomeScreen.Show(func(name string, side storage.PlayerSide) {
		g.prefs.Username = name
		g.prefs.PlayerSide = side
		g.applyPreferences()
		g.savePreferences()
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
		g.NewGameAction()
	})
}

// rules returns the rule set selected in the preferences.
func (g *Game) rules() board.Rules {
	r := board.DefaultRules()
	r.KingsMoveBackward = g.prefs.KingsMoveBackward
	if g.prefs.PassTurnOnIllegal {
		r.IllegalMoves = board.PassTurnOnIllegal
	}
	return r
}

// Update handles one frame of game logic.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	switch {
	case g.welcomeScreen.Update(g.input), g.settingsModal.Update(g.input):
	case g.panel.HandleInput(g.input):
	default:
		g.handleKeys()
		g.handleBoardInput()
	}

	g.checkAIMove()
	g.checkHint()
	g.startHint()
	g.updateCursor()
	return nil
}

// handleKeys processes the keyboard shortcuts.
func (g *Game) handleKeys() {
	switch {
	case g.input.IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case g.input.IsKeyJustPressed(ebiten.KeyS):
		g.SaveDiagram()
	case g.input.IsKeyJustPressed(ebiten.KeyH):
		g.prefs.ShowHints = !g.prefs.ShowHints
		g.savePreferences()
		if !g.prefs.ShowHints {
			g.clearHint()
		}
	case g.input.IsKeyJustPressed(ebiten.KeyEscape):
		g.clearSelection()
	}
}

// updateCursor shows a pointer over clickable controls and movable pieces.
func (g *Game) updateCursor() {
	var hovered bool
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	default:
		hovered = g.panel.AnyButtonHovered()
		if !hovered && g.humanToMove() {
			mx, my := g.input.MousePosition()
			sq := g.renderer.ScreenToSquare(mx, my)
			hovered = sq.Valid() && g.isMovable(sq)
		}
	}
	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	var movable []board.Coord
	if g.humanToMove() && g.selected == board.NoCoord {
		movable = g.board.MovablePieces(g.board.Turn())
	}
	g.renderer.DrawHighlights(screen, movable, g.selected, g.candidates, g.lastMove)

	anims := g.feedback.Animations()
	g.renderer.DrawCaptured(screen, anims)
	dragFrom := board.NoCoord
	if g.dragging {
		dragFrom = g.dragFrom
	}
	g.renderer.DrawPieces(screen, g.board, dragFrom, anims)
	if g.showingHint() {
		g.renderer.DrawHint(screen, g.hintMove)
	}
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.board.At(g.dragFrom), mx, my)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)
	g.settingsModal.Draw(screen)
	g.welcomeScreen.Draw(screen)
}

// Layout returns the screen size in device pixels and records the scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	UIScale = max(1.0, ebiten.Monitor().DeviceScaleFactor())
	width := ScreenWidth
	if g.panel != nil && g.panel.Collapsed() {
		width = BoardSize + CollapsedWidth
	}
	return int(float64(width) * UIScale), int(float64(ScreenHeight) * UIScale)
}

// humanToMove reports whether a person may move now.
func (g *Game) humanToMove() bool {
	if g.gameOver || g.ai.running {
		return false
	}
	return g.mode == storage.ModeHumanVsHuman || g.board.Turn() == g.humanSide
}

func (g *Game) isMovable(sq board.Coord) bool {
	for _, p := range g.board.MovablePieces(g.board.Turn()) {
		if p == sq {
			return true
		}
	}
	return false
}

// handleBoardInput handles clicks and drags on the board.
func (g *Game) handleBoardInput() {
	if !g.humanToMove() {
		return
	}
	mx, my := g.input.MousePosition()

	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if !sq.Valid() {
			return
		}
		cell := g.board.At(sq)
		switch {
		case !cell.IsEmpty() && cell.Side() == g.board.Turn():
			if !g.isMovable(sq) {
				g.feedback.OnInvalidMove(sq, board.NoCoord, ReasonPieceStuck)
				g.clearSelection()
				return
			}
			g.selected = sq
			g.candidates = g.board.CandidateMoves(sq)
			g.dragging = true
			g.dragFrom = sq
		case g.selected != board.NoCoord:
			g.tryMove(g.selected, sq)
		case !cell.IsEmpty():
			g.feedback.OnInvalidMove(sq, board.NoCoord, ReasonNotYourPiece)
		}
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.dragging = false
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq.Valid() && sq != g.dragFrom {
			g.tryMove(g.dragFrom, sq)
		}
	}
}

// invalidReason explains why from-to is not among the candidates.
func (g *Game) invalidReason(from, to board.Coord) InvalidMoveReason {
	switch {
	case !g.board.At(to).IsEmpty():
		return ReasonOccupied
	case g.board.HasCapture(from):
		return ReasonMustJump
	default:
		return ReasonNotDiagonal
	}
}

// tryMove applies from-to for the side to move and reports the outcome.
func (g *Game) tryMove(from, to board.Coord) {
	mover := g.board.Turn()
	before := g.board.Clone()
	cand, isCand := g.board.FindCandidate(from, to)
	reason := ReasonUnknown
	if !isCand {
		reason = g.invalidReason(from, to)
	}

	log.Printf("[MOVE] %s plays %v-%v", mover, from, to)
	err := g.board.ApplyMove(from, to)
	g.clearSelection()
	if err != nil {
		log.Printf("[MOVE] rejected: %v", err)
		g.feedback.OnInvalidMove(from, to, reason)
		if errors.Is(err, board.ErrIllegalMove) && g.board.Turn() != mover {
			g.history = append(g.history, "pass")
			g.feedback.OnTurnPassed(sideName(g.board.Turn()))
			g.positionChanged()
		}
		return
	}

	notation := board.NewMove(from, to).String()
	if cand.IsCapture() {
		notation = from.String() + "x" + to.String()
	}
	g.history = append(g.history, notation)
	g.lastMove = board.NewMove(from, to)
	g.feedback.OnMoveMade(diffMove(before, g.board, from, mover))
	g.positionChanged()
}

// diffMove compares the boards around a move by mover from from.
func diffMove(before, after *board.Board, from board.Coord, mover board.Side) MoveEvent {
	var ev MoveEvent
	for i := 0; i < board.Size*board.Size; i++ {
		sq := board.CoordFromIndex(i)
		was := before.At(sq)
		if was.IsEmpty() || !after.At(sq).IsEmpty() || sq == from {
			continue
		}
		p := capturedPiece{sq: sq, cell: was}
		if was.Side() == mover {
			ev.Forfeited = append(ev.Forfeited, p)
		} else {
			ev.Captured = append(ev.Captured, p)
		}
	}
	king := board.MyKing
	if mover == board.Opp {
		king = board.OppKing
	}
	ev.Promoted = after.CountCell(king) > before.CountCell(king)
	return ev
}

// positionChanged runs after every turn change.
func (g *Game) positionChanged() {
	g.gen++
	g.clearHint()
	g.checkGameEnd()
	g.maybeStartAI()
}

func (g *Game) clearSelection() {
	g.selected = board.NoCoord
	g.candidates = nil
	g.dragging = false
	g.dragFrom = board.NoCoord
}

// checkGameEnd ends the game once a side has no pieces or no moves.
func (g *Game) checkGameEnd() {
	over, winner := g.board.GameOver()
	if !over || g.gameOver {
		return
	}
	g.gameOver = true
	g.gameResult = sideName(winner) + " wins"
	if g.mode == storage.ModeHumanVsComputer {
		if winner == g.humanSide {
			g.gameResult = "You win!"
		} else {
			g.gameResult = "Computer wins"
		}
	}
	log.Printf("[GAME] %s after %d plies", g.gameResult, len(g.history))
	g.feedback.OnGameOver(g.gameResult)
	g.recordResult(winner)
}

// recordResult adds the finished game to the persistent stats.
func (g *Game) recordResult(winner board.Side) {
	if g.storage == nil {
		return
	}
	result := storage.GameResult{
		Won:        winner == g.humanSide,
		Mode:       g.mode,
		Difficulty: g.difficulty,
		Plies:      len(g.history),
		Duration:   time.Since(g.startTime),
	}
	if err := g.storage.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
		return
	}
	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}
}

// maybeStartAI starts the computer's search when it is its turn.
func (g *Game) maybeStartAI() {
	if g.gameOver || g.ai.running || g.mode != storage.ModeHumanVsComputer || g.board.Turn() == g.humanSide {
		return
	}
	log.Printf("[AI] Starting search for %s at %s", g.board.Turn(), g.difficulty)
	pos := g.board.Clone()
	g.ai.eng.SetDifficulty(engineDifficulty(g.difficulty))
	g.ai.start(g.gen, func(ctx context.Context, eng *engine.Engine) board.Move {
		return eng.ChooseMove(ctx, pos)
	})
}

// checkAIMove plays the computer's move once its search finishes.
func (g *Game) checkAIMove() {
	m, gen, ok := g.ai.poll()
	if !ok {
		return
	}
	if gen != g.gen {
		g.maybeStartAI()
		return
	}
	log.Printf("[AI] Received move from engine: %v", m)
	if m.IsNone() {
		g.checkGameEnd()
		return
	}
	g.tryMove(m.From, m.To)
}

// hintsEnabled reports whether hints are shown: on Easy, on the human's turn.
func (g *Game) hintsEnabled() bool {
	return g.prefs.ShowHints && g.difficulty == storage.DifficultyEasy && g.humanToMove()
}

func (g *Game) showingHint() bool {
	return g.hintsEnabled() && !g.hintMove.IsNone() && g.selected == board.NoCoord
}

// startHint searches the human's position for a suggested move.
func (g *Game) startHint() {
	if !g.hintsEnabled() || g.hint.running || !g.hintMove.IsNone() {
		return
	}
	depth := g.prefs.HintDepth
	if depth <= 0 {
		depth = storage.DefaultPreferences().HintDepth
	}
	pos := g.board.Clone()
	g.hint.start(g.gen, func(ctx context.Context, eng *engine.Engine) engine.Result {
		return eng.SearchWithLimits(ctx, pos, engine.SearchLimits{Depth: depth, MoveTime: 500 * time.Millisecond})
	})
}

func (g *Game) checkHint() {
	res, gen, ok := g.hint.poll()
	if !ok || gen != g.gen {
		return
	}
	g.hintMove = res.Move
	log.Printf("[Assist] Hint %v (score %d, depth %d)", res.Move, res.Score, res.Depth)
}

// clearHint drops the current hint and any search for it.
func (g *Game) clearHint() {
	g.hint.stop()
	g.hintMove = board.NoMove
}

// NewGameAction starts a new game with the current settings.
func (g *Game) NewGameAction() {
	g.ai.stop()
	g.clearHint()
	g.board = board.NewGameWithRules(g.rules())
	g.history = nil
	g.lastMove = board.NoMove
	g.gen++
	g.clearSelection()
	g.gameOver = false
	g.gameResult = ""
	g.startTime = time.Now()
	g.maybeStartAI()
}

// SetMode switches between playing a person and the computer.
func (g *Game) SetMode(m storage.GameMode) {
	if m == g.mode {
		return
	}
	g.mode = m
	g.prefs.GameMode = m
	g.savePreferences()
	g.maybeStartAI()
}

// SetDifficulty sets the computer's strength from its next search on.
func (g *Game) SetDifficulty(d storage.Difficulty) {
	g.difficulty = d
	if g.prefs.Difficulty != d {
		g.prefs.Difficulty = d
		g.savePreferences()
	}
}

func engineDifficulty(d storage.Difficulty) engine.Difficulty {
	switch d {
	case storage.DifficultyEasy:
		return engine.Easy
	case storage.DifficultyHard:
		return engine.Hard
	default:
		return engine.Medium
	}
}

// setHumanSide chooses the human's side and faces the board that way.
func (g *Game) setHumanSide(s storage.PlayerSide) {
	g.humanSide = board.My
	if s == storage.SideOpp {
		g.humanSide = board.Opp
	}
	g.renderer.SetFlipped(g.humanSide == board.Opp)
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	g.settingsModal.Show(g.prefs, func(prefs *storage.UserPreferences) {
		g.ai.stop()
		g.prefs = prefs
		g.applyPreferences()
		g.savePreferences()
		g.gen++
		g.clearHint()
		g.maybeStartAI()
	})
}

// SaveDiagram writes the current position as a PNG to the export directory.
func (g *Game) SaveDiagram() {
	dir, err := storage.GetExportDir()
	if err != nil {
		g.feedback.Error("No export directory: " + err.Error())
		return
	}
	if g.diagram == nil {
		if g.diagram, err = render.New(64); err != nil {
			g.feedback.Error("Diagram failed: " + err.Error())
			return
		}
	}
	path := filepath.Join(dir, "checkers-"+time.Now().Format("20060102-150405")+".png")
	hl := render.Highlights{LastMove: g.lastMove}
	if err := g.diagram.SaveFile(path, g.board, hl); err != nil {
		g.feedback.Error("Diagram failed: " + err.Error())
		return
	}
	log.Printf("Diagram written to %s", path)
	g.feedback.Info("Diagram saved")
}

// Board returns the current position.
func (g *Game) Board() *board.Board {
	return g.board
}

// History returns the plies in notation, "pass" for a forfeited turn.
func (g *Game) History() []string {
	return g.history
}

func (g *Game) Mode() storage.GameMode {
	return g.mode
}

func (g *Game) Difficulty() storage.Difficulty {
	return g.difficulty
}

func (g *Game) Username() string {
	return g.username
}

// Stats returns the persistent statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// StatusText returns the status line and its color.
func (g *Game) StatusText() (string, color.Color) {
	switch {
	case g.gameOver:
		return g.gameResult, statusGameOver
	case g.ai.running:
		return "AI thinking...", statusThinking
	case g.mode == storage.ModeHumanVsComputer && g.board.Turn() == g.humanSide:
		return "Your move (" + sideName(g.humanSide) + ")", textPrimary
	default:
		return sideName(g.board.Turn()) + " to move", textPrimary
	}
}

// Close stops the searches and releases the engines and storage.
func (g *Game) Close() {
	g.ai.stop()
	g.hint.stop()
	g.ai.eng.Close()
	g.hint.eng.Close()
	if g.storage != nil {
		g.storage.Close()
	}
}
