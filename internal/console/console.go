// Package console implements a line-oriented text protocol for playing and
// analysing draughts positions.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/render"
)

// diagramSquareSize is the square size of diagrams written by "png".
const diagramSquareSize = 48

// Console reads commands from in and writes responses to out.
type Console struct {
	engine   *engine.Engine
	board    *board.Board
	rules    board.Rules
	lastMove board.Move
	diagram  *render.Diagram

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // Serializes writes to out

	// Search state
	searching  bool
	searchDone chan struct{}
	cancel     context.CancelFunc
}

// New creates a console over eng starting from the initial position.
func New(eng *engine.Engine, in io.Reader, out io.Writer) *Console {
	rules := board.DefaultRules()
	return &Console{
		engine:   eng,
		board:    board.NewGameWithRules(rules),
		rules:    rules,
		lastMove: board.NoMove,
		in:       in,
		out:      out,
	}
}

// Board returns the current position.
func (c *Console) Board() *board.Board {
	return c.board
}

// Run reads commands until "quit" or end of input. A search still running
// at end of input is allowed to finish.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		if cmd == "quit" {
			c.handleStop()
			return nil
		}
		if cmd == "stop" {
			c.handleStop()
			continue
		}
		c.wait()

		switch cmd {
		case "isready":
			c.println("readyok")
		case "newgame":
			c.handleNewGame()
		case "position":
			c.handlePosition(args)
		case "move":
			c.handleMove(args)
		case "go":
			c.handleGo(args)
		case "play":
			c.handlePlay(args)
		case "moves":
			c.handleMoves(args)
		case "status":
			c.handleStatus()
		case "d":
			c.println(c.board.String())
		case "layout":
			c.println(c.board.Layout())
		case "perft":
			c.handlePerft(args)
		case "eval":
			c.handleEval()
		case "stats":
			c.handleStats()
		case "png":
			c.handlePNG(args)
		case "setoption":
			c.handleSetOption(args)
		default:
			c.infof("Unknown command: %s", cmd)
		}
	}

	c.wait()
	return scanner.Err()
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// infof reports a message as an "info string" line.
func (c *Console) infof(format string, args ...any) {
	c.printf("info string "+format+"\n", args...)
}

// handleNewGame resets the engine and the position.
func (c *Console) handleNewGame() {
	c.engine.Clear()
	c.board = board.NewGameWithRules(c.rules)
	c.lastMove = board.NoMove
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves c3-d4 f6-e5
//   - position layout <ranks> <side>
//   - position layout <ranks> <side> moves c3-d4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		c.infof("Usage: position startpos|layout <ranks> <side> [moves ...]")
		return
	}

	setup, moves := args, []string(nil)
	for i, arg := range args {
		if arg == "moves" {
			setup, moves = args[:i], args[i+1:]
			break
		}
	}

	var b *board.Board
	switch setup[0] {
	case "startpos":
		b = board.NewGame()
	case "layout":
		parsed, err := board.ParseLayout(strings.Join(setup[1:], " "))
		if err != nil {
			c.infof("Invalid layout: %v", err)
			return
		}
		b = parsed
	default:
		c.infof("Unknown position type: %s", setup[0])
		return
	}
	b.SetRules(c.rules)

	last := board.NoMove
	for _, moveStr := range moves {
		m, err := board.ParseMove(moveStr)
		if err == nil {
			err = b.MakeMove(m)
		}
		if err != nil {
			c.infof("Invalid move: %s (%v)", moveStr, err)
			return
		}
		last = m
	}

	c.board = b
	c.lastMove = last
}

// handleMove applies a move given as "c3-d4" or "c3 d4".
func (c *Console) handleMove(args []string) {
	m, err := board.ParseMove(strings.Join(args, ""))
	if err != nil {
		c.infof("Invalid move: %v", err)
		return
	}
	c.apply(m)
}

// apply plays m on the live board and reports the outcome.
func (c *Console) apply(m board.Move) {
	if err := c.board.MakeMove(m); err != nil {
		c.infof("Invalid move: %s (%v)", m, err)
		if errors.Is(err, board.ErrIllegalMove) && c.rules.IllegalMoves == board.PassTurnOnIllegal {
			c.infof("Turn passed to %s", c.board.Turn())
		}
		return
	}
	c.lastMove = m
	if over, winner := c.board.GameOver(); over {
		c.printf("result %s\n", winner)
	}
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Easy     bool
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
}

// parseGoOptions parses "go" and "play" command arguments.
func parseGoOptions(args []string) (GoOptions, error) {
	var opts GoOptions

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "easy":
			opts.Easy = true
			continue
		case "depth", "nodes", "movetime":
		default:
			return opts, fmt.Errorf("unknown go option %q", args[i])
		}

		if i+1 >= len(args) {
			return opts, fmt.Errorf("missing value for %s", args[i])
		}
		n, err := strconv.ParseUint(args[i+1], 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %w", args[i], err)
		}
		switch args[i] {
		case "depth":
			opts.Depth = int(n)
		case "nodes":
			opts.Nodes = n
		case "movetime":
			opts.MoveTime = time.Duration(n) * time.Millisecond
		}
		i++
	}

	return opts, nil
}

// think picks a move for the side to move of pos. Without options it plays
// at the engine's difficulty.
func (c *Console) think(ctx context.Context, pos *board.Board, opts GoOptions) board.Move {
	switch {
	case opts.Easy:
		return c.engine.ChooseHeuristicMove(pos)
	case opts.Depth == 0 && opts.Nodes == 0 && opts.MoveTime == 0:
		return c.engine.ChooseMove(ctx, pos)
	}

	limits := engine.SearchLimits{Depth: opts.Depth, Nodes: opts.Nodes, MoveTime: opts.MoveTime}
	if limits.Depth == 0 {
		limits.Depth = engine.MaxDepth
	}
	return c.engine.SearchWithLimits(ctx, pos, limits).Move
}

// handleGo starts a search in the background. "stop" ends it early.
func (c *Console) handleGo(args []string) {
	opts, err := parseGoOptions(args)
	if err != nil {
		c.infof("%v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.engine.OnInfo = c.sendInfo
	c.searching = true
	c.searchDone = make(chan struct{})
	c.cancel = cancel
	pos := c.board.Clone()

	go func() {
		defer close(c.searchDone)
		defer cancel()
		m := c.think(ctx, pos, opts)
		c.printf("bestmove %s\n", m)
	}()
}

// handlePlay searches and applies the chosen move.
func (c *Console) handlePlay(args []string) {
	opts, err := parseGoOptions(args)
	if err != nil {
		c.infof("%v", err)
		return
	}

	c.engine.OnInfo = nil
	m := c.think(context.Background(), c.board.Clone(), opts)
	if m.IsNone() {
		c.println("bestmove 0000")
		return
	}
	c.printf("bestmove %s\n", m)
	c.apply(m)
}

// sendInfo outputs one iteration of the search.
func (c *Console) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	parts = append(parts, "pv "+info.Move.String())

	c.printf("info %s\n", strings.Join(parts, " "))
}

// wait blocks until a running search has printed its move.
func (c *Console) wait() {
	if c.searching {
		<-c.searchDone
		c.searching = false
	}
}

// handleStop stops the current search.
func (c *Console) handleStop() {
	if c.searching {
		c.cancel()
		c.engine.Stop()
		c.wait()
	}
}

// handleMoves lists the legal moves of the side to move, or the candidates
// of one piece.
func (c *Console) handleMoves(args []string) {
	if len(args) == 0 {
		var moves []string
		for _, m := range c.board.Moves(c.board.Turn()) {
			moves = append(moves, m.String())
		}
		c.printf("moves %s\n", strings.Join(moves, " "))
		return
	}

	sq, err := board.ParseCoord(args[0])
	if err != nil {
		c.infof("%v", err)
		return
	}
	var cands []string
	for _, cand := range c.board.CandidateMoves(sq) {
		cands = append(cands, cand.String())
	}
	c.printf("moves %s: %s\n", sq, strings.Join(cands, " "))
}

// handleStatus reports the side to move, the piece counts and the result.
func (c *Console) handleStatus() {
	b := c.board
	c.printf("turn %s\n", b.Turn())
	c.printf("pieces My %d Opp %d\n", b.Count(board.My), b.Count(board.Opp))
	if over, winner := b.GameOver(); over {
		c.printf("result %s\n", winner)
	} else {
		c.println("result none")
	}
}

// handlePerft runs a perft test.
func (c *Console) handlePerft(args []string) {
	depth := 4
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			c.infof("Invalid depth: %s", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	nodes := c.engine.Perft(c.board, depth)
	elapsed := time.Since(start)

	c.printf("Nodes: %d\n", nodes)
	c.printf("Time: %v\n", elapsed)
}

// handleEval prints the static evaluation and its terms.
func (c *Console) handleEval() {
	my, opp := engine.Terms(c.board)
	c.printf("My:  kings %d men %d mobility %d threats %d\n", my.Kings, my.Men, my.Mobility, my.Threats)
	c.printf("Opp: kings %d men %d mobility %d threats %d\n", opp.Kings, opp.Men, opp.Mobility, opp.Threats)
	c.printf("eval %d\n", c.engine.Evaluate(c.board))
}

// handleStats prints cache statistics of the last search.
func (c *Console) handleStats() {
	st := c.engine.Stats()
	c.printf("nodes %d cachehits %d hitrate %.1f hashfull %d movecachehits %d\n",
		st.Nodes, st.CacheHits, st.TableHitRate, st.HashFull, st.MoveCacheHits)
}

// handlePNG writes a diagram of the position.
func (c *Console) handlePNG(args []string) {
	if len(args) != 1 {
		c.infof("Usage: png <file>")
		return
	}
	if c.diagram == nil {
		d, err := render.New(diagramSquareSize)
		if err != nil {
			c.infof("Failed to load sprites: %v", err)
			return
		}
		c.diagram = d
	}
	if err := c.diagram.SaveFile(args[0], c.board, render.Highlights{LastMove: c.lastMove}); err != nil {
		c.infof("%v", err)
		return
	}
	c.infof("Diagram written to %s", args[0])
}

// handleSetOption processes "setoption name <name> value <value>".
func (c *Console) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "difficulty":
		d, err := engine.ParseDifficulty(value)
		if err != nil {
			c.infof("%v", err)
			return
		}
		c.engine.SetDifficulty(d)
	case "kingsmovebackward":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			c.infof("Invalid value for KingsMoveBackward: %s", value)
			return
		}
		c.rules.KingsMoveBackward = enabled
		c.board.SetRules(c.rules)
	case "illegalmoves":
		switch strings.ToLower(value) {
		case "reject":
			c.rules.IllegalMoves = board.RejectIllegal
		case "pass":
			c.rules.IllegalMoves = board.PassTurnOnIllegal
		default:
			c.infof("Invalid value for IllegalMoves: %s (want reject or pass)", value)
			return
		}
		c.board.SetRules(c.rules)
	default:
		c.infof("Unknown option: %s", name)
	}
}
