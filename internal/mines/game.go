package mines

import (
	"math/rand"
	"time"

	"github.com/mineterm/mineterm/internal/core"
)

// Status is the game lifecycle. A game leaves InProgress exactly once, via
// a board outcome, and becomes immutable except for restart.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Direction is a cursor movement intent.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Game wraps a Board with cursor-driven play, elapsed-time tracking and the
// win/loss lifecycle. It translates player intents into board operations.
// The timer is driven by the render loop calling Tick, not by an internal
// goroutine, and starts counting at the first successful action so idle
// time before the first move does not count.
type Game struct {
	board  *Board
	status Status

	cursorRow int
	cursorCol int

	rng *rand.Rand

	started   bool
	startedAt time.Time
	elapsed   time.Duration
}

// NewGame constructs a game over a fresh board with no mines placed.
// Returns ErrInvalidConfig (wrapped) for bad dimensions or mine count.
func NewGame(width, height, mineCount int, seed int64) (*Game, error) {
	rng := rand.New(rand.NewSource(seed))
	board, err := NewBoard(width, height, mineCount, rng)
	if err != nil {
		return nil, err
	}
	return &Game{board: board, rng: rng}, nil
}

// Board exposes the underlying board for read-only HUD and grid queries.
func (g *Game) Board() *Board { return g.board }

// Status returns the current lifecycle state.
func (g *Game) Status() Status { return g.status }

// Finished reports whether the game has left InProgress.
func (g *Game) Finished() bool { return g.status != InProgress }

// Cursor returns the current selection as (row, col).
func (g *Game) Cursor() (int, int) { return g.cursorRow, g.cursorCol }

// Elapsed returns the play time so far. Frozen once the game finishes.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// MoveCursor moves the selection one cell, clamped to the board with no
// wraparound. Has no effect once the game has finished.
func (g *Game) MoveCursor(dir Direction) {
	if g.status != InProgress {
		return
	}
	switch dir {
	case Up:
		g.cursorRow--
	case Down:
		g.cursorRow++
	case Left:
		g.cursorCol--
	case Right:
		g.cursorCol++
	}
	g.cursorRow = core.Clamp(g.cursorRow, 0, g.board.Height()-1)
	g.cursorCol = core.Clamp(g.cursorCol, 0, g.board.Width()-1)
}

// ActFlag toggles a flag on the cursor cell. After a finished game it
// restarts instead, like ActTrip, so both space and enter progress.
func (g *Game) ActFlag() {
	if g.status != InProgress {
		g.Restart()
		return
	}
	// Cursor is clamped, so the error path is unreachable in practice.
	toggled, err := g.board.ToggleFlag(g.cursorRow, g.cursorCol)
	if err == nil && toggled {
		g.markStarted()
	}
}

// ActTrip activates the cursor cell: a hidden cell is revealed, a revealed
// numbered cell chord-reveals its neighborhood. The board outcome drives
// the lifecycle. After a win or loss, tripping restarts with the same
// parameters on a fresh unplaced board.
func (g *Game) ActTrip() {
	if g.status != InProgress {
		g.Restart()
		return
	}

	cell, err := g.board.CellAt(g.cursorRow, g.cursorCol)
	if err != nil {
		return
	}

	before := g.board.RevealedCount()
	var out Outcome
	if cell.State == Revealed {
		out, err = g.board.ChordReveal(g.cursorRow, g.cursorCol)
	} else {
		out, err = g.board.Reveal(g.cursorRow, g.cursorCol)
	}
	if err != nil {
		return
	}

	if out == Loss || g.board.RevealedCount() != before {
		g.markStarted()
	}

	switch out {
	case Win:
		g.status = Won
	case Loss:
		g.status = Lost
	}
}

// Restart reconstructs a fresh unplaced board with the same dimensions and
// mine count, and resets lifecycle, elapsed time and cursor.
func (g *Game) Restart() {
	board, err := NewBoard(g.board.Width(), g.board.Height(), g.board.MineCount(), g.rng)
	if err != nil {
		// Parameters were validated at construction and never change.
		return
	}
	g.board = board
	g.status = InProgress
	g.cursorRow, g.cursorCol = 0, 0
	g.started = false
	g.startedAt = time.Time{}
	g.elapsed = 0
}

// Tick advances the elapsed timer from wall-clock time supplied by the
// render loop. The first tick after the first successful action anchors the
// clock; once the game finishes the timer freezes.
func (g *Game) Tick(now time.Time) {
	if g.status != InProgress || !g.started {
		return
	}
	if g.startedAt.IsZero() {
		g.startedAt = now
		return
	}
	g.elapsed = now.Sub(g.startedAt)
}

// MinesRemaining forwards the board's unclamped flag arithmetic for the HUD.
func (g *Game) MinesRemaining() int {
	return g.board.MinesRemaining()
}

func (g *Game) markStarted() {
	g.started = true
}
