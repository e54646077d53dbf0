package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mineterm/mineterm/internal/config"
	"github.com/mineterm/mineterm/internal/core"
	"github.com/mineterm/mineterm/internal/mines"
	"github.com/mineterm/mineterm/internal/storage"
)

// Model is the Bubble Tea model that drives one game session. Input is
// collected into a frame and applied on the next tick, so the engine sees
// at most one batch of actions per tick regardless of key repeat rate.
type Model struct {
	game   *mines.Game
	screen *core.Screen
	theme  config.Theme
	config core.RuntimeConfig

	// store may be nil when persistence is unavailable; wins are then
	// simply not recorded.
	store *storage.Store

	inputFrame core.InputFrame
	keyMapper  *KeyMapper

	quitting    bool
	resultSaved bool
}

// NewModel creates a model for the given game.
func NewModel(game *mines.Game, store *storage.Store, theme config.Theme, cfg core.RuntimeConfig) *Model {
	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		theme:      theme,
		config:     cfg,
		store:      store,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The game survives resizes; only the buffer changes.
		if msg.Width > 0 && msg.Height > 0 {
			m.screen.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		m.handleTick(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleTick applies the collected input frame to the game and advances
// the timer. Restart wins over other actions in the same frame.
func (m *Model) handleTick(now time.Time) {
	frame := m.inputFrame
	m.inputFrame = core.NewInputFrame()

	switch {
	case frame.Has(core.ActionRestart):
		m.game.Restart()
		m.resultSaved = false
	default:
		if frame.Has(core.ActionUp) {
			m.game.MoveCursor(mines.Up)
		}
		if frame.Has(core.ActionDown) {
			m.game.MoveCursor(mines.Down)
		}
		if frame.Has(core.ActionLeft) {
			m.game.MoveCursor(mines.Left)
		}
		if frame.Has(core.ActionRight) {
			m.game.MoveCursor(mines.Right)
		}
		if frame.Has(core.ActionFlag) {
			wasFinished := m.game.Finished()
			m.game.ActFlag()
			if wasFinished && !m.game.Finished() {
				m.resultSaved = false
			}
		}
		if frame.Has(core.ActionTrip) {
			wasFinished := m.game.Finished()
			m.game.ActTrip()
			if wasFinished && !m.game.Finished() {
				m.resultSaved = false
			}
		}
	}

	m.game.Tick(now)

	if m.game.Status() == mines.Won && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}
}

// saveResult records a win in the store, keyed by board signature.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	board := m.game.Board()
	key := storage.BoardKey(board.Width(), board.Height(), board.MineCount())
	// A failed save is not worth interrupting play for.
	_, _ = m.store.SaveResult(key, m.game.Elapsed().Milliseconds())
}

// View renders the current game state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	DrawGame(m.screen, m.game, m.theme)
	return RenderScreen(m.screen)
}

// Run starts the interactive game loop in the local terminal.
func Run(game *mines.Game, store *storage.Store, theme config.Theme, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, theme, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: program error: %w", err)
	}
	return nil
}
