package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// DefaultOwner keys saved games of the local player.
const DefaultOwner = "local"

// resumable is implemented by games whose board can be saved and restored.
type resumable interface {
	Snapshot() t2048.Snapshot
	Restore(snap t2048.Snapshot) error
	SeedBest(best int)
}

// resizable is implemented by games that can follow terminal resizes
// without restarting.
type resizable interface {
	Resize(w, h int)
}

// Options configures a game model.
type Options struct {
	Store  *storage.Store  // Scores and saved games; nil disables persistence
	Logger *log.Logger     // Receives persistence failures; nil discards
	Owner  string          // Key for saved games (local user or SSH user)
	Resume *t2048.Snapshot // Continue this saved game instead of a fresh board
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	owner      string
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone programs exit on back; sessions switch views
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a model for game, starts a board and restores
// opts.Resume when given. A saved game that fails validation is discarded.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	owner := opts.Owner
	if owner == "" {
		owner = DefaultOwner
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		owner:      owner,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}

	game.Reset(cfg)
	m.restore(opts.Resume)
	m.gameState = game.State()

	return m
}

// restore applies a saved game and the stored high score.
func (m *Model) restore(snap *t2048.Snapshot) {
	r, ok := m.game.(resumable)
	if !ok {
		return
	}

	if snap != nil {
		if err := r.Restore(*snap); err != nil {
			m.logger.Warn("discarding saved game", "game", m.game.ID(), "owner", m.owner, "error", err)
			m.deleteSnapshot()
		}
	}

	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load high score", "game", m.game.ID(), "error", err)
		return
	}
	r.SeedBest(best)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events. The board is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizable); ok {
		r.Resize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A discarded game still counts unless its loss was already recorded.
	if result.Restarted {
		if !m.scoreSaved {
			m.saveScore(result.FinalScore)
		}
		m.scoreSaved = false
	}

	if result.Changed {
		m.saveSnapshot()
	}

	// Save score on game over (once); a lost board is not resumable.
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore(m.gameState.Score)
		m.deleteSnapshot()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records a non-zero score. Failures are logged; play continues.
func (m Model) saveScore(score int) {
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("cannot save score", "game", m.game.ID(), "score", score, "error", err)
	}
}

// saveSnapshot persists the current board.
func (m Model) saveSnapshot() {
	r, ok := m.game.(resumable)
	if m.store == nil || !ok {
		return
	}
	if err := m.store.SaveSnapshot(m.owner, m.game.ID(), r.Snapshot()); err != nil {
		m.logger.Warn("cannot save game", "game", m.game.ID(), "owner", m.owner, "error", err)
	}
}

func (m Model) deleteSnapshot() {
	if m.store == nil {
		return
	}
	if err := m.store.DeleteSnapshot(m.owner, m.game.ID()); err != nil {
		m.logger.Warn("cannot delete saved game", "game", m.game.ID(), "owner", m.owner, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game. It returns when the player
// quits or goes back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
