package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2048").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.t2048/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Sides preselects a board size in the menu.
	Sides int
}

// SSHServer wraps a Wish SSH server. Every connection plays its own game;
// saved games are keyed by the SSH user name.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// nothing is persisted.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".t2048", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(), // Sessions without a PTY are refused
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, cfg, sshSession.User(), s.config.Sides, s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a SessionModel currently shows.
type sessionView int

const (
	viewMenu sessionView = iota
	viewResume
	viewScores
	viewGame
)

// SessionModel manages the full session flow:
// menu -> (resume prompt) -> game -> menu, with the scoreboard reachable from the menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	owner    string
	sides    int
	view     sessionView
	menu     MenuModel
	resume   ResumeModel
	scores   ScoreboardModel
	game     *Model
	pending  *MenuItem       // Variant chosen in the menu
	saved    *t2048.Snapshot // Saved game for pending, if any
	quitting bool
}

// NewSessionModel creates a new session model for owner.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, owner string, sides int, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		logger: logger,
		config: cfg,
		owner:  owner,
		sides:  sides,
		menu:   NewMenuModel(store, cfg, owner, sides),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewResume:
		return m.updateResume(msg)
	case viewScores:
		return m.updateScores(msg)
	case viewGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. Commands returned by the
// menu on exit (tea.Quit) are dropped so the session keeps running.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.pending = m.menu.Selected()
		m.saved = m.loadSnapshot(m.pending.GameID)
		if m.saved == nil {
			return m.startGame(nil)
		}
		m.resume = NewResumeModel(m.pending.Title, *m.saved, m.config.ScreenW, m.config.ScreenH)
		m.view = viewResume
		return m, m.resume.Init()
	}

	return m, cmd
}

// updateResume handles the continue/new game prompt.
func (m SessionModel) updateResume(msg tea.Msg) (tea.Model, tea.Cmd) {
	newResume, cmd := m.resume.Update(msg)
	if resumeModel, ok := newResume.(ResumeModel); ok {
		m.resume = resumeModel
	}

	switch m.resume.Choice() {
	case ResumeQuit:
		m.quitting = true
		return m, tea.Quit
	case ResumeBack:
		return m.backToMenu()
	case ResumeContinue:
		return m.startGame(m.saved)
	case ResumeNewGame:
		if m.store != nil {
			if err := m.store.DeleteSnapshot(m.owner, m.pending.GameID); err != nil {
				m.logger.Warn("cannot delete saved game", "game", m.pending.GameID, "error", err)
			}
		}
		return m.startGame(nil)
	}

	return m, cmd
}

// updateScores handles the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scoresModel, ok := newScores.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// startGame creates the chosen variant, optionally resuming a saved game.
func (m SessionModel) startGame(saved *t2048.Snapshot) (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.pending.GameID)
	if err != nil {
		// Shouldn't happen since menu only shows registered variants
		m.logger.Error("cannot create game", "game", m.pending.GameID, "error", err)
		return m.backToMenu()
	}

	m.config.Seed = time.Now().UnixNano()
	gameModel := NewModel(game, m.config, Options{
		Store:  m.store,
		Logger: m.logger,
		Owner:  m.owner,
		Resume: saved,
	})
	m.game = &gameModel
	m.view = viewGame
	m.pending = nil
	m.saved = nil

	return m, m.game.Init()
}

// backToMenu rebuilds the menu so best scores and saved markers are fresh.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config, m.owner, m.sides)
	m.view = viewMenu
	m.pending = nil
	m.saved = nil
	return m, m.menu.Init()
}

// loadSnapshot returns the owner's saved game for gameID, nil if none or unreadable.
func (m SessionModel) loadSnapshot(gameID string) *t2048.Snapshot {
	if m.store == nil {
		return nil
	}
	snap, err := m.store.LoadSnapshot(m.owner, gameID)
	if err != nil {
		m.logger.Warn("cannot load saved game", "game", gameID, "error", err)
		return nil
	}
	return snap
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewResume:
		return m.resume.View()
	case viewScores:
		return m.scores.View()
	case viewGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}
