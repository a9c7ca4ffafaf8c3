package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/registry"
	"github.com/vovakirdan/wrapsnake/internal/storage"
)

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	scoreSaved bool // Current run has been written to the store
	canGoBack  bool // Back returns to a menu instead of being ignored
	backToMenu bool
	quitting   bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger reports failed score writes to logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithBackToMenu lets Back leave a paused or finished game.
func WithBackToMenu() ModelOption {
	return func(m *Model) {
		m.canGoBack = true
	}
}

// NewModel creates a Bubble Tea model for the given game.
// A zero seed is replaced with the current time.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
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

// handleKey records the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.canGoBack && m.inputFrame.Has(core.ActionBack) &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize resizes the screen. A game that has not started yet is
// rebuilt so an auto-sized board follows the window.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.Started {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runID = uuid.NewString()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun writes the current run to the store once. Runs without a
// score are not recorded.
func (m *Model) saveRun() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		RunID:  m.runID,
		Score:  m.gameState.Score,
	}
	if r, ok := m.game.(registry.Reporter); ok {
		report := r.Report()
		entry.Score = report.Score
		entry.Length = report.Length
		entry.GridSize = report.GridSize
		entry.Outcome = report.Outcome
	}

	if m.store == nil || entry.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(entry); err != nil && m.logger != nil {
		m.logger.Warn("could not save score", "game", entry.GameID, "run", entry.RunID, "error", err)
	}
}

// saveScreenshot writes the current frame as plain text under ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// RunID identifies the current run in the score store.
func (m Model) RunID() string {
	return m.runID
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts...),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
