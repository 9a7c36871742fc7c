package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpHeight is the number of rows kept below the game for the help bar.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// lengther is implemented by games that report their snake length.
type lengther interface {
	Length() int
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string // Identifies the current round in the score table
	scoreSaved bool   // Whether the score of the current round has been saved
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) *Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return &Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
	}
}

// Init starts the game and the tick loop.
func (m *Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.logger.Info("round started", "game", m.game.ID(), "run", m.runID, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey buffers the action for the next tick.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	restarted := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if result.Recovered != nil {
		m.logger.Error("game recovered from a fault", "game", m.game.ID(), "run", m.runID, "error", result.Recovered)
		m.newRound()
	}
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !wasOver:
		m.saveScore()
	case wasOver && !m.gameState.GameOver, restarted && result.Recovered == nil:
		m.newRound()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) newRound() {
	m.runID = uuid.NewString()
	m.scoreSaved = false
	m.logger.Info("round started", "game", m.game.ID(), "run", m.runID)
}

// saveScore stores a finished round once. Empty rounds are skipped.
func (m *Model) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true

	outcome := storage.OutcomeGameOver
	if m.gameState.Won {
		outcome = storage.OutcomeWin
	}
	entry := storage.ScoreEntry{
		RunID:   m.runID,
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: outcome,
	}
	if l, ok := m.game.(lengther); ok {
		entry.Length = l.Length()
	}

	m.logger.Info("round finished", "game", entry.GameID, "run", entry.RunID, "score", entry.Score, "outcome", outcome)
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("score not saved", "error", err)
	}
}

// saveScreenshot writes the current screen to ~/.arcade/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	return path, nil
}

// View renders the game screen with the help bar below it.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
