package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const scoreboardLimit = 50

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel shows stored results for one variant at a time.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	variant  int
	winsOnly bool

	entries []storage.ScoreEntry
	stats   *storage.GameStats

	table  table.Model
	help   help.Model
	keys   ScoreKeyMap
	width  int
	height int

	back bool
	quit bool
}

// NewScoreboardModel loads the first registered variant.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
		keys:     DefaultScoreKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = newScoreTable(height)
	m.reload()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 6},
			{Title: "Result", Width: 9},
			{Title: "Length", Width: 6},
			{Title: "Played", Width: 12},
			{Title: "Run", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("10")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// GameID returns the variant currently shown, or "" when none is registered.
func (m ScoreboardModel) GameID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.variant].ID
}

func (m *ScoreboardModel) reload() {
	m.entries, m.stats = nil, nil
	if id := m.GameID(); id != "" && m.store != nil {
		if entries, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.entries = entries
		}
		if stats, err := m.store.Stats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// rows ranks the loaded entries, keeping wins only when the filter is on.
// Ranks follow the unfiltered order.
func (m ScoreboardModel) rows() []table.Row {
	var rows []table.Row
	for i, e := range m.entries {
		if m.winsOnly && e.Outcome != storage.OutcomeWin {
			continue
		}
		result := "game over"
		if e.Outcome == storage.OutcomeWin {
			result = "win"
		}
		run := e.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			result,
			strconv.Itoa(e.Length),
			e.CreatedAt.Format("Jan 02 15:04"),
			run,
		})
	}
	return rows
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Variant):
			if n := len(m.variants); n > 0 {
				step := 1
				if msg.String() == "left" || msg.String() == "h" {
					step = n - 1
				}
				m.variant = (m.variant + step) % n
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.WinsOnly):
			m.winsOnly = !m.winsOnly
			m.table.SetRows(m.rows())
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-10, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.back || m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.variant {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		msg := "No scores recorded yet."
		if m.winsOnly {
			msg = "No wins recorded yet."
		}
		body = boardDimStyle.Italic(true).Padding(1, 4).Render(msg)
	}
	for _, line := range strings.Split(boardFrameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.stats != nil && m.stats.GamesCount > 0 {
		line := fmt.Sprintf("Games: %d  Wins: %d  Best: %d  Average: %.1f",
			m.stats.GamesCount, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if m.winsOnly {
		b.WriteString(centerText(boardDimStyle.Render("showing wins only"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.back }

// IsQuitting reports whether the user asked to leave the program.
func (m ScoreboardModel) IsQuitting() bool { return m.quit }

// RunScoreboard shows the scoreboard until the user leaves it.
// goBack is true when the menu should be shown again.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, fmt.Errorf("tui: scoreboard: %w", err)
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
