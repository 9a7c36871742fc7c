package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Difficulties lists the presets the menu cycles through. The empty preset
// keeps whatever the config file says.
var Difficulties = []string{"", "easy", "normal", "hard", "fixed"}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem is one registered variant with its best stored score.
type MenuItem struct {
	GameID    string
	Title     string
	Summary   string
	HighScore int
}

// MenuResult holds what the user picked.
type MenuResult struct {
	GameID          string
	Difficulty      string // "" keeps the configured difficulty
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the variant picker.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int // index into Difficulties
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	result     MenuResult
	done       bool
}

// NewMenuModel lists every registered variant. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, difficulty string) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if sc, err := config.LoadSnake(g.ID, ""); err == nil {
			item.Summary = sc.Summary()
		}
		if store != nil {
			if high, err := store.HighScore(g.ID); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, d := range Difficulties {
		if d == difficulty {
			m.difficulty = i
		}
	}
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish(MenuResult{Quit: true})

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))

	case key.Matches(msg, m.keys.Difficulty):
		step := 1
		if k := msg.String(); k == "left" || k == "h" {
			step = len(Difficulties) - 1
		}
		m.difficulty = (m.difficulty + step) % len(Difficulties)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			return m.finish(MenuResult{GameID: m.items[m.cursor].GameID})
		}

	case key.Matches(msg, m.keys.Scores):
		return m.finish(MenuResult{WantsScoreboard: true})
	}
	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Config = m.config
	r.Difficulty = Difficulties[m.difficulty]
	m.result = r
	m.done = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S N A K E  "), w))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%-22s best %d", item.Title, item.HighScore)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}
	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(m.items[m.cursor].Summary), w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Difficulty()), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), w))
	b.WriteString("\n")
	return b.String()
}

// Difficulty returns the chosen preset, "default" for none.
func (m MenuModel) Difficulty() string {
	if d := Difficulties[m.difficulty]; d != "" {
		return d
	}
	return "default"
}

// Result returns the user's choice. A menu closed without a choice quits.
func (m MenuModel) Result() MenuResult {
	if !m.done {
		return MenuResult{Config: m.config, Difficulty: Difficulties[m.difficulty], Quit: true}
	}
	return m.result
}

// centerText pads text so it sits in the middle of width printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu shows the menu until the user picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, difficulty string) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg, difficulty), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: difficulty}, fmt.Errorf("tui: menu: %w", err)
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Difficulty: difficulty, Quit: true}, nil
	}
	return m.Result(), nil
}
