package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wrapsnake/internal/registry"
	"github.com/vovakirdan/wrapsnake/internal/storage"
)

const (
	scoreRows       = 100 // Rows loaded per variant
	wideTableMinCol = 60  // Terminal width that fits the length and board columns
)

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

type scoreKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var scoreboardKeys = scoreKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev variant")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows the best runs of one variant at a time.
type ScoreboardModel struct {
	store     *storage.Store
	variants  []registry.Info
	current   int
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	width     int
	height    int
	wideTable bool // Length and board columns are shown
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on gameID, or on the
// first registered variant when gameID is empty or unknown.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
	}
	for i, v := range m.variants {
		if v.ID == gameID {
			m.current = i
		}
	}
	m.resize(width, height)
	m.load()
	return m
}

func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.wideTable = width-4 >= wideTableMinCol

	cols := []table.Column{{Title: "Rank", Width: 5}, {Title: "Score", Width: 6}}
	if m.wideTable {
		cols = append(cols, table.Column{Title: "Length", Width: 7}, table.Column{Title: "Board", Width: 6})
	}
	cols = append(cols, table.Column{Title: "Outcome", Width: 8}, table.Column{Title: "Date", Width: 13})

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
		table.WithStyles(styles),
	)
	m.fillRows()
}

// load fetches rows and totals for the current variant.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		m.scores, m.loadErr = m.store.TopScores(id, scoreRows)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GameStats(id)
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		outcome := s.Outcome
		if outcome == "" {
			outcome = "-"
		}
		row := table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprint(s.Score)}
		if m.wideTable {
			row = append(row, fmt.Sprint(s.Length), fmt.Sprintf("%dx%d", s.GridSize, s.GridSize))
		}
		rows = append(rows, append(row, outcome, s.CreatedAt.Format("Jan 02 15:04")))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// switchVariant moves by delta through the variants, wrapping at both ends.
func (m *ScoreboardModel) switchVariant(delta int) {
	if n := len(m.variants); n > 0 {
		m.current = ((m.current+delta)%n + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard. Back and quit both end a
// standalone program; a session reads IsGoingBack instead.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, scoreboardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, scoreboardKeys.Next):
			m.switchVariant(1)
			return m, nil
		case key.Matches(msg, scoreboardKeys.Prev):
			m.switchVariant(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.variants) > 0 {
		title += " - " + m.variants[m.current].Title
	}

	parts := []string{
		scoreTitle.Render(centerText(title, m.width)),
		centerText(m.tabs(), m.width),
		centerText(faintStyle.Render(m.summary()), m.width),
		centerText(boxStyle.Render(m.body()), m.width),
		faintStyle.Render(m.help.View(scoreboardKeys)),
	}
	return strings.Join(parts, "\n\n")
}

// tabs lists the variants, or only the current one when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.variants) == 0 {
		return ""
	}
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(v.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.variants[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  best %d  avg %.1f  wins %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.Wins)
}

func (m ScoreboardModel) body() string {
	empty := faintStyle.Italic(true).Padding(1, 3)
	switch {
	case m.store == nil:
		return empty.Render("Score database unavailable.")
	case m.loadErr != nil:
		return empty.Render(fmt.Sprintf("Could not load scores:\n%v", m.loadErr))
	case len(m.scores) == 0:
		return empty.Render("No scores recorded yet.\nEat something to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user pressed back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Scores returns the rows currently shown.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// Summary returns the totals line for the current variant, empty before any run.
func (m ScoreboardModel) Summary() string {
	return m.summary()
}

// RunScoreboard runs the scoreboard in the local terminal.
// Returns true if the user pressed back rather than quit.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, gameID, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
