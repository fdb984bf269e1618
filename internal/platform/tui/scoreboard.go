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

	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/registry"
	"github.com/vovakirdan/colormerge/internal/storage"
)

const maxRuns = 100

// ScoreboardKeys are the scoreboard bindings.
type ScoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultScoreboardKeys() ScoreboardKeys {
	return ScoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 3)
)

// ScoreboardModel shows the stored runs of one scoring mode at a time.
type ScoreboardModel struct {
	modes  []registry.GameInfo
	active int
	store  *storage.Store

	runs        []storage.RunEntry
	leaderboard merge.Leaderboard
	stats       *storage.GameStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   defaultScoreboardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	dateW := 14
	if m.width > 60 {
		dateW = min(m.width-46, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Result", Width: 14},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the runs, leaderboard and stats of the active mode.
func (m *ScoreboardModel) load() {
	m.runs, m.leaderboard, m.stats = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.active].ID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
		m.leaderboard = m.store.Keeper(id, nil).LoadLeaderboard()
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			resultLabel(r.Reason),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.active = (m.active + step + len(m.modes)) % len(m.modes)
	m.load()
}

// resultLabel turns a stored end reason into a short label.
func resultLabel(reason string) string {
	switch merge.State(reason) {
	case merge.StateBoardLocked:
		return "locked"
	case merge.StateHealthDepleted:
		return "out of health"
	case merge.StateTimedOut:
		return "time up"
	}
	return reason
}

// leaderboardLine summarizes the persisted top scores.
func (m ScoreboardModel) leaderboardLine() string {
	if len(m.leaderboard) == 0 {
		return "Best: -"
	}
	parts := make([]string, len(m.leaderboard))
	for i, s := range m.leaderboard {
		parts[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("Best: %d   Top %d: %s", m.leaderboard.Best(), len(parts), strings.Join(parts, " "))
}

// statsLine summarizes every recorded run of the mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	return fmt.Sprintf("%d games  avg %.0f  last %s",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
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
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.active {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := boardEmptyStyle.Render("No runs recorded yet.\nFinish a game to set a high score!")
	if len(m.runs) > 0 {
		body = m.table.View()
	}

	lines := []string{
		"",
		centerText(boardTitleStyle.Render("HIGH SCORES"), m.width),
		"",
		centerText(m.tabs(), m.width),
		"",
		centerText(boardBestStyle.Render(m.leaderboardLine()), m.width),
		centerText(boardDimStyle.Render(m.statsLine()), m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)),
		"",
		centerText(boardDimStyle.Render(m.help.View(m.keys)), m.width),
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard and reports whether to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
