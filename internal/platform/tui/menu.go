package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/registry"
	"github.com/vovakirdan/colormerge/internal/storage"
)

var modeBlurbs = map[string]string{
	merge.IDRhythm: "move on the beat to grow the multiplier",
	merge.IDTimer:  "every turn has a deadline; be quick",
}

// ModeBlurb returns a one-line description of a scoring mode.
func ModeBlurb(id string) string {
	return modeBlurbs[id]
}

// MenuItem is one scoring mode in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel picks a scoring mode.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	width  int
	height int

	keyMapper *KeyMapper
	help      help.Model

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered mode with its stored best.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			item.Best = store.Keeper(g.ID, nil).LoadBest()
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:     items,
		config:    cfg,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("C O L O R   M E R G E"),
		"",
		"Pick a scoring mode",
		"",
	}
	for i, item := range m.items {
		marker, style := "  ", menuItemStyle
		if i == m.cursor {
			marker, style = "> ", menuCurStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-22s best %d", marker, item.Title, item.Best)))
		if blurb := ModeBlurb(item.GameID); blurb != "" {
			lines = append(lines, menuHintStyle.Render("    "+blurb))
		}
	}
	lines = append(lines, "", menuHintStyle.Render(m.help.View(m.keyMapper.Menu)))

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Selected returns the chosen item, or nil while picking.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for high scores.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the latest window.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text to sit in the middle of width printable cells.
func centerText(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return strings.Repeat(" ", (width-w)/2) + text
	}
	return text
}

// MenuResult is what the standalone menu program decided.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the picker in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	switch {
	case !ok:
		return MenuResult{Config: cfg, Quit: true}, nil
	case m.WantsScoreboard():
		return MenuResult{Config: m.Config(), WantsScoreboard: true}, nil
	case m.Selected() != nil:
		return MenuResult{Config: m.Config(), GameID: m.Selected().GameID}, nil
	}
	return MenuResult{Config: m.Config(), Quit: true}, nil
}
