package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
)

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// GameKeys are the in-game bindings. Letter keys are matched case-insensitively.
type GameKeys struct {
	Up, Down, Left, Right key.Binding
	Restart, Back, Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Restart, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Restart, k.Back, k.Quit}}
}

// MenuKeys are the variant picker bindings.
type MenuKeys struct {
	Up, Down, Select key.Binding
	Scores, Back     key.Binding
	Quit             key.Binding
}

// ShortHelp implements help.KeyMap.
func (k MenuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Back}}
}

// KeyMapper translates key messages into game and menu actions.
type KeyMapper struct {
	Game GameKeys
	Menu MenuKeys

	game []actionBinding
	menu []menuBinding
}

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// NewKeyMapper returns the default bindings.
func NewKeyMapper() *KeyMapper {
	g := GameKeys{
		Up:      key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "move")),
		Down:    key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "move")),
		Left:    key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "move")),
		Right:   key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "move")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	m := MenuKeys{
		Up:     key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("s", "down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:   key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}

	return &KeyMapper{
		Game: g,
		Menu: m,
		game: []actionBinding{
			{g.Quit, core.ActionQuit},
			{g.Up, core.ActionUp},
			{g.Down, core.ActionDown},
			{g.Left, core.ActionLeft},
			{g.Right, core.ActionRight},
			{g.Restart, core.ActionRestart},
			{g.Back, core.ActionBack},
		},
		menu: []menuBinding{
			{m.Quit, MenuActionQuit},
			{m.Up, MenuActionUp},
			{m.Down, MenuActionDown},
			{m.Select, MenuActionSelect},
			{m.Back, MenuActionBack},
			{m.Scores, MenuActionScoreboard},
		},
	}
}

// foldCase lowercases single-letter keys so caps lock does not break play.
func foldCase(msg tea.KeyMsg) tea.KeyMsg {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if s := strings.ToLower(string(msg.Runes)); s != string(msg.Runes) {
			msg.Runes = []rune(s)
		}
	}
	return msg
}

// MapKey translates a key message to a game action and reports whether it
// asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	msg = foldCase(msg)
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MenuAction is a menu navigation step.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
