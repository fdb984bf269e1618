package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuListsModesWithBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.Keeper(merge.IDTimer, nil).SubmitBest(640); err != nil {
		t.Fatalf("SubmitBest: %v", err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) < 2 {
		t.Fatalf("menu has %d items, want both modes", len(m.items))
	}
	for _, item := range m.items {
		if item.GameID == merge.IDTimer && item.Best != 640 {
			t.Errorf("timer best = %d, want 640", item.Best)
		}
	}
	if v := m.View(); !strings.Contains(v, "640") {
		t.Error("view does not show the stored best")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("nothing selected")
	}
	if want := m.items[len(m.items)-1].GameID; sel.GameID != want {
		t.Errorf("selected %s, want %s (cursor clamps at the end)", sel.GameID, want)
	}
}

func TestMenuExits(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.KeyMsg
		quit       bool
		scoreboard bool
	}{
		{"quit", runeKey('q'), true, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, true, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := menuKey(t, NewMenuModel(nil, core.RuntimeConfig{}), tt.msg)
			if m.IsQuitting() != tt.quit || m.WantsScoreboard() != tt.scoreboard {
				t.Errorf("quit=%v scoreboard=%v, want %v %v",
					m.IsQuitting(), m.WantsScoreboard(), tt.quit, tt.scoreboard)
			}
		})
	}
}
