package settings

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/prefs"
)

type brokenStorage struct{}

func (brokenStorage) Get(string) (string, bool, error) { return "", false, nil }
func (brokenStorage) Set(string, string) error         { return errors.New("read-only") }

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newPanel(t *testing.T) (Model, *prefs.Store, prefs.Storage) {
	t.Helper()
	storage := prefs.NewMemoryStorage()
	p := prefs.New(storage)
	p.Load(func() prefs.Theme { return prefs.Light })
	return New(p), p, storage
}

func changedKey(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(ChangedMsg)
	if !ok {
		t.Fatal("expected ChangedMsg")
	}
	return msg.Key
}

func TestToggleTheme(t *testing.T) {
	m, p, storage := newPanel(t)

	m, cmd := m.Update(key("enter"))
	if p.Theme() != prefs.Dark {
		t.Errorf("expected dark after toggle, got %s", p.Theme())
	}
	if changedKey(t, cmd) != prefs.KeyTheme {
		t.Error("expected theme change notification")
	}
	if v, _, _ := storage.Get(prefs.KeyTheme); v != "dark" {
		t.Errorf("theme should be persisted, got %q", v)
	}

	m.Update(key("enter"))
	if p.Theme() != prefs.Light {
		t.Error("second toggle should return to light")
	}
}

func TestSelectLanguageByNumber(t *testing.T) {
	m, p, _ := newPanel(t)

	m, _ = m.Update(key("down"))
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor on language row, got %d", m.Cursor())
	}

	m, cmd := m.Update(key("2"))
	if p.Language() != analysis.Tamil {
		t.Errorf("expected tamil, got %s", p.Language())
	}
	if changedKey(t, cmd) != prefs.KeyLanguage {
		t.Error("expected language change notification")
	}

	m.Update(key("1"))
	if p.Language() != analysis.English {
		t.Error("1 should select english")
	}
}

func TestToggleMock(t *testing.T) {
	m, p, storage := newPanel(t)
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))

	m, cmd := m.Update(key(" "))
	if !p.UseMockData() {
		t.Error("mock should be on")
	}
	if changedKey(t, cmd) != prefs.KeyMockData {
		t.Error("expected mock change notification")
	}
	if v, _, _ := storage.Get(prefs.KeyMockData); v != "true" {
		t.Errorf("expected persisted \"true\", got %q", v)
	}
	if !strings.Contains(m.View(lipgloss.Color("62")), "no requests reach the service") {
		t.Error("view should note that mock mode is active")
	}
}

func TestCursorBounds(t *testing.T) {
	m, _, _ := newPanel(t)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("down"))
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor should stop at last row, got %d", m.Cursor())
	}
	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("k"))
	}
	if m.Cursor() != 0 {
		t.Errorf("cursor should stop at first row, got %d", m.Cursor())
	}
}

func TestClose(t *testing.T) {
	m, _, _ := newPanel(t)
	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("esc should close")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Error("expected ClosedMsg")
	}
}

func TestSaveErrorShown(t *testing.T) {
	p := prefs.New(brokenStorage{})
	p.Load(nil)
	m := New(p)

	m, _ = m.Update(key("enter"))
	if m.Err() == "" {
		t.Error("persist failure should be surfaced")
	}
	if p.Theme() != prefs.Dark {
		t.Error("in-memory theme should still change")
	}
	if !strings.Contains(m.View(lipgloss.Color("62")), "Could not save") {
		t.Error("view should show the save error")
	}
}

func TestViewContents(t *testing.T) {
	m, _, _ := newPanel(t)
	m.SetWidth(80)
	view := m.View(lipgloss.Color("62"))
	for _, want := range []string{"Settings", "Light", "Dark", "English", "தமிழ்", "Settings are automatically saved"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
