// Package settings is the preferences panel: theme, language and mock data.
// Every change is persisted immediately.
package settings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/logging"
	"github.com/meeran-official/news-analyzer/internal/prefs"
)

// Preferences is what the panel reads and writes. *prefs.Store satisfies it.
type Preferences interface {
	Theme() prefs.Theme
	Language() analysis.Language
	UseMockData() bool
	SetTheme(prefs.Theme) error
	SetLanguage(analysis.Language) error
	SetUseMockData(bool) error
}

// ChangedMsg is emitted after a preference changes.
type ChangedMsg struct {
	Key string // one of the prefs.Key* constants
}

// ClosedMsg is emitted when the panel is dismissed.
type ClosedMsg struct{}

type row int

const (
	rowTheme row = iota
	rowLanguage
	rowMock
	rowCount
)

// Model is the settings panel
type Model struct {
	prefs  Preferences
	cursor row
	width  int
	err    string
}

// New creates a settings panel
func New(p Preferences) Model {
	return Model{prefs: p}
}

// SetWidth updates the panel width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Update handles keys while the panel is open
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q", "ctrl+s":
		return m, func() tea.Msg { return ClosedMsg{} }

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case "enter", " ", "left", "right", "h", "l":
		return m.toggle()

	case "1", "2":
		return m.choose(key.String() == "1")
	}

	return m, nil
}

// toggle flips the setting under the cursor.
func (m Model) toggle() (Model, tea.Cmd) {
	switch m.cursor {
	case rowTheme:
		return m.choose(m.prefs.Theme() != prefs.Light)
	case rowLanguage:
		return m.choose(m.prefs.Language() != analysis.English)
	case rowMock:
		return m.choose(!m.prefs.UseMockData())
	}
	return m, nil
}

// choose sets the row under the cursor to its first option (Light, English,
// mock on) when first is true, otherwise to its second.
func (m Model) choose(first bool) (Model, tea.Cmd) {
	var (
		key string
		err error
	)
	switch m.cursor {
	case rowTheme:
		key = prefs.KeyTheme
		theme := prefs.Dark
		if first {
			theme = prefs.Light
		}
		err = m.prefs.SetTheme(theme)
	case rowLanguage:
		key = prefs.KeyLanguage
		lang := analysis.Tamil
		if first {
			lang = analysis.English
		}
		err = m.prefs.SetLanguage(lang)
	case rowMock:
		key = prefs.KeyMockData
		err = m.prefs.SetUseMockData(first)
	}

	if err != nil {
		// The in-memory value still changed; only persistence failed.
		logging.Warn("saving preference failed", "key", key, "error", err)
		m.err = "Could not save: " + err.Error()
	} else {
		m.err = ""
	}
	return m, func() tea.Msg { return ChangedMsg{Key: key} }
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Width(12)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	optionStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// View renders the panel. accent colors the border.
func (m Model) View(accent lipgloss.Color) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")

	rows := []struct {
		label   string
		options [2]string
		first   bool
	}{
		{"Theme", [2]string{"Light", "Dark"}, m.prefs.Theme() == prefs.Light},
		{"Language", [2]string{analysis.English.DisplayName(), analysis.Tamil.DisplayName()}, m.prefs.Language() == analysis.English},
		{"Mock data", [2]string{"On", "Off"}, m.prefs.UseMockData()},
	}

	for i, r := range rows {
		pointer := "  "
		if row(i) == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		a, c := optionStyle.Render(r.options[0]), optionStyle.Render(r.options[1])
		if r.first {
			a = selectedStyle.Render(r.options[0])
		} else {
			c = selectedStyle.Render(r.options[1])
		}
		b.WriteString(pointer + labelStyle.Render(r.label) + a + " " + c + "\n")
	}

	if m.prefs.UseMockData() {
		b.WriteString("\n  Sample data is served locally; no requests reach the service.\n")
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString(footerStyle.Render("Settings are automatically saved · ↑/↓ move · enter toggle · esc close"))

	style := panelStyle.BorderForeground(accent)
	if m.width > 8 {
		w := m.width - 4
		if w > 64 {
			w = 64
		}
		style = style.Width(w)
	}
	return style.Render(b.String())
}

// Cursor returns the selected row (for testing).
func (m Model) Cursor() int {
	return int(m.cursor)
}

// Err returns the last save error (for testing).
func (m Model) Err() string {
	return m.err
}
