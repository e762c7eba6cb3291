package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/meeran-official/news-analyzer/internal/orchestrator"
	"github.com/meeran-official/news-analyzer/internal/prefs"
)

// debugPanelChrome is the number of terminal lines consumed by the debug
// panel's border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if the panel style changes.
const debugPanelChrome = 4

// debugRecentEvents is how many request events the overlay lists.
const debugRecentEvents = 6

// debugOverlay renders request and preference state for diagnosing the
// session. Pure function with no side effects.
func debugOverlay(s Styles, orch orchestrator.Model, st prefs.State, width, height int) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(s.Accent)

	var lines []string
	lines = append(lines, header.Render("Requests"))
	lines = append(lines, fmt.Sprintf("  Phase:        %s", orch.Phase()))
	lines = append(lines, fmt.Sprintf("  In flight:    %v", st.RequestInProgress))
	lines = append(lines, fmt.Sprintf("  Dropped:      %d triggers", orch.Dropped()))
	lines = append(lines, fmt.Sprintf("  Topic:        %s", truncateRunes(orch.Topic(), 40)))
	if sub, cause := orch.Substituted(); sub {
		lines = append(lines, "  Substituted:  yes ("+truncateRunes(cause, 30)+")")
	}
	policy := orch.Policy()
	lines = append(lines, fmt.Sprintf("  Debounce:     %s", policy.Debounce))
	lines = append(lines, fmt.Sprintf("  Fallback:     %v (%s)", policy.FallbackToMock, policy.FallbackTopic))
	lines = append(lines, "")

	lines = append(lines, header.Render("Suggestions"))
	switch {
	case !orch.SuggestionsLoaded():
		lines = append(lines, "  not loaded")
	case orch.SuggestionsErr() != "":
		lines = append(lines, "  failed: "+truncateRunes(orch.SuggestionsErr(), 50))
	default:
		lines = append(lines, fmt.Sprintf("  %d topics", len(orch.Suggestions())))
	}
	lines = append(lines, "")

	lines = append(lines, header.Render("Preferences"))
	lines = append(lines, fmt.Sprintf("  Theme:        %s", st.Theme))
	lines = append(lines, fmt.Sprintf("  Language:     %s", st.Language.DisplayName()))
	lines = append(lines, fmt.Sprintf("  Mock data:    %v", st.UseMockData))

	panelWidth := 76
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	if recent := orch.Events(debugRecentEvents); len(recent) > 0 {
		lines = append(lines, "")
		lines = append(lines, header.Render("Recent"))
		for _, e := range recent {
			lines = append(lines, "  "+truncateRunes(e.String(), panelWidth-8))
		}
	}

	// Truncate to fit terminal height (subtract chrome added by border/padding)
	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Accent).
		Padding(1, 2)
	return panel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// truncateRunes shortens s to at most n runes, adding an ellipsis.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
