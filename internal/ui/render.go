package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/logging"
	"github.com/meeran-official/news-analyzer/internal/prefs"
)

// loadingMessages rotate while an analysis is in flight.
var loadingMessages = []string{
	"Analyzing global news patterns...",
	"Gathering diverse perspectives...",
	"Connecting international viewpoints...",
	"Processing expert opinions...",
	"Generating creative solutions...",
	"Synthesizing complex information...",
	"Consulting our AI analysts...",
	"Exploring historical contexts...",
	"Finding balanced perspectives...",
	"Crafting insightful analysis...",
}

// labels are the user-facing strings that follow the analysis language.
type labels struct {
	Summary    string
	Problem    string
	Solution   string
	Proposing  string
	Opposing   string
	History    string
	Failed     string
	RetryHint  string
	NoTopics   string
	PickPrompt string
}

var (
	englishLabels = labels{
		Summary:    "Summary",
		Problem:    "The Aggregated Problem",
		Solution:   "Proposed Solution",
		Proposing:  "Proposing Viewpoint",
		Opposing:   "Opposing Viewpoint",
		History:    "Historical Perspective",
		Failed:     "Analysis Failed",
		RetryHint:  "press r to try again",
		NoTopics:   "No trending topics right now.",
		PickPrompt: "Or select a trending topic:",
	}
	tamilLabels = labels{
		Summary:    "சுருக்கம்",
		Problem:    "ஒருங்கிணைந்த பிரச்சனை",
		Solution:   "முன்மொழியப்பட்ட தீர்வு",
		Proposing:  "ஆதரவுக் கண்ணோட்டம்",
		Opposing:   "எதிர்க் கண்ணோட்டம்",
		History:    "வரலாற்றுப் பார்வை",
		Failed:     "பகுப்பாய்வு தோல்வியடைந்தது",
		RetryHint:  "மீண்டும் முயற்சிக்க r அழுத்தவும்",
		NoTopics:   "தற்போது பிரபலமான தலைப்புகள் இல்லை.",
		PickPrompt: "அல்லது ஒரு பிரபலமான தலைப்பைத் தேர்ந்தெடுக்கவும்:",
	}
)

func labelsFor(lang analysis.Language) labels {
	if lang == analysis.Tamil {
		return tamilLabels
	}
	return englishLabels
}

// AnalysisMarkdown lays out a record as markdown.
func AnalysisMarkdown(rec analysis.Record, lang analysis.Language) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rec.Topic)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", l.Summary, rec.Summary)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", l.Problem, rec.AggregatedProblem)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", l.Solution, rec.SolutionProposal)
	fmt.Fprintf(&b, "### %s\n\n%s\n\n", l.Proposing, rec.ProposingViewpoint)
	fmt.Fprintf(&b, "### %s\n\n%s\n\n", l.Opposing, rec.OpposingViewpoint)
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", l.History, rec.HistoricalPerspective)
	fmt.Fprintf(&b, "> “%s”\n", rec.MotivationalProverb)
	return b.String()
}

// markdownRenderer caches a glamour renderer per style and width.
type markdownRenderer struct {
	style string
	width int
	r     *glamour.TermRenderer
}

// Render renders md for theme at width, falling back to the raw markdown when
// glamour fails.
func (m *markdownRenderer) Render(md string, theme prefs.Theme, width int) string {
	if width < 20 {
		width = 20
	}
	style := glamourStyle(theme)
	if m.r == nil || m.style != style || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Warn("markdown renderer unavailable", "error", err)
			return md
		}
		m.r, m.style, m.width = r, style, width
	}

	out, err := m.r.Render(md)
	if err != nil {
		logging.Warn("markdown render failed", "error", err)
		return md
	}
	return out
}

// RenderMarkdown renders md once, for output outside the TUI.
func RenderMarkdown(md string, theme prefs.Theme, width int) string {
	return (&markdownRenderer{}).Render(md, theme, width)
}

// renderSuggestions lays out numbered topic chips, wrapping to width.
func renderSuggestions(s Styles, l labels, topics []string, loaded bool, errMsg string, showAll bool, visible, width int) string {
	if !loaded {
		return s.Muted.Render(" Loading topics...")
	}
	if len(topics) == 0 {
		if errMsg != "" {
			return s.Muted.Render(" " + l.NoTopics + " (" + errMsg + ")")
		}
		return s.Muted.Render(" " + l.NoTopics)
	}

	shown := visibleTopics(topics, showAll, visible)
	maxLabel := width/2 - 6
	if maxLabel < 12 {
		maxLabel = 12
	}

	var lines []string
	var line string
	for i, topic := range shown {
		label := runewidth.Truncate(topic, maxLabel, "…")
		chip := label
		if i < 9 {
			chip = s.ChipKey.Render(fmt.Sprintf("%d", i+1)) + " " + label
		}
		chip = s.Chip.Render(chip)
		if line != "" && lipgloss.Width(line)+lipgloss.Width(chip) > width-1 {
			lines = append(lines, line)
			line = ""
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}

	if hidden := len(topics) - len(shown); hidden > 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf(" tab: show %d more", hidden)))
	} else if len(topics) > visible {
		lines = append(lines, s.Muted.Render(" tab: show less"))
	}

	return s.Subtitle.Render(l.PickPrompt) + "\n " + strings.Join(lines, "\n ")
}

// visibleTopics returns the chips currently on screen.
func visibleTopics(topics []string, showAll bool, visible int) []string {
	if showAll || len(topics) <= visible {
		return topics
	}
	return topics[:visible]
}

// renderLoading is the in-flight view.
func renderLoading(s Styles, spin string, idx int, mock bool) string {
	head := "Deep Analysis in Progress"
	tip := "Did you know? Our AI processes information from multiple global sources in seconds!"
	if mock {
		head = "Mock Data Analysis in Progress"
		tip = "Using mock data for testing - no API calls are being made!"
	}

	msg := loadingMessages[idx%len(loadingMessages)]

	dots := make([]string, 3)
	for i := range dots {
		if i == idx%3 {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}

	return strings.Join([]string{
		spin + " " + s.LoadingHead.Render(head),
		"",
		"  " + s.LoadingText.Render(msg),
		"  " + s.Muted.Render(strings.Join(dots, " ")),
		"",
		"  " + s.Muted.Render(tip),
	}, "\n")
}

// renderError is the failure panel.
func renderError(s Styles, l labels, msg string, width int) string {
	body := s.ErrorTitle.Render(l.Failed) + "\n\n" + msg + "\n\n" + s.Muted.Render(l.RetryHint)
	style := s.ErrorPanel
	if width > 10 {
		style = style.Width(width - 4)
	}
	return style.Render(body)
}
