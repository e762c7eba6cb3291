package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/meeran-official/news-analyzer/internal/prefs"
)

// palette is the set of colors for one theme.
type palette struct {
	accent    lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
	highlight lipgloss.Color
	errorFg   lipgloss.Color
	warning   lipgloss.Color
	barBg     lipgloss.Color
	chipBg    lipgloss.Color
}

var (
	lightPalette = palette{
		accent:    lipgloss.Color("25"),  // Blue
		text:      lipgloss.Color("235"), // Near black
		muted:     lipgloss.Color("245"), // Gray
		highlight: lipgloss.Color("162"), // Magenta
		errorFg:   lipgloss.Color("160"), // Red
		warning:   lipgloss.Color("130"), // Amber
		barBg:     lipgloss.Color("254"),
		chipBg:    lipgloss.Color("253"),
	}
	darkPalette = palette{
		accent:    lipgloss.Color("51"),  // Cyan
		text:      lipgloss.Color("255"), // White
		muted:     lipgloss.Color("241"), // Gray
		highlight: lipgloss.Color("212"), // Pink
		errorFg:   lipgloss.Color("196"), // Red
		warning:   lipgloss.Color("214"), // Orange
		barBg:     lipgloss.Color("236"),
		chipBg:    lipgloss.Color("237"),
	}
)

// Styles holds every style the app renders with, for one theme.
type Styles struct {
	Accent lipgloss.Color

	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Muted       lipgloss.Style
	Chip        lipgloss.Style
	ChipKey     lipgloss.Style
	LoadingHead lipgloss.Style
	LoadingText lipgloss.Style
	ErrorTitle  lipgloss.Style
	ErrorPanel  lipgloss.Style
	Banner      lipgloss.Style

	StatusBar     lipgloss.Style
	StatusBarKey  lipgloss.Style
	StatusBarText lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme prefs.Theme) Styles {
	p := lightPalette
	if theme == prefs.Dark {
		p = darkPalette
	}

	return Styles{
		Accent: p.accent,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Chip: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.chipBg).
			Padding(0, 1).
			MarginRight(1),
		ChipKey: lipgloss.NewStyle().
			Foreground(p.highlight).
			Bold(true),
		LoadingHead: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		LoadingText: lipgloss.NewStyle().
			Foreground(p.text).
			Italic(true),
		ErrorTitle: lipgloss.NewStyle().
			Foreground(p.errorFg).
			Bold(true),
		ErrorPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.errorFg).
			Padding(1, 2),
		Banner: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.barBg).
			Padding(0, 1),
		StatusBarKey: lipgloss.NewStyle().
			Foreground(p.highlight).
			Bold(true),
		StatusBarText: lipgloss.NewStyle().
			Foreground(p.muted),
	}
}

// glamourStyle is the markdown style name for theme.
func glamourStyle(theme prefs.Theme) string {
	if theme == prefs.Dark {
		return "dark"
	}
	return "light"
}
