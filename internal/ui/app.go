package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meeran-official/news-analyzer/internal/logging"
	"github.com/meeran-official/news-analyzer/internal/orchestrator"
	"github.com/meeran-official/news-analyzer/internal/prefs"
	"github.com/meeran-official/news-analyzer/internal/ui/settings"
)

// AppConfig holds everything the App is wired with.
// IMPORTANT: App never calls the gateway itself. All requests go through the
// orchestrator, which reports back via messages.
type AppConfig struct {
	Prefs        *prefs.Store
	Orchestrator orchestrator.Model

	// DarkBackground is the terminal background, detected before the
	// program takes over the terminal.
	DarkBackground bool

	SuggestionsVisible int           // chips shown before "more"; default 4
	LoadingInterval    time.Duration // loading message rotation; default 2s
}

// App is the root Bubble Tea model.
type App struct {
	prefs    *prefs.Store
	orch     orchestrator.Model
	settings settings.Model

	keys     keyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	md       *markdownRenderer
	styles   Styles

	darkBackground     bool
	suggestionsVisible int
	loadingInterval    time.Duration

	width          int
	height         int
	ready          bool
	prefsRequested bool
	started        bool
	prefsErr       error

	showSettings  bool
	showDebug     bool
	showAllTopics bool
	topicRev      int
	lastPhase     orchestrator.Phase
	loadingRun    int
	loadingIdx    int
}

// NewApp creates the App.
func NewApp(cfg AppConfig) App {
	ti := textinput.New()
	ti.Placeholder = "e.g., Climate Change, AI Ethics, Space Exploration..."
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	visible := cfg.SuggestionsVisible
	if visible <= 0 {
		visible = 4
	}
	interval := cfg.LoadingInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return App{
		prefs:              cfg.Prefs,
		orch:               cfg.Orchestrator,
		settings:           settings.New(cfg.Prefs),
		keys:               newKeyMap(),
		help:               help.New(),
		input:              ti,
		spinner:            sp,
		viewport:           viewport.New(80, 20),
		md:                 &markdownRenderer{},
		styles:             NewStyles(prefs.Light),
		darkBackground:     cfg.DarkBackground,
		suggestionsVisible: visible,
		loadingInterval:    interval,
	}
}

// Init asks for the window size; preferences load once it is known.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		if !a.prefsRequested {
			a.prefsRequested = true
			return a, a.loadPrefs(msg.Width)
		}
		return a, nil

	case PrefsLoaded:
		if msg.Err != nil {
			logging.Warn("preferences unavailable, using defaults", "error", msg.Err)
			a.prefsErr = msg.Err
		}
		a.styles = NewStyles(a.prefs.Theme())
		if a.started {
			return a, nil
		}
		a.started = true
		return a, a.orch.Init()

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case settings.ChangedMsg:
		switch msg.Key {
		case prefs.KeyTheme:
			a.styles = NewStyles(a.prefs.Theme())
			a.refreshResult()
		case prefs.KeyLanguage:
			a.refreshResult()
		case prefs.KeyMockData:
			return a.updateOrchestrator(orchestrator.RefreshSuggestionsMsg{})
		}
		return a, nil

	case settings.ClosedMsg:
		a.showSettings = false
		return a, nil

	case spinner.TickMsg:
		if !a.orch.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case loadingTick:
		if msg.run != a.loadingRun || !a.orch.Loading() {
			return a, nil
		}
		a.loadingIdx++
		return a, a.nextLoadingTick()

	case orchestrator.ResultReadyMsg:
		a.viewport.GotoTop()
		return a, nil
	}

	// Cursor blinks belong to the input; everything else is the
	// orchestrator's.
	var inputCmd tea.Cmd
	a.input, inputCmd = a.input.Update(msg)
	next, cmd := a.updateOrchestrator(msg)
	return next, tea.Batch(inputCmd, cmd)
}

// updateOrchestrator forwards msg to the orchestrator and syncs the view
// state that follows from its transitions.
func (a App) updateOrchestrator(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	a.orch, cmd = a.orch.Update(msg)
	cmds := []tea.Cmd{cmd}

	if rev := a.orch.TopicRev(); rev != a.topicRev {
		a.topicRev = rev
		a.input.SetValue(a.orch.Topic())
		a.input.CursorEnd()
	}

	if phase := a.orch.Phase(); phase != a.lastPhase {
		if phase == orchestrator.PhaseLoading {
			a.loadingRun++
			a.loadingIdx = 0
			a.input.Blur()
			cmds = append(cmds, a.spinner.Tick, a.nextLoadingTick())
		}
		if phase == orchestrator.PhaseResult {
			a.refreshResult()
		}
		a.lastPhase = phase
	}

	return a, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.showSettings {
		var cmd tea.Cmd
		a.settings, cmd = a.settings.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Settings):
		a.showSettings = true
		return a, nil

	case key.Matches(msg, a.keys.Random):
		return a.updateOrchestrator(orchestrator.RandomMsg{})

	case key.Matches(msg, a.keys.Clear):
		if a.input.Value() == "" {
			return a, nil
		}
		a.input.SetValue("")
		return a.updateOrchestrator(orchestrator.ClearMsg{})

	case key.Matches(msg, a.keys.MoreTopics):
		a.showAllTopics = !a.showAllTopics
		return a, nil

	case key.Matches(msg, a.keys.Analyze):
		if a.orch.Loading() {
			return a, nil
		}
		return a.updateOrchestrator(orchestrator.AnalyzeMsg{Topic: a.input.Value()})
	}

	if a.input.Focused() {
		if key.Matches(msg, a.keys.Blur) {
			a.input.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = !a.showDebug
		return a, nil

	case key.Matches(msg, a.keys.Focus):
		a.input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Retry):
		if a.orch.Phase() == orchestrator.PhaseError {
			return a.updateOrchestrator(orchestrator.RetryMsg{})
		}
		return a, nil

	case key.Matches(msg, a.keys.PickTopic):
		idx := int(msg.Runes[0] - '1')
		shown := visibleTopics(a.orch.Suggestions(), a.showAllTopics, a.suggestionsVisible)
		if idx < len(shown) {
			return a.updateOrchestrator(orchestrator.SelectMsg{Topic: shown[idx]})
		}
		return a, nil

	case key.Matches(msg, a.keys.ScrollUp, a.keys.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	// Any other printable key starts typing a topic.
	if msg.Type == tea.KeyRunes && !a.orch.Loading() {
		a.input.Focus()
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, tea.Batch(cmd, textinput.Blink)
	}
	return a, nil
}

func (a App) loadPrefs(width int) tea.Cmd {
	p, dark := a.prefs, a.darkBackground
	return func() tea.Msg {
		err := p.Load(func() prefs.Theme {
			return prefs.ResponsiveTheme(width, dark)
		})
		return PrefsLoaded{Err: err}
	}
}

func (a App) nextLoadingTick() tea.Cmd {
	run := a.loadingRun
	return tea.Tick(a.loadingInterval, func(time.Time) tea.Msg {
		return loadingTick{run: run}
	})
}

func (a *App) resize() {
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-12, 3)
	a.help.Width = a.width
	a.input.Width = max(min(a.width-24, 60), 10)
	a.settings.SetWidth(a.width)
	a.refreshResult()
}

// refreshResult re-renders the current result into the viewport.
func (a *App) refreshResult() {
	rec, ok := a.orch.Record()
	if !ok || !a.prefs.ThemeLoaded() {
		return
	}
	md := AnalysisMarkdown(rec, a.prefs.Language())
	a.viewport.SetContent(a.md.Render(md, a.prefs.Theme(), a.width-4))
}

// View renders the UI.
func (a App) View() string {
	// Nothing theme-dependent renders until the theme is resolved.
	if !a.ready || !a.prefs.ThemeLoaded() {
		return "Loading..."
	}

	s := a.styles
	l := labelsFor(a.prefs.Language())

	title := s.Title.Render("Analyze a News Topic")
	if a.prefs.UseMockData() {
		title += s.Banner.Render("[mock data]")
	}

	button := "[ Analyze ]"
	if a.orch.Loading() {
		button = "[ Analyzing... ]"
	}
	searchBar := " " + a.input.View() + "  " + s.Muted.Render(button)

	chips := renderSuggestions(s, l, a.orch.Suggestions(), a.orch.SuggestionsLoaded(),
		a.orch.SuggestionsErr(), a.showAllTopics, a.suggestionsVisible, a.width)

	top := lipgloss.JoinVertical(lipgloss.Left, title, searchBar, "", chips, "")
	statusBar := a.statusBar()

	var body string
	switch {
	case a.showSettings:
		body = a.settings.View(s.Accent)
	case a.showDebug:
		body = debugOverlay(s, a.orch, a.prefs.Snapshot(), a.width, a.height-lipgloss.Height(top)-lipgloss.Height(statusBar))
	case a.orch.Phase() == orchestrator.PhaseLoading:
		mock := a.prefs.UseMockData()
		body = renderLoading(s, a.spinner.View(), a.loadingIdx, mock)
	case a.orch.Phase() == orchestrator.PhaseError:
		body = renderError(s, l, a.orch.Err(), a.width)
	case a.orch.Phase() == orchestrator.PhaseResult:
		vp := a.viewport
		vp.Height = max(a.height-lipgloss.Height(top)-lipgloss.Height(statusBar)-1, 3)
		if sub, cause := a.orch.Substituted(); sub {
			vp.Height--
			body = s.Banner.Render("Live analysis failed ("+cause+"). Showing sample data instead.") + "\n" + vp.View()
		} else {
			body = vp.View()
		}
	default:
		body = s.Muted.Render(" Type a topic and press enter, or ctrl+r for a random one.")
	}

	// Pad so the status bar sits at the bottom.
	used := lipgloss.Height(top) + lipgloss.Height(body) + lipgloss.Height(statusBar)
	pad := ""
	if gap := a.height - used; gap > 0 {
		pad = strings.Repeat("\n", gap)
	}

	return top + "\n" + body + pad + "\n" + statusBar
}

// statusBar renders mode info on the left and key help on the right.
func (a App) statusBar() string {
	s := a.styles

	mode := "live"
	if a.prefs.UseMockData() {
		mode = "mock"
	}
	left := " " + mode + " · " + a.prefs.Language().DisplayName() + " "
	if a.prefsErr != nil {
		left += "· prefs not saved "
	}

	a.help.Styles.ShortKey = s.StatusBarKey
	a.help.Styles.ShortDesc = s.StatusBarText
	a.help.Width = max(a.width-lipgloss.Width(left)-2, 0)
	hints := a.help.View(a.keys)

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if padding < 0 {
		padding = 0
	}
	return s.StatusBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + hints)
}

// Orchestrator returns the orchestrator state (for testing).
func (a App) Orchestrator() orchestrator.Model {
	return a.orch
}

// Input returns the current topic input (for testing).
func (a App) Input() string {
	return a.input.Value()
}

// ShowingSettings reports whether the settings panel is open (for testing).
func (a App) ShowingSettings() bool {
	return a.showSettings
}

// LoadingMessage returns the current loading message (for testing).
func (a App) LoadingMessage() string {
	return loadingMessages[a.loadingIdx%len(loadingMessages)]
}
