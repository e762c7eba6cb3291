package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/config"
	"github.com/meeran-official/news-analyzer/internal/fixture"
	"github.com/meeran-official/news-analyzer/internal/gateway"
	"github.com/meeran-official/news-analyzer/internal/logging"
	"github.com/meeran-official/news-analyzer/internal/orchestrator"
	"github.com/meeran-official/news-analyzer/internal/prefs"
	"github.com/meeran-official/news-analyzer/internal/store"
	"github.com/meeran-official/news-analyzer/internal/ui"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "news-analyzer",
		Short:        "Explore news topics from several perspectives",
		Long:         "news-analyzer fetches a structured analysis of a news topic: summary, problem, solution, opposing viewpoints, history and a proverb.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&flags.baseURL, "base-url", "", "analysis service base URL (overrides config and "+config.EnvBaseURL+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newAnalyzeCmd(flags),
		newBriefCmd(flags),
		newTopicsCmd(flags),
		newPrefsCmd(flags),
		newServeFixturesCmd(flags),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// session is the wiring every command shares.
type session struct {
	cfg   *config.Config
	store *store.Store
	prefs *prefs.Store
}

// openSession loads config (file, then environment, then flags), starts
// logging and opens the preference database.
func openSession(flags *globalFlags) (*session, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if flags.baseURL != "" {
		cfg.API.BaseURL = flags.baseURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := logging.Init(cfg.DataDir, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		logging.Close()
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	return &session{cfg: cfg, store: st, prefs: prefs.New(st)}, nil
}

func (s *session) Close() {
	s.store.Close()
	logging.Close()
}

// gateway builds the analysis gateway over p.
func (s *session) gateway(p gateway.Preferences) *gateway.Gateway {
	return gateway.New(gateway.Config{
		BaseURL:   s.cfg.API.BaseURL,
		Timeout:   s.cfg.API.Timeout,
		RateLimit: s.cfg.API.RateLimit,
		Burst:     s.cfg.API.Burst,
	}, p, fixture.New())
}

func (s *session) policy() orchestrator.Policy {
	return orchestrator.Policy{
		FallbackToMock: s.cfg.Orchestrator.FallbackToMock,
		FallbackTopic:  s.cfg.Orchestrator.FallbackTopic,
		Debounce:       s.cfg.Orchestrator.Debounce,
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	sess, err := openSession(flags)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Query the terminal before Bubble Tea takes it over.
	dark := lipgloss.HasDarkBackground()

	gw := sess.gateway(sess.prefs)
	orch := orchestrator.New(ctx, gw, sess.prefs, sess.policy())

	app := ui.NewApp(ui.AppConfig{
		Prefs:              sess.prefs,
		Orchestrator:       orch,
		DarkBackground:     dark,
		SuggestionsVisible: sess.cfg.UI.SuggestionsVisible,
		LoadingInterval:    sess.cfg.UI.LoadingMessageInterval,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		return err
	}
	return nil
}

// overridePrefs lets one invocation use a language or mock setting without
// persisting it.
type overridePrefs struct {
	base gateway.Preferences
	lang *analysis.Language
	mock *bool
}

func (o overridePrefs) UseMockData() bool {
	if o.mock != nil {
		return *o.mock
	}
	return o.base.UseMockData()
}

func (o overridePrefs) Language() analysis.Language {
	if o.lang != nil {
		return *o.lang
	}
	return o.base.Language()
}
