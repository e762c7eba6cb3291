package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/fixture"
	"github.com/meeran-official/news-analyzer/internal/fixtureserver"
	"github.com/meeran-official/news-analyzer/internal/gateway"
	"github.com/meeran-official/news-analyzer/internal/logging"
	"github.com/meeran-official/news-analyzer/internal/prefs"
	"github.com/meeran-official/news-analyzer/internal/ui"
)

const outputWidth = 80

// outputFlags control how an analysis is printed.
type outputFlags struct {
	lang string
	mock bool
	raw  bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.lang, "lang", "", "analysis language: en or ta (default: saved preference)")
	cmd.Flags().BoolVar(&o.mock, "mock", false, "use built-in fixture data for this run")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "print markdown without terminal styling")
}

// prefsFor layers the per-run flags over the saved preferences.
func (o *outputFlags) prefsFor(cmd *cobra.Command, base gateway.Preferences) (overridePrefs, error) {
	p := overridePrefs{base: base}
	if o.lang != "" {
		lang, err := analysis.ParseLanguage(o.lang)
		if err != nil {
			return p, err
		}
		p.lang = &lang
	}
	if cmd.Flags().Changed("mock") {
		mock := o.mock
		p.mock = &mock
	}
	return p, nil
}

func (o *outputFlags) print(w io.Writer, rec analysis.Record, lang analysis.Language, theme prefs.Theme) {
	md := ui.AnalysisMarkdown(rec, lang)
	if o.raw {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, ui.RenderMarkdown(md, theme, outputWidth))
}

// analyzeWithFallback fetches topic and, when enabled, substitutes fixture
// data for a failed live analysis.
func analyzeWithFallback(ctx context.Context, gw *gateway.Gateway, topic string, lang analysis.Language, fallback bool) (analysis.Record, bool, error) {
	rec, err := gw.FetchAnalysis(ctx, topic, lang)
	if err == nil {
		return rec, false, nil
	}

	var ae *analysis.AnalysisError
	if !fallback || gw.MockMode() || ctx.Err() != nil || !errors.As(err, &ae) {
		return analysis.Record{}, false, err
	}

	logging.Warn("analysis failed, using fixture data", "topic", topic, "error", err)
	rec, ferr := gw.FixtureAnalysis(ctx, topic)
	if ferr != nil {
		return analysis.Record{}, false, err
	}
	return rec, true, nil
}

func writeSubstitutedNotice(w io.Writer) {
	fmt.Fprintln(w, "Live analysis unavailable, showing sample data.")
	fmt.Fprintln(w)
}

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	out := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <topic...>",
		Short: "Analyze a topic and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return analysis.ErrEmptyTopic
			}

			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prefs.Load(nil); err != nil {
				logging.Warn("preferences unavailable", "error", err)
			}

			p, err := out.prefsFor(cmd, sess.prefs)
			if err != nil {
				return err
			}
			gw := sess.gateway(p)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			lang := p.Language()
			rec, substituted, err := analyzeWithFallback(ctx, gw, topic, lang, sess.cfg.Orchestrator.FallbackToMock)
			if err != nil {
				return errors.New(analysis.UserMessage(err))
			}

			w := cmd.OutOrStdout()
			if substituted {
				writeSubstitutedNotice(w)
			}
			out.print(w, rec, lang, sess.prefs.Theme())
			return nil
		},
	}
	out.register(cmd)
	return cmd
}

func newBriefCmd(flags *globalFlags) *cobra.Command {
	out := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Analyze a random trending topic and list suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prefs.Load(nil); err != nil {
				logging.Warn("preferences unavailable", "error", err)
			}

			p, err := out.prefsFor(cmd, sess.prefs)
			if err != nil {
				return err
			}
			gw := sess.gateway(p)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			topic, err := gw.FetchRandomTopic(ctx)
			if err != nil {
				logging.Warn("random topic unavailable, using fallback", "error", err)
				topic = sess.cfg.Orchestrator.FallbackTopic
			}

			lang := p.Language()
			var (
				rec         analysis.Record
				substituted bool
				suggestions []string
				suggestErr  error
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				rec, substituted, err = analyzeWithFallback(gctx, gw, topic, lang, sess.cfg.Orchestrator.FallbackToMock)
				return err
			})
			g.Go(func() error {
				// A missing suggestion list does not fail the brief.
				suggestions, suggestErr = gw.FetchSuggestions(gctx)
				return nil
			})
			if err := g.Wait(); err != nil {
				return errors.New(analysis.UserMessage(err))
			}

			w := cmd.OutOrStdout()
			if substituted {
				writeSubstitutedNotice(w)
			}
			out.print(w, rec, lang, sess.prefs.Theme())

			fmt.Fprintln(w)
			if suggestErr != nil {
				logging.Warn("suggestions unavailable", "error", suggestErr)
				fmt.Fprintf(w, "Trending topics unavailable: %s\n", suggestErr)
				return nil
			}
			writeTopics(w, suggestions)
			return nil
		},
	}
	out.register(cmd)
	return cmd
}

func writeTopics(w io.Writer, topics []string) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "No trending topics right now.")
		return
	}
	fmt.Fprintln(w, "Trending topics:")
	for i, t := range topics {
		fmt.Fprintf(w, "  %d. %s\n", i+1, t)
	}
}

func newTopicsCmd(flags *globalFlags) *cobra.Command {
	var mock bool
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List trending topic suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prefs.Load(nil); err != nil {
				logging.Warn("preferences unavailable", "error", err)
			}

			p := overridePrefs{base: sess.prefs}
			if cmd.Flags().Changed("mock") {
				p.mock = &mock
			}

			topics, err := sess.gateway(p).FetchSuggestions(cmd.Context())
			if err != nil {
				return err
			}
			writeTopics(cmd.OutOrStdout(), topics)
			return nil
		},
	}
	cmd.Flags().BoolVar(&mock, "mock", false, "use built-in fixture data for this run")
	return cmd
}

func newPrefsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prefs.Load(nil); err != nil {
				return err
			}

			st := sess.prefs.Snapshot()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Theme:     %s\n", st.Theme)
			fmt.Fprintf(w, "Language:  %s\n", st.Language.DisplayName())
			fmt.Fprintf(w, "Mock data: %t\n", st.UseMockData)

			entries, err := sess.store.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "\nNothing saved yet.")
				return nil
			}
			fmt.Fprintln(w, "\nSaved:")
			for _, e := range entries {
				fmt.Fprintf(w, "  %-10s %-8s %s\n", e.Key, e.Value, e.Updated.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	cmd.AddCommand(newPrefsSetCmd(flags))
	return cmd
}

func newPrefsSetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "set <theme|language|mock> <value>",
		Short:     "Save a preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"theme", "language", "mock"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()
			if err := sess.prefs.Load(nil); err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "theme":
				t, err := prefs.ParseTheme(value)
				if err != nil {
					return err
				}
				err = sess.prefs.SetTheme(t)
			case "language", "lang":
				l, perr := analysis.ParseLanguage(value)
				if perr != nil {
					return perr
				}
				err = sess.prefs.SetLanguage(l)
			case "mock":
				switch strings.ToLower(value) {
				case "true", "on", "yes", "1":
					err = sess.prefs.SetUseMockData(true)
				case "false", "off", "no", "0":
					err = sess.prefs.SetUseMockData(false)
				default:
					return fmt.Errorf("mock: want on or off, got %q", value)
				}
			default:
				return fmt.Errorf("unknown preference %q (want theme, language or mock)", key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s = %s\n", key, value)
			return nil
		},
	}
}

func newServeFixturesCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		latency bool
	)
	cmd := &cobra.Command{
		Use:   "serve-fixtures",
		Short: "Serve the built-in fixture catalog over HTTP",
		Long:  "serve-fixtures runs a local analysis service backed by the fixture catalog, for development without the real backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(flags)
			if err != nil {
				return err
			}
			defer sess.Close()

			var opts []fixtureserver.Option
			if latency {
				opts = append(opts, fixtureserver.WithLatency())
			}
			srv := fixtureserver.New(fixture.New(), opts...)

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			ready := make(chan string, 1)
			go func() {
				select {
				case a := <-ready:
					fmt.Fprintf(cmd.OutOrStdout(), "Serving fixtures on http://%s\n", a)
				case <-ctx.Done():
				}
			}()
			return srv.ListenAndServe(ctx, addr, ready)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&latency, "latency", false, "simulate backend latency")
	return cmd
}
