// Package orchestrator sequences analysis requests in response to user
// actions and startup, and owns the loading / error / result state.
//
// It is a Bubble Tea sub-model: every transition happens inside Update on the
// program's event loop, and gateway calls run as tea.Cmds that report back
// with messages. That gives the single-threaded, cooperative scheduling the
// guard below relies on.
//
// Rules:
//   - at most one analysis in flight; triggers that arrive meanwhile are
//     dropped, never queued
//   - random-topic triggers are debounced; only the last one in the window runs
//   - Clear never cancels a request, it only makes its completion stale
//   - every settle leaves a terminal state (never stuck in loading)
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/events"
	"github.com/meeran-official/news-analyzer/internal/logging"
)

// DefaultFallbackTopic is used when the random-topic call fails.
const DefaultFallbackTopic = "Global AI Regulation"

// DefaultDebounce is the random-topic debounce window.
const DefaultDebounce = 300 * time.Millisecond

// Gateway is the data access the orchestrator needs. *gateway.Gateway
// satisfies it.
type Gateway interface {
	FetchSuggestions(ctx context.Context) ([]string, error)
	FetchRandomTopic(ctx context.Context) (string, error)
	FetchAnalysis(ctx context.Context, topic string, lang analysis.Language) (analysis.Record, error)
	FixtureAnalysis(ctx context.Context, topic string) (analysis.Record, error)
	MockMode() bool
}

// Preferences is the slice of session preferences the orchestrator touches.
// The request flag is the single-flight guard. *prefs.Store satisfies it.
type Preferences interface {
	Language() analysis.Language
	RequestInProgress() bool
	SetRequestInProgress(bool)
}

// Policy holds the orchestrator's tunables.
type Policy struct {
	// FallbackToMock substitutes fixture data when a live analysis fails.
	// Off by default: a live-mode user sees the real error unless they opt in.
	FallbackToMock bool
	// FallbackTopic is used when the random-topic call fails.
	FallbackTopic string
	// Debounce is the random-topic debounce window.
	Debounce time.Duration
}

// DefaultPolicy returns the defaults.
func DefaultPolicy() Policy {
	return Policy{
		FallbackToMock: false,
		FallbackTopic:  DefaultFallbackTopic,
		Debounce:       DefaultDebounce,
	}
}

// Phase is the state of the current analysis.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	}
	return "idle"
}

type opKind int

const (
	opNone opKind = iota
	opAnalyze
	opRandom
)

type operation struct {
	kind  opKind
	topic string
}

func (k opKind) String() string {
	switch k {
	case opAnalyze:
		return "analyze"
	case opRandom:
		return "random"
	}
	return ""
}

// Model is the orchestrator state.
type Model struct {
	ctx    context.Context
	gw     Gateway
	prefs  Preferences
	policy Policy

	phase    Phase
	topic    string
	topicRev int // bumped whenever the orchestrator changes the topic input
	result   analysis.Record
	errMsg   string

	substituted bool
	cause       string

	suggestions        []string
	suggestionsLoaded  bool
	suggestionsLoading bool
	suggestionsErr     string

	gen       int // generation of the current request; Clear bumps it
	randomSeq int // latest random trigger; older debounce ticks are discarded
	lastOp    operation
	dropped   int
	started   time.Time // when the current request began

	events *events.RingBuffer
}

// New creates an orchestrator. ctx bounds every gateway call it issues.
func New(ctx context.Context, gw Gateway, prefs Preferences, policy Policy) Model {
	if policy.FallbackTopic == "" {
		policy.FallbackTopic = DefaultFallbackTopic
	}
	if policy.Debounce <= 0 {
		policy.Debounce = DefaultDebounce
	}
	return Model{
		ctx:    ctx,
		gw:     gw,
		prefs:  prefs,
		policy: policy,
		events: events.NewRingBuffer(events.DefaultRingSize),
	}
}

// Init kicks off the startup sequence: random topic, then its analysis and
// the suggestion list.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return startupMsg{} }
}

// Update handles triggers and gateway results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startupMsg:
		return m.startRandom(true)

	case AnalyzeMsg:
		return m.startAnalysis(msg.Topic)

	case SelectMsg:
		return m.startAnalysis(msg.Topic)

	case RandomMsg:
		if m.prefs.RequestInProgress() {
			m.drop(opRandom, "")
			logging.Debug("random trigger dropped: request in flight")
			return m, nil
		}
		m.randomSeq++
		seq := m.randomSeq
		return m, tea.Tick(m.policy.Debounce, func(time.Time) tea.Msg {
			return randomTickMsg{seq: seq}
		})

	case randomTickMsg:
		if msg.seq != m.randomSeq {
			return m, nil
		}
		return m.startRandom(false)

	case RetryMsg:
		switch m.lastOp.kind {
		case opAnalyze:
			return m.startAnalysis(m.lastOp.topic)
		case opRandom:
			return m.startRandom(false)
		}
		return m, nil

	case ClearMsg:
		m.phase = PhaseIdle
		m.topic = ""
		m.topicRev++
		m.result = analysis.Record{}
		m.errMsg = ""
		m.substituted = false
		m.cause = ""
		m.gen++
		m.randomSeq++
		m.record(events.Event{Kind: events.KindCleared, Gen: m.gen})
		return m, nil

	case RefreshSuggestionsMsg:
		if m.suggestionsLoading {
			return m, nil
		}
		m.suggestionsLoading = true
		return m, m.fetchSuggestions()

	case randomTopicMsg:
		return m.handleRandomTopic(msg)

	case analysisMsg:
		return m.handleAnalysis(msg)

	case suggestionsMsg:
		m.suggestionsLoading = false
		m.suggestionsLoaded = true
		if msg.err != nil {
			logging.Warn("suggestions fetch failed", "error", msg.err)
			m.suggestions = nil
			m.suggestionsErr = analysis.UserMessage(msg.err)
			m.record(events.Event{Kind: events.KindSuggestionsErr, Op: "suggestions", Err: m.suggestionsErr})
		} else {
			m.suggestions = msg.topics
			m.suggestionsErr = ""
			m.record(events.Event{Kind: events.KindSuggestions, Op: "suggestions", Count: len(msg.topics)})
		}
		return m, nil
	}

	return m, nil
}

// startAnalysis is the guarded entry for every analysis trigger.
func (m Model) startAnalysis(topic string) (Model, tea.Cmd) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return m, nil
	}
	if m.prefs.RequestInProgress() {
		m.drop(opAnalyze, topic)
		logging.Debug("analysis trigger dropped: request in flight", "topic", topic)
		return m, nil
	}

	m.prefs.SetRequestInProgress(true)
	m.gen++
	m.lastOp = operation{kind: opAnalyze, topic: topic}
	m.setTopic(topic)
	m.enterLoading()
	m.begin(opAnalyze, topic)
	return m, m.fetchAnalysis(m.gen, topic)
}

// startRandom begins the random-topic flow. The guard is held from the topic
// fetch through the analysis that follows it.
func (m Model) startRandom(startup bool) (Model, tea.Cmd) {
	if m.prefs.RequestInProgress() {
		m.drop(opRandom, "")
		return m, nil
	}

	m.prefs.SetRequestInProgress(true)
	m.gen++
	m.lastOp = operation{kind: opRandom}
	m.enterLoading()
	m.begin(opRandom, "")

	gen, gw, ctx := m.gen, m.gw, m.ctx
	return m, func() tea.Msg {
		topic, err := gw.FetchRandomTopic(ctx)
		return randomTopicMsg{gen: gen, topic: topic, err: err, startup: startup}
	}
}

func (m Model) handleRandomTopic(msg randomTopicMsg) (Model, tea.Cmd) {
	var extra tea.Cmd
	if msg.startup && !m.suggestionsLoaded && !m.suggestionsLoading {
		m.suggestionsLoading = true
		extra = m.fetchSuggestions()
	}

	if msg.gen != m.gen {
		// Cleared while the topic was in flight.
		m.prefs.SetRequestInProgress(false)
		m.record(events.Event{Kind: events.KindRequestStale, Op: "random", Gen: msg.gen})
		return m, extra
	}

	topic := strings.TrimSpace(msg.topic)
	if msg.err != nil || topic == "" {
		logging.Warn("random topic failed, using fallback", "error", msg.err, "fallback", m.policy.FallbackTopic)
		topic = m.policy.FallbackTopic
		ev := events.Event{Kind: events.KindTopicFallback, Op: "random", Topic: topic, Gen: m.gen}
		if msg.err != nil {
			ev.Err = msg.err.Error()
		}
		m.record(ev)
	}

	m.lastOp = operation{kind: opAnalyze, topic: topic}
	m.setTopic(topic)
	return m, tea.Batch(m.fetchAnalysis(m.gen, topic), extra)
}

func (m Model) handleAnalysis(msg analysisMsg) (Model, tea.Cmd) {
	m.prefs.SetRequestInProgress(false)

	if msg.gen != m.gen || m.phase != PhaseLoading {
		logging.Debug("discarding stale analysis", "topic", msg.topic)
		m.record(events.Event{Kind: events.KindRequestStale, Op: "analyze", Topic: msg.topic, Gen: msg.gen})
		return m, nil
	}

	dur := time.Since(m.started)
	if msg.err != nil {
		m.phase = PhaseError
		m.errMsg = analysis.UserMessage(msg.err)
		m.result = analysis.Record{}
		logging.Info("analysis failed", "topic", msg.topic, "error", msg.err)
		m.record(events.Event{Kind: events.KindRequestError, Op: "analyze", Topic: msg.topic, Gen: msg.gen, Dur: dur, Err: m.errMsg})
		return m, nil
	}

	m.phase = PhaseResult
	m.result = msg.record
	m.errMsg = ""
	m.substituted = msg.substituted
	m.cause = msg.cause
	logging.Info("analysis loaded", "topic", msg.topic, "substituted", msg.substituted)
	if msg.substituted {
		m.record(events.Event{Kind: events.KindSubstituted, Op: "analyze", Topic: msg.topic, Gen: msg.gen, Err: msg.cause})
	}
	m.record(events.Event{Kind: events.KindRequestDone, Op: "analyze", Topic: msg.topic, Gen: msg.gen, Dur: dur})

	topic := msg.topic
	return m, func() tea.Msg { return ResultReadyMsg{Topic: topic} }
}

func (m *Model) enterLoading() {
	m.phase = PhaseLoading
	m.errMsg = ""
	m.result = analysis.Record{}
	m.substituted = false
	m.cause = ""
}

func (m *Model) setTopic(topic string) {
	m.topic = topic
	m.topicRev++
}

func (m *Model) begin(op opKind, topic string) {
	m.started = time.Now()
	m.record(events.Event{Kind: events.KindRequestStart, Op: op.String(), Topic: topic, Gen: m.gen})
}

func (m *Model) drop(op opKind, topic string) {
	m.dropped++
	m.record(events.Event{Kind: events.KindRequestDropped, Op: op.String(), Topic: topic})
}

func (m *Model) record(e events.Event) {
	e.Time = time.Now()
	m.events.Push(e)
}

// fetchAnalysis returns the command for one analysis request, applying the
// fallback policy inside the command so the guard covers it.
func (m Model) fetchAnalysis(gen int, topic string) tea.Cmd {
	gw, ctx, policy := m.gw, m.ctx, m.policy
	lang := m.prefs.Language()
	return func() tea.Msg {
		mock := gw.MockMode()
		rec, err := gw.FetchAnalysis(ctx, topic, lang)
		if err == nil {
			return analysisMsg{gen: gen, topic: topic, record: rec}
		}

		var ae *analysis.AnalysisError
		if policy.FallbackToMock && !mock && errors.As(err, &ae) && ctx.Err() == nil {
			fb, ferr := gw.FixtureAnalysis(ctx, topic)
			if ferr == nil {
				logging.Warn("substituting fixture analysis", "topic", topic, "cause", ae.Message)
				return analysisMsg{gen: gen, topic: topic, record: fb, substituted: true, cause: ae.Message}
			}
		}
		return analysisMsg{gen: gen, topic: topic, err: err}
	}
}

func (m Model) fetchSuggestions() tea.Cmd {
	gw, ctx := m.gw, m.ctx
	return func() tea.Msg {
		topics, err := gw.FetchSuggestions(ctx)
		return suggestionsMsg{topics: topics, err: err}
	}
}

// Phase returns the current phase.
func (m Model) Phase() Phase { return m.phase }

// Loading reports whether an analysis is being fetched.
func (m Model) Loading() bool { return m.phase == PhaseLoading }

// Topic returns the topic the orchestrator last set as input.
func (m Model) Topic() string { return m.topic }

// TopicRev changes every time the orchestrator sets the topic input; the UI
// copies Topic into its text field when it sees a new revision.
func (m Model) TopicRev() int { return m.topicRev }

// Record returns the current result, if any.
func (m Model) Record() (analysis.Record, bool) {
	return m.result, m.phase == PhaseResult
}

// Err returns the user-visible error message in PhaseError.
func (m Model) Err() string { return m.errMsg }

// Substituted reports whether the current result is fixture data standing in
// for a failed live call, and the live failure message.
func (m Model) Substituted() (bool, string) { return m.substituted, m.cause }

// Suggestions returns the loaded suggestion list.
func (m Model) Suggestions() []string { return m.suggestions }

// SuggestionsLoaded distinguishes "not loaded yet" from "loaded but empty".
func (m Model) SuggestionsLoaded() bool { return m.suggestionsLoaded }

// SuggestionsErr is the last suggestion fetch failure, if any.
func (m Model) SuggestionsErr() string { return m.suggestionsErr }

// CanRetry reports whether there is an operation to re-issue.
func (m Model) CanRetry() bool { return m.lastOp.kind != opNone }

// Dropped counts triggers skipped because a request was in flight.
func (m Model) Dropped() int { return m.dropped }

// Policy returns the active policy.
func (m Model) Policy() Policy { return m.policy }

// Events returns the most recent n request events, oldest first.
func (m Model) Events(n int) []events.Event { return m.events.Last(n) }
