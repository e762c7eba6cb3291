package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/fixture"
)

// fakePrefs is a fixed Preferences.
type fakePrefs struct {
	mock bool
	lang analysis.Language
}

func (p fakePrefs) UseMockData() bool             { return p.mock }
func (p fakePrefs) Language() analysis.Language { return p.lang }

// instantCatalog skips simulated delays and records them.
func instantCatalog(delays *[]time.Duration) *fixture.Catalog {
	return fixture.New(fixture.WithSleep(func(ctx context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return ctx.Err()
	}))
}

// countingServer fails the test if mock mode ever reaches the network.
func countingServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSuggestionsLive(t *testing.T) {
	var gotPath, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["Ocean Plastics","Cybersecurity Threats"]`))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL + "/"}, fakePrefs{}, nil)
	topics, err := g.FetchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("FetchSuggestions failed: %v", err)
	}
	if len(topics) != 2 || topics[0] != "Ocean Plastics" {
		t.Errorf("unexpected topics %v", topics)
	}
	if gotPath != PathSuggestions {
		t.Errorf("expected path %s, got %s", PathSuggestions, gotPath)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestFetchSuggestionsNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"topics":[]}`))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	_, err := g.FetchSuggestions(context.Background())
	var netErr *analysis.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestFetchSuggestionsNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	if _, err := g.FetchSuggestions(context.Background()); err == nil {
		t.Error("null body should be rejected")
	}
}

func TestFetchSuggestionsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	_, err := g.FetchSuggestions(context.Background())
	var netErr *analysis.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", netErr.Status)
	}
}

func TestFetchSuggestionsMockSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := countingServer(t, &calls)

	var delays []time.Duration
	g := New(Config{BaseURL: srv.URL}, fakePrefs{mock: true}, instantCatalog(&delays))
	topics, err := g.FetchSuggestions(context.Background())
	if err != nil {
		t.Fatalf("mock suggestions failed: %v", err)
	}
	if len(topics) != 10 {
		t.Errorf("expected 10 fixture suggestions, got %d", len(topics))
	}
	if calls.Load() != 0 {
		t.Errorf("mock mode made %d network calls", calls.Load())
	}
	if len(delays) != 1 || delays[0] < 300*time.Millisecond || delays[0] >= 800*time.Millisecond {
		t.Errorf("expected one delay in [300ms, 800ms), got %v", delays)
	}
}

func TestFetchRandomTopicLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathRandomTopic {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("Global Water Scarcity\n"))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	topic, err := g.FetchRandomTopic(context.Background())
	if err != nil {
		t.Fatalf("FetchRandomTopic failed: %v", err)
	}
	if topic != "Global Water Scarcity" {
		t.Errorf("expected trimmed topic, got %q", topic)
	}
}

func TestFetchRandomTopicTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := New(Config{BaseURL: url}, fakePrefs{}, nil)
	_, err := g.FetchRandomTopic(context.Background())
	var netErr *analysis.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if netErr.Op != "random-topic" {
		t.Errorf("unexpected op %q", netErr.Op)
	}
}

func TestFetchRandomTopicMock(t *testing.T) {
	var calls atomic.Int32
	srv := countingServer(t, &calls)

	var delays []time.Duration
	g := New(Config{BaseURL: srv.URL}, fakePrefs{mock: true}, instantCatalog(&delays))
	topic, err := g.FetchRandomTopic(context.Background())
	if err != nil {
		t.Fatalf("mock random topic failed: %v", err)
	}

	found := false
	for _, tp := range fixture.New().RandomTopics() {
		if tp == topic {
			found = true
		}
	}
	if !found {
		t.Errorf("topic %q not from fixture pool", topic)
	}
	if calls.Load() != 0 {
		t.Error("mock mode should not touch the network")
	}
	if len(delays) != 1 || delays[0] < 200*time.Millisecond || delays[0] >= 500*time.Millisecond {
		t.Errorf("expected one delay in [200ms, 500ms), got %v", delays)
	}
}

func TestFetchAnalysisLive(t *testing.T) {
	var gotTopic, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTopic = r.URL.Query().Get("topic")
		gotLang = r.URL.Query().Get("language")
		w.Write([]byte(`{
			"topic": "Ocean Plastics & Fisheries",
			"summary": "s", "aggregatedProblem": "p", "solutionProposal": "sp",
			"proposingViewpoint": "pv", "opposingViewpoint": "ov",
			"historicalPerspective": "hp", "motivationalProverb": "mp"
		}`))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	rec, err := g.FetchAnalysis(context.Background(), "  Ocean Plastics & Fisheries ", analysis.Tamil)
	if err != nil {
		t.Fatalf("FetchAnalysis failed: %v", err)
	}
	if gotTopic != "Ocean Plastics & Fisheries" {
		t.Errorf("topic should be trimmed and url-decoded server side, got %q", gotTopic)
	}
	if gotLang != "tamil" {
		t.Errorf("expected language=tamil, got %q", gotLang)
	}
	if rec.OpposingViewpoint != "ov" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestFetchAnalysisServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("topic too long"))
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	_, err := g.FetchAnalysis(context.Background(), "x", analysis.English)
	var ae *analysis.AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AnalysisError, got %v", err)
	}
	if ae.Message != "topic too long" || ae.Status != 500 {
		t.Errorf("unexpected error %+v", ae)
	}
}

func TestFetchAnalysisEmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
	_, err := g.FetchAnalysis(context.Background(), "Digital Privacy Rights", analysis.English)
	if err == nil || err.Error() != "Failed to fetch analysis for Digital Privacy Rights" {
		t.Errorf("expected generic message, got %v", err)
	}
}

func TestFetchAnalysisMalformedAndIncomplete(t *testing.T) {
	bodies := map[string]string{
		"malformed":  `{"topic":`,
		"incomplete": `{"topic":"x","summary":"only this"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			g := New(Config{BaseURL: srv.URL}, fakePrefs{}, nil)
			_, err := g.FetchAnalysis(context.Background(), "x", analysis.English)
			var ae *analysis.AnalysisError
			if !errors.As(err, &ae) {
				t.Fatalf("expected AnalysisError, got %v", err)
			}
		})
	}
}

func TestFetchAnalysisTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, fakePrefs{}, nil)
	start := time.Now()
	_, err := g.FetchAnalysis(context.Background(), "slow", analysis.English)
	var ae *analysis.AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AnalysisError on timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("request should be bounded by the configured timeout")
	}
}

func TestFetchAnalysisBlankTopic(t *testing.T) {
	var calls atomic.Int32
	srv := countingServer(t, &calls)

	for _, mock := range []bool{false, true} {
		g := New(Config{BaseURL: srv.URL}, fakePrefs{mock: mock}, instantCatalog(nil))
		_, err := g.FetchAnalysis(context.Background(), "   ", analysis.English)
		var ve *analysis.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("mock=%v: expected ValidationError, got %v", mock, err)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("blank topic reached the network %d times", calls.Load())
	}
}

func TestFetchAnalysisMockCatalogTopic(t *testing.T) {
	var calls atomic.Int32
	srv := countingServer(t, &calls)

	var delays []time.Duration
	g := New(Config{BaseURL: srv.URL}, fakePrefs{mock: true}, instantCatalog(&delays))

	first, err := g.FetchAnalysis(context.Background(), "Climate Change and Renewable Energy", analysis.English)
	if err != nil {
		t.Fatalf("mock analysis failed: %v", err)
	}
	if first.Topic != "Climate Change and Renewable Energy" {
		t.Errorf("unexpected topic %q", first.Topic)
	}
	want := "The best time to plant a tree was 20 years ago. The second best time is now."
	if first.MotivationalProverb != want {
		t.Errorf("unexpected proverb %q", first.MotivationalProverb)
	}

	second, _ := g.FetchAnalysis(context.Background(), "Climate Change and Renewable Energy", analysis.Tamil)
	if first != second {
		t.Error("repeated catalog lookups should be identical")
	}

	if calls.Load() != 0 {
		t.Error("mock analysis touched the network")
	}
	for _, d := range delays {
		if d < time.Second || d >= 3*time.Second {
			t.Errorf("analysis delay %v outside [1s, 3s)", d)
		}
	}
}

func TestFetchAnalysisMockUnknownTopic(t *testing.T) {
	g := New(Config{}, fakePrefs{mock: true}, instantCatalog(nil))
	rec, err := g.FetchAnalysis(context.Background(), "Underwater Basket Weaving", analysis.English)
	if err != nil {
		t.Fatalf("mock analysis failed: %v", err)
	}
	if rec.Topic != "Underwater Basket Weaving" {
		t.Errorf("expected requested topic, got %q", rec.Topic)
	}
	for _, f := range rec.Fields() {
		if f.Value == "" {
			t.Errorf("field %s is empty", f.Name)
		}
	}
}

func TestFixtureAnalysisCancelled(t *testing.T) {
	g := New(Config{}, fakePrefs{mock: true}, instantCatalog(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.FixtureAnalysis(ctx, "anything")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation to propagate, got %v", err)
	}
}

func TestMockModeFollowsPreferences(t *testing.T) {
	p := &togglePrefs{}
	g := New(Config{}, p, nil)
	if g.MockMode() {
		t.Error("mock mode should start off")
	}
	p.mock.Store(true)
	if !g.MockMode() {
		t.Error("gateway should pick up the preference change immediately")
	}
}

type togglePrefs struct{ mock atomic.Bool }

func (p *togglePrefs) UseMockData() bool             { return p.mock.Load() }
func (p *togglePrefs) Language() analysis.Language { return analysis.English }
