// Package gateway is the single point of contact with the analysis service.
//
// Every caller goes through a Gateway, which decides per call whether to hit
// the network or answer from the fixture catalog (mock mode). The Gateway
// never substitutes fixture data for a failed live call on its own; that
// decision belongs to the caller (see FixtureAnalysis).
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/fixture"
	"github.com/meeran-official/news-analyzer/internal/logging"
)

// Endpoint paths, relative to Config.BaseURL.
const (
	PathSuggestions = "/api/v1/analyze/suggestions"
	PathRandomTopic = "/api/v1/analyze/random-topic"
	PathAnalyze     = "/api/v1/analyze"
)

// maxBodyBytes caps how much of any response is read.
const maxBodyBytes = 1 << 20

// delayRange is a simulated latency window for mock mode.
type delayRange struct{ min, max time.Duration }

var (
	suggestionsDelay = delayRange{300 * time.Millisecond, 800 * time.Millisecond}
	randomTopicDelay = delayRange{200 * time.Millisecond, 500 * time.Millisecond}
	analysisDelay    = delayRange{1000 * time.Millisecond, 3000 * time.Millisecond}
)

// Preferences is what the gateway reads from the session preferences on
// every call. *prefs.Store satisfies it.
type Preferences interface {
	UseMockData() bool
	Language() analysis.Language
}

// Config configures the live transport.
type Config struct {
	BaseURL   string
	Timeout   time.Duration // per request; 0 means 30s
	RateLimit float64       // requests per second; <= 0 disables limiting
	Burst     int
	UserAgent string
}

// Gateway fetches suggestions, random topics and analyses.
// Safe for concurrent use.
type Gateway struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	prefs     Preferences
	catalog   *fixture.Catalog
}

// New creates a Gateway. prefs is consulted on every call, so toggling mock
// mode takes effect immediately.
func New(cfg Config, prefs Preferences, catalog *fixture.Catalog) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "news-analyzer/1.0"
	}

	if catalog == nil {
		catalog = fixture.New()
	}

	return &Gateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   timeout,
		userAgent: ua,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
		prefs:     prefs,
		catalog:   catalog,
	}
}

// MockMode reports whether calls are currently served from fixtures.
func (g *Gateway) MockMode() bool {
	return g.prefs != nil && g.prefs.UseMockData()
}

// FetchSuggestions returns the trending-topic list.
func (g *Gateway) FetchSuggestions(ctx context.Context) ([]string, error) {
	if g.MockMode() {
		if err := g.catalog.RandomDelay(ctx, suggestionsDelay.min, suggestionsDelay.max); err != nil {
			return nil, &analysis.NetworkError{Op: "suggestions", Err: err}
		}
		return g.catalog.Suggestions(), nil
	}

	status, body, err := g.get(ctx, "suggestions", PathSuggestions, nil)
	if err != nil {
		return nil, &analysis.NetworkError{Op: "suggestions", Err: err}
	}
	if !ok(status) {
		return nil, &analysis.NetworkError{Op: "suggestions", Status: status}
	}

	var topics []string
	if err := json.Unmarshal(body, &topics); err != nil {
		return nil, &analysis.NetworkError{Op: "suggestions", Err: fmt.Errorf("decode suggestions: %w", err)}
	}
	if topics == nil {
		// JSON null is not an array.
		return nil, &analysis.NetworkError{Op: "suggestions", Err: errors.New("decode suggestions: not an array")}
	}
	return topics, nil
}

// FetchRandomTopic returns one topic picked by the service.
func (g *Gateway) FetchRandomTopic(ctx context.Context) (string, error) {
	if g.MockMode() {
		if err := g.catalog.RandomDelay(ctx, randomTopicDelay.min, randomTopicDelay.max); err != nil {
			return "", &analysis.NetworkError{Op: "random-topic", Err: err}
		}
		return g.catalog.RandomTopic(), nil
	}

	status, body, err := g.get(ctx, "random-topic", PathRandomTopic, nil)
	if err != nil {
		return "", &analysis.NetworkError{Op: "random-topic", Err: err}
	}
	if !ok(status) {
		return "", &analysis.NetworkError{Op: "random-topic", Status: status}
	}

	topic := strings.TrimSpace(string(body))
	if topic == "" {
		return "", &analysis.NetworkError{Op: "random-topic", Err: errors.New("empty topic in response")}
	}
	return topic, nil
}

// FetchAnalysis returns the analysis of topic in lang. A blank topic fails
// with a ValidationError before any I/O.
func (g *Gateway) FetchAnalysis(ctx context.Context, topic string, lang analysis.Language) (analysis.Record, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return analysis.Record{}, analysis.ErrEmptyTopic
	}

	if g.MockMode() {
		return g.FixtureAnalysis(ctx, topic)
	}

	query := url.Values{}
	query.Set("topic", topic)
	query.Set("language", lang.WireValue())

	status, body, err := g.get(ctx, "analyze", PathAnalyze, query)
	if err != nil {
		return analysis.Record{}, &analysis.AnalysisError{
			Topic:   topic,
			Message: fmt.Sprintf("Failed to fetch analysis for %s: %v", topic, err),
			Err:     err,
		}
	}
	if !ok(status) {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "Failed to fetch analysis for " + topic
		}
		return analysis.Record{}, &analysis.AnalysisError{Topic: topic, Message: msg, Status: status}
	}

	var rec analysis.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return analysis.Record{}, &analysis.AnalysisError{
			Topic:   topic,
			Message: "Malformed analysis response for " + topic,
			Status:  status,
			Err:     err,
		}
	}
	if err := rec.Validate(); err != nil {
		return analysis.Record{}, &analysis.AnalysisError{
			Topic:   topic,
			Message: "Incomplete analysis response for " + topic,
			Status:  status,
			Err:     err,
		}
	}
	return rec, nil
}

// FixtureAnalysis serves topic from the fixture catalog after a simulated
// delay: the exact record when the catalog has one, otherwise a synthesized
// one. Mock mode uses it; callers with an explicit fallback policy may too.
func (g *Gateway) FixtureAnalysis(ctx context.Context, topic string) (analysis.Record, error) {
	if err := g.catalog.RandomDelay(ctx, analysisDelay.min, analysisDelay.max); err != nil {
		return analysis.Record{}, &analysis.AnalysisError{Topic: topic, Message: "Analysis cancelled", Err: err}
	}
	return g.catalog.Analysis(topic), nil
}

// get performs one rate-limited GET with its own deadline and returns the
// status and (capped) body. err is set only for transport-level failures.
func (g *Gateway) get(ctx context.Context, op, path string, query url.Values) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	logging.Debug("gateway request", "op", op, "url", endpoint, "request_id", reqID)

	resp, err := g.client.Do(req)
	if err != nil {
		logging.Warn("gateway transport error", "op", op, "request_id", reqID, "error", err)
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	logging.Debug("gateway response", "op", op, "status", resp.StatusCode,
		"request_id", reqID, "dur", time.Since(start), "bytes", len(body))
	if !ok(resp.StatusCode) {
		logging.Warn("gateway non-success status", "op", op, "status", resp.StatusCode, "request_id", reqID)
	}
	return resp.StatusCode, body, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
