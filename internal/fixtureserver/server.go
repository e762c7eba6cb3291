// Package fixtureserver serves the analysis service contract from the
// fixture catalog, so the client can run its live path against a local stub.
package fixtureserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/meeran-official/news-analyzer/internal/fixture"
	"github.com/meeran-official/news-analyzer/internal/gateway"
	"github.com/meeran-official/news-analyzer/internal/logging"
)

// MaxTopicLength is the longest topic the stub accepts.
const MaxTopicLength = 200

// Server answers suggestions, random-topic and analyze requests.
type Server struct {
	catalog *fixture.Catalog
	latency bool
}

// Option configures a Server.
type Option func(*Server)

// WithLatency makes the stub sleep like mock mode does before answering.
func WithLatency() Option {
	return func(s *Server) { s.latency = true }
}

// New creates a Server backed by catalog.
func New(catalog *fixture.Catalog, opts ...Option) *Server {
	if catalog == nil {
		catalog = fixture.New()
	}
	s := &Server{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	mux.Use(requestLogger)

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get(gateway.PathSuggestions, s.handleSuggestions)
	mux.Get(gateway.PathRandomTopic, s.handleRandomTopic)
	mux.Get(gateway.PathAnalyze, s.handleAnalyze)

	return mux
}

// GET /api/v1/analyze/suggestions
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r.Context(), 300*time.Millisecond, 800*time.Millisecond) {
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Suggestions())
}

// GET /api/v1/analyze/random-topic
// Plain text body.
func (s *Server) handleRandomTopic(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r.Context(), 200*time.Millisecond, 500*time.Millisecond) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(s.catalog.RandomTopic()))
}

// GET /api/v1/analyze?topic=...&language=english|tamil
// Errors are plain text so the client can show them verbatim.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	if topic == "" {
		http.Error(w, "Topic must not be empty", http.StatusBadRequest)
		return
	}
	if len([]rune(topic)) > MaxTopicLength {
		http.Error(w, "Topic is too long", http.StatusBadRequest)
		return
	}
	switch lang := r.URL.Query().Get("language"); lang {
	case "", "english", "tamil":
	default:
		http.Error(w, "Unsupported language: "+lang, http.StatusBadRequest)
		return
	}

	if !s.wait(r.Context(), time.Second, 3*time.Second) {
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Analysis(topic))
}

// wait applies simulated latency when enabled. It reports false when the
// client went away.
func (s *Server) wait(ctx context.Context, min, max time.Duration) bool {
	if !s.latency {
		return true
	}
	return s.catalog.RandomDelay(ctx, min, max) == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("fixture server encode failed", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug("fixture request", "method", r.Method, "path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"), "dur", time.Since(start))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, if non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	logging.Info("fixture server listening", "addr", ln.Addr().String())
	if ready != nil {
		ready <- ln.Addr().String()
	}
	return g.Wait()
}
