// Package prefs holds the user's preferences for the session: theme, language,
// mock-data toggle, plus the request-in-progress flag used as the single-flight
// guard for analysis requests.
//
// A Store is built once in main, loaded from persistent storage, and passed to
// whoever needs it. Only its setters write to storage.
package prefs

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/meeran-official/news-analyzer/internal/analysis"
	"github.com/meeran-official/news-analyzer/internal/logging"
)

// Persisted keys.
const (
	KeyTheme    = "news-analyzer-theme"
	KeyLanguage = "news-analyzer-language"
	KeyMockData = "news-analyzer-use-mock-data"
)

// Theme is the colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// narrowWidth is the terminal width below which the default theme is dark,
// the terminal counterpart of a phone-sized viewport.
const narrowWidth = 80

// ResponsiveTheme picks the default theme when none is persisted: dark on
// narrow terminals, otherwise whatever the terminal background suggests.
func ResponsiveTheme(width int, darkBackground bool) Theme {
	if width > 0 && width < narrowWidth {
		return Dark
	}
	if darkBackground {
		return Dark
	}
	return Light
}

// Storage is the persistence the Store writes through. store.Store satisfies
// it; MemoryStorage is the in-process version.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// State is a snapshot of every preference.
type State struct {
	Theme             Theme
	Language          analysis.Language
	UseMockData       bool
	RequestInProgress bool
	ThemeLoaded       bool
}

// Store is the session's preference state. Safe for concurrent use: gateway
// commands read it from their own goroutines.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	state   State
}

// New creates a Store with defaults. Call Load before trusting Theme.
func New(storage Storage) *Store {
	return &Store{
		storage: storage,
		state: State{
			Theme:    Light,
			Language: analysis.English,
		},
	}
}

// Load reads persisted values, falling back to defaults for anything missing
// or unreadable, and marks the theme as loaded. defaultTheme is consulted only
// when no theme is persisted. ThemeLoaded flips at most once.
func (s *Store) Load(defaultTheme func() Theme) error {
	theme := Light
	if defaultTheme != nil {
		theme = defaultTheme()
	}
	lang := analysis.English
	mock := false

	var firstErr error
	read := func(key string) (string, bool) {
		v, ok, err := s.storage.Get(key)
		if err != nil {
			logging.Warn("preference read failed", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			return "", false
		}
		return v, ok
	}

	if v, ok := read(KeyTheme); ok {
		if t, err := ParseTheme(v); err == nil {
			theme = t
		} else {
			logging.Warn("ignoring persisted theme", "value", v)
		}
	}
	if v, ok := read(KeyLanguage); ok {
		if l, err := analysis.ParseLanguage(v); err == nil {
			lang = l
		} else {
			logging.Warn("ignoring persisted language", "value", v)
		}
	}
	if v, ok := read(KeyMockData); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			mock = b
		} else {
			logging.Warn("ignoring persisted mock flag", "value", v)
		}
	}

	s.mu.Lock()
	s.state.Theme = theme
	s.state.Language = lang
	s.state.UseMockData = mock
	s.state.ThemeLoaded = true
	s.mu.Unlock()

	logging.Debug("preferences loaded", "theme", theme, "language", lang, "mock", mock)
	return firstErr
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

func (s *Store) Language() analysis.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Language
}

func (s *Store) UseMockData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UseMockData
}

func (s *Store) RequestInProgress() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RequestInProgress
}

func (s *Store) ThemeLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ThemeLoaded
}

// SetTheme updates and persists the theme.
func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Theme = t
	s.mu.Unlock()
	return s.persist(KeyTheme, string(t))
}

// SetLanguage updates and persists the language.
func (s *Store) SetLanguage(l analysis.Language) error {
	if _, err := analysis.ParseLanguage(string(l)); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.Language = l
	s.mu.Unlock()
	return s.persist(KeyLanguage, string(l))
}

// SetUseMockData updates and persists the mock-data toggle.
func (s *Store) SetUseMockData(on bool) error {
	s.mu.Lock()
	s.state.UseMockData = on
	s.mu.Unlock()
	return s.persist(KeyMockData, strconv.FormatBool(on))
}

// SetRequestInProgress sets the single-flight flag. Not persisted.
func (s *Store) SetRequestInProgress(on bool) {
	s.mu.Lock()
	s.state.RequestInProgress = on
	s.mu.Unlock()
}

// TryBeginRequest sets the single-flight flag if it is clear and reports
// whether it did. Callers that get false must skip, not wait.
func (s *Store) TryBeginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.RequestInProgress {
		return false
	}
	s.state.RequestInProgress = true
	return true
}

// EndRequest clears the single-flight flag.
func (s *Store) EndRequest() {
	s.SetRequestInProgress(false)
}

func (s *Store) persist(key, value string) error {
	if err := s.storage.Set(key, value); err != nil {
		logging.Error("preference write failed", "key", key, "error", err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// MemoryStorage is a Storage backed by a map.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
