package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides, read once at startup.
const (
	EnvBaseURL  = "NEWS_ANALYZER_API_BASE_URL"
	EnvLogLevel = "NEWS_ANALYZER_LOG_LEVEL"
	EnvDataDir  = "NEWS_ANALYZER_DATA_DIR"
)

// Config is the persistent application configuration
type Config struct {
	API          APIConfig          `yaml:"api"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	UI           UIConfig           `yaml:"ui"`
	Log          LogConfig          `yaml:"log"`

	// DataDir holds the preference database and log files.
	DataDir string `yaml:"data_dir"`
}

// APIConfig configures the remote analysis service
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int           `yaml:"burst"`
}

// OrchestratorConfig holds request sequencing settings
type OrchestratorConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	FallbackToMock bool          `yaml:"fallback_to_mock"`
	FallbackTopic  string        `yaml:"fallback_topic"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	SuggestionsVisible     int           `yaml:"suggestions_visible"`
	LoadingMessageInterval time.Duration `yaml:"loading_message_interval"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8080",
			Timeout:   30 * time.Second,
			RateLimit: 2,
			Burst:     3,
		},
		Orchestrator: OrchestratorConfig{
			Debounce:       300 * time.Millisecond,
			FallbackToMock: false,
			FallbackTopic:  "Global AI Regulation",
		},
		UI: UIConfig{
			SuggestionsVisible:     4,
			LoadingMessageInterval: 2 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		DataDir: DefaultDataDir(),
	}
}

// DefaultDataDir returns ~/.news-analyzer
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".news-analyzer"
	}
	return filepath.Join(home, ".news-analyzer")
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads config from path, or returns defaults when the file does not
// exist. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		c.DataDir = v
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must not be negative")
	}
	if c.Orchestrator.Debounce < 0 {
		return errors.New("orchestrator.debounce must not be negative")
	}
	if strings.TrimSpace(c.Orchestrator.FallbackTopic) == "" {
		return errors.New("orchestrator.fallback_topic must not be empty")
	}
	if c.UI.SuggestionsVisible < 1 {
		return errors.New("ui.suggestions_visible must be at least 1")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

// DBPath returns the preference database path inside DataDir
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "preferences.db")
}
