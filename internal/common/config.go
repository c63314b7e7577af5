package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Claude      ClaudeConfig     `toml:"claude"`
	Gemini      GeminiConfig     `toml:"gemini"`
	Apify       ApifyConfig      `toml:"apify"`
	Research    ResearchConfig   `toml:"research"`
	Brand       BrandConfig      `toml:"brand"`
	Processing  ProcessingConfig `toml:"processing"`
	RAG         RAGConfig        `toml:"rag"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// ClaudeConfig contains Anthropic Claude API configuration for generation
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for copy generation (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "5m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// GeminiConfig contains Google Gemini API configuration for embeddings
type GeminiConfig struct {
	APIKey         string `toml:"api_key"`         // Google Gemini API key
	EmbedModel     string `toml:"embed_model"`     // Embedding model (default: "gemini-embedding-001")
	EmbedDimension int    `toml:"embed_dimension"` // Embedding vector dimension (default: 1024)
	Timeout        string `toml:"timeout"`         // Operation timeout as duration string (default: "1m")
}

// ApifyConfig contains Apify actor platform configuration for social scraping
type ApifyConfig struct {
	APIToken       string        `toml:"api_token"`       // Apify API token
	BaseURL        string        `toml:"base_url"`        // Apify API base URL
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout (actor runs are long)
	RateLimit      time.Duration `toml:"rate_limit"`      // Minimum time between actor run requests
}

// ResearchConfig contains Perplexity web research configuration
type ResearchConfig struct {
	APIKey         string        `toml:"api_key"`         // Perplexity API key (empty = research disabled)
	BaseURL        string        `toml:"base_url"`        // Perplexity API base URL
	Model          string        `toml:"model"`           // Research model (default: "sonar")
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	RateLimit      time.Duration `toml:"rate_limit"`      // Minimum time between research requests
}

// BrandConfig identifies the brand this instance generates copy for
type BrandConfig struct {
	Name       string `toml:"name"`        // Brand name used for voice profile lookups
	Handle     string `toml:"handle"`      // Primary social handle (without @)
	WebsiteURL string `toml:"website_url"` // Brand website for voice analysis scraping
}

// ProcessingConfig controls the embedding backfill schedule
type ProcessingConfig struct {
	Enabled  bool   `toml:"enabled"`  // Run backfill on a cron schedule
	Schedule string `toml:"schedule"` // Cron schedule format
	Limit    int    `toml:"limit"`    // Max content rows to backfill per run
}

// RAGConfig controls retrieval behavior for context assembly
type RAGConfig struct {
	MaxExamples    int     `toml:"max_examples"`    // Viral examples per generation request
	MatchThreshold float64 `toml:"match_threshold"` // Minimum cosine similarity for retrieval
	PositiveLimit  int     `toml:"positive_limit"`  // Positive feedback examples per request
	NegativeLimit  int     `toml:"negative_limit"`  // Negative feedback examples per request
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability;
// only user-facing settings should be exposed in copydesk.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Timeout:     "5m",
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			EmbedModel:     "gemini-embedding-001",
			EmbedDimension: 1024,
			Timeout:        "1m",
		},
		Apify: ApifyConfig{
			BaseURL:        "https://api.apify.com/v2",
			RequestTimeout: 5 * time.Minute, // Actor runs block until the dataset is ready
			RateLimit:      1 * time.Second,
		},
		Research: ResearchConfig{
			BaseURL:        "https://api.perplexity.ai",
			Model:          "sonar",
			RequestTimeout: 30 * time.Second,
			RateLimit:      1 * time.Second,
		},
		Brand: BrandConfig{
			Name:   "YourSalonSupport",
			Handle: "yoursalonsupport",
		},
		Processing: ProcessingConfig{
			Enabled:  false,           // Disabled by default - user must explicitly opt-in
			Schedule: "0 0 */6 * * *", // Every 6 hours (cron format)
			Limit:    500,
		},
		RAG: RAGConfig{
			MaxExamples:    5,
			MatchThreshold: 0.3,
			PositiveLimit:  3,
			NegativeLimit:  2,
		},
	}
}

// LoadFromFile loads configuration from a TOML file over defaults,
// then applies environment variable overrides.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies COPYDESK_* environment variables on top of
// file configuration. Env vars win over the file so deployments can
// inject secrets without editing copydesk.toml.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("COPYDESK_CLAUDE_API_KEY"); v != "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("COPYDESK_GEMINI_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
	if v := os.Getenv("COPYDESK_APIFY_API_TOKEN"); v != "" {
		config.Apify.APIToken = v
	}
	if v := os.Getenv("COPYDESK_PERPLEXITY_API_KEY"); v != "" {
		config.Research.APIKey = v
	}
	if v := os.Getenv("COPYDESK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("COPYDESK_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("COPYDESK_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks configuration invariants that would otherwise surface
// as runtime failures deep inside a service.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Storage.Badger.Path == "" {
		return fmt.Errorf("storage.badger.path is required")
	}
	if c.Gemini.EmbedDimension <= 0 {
		return fmt.Errorf("gemini.embed_dimension must be positive, got %d", c.Gemini.EmbedDimension)
	}
	if c.RAG.MatchThreshold < 0 || c.RAG.MatchThreshold > 1 {
		return fmt.Errorf("rag.match_threshold must be in [0,1], got %f", c.RAG.MatchThreshold)
	}
	if _, err := time.ParseDuration(c.Claude.Timeout); err != nil {
		return fmt.Errorf("invalid claude.timeout %q: %w", c.Claude.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini.timeout %q: %w", c.Gemini.Timeout, err)
	}
	return nil
}
