// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Crawling
	SeedURL     string  `json:"seed_url,omitempty" validate:"omitempty,url"`      // URL the crawl starts from
	ScopePrefix string  `json:"scope_prefix,omitempty" validate:"omitempty,url"`  // URL prefix the crawl stays within
	MaxPages    int     `json:"max_pages,omitempty" validate:"gte=0"`             // Maximum pages per crawl (0 = unlimited)
	CrawlDelay  float64 `json:"crawl_delay,omitempty" validate:"gte=0"`           // Seconds between page fetches
	OutputDir   string  `json:"output_dir,omitempty"`                             // Directory for corpus files
	UseBrowser  bool    `json:"use_browser,omitempty"`                            // Use headless browser for script-rendered pages

	// Retrieval
	TopK           int     `json:"top_k,omitempty" validate:"gte=0"`              // Context matches per question
	ScoreThreshold float64 `json:"score_threshold,omitempty" validate:"gte=0,lte=1"` // Minimum similarity score to keep a match

	// Services
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`   // Gemini API key
	PineconeHost   string `json:"pinecone_host,omitempty" validate:"omitempty,url"` // Pinecone index host URL
	PineconeAPIKey string `json:"pinecone_api_key,omitempty"` // Pinecone API key
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL URL for the shared fact counter
	CounterFile    string `json:"counter_file,omitempty"`     // File path for the single-process fact counter

	// Server
	ListenAddr string `json:"listen_addr,omitempty" validate:"omitempty,hostname_port"` // Address the HTTP server binds

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			invalid = append(invalid, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("config error: invalid fields: %v", invalid)
	}

	if c.CounterFile != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'counter_file' and 'database_url' are mutually exclusive")
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output dir is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SeedURL == "" {
		result.SeedURL = defaults.SeedURL
	}
	if result.ScopePrefix == "" {
		result.ScopePrefix = defaults.ScopePrefix
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.PineconeHost == "" {
		result.PineconeHost = defaults.PineconeHost
	}
	if result.PineconeAPIKey == "" {
		result.PineconeAPIKey = defaults.PineconeAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CounterFile == "" {
		result.CounterFile = defaults.CounterFile
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Numeric fields: use default if zero
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.CrawlDelay == 0 {
		result.CrawlDelay = defaults.CrawlDelay
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.ScoreThreshold == 0 {
		result.ScoreThreshold = defaults.ScoreThreshold
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
