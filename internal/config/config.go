// Package config loads the lexicod configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/lexico"
)

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	Environment Environment `yaml:"environment" validate:"oneof=development production"`
	LogLevel    string      `yaml:"log_level" validate:"oneof=debug info warn error"`
	DataDir     string      `yaml:"data_dir" validate:"required"`

	Server   Server   `yaml:"server"`
	Analysis Analysis `yaml:"analysis"`

	// Languages holds the per-language stopwords and pattern overrides,
	// keyed by language code.
	Languages map[string]Language `yaml:"languages"`
}

// Server configures the HTTP listener.
type Server struct {
	Address         string        `yaml:"address" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// Analysis tunes the analysis pipeline.
type Analysis struct {
	TopN             int `yaml:"top_n" validate:"gte=0"`
	HapaxN           int `yaml:"hapax_n" validate:"gte=0"`
	MaxDocumentBytes int `yaml:"max_document_bytes" validate:"gt=0"`
	MatchLimit       int `yaml:"match_limit" validate:"gte=0"` // 0 keeps every match
	BatchWorkers     int `yaml:"batch_workers" validate:"gte=1"`
}

// Language holds the configurable rules of one language. An empty stopword
// list selects the bundled list; patterns replace individual built-in rules.
type Language struct {
	Stopwords []string          `yaml:"stopwords"`
	Patterns  map[string]string `yaml:"patterns"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Environment: Production,
		LogLevel:    "info",
		DataDir:     "data",
		Server: Server{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Analysis: Analysis{
			TopN:             lexico.DefaultTopN,
			HapaxN:           lexico.DefaultHapaxN,
			MaxDocumentBytes: 5 << 20,
			BatchWorkers:     4,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// the environment overrides. An empty path or a missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnvironmentVariables(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c.normalizeLanguages()
}

// normalizeLanguages lowercases and trims the language keys. Two keys naming
// the same language are an error.
func (c *Config) normalizeLanguages() error {
	if len(c.Languages) == 0 {
		return nil
	}
	langs := make(map[string]Language, len(c.Languages))
	seen := make(map[string]string, len(c.Languages))
	for code, lang := range c.Languages {
		key := normalizeCode(code)
		if prev, dup := seen[key]; dup {
			first, second := min(prev, code), max(prev, code)
			return fmt.Errorf("languages %q and %q both configure %q", first, second, key)
		}
		seen[key] = code
		langs[key] = lang
	}
	c.Languages = langs
	return nil
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func (c *Config) loadEnvironmentVariables() error {
	if v := os.Getenv("LEXICO_ADDR"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv("LEXICO_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LEXICO_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LEXICO_ENVIRONMENT"); v != "" {
		c.Environment = Environment(strings.ToLower(v))
	}
	if v := os.Getenv("LEXICO_MAX_DOCUMENT_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEXICO_MAX_DOCUMENT_BYTES: %w", err)
		}
		c.Analysis.MaxDocumentBytes = n
	}
	return nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// IsDevelopment reports whether the configuration targets development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// PatternOverrides returns the configured pattern overrides keyed by
// language, in the shape lexico.Registry.WithOverrides expects.
func (c *Config) PatternOverrides() map[lexico.Language]map[string]string {
	out := make(map[lexico.Language]map[string]string)
	for code, lang := range c.Languages {
		if len(lang.Patterns) == 0 {
			continue
		}
		out[lexico.Language(normalizeCode(code))] = lang.Patterns
	}
	return out
}

// Stopwords returns the configured stopword list of lang, if any.
func (c *Config) Stopwords(lang lexico.Language) []string {
	return c.Languages[normalizeCode(string(lang))].Stopwords
}
