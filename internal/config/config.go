// Package config loads Pythia configuration from defaults, an optional YAML file,
// an optional .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables holding the odds API key, in lookup order
var apiKeyEnvVars = []string{"ODDS_API_KEY_REPO", "ODDS_API_KEY"}

// Config holds Pythia configuration
type Config struct {
	// Odds API
	OddsAPIKey     string        `yaml:"-"`
	SecretFile     string        `yaml:"secret_file"`
	OddsAPIBaseURL string        `yaml:"odds_api_base_url"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`

	// Report
	SportKey        string `yaml:"sport"`
	OutputDir       string `yaml:"output_dir"`
	DisplayTimezone string `yaml:"display_timezone"`

	LogLevel string `yaml:"log_level"`

	Redis RedisConfig `yaml:"redis"`
	Serve ServeConfig `yaml:"serve"`
}

// RedisConfig controls report publishing. Publishing is off when Addr is empty.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	ReportTTL time.Duration `yaml:"report_ttl"`
	StreamLen int64         `yaml:"stream_max_len"`
}

// Enabled reports whether a Redis address is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// ServeConfig controls the artifact server
type ServeConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Options selects the files Load reads. Empty paths are skipped.
type Options struct {
	ConfigPath string
	EnvFile    string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SecretFile:      "SECRET.txt",
		OddsAPIBaseURL:  "https://api.the-odds-api.com",
		HTTPTimeout:     10 * time.Second,
		SportKey:        "americanfootball_nfl",
		OutputDir:       "public",
		DisplayTimezone: "America/Chicago",
		LogLevel:        "info",
		Redis: RedisConfig{
			ReportTTL: 7 * 24 * time.Hour,
			StreamLen: 100,
		},
		Serve: ServeConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration. A missing .env file is not an error; a missing
// config file is.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := loadEnvFile(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	cfg := Default()

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("PYTHIA_CONFIG")
	}
	if configPath != "" {
		if err := cfg.loadYAML(configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables already set
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	for _, key := range apiKeyEnvVars {
		if value := os.Getenv(key); value != "" {
			c.OddsAPIKey = value
			break
		}
	}

	c.SecretFile = getEnv("PYTHIA_SECRET_FILE", c.SecretFile)
	c.OddsAPIBaseURL = getEnv("ODDS_API_BASE_URL", c.OddsAPIBaseURL)
	c.SportKey = getEnv("PYTHIA_SPORT", c.SportKey)
	c.OutputDir = getEnv("PYTHIA_OUTPUT_DIR", c.OutputDir)
	c.DisplayTimezone = getEnv("PYTHIA_TIMEZONE", c.DisplayTimezone)
	c.LogLevel = getEnv("PYTHIA_LOG_LEVEL", c.LogLevel)
	c.Redis.Addr = getEnv("REDIS_URL", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Serve.Addr = getEnv("PYTHIA_SERVE_ADDR", c.Serve.Addr)

	if origins := os.Getenv("PYTHIA_CORS_ORIGINS"); origins != "" {
		c.Serve.AllowedOrigins = splitList(origins)
	}

	if v := os.Getenv("PYTHIA_HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PYTHIA_HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeout = parsed
	}

	if v := os.Getenv("PYTHIA_REPORT_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PYTHIA_REPORT_TTL %q: %w", v, err)
		}
		c.Redis.ReportTTL = parsed
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		c.Redis.DB = parsed
	}

	return nil
}

// Validate checks settings shared by every command
func (c *Config) Validate() error {
	if c.SportKey == "" {
		return errors.New("sport must be set")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", c.HTTPTimeout)
	}
	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid display_timezone %q: %w", c.DisplayTimezone, err)
	}
	if c.Redis.Enabled() && c.Redis.ReportTTL < 0 {
		return fmt.Errorf("redis report_ttl must not be negative, got %v", c.Redis.ReportTTL)
	}
	return nil
}

// KeySource describes where the API key came from
type KeySource string

const (
	KeySourceEnv    KeySource = "env"
	KeySourceSecret KeySource = "secret_file"
)

// ResolveAPIKey returns the API key from the environment, falling back to the
// secret file when no variable is set.
func (c *Config) ResolveAPIKey() (string, KeySource, error) {
	if c.OddsAPIKey != "" {
		return c.OddsAPIKey, KeySourceEnv, nil
	}

	if c.SecretFile == "" {
		return "", "", fmt.Errorf("API key not found: set %s", strings.Join(apiKeyEnvVars, " or "))
	}

	data, err := os.ReadFile(c.SecretFile)
	if err != nil {
		return "", "", fmt.Errorf("API key not found in env (%s) and secret file unreadable: %w",
			strings.Join(apiKeyEnvVars, ", "), err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", "", fmt.Errorf("secret file %s is empty", c.SecretFile)
	}

	return key, KeySourceSecret, nil
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
