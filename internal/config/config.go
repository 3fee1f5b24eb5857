package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	OCR      OCRConfig
	Google   GoogleConfig
	Resolver ResolverConfig
	Logging  LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// DataConfig holds filesystem layout configuration.
type DataConfig struct {
	Dir string `envconfig:"DATA_DIR" default:"."`
}

// OCRConfig holds OCR engine configuration.
type OCRConfig struct {
	Language string `envconfig:"OCR_LANGUAGE" default:"eng"`
}

// GoogleConfig holds Drive API credential configuration.
type GoogleConfig struct {
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	CredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON"`
}

// ResolverConfig holds outbound HTTP configuration.
type ResolverConfig struct {
	TimeoutSeconds int    `envconfig:"RESOLVER_TIMEOUT_SECONDS" default:"10"`
	MaxConcurrent  int    `envconfig:"RESOLVER_MAX_CONCURRENT" default:"4"`
	RequestsPerSec int    `envconfig:"RESOLVER_RPS" default:"8"`
	UserAgent      string `envconfig:"RESOLVER_USER_AGENT" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8600",
			Host: "127.0.0.1",
		},
		Data: DataConfig{
			Dir: ".",
		},
		OCR: OCRConfig{
			Language: "eng",
		},
		Resolver: ResolverConfig{
			TimeoutSeconds: 10,
			MaxConcurrent:  4,
			RequestsPerSec: 8,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// ContextsDir returns the per-session context artifact directory.
func (c *Config) ContextsDir() string {
	return filepath.Join(c.Data.Dir, "temp", "contexts")
}

// ScreenshotsDir returns the directory capture collaborators write into.
func (c *Config) ScreenshotsDir() string {
	return filepath.Join(c.Data.Dir, "screenshots")
}
