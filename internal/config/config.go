package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all hbnb configuration.
//
// Precedence: DefaultConfig < YAML file < HBNB_* environment < CLI flags.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Console ConsoleConfig `yaml:"console"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and configures the backend holding the JSON document.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"HBNB_STORAGE_BACKEND"` // file, memory, sqlite, postgres, s3
	Path    string `yaml:"path" env:"HBNB_STORAGE_PATH"`       // file backend

	// Document names the row (sqlite/postgres) or object key (s3) holding the registry.
	Document    string `yaml:"document" env:"HBNB_STORAGE_DOCUMENT"`
	SQLitePath  string `yaml:"sqlite_path" env:"HBNB_SQLITE_PATH"`
	PostgresDSN string `yaml:"postgres_dsn" env:"HBNB_POSTGRES_DSN"`

	S3 S3Config `yaml:"s3"`

	// Timeout bounds each remote backend round trip.
	Timeout string `yaml:"timeout" env:"HBNB_STORAGE_TIMEOUT"`
}

// S3Config configures the s3 backend. Credentials fall back to the default
// AWS chain when the static keys are empty.
type S3Config struct {
	Bucket          string `yaml:"bucket" env:"HBNB_S3_BUCKET"`
	Region          string `yaml:"region" env:"HBNB_S3_REGION"`
	Endpoint        string `yaml:"endpoint" env:"HBNB_S3_ENDPOINT"`
	PathStyle       bool   `yaml:"path_style" env:"HBNB_S3_PATH_STYLE"`
	AccessKeyID     string `yaml:"access_key_id" env:"HBNB_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"HBNB_S3_SECRET_ACCESS_KEY"`
}

// ConsoleConfig configures the interactive shell.
type ConsoleConfig struct {
	Prompt string `yaml:"prompt" env:"HBNB_PROMPT"`
	// ForcePrompt prints the prompt even when stdin is not a terminal.
	ForcePrompt bool `yaml:"force_prompt" env:"HBNB_FORCE_PROMPT"`
}

// LoggingConfig configures the categorized debug logs.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode" env:"HBNB_DEBUG"`
	Level      string          `yaml:"level" env:"HBNB_LOG_LEVEL"` // debug, info, warn, error
	Dir        string          `yaml:"dir" env:"HBNB_LOG_DIR"`
	JSONFormat bool            `yaml:"json_format" env:"HBNB_LOG_JSON"`
	Categories map[string]bool `yaml:"categories"`
}

// ValidBackends lists the storage backends Open understands.
var ValidBackends = []string{"file", "memory", "sqlite", "postgres", "s3"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    "file",
			Path:       "file.json",
			Document:   "file.json",
			SQLitePath: "hbnb.db",
			S3: S3Config{
				Region: "us-east-1",
			},
			Timeout: "30s",
		},
		Console: ConsoleConfig{
			Prompt: "(hbnb) ",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "logs",
		},
	}
}

// Load loads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.Storage.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid storage backend: %q (valid: %v)", c.Storage.Backend, ValidBackends)
	}

	switch c.Storage.Backend {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for file backend")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path required for sqlite backend")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn required for postgres backend")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket required for s3 backend")
		}
	}

	if c.Storage.Timeout != "" {
		if _, err := time.ParseDuration(c.Storage.Timeout); err != nil {
			return fmt.Errorf("invalid storage.timeout %q: %w", c.Storage.Timeout, err)
		}
	}
	return nil
}

// GetStorageTimeout returns the backend timeout as a duration.
func (c *StorageConfig) GetStorageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DocumentName returns the document name for remote backends.
func (c *StorageConfig) DocumentName() string {
	if c.Document != "" {
		return c.Document
	}
	return "file.json"
}
