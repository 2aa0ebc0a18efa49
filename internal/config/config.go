package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds pantry's settings. Zero fields fall back to DefaultConfig.
type Config struct {
	DataDir string    `yaml:"data_dir"`
	Backend string    `yaml:"backend"` // json, sqlite
	Theme   string    `yaml:"theme"`   // classic, neon, mono
	Log     LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty: stderr, and nothing while the TUI runs
}

// DefaultDir is ~/.pantry, or .pantry when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pantry"
	}
	return filepath.Join(home, ".pantry")
}

func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDir(),
		Backend: BackendJSON,
		Theme:   "classic",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads path on top of the defaults; a missing file is not an error.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PANTRY_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PANTRY_BACKEND"); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("PANTRY_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("PANTRY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// DatabasePath is where the sqlite backend keeps its file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pantry.db")
}
