// Package config provides configuration loading and structs for the kotae responder.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/kotae/internal/responder"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Responder ResponderConfig `yaml:"responder"`
	Suggest   SuggestConfig   `yaml:"suggest"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"gte=1,lte=65535"`
}

// StorageConfig selects the corpus backend and its location.
type StorageConfig struct {
	Backend      string `yaml:"backend" validate:"oneof=sqlite file"`
	DatabasePath string `yaml:"database_path" validate:"required_if=Backend sqlite"`
	CorpusPath   string `yaml:"corpus_path" validate:"required_if=Backend file"`
}

// ResponderConfig holds response selection settings.
type ResponderConfig struct {
	// MatchThreshold is a pointer so an explicit 0 survives ApplyDefaults.
	MatchThreshold *float64 `yaml:"match_threshold" validate:"omitempty,gte=0,lte=1"`
}

// Threshold returns the configured match threshold, or the default when unset.
func (r *ResponderConfig) Threshold() float64 {
	if r.MatchThreshold != nil {
		return *r.MatchThreshold
	}
	return responder.DefaultMatchThreshold
}

// SuggestConfig holds suggestion settings.
type SuggestConfig struct {
	Limit        int      `yaml:"limit" validate:"gte=1"`
	Placeholders []string `yaml:"placeholders" validate:"dive,required"`
}

// WatchConfig holds corpus file watch settings. Only the file backend is watched.
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMs int  `yaml:"debounce_ms" validate:"gte=0"`
}

// Load reads and parses the config file at path, expands paths, applies defaults
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.CorpusPath = expandPath(cfg.Storage.CorpusPath, configDir)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config with every default applied, for running without a config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Validate checks cfg against its struct constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
