// Package config loads specforge configuration from a YAML file with
// environment variable expansion, layering file values over defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specforge-ai/specforge/pkg/cache"
)

// Config holds all specforge configuration.
type Config struct {
	Provider     string         `yaml:"provider"`
	Model        string         `yaml:"model"`
	APIKey       string         `yaml:"api_key"`
	BaseURL      string         `yaml:"base_url"`
	OutputDir    string         `yaml:"output_dir"`
	DBPath       string         `yaml:"db_path"`
	TemplateFile string         `yaml:"template_file"`
	Cache        CacheConfig    `yaml:"cache"`
	Analysis     AnalysisConfig `yaml:"analysis"`
	Tracking     bool           `yaml:"tracking"`
}

// CacheConfig controls the completion response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// AnalysisConfig controls the analysis pipeline.
type AnalysisConfig struct {
	Temperature         float64 `yaml:"temperature"`
	MaxTokens           int     `yaml:"max_tokens"`
	ValidationEnabled   bool    `yaml:"validation_enabled"`
	MaxValidationRounds int     `yaml:"max_validation_rounds"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Provider:  "openai",
		Model:     "gpt-4o",
		OutputDir: "output",
		DBPath:    "specforge.db",
		Cache: CacheConfig{
			Enabled:    true,
			Backend:    cache.KindDisk,
			TTLSeconds: 86400,
		},
		Analysis: AnalysisConfig{
			Temperature:         0.3,
			MaxTokens:           4000,
			ValidationEnabled:   true,
			MaxValidationRounds: 3,
		},
		Tracking: true,
	}
}

// Load reads a YAML config file and expands environment variables.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

// CacheSettings converts the YAML cache section into the settings the
// cache factory consumes.
func (c *Config) CacheSettings() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Path:    c.Cache.Path,
		TTL:     time.Duration(c.Cache.TTLSeconds) * time.Second,
	}
}
