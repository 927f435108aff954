// Package config loads tool configuration from the environment and an
// optional lzkit.yaml file. Missing required settings are fatal at startup,
// reported by name, before any session work begins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultSnapshotDir         = ".lzkit/snapshots"
	DefaultDatabasePath        = ".lzkit/sessions.db"
	DefaultDocumentsDir        = "documents"
	DefaultConfidenceThreshold = 0.85
	DefaultCheckpointInterval  = 5
	DefaultSearchTopN          = 3
	DefaultConcurrency         = 4
)

// Config holds every tunable the tool reads at startup.
type Config struct {
	// AnthropicAPIKey authenticates the extraction oracle. Required for
	// document analysis; workshop-only runs work without it.
	AnthropicAPIKey string
	Model           string

	SnapshotDir  string
	DatabasePath string
	DocumentsDir string

	ConfidenceThreshold float64
	CheckpointInterval  int
	SearchTopN          int
	Concurrency         int
}

// fileConfig is the lzkit.yaml shape. Every field is optional; file values
// override defaults, environment variables override the file.
type fileConfig struct {
	Model               string  `yaml:"model"`
	SnapshotDir         string  `yaml:"snapshot_dir"`
	Database            string  `yaml:"database"`
	DocumentsDir        string  `yaml:"documents_dir"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	CheckpointInterval  int     `yaml:"checkpoint_interval"`
	SearchTopN          int     `yaml:"search_top_n"`
	Concurrency         int     `yaml:"concurrency"`
}

// Load builds the configuration: defaults, then lzkit.yaml (if present in
// dir), then environment variables. A .env file in dir is loaded first so
// local development matches production env wiring.
func Load(dir string) (*Config, error) {
	// Missing .env is fine; a malformed one is not.
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg := &Config{
		SnapshotDir:         DefaultSnapshotDir,
		DatabasePath:        DefaultDatabasePath,
		DocumentsDir:        DefaultDocumentsDir,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		CheckpointInterval:  DefaultCheckpointInterval,
		SearchTopN:          DefaultSearchTopN,
		Concurrency:         DefaultConcurrency,
	}

	if err := cfg.applyFile(filepath.Join(dir, "lzkit.yaml")); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence_threshold %v out of range [0,1]", cfg.ConfidenceThreshold)
	}
	if cfg.CheckpointInterval < 1 {
		return nil, fmt.Errorf("checkpoint_interval must be at least 1")
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.Model != "" {
		c.Model = fc.Model
	}
	if fc.SnapshotDir != "" {
		c.SnapshotDir = fc.SnapshotDir
	}
	if fc.Database != "" {
		c.DatabasePath = fc.Database
	}
	if fc.DocumentsDir != "" {
		c.DocumentsDir = fc.DocumentsDir
	}
	if fc.ConfidenceThreshold != 0 {
		c.ConfidenceThreshold = fc.ConfidenceThreshold
	}
	if fc.CheckpointInterval != 0 {
		c.CheckpointInterval = fc.CheckpointInterval
	}
	if fc.SearchTopN != 0 {
		c.SearchTopN = fc.SearchTopN
	}
	if fc.Concurrency != 0 {
		c.Concurrency = fc.Concurrency
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("LZKIT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("LZKIT_SNAPSHOT_DIR"); v != "" {
		c.SnapshotDir = v
	}
	if v := os.Getenv("LZKIT_DATABASE"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("LZKIT_DOCUMENTS_DIR"); v != "" {
		c.DocumentsDir = v
	}
	if v := os.Getenv("LZKIT_CONFIDENCE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LZKIT_CONFIDENCE_THRESHOLD: %w", err)
		}
		c.ConfidenceThreshold = f
	}
	if v := os.Getenv("LZKIT_CHECKPOINT_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LZKIT_CHECKPOINT_INTERVAL: %w", err)
		}
		c.CheckpointInterval = n
	}
	return nil
}

// ValidateForAnalysis checks the settings document analysis needs. Every
// missing setting is named so the operator can fix them all at once.
func (c *Config) ValidateForAnalysis() error {
	var missing []string
	if c.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
