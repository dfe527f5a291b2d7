// Package config loads the smoothl1 configuration file
// (~/.config/smoothl1/config.yaml by default).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/smoothl1/internal/parallel"
	"github.com/born-ml/smoothl1/internal/tensor"
)

// Config mirrors the YAML file. Pointer fields distinguish "not set" from
// zero values so CLI flags only override what the file leaves open.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Evaluation
	Precision    string `yaml:"precision"`
	Workers      *int   `yaml:"workers"`
	MinChunkSize *int   `yaml:"min_chunk"`

	// Server
	ServerAddress string         `yaml:"server_address"`
	ReadTimeout   *time.Duration `yaml:"read_timeout"`
	MaxBodyBytes  *int64         `yaml:"max_body_bytes"`
}

// DefaultPath returns the per-user config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "smoothl1", "config.yaml")
}

// Load reads and validates the file at path. A missing file yields a zero
// Config and no error; a malformed one is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Precision != "" {
		if _, err := tensor.ParseDataType(c.Precision); err != nil {
			return fmt.Errorf("config precision: %w", err)
		}
	}
	switch c.LogFormat {
	case "", "text", "json", "pretty":
	default:
		return fmt.Errorf("config log_format %q: want text, json or pretty", c.LogFormat)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("config workers %d: must be >= 0", *c.Workers)
	}
	if c.MinChunkSize != nil && *c.MinChunkSize < 1 {
		return fmt.Errorf("config min_chunk %d: must be >= 1", *c.MinChunkSize)
	}
	if c.ReadTimeout != nil && *c.ReadTimeout < 0 {
		return fmt.Errorf("config read_timeout %s: must not be negative", *c.ReadTimeout)
	}
	if c.MaxBodyBytes != nil && *c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config max_body_bytes %d: must be > 0", *c.MaxBodyBytes)
	}
	return nil
}

// Parallel builds the loop configuration for the loss layers.
// workers == 1 disables parallelism; 0 keeps the CPU count.
func (c Config) Parallel() parallel.Config {
	cfg := parallel.DefaultConfig()
	if c.Workers != nil && *c.Workers > 0 {
		cfg.NumWorkers = *c.Workers
		cfg.Enabled = *c.Workers > 1
	}
	if c.MinChunkSize != nil {
		cfg.MinChunkSize = *c.MinChunkSize
	}
	return cfg
}
