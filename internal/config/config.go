// internal/config/config.go

// Package config loads the librarium server configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrInvalid      = errors.New("invalid configuration")
)

// Snapshot driver names accepted in SnapshotConfig.Driver.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config is the full server configuration.
type Config struct {
	Listen    string          `yaml:"listen"`
	LogLevel  string          `yaml:"log_level"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RateLimitConfig bounds the request rate accepted by the REST server.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// SnapshotConfig selects where the catalog snapshot is loaded from and saved
// to around server lifecycle.
type SnapshotConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// TelemetryConfig configures the OTLP trace exporter.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Service  string `yaml:"service"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		RateLimit: RateLimitConfig{
			PerSecond: 50,
			Burst:     100,
		},
		Snapshot: SnapshotConfig{
			Driver: DriverFile,
			Path:   "librarium.json",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "localhost:4318",
			Service:  "librarium",
		},
	}
}

// Load reads path, applies defaults for unset fields and validates the
// result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if len(data) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Snapshot.Driver {
	case DriverFile:
		if c.Snapshot.Path == "" {
			return fmt.Errorf("%w: snapshot.path is required for the file driver", ErrInvalid)
		}
	case DriverPostgres:
		if c.Snapshot.DSN == "" {
			return fmt.Errorf("%w: snapshot.dsn is required for the postgres driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown snapshot driver %q", ErrInvalid, c.Snapshot.Driver)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address must not be empty", ErrInvalid)
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalid)
	}
	return nil
}
