// Package config loads the run configuration of the instclass tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/instclass/classify"
)

// Config controls what the tools classify and how they report it.
type Config struct {
	Format      string        `yaml:"format"`      // plain | pass | json
	Summary     bool          `yaml:"summary"`     // print totals over all functions
	Table       bool          `yaml:"table"`       // print a per-function table
	ProfileOut  string        `yaml:"profile_out"` // pprof output path
	Functions   []string      `yaml:"functions"`   // empty means all
	Parallelism int           `yaml:"parallelism"` // 0 runs the serial engine
	BatchSize   int           `yaml:"batch_size"`  // functions per engine tick
	Logging     LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the level, encoding and destination of log records.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace | debug | info | warn | error
	Format string `yaml:"format"` // text | json
	File   string `yaml:"file"`   // empty means stderr
}

const (
	defaultFormat    = "plain"
	defaultBatchSize = 1
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Format:    defaultFormat,
		BatchSize: defaultBatchSize,
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads a YAML configuration file. A missing file yields the defaults.
// Fields left empty in the file take their default value.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = defaultFormat
	}

	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}

	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if _, err := classify.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", c.BatchSize)
	}

	for i, name := range c.Functions {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("functions[%d] is empty", i)
		}
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q",
			c.Logging.Format)
	}

	return nil
}

// ReportFormat returns the parsed report format.
func (c *Config) ReportFormat() classify.Format {
	f, err := classify.ParseFormat(c.Format)
	if err != nil {
		return classify.FormatPlain
	}
	return f
}
