// ABOUTME: Configuration loading and parsing for agent-nebula
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete agent-nebula configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SimulationConfig holds simulation timing configuration
type SimulationConfig struct {
	TurnDelay         time.Duration `yaml:"-"`
	GenerationTimeout time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	TurnDelayRaw         string `yaml:"turn_delay"`
	GenerationTimeoutRaw string `yaml:"generation_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with built-in defaults, usable without a
// config file.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{HTTPAddr: ":8000"},
		Database: DatabaseConfig{Path: "data/nebula.db"},
		Simulation: SimulationConfig{
			TurnDelay:         time.Second,
			GenerationTimeout: 60 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
// Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	// Match ${VAR_NAME} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Simulation.TurnDelay < 0 {
		return fmt.Errorf("simulation.turn_delay must not be negative")
	}

	if c.Simulation.GenerationTimeout <= 0 {
		return fmt.Errorf("simulation.generation_timeout must be positive")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Simulation.TurnDelayRaw != "" {
		cfg.Simulation.TurnDelay, err = time.ParseDuration(cfg.Simulation.TurnDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing turn_delay %q: %w", cfg.Simulation.TurnDelayRaw, err)
		}
	}

	if cfg.Simulation.GenerationTimeoutRaw != "" {
		cfg.Simulation.GenerationTimeout, err = time.ParseDuration(cfg.Simulation.GenerationTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing generation_timeout %q: %w", cfg.Simulation.GenerationTimeoutRaw, err)
		}
	}

	return nil
}
