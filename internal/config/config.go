// Package config loads and validates the bolgen service configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	PDF     PDFConfig     `yaml:"pdf"`
	Render  RenderConfig  `yaml:"render"`
}

// ServerConfig represents the HTTP listener configuration
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// LoggingConfig represents structured logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// PDFConfig holds document-level presentation settings.
type PDFConfig struct {
	// Title overrides the document heading; empty keeps the default.
	Title string `yaml:"title,omitempty"`
}

// RenderConfig represents the template toggles of the Bill-of-Lading layout.
// Boolean toggles are pointers so that "unset" can default to true.
type RenderConfig struct {
	IncludeServicesLine    *bool    `yaml:"include_services_line,omitempty"`
	ReferenceExclusions    []string `yaml:"reference_exclusions,omitempty"`
	IncludeSignatureBlocks *bool    `yaml:"include_signature_blocks,omitempty"`
}

// Default returns the zero-config defaults; the service is usable without a
// configuration file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Render.ReferenceExclusions == nil {
		c.Render.ReferenceExclusions = []string{"job name", "load number"}
	}
}

// Load loads configuration from the specified file. A missing file yields
// the defaults so deployments can run with zero configuration.
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing process env wins.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
			}
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level unknown: %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format unknown: %q", c.Logging.Format)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SlogLevel maps the configured level name onto a slog.Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a slog.Logger per the logging configuration.
func (l LoggingConfig) NewLogger() *slog.Logger {
	return l.NewLeveledLogger(l.SlogLevel())
}

// NewLeveledLogger builds a logger with an externally controlled level,
// letting callers pass a *slog.LevelVar for live level changes.
func (l LoggingConfig) NewLeveledLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(l.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// IncludeServicesLine resolves the toggle with its default.
func (r RenderConfig) IncludeServices() bool {
	return r.IncludeServicesLine == nil || *r.IncludeServicesLine
}

// IncludeSignatures resolves the toggle with its default.
func (r RenderConfig) IncludeSignatures() bool {
	return r.IncludeSignatureBlocks == nil || *r.IncludeSignatureBlocks
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Default()
	exampleConfig.Server.CORSOrigins = []string{"*"}

	data, err := yaml.Marshal(exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
