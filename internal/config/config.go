// Package config loads runtime configuration from the environment and an
// optional YAML file, and sets up the process logger.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// Config holds all configuration values.
type Config struct {
	// Mixamo API
	Token   string // ANIMCP_TOKEN overrides the token file when set
	BaseURL string

	// Export preferences
	Format mixamo.ExportFormat
	FPS    int

	// Pipeline tuning
	PollInterval time.Duration
	PollAttempts int
	BatchDelay   time.Duration
	SearchLimit  int

	// Local paths
	TokenPath string // empty selects the default under the home directory
	OutputDir string // empty enables Unity project auto-detection

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the YAML shape of ~/.animcp/config.yaml. Durations are
// strings in time.ParseDuration syntax ("2s", "1500ms").
type fileConfig struct {
	TokenPath    string `yaml:"token_path"`
	OutputDir    string `yaml:"output_dir"`
	Format       string `yaml:"format"`
	FPS          int    `yaml:"fps"`
	PollInterval string `yaml:"poll_interval"`
	PollAttempts int    `yaml:"poll_attempts"`
	BatchDelay   string `yaml:"batch_delay"`
	SearchLimit  int    `yaml:"search_limit"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`
	BaseURL      string `yaml:"base_url"`
}

// Load reads the config file (when present) and then the environment;
// environment values beat file values. The result is validated.
func Load() (Config, error) {
	cfg := Config{
		BaseURL:      mixamo.DefaultBaseURL,
		Format:       mixamo.FormatFBX2019,
		FPS:          30,
		PollInterval: mixamo.DefaultPollInterval,
		PollAttempts: mixamo.DefaultPollAttempts,
		BatchDelay:   time.Second,
		SearchLimit:  mixamo.DefaultSearchLimit,
		LogFile:      "/tmp/animcp.log",
		LogLevel:     slog.LevelInfo,
	}

	if err := cfg.applyFile(); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFile merges the YAML config file into cfg. An explicitly requested
// file (ANIMCP_CONFIG) must exist; the default location is optional.
func (c *Config) applyFile() error {
	path := os.Getenv("ANIMCP_CONFIG")
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".animcp", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.TokenPath, fc.TokenPath)
	setString(&c.OutputDir, fc.OutputDir)
	setString(&c.LogFile, fc.LogFile)
	setString(&c.BaseURL, fc.BaseURL)
	if fc.Format != "" {
		c.Format = mixamo.ExportFormat(fc.Format)
	}
	if fc.FPS != 0 {
		c.FPS = fc.FPS
	}
	if fc.PollAttempts != 0 {
		c.PollAttempts = fc.PollAttempts
	}
	if fc.SearchLimit != 0 {
		c.SearchLimit = fc.SearchLimit
	}
	if fc.LogLevel != "" {
		c.LogLevel = parseLogLevel(fc.LogLevel)
	}
	if err := setDuration(&c.PollInterval, fc.PollInterval); err != nil {
		return fmt.Errorf("config file poll_interval: %w", err)
	}
	if err := setDuration(&c.BatchDelay, fc.BatchDelay); err != nil {
		return fmt.Errorf("config file batch_delay: %w", err)
	}
	return nil
}

// applyEnv merges ANIMCP_* environment variables into cfg.
func (c *Config) applyEnv() error {
	setString(&c.Token, os.Getenv("ANIMCP_TOKEN"))
	setString(&c.TokenPath, os.Getenv("ANIMCP_TOKEN_PATH"))
	setString(&c.OutputDir, os.Getenv("ANIMCP_OUTPUT_DIR"))
	setString(&c.LogFile, os.Getenv("ANIMCP_LOG_FILE"))
	setString(&c.BaseURL, os.Getenv("ANIMCP_BASE_URL"))

	if v := os.Getenv("ANIMCP_FORMAT"); v != "" {
		c.Format = mixamo.ExportFormat(v)
	}
	if v := os.Getenv("ANIMCP_LOG_LEVEL"); v != "" {
		c.LogLevel = parseLogLevel(v)
	}

	if err := setInt(&c.FPS, os.Getenv("ANIMCP_FPS")); err != nil {
		return fmt.Errorf("ANIMCP_FPS: %w", err)
	}
	if err := setInt(&c.PollAttempts, os.Getenv("ANIMCP_POLL_ATTEMPTS")); err != nil {
		return fmt.Errorf("ANIMCP_POLL_ATTEMPTS: %w", err)
	}
	if err := setInt(&c.SearchLimit, os.Getenv("ANIMCP_SEARCH_LIMIT")); err != nil {
		return fmt.Errorf("ANIMCP_SEARCH_LIMIT: %w", err)
	}
	if err := setDuration(&c.PollInterval, os.Getenv("ANIMCP_POLL_INTERVAL")); err != nil {
		return fmt.Errorf("ANIMCP_POLL_INTERVAL: %w", err)
	}
	if err := setDuration(&c.BatchDelay, os.Getenv("ANIMCP_BATCH_DELAY")); err != nil {
		return fmt.Errorf("ANIMCP_BATCH_DELAY: %w", err)
	}
	return nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if !c.Format.Valid() {
		return fmt.Errorf("unknown export format %q (valid: %s)", c.Format, formatList())
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.PollAttempts <= 0 {
		return fmt.Errorf("poll attempts must be positive, got %d", c.PollAttempts)
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("batch delay must not be negative, got %s", c.BatchDelay)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	return nil
}

func formatList() string {
	formats := mixamo.ValidFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v string) error {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer %q", v)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration %q", v)
	}
	*dst = d
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
