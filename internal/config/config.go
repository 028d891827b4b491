// Package config loads and validates the analyzer configuration from a YAML
// file with environment variable overrides. The result is one immutable
// value constructed once and passed explicitly into each pipeline stage.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ticketdup/ticketdup/internal/detect/similarity"
	"github.com/ticketdup/ticketdup/internal/ingest"
)

// Config holds all configuration for one analysis run.
type Config struct {
	InputPath           string `yaml:"input_path"`
	WindowHours         []int  `yaml:"window_hours"`
	SimilarityThreshold int    `yaml:"similarity_threshold"`
	SimilarityEngine    string `yaml:"similarity_engine"`
	ExcludeResolved     bool   `yaml:"exclude_resolved"`
	AutoRepair          bool   `yaml:"auto_repair"`
	CreateBackup        bool   `yaml:"create_backup"`
	TargetEncoding      string `yaml:"target_encoding"`

	// Optional run store; empty disables persistence.
	DatabaseURL string `yaml:"database_url"`

	// Optional Slack summary; both must be set to enable it.
	SlackBotToken string `yaml:"slack_bot_token"`
	SlackChannel  string `yaml:"slack_channel"`
}

// ConfigurationError reports an option whose value is outside its valid
// range. Fatal: the pipeline aborts before any analysis starts.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration option %s: %s", e.Option, e.Reason)
}

// Default returns the explicit baseline configuration.
func Default() Config {
	return Config{
		WindowHours:         []int{1, 4, 8, 24},
		SimilarityThreshold: 85,
		SimilarityEngine:    similarity.EngineToken,
		ExcludeResolved:     false,
		AutoRepair:          true,
		CreateBackup:        true,
		TargetEncoding:      ingest.EncodingUTF8,
	}
}

// Load reads the YAML file at path (a missing file means defaults only),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every option against its valid range and canonicalizes
// the window list (sorted, deduplicated). The similarity engine name is not
// validated here: an unknown engine falls back at selection time and is
// recorded, never fatal.
func (c *Config) Validate() error {
	if err := ValidateAnalysis(c.WindowHours, c.SimilarityThreshold); err != nil {
		return err
	}
	c.WindowHours = canonicalWindows(c.WindowHours)

	c.TargetEncoding = strings.ToLower(strings.TrimSpace(c.TargetEncoding))
	if c.TargetEncoding == "" {
		c.TargetEncoding = ingest.EncodingUTF8
	}
	if !ingest.KnownEncoding(c.TargetEncoding) {
		return &ConfigurationError{
			Option: "target_encoding",
			Reason: fmt.Sprintf("unknown encoding %q", c.TargetEncoding),
		}
	}
	return nil
}

// ValidateAnalysis checks the analysis parameters shared by every caller of
// the detection pipeline.
func ValidateAnalysis(windowHours []int, threshold int) error {
	if threshold < 50 || threshold > 100 {
		return &ConfigurationError{
			Option: "similarity_threshold",
			Reason: fmt.Sprintf("must be between 50 and 100, got %d", threshold),
		}
	}
	if len(windowHours) == 0 {
		return &ConfigurationError{
			Option: "window_hours",
			Reason: "at least one window is required",
		}
	}
	for _, w := range windowHours {
		if w <= 0 {
			return &ConfigurationError{
				Option: "window_hours",
				Reason: fmt.Sprintf("windows must be positive, got %d", w),
			}
		}
	}
	return nil
}

func canonicalWindows(windows []int) []int {
	seen := make(map[int]bool, len(windows))
	out := make([]int, 0, len(windows))
	for _, w := range windows {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Ints(out)
	return out
}

func applyEnvOverrides(cfg *Config) error {
	envOverride(&cfg.InputPath, "TICKETDUP_INPUT")
	envOverride(&cfg.SimilarityEngine, "TICKETDUP_SIMILARITY_ENGINE")
	envOverride(&cfg.TargetEncoding, "TICKETDUP_TARGET_ENCODING")
	envOverride(&cfg.DatabaseURL, "DATABASE_URL")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannel, "SLACK_CHANNEL")

	if err := envOverrideInt(&cfg.SimilarityThreshold, "TICKETDUP_SIMILARITY_THRESHOLD"); err != nil {
		return err
	}
	if err := envOverrideBool(&cfg.ExcludeResolved, "TICKETDUP_EXCLUDE_RESOLVED"); err != nil {
		return err
	}
	if err := envOverrideBool(&cfg.AutoRepair, "TICKETDUP_AUTO_REPAIR"); err != nil {
		return err
	}
	if err := envOverrideBool(&cfg.CreateBackup, "TICKETDUP_CREATE_BACKUP"); err != nil {
		return err
	}

	if val := os.Getenv("TICKETDUP_WINDOW_HOURS"); val != "" {
		var windows []int
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			w, err := strconv.Atoi(part)
			if err != nil {
				return fmt.Errorf("invalid TICKETDUP_WINDOW_HOURS %q: %w", val, err)
			}
			windows = append(windows, w)
		}
		cfg.WindowHours = windows
	}
	return nil
}

// envOverride replaces the field when the environment variable is set.
func envOverride(field *string, envKey string) {
	if value := os.Getenv(envKey); value != "" {
		*field = value
	}
}

func envOverrideInt(field *int, envKey string) error {
	if value := os.Getenv(envKey); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, value, err)
		}
		*field = parsed
	}
	return nil
}

func envOverrideBool(field *bool, envKey string) error {
	if value := os.Getenv(envKey); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envKey, value, err)
		}
		*field = parsed
	}
	return nil
}
