package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sprintview/sprintview/internal/planning/analysis"
	"github.com/sprintview/sprintview/internal/routing"
)

// Config represents the complete sprintview configuration
type Config struct {
	Planning PlanningConfig `mapstructure:"planning"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlanningConfig controls the execution planner and its heuristics
type PlanningConfig struct {
	// MaxEngineers caps the engineer count recommended from batch widths
	MaxEngineers int `mapstructure:"max_engineers"`
	// Heuristics are the keyword/phrase tables driving complexity scoring
	// and dependency inference. Defaults to the built-in tables; override
	// entries here to tune behavior per project.
	Heuristics analysis.Heuristics `mapstructure:"heuristics"`
}

// RoutingConfig controls model routing
type RoutingConfig struct {
	// Models maps each complexity tier to a model identifier
	Models routing.Table `mapstructure:"models"`
	// Overrides pins specific tasks to a model, keyed by task ID.
	// An override replaces the model only; tier and score still come
	// from complexity analysis.
	Overrides map[string]string `mapstructure:"overrides"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Planning: PlanningConfig{
			MaxEngineers: 4,
			Heuristics:   analysis.DefaultHeuristics(),
		},
		Routing: RoutingConfig{
			Models:    routing.DefaultTable(),
			Overrides: map[string]string{},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Planning defaults
	viper.SetDefault("planning.max_engineers", defaults.Planning.MaxEngineers)
	viper.SetDefault("planning.heuristics.high_keywords", defaults.Planning.Heuristics.HighKeywords)
	viper.SetDefault("planning.heuristics.low_keywords", defaults.Planning.Heuristics.LowKeywords)
	viper.SetDefault("planning.heuristics.stop_words", defaults.Planning.Heuristics.StopWords)
	viper.SetDefault("planning.heuristics.prereq_phrases", defaults.Planning.Heuristics.PrereqPhrases)
	viper.SetDefault("planning.heuristics.file_pattern", defaults.Planning.Heuristics.FilePattern)
	viper.SetDefault("planning.heuristics.multi_file_patterns", defaults.Planning.Heuristics.MultiFilePatterns)
	viper.SetDefault("planning.heuristics.min_significant_token_len", defaults.Planning.Heuristics.MinSignificantTokenLen)
	viper.SetDefault("planning.heuristics.overlap_threshold", defaults.Planning.Heuristics.OverlapThreshold)

	// Routing defaults
	viper.SetDefault("routing.models.simple", defaults.Routing.Models.Simple)
	viper.SetDefault("routing.models.medium", defaults.Routing.Models.Medium)
	viper.SetDefault("routing.models.complex", defaults.Routing.Models.Complex)
	viper.SetDefault("routing.overrides", defaults.Routing.Overrides)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sprintview")
	}
	// Fall back to ~/.config/sprintview
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sprintview"
	}
	return filepath.Join(home, ".config", "sprintview")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
