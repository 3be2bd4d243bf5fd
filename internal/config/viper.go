// Viper-based hierarchical configuration: defaults, then config file, then
// environment variables with the CARBON_ prefix.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"csv" yaml:"csv"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Coaching struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
	} `mapstructure:"coaching" yaml:"coaching"`

	Factors struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"factors" yaml:"factors"`

	Results struct {
		Directory      string `mapstructure:"directory" yaml:"directory"`
		HistoryEnabled bool   `mapstructure:"history_enabled" yaml:"history_enabled"`
		HistoryFile    string `mapstructure:"history_file" yaml:"history_file"`
	} `mapstructure:"results" yaml:"results"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.carbon-csv")
	v.AddConfigPath(".carbon-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARBON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars, the file is optional.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "2006-01-02")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 60)

	v.SetDefault("coaching.enabled", true)
	v.SetDefault("coaching.model", "gemini-2.0-flash")

	v.SetDefault("factors.file", "emission_factors.yaml")

	v.SetDefault("results.directory", "results")
	v.SetDefault("results.history_enabled", false)
	v.SetDefault("results.history_file", "carbon_history.db")
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[config.Log.Format] {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai timeout must be positive, got %d", config.AI.TimeoutSeconds)
	}

	if config.Factors.File == "" {
		return fmt.Errorf("factors file must be set")
	}

	return nil
}
