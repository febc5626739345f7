package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. When no explicit path is given and
// no config file exists in the standard locations, the defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".justwatch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/justwatch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A missing config file is only an error when it was asked for
			// explicitly; the CLI works fine on defaults.
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// JustWatch defaults
	v.SetDefault("justwatch.country", "US")
	v.SetDefault("justwatch.language", "en")
	v.SetDefault("justwatch.count", 5)
	v.SetDefault("justwatch.best_only", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if utf8.RuneCountInString(cfg.JustWatch.Country) != 2 {
		return fmt.Errorf("justwatch.country must be a 2-letter country code, got %q", cfg.JustWatch.Country)
	}

	if cfg.JustWatch.Language == "" {
		return fmt.Errorf("justwatch.language is required")
	}

	if cfg.JustWatch.Count < 1 {
		return fmt.Errorf("justwatch.count must be at least 1, got %d", cfg.JustWatch.Count)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
