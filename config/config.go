package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
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
			v.AddConfigPath(filepath.Join(home, ".poetrade"))
		}

		// Check /etc
		v.AddConfigPath("/etc/poetrade/")
	}

	// The session credential usually lives in the environment rather
	// than on disk.
	if err := v.BindEnv("trade.session_id", "POESESSID"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine as long as the environment and
		// defaults cover the required values.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Trade defaults
	v.SetDefault("trade.league", "Standard")
	v.SetDefault("trade.url", "https://www.pathofexile.com/api/trade2/")
	v.SetDefault("trade.fetch_delay", "200ms")

	// Search defaults
	v.SetDefault("search.status", "online")
	v.SetDefault("search.sort", "asc")

	// Output defaults
	v.SetDefault("output.path", "all_items.json")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Trade.League == "" {
		return fmt.Errorf("trade.league is required")
	}

	if cfg.Trade.SessionID == "" {
		return fmt.Errorf("trade.session_id must be set (or export POESESSID)")
	}

	if cfg.Trade.FetchDelay < 0 {
		return fmt.Errorf("trade.fetch_delay must not be negative")
	}

	validStatuses := map[string]bool{
		"online":       true,
		"onlineleague": true,
		"any":          true,
	}
	if !validStatuses[cfg.Search.Status] {
		return fmt.Errorf("invalid search.status: %s (must be 'online', 'onlineleague' or 'any')", cfg.Search.Status)
	}

	if cfg.Search.Sort != "asc" {
		return fmt.Errorf("invalid search.sort: %s (only 'asc' is supported)", cfg.Search.Sort)
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
