package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Trade   TradeConfig   `mapstructure:"trade"`
	Search  SearchConfig  `mapstructure:"search"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TradeConfig holds trade API connection details. SessionID can also
// be supplied through the POESESSID environment variable.
type TradeConfig struct {
	League     string        `mapstructure:"league"`
	SessionID  string        `mapstructure:"session_id"`
	URL        string        `mapstructure:"url"`
	UserAgent  string        `mapstructure:"user_agent"`
	FetchDelay time.Duration `mapstructure:"fetch_delay"`
}

// SearchConfig holds search defaults and named presets.
type SearchConfig struct {
	Status  string            `mapstructure:"status"`
	Sort    string            `mapstructure:"sort"`
	Presets map[string]Preset `mapstructure:"presets"`
}

// Preset is a reusable search definition referenced by name.
type Preset struct {
	Name   string `mapstructure:"name"`
	Type   string `mapstructure:"type"`
	Filter string `mapstructure:"filter"`
}

// OutputConfig controls where fetched items are written.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
