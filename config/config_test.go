package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Trade: TradeConfig{
			League:    "Standard",
			SessionID: "abc123",
		},
		Search: SearchConfig{
			Status: "online",
			Sort:   "asc",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validate(validConfig()); err != nil {
		t.Fatalf("validate() returned %v for a valid config", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "missing league",
			mutate: func(c *Config) { c.Trade.League = "" },
		},
		{
			name:   "missing session id",
			mutate: func(c *Config) { c.Trade.SessionID = "" },
		},
		{
			name:   "negative fetch delay",
			mutate: func(c *Config) { c.Trade.FetchDelay = -1 },
		},
		{
			name:   "bad online status",
			mutate: func(c *Config) { c.Search.Status = "offline" },
		},
		{
			name:   "descending sort unsupported",
			mutate: func(c *Config) { c.Search.Sort = "desc" },
		},
		{
			name:   "bad logging level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
		},
		{
			name:   "bad logging format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Errorf("validate() accepted invalid config")
			}
		})
	}
}

func TestLoadReadsSessionFromEnv(t *testing.T) {
	t.Setenv("POESESSID", "env-session")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() returned %v", err)
	}

	if cfg.Trade.SessionID != "env-session" {
		t.Errorf("Trade.SessionID = %q, want env-session", cfg.Trade.SessionID)
	}
	if cfg.Trade.League != "Standard" {
		t.Errorf("Trade.League = %q, want default Standard", cfg.Trade.League)
	}
	if cfg.Trade.FetchDelay.Milliseconds() != 200 {
		t.Errorf("Trade.FetchDelay = %v, want 200ms", cfg.Trade.FetchDelay)
	}
}
