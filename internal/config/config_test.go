package config

import (
	"testing"
	"time"

	"ciderserver/matching"
)

func TestConfigLogLevelValidation(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantError bool
	}{
		{"Valid DEBUG", "DEBUG", false},
		{"Valid INFO", "INFO", false},
		{"Valid WARN", "WARN", false},
		{"Valid ERROR", "ERROR", false},
		{"Valid lowercase debug", "debug", false},
		{"Valid lowercase info", "info", false},
		{"Invalid value", "INVALID", true},
		{"Empty string", "", false}, // Пустая строка допустима (будет использовано значение по умолчанию)
		{"Mixed case", "DeBuG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			cfg.LogLevel = tt.logLevel

			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Empty port", func(c *Config) { c.Port = "" }},
		{"Non-numeric port", func(c *Config) { c.Port = "http" }},
		{"Port out of range", func(c *Config) { c.Port = "70000" }},
		{"Empty database path", func(c *Config) { c.DatabasePath = "" }},
		{"Idle conns above open conns", func(c *Config) { c.MaxIdleConns = c.MaxOpenConns + 1 }},
		{"Zero read timeout", func(c *Config) { c.ReadTimeout = 0 }},
		{"Nil engine config", func(c *Config) { c.Engine = nil }},
		{"Duplicate threshold above 1", func(c *Config) { c.Engine.DuplicateThreshold = 1.5 }},
		{"Similar above duplicate", func(c *Config) { c.Engine.SimilarThreshold = 0.9 }},
		{"Zero weights", func(c *Config) {
			c.Engine.NameWeight = 0
			c.Engine.BrandWeight = 0
			c.Engine.StrengthWeight = 0
			c.Engine.ContainerWeight = 0
		}},
		{"Rate limit without rate", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LogLevel == "" {
		t.Error("LogLevel should have a default value")
	}
	if cfg.Port == "" {
		t.Error("Port should have a default value")
	}
	if cfg.Engine == nil {
		t.Fatal("Engine config should have defaults")
	}

	// Проверяем, что конфигурация по умолчанию валидна
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("ENGINE_DUPLICATE_THRESHOLD", "0.9")
	t.Setenv("ENGINE_QUICK_SCAN_BUDGET", "50")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("Expected read timeout 30s, got %v", cfg.ReadTimeout)
	}
	if cfg.Engine.DuplicateThreshold != 0.9 {
		t.Errorf("Expected duplicate threshold 0.9, got %f", cfg.Engine.DuplicateThreshold)
	}
	if cfg.Engine.QuickScanBudget != 50 {
		t.Errorf("Expected quick scan budget 50, got %d", cfg.Engine.QuickScanBudget)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Expected rate limit to be disabled")
	}
}

func TestConfigInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("ENGINE_DUPLICATE_THRESHOLD", "not-a-number")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	defaults := matching.DefaultConfig()
	if cfg.Engine.DuplicateThreshold != defaults.DuplicateThreshold {
		t.Errorf("Expected default duplicate threshold %f, got %f",
			defaults.DuplicateThreshold, cfg.Engine.DuplicateThreshold)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("Expected default max open conns 25, got %d", cfg.MaxOpenConns)
	}
}

func TestMatchingConfigBridge(t *testing.T) {
	cfg := GetDefaults()

	engineCfg := cfg.Engine.MatchingConfig()
	if err := engineCfg.Validate(); err != nil {
		t.Fatalf("Bridged config should be valid, got error: %v", err)
	}

	defaults := matching.DefaultConfig()
	if engineCfg != defaults {
		t.Errorf("Expected bridged defaults %+v, got %+v", defaults, engineCfg)
	}
}
