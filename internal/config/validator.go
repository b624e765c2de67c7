package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ciderserver/matching"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе данных
	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация таймаутов HTTP
	if c.ReadTimeout < time.Second {
		errors = append(errors, "read timeout must be at least 1 second")
	}
	if c.WriteTimeout < time.Second {
		errors = append(errors, "write timeout must be at least 1 second")
	}
	if c.IdleTimeout < time.Second {
		errors = append(errors, "idle timeout must be at least 1 second")
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, "shutdown timeout must be at least 1 second")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Валидация конфигурации движка
	if c.Engine == nil {
		errors = append(errors, "engine config is required")
	} else if err := c.Engine.MatchingConfig().Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("engine config: %v", err))
	}

	// Валидация ограничения частоты запросов
	if c.RateLimit != nil {
		if err := c.RateLimit.Validate(); err != nil {
			errors = append(errors, fmt.Sprintf("rate limit config: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate проверяет корректность конфигурации ограничения частоты запросов
func (rl *RateLimitConfig) Validate() error {
	var errors []string

	if rl.Enabled {
		if rl.RequestsPerSecond <= 0 {
			errors = append(errors, "requests per second must be positive")
		}
		if rl.Burst < 1 {
			errors = append(errors, "burst must be at least 1")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("rate limit validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	defaults := matching.DefaultConfig()

	return &Config{
		Host:            "0.0.0.0",
		Port:            "8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    5 * time.Minute,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DatabasePath:    "cellar.db",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        "INFO",
		Engine: &EngineConfig{
			DuplicateThreshold: defaults.DuplicateThreshold,
			SimilarThreshold:   defaults.SimilarThreshold,
			MaxSimilarMatches:  defaults.MaxSimilarMatches,
			MaxSuggestions:     defaults.MaxSuggestions,
			QuickScanBudget:    defaults.QuickScanBudget,
			NameWeight:         defaults.Weights.Name,
			BrandWeight:        defaults.Weights.Brand,
			StrengthWeight:     defaults.Weights.Strength,
			ContainerWeight:    defaults.Weights.Container,
		},
		RateLimit: &RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}
