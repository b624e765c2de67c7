package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"ciderserver/matching"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Host string `json:"host"`
	Port string `json:"port"`

	// Таймауты HTTP
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Движок обнаружения дубликатов
	Engine *EngineConfig `json:"engine"`

	// Ограничение частоты запросов
	RateLimit *RateLimitConfig `json:"rate_limit"`
}

// EngineConfig конфигурация движка обнаружения дубликатов
type EngineConfig struct {
	DuplicateThreshold float64 `json:"duplicate_threshold"`
	SimilarThreshold   float64 `json:"similar_threshold"`
	MaxSimilarMatches  int     `json:"max_similar_matches"`
	MaxSuggestions     int     `json:"max_suggestions"`
	QuickScanBudget    int     `json:"quick_scan_budget"`

	NameWeight      float64 `json:"name_weight"`
	BrandWeight     float64 `json:"brand_weight"`
	StrengthWeight  float64 `json:"strength_weight"`
	ContainerWeight float64 `json:"container_weight"`
}

// RateLimitConfig конфигурация ограничения частоты запросов
type RateLimitConfig struct {
	Enabled           bool    `json:"enabled"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Host: getEnv("SERVER_HOST", "0.0.0.0"),
		Port: getEnv("SERVER_PORT", "8080"),

		// Таймауты HTTP
		ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),

		// База данных
		DatabasePath: getEnv("DATABASE_PATH", "cellar.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// Логирование
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		// Движок
		Engine: LoadEngineConfig(),

		// Ограничение частоты запросов
		RateLimit: LoadRateLimitConfig(),
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// LoadEngineConfig загружает конфигурацию движка из переменных окружения
func LoadEngineConfig() *EngineConfig {
	defaults := matching.DefaultConfig()

	return &EngineConfig{
		DuplicateThreshold: getEnvFloat("ENGINE_DUPLICATE_THRESHOLD", defaults.DuplicateThreshold),
		SimilarThreshold:   getEnvFloat("ENGINE_SIMILAR_THRESHOLD", defaults.SimilarThreshold),
		MaxSimilarMatches:  getEnvInt("ENGINE_MAX_SIMILAR_MATCHES", defaults.MaxSimilarMatches),
		MaxSuggestions:     getEnvInt("ENGINE_MAX_SUGGESTIONS", defaults.MaxSuggestions),
		QuickScanBudget:    getEnvInt("ENGINE_QUICK_SCAN_BUDGET", defaults.QuickScanBudget),

		NameWeight:      getEnvFloat("ENGINE_NAME_WEIGHT", defaults.Weights.Name),
		BrandWeight:     getEnvFloat("ENGINE_BRAND_WEIGHT", defaults.Weights.Brand),
		StrengthWeight:  getEnvFloat("ENGINE_STRENGTH_WEIGHT", defaults.Weights.Strength),
		ContainerWeight: getEnvFloat("ENGINE_CONTAINER_WEIGHT", defaults.Weights.Container),
	}
}

// LoadRateLimitConfig загружает конфигурацию ограничения частоты запросов
func LoadRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:           getEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: getEnvFloat("RATE_LIMIT_PER_SEC", 10),
		Burst:             getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

// MatchingConfig преобразует настройки в конфигурацию движка
func (ec *EngineConfig) MatchingConfig() matching.Config {
	return matching.Config{
		DuplicateThreshold: ec.DuplicateThreshold,
		SimilarThreshold:   ec.SimilarThreshold,
		MaxSimilarMatches:  ec.MaxSimilarMatches,
		MaxSuggestions:     ec.MaxSuggestions,
		QuickScanBudget:    ec.QuickScanBudget,
		Weights: matching.FieldWeights{
			Name:      ec.NameWeight,
			Brand:     ec.BrandWeight,
			Strength:  ec.StrengthWeight,
			Container: ec.ContainerWeight,
		},
	}
}

// Address возвращает адрес прослушивания сервера
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
