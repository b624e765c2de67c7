package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"ciderserver/internal/config"
)

func main() {
	fmt.Println("=== Проверка конфигурации ===")
	fmt.Println("")

	// Подхватываем .env так же, как это делает сервер
	if err := godotenv.Load(); err == nil {
		fmt.Println("Загружен .env файл")
		fmt.Println("")
	}

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация успешно загружена")
	fmt.Println("")

	// Выводим основные настройки
	fmt.Println("Основные настройки:")
	fmt.Printf("  Адрес: %s\n", cfg.Address())
	fmt.Printf("  База данных: %s\n", cfg.DatabasePath)
	fmt.Printf("  Уровень логирования: %s\n", cfg.LogLevel)
	fmt.Println("")

	// Выводим таймауты сервера
	fmt.Println("Таймауты:")
	fmt.Printf("  Read Timeout: %v\n", cfg.ReadTimeout)
	fmt.Printf("  Write Timeout: %v\n", cfg.WriteTimeout)
	fmt.Printf("  Idle Timeout: %v\n", cfg.IdleTimeout)
	fmt.Printf("  Shutdown Timeout: %v\n", cfg.ShutdownTimeout)
	fmt.Println("")

	// Выводим настройки connection pooling
	fmt.Println("Connection Pooling:")
	fmt.Printf("  Max Open Connections: %d\n", cfg.MaxOpenConns)
	fmt.Printf("  Max Idle Connections: %d\n", cfg.MaxIdleConns)
	fmt.Printf("  Connection Max Lifetime: %v\n", cfg.ConnMaxLifetime)
	fmt.Println("")

	// Выводим настройки движка проверки дубликатов
	if cfg.Engine != nil {
		fmt.Println("Duplicate Engine:")
		fmt.Printf("  Duplicate Threshold: %.2f\n", cfg.Engine.DuplicateThreshold)
		fmt.Printf("  Similar Threshold: %.2f\n", cfg.Engine.SimilarThreshold)
		fmt.Printf("  Max Similar Matches: %d\n", cfg.Engine.MaxSimilarMatches)
		fmt.Printf("  Max Suggestions: %d\n", cfg.Engine.MaxSuggestions)
		fmt.Printf("  Quick Scan Budget: %d\n", cfg.Engine.QuickScanBudget)
		fmt.Printf("  Weights: name %.2f, brand %.2f, strength %.2f, container %.2f\n",
			cfg.Engine.NameWeight, cfg.Engine.BrandWeight,
			cfg.Engine.StrengthWeight, cfg.Engine.ContainerWeight)
		fmt.Println("")
	}

	// Выводим настройки rate limiting
	if cfg.RateLimit != nil {
		fmt.Println("Rate Limit:")
		fmt.Printf("  Enabled: %v\n", cfg.RateLimit.Enabled)
		fmt.Printf("  Requests Per Second: %.1f\n", cfg.RateLimit.RequestsPerSecond)
		fmt.Printf("  Burst: %d\n", cfg.RateLimit.Burst)
		fmt.Println("")
	}

	// Проверяем валидацию
	if err := cfg.Validate(); err != nil {
		fmt.Printf("⚠️  Предупреждения валидации: %v\n", err)
		fmt.Println("")
	} else {
		fmt.Println("✅ Валидация пройдена успешно")
		fmt.Println("")
	}

	fmt.Println("=== Проверка завершена ===")
}
