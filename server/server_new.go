package server

// Файл содержит конструкторы Server (NewServer, NewServerWithConfig),
// отделенные от server.go для сокращения его размера

import (
	"context"
	"fmt"
	"log"
	"time"

	"ciderserver/database"
	"ciderserver/internal/config"
	"ciderserver/matching"
	"ciderserver/server/handlers"
	"ciderserver/server/middleware"
	"ciderserver/server/monitoring"
	"ciderserver/server/services"
)

// NewServer создает сервер с конфигурацией по умолчанию
func NewServer(db *database.CellarDB, port string) (*Server, error) {
	cfg := &Config{
		Host:            "0.0.0.0",
		Port:            port,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Engine:          config.LoadEngineConfig(),
		RateLimit:       config.LoadRateLimitConfig(),
	}
	return NewServerWithConfig(db, cfg)
}

// NewServerWithConfig создает сервер с конфигурацией
func NewServerWithConfig(db *database.CellarDB, cfg *Config) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("cellar database is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Создаем движок проверки дубликатов
	var engine *matching.Engine
	var err error
	if cfg.Engine != nil {
		engine, err = matching.NewEngine(cfg.Engine.MatchingConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create matching engine: %w", err)
		}
	} else {
		engine = matching.NewDefaultEngine()
	}
	log.Printf("✓ Движок проверки дубликатов создан (порог дубликата %.2f, порог похожести %.2f)",
		engine.Config().DuplicateThreshold, engine.Config().SimilarThreshold)

	// Инициализируем сбор метрик ошибок для middleware
	middleware.InitErrorMetrics()

	// Создаем мониторинг
	metricsCollector := monitoring.NewMetricsCollector()
	healthChecker := monitoring.NewHealthChecker(Version, db.GetDB())

	// Создаем сервисы
	cellarService := services.NewCellarService(db)
	duplicateService := services.NewDuplicateService(cellarService, engine, metricsCollector)

	// Создаем handlers
	ciderHandler := handlers.NewCiderHandler(cellarService, duplicateService)
	duplicateHandler := handlers.NewDuplicateHandler(duplicateService)
	suggestHandler := handlers.NewSuggestHandler(duplicateService)
	statsHandler := handlers.NewStatsHandler(cellarService, duplicateService, metricsCollector)

	srv := &Server{
		db:               db,
		config:           cfg,
		engine:           engine,
		cellarService:    cellarService,
		duplicateService: duplicateService,
		ciderHandler:     ciderHandler,
		duplicateHandler: duplicateHandler,
		suggestHandler:   suggestHandler,
		statsHandler:     statsHandler,
		healthChecker:    healthChecker,
		metricsCollector: metricsCollector,
		shutdownChan:     make(chan struct{}),
		startTime:        time.Now(),
	}

	// Регистрируем движок как компонент health check: прогоняем быструю
	// проверку на пустой коллекции, чтобы убедиться что конвейер сравнения жив
	healthChecker.RegisterComponent("engine", func(ctx context.Context) monitoring.ComponentHealth {
		start := time.Now()
		result := engine.QuickCheck("healthcheck", "", nil)
		status := monitoring.HealthStatusHealthy
		message := "Matching engine is operational"
		if result.IsDuplicate {
			// На пустой коллекции дубликатов быть не может
			status = monitoring.HealthStatusUnhealthy
			message = "Matching engine returned duplicate on empty collection"
		}
		return monitoring.ComponentHealth{
			Name:      "engine",
			Status:    status,
			Message:   message,
			Timestamp: time.Now(),
			Latency:   time.Since(start),
		}
	})

	// Валидация критических зависимостей перед возвратом
	if err := srv.validateCriticalDependencies(); err != nil {
		return nil, fmt.Errorf("failed to validate critical dependencies: %w", err)
	}

	return srv, nil
}

// validateCriticalDependencies проверяет, что все критические зависимости инициализированы
func (s *Server) validateCriticalDependencies() error {
	var missing []string

	if s.db == nil {
		missing = append(missing, "db")
	}
	if s.config == nil {
		missing = append(missing, "config")
	}
	if s.engine == nil {
		missing = append(missing, "engine")
	}
	if s.cellarService == nil {
		missing = append(missing, "cellarService")
	}
	if s.duplicateService == nil {
		missing = append(missing, "duplicateService")
	}
	if s.ciderHandler == nil {
		missing = append(missing, "ciderHandler")
	}
	if s.duplicateHandler == nil {
		missing = append(missing, "duplicateHandler")
	}
	if s.healthChecker == nil {
		missing = append(missing, "healthChecker")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical dependencies are nil: %v", missing)
	}

	log.Printf("✓ Все критические зависимости валидированы успешно")
	return nil
}
