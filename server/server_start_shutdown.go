package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"ciderserver/server/handlers"
	"ciderserver/server/middleware"
)

// Start запускает HTTP сервер
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:         s.config.Address(),
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	// Запускаем фоновые задачи
	go s.startHealthMonitor()

	log.Printf("Сервер запускается на %s", s.httpServer.Addr)
	log.Printf("API доступно по адресу: http://localhost:%s/api", s.config.Port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", s.config.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server on %s: %w", s.httpServer.Addr, err)
	}

	return nil
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		handler, err := s.buildHTTPHandler()
		if err != nil {
			log.Printf("[ensureHTTPHandler] ✗ ОШИБКА при создании HTTP handler: %v", err)
			s.handlerInitErr = err
			return
		}
		s.httpHandler = handler
	})

	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}

	if s.httpHandler == nil {
		return nil, fmt.Errorf("httpHandler is nil")
	}

	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	// Устанавливаем режим Gin: release для продакшена, debug для разработки
	// Можно переопределить через переменную окружения GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Применяем middleware
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(s.httpMetricsMiddleware())
	log.Printf("[buildHTTPHandler] Middleware применены")

	// Регистрируем Swagger
	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)
	log.Printf("[buildHTTPHandler] Swagger routes зарегистрированы")

	// Регистрируем handlers
	s.registerGinHandlers(router)
	log.Printf("[buildHTTPHandler] Gin handlers зарегистрированы")

	return router, nil
}

// httpMetricsMiddleware записывает длительность и исход каждого запроса
func (s *Server) httpMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if s.metricsCollector != nil {
			s.metricsCollector.RecordHTTPRequest(c.Writer.Status() < http.StatusInternalServerError, time.Since(start))
		}
	}
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server is not initialized", http.StatusInternalServerError)
		return
	}

	handler.ServeHTTP(w, r)
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Initiating graceful shutdown...")

	// Останавливаем фоновые задачи
	close(s.shutdownChan)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}

	log.Println("Graceful shutdown completed")
	return nil
}

// registerGinHandlers регистрирует все Gin handlers
func (s *Server) registerGinHandlers(router *gin.Engine) {
	// Health check endpoint - простой эндпоинт без зависимостей
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "cider-server",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	// Ciders API
	cidersAPI := api.Group("/ciders")
	{
		// POST /api/ciders - добавление сидра с проверкой дубликатов
		cidersAPI.POST("", s.ciderHandler.HandleCreateCider)
		// GET /api/ciders - список сидров с пагинацией
		cidersAPI.GET("", s.ciderHandler.HandleListCiders)
		// GET /api/ciders/:id - получение сидра по ID
		cidersAPI.GET("/:id", s.ciderHandler.HandleGetCider)
		// DELETE /api/ciders/:id - удаление сидра
		cidersAPI.DELETE("/:id", s.ciderHandler.HandleDeleteCider)
	}
	log.Printf("[Routes] ✓ Ciders API routes registered")

	// Duplicates API
	// Полная проверка стоит O(n) по коллекции, поэтому группа защищена rate limiter
	duplicatesAPI := api.Group("/duplicates")
	if s.config.RateLimit != nil && s.config.RateLimit.Enabled {
		duplicatesAPI.Use(middleware.GinRateLimitMiddleware(
			s.config.RateLimit.RequestsPerSecond,
			s.config.RateLimit.Burst,
		))
		log.Printf("[Routes] Rate limit на проверки дубликатов: %.1f rps, burst %d",
			s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst)
	}
	{
		// POST /api/duplicates/quick-check - быстрая проверка при вводе
		duplicatesAPI.POST("/quick-check", s.duplicateHandler.HandleQuickCheck)
		// POST /api/duplicates/check - полная проверка кандидата
		duplicatesAPI.POST("/check", s.duplicateHandler.HandleFullCheck)
	}
	log.Printf("[Routes] ✓ Duplicates API routes registered")

	// Suggestions API
	suggestionsAPI := api.Group("/suggestions")
	{
		// GET /api/suggestions/names - автодополнение названий
		suggestionsAPI.GET("/names", s.suggestHandler.HandleSuggestNames)
		// GET /api/suggestions/brands - автодополнение брендов
		suggestionsAPI.GET("/brands", s.suggestHandler.HandleSuggestBrands)
	}
	log.Printf("[Routes] ✓ Suggestions API routes registered")

	// Stats API
	api.GET("/stats", s.statsHandler.HandleStats)

	// Health API с проверкой компонентов
	if s.healthChecker != nil {
		api.GET("/health", handlers.GinHandlerFunc(s.healthChecker.HTTPHandler()))
		api.GET("/health/live", handlers.GinHandlerFunc(s.healthChecker.LivenessHandler()))
		api.GET("/health/ready", handlers.GinHandlerFunc(s.healthChecker.ReadinessHandler()))
		log.Printf("[Routes] ✓ Health API routes registered")
	}
}
