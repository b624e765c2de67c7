package server

import (
	"net/http"
	"sync"
	"time"

	"ciderserver/database"
	"ciderserver/internal/config"
	"ciderserver/matching"
	"ciderserver/server/handlers"
	"ciderserver/server/monitoring"
	"ciderserver/server/services"
)

// Version версия сервера, отдается в health check
const Version = "1.0.0"

// Алиасы для обратной совместимости
type Config = config.Config
type EngineConfig = config.EngineConfig

var LoadConfig = config.LoadConfig
var LoadEngineConfig = config.LoadEngineConfig

// Server HTTP сервер личной коллекции сидров
type Server struct {
	db     *database.CellarDB
	config *Config

	httpServer  *http.Server
	httpHandler http.Handler

	// Движок проверки дубликатов
	engine *matching.Engine

	// Сервисы
	cellarService    *services.CellarService
	duplicateService *services.DuplicateService

	// Handlers
	ciderHandler     *handlers.CiderHandler
	duplicateHandler *handlers.DuplicateHandler
	suggestHandler   *handlers.SuggestHandler
	statsHandler     *handlers.StatsHandler

	// Мониторинг
	healthChecker    *monitoring.HealthChecker
	metricsCollector *monitoring.MetricsCollector

	shutdownChan chan struct{}
	startTime    time.Time

	handlerOnce    sync.Once
	handlerInitErr error
}

// Engine возвращает движок проверки дубликатов
func (s *Server) Engine() *matching.Engine {
	return s.engine
}

// startHealthMonitor запускает фоновую задачу периодического контроля состояния.
// Обновляет метрики пула соединений и пишет в лог статус компонентов.
func (s *Server) startHealthMonitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.db != nil && s.metricsCollector != nil {
				stats := s.db.Stats()
				s.metricsCollector.SetDBConnections(int64(stats.InUse), int64(stats.Idle))
			}
			if s.healthChecker != nil {
				s.healthChecker.LogHealthStatus()
			}
		case <-s.shutdownChan:
			return
		}
	}
}
