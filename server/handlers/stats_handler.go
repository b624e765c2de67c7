package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ciderserver/server/middleware"
	"ciderserver/server/monitoring"
	"ciderserver/server/services"
)

// StatsHandler обработчик сводной статистики сервера
type StatsHandler struct {
	cellarService    *services.CellarService
	duplicateService *services.DuplicateService
	metrics          *monitoring.MetricsCollector
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(
	cellarService *services.CellarService,
	duplicateService *services.DuplicateService,
	metrics *monitoring.MetricsCollector,
) *StatsHandler {
	return &StatsHandler{
		cellarService:    cellarService,
		duplicateService: duplicateService,
		metrics:          metrics,
	}
}

// HandleStats обработчик сводной статистики
// @Summary Получить статистику сервера
// @Description Возвращает статистику коллекции, счетчики запросов и проверок, конфигурацию движка и метрики ошибок
// @Tags monitoring
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Сводная статистика"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/stats [get]
func (h *StatsHandler) HandleStats(c *gin.Context) {
	cellarStats, err := h.cellarService.GetCellarStats()
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	cfg := h.duplicateService.Config()
	response := gin.H{
		"cellar": cellarStats,
		"engine": gin.H{
			"duplicateThreshold": cfg.DuplicateThreshold,
			"similarThreshold":   cfg.SimilarThreshold,
			"maxSimilarMatches":  cfg.MaxSimilarMatches,
			"maxSuggestions":     cfg.MaxSuggestions,
			"quickScanBudget":    cfg.QuickScanBudget,
			"weights":            cfg.Weights,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if h.metrics != nil {
		response["metrics"] = h.metrics.GetMetrics()
	}
	if errorMetrics := middleware.GetErrorMetrics(); errorMetrics != nil {
		response["errors"] = errorMetrics.GetMetrics()
	}

	SendJSONResponse(c, http.StatusOK, response)
}
