package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ciderserver/matching"
	apperrors "ciderserver/server/errors"
	"ciderserver/server/middleware"
	"ciderserver/server/services"
)

// DuplicateHandler обработчик проверки дубликатов
type DuplicateHandler struct {
	duplicateService *services.DuplicateService
}

// NewDuplicateHandler создает новый обработчик проверки дубликатов
func NewDuplicateHandler(duplicateService *services.DuplicateService) *DuplicateHandler {
	return &DuplicateHandler{
		duplicateService: duplicateService,
	}
}

// QuickCheckRequest тело быстрой проверки во время ввода
type QuickCheckRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand,omitempty"`
}

// FullCheckRequest тело полной проверки кандидата
type FullCheckRequest struct {
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	StrengthPercent *float64 `json:"strengthPercent,omitempty"`
	ContainerType   string   `json:"containerType,omitempty"`
}

// HandleQuickCheck обработчик быстрой проверки по имени и бренду
// @Summary Быстрая проверка на дубликат
// @Description Проверяет имя и бренд против коллекции за ограниченное время. Подходит для вызова на каждое нажатие клавиши
// @Tags duplicates
// @Accept json
// @Produce json
// @Param request body QuickCheckRequest true "Имя и бренд для проверки"
// @Success 200 {object} matching.QuickResult "Результат быстрой проверки"
// @Failure 400 {object} ErrorResponse "Неверное тело запроса"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/duplicates/quick-check [post]
func (h *DuplicateHandler) HandleQuickCheck(c *gin.Context) {
	var req QuickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	result, err := h.duplicateService.QuickCheck(c.Request.Context(), req.Name, req.Brand)
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}

// HandleFullCheck обработчик полной проверки кандидата
// @Summary Полная проверка на дубликат
// @Description Сравнивает кандидата с каждой записью коллекции и возвращает вердикт с пояснениями
// @Tags duplicates
// @Accept json
// @Produce json
// @Param request body FullCheckRequest true "Кандидат для проверки"
// @Success 200 {object} matching.CheckResult "Результат полной проверки"
// @Failure 400 {object} ErrorResponse "Неверное тело запроса"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/duplicates/check [post]
func (h *DuplicateHandler) HandleFullCheck(c *gin.Context) {
	var req FullCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	result, err := h.duplicateService.FullCheck(c.Request.Context(), matching.Candidate{
		Name:            req.Name,
		Brand:           req.Brand,
		StrengthPercent: req.StrengthPercent,
		Container:       matching.ParseContainerType(req.ContainerType),
	})
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}
