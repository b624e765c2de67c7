package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ciderserver/database"
	"ciderserver/matching"
	apperrors "ciderserver/server/errors"
	"ciderserver/server/middleware"
	"ciderserver/server/services"
)

// Значения пагинации списка по умолчанию
const (
	defaultListLimit = 100
	maxPageLimit     = 500
)

// CiderHandler обработчик для работы с коллекцией сидров
type CiderHandler struct {
	cellarService    *services.CellarService
	duplicateService *services.DuplicateService
}

// NewCiderHandler создает новый обработчик коллекции
func NewCiderHandler(
	cellarService *services.CellarService,
	duplicateService *services.DuplicateService,
) *CiderHandler {
	return &CiderHandler{
		cellarService:    cellarService,
		duplicateService: duplicateService,
	}
}

// CreateCiderRequest тело запроса на добавление сидра
type CreateCiderRequest struct {
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	StrengthPercent *float64 `json:"strengthPercent,omitempty"`
	ContainerType   string   `json:"containerType,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// CreateCiderResponse ответ на добавление: запись и результат проверки дубликатов
type CreateCiderResponse struct {
	Cider          *database.Cider       `json:"cider"`
	DuplicateCheck *matching.CheckResult `json:"duplicateCheck,omitempty"`
}

// ListCidersResponse страница коллекции
type ListCidersResponse struct {
	Ciders []*database.Cider `json:"ciders"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ErrorResponse структура ошибки
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// HandleCreateCider обработчик добавления сидра в коллекцию
// @Summary Добавить сидр в коллекцию
// @Description Добавляет запись и прикладывает результат проверки дубликатов. Проверка совещательная: дубликат не блокирует добавление
// @Tags ciders
// @Accept json
// @Produce json
// @Param request body CreateCiderRequest true "Новая запись коллекции"
// @Success 201 {object} CreateCiderResponse "Запись добавлена"
// @Failure 400 {object} ErrorResponse "Неверное тело запроса"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/ciders [post]
func (h *CiderHandler) HandleCreateCider(c *gin.Context) {
	var req CreateCiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	// Проверка дубликатов до вставки: снимок еще не содержит новую запись,
	// поэтому кандидат не совпадет сам с собой
	candidate := matching.Candidate{
		Name:            req.Name,
		Brand:           req.Brand,
		StrengthPercent: req.StrengthPercent,
		Container:       matching.ParseContainerType(req.ContainerType),
	}
	check, err := h.duplicateService.FullCheck(c.Request.Context(), candidate)
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	created, err := h.cellarService.CreateCider(&database.Cider{
		Name:            req.Name,
		Brand:           req.Brand,
		StrengthPercent: req.StrengthPercent,
		ContainerType:   req.ContainerType,
		Notes:           req.Notes,
	})
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusCreated, CreateCiderResponse{
		Cider:          created,
		DuplicateCheck: &check,
	})
}

// HandleListCiders обработчик списка коллекции с пагинацией
// @Summary Получить список сидров
// @Description Возвращает страницу коллекции и общее количество записей
// @Tags ciders
// @Accept json
// @Produce json
// @Param limit query int false "Размер страницы, по умолчанию 100"
// @Param offset query int false "Смещение от начала, по умолчанию 0"
// @Success 200 {object} ListCidersResponse "Страница коллекции"
// @Failure 400 {object} ErrorResponse "Неверные параметры пагинации"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/ciders [get]
func (h *CiderHandler) HandleListCiders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("limit must be a number", err))
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("offset must be a number", err))
		return
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	ciders, total, err := h.cellarService.ListCiders(limit, offset)
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, ListCidersResponse{
		Ciders: ciders,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleGetCider обработчик получения записи по идентификатору
// @Summary Получить сидр по идентификатору
// @Description Возвращает одну запись коллекции
// @Tags ciders
// @Accept json
// @Produce json
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} database.Cider "Запись коллекции"
// @Failure 400 {object} ErrorResponse "Неверный идентификатор"
// @Failure 404 {object} ErrorResponse "Запись не найдена"
// @Router /api/ciders/{id} [get]
func (h *CiderHandler) HandleGetCider(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("id must be a number", err))
		return
	}

	cider, err := h.cellarService.GetCider(id)
	if err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, cider)
}

// HandleDeleteCider обработчик удаления записи по идентификатору
// @Summary Удалить сидр из коллекции
// @Description Удаляет одну запись коллекции
// @Tags ciders
// @Accept json
// @Produce json
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} map[string]interface{} "Запись удалена"
// @Failure 400 {object} ErrorResponse "Неверный идентификатор"
// @Failure 404 {object} ErrorResponse "Запись не найдена"
// @Router /api/ciders/{id} [delete]
func (h *CiderHandler) HandleDeleteCider(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleGinError(c, apperrors.NewValidationError("id must be a number", err))
		return
	}

	if err := h.cellarService.DeleteCider(id); err != nil {
		middleware.HandleGinError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"message": "Cider deleted",
		"id":      id,
	})
}
