package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ciderserver/server/services"
)

// SuggestHandler обработчик подсказок автодополнения
type SuggestHandler struct {
	duplicateService *services.DuplicateService
}

// NewSuggestHandler создает новый обработчик подсказок
func NewSuggestHandler(duplicateService *services.DuplicateService) *SuggestHandler {
	return &SuggestHandler{
		duplicateService: duplicateService,
	}
}

// SuggestResponse список подсказок для префикса
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// HandleSuggestNames обработчик подсказок названий
// @Summary Подсказки названий
// @Description Возвращает названия из коллекции, подходящие под префикс. Короткий префикс дает пустой список
// @Tags suggestions
// @Accept json
// @Produce json
// @Param q query string true "Префикс для поиска"
// @Success 200 {object} SuggestResponse "Список подсказок"
// @Failure 400 {object} ErrorResponse "Не указан параметр q"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/suggestions/names [get]
func (h *SuggestHandler) HandleSuggestNames(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		SendJSONError(c, http.StatusBadRequest, "q parameter is required")
		return
	}

	names, err := h.duplicateService.SuggestNames(c.Request.Context(), query)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if names == nil {
		names = []string{}
	}

	SendJSONResponse(c, http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: names,
	})
}

// HandleSuggestBrands обработчик подсказок брендов
// @Summary Подсказки брендов
// @Description Возвращает бренды из коллекции, подходящие под префикс. Короткий префикс дает пустой список
// @Tags suggestions
// @Accept json
// @Produce json
// @Param q query string true "Префикс для поиска"
// @Success 200 {object} SuggestResponse "Список подсказок"
// @Failure 400 {object} ErrorResponse "Не указан параметр q"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/suggestions/brands [get]
func (h *SuggestHandler) HandleSuggestBrands(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		SendJSONError(c, http.StatusBadRequest, "q parameter is required")
		return
	}

	brands, err := h.duplicateService.SuggestBrands(c.Request.Context(), query)
	if err != nil {
		SendJSONError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if brands == nil {
		brands = []string{}
	}

	SendJSONResponse(c, http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: brands,
	})
}
