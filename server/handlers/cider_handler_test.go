package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ciderserver/database"
	"ciderserver/matching"
	"ciderserver/server/services"
)

// newTestStack собирает роутер с обработчиками поверх базы в памяти
func newTestStack(t *testing.T) (*gin.Engine, *services.CellarService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewCellarDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	cellarService := services.NewCellarService(db)
	duplicateService := services.NewDuplicateService(cellarService, matching.NewDefaultEngine(), nil)

	ciderHandler := NewCiderHandler(cellarService, duplicateService)
	duplicateHandler := NewDuplicateHandler(duplicateService)
	suggestHandler := NewSuggestHandler(duplicateService)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/ciders", ciderHandler.HandleCreateCider)
		api.GET("/ciders", ciderHandler.HandleListCiders)
		api.GET("/ciders/:id", ciderHandler.HandleGetCider)
		api.DELETE("/ciders/:id", ciderHandler.HandleDeleteCider)
		api.POST("/duplicates/quick-check", duplicateHandler.HandleQuickCheck)
		api.POST("/duplicates/check", duplicateHandler.HandleFullCheck)
		api.GET("/suggestions/names", suggestHandler.HandleSuggestNames)
		api.GET("/suggestions/brands", suggestHandler.HandleSuggestBrands)
	}

	return router, cellarService
}

// postJSON выполняет POST запрос с JSON телом
func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHandleCreateCider тестирует добавление записи с проверкой дубликатов
func TestHandleCreateCider(t *testing.T) {
	router, _ := newTestStack(t)

	t.Run("creates cider in empty collection", func(t *testing.T) {
		w := postJSON(t, router, "/api/ciders", CreateCiderRequest{
			Name:  "Thatchers Gold",
			Brand: "Thatchers",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp CreateCiderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Cider == nil || resp.Cider.ID == 0 {
			t.Error("Expected created cider with assigned ID")
		}
		if resp.DuplicateCheck == nil {
			t.Fatal("Expected duplicate check result in response")
		}
		if resp.DuplicateCheck.IsDuplicate {
			t.Error("First cider should not be a duplicate")
		}
		if resp.DuplicateCheck.Message != "No similar ciders found" {
			t.Errorf("Unexpected check message: %s", resp.DuplicateCheck.Message)
		}
	})

	t.Run("flags duplicate but does not block creation", func(t *testing.T) {
		w := postJSON(t, router, "/api/ciders", CreateCiderRequest{
			Name:  "Thatchers Gold",
			Brand: "Thatchers",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp CreateCiderResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if !resp.DuplicateCheck.IsDuplicate {
			t.Error("Expected duplicate verdict for identical cider")
		}
		if resp.DuplicateCheck.ExistingMatch == nil {
			t.Error("Expected existing match in duplicate verdict")
		}
		if resp.Cider == nil || resp.Cider.ID == 0 {
			t.Error("Duplicate verdict must not block creation")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		w := postJSON(t, router, "/api/ciders", CreateCiderRequest{Name: "   "})

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/ciders", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestHandleListCiders тестирует список коллекции с пагинацией
func TestHandleListCiders(t *testing.T) {
	router, cellarService := newTestStack(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := cellarService.CreateCider(&database.Cider{Name: name}); err != nil {
			t.Fatalf("Failed to seed cider %s: %v", name, err)
		}
	}

	t.Run("returns full page by default", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp ListCidersResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if resp.Total != 3 || len(resp.Ciders) != 3 {
			t.Errorf("Expected 3 ciders with total 3, got %d/%d", len(resp.Ciders), resp.Total)
		}
		if resp.Limit != 100 {
			t.Errorf("Expected default limit 100, got %d", resp.Limit)
		}
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders?limit=1&offset=1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp ListCidersResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(resp.Ciders) != 1 || resp.Ciders[0].Name != "Second" {
			t.Errorf("Expected page with 'Second', got %+v", resp.Ciders)
		}
		if resp.Total != 3 {
			t.Errorf("Expected total 3, got %d", resp.Total)
		}
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders?limit=many", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestHandleGetCider тестирует получение записи по идентификатору
func TestHandleGetCider(t *testing.T) {
	router, cellarService := newTestStack(t)

	created, err := cellarService.CreateCider(&database.Cider{Name: "Old Mout", Brand: "Old Mout"})
	if err != nil {
		t.Fatalf("Failed to seed cider: %v", err)
	}

	t.Run("returns existing cider", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var cider database.Cider
		if err := json.Unmarshal(w.Body.Bytes(), &cider); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if cider.ID != created.ID || cider.Name != "Old Mout" {
			t.Errorf("Unexpected cider in response: %+v", cider)
		}
	})

	t.Run("returns 404 for missing cider", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders/9999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/ciders/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestHandleDeleteCider тестирует удаление записи
func TestHandleDeleteCider(t *testing.T) {
	router, cellarService := newTestStack(t)

	created, err := cellarService.CreateCider(&database.Cider{Name: "To Delete"})
	if err != nil {
		t.Fatalf("Failed to seed cider: %v", err)
	}

	t.Run("deletes existing cider", func(t *testing.T) {
		req, _ := http.NewRequest("DELETE", "/api/ciders/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		if _, err := cellarService.GetCider(created.ID); err == nil {
			t.Error("Cider should be gone after delete")
		}
	})

	t.Run("returns 404 for already deleted cider", func(t *testing.T) {
		req, _ := http.NewRequest("DELETE", "/api/ciders/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
