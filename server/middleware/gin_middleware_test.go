package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ciderserver/server/errors"
)

// setupTestRouter создает тестовый Gin роутер
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// TestGinRequestIDMiddleware проверяет генерацию и проброс request ID
func TestGinRequestIDMiddleware(t *testing.T) {
	t.Run("Generates new request ID", func(t *testing.T) {
		router := setupTestRouter()
		router.Use(GinRequestIDMiddleware())

		var ctxID string
		router.GET("/test", func(c *gin.Context) {
			ctxID = GetRequestID(c.Request.Context())
			c.JSON(200, gin.H{"id": GetRequestIDFromGin(c)})
		})

		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		headerID := w.Header().Get("X-Request-ID")
		if headerID == "" {
			t.Error("X-Request-ID header should be set")
		}
		if ctxID != headerID {
			t.Errorf("Context ID %q should match header ID %q", ctxID, headerID)
		}
	})

	t.Run("Keeps request ID from header", func(t *testing.T) {
		router := setupTestRouter()
		router.Use(GinRequestIDMiddleware())

		router.GET("/test", func(c *gin.Context) {
			c.JSON(200, gin.H{"id": GetRequestIDFromGin(c)})
		})

		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "client-supplied-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") != "client-supplied-id" {
			t.Errorf("Expected client request ID to survive, got %q", w.Header().Get("X-Request-ID"))
		}
	})
}

// TestGinCORSMiddleware проверяет CORS заголовки и preflight запросы
func TestGinCORSMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(GinCORSMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected wildcard origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	// Preflight запрос завершается без вызова обработчика
	preflight, _ := http.NewRequest("OPTIONS", "/test", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, preflight)

	if w.Code != 204 {
		t.Errorf("Expected status 204 for OPTIONS, got %d", w.Code)
	}
}

// TestGinRateLimitMiddleware проверяет ограничение частоты запросов
func TestGinRateLimitMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(GinRateLimitMiddleware(1, 2))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})

	// Burst 2: первые два запроса проходят, третий отклоняется
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d should pass, got status %d", i+1, w.Code)
		}
	}

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after burst, got %d", w.Code)
	}
}

// TestGinRecoveryMiddleware проверяет перехват паники
func TestGinRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(GinRequestIDMiddleware(), GinRecoveryMiddleware())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 after panic, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response should be JSON, got %q", w.Body.String())
	}
	if body["message"] != "Internal server error" {
		t.Errorf("Unexpected panic response: %v", body)
	}
}

// TestHandleGinError проверяет преобразование ошибок в JSON ответы
func TestHandleGinError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "AppError keeps status and message",
			err:         apperrors.NewNotFoundError("cider not found", nil),
			wantStatus:  http.StatusNotFound,
			wantMessage: "cider not found",
		},
		{
			name:        "Validation error",
			err:         apperrors.NewValidationError("name is required", nil),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "name is required",
		},
		{
			name:        "Plain error becomes internal",
			err:         fmt.Errorf("disk exploded"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.Use(GinRequestIDMiddleware())
			router.GET("/test", func(c *gin.Context) {
				HandleGinError(c, tt.err)
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Response should be JSON, got %q", w.Body.String())
			}
			if resp.Error != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, resp.Error)
			}
			if resp.RequestID == "" {
				t.Error("Error response should carry request ID")
			}
		})
	}
}
