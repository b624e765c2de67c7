package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"ciderserver/server/middleware"
)

var (
	// Logger глобальный структурированный логгер
	Logger *slog.Logger

	logLevel = new(slog.LevelVar)
)

func init() {
	// Инициализируем структурированный логгер в формате JSON
	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true, // Добавляем информацию об источнике (файл, строка)
	}

	// Используем JSON handler для структурированного логирования
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

// SetLogLevel устанавливает уровень логирования из строки конфигурации
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}

// LogRequest логирует информацию о входящем HTTP запросе
func LogRequest(r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	Logger.Info("Request received",
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"request_id", reqID,
	)
}

// LogError логирует ошибку с контекстом из запроса
func LogError(ctx context.Context, err error, msg string, attrs ...any) {
	reqID := middleware.GetRequestID(ctx)

	attrs = append(attrs, "error", err, "request_id", reqID)

	Logger.Error(msg, attrs...)
}

// LogErrorf логирует ошибку с форматированным сообщением
func LogErrorf(ctx context.Context, err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	LogError(ctx, err, msg)
}

// LogWarn логирует предупреждение
func LogWarn(ctx context.Context, msg string, attrs ...any) {
	reqID := middleware.GetRequestID(ctx)
	attrs = append(attrs, "request_id", reqID)
	Logger.Warn(msg, attrs...)
}

// LogInfo логирует информационное сообщение
func LogInfo(ctx context.Context, msg string, attrs ...any) {
	reqID := middleware.GetRequestID(ctx)
	attrs = append(attrs, "request_id", reqID)
	Logger.Info(msg, attrs...)
}

// LogDebug логирует отладочное сообщение
func LogDebug(ctx context.Context, msg string, attrs ...any) {
	reqID := middleware.GetRequestID(ctx)
	attrs = append(attrs, "request_id", reqID)
	Logger.Debug(msg, attrs...)
}

// LogDuration логирует продолжительность выполнения операции
func LogDuration(ctx context.Context, operation string, duration time.Duration, attrs ...any) {
	reqID := middleware.GetRequestID(ctx)
	attrs = append(attrs, "request_id", reqID, "duration_ms", duration.Milliseconds())
	Logger.Info(operation+" completed", attrs...)
}

// --- Специализированные функции логирования для проверки дубликатов ---

// LogDuplicateCheck логирует результат полной проверки кандидата
func LogDuplicateCheck(ctx context.Context, name string, collectionSize int, isDuplicate, hasSimilar bool, confidence float64, duration time.Duration) {
	reqID := middleware.GetRequestID(ctx)
	Logger.Info("Duplicate check completed",
		"name", name,
		"collection_size", collectionSize,
		"is_duplicate", isDuplicate,
		"has_similar", hasSimilar,
		"confidence", confidence,
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID,
	)
}

// LogQuickCheck логирует результат быстрой проверки при вводе
func LogQuickCheck(ctx context.Context, name string, collectionSize int, isDuplicate bool, duration time.Duration) {
	reqID := middleware.GetRequestID(ctx)
	Logger.Debug("Quick check completed",
		"name", name,
		"collection_size", collectionSize,
		"is_duplicate", isDuplicate,
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID,
	)
}

// --- Специализированные функции логирования для импорта коллекции ---

// LogImportStart логирует начало импорта коллекции
func LogImportStart(source, format string) {
	Logger.Info("Import started",
		"source", source,
		"format", format,
	)
}

// LogImportComplete логирует завершение импорта коллекции
func LogImportComplete(source string, imported, skipped, failed int, duration time.Duration) {
	Logger.Info("Import completed",
		"source", source,
		"imported", imported,
		"skipped", skipped,
		"failed", failed,
		"duration_ms", duration.Milliseconds(),
	)
}

// LogImportRowError логирует ошибку разбора строки при импорте
func LogImportRowError(source string, row int, err error) {
	Logger.Warn("Import row skipped",
		"source", source,
		"row", row,
		"error", err,
	)
}
