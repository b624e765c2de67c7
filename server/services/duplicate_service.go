package services

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"ciderserver/matching"
	apperrors "ciderserver/server/errors"
	"ciderserver/server/monitoring"
)

// CollectionSource источник снимка коллекции для проверок
type CollectionSource interface {
	Snapshot() ([]matching.StoredCandidate, error)
}

// DuplicateService сервис проверки дубликатов и похожих записей
type DuplicateService struct {
	source  CollectionSource
	engine  *matching.Engine
	metrics *monitoring.MetricsCollector
}

// NewDuplicateService создает новый сервис проверки дубликатов
func NewDuplicateService(source CollectionSource, engine *matching.Engine, metrics *monitoring.MetricsCollector) *DuplicateService {
	return &DuplicateService{
		source:  source,
		engine:  engine,
		metrics: metrics,
	}
}

// Config возвращает текущую конфигурацию движка сравнения
func (s *DuplicateService) Config() matching.Config {
	return s.engine.Config()
}

// QuickCheck быстрая проверка по названию и бренду во время ввода
func (s *DuplicateService) QuickCheck(ctx context.Context, name, brand string) (matching.QuickResult, error) {
	if strings.TrimSpace(name) == "" {
		return matching.QuickResult{}, apperrors.NewValidationError("name is required", nil)
	}

	snapshot, err := s.source.Snapshot()
	if err != nil {
		return matching.QuickResult{}, apperrors.NewInternalError("failed to load collection snapshot", err)
	}

	start := time.Now()
	result := s.engine.QuickCheck(name, brand, snapshot)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordQuickCheck(result.IsDuplicate, duration)
	}
	slog.Debug("[QuickCheck] Completed",
		"name", name,
		"collection_size", len(snapshot),
		"is_duplicate", result.IsDuplicate,
		"duration_ms", duration.Milliseconds(),
	)

	return result, nil
}

// FullCheck полная проверка записи перед добавлением в коллекцию
func (s *DuplicateService) FullCheck(ctx context.Context, item matching.Candidate) (matching.CheckResult, error) {
	if err := validateCandidate(item); err != nil {
		return matching.CheckResult{}, err
	}

	snapshot, err := s.source.Snapshot()
	if err != nil {
		return matching.CheckResult{}, apperrors.NewInternalError("failed to load collection snapshot", err)
	}

	start := time.Now()
	result := s.engine.FullCheck(item, snapshot)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordFullCheck(result.IsDuplicate, result.HasSimilar, duration)
	}
	slog.Info("[FullCheck] Completed",
		"name", item.Name,
		"collection_size", len(snapshot),
		"is_duplicate", result.IsDuplicate,
		"has_similar", result.HasSimilar,
		"confidence", result.Confidence,
		"duration_ms", duration.Milliseconds(),
	)

	return result, nil
}

// SuggestNames возвращает подсказки названий по префиксу
func (s *DuplicateService) SuggestNames(ctx context.Context, prefix string) ([]string, error) {
	snapshot, err := s.source.Snapshot()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load collection snapshot", err)
	}
	return s.engine.SuggestNames(prefix, snapshot), nil
}

// SuggestBrands возвращает подсказки брендов по префиксу
func (s *DuplicateService) SuggestBrands(ctx context.Context, prefix string) ([]string, error) {
	snapshot, err := s.source.Snapshot()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load collection snapshot", err)
	}
	return s.engine.SuggestBrands(prefix, snapshot), nil
}

// validateCandidate проверяет кандидата перед полной проверкой
func validateCandidate(item matching.Candidate) error {
	if strings.TrimSpace(item.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if item.StrengthPercent != nil {
		strength := *item.StrengthPercent
		if math.IsNaN(strength) || math.IsInf(strength, 0) {
			return apperrors.NewValidationError("strength percent must be a number", nil)
		}
		if strength < 0 || strength > 100 {
			return apperrors.NewValidationError("strength percent must be between 0 and 100", nil)
		}
	}
	return nil
}
