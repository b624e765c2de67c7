package services

import (
	"math"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"ciderserver/database"
	"ciderserver/matching"
	apperrors "ciderserver/server/errors"
)

// Ограничения на поля записи коллекции
const (
	maxNameLength  = 255
	maxBrandLength = 255
	maxNotesLength = 2000
	maxListLimit   = 500

	topTokensLimit = 10
)

// CiderStore хранилище записей коллекции
type CiderStore interface {
	CreateCider(cider *database.Cider) error
	GetCider(id int64) (*database.Cider, error)
	ListCiders(limit, offset int) ([]*database.Cider, error)
	CountCiders() (int, error)
	DeleteCider(id int64) (bool, error)
	Snapshot() ([]matching.StoredCandidate, error)
}

// CellarService сервис для работы с коллекцией сидров
type CellarService struct {
	store      CiderStore
	normalizer *matching.Normalizer
}

// NewCellarService создает новый сервис коллекции
func NewCellarService(store CiderStore) *CellarService {
	return &CellarService{
		store:      store,
		normalizer: matching.NewNormalizer(),
	}
}

// ValidateCider проверяет поля записи перед сохранением или проверкой
func ValidateCider(cider *database.Cider) error {
	if cider == nil {
		return apperrors.NewValidationError("cider is required", nil)
	}
	if strings.TrimSpace(cider.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if len(cider.Name) > maxNameLength {
		return apperrors.NewValidationError("name is too long", nil)
	}
	if len(cider.Brand) > maxBrandLength {
		return apperrors.NewValidationError("brand is too long", nil)
	}
	if len(cider.Notes) > maxNotesLength {
		return apperrors.NewValidationError("notes are too long", nil)
	}
	if cider.StrengthPercent != nil {
		strength := *cider.StrengthPercent
		if math.IsNaN(strength) || math.IsInf(strength, 0) {
			return apperrors.NewValidationError("strength percent must be a number", nil)
		}
		if strength < 0 || strength > 100 {
			return apperrors.NewValidationError("strength percent must be between 0 and 100", nil)
		}
	}
	return nil
}

// CreateCider добавляет запись в коллекцию
func (s *CellarService) CreateCider(cider *database.Cider) (*database.Cider, error) {
	if err := ValidateCider(cider); err != nil {
		return nil, err
	}

	cider.Name = strings.TrimSpace(cider.Name)
	cider.Brand = strings.TrimSpace(cider.Brand)

	if err := s.store.CreateCider(cider); err != nil {
		return nil, apperrors.NewInternalError("failed to create cider", err)
	}

	return cider, nil
}

// GetCider возвращает запись по идентификатору
func (s *CellarService) GetCider(id int64) (*database.Cider, error) {
	if id < 1 {
		return nil, apperrors.NewValidationError("id must be positive", nil)
	}

	cider, err := s.store.GetCider(id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get cider", err)
	}
	if cider == nil {
		return nil, apperrors.NewNotFoundError("cider not found", nil)
	}

	return cider, nil
}

// ListCiders возвращает страницу коллекции и общее количество записей
func (s *CellarService) ListCiders(limit, offset int) ([]*database.Cider, int, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	ciders, err := s.store.ListCiders(limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list ciders", err)
	}

	total, err := s.store.CountCiders()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count ciders", err)
	}

	return ciders, total, nil
}

// DeleteCider удаляет запись по идентификатору
func (s *CellarService) DeleteCider(id int64) error {
	if id < 1 {
		return apperrors.NewValidationError("id must be positive", nil)
	}

	found, err := s.store.DeleteCider(id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete cider", err)
	}
	if !found {
		return apperrors.NewNotFoundError("cider not found", nil)
	}

	return nil
}

// Snapshot возвращает снимок коллекции для движка сравнения
func (s *CellarService) Snapshot() ([]matching.StoredCandidate, error) {
	snapshot, err := s.store.Snapshot()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load collection snapshot", err)
	}
	return snapshot, nil
}

// CountCiders возвращает размер коллекции
func (s *CellarService) CountCiders() (int, error) {
	total, err := s.store.CountCiders()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count ciders", err)
	}
	return total, nil
}

// GetCellarStats возвращает сводную статистику коллекции
func (s *CellarService) GetCellarStats() (map[string]interface{}, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	// 1. Количество по типу тары
	containers := make(map[string]int)
	for i := range snapshot {
		key := string(snapshot[i].Container)
		if key == "" {
			key = "unknown"
		}
		containers[key]++
	}

	// 2. Крепость: среднее, минимум, максимум по заполненным записям
	var strengthSum, strengthMin, strengthMax float64
	strengthCount := 0
	for i := range snapshot {
		if snapshot[i].StrengthPercent == nil {
			continue
		}
		v := *snapshot[i].StrengthPercent
		if strengthCount == 0 || v < strengthMin {
			strengthMin = v
		}
		if strengthCount == 0 || v > strengthMax {
			strengthMax = v
		}
		strengthSum += v
		strengthCount++
	}

	strength := map[string]interface{}{
		"known_count": strengthCount,
	}
	if strengthCount > 0 {
		strength["average"] = math.Round(strengthSum/float64(strengthCount)*100) / 100
		strength["min"] = strengthMin
		strength["max"] = strengthMax
	}

	// 3. Различные бренды по канонической форме
	brands := make(map[string]bool)
	for i := range snapshot {
		if norm := s.normalizer.Normalize(snapshot[i].Brand); norm != "" {
			brands[norm] = true
		}
	}

	return map[string]interface{}{
		"total_ciders":    len(snapshot),
		"distinct_brands": len(brands),
		"containers":      containers,
		"strength":        strength,
		"top_name_tokens": s.topNameTokens(snapshot, topTokensLimit),
	}, nil
}

// topNameTokens считает частоту слов в названиях, группируя словоформы
// по основе слова: "apples" и "apple" попадают в одну группу
func (s *CellarService) topNameTokens(snapshot []matching.StoredCandidate, limit int) []map[string]interface{} {
	type tokenGroup struct {
		stem     string
		count    int
		displays map[string]int
	}

	groups := make(map[string]*tokenGroup)
	for i := range snapshot {
		norm := s.normalizer.Normalize(snapshot[i].Name)
		for _, token := range strings.Fields(norm) {
			stem, err := snowball.Stem(token, "english", true)
			if err != nil || stem == "" {
				stem = token
			}

			g := groups[stem]
			if g == nil {
				g = &tokenGroup{stem: stem, displays: make(map[string]int)}
				groups[stem] = g
			}
			g.count++
			g.displays[token]++
		}
	}

	ordered := make([]*tokenGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].stem < ordered[j].stem
	})

	if limit > len(ordered) {
		limit = len(ordered)
	}

	result := make([]map[string]interface{}, 0, limit)
	for _, g := range ordered[:limit] {
		result = append(result, map[string]interface{}{
			"token": mostFrequentDisplay(g.displays),
			"count": g.count,
		})
	}
	return result
}

// mostFrequentDisplay выбирает самую частую словоформу группы
// При равенстве выигрывает лексикографически меньшая, чтобы результат был детерминирован
func mostFrequentDisplay(displays map[string]int) string {
	best := ""
	bestCount := 0
	for token, count := range displays {
		if count > bestCount || (count == bestCount && (best == "" || token < best)) {
			best = token
			bestCount = count
		}
	}
	return best
}
