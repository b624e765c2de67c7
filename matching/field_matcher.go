package matching

import (
	"fmt"
	"math"
)

// Пороговые значения правил сравнения полей
const (
	// имена с такой схожестью считаются практически идентичными
	nearIdenticalNameSim = 0.95
	// минимальная схожесть брендов для частичного зачета
	partialBrandSim = 0.6
	// границы полос разницы крепости в процентных пунктах
	strengthVeryCloseDiff = 0.3
	strengthCloseDiff     = 0.8
	// защита от шума float64 на границах полос: 1.0-0.7 дает 0.30000000000000004
	strengthDiffEpsilon = 1e-9
	// доли веса поля strength для близких, но не равных значений
	strengthVeryCloseFactor = 0.7
	strengthCloseFactor     = 0.4
)

// Пояснения совпадений, которые видит пользователь
const (
	ReasonNamesNearlyIdentical = "Names are nearly identical"
	ReasonSameBrand            = "Same brand"
	ReasonIdenticalABV         = "Identical ABV"
	ReasonVerySimilarABV       = "Very similar ABV"
	ReasonSimilarABV           = "Similar ABV"
	ReasonSameContainer        = "Same container type"
)

// FieldWeights веса полей в итоговой оценке совпадения
type FieldWeights struct {
	Name      float64 `json:"name"`
	Brand     float64 `json:"brand"`
	Strength  float64 `json:"strength"`
	Container float64 `json:"container"`
}

// DefaultFieldWeights возвращает веса полей по умолчанию
// Название доминирует, бренд заметен, крепость и тара уточняют
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{
		Name:      0.55,
		Brand:     0.25,
		Strength:  0.10,
		Container: 0.10,
	}
}

// Validate проверяет, что каждый вес конечен и лежит в [0, 1]
func (w FieldWeights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"name", w.Name},
		{"brand", w.Brand},
		{"strength", w.Strength},
		{"container", w.Container},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("weight %q is not a finite number", f.name)
		}
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("weight %q out of range [0, 1]: %v", f.name, f.value)
		}
	}

	if w.Name+w.Brand+w.Strength+w.Container == 0 {
		return fmt.Errorf("all field weights are zero")
	}

	return nil
}

// MatchResult результат сравнения двух кандидатов
type MatchResult struct {
	Score         float64      `json:"score"`
	MatchedFields []MatchField `json:"matchedFields,omitempty"`
	Reasons       []string     `json:"reasons,omitempty"`
}

// FieldMatcher вычисляет взвешенную оценку совпадения двух кандидатов
// Оценка нормируется на суммарный вес сопоставимых полей: поле попадает
// в знаменатель, когда значение есть у обеих сторон, даже если вклад нулевой
// Так запись, заполненная одним названием, все равно может дать оценку 1.0
// против самой себя, а расходящийся бренд честно тянет оценку вниз
type FieldMatcher struct {
	weights    FieldWeights
	scorer     *Scorer
	normalizer *Normalizer
}

// NewFieldMatcher создает FieldMatcher с заданными весами
// Возвращает ошибку при недопустимых весах: тихое искажение оценок опаснее отказа
func NewFieldMatcher(weights FieldWeights) (*FieldMatcher, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("field weights: %w", err)
	}

	return &FieldMatcher{
		weights:    weights,
		scorer:     NewScorer(),
		normalizer: NewNormalizer(),
	}, nil
}

// Match сравнивает два кандидата и возвращает оценку, совпавшие поля и пояснения
// Правила симметричны: Match(a, b).Score == Match(b, a).Score
// Отсутствующие поля снижают вклад до нуля, паник на частичных данных нет
func (m *FieldMatcher) Match(a, b Candidate) MatchResult {
	var result MatchResult
	var score, totalWeight float64

	// 1. Название: комбинированная схожесть нормализованных строк
	nameA := m.normalizer.Normalize(a.Name)
	nameB := m.normalizer.Normalize(b.Name)
	if nameA != "" && nameB != "" {
		totalWeight += m.weights.Name
		sim := m.scorer.similarityNormalized(nameA, nameB)
		if sim > 0 {
			score += m.weights.Name * sim
			result.MatchedFields = append(result.MatchedFields, FieldName)
			if sim >= nearIdenticalNameSim {
				result.Reasons = append(result.Reasons, ReasonNamesNearlyIdentical)
			}
		}
	}

	// 2. Бренд: точное равенство дает полный вес, частичная схожесть - долю
	brandA := m.normalizer.Normalize(a.Brand)
	brandB := m.normalizer.Normalize(b.Brand)
	if brandA != "" && brandB != "" {
		totalWeight += m.weights.Brand
		if brandA == brandB {
			score += m.weights.Brand
			result.MatchedFields = append(result.MatchedFields, FieldBrand)
			result.Reasons = append(result.Reasons, ReasonSameBrand)
		} else if sim := m.scorer.similarityNormalized(brandA, brandB); sim >= partialBrandSim {
			score += m.weights.Brand * sim
			result.MatchedFields = append(result.MatchedFields, FieldBrand)
		}
	}

	// 3. Крепость: бонус по абсолютной разнице, а не по отношению значений
	if a.StrengthPercent != nil && b.StrengthPercent != nil &&
		!math.IsNaN(*a.StrengthPercent) && !math.IsNaN(*b.StrengthPercent) {
		totalWeight += m.weights.Strength
		diff := math.Abs(*a.StrengthPercent - *b.StrengthPercent)
		switch {
		case diff == 0:
			score += m.weights.Strength
			result.MatchedFields = append(result.MatchedFields, FieldStrength)
			result.Reasons = append(result.Reasons, ReasonIdenticalABV)
		case diff <= strengthVeryCloseDiff+strengthDiffEpsilon:
			score += m.weights.Strength * strengthVeryCloseFactor
			result.MatchedFields = append(result.MatchedFields, FieldStrength)
			result.Reasons = append(result.Reasons, ReasonVerySimilarABV)
		case diff <= strengthCloseDiff+strengthDiffEpsilon:
			score += m.weights.Strength * strengthCloseFactor
			result.MatchedFields = append(result.MatchedFields, FieldStrength)
			result.Reasons = append(result.Reasons, ReasonSimilarABV)
		}
	}

	// 4. Тара: учитываются только распознанные варианты
	if a.Container.IsKnown() && b.Container.IsKnown() {
		totalWeight += m.weights.Container
		if a.Container == b.Container {
			score += m.weights.Container
			result.MatchedFields = append(result.MatchedFields, FieldContainer)
			result.Reasons = append(result.Reasons, ReasonSameContainer)
		}
	}

	if totalWeight > 0 {
		result.Score = clamp01(score / totalWeight)
	}

	return result
}
