package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Пороги классификации и лимиты движка по умолчанию
// Значения подобраны под ожидаемое поведение интерактивной проверки:
// менять можно через Config, но границы классификации стоит перепроверять
// собственными приемочными тестами
const (
	DefaultDuplicateThreshold = 0.85
	DefaultSimilarThreshold   = 0.5
	DefaultMaxSimilarMatches  = 3
	DefaultMaxSuggestions     = 5
	DefaultQuickScanBudget    = 200
)

// Сообщения проверки, которые видит пользователь
const (
	msgExactMatch        = "Exact match found"
	msgNoSimilar         = "No similar ciders found"
	msgPossibleDuplicate = "Possible duplicate"
	msgSimilarFound      = "Similar cider found"
)

// Config параметры движка обнаружения дубликатов
type Config struct {
	// DuplicateThreshold оценка, с которой совпадение считается дубликатом
	DuplicateThreshold float64
	// SimilarThreshold оценка, с которой совпадение считается похожим
	SimilarThreshold float64
	// MaxSimilarMatches максимум похожих записей в результате полной проверки
	MaxSimilarMatches int
	// MaxSuggestions максимум подсказок автодополнения
	MaxSuggestions int
	// QuickScanBudget лимит нечетких сравнений быстрой проверки
	QuickScanBudget int
	// Weights веса полей при сравнении кандидатов
	Weights FieldWeights
}

// DefaultConfig возвращает конфигурацию движка по умолчанию
func DefaultConfig() Config {
	return Config{
		DuplicateThreshold: DefaultDuplicateThreshold,
		SimilarThreshold:   DefaultSimilarThreshold,
		MaxSimilarMatches:  DefaultMaxSimilarMatches,
		MaxSuggestions:     DefaultMaxSuggestions,
		QuickScanBudget:    DefaultQuickScanBudget,
		Weights:            DefaultFieldWeights(),
	}
}

// Validate проверяет пороги, лимиты и веса конфигурации
func (c Config) Validate() error {
	for _, t := range []struct {
		name  string
		value float64
	}{
		{"duplicate threshold", c.DuplicateThreshold},
		{"similar threshold", c.SimilarThreshold},
	} {
		if math.IsNaN(t.value) || t.value < 0 || t.value > 1 {
			return fmt.Errorf("%s out of range [0, 1]: %v", t.name, t.value)
		}
	}
	if c.SimilarThreshold > c.DuplicateThreshold {
		return fmt.Errorf("similar threshold %v exceeds duplicate threshold %v",
			c.SimilarThreshold, c.DuplicateThreshold)
	}
	if c.MaxSimilarMatches < 0 {
		return fmt.Errorf("negative max similar matches: %d", c.MaxSimilarMatches)
	}
	if c.MaxSuggestions < 0 {
		return fmt.Errorf("negative max suggestions: %d", c.MaxSuggestions)
	}
	if c.QuickScanBudget < 0 {
		return fmt.Errorf("negative quick scan budget: %d", c.QuickScanBudget)
	}

	return c.Weights.Validate()
}

// QuickResult результат быстрой проверки при вводе
type QuickResult struct {
	IsDuplicate bool    `json:"isDuplicate"`
	Confidence  float64 `json:"confidence"`
	Message     string  `json:"message,omitempty"`
}

// RankedMatch совпадение из коллекции с оценкой и пояснениями
// Поля кандидата включены целиком, чтобы интерфейс мог показать
// найденную запись без повторного похода в хранилище
type RankedMatch struct {
	ID int64 `json:"id"`
	Candidate
	Score         float64      `json:"score"`
	MatchedFields []MatchField `json:"matchedFields,omitempty"`
	Reasons       []string     `json:"reasons,omitempty"`
}

// CheckResult результат полной проверки кандидата перед сохранением
type CheckResult struct {
	IsDuplicate    bool          `json:"isDuplicate"`
	HasSimilar     bool          `json:"hasSimilar"`
	Confidence     float64       `json:"confidence"`
	Message        string        `json:"message"`
	ExistingMatch  *RankedMatch  `json:"existingMatch,omitempty"`
	SimilarMatches []RankedMatch `json:"similarMatches,omitempty"`
}

// Engine движок обнаружения дубликатов в коллекции сидров
// Состояния между вызовами нет: снимок коллекции передается аргументом,
// каждый вызов независим и детерминирован, поэтому движок безопасно
// использовать из нескольких горутин одновременно
type Engine struct {
	cfg        Config
	matcher    *FieldMatcher
	normalizer *Normalizer
}

// NewEngine создает движок с заданной конфигурацией
// Недопустимая конфигурация это ошибка программирования, отказ немедленный
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	matcher, err := NewFieldMatcher(cfg.Weights)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		matcher:    matcher,
		normalizer: NewNormalizer(),
	}, nil
}

// NewDefaultEngine создает движок с конфигурацией по умолчанию
func NewDefaultEngine() *Engine {
	engine, _ := NewEngine(DefaultConfig()) // конфигурация по умолчанию всегда валидна
	return engine
}

// Config возвращает конфигурацию движка
func (e *Engine) Config() Config {
	return e.cfg
}

// QuickCheck быстрая проверка по имени и бренду во время ввода
// Сначала точный проход по нормализованным имени и бренду, затем нечеткий
// проход не более чем по QuickScanBudget кандидатов: время ограничено
// при любом размере коллекции
func (e *Engine) QuickCheck(name, brand string, existing []StoredCandidate) QuickResult {
	normName := e.normalizer.Normalize(name)
	normBrand := e.normalizer.Normalize(brand)

	if normName == "" && normBrand == "" {
		return QuickResult{}
	}

	// 1. Точное совпадение: нормализованные имя и бренд равны одновременно
	for i := range existing {
		if e.normalizer.Normalize(existing[i].Name) == normName &&
			e.normalizer.Normalize(existing[i].Brand) == normBrand {
			return QuickResult{IsDuplicate: true, Confidence: 1.0, Message: msgExactMatch}
		}
	}

	// 2. Нечеткий проход в пределах бюджета сравнений
	budget := e.cfg.QuickScanBudget
	if budget > len(existing) {
		budget = len(existing)
	}

	item := Candidate{Name: name, Brand: brand}
	var best MatchResult
	for i := 0; i < budget; i++ {
		if m := e.matcher.Match(item, existing[i].Candidate); m.Score > best.Score {
			best = m
		}
	}

	if best.Score >= e.cfg.DuplicateThreshold {
		return QuickResult{
			IsDuplicate: true,
			Confidence:  best.Score,
			Message:     buildCheckMessage(msgPossibleDuplicate, best.Reasons),
		}
	}

	return QuickResult{}
}

// FullCheck полная проверка кандидата против каждой записи коллекции
// Один проход O(n) без ранних выходов, устойчивая сортировка по убыванию
// оценки: равные оценки сохраняют порядок коллекции, результат детерминирован
func (e *Engine) FullCheck(item Candidate, existing []StoredCandidate) CheckResult {
	if len(existing) == 0 {
		return CheckResult{Message: msgNoSimilar}
	}

	// 1. Оцениваем кандидата против каждой записи
	matches := make([]RankedMatch, 0, len(existing))
	for _, stored := range existing {
		m := e.matcher.Match(item, stored.Candidate)
		matches = append(matches, RankedMatch{
			ID:            stored.ID,
			Candidate:     stored.Candidate,
			Score:         m.Score,
			MatchedFields: m.MatchedFields,
			Reasons:       m.Reasons,
		})
	}

	// 2. Устойчивая сортировка по убыванию оценки
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	top := matches[0]

	// 3. Классификация верхней оценки по двум порогам
	switch {
	case top.Score >= e.cfg.DuplicateThreshold:
		return CheckResult{
			IsDuplicate:   true,
			Confidence:    top.Score,
			Message:       buildCheckMessage(msgPossibleDuplicate, top.Reasons),
			ExistingMatch: &top,
		}

	case top.Score >= e.cfg.SimilarThreshold:
		similar := make([]RankedMatch, 0, e.cfg.MaxSimilarMatches)
		for _, m := range matches {
			if m.Score < e.cfg.SimilarThreshold || len(similar) == e.cfg.MaxSimilarMatches {
				break
			}
			similar = append(similar, m)
		}
		return CheckResult{
			HasSimilar:     true,
			Confidence:     top.Score,
			Message:        buildCheckMessage(msgSimilarFound, top.Reasons),
			SimilarMatches: similar,
		}

	default:
		return CheckResult{Message: msgNoSimilar}
	}
}

// buildCheckMessage собирает сообщение проверки из префикса и пояснений
func buildCheckMessage(prefix string, reasons []string) string {
	if len(reasons) == 0 {
		return prefix
	}
	return prefix + ": " + strings.Join(reasons, ", ")
}
