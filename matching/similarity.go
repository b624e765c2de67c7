package matching

import (
	"strings"
	"unicode/utf8"
)

// Веса составляющих комбинированной оценки схожести
// Редакционная близость ловит опечатки ("Cyder" против "Cider"),
// пересечение токенов ловит переставленные слова в многословных названиях
const (
	editDistanceWeight = 0.6
	tokenOverlapWeight = 0.4
)

// Scorer вычисляет комбинированную оценку схожести двух строк
type Scorer struct {
	normalizer *Normalizer
}

// NewScorer создает новый Scorer
func NewScorer() *Scorer {
	return &Scorer{normalizer: NewNormalizer()}
}

// Similarity возвращает оценку схожести строк от 0.0 до 1.0
// Обе строки нормализуются перед сравнением, пустая пара дает 1.0
func (s *Scorer) Similarity(a, b string) float64 {
	return s.similarityNormalized(s.normalizer.Normalize(a), s.normalizer.Normalize(b))
}

// similarityNormalized считает оценку по уже нормализованным строкам
func (s *Scorer) similarityNormalized(a, b string) float64 {
	edit := editDistanceScore(a, b)
	token := JaccardTokens(a, b)

	combined := editDistanceWeight*edit + tokenOverlapWeight*token
	return clamp01(combined)
}

// editDistanceScore редакционная близость: 1 - distance/maxLen
func editDistanceScore(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		maxLen = 1
	}

	return 1.0 - float64(LevenshteinDistance(a, b))/float64(maxLen)
}

// JaccardTokens вычисляет индекс Жаккара по множествам токенов
// Токены разделяются пробелами, пара пустых множеств по соглашению дает 1.0
func JaccardTokens(a, b string) float64 {
	tokens1 := strings.Fields(a)
	tokens2 := strings.Fields(b)

	if len(tokens1) == 0 && len(tokens2) == 0 {
		return 1.0
	}
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	set1 := make(map[string]bool, len(tokens1))
	for _, token := range tokens1 {
		set1[token] = true
	}
	set2 := make(map[string]bool, len(tokens2))
	for _, token := range tokens2 {
		set2[token] = true
	}

	// Пересечение
	intersection := 0
	for token := range set1 {
		if set2[token] {
			intersection++
		}
	}

	// Объединение
	union := len(set1)
	for token := range set2 {
		if !set1[token] {
			union++
		}
	}

	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
