package matching

import "strings"

// suggestionEntry значение коллекции вместе с его нормализованной формой
type suggestionEntry struct {
	display    string
	normalized string
}

// suggestionIndex индекс подсказок по значениям одного поля коллекции
// Строится на один вызов и не переживает его: движок не кеширует
// ничего между вызовами, снимок коллекции каждый раз приходит заново
// Дубликаты схлопываются по нормализованной форме, отображаемой остается
// первая встреченная запись
type suggestionIndex struct {
	entries []suggestionEntry
}

// newSuggestionIndex строит индекс по значениям в порядке коллекции
func newSuggestionIndex(values []string, normalizer *Normalizer) *suggestionIndex {
	idx := &suggestionIndex{entries: make([]suggestionEntry, 0, len(values))}
	seen := make(map[string]bool, len(values))

	for _, value := range values {
		normalized := normalizer.Normalize(value)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		idx.entries = append(idx.entries, suggestionEntry{
			display:    value,
			normalized: normalized,
		})
	}

	return idx
}

// lookup возвращает до limit подсказок для нормализованного префикса
// Совпадения с начала строки идут раньше совпадений по подстроке,
// внутри группы сохраняется порядок коллекции
func (idx *suggestionIndex) lookup(normPrefix string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	var byPrefix, byContains []string
	for _, entry := range idx.entries {
		switch {
		case strings.HasPrefix(entry.normalized, normPrefix):
			byPrefix = append(byPrefix, entry.display)
		case strings.Contains(entry.normalized, normPrefix):
			byContains = append(byContains, entry.display)
		}
	}

	results := append(byPrefix, byContains...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
