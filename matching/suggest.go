package matching

import "unicode/utf8"

// минимальная длина нормализованного префикса для подсказок:
// более короткий запрос дает слишком широкий и бесполезный список
const minSuggestPrefixRunes = 2

// SuggestNames возвращает названия из коллекции, подходящие под префикс
// Не больше MaxSuggestions результатов, полная схожесть здесь не считается
func (e *Engine) SuggestNames(prefix string, existing []StoredCandidate) []string {
	values := make([]string, 0, len(existing))
	for i := range existing {
		values = append(values, existing[i].Name)
	}
	return e.suggest(prefix, values)
}

// SuggestBrands возвращает бренды из коллекции, подходящие под префикс
func (e *Engine) SuggestBrands(prefix string, existing []StoredCandidate) []string {
	values := make([]string, 0, len(existing))
	for i := range existing {
		values = append(values, existing[i].Brand)
	}
	return e.suggest(prefix, values)
}

func (e *Engine) suggest(prefix string, values []string) []string {
	normPrefix := e.normalizer.Normalize(prefix)
	if utf8.RuneCountInString(normPrefix) < minSuggestPrefixRunes {
		return nil
	}

	return newSuggestionIndex(values, e.normalizer).lookup(normPrefix, e.cfg.MaxSuggestions)
}
