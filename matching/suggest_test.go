package matching

import (
	"fmt"
	"slices"
	"testing"
)

func suggestCollection() []StoredCandidate {
	return []StoredCandidate{
		{ID: 1, Candidate: Candidate{Name: "Aspall Dry Cider", Brand: "Aspall"}},
		{ID: 2, Candidate: Candidate{Name: "Aspall Imperial Dry", Brand: "Aspall"}},
		{ID: 3, Candidate: Candidate{Name: "Thatchers Gold", Brand: "Thatchers"}},
	}
}

// TestEngine_SuggestNames_Prefix проверяет подсказки по префиксу названия
func TestEngine_SuggestNames_Prefix(t *testing.T) {
	engine := NewDefaultEngine()

	result := engine.SuggestNames("Asp", suggestCollection())
	expected := []string{"Aspall Dry Cider", "Aspall Imperial Dry"}
	if !slices.Equal(result, expected) {
		t.Errorf("SuggestNames(Asp) = %v, want %v", result, expected)
	}
	if len(result) > DefaultMaxSuggestions {
		t.Errorf("Expected at most %d suggestions, got %d", DefaultMaxSuggestions, len(result))
	}
}

// TestEngine_SuggestNames_ShortPrefix проверяет нижнюю границу длины префикса
func TestEngine_SuggestNames_ShortPrefix(t *testing.T) {
	engine := NewDefaultEngine()

	for _, prefix := range []string{"", "A", "  A  ", "Ä", "!!"} {
		if result := engine.SuggestNames(prefix, suggestCollection()); len(result) != 0 {
			t.Errorf("SuggestNames(%q) = %v, want empty", prefix, result)
		}
	}

	// ровно две руны после нормализации уже достаточно
	if result := engine.SuggestNames("As", suggestCollection()); len(result) == 0 {
		t.Error("Expected suggestions for two-rune prefix")
	}
}

// TestEngine_SuggestNames_PrefixAboveSubstring проверяет ранжирование:
// совпадения с начала строки идут раньше совпадений по подстроке
func TestEngine_SuggestNames_PrefixAboveSubstring(t *testing.T) {
	engine := NewDefaultEngine()

	collection := []StoredCandidate{
		{ID: 1, Candidate: Candidate{Name: "Old Aspall House Blend"}},
		{ID: 2, Candidate: Candidate{Name: "Aspall Dry"}},
	}

	result := engine.SuggestNames("Asp", collection)
	expected := []string{"Aspall Dry", "Old Aspall House Blend"}
	if !slices.Equal(result, expected) {
		t.Errorf("SuggestNames(Asp) = %v, want %v", result, expected)
	}
}

// TestEngine_SuggestNames_Dedup проверяет схлопывание дубликатов без учета регистра
func TestEngine_SuggestNames_Dedup(t *testing.T) {
	engine := NewDefaultEngine()

	collection := []StoredCandidate{
		{ID: 1, Candidate: Candidate{Name: "Aspall Dry"}},
		{ID: 2, Candidate: Candidate{Name: "ASPALL DRY"}},
		{ID: 3, Candidate: Candidate{Name: "Aspáll Dry"}},
	}

	result := engine.SuggestNames("aspall", collection)
	if !slices.Equal(result, []string{"Aspall Dry"}) {
		t.Errorf("Expected single deduplicated suggestion, got %v", result)
	}
}

// TestEngine_SuggestNames_Cap проверяет лимит в пять подсказок
func TestEngine_SuggestNames_Cap(t *testing.T) {
	engine := NewDefaultEngine()

	collection := make([]StoredCandidate, 0, 8)
	for i := 0; i < 8; i++ {
		collection = append(collection, StoredCandidate{
			ID:        int64(i + 1),
			Candidate: Candidate{Name: fmt.Sprintf("Somerset Blend %d", i+1)},
		})
	}

	result := engine.SuggestNames("Somerset", collection)
	if len(result) != DefaultMaxSuggestions {
		t.Fatalf("Expected %d suggestions, got %d", DefaultMaxSuggestions, len(result))
	}
	// первые пять в порядке коллекции
	for i, name := range result {
		expected := fmt.Sprintf("Somerset Blend %d", i+1)
		if name != expected {
			t.Errorf("Expected suggestion %q at position %d, got %q", expected, i, name)
		}
	}
}

// TestEngine_SuggestBrands проверяет подсказки брендов и пропуск пустых значений
func TestEngine_SuggestBrands(t *testing.T) {
	engine := NewDefaultEngine()

	collection := []StoredCandidate{
		{ID: 1, Candidate: Candidate{Name: "First", Brand: "Aspall"}},
		{ID: 2, Candidate: Candidate{Name: "Second"}},
		{ID: 3, Candidate: Candidate{Name: "Third", Brand: "Aspall"}},
		{ID: 4, Candidate: Candidate{Name: "Fourth", Brand: "Thatchers"}},
	}

	if result := engine.SuggestBrands("as", collection); !slices.Equal(result, []string{"Aspall"}) {
		t.Errorf("SuggestBrands(as) = %v, want [Aspall]", result)
	}
	if result := engine.SuggestBrands("thatch", collection); !slices.Equal(result, []string{"Thatchers"}) {
		t.Errorf("SuggestBrands(thatch) = %v, want [Thatchers]", result)
	}
}

// TestEngine_Suggest_EmptyCollection проверяет пустую коллекцию
func TestEngine_Suggest_EmptyCollection(t *testing.T) {
	engine := NewDefaultEngine()

	if result := engine.SuggestNames("Asp", nil); len(result) != 0 {
		t.Errorf("Expected no suggestions for empty collection, got %v", result)
	}
}
