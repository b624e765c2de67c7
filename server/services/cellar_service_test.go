package services

import (
	"errors"
	"strings"
	"testing"

	"ciderserver/database"
	apperrors "ciderserver/server/errors"
)

func newTestCellarService(t *testing.T) *CellarService {
	t.Helper()

	db, err := database.NewCellarDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return NewCellarService(db)
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode()
}

func TestCellarServiceCreateCider(t *testing.T) {
	service := newTestCellarService(t)

	strength := 5.5
	cider, err := service.CreateCider(&database.Cider{
		Name:            "  Kingston Press  ",
		Brand:           "Aston Manor",
		StrengthPercent: &strength,
		ContainerType:   "bottle",
	})
	if err != nil {
		t.Fatalf("CreateCider failed: %v", err)
	}
	if cider.ID == 0 {
		t.Error("Expected assigned ID after create")
	}
	if cider.Name != "Kingston Press" {
		t.Errorf("Expected trimmed name 'Kingston Press', got '%s'", cider.Name)
	}
}

func TestCellarServiceCreateCiderValidation(t *testing.T) {
	service := newTestCellarService(t)

	badStrength := 120.0
	negativeStrength := -1.0

	tests := []struct {
		name  string
		cider *database.Cider
	}{
		{"nil cider", nil},
		{"empty name", &database.Cider{Name: "   "}},
		{"name too long", &database.Cider{Name: strings.Repeat("a", 256)}},
		{"brand too long", &database.Cider{Name: "Cider", Brand: strings.Repeat("b", 256)}},
		{"strength above 100", &database.Cider{Name: "Cider", StrengthPercent: &badStrength}},
		{"negative strength", &database.Cider{Name: "Cider", StrengthPercent: &negativeStrength}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateCider(tt.cider)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if code := statusCodeOf(t, err); code != 400 {
				t.Errorf("Expected status 400, got %d", code)
			}
		})
	}
}

func TestCellarServiceGetCider(t *testing.T) {
	service := newTestCellarService(t)

	created, err := service.CreateCider(&database.Cider{Name: "Old Mout", Brand: "Old Mout"})
	if err != nil {
		t.Fatalf("CreateCider failed: %v", err)
	}

	got, err := service.GetCider(created.ID)
	if err != nil {
		t.Fatalf("GetCider failed: %v", err)
	}
	if got.Name != "Old Mout" {
		t.Errorf("Expected name 'Old Mout', got '%s'", got.Name)
	}

	_, err = service.GetCider(9999)
	if err == nil {
		t.Fatal("Expected not found error for missing cider")
	}
	if code := statusCodeOf(t, err); code != 404 {
		t.Errorf("Expected status 404, got %d", code)
	}

	_, err = service.GetCider(0)
	if err == nil {
		t.Fatal("Expected validation error for zero id")
	}
	if code := statusCodeOf(t, err); code != 400 {
		t.Errorf("Expected status 400, got %d", code)
	}
}

func TestCellarServiceListCiders(t *testing.T) {
	service := newTestCellarService(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := service.CreateCider(&database.Cider{Name: name}); err != nil {
			t.Fatalf("CreateCider(%s) failed: %v", name, err)
		}
	}

	ciders, total, err := service.ListCiders(0, 0)
	if err != nil {
		t.Fatalf("ListCiders failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(ciders) != 3 {
		t.Errorf("Expected 3 ciders, got %d", len(ciders))
	}

	page, total, err := service.ListCiders(1, 1)
	if err != nil {
		t.Fatalf("ListCiders with offset failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3 on page request, got %d", total)
	}
	if len(page) != 1 || page[0].Name != "Second" {
		t.Errorf("Expected page with 'Second', got %+v", page)
	}
}

func TestCellarServiceDeleteCider(t *testing.T) {
	service := newTestCellarService(t)

	created, err := service.CreateCider(&database.Cider{Name: "To Delete"})
	if err != nil {
		t.Fatalf("CreateCider failed: %v", err)
	}

	if err := service.DeleteCider(created.ID); err != nil {
		t.Fatalf("DeleteCider failed: %v", err)
	}

	err = service.DeleteCider(created.ID)
	if err == nil {
		t.Fatal("Expected not found error on second delete")
	}
	if code := statusCodeOf(t, err); code != 404 {
		t.Errorf("Expected status 404, got %d", code)
	}
}

func TestCellarServiceGetCellarStats(t *testing.T) {
	service := newTestCellarService(t)

	strongOne := 4.5
	strongTwo := 7.5
	seed := []*database.Cider{
		{Name: "Apple Blast", Brand: "Westons", StrengthPercent: &strongOne, ContainerType: "bottle"},
		{Name: "Apple Crush", Brand: "westons", StrengthPercent: &strongTwo, ContainerType: "can"},
		{Name: "Apples Reserve", Brand: "Thatchers", ContainerType: "bottle"},
	}
	for _, cider := range seed {
		if _, err := service.CreateCider(cider); err != nil {
			t.Fatalf("CreateCider(%s) failed: %v", cider.Name, err)
		}
	}

	stats, err := service.GetCellarStats()
	if err != nil {
		t.Fatalf("GetCellarStats failed: %v", err)
	}

	if total := stats["total_ciders"].(int); total != 3 {
		t.Errorf("Expected 3 total ciders, got %d", total)
	}

	// "Westons" и "westons" это один бренд после нормализации
	if brands := stats["distinct_brands"].(int); brands != 2 {
		t.Errorf("Expected 2 distinct brands, got %d", brands)
	}

	containers := stats["containers"].(map[string]int)
	if containers["bottle"] != 2 || containers["can"] != 1 {
		t.Errorf("Unexpected container counts: %+v", containers)
	}

	strength := stats["strength"].(map[string]interface{})
	if known := strength["known_count"].(int); known != 2 {
		t.Errorf("Expected 2 known strengths, got %d", known)
	}
	if avg := strength["average"].(float64); avg != 6.0 {
		t.Errorf("Expected average strength 6.0, got %v", avg)
	}
	if min := strength["min"].(float64); min != 4.5 {
		t.Errorf("Expected min strength 4.5, got %v", min)
	}
	if max := strength["max"].(float64); max != 7.5 {
		t.Errorf("Expected max strength 7.5, got %v", max)
	}

	// "apple" и "apples" сводятся к одной основе, показывается частая словоформа
	tokens := stats["top_name_tokens"].([]map[string]interface{})
	if len(tokens) == 0 {
		t.Fatal("Expected non-empty top name tokens")
	}
	if tokens[0]["token"].(string) != "apple" {
		t.Errorf("Expected top token 'apple', got '%v'", tokens[0]["token"])
	}
	if tokens[0]["count"].(int) != 3 {
		t.Errorf("Expected top token count 3, got %v", tokens[0]["count"])
	}
}

func TestCellarServiceStatsEmptyCollection(t *testing.T) {
	service := newTestCellarService(t)

	stats, err := service.GetCellarStats()
	if err != nil {
		t.Fatalf("GetCellarStats failed: %v", err)
	}

	if total := stats["total_ciders"].(int); total != 0 {
		t.Errorf("Expected 0 total ciders, got %d", total)
	}

	strength := stats["strength"].(map[string]interface{})
	if _, ok := strength["average"]; ok {
		t.Error("Expected no average strength for empty collection")
	}

	tokens := stats["top_name_tokens"].([]map[string]interface{})
	if len(tokens) != 0 {
		t.Errorf("Expected no tokens for empty collection, got %d", len(tokens))
	}
}
