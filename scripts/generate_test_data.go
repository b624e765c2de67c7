package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"

	"ciderserver/database"
)

// TestDataEntry запись тестовых данных
type TestDataEntry struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	StrengthPercent *float64 `json:"strengthPercent,omitempty"`
	ContainerType   string   `json:"containerType"`
	Notes           string   `json:"notes,omitempty"`
}

// TestDataset набор тестовых данных
type TestDataset struct {
	Count   int             `json:"count"`
	Entries []TestDataEntry `json:"entries"`
}

func main() {
	// Инициализируем gofakeit
	gofakeit.Seed(0)

	// Размеры наборов данных
	sizes := []struct {
		name string
		size int
	}{
		{"100", 100},
		{"1K", 1000},
		{"5K", 5000},
	}

	// Создаем директорию для тестовых данных
	dataDir := filepath.Join("tests", "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	for _, size := range sizes {
		fmt.Printf("Generating %s records...\n", size.name)

		entries := make([]TestDataEntry, size.size)
		for i := 0; i < size.size; i++ {
			entry := TestDataEntry{
				ID:            i + 1,
				Name:          generateCiderName(),
				Brand:         generateBrandName(),
				ContainerType: generateContainer(),
			}

			// Примерно у каждой десятой записи крепость неизвестна
			if gofakeit.Number(1, 10) > 1 {
				entry.StrengthPercent = floatPtr(randomStrength())
			}

			if gofakeit.Bool() {
				entry.Notes = gofakeit.Sentence(gofakeit.Number(3, 8))
			}

			// Часть записей делаем почти дубликатами уже сгенерированных,
			// чтобы проверки находили что ловить
			if i > 0 && i%25 == 0 {
				base := entries[gofakeit.Number(0, i-1)]
				entry.Name = base.Name
				entry.Brand = mutateBrand(base.Brand)
				entry.ContainerType = base.ContainerType
			}

			entries[i] = entry
		}

		dataset := TestDataset{
			Count:   size.size,
			Entries: entries,
		}

		// Сохраняем в JSON
		filename := filepath.Join(dataDir, fmt.Sprintf("test_ciders_%s.json", size.name))
		data, err := json.MarshalIndent(dataset, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal dataset: %v", err)
		}

		if err := os.WriteFile(filename, data, 0644); err != nil {
			log.Fatalf("Failed to write file %s: %v", filename, err)
		}

		fmt.Printf("Generated %s records in %s\n", size.name, filename)
	}

	// Также создаем SQLite БД с тестовыми данными
	fmt.Println("\nGenerating SQLite database...")
	generateSQLiteDB(dataDir)
}

// generateCiderName генерирует название сидра
func generateCiderName() string {
	varieties := []string{
		"Kingston Black", "Dabinett", "Yarlington Mill", "Foxwhelp",
		"Porter's Perfection", "Brown Snout", "Tremlett's Bitter", "Harry Masters",
	}
	styles := []string{
		"Dry", "Medium Dry", "Medium Sweet", "Sweet", "Vintage",
		"Farmhouse", "Oak Aged", "Bottle Conditioned", "Wild Fermented", "Still",
	}

	name := gofakeit.RandomString(varieties)
	if gofakeit.Bool() {
		name = fmt.Sprintf("%s %s", gofakeit.RandomString(styles), name)
	}

	// Иногда добавляем год урожая
	if gofakeit.Number(1, 5) == 1 {
		name = fmt.Sprintf("%s %d", name, gofakeit.Number(2018, 2026))
	}

	return name
}

// generateBrandName генерирует название производителя
func generateBrandName() string {
	suffixes := []string{"Orchards", "Cider Co", "& Sons", "Farm Cider", "Press Works", "Cidery"}
	return fmt.Sprintf("%s %s", gofakeit.LastName(), gofakeit.RandomString(suffixes))
}

// generateContainer выбирает тип тары с перекосом в сторону бутылок
func generateContainer() string {
	roll := gofakeit.Number(1, 100)
	switch {
	case roll <= 55:
		return "bottle"
	case roll <= 80:
		return "can"
	case roll <= 88:
		return "keg"
	case roll <= 94:
		return "draught"
	case roll <= 98:
		return "bag_in_box"
	default:
		return "other"
	}
}

// randomStrength возвращает крепость в типичном для сидра диапазоне
func randomStrength() float64 {
	v := gofakeit.Float64Range(3.5, 8.5)
	return math.Round(v*10) / 10
}

// mutateBrand слегка искажает бренд, имитируя разнобой source-выгрузок
func mutateBrand(brand string) string {
	switch gofakeit.Number(1, 3) {
	case 1:
		return brand + " Ltd"
	case 2:
		return "The " + brand
	default:
		return brand
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// generateSQLiteDB создает SQLite БД с тестовыми данными
func generateSQLiteDB(dataDir string) {
	dbPath := filepath.Join(dataDir, "test_cellar.db")

	// Удаляем существующую БД
	os.Remove(dbPath)

	db, err := database.NewCellarDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	// Добавляем 100 записей для быстрого тестирования
	for i := 0; i < 100; i++ {
		cider := &database.Cider{
			Name:          generateCiderName(),
			Brand:         generateBrandName(),
			ContainerType: generateContainer(),
		}
		if gofakeit.Number(1, 10) > 1 {
			cider.StrengthPercent = floatPtr(randomStrength())
		}

		if err := db.CreateCider(cider); err != nil {
			log.Fatalf("Failed to add cider %d: %v", i+1, err)
		}
	}

	fmt.Printf("Generated SQLite database with 100 records in %s\n", dbPath)
}
