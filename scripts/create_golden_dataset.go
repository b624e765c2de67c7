//go:build ignore
// +build ignore

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ciderserver/database"
)

// GoldenCider запись коллекции для golden dataset
type GoldenCider struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	StrengthPercent *float64 `json:"strengthPercent,omitempty"`
	ContainerType   string   `json:"containerType,omitempty"`
}

// GoldenProbe проверяемый кандидат с ожидаемым вердиктом
type GoldenProbe struct {
	ID        int         `json:"id"`
	Candidate GoldenCider `json:"candidate"`
	Expected  struct {
		IsDuplicate bool `json:"isDuplicate"`
		HasSimilar  bool `json:"hasSimilar"`
	} `json:"expected"`
	Comment string `json:"comment,omitempty"`
}

// GoldenDataset структура golden dataset
type GoldenDataset struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Cellar    []GoldenCider `json:"cellar"`
	Probes    []GoldenProbe `json:"probes"`
}

func main() {
	// Создаем директорию для тестовых данных
	dataDir := filepath.Join("tests", "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	fmt.Println("Generating golden dataset...")

	cellar := goldenCellar()
	probes := goldenProbes()

	goldenDataset := GoldenDataset{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Cellar:    cellar,
		Probes:    probes,
	}

	// Сохраняем golden dataset
	goldenPath := filepath.Join(dataDir, "golden_cellar.json")
	goldenData, err := json.MarshalIndent(goldenDataset, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal golden dataset: %v", err)
	}

	if err := os.WriteFile(goldenPath, goldenData, 0644); err != nil {
		log.Fatalf("Failed to write golden dataset: %v", err)
	}

	fmt.Printf("Generated golden dataset with %d cellar records and %d probes in %s\n",
		len(cellar), len(probes), goldenPath)

	// Также создаем SQLite БД с эталонной коллекцией
	fmt.Println("\nGenerating SQLite database with golden cellar...")
	generateSQLiteDB(dataDir, cellar)
}

// goldenCellar возвращает эталонную коллекцию
func goldenCellar() []GoldenCider {
	return []GoldenCider{
		{ID: 1, Name: "Kingston Black", Brand: "Somerset Cider Co", StrengthPercent: floatPtr(8.2), ContainerType: "bottle"},
		{ID: 2, Name: "Old Rosie", Brand: "Westons", StrengthPercent: floatPtr(6.8), ContainerType: "bag_in_box"},
		{ID: 3, Name: "Katy", Brand: "Thatchers", StrengthPercent: floatPtr(7.4), ContainerType: "bottle"},
		{ID: 4, Name: "Vintage Reserve", Brand: "Aspall", StrengthPercent: floatPtr(8.0), ContainerType: "bottle"},
		{ID: 5, Name: "Farmhouse Dry", Brand: "Wilkins", ContainerType: "draught"},
	}
}

// goldenProbes возвращает проверяемых кандидатов с ручными вердиктами
func goldenProbes() []GoldenProbe {
	probes := []GoldenProbe{}

	// 1. Точное совпадение с разницей в регистре
	p := GoldenProbe{
		ID: 1,
		Candidate: GoldenCider{
			Name:            "KINGSTON BLACK",
			Brand:           "somerset cider co",
			StrengthPercent: floatPtr(8.2),
			ContainerType:   "bottle",
		},
		Comment: "case difference only",
	}
	p.Expected.IsDuplicate = true
	p.Expected.HasSimilar = true
	probes = append(probes, p)

	// 2. То же название, бренд с юридическим хвостом
	p = GoldenProbe{
		ID: 2,
		Candidate: GoldenCider{
			Name:          "Kingston Black",
			Brand:         "Somerset Cider Co Ltd",
			ContainerType: "bottle",
		},
		Comment: "brand legal suffix",
	}
	p.Expected.IsDuplicate = true
	p.Expected.HasSimilar = true
	probes = append(probes, p)

	// 3. Похожее название, другой бренд
	p = GoldenProbe{
		ID: 3,
		Candidate: GoldenCider{
			Name:          "Old Rosie Reserve",
			Brand:         "Henney's",
			ContainerType: "bottle",
		},
		Comment: "similar name, different producer",
	}
	p.Expected.IsDuplicate = false
	p.Expected.HasSimilar = true
	probes = append(probes, p)

	// 4. Совершенно новый сидр
	p = GoldenProbe{
		ID: 4,
		Candidate: GoldenCider{
			Name:            "Perry Pear Blend",
			Brand:           "Gwynt y Ddraig",
			StrengthPercent: floatPtr(4.5),
			ContainerType:   "can",
		},
		Comment: "nothing like it in the cellar",
	}
	p.Expected.IsDuplicate = false
	p.Expected.HasSimilar = false
	probes = append(probes, p)

	// 5. Тот же сидр в другой таре
	p = GoldenProbe{
		ID: 5,
		Candidate: GoldenCider{
			Name:            "Katy",
			Brand:           "Thatchers",
			StrengthPercent: floatPtr(7.4),
			ContainerType:   "can",
		},
		Comment: "same cider, different container",
	}
	p.Expected.IsDuplicate = false
	p.Expected.HasSimilar = true
	probes = append(probes, p)

	return probes
}

// generateSQLiteDB создает SQLite БД с эталонной коллекцией
func generateSQLiteDB(dataDir string, cellar []GoldenCider) {
	dbPath := filepath.Join(dataDir, "golden_cellar.db")

	// Удаляем существующую БД
	os.Remove(dbPath)

	db, err := database.NewCellarDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	for _, entry := range cellar {
		cider := &database.Cider{
			Name:            entry.Name,
			Brand:           entry.Brand,
			StrengthPercent: entry.StrengthPercent,
			ContainerType:   entry.ContainerType,
		}
		if err := db.CreateCider(cider); err != nil {
			log.Fatalf("Failed to add cider %d: %v", entry.ID, err)
		}
	}

	fmt.Printf("Generated SQLite database with %d records in %s\n", len(cellar), dbPath)
}

func floatPtr(v float64) *float64 {
	return &v
}
