//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ciderserver/matching"
)

// GoldenCider запись коллекции из golden dataset
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

// ProbeResult фактический вердикт движка по одному кандидату
type ProbeResult struct {
	ID          int     `json:"id"`
	IsDuplicate bool    `json:"isDuplicate"`
	HasSimilar  bool    `json:"hasSimilar"`
	Confidence  float64 `json:"confidence"`
	Message     string  `json:"message"`
}

// ExpectedResult ожидаемые результаты проверки golden dataset
type ExpectedResult struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Results   []ProbeResult `json:"results"`
}

func main() {
	// Загружаем golden dataset
	goldenPath := filepath.Join("tests", "data", "golden_cellar.json")
	goldenData, err := os.ReadFile(goldenPath)
	if err != nil {
		log.Fatalf("Failed to read golden dataset: %v", err)
	}

	var goldenDataset GoldenDataset
	if err := json.Unmarshal(goldenData, &goldenDataset); err != nil {
		log.Fatalf("Failed to parse golden dataset: %v", err)
	}

	// Собираем снимок коллекции для движка
	snapshot := make([]matching.StoredCandidate, len(goldenDataset.Cellar))
	for i, entry := range goldenDataset.Cellar {
		snapshot[i] = matching.StoredCandidate{
			ID: int64(entry.ID),
			Candidate: matching.Candidate{
				Name:            entry.Name,
				Brand:           entry.Brand,
				StrengthPercent: entry.StrengthPercent,
				Container:       matching.ContainerType(entry.ContainerType),
			},
		}
	}

	engine := matching.NewDefaultEngine()

	fmt.Printf("Running duplicate checks on %d probes...\n", len(goldenDataset.Probes))

	results := make([]ProbeResult, len(goldenDataset.Probes))
	mismatches := 0
	for i, probe := range goldenDataset.Probes {
		candidate := matching.Candidate{
			Name:            probe.Candidate.Name,
			Brand:           probe.Candidate.Brand,
			StrengthPercent: probe.Candidate.StrengthPercent,
			Container:       matching.ContainerType(probe.Candidate.ContainerType),
		}

		check := engine.FullCheck(candidate, snapshot)
		results[i] = ProbeResult{
			ID:          probe.ID,
			IsDuplicate: check.IsDuplicate,
			HasSimilar:  check.HasSimilar,
			Confidence:  check.Confidence,
			Message:     check.Message,
		}

		if check.IsDuplicate != probe.Expected.IsDuplicate || check.HasSimilar != probe.Expected.HasSimilar {
			mismatches++
			log.Printf("Probe %d (%s): expected duplicate=%v similar=%v, engine says duplicate=%v similar=%v",
				probe.ID, probe.Comment,
				probe.Expected.IsDuplicate, probe.Expected.HasSimilar,
				check.IsDuplicate, check.HasSimilar)
		}
	}

	if mismatches > 0 {
		fmt.Printf("Warning: %d probes disagree with hand-assigned verdicts, review the dataset\n", mismatches)
	}

	expectedResult := ExpectedResult{
		Version:   "1.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Results:   results,
	}

	// Сохраняем expected results
	expectedPath := filepath.Join("tests", "data", "expected_result.json")
	data, err := json.MarshalIndent(expectedResult, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal expected results: %v", err)
	}

	if err := os.WriteFile(expectedPath, data, 0644); err != nil {
		log.Fatalf("Failed to write expected results: %v", err)
	}

	fmt.Printf("Expected results saved to %s\n", expectedPath)
}
