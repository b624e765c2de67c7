package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ciderserver/database"
	"ciderserver/importer"
	"ciderserver/internal/config"
	"ciderserver/matching"
	"ciderserver/server"
	"ciderserver/server/services"
)

func main() {
	var (
		filePath        = flag.String("file", "", "Path to the cellar export file (.xlsx or .html)")
		dbPath          = flag.String("db", "", "Path to cellar database (default: DATABASE_PATH or ./cellar.db)")
		format          = flag.String("format", "auto", "Export format: xlsx, html or auto (detect by extension)")
		checkDuplicates = flag.Bool("check-duplicates", true, "Skip records the duplicate check flags as already present")
		dryRun          = flag.Bool("dry-run", false, "Parse the file without writing to the database")
		verbose         = flag.Bool("verbose", false, "Verbose output")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Println("Usage: import_cellar [options]")
		fmt.Println("\nOptions:")
		fmt.Println("  -file <path>          Path to cellar export file (.xlsx or .html)")
		fmt.Println("  -db <path>            Path to cellar database (default: DATABASE_PATH or ./cellar.db)")
		fmt.Println("  -format <format>      xlsx, html or auto (default: auto)")
		fmt.Println("  -check-duplicates     Skip records already present in the cellar (default: true)")
		fmt.Println("  -dry-run              Parse the file without writing to the database")
		fmt.Println("  -verbose              Verbose output")
		fmt.Println("\nExamples:")
		fmt.Println("  import_cellar -file cellar.xlsx")
		fmt.Println("  import_cellar -file export.html -db ./cellar.db -verbose")
		fmt.Println("  import_cellar -file cellar.xlsx -check-duplicates=false")
		os.Exit(1)
	}

	// .env подхватываем ради DATABASE_PATH и настроек движка
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	server.SetLogLevel(cfg.LogLevel)

	// Проверяем существование файла
	if _, err := os.Stat(*filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("File not found: %s", *filePath)
		}
		log.Fatalf("Error checking file %s: %v", *filePath, err)
	}

	fileFormat, err := detectFormat(*filePath, *format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	server.LogImportStart(*filePath, fileFormat)
	start := time.Now()

	// Парсим выгрузку
	var records []importer.CiderRecord
	var rowErrors []importer.RowError

	switch fileFormat {
	case "xlsx":
		records, rowErrors, err = importer.ParseCellarXLSX(*filePath)
	case "html":
		var f *os.File
		f, err = os.Open(*filePath)
		if err != nil {
			log.Fatalf("Failed to open HTML file: %v", err)
		}
		// Кодировка локального файла определяется по метатегам
		records, rowErrors, err = importer.ParseCellarHTML(f, "")
		f.Close()
	}
	if err != nil {
		log.Fatalf("Failed to parse %s file: %v", fileFormat, err)
	}

	for _, rowErr := range rowErrors {
		server.LogImportRowError(*filePath, rowErr.Row, rowErr)
	}

	if *verbose {
		log.Printf("Parsed %d records from %s file (%d row errors)", len(records), fileFormat, len(rowErrors))
	}

	if *dryRun {
		fmt.Printf("\n=== Dry Run ===\n")
		fmt.Printf("File: %s\n", *filePath)
		fmt.Printf("Format: %s\n", fileFormat)
		fmt.Printf("Parsed records: %d\n", len(records))
		fmt.Printf("Row errors: %d\n", len(rowErrors))
		if *verbose {
			for _, record := range records {
				fmt.Printf("  row %d: %s / %s\n", record.SourceRow, record.Name, record.Brand)
			}
		}
		return
	}

	// Открываем базу данных коллекции
	targetDB := *dbPath
	if targetDB == "" {
		targetDB = cfg.DatabasePath
	}
	if dir := filepath.Dir(targetDB); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}
	}

	db, err := database.NewCellarDB(targetDB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if *verbose {
		log.Printf("Using database: %s", targetDB)
	}

	cellarService := services.NewCellarService(db)

	// Движок нужен только если включена проверка дубликатов
	var engine *matching.Engine
	var snapshot []matching.StoredCandidate
	if *checkDuplicates {
		if cfg.Engine != nil {
			engine, err = matching.NewEngine(cfg.Engine.MatchingConfig())
			if err != nil {
				log.Fatalf("Failed to create matching engine: %v", err)
			}
		} else {
			engine = matching.NewDefaultEngine()
		}

		snapshot, err = db.Snapshot()
		if err != nil {
			log.Fatalf("Failed to load cellar snapshot: %v", err)
		}
	}

	// Импортируем данные
	imported := 0
	skippedDuplicates := 0
	failed := 0
	importErrors := []string{}

	if *verbose {
		log.Printf("Starting import of %d cider records...", len(records))
	}

	for i, record := range records {
		if *verbose && (i+1)%100 == 0 {
			log.Printf("Processed %d/%d records...", i+1, len(records))
		}

		candidate := matching.Candidate{
			Name:            record.Name,
			Brand:           record.Brand,
			StrengthPercent: record.StrengthPercent,
			Container:       matching.ContainerType(record.ContainerType),
		}

		if engine != nil {
			result := engine.FullCheck(candidate, snapshot)
			if result.IsDuplicate {
				skippedDuplicates++
				if *verbose {
					log.Printf("Skipping duplicate (row %d): %s", record.SourceRow, result.Message)
				}
				continue
			}
		}

		cider := &database.Cider{
			Name:            record.Name,
			Brand:           record.Brand,
			StrengthPercent: record.StrengthPercent,
			ContainerType:   record.ContainerType,
			Notes:           record.Notes,
		}

		created, err := cellarService.CreateCider(cider)
		if err != nil {
			failed++
			errorMsg := fmt.Sprintf("row %d (%s): %v", record.SourceRow, record.Name, err)
			importErrors = append(importErrors, errorMsg)
			if *verbose {
				log.Printf("Error importing row %d: %v", record.SourceRow, err)
			}
			continue
		}

		imported++

		// Свежая запись участвует в проверке следующих строк файла
		if engine != nil {
			snapshot = append(snapshot, matching.StoredCandidate{ID: created.ID, Candidate: candidate})
		}
	}

	server.LogImportComplete(*filePath, imported, skippedDuplicates, failed, time.Since(start))

	// Выводим результаты
	fmt.Printf("\n=== Import Results ===\n")
	fmt.Printf("Total records: %d\n", len(records))
	fmt.Printf("Imported: %d\n", imported)
	fmt.Printf("Skipped as duplicates: %d\n", skippedDuplicates)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Printf("Row errors: %d\n", len(rowErrors))

	if failed > 0 && *verbose {
		fmt.Printf("\n=== Errors (first 20) ===\n")
		maxErrors := 20
		if len(importErrors) < maxErrors {
			maxErrors = len(importErrors)
		}
		for i := 0; i < maxErrors; i++ {
			fmt.Printf(" - %s\n", importErrors[i])
		}
		if len(importErrors) > maxErrors {
			fmt.Printf("... and %d more errors\n", len(importErrors)-maxErrors)
		}
	}

	// Сохраняем результаты в JSON файл
	result := map[string]interface{}{
		"file":               *filePath,
		"format":             fileFormat,
		"total":              len(records),
		"imported":           imported,
		"duplicates_skipped": skippedDuplicates,
		"failed":             failed,
		"row_errors":         len(rowErrors),
		"error_list":         importErrors,
		"timestamp":          time.Now().Format(time.RFC3339),
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err == nil {
		reportPath := filepath.Join(filepath.Dir(targetDB), "cellar_import_report.json")
		if err := os.WriteFile(reportPath, resultJSON, 0644); err == nil {
			if *verbose {
				log.Printf("Import report saved to: %s", reportPath)
			}
		}
	}

	// Получаем статистику
	stats, err := cellarService.GetCellarStats()
	if err == nil {
		fmt.Printf("\n=== Cellar Statistics ===\n")
		if total, ok := stats["total_ciders"].(int); ok {
			fmt.Printf("Total ciders in cellar: %d\n", total)
		}
		if brands, ok := stats["distinct_brands"].(int); ok {
			fmt.Printf("Distinct brands: %d\n", brands)
		}
		if containers, ok := stats["containers"].(map[string]int); ok {
			fmt.Printf("\nBy container:\n")
			for container, count := range containers {
				fmt.Printf("  %s: %d\n", container, count)
			}
		}
	}

	if failed > 0 {
		fmt.Printf("\nWarning: Import completed with %d errors\n", failed)
		os.Exit(1)
	}

	fmt.Printf("\nImport completed successfully!\n")
}

// detectFormat определяет формат выгрузки по флагу или расширению файла
func detectFormat(filePath, format string) (string, error) {
	switch format {
	case "xlsx", "html":
		return format, nil
	case "auto":
	default:
		return "", fmt.Errorf("unsupported format %q, expected xlsx, html or auto", format)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		return "xlsx", nil
	case ".html", ".htm":
		return "html", nil
	}
	return "", fmt.Errorf("cannot detect format from extension of %q, use -format", filePath)
}
