package main

import (
	"archive/zip"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ciderserver/database"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "info":
		handleInfo()
	case "backup":
		handleBackup()
	case "vacuum":
		handleVacuum()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Cellar DB Manager - CLI utility for the cellar database file")
	fmt.Println()
	fmt.Println("Usage: db-manager <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  info [-db path]                    Show database file and collection info")
	fmt.Println("  backup [-db path] [-output path]   Create a zip backup of the database")
	fmt.Println("  vacuum [-db path]                  Compact the database file")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  db-manager info")
	fmt.Println("  db-manager backup -output cellar_backup.zip")
	fmt.Println("  db-manager vacuum -db ./cellar.db")
}

// defaultDBPath путь к БД из окружения или значение по умолчанию
func defaultDBPath() string {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path
	}
	return "./cellar.db"
}

func handleInfo() {
	infoFlags := flag.NewFlagSet("info", flag.ExitOnError)
	dbPath := infoFlags.String("db", defaultDBPath(), "Path to cellar database")
	infoFlags.Parse(os.Args[2:])

	stat, err := os.Stat(*dbPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Database file does not exist: %s", *dbPath)
		}
		log.Fatalf("Error checking file %s: %v", *dbPath, err)
	}

	db, err := database.NewCellarDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	count, err := db.CountCiders()
	if err != nil {
		log.Fatalf("Failed to count ciders: %v", err)
	}

	// Проверка целостности файла
	integrity := "unknown"
	if err := db.GetDB().QueryRow("PRAGMA integrity_check").Scan(&integrity); err != nil {
		log.Printf("Warning: integrity check failed: %v", err)
	}

	fmt.Println("=== Cellar Database Info ===")
	fmt.Printf("Path: %s\n", *dbPath)
	fmt.Printf("Size: %d bytes\n", stat.Size())
	fmt.Printf("Modified: %s\n", stat.ModTime().Format(time.RFC3339))
	fmt.Printf("Ciders: %d\n", count)
	fmt.Printf("Integrity: %s\n", integrity)
}

func handleBackup() {
	backupFlags := flag.NewFlagSet("backup", flag.ExitOnError)
	dbPath := backupFlags.String("db", defaultDBPath(), "Path to cellar database")
	outputPath := backupFlags.String("output", "", "Output path for backup file")
	backupFlags.Parse(os.Args[2:])

	if _, err := os.Stat(*dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Database file does not exist: %s", *dbPath)
		}
		log.Fatalf("Error checking file %s: %v", *dbPath, err)
	}

	// Определяем путь к бэкапу
	backupDir := filepath.Join("data", "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		log.Fatalf("Failed to create backup directory: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	backupFileName := fmt.Sprintf("cellar_backup_%s.zip", timestamp)
	if *outputPath != "" {
		backupFileName = *outputPath
		if !strings.HasSuffix(backupFileName, ".zip") {
			backupFileName += ".zip"
		}
	}

	backupPath := filepath.Join(backupDir, backupFileName)

	// Создаем ZIP архив
	zipFile, err := os.Create(backupPath)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	// Архивируем саму БД и WAL файлы, если сервер не успел их убрать
	candidates := []string{*dbPath, *dbPath + "-wal", *dbPath + "-shm"}

	addedFiles := 0
	totalSize := int64(0)
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		sourceFile, err := os.Open(path)
		if err != nil {
			log.Printf("Failed to open file %s: %v", path, err)
			continue
		}

		archiveFile, err := zipWriter.Create(filepath.Base(path))
		if err != nil {
			sourceFile.Close()
			log.Printf("Failed to create archive entry for %s: %v", path, err)
			continue
		}

		if _, err := io.Copy(archiveFile, sourceFile); err != nil {
			sourceFile.Close()
			log.Printf("Failed to copy file %s to archive: %v", path, err)
			continue
		}
		sourceFile.Close()

		addedFiles++
		totalSize += info.Size()
	}

	fmt.Printf("Backup created successfully: %s\n", backupPath)
	fmt.Printf("Files: %d, Total size: %d bytes\n", addedFiles, totalSize)
}

func handleVacuum() {
	vacuumFlags := flag.NewFlagSet("vacuum", flag.ExitOnError)
	dbPath := vacuumFlags.String("db", defaultDBPath(), "Path to cellar database")
	vacuumFlags.Parse(os.Args[2:])

	before, err := os.Stat(*dbPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Database file does not exist: %s", *dbPath)
		}
		log.Fatalf("Error checking file %s: %v", *dbPath, err)
	}

	db, err := database.NewCellarDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Vacuuming %s...\n", *dbPath)
	if _, err := db.GetDB().Exec("VACUUM"); err != nil {
		log.Fatalf("VACUUM failed: %v", err)
	}

	after, err := os.Stat(*dbPath)
	if err != nil {
		log.Fatalf("Error checking file after vacuum: %v", err)
	}

	fmt.Printf("Done. Size: %d bytes -> %d bytes\n", before.Size(), after.Size())
}
