package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к базе коллекции
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// CellarDB обертка для работы с базой коллекции сидров
type CellarDB struct {
	conn *sql.DB
}

// NewCellarDB создает подключение к базе коллекции с настройками по умолчанию
func NewCellarDB(dbPath string) (*CellarDB, error) {
	config := DBConfig{}

	// Для in-memory SQLite требуется использовать ровно одно соединение,
	// иначе каждое новое соединение будет получать пустую БД без таблиц
	if isInMemoryDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewCellarDBWithConfig(dbPath, config)
}

// isInMemoryDB определяет, что путь относится к in-memory SQLite
func isInMemoryDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewCellarDBWithConfig создает подключение к базе коллекции с конфигурацией пула
func NewCellarDBWithConfig(dbPath string, config DBConfig) (*CellarDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cellar database: %w", err)
	}

	// Настройка connection pooling
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		// SQLite плохо переносит большое число одновременных соединений
		conn.SetMaxOpenConns(10)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping cellar database: %w", err)
	}

	// Включаем поддержку FOREIGN KEY constraints
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// WAL позволяет нескольким читателям работать одновременно без блокировок
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		// Не критично: журналируем и продолжаем
		log.Printf("[CellarDB] Warning: Failed to enable WAL mode: %v", err)
	}

	db := &CellarDB{conn: conn}

	if err := InitCellarSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize cellar schema: %w", err)
	}

	return db, nil
}

// Close закрывает подключение к базе коллекции
func (db *CellarDB) Close() error {
	return db.conn.Close()
}

// Ping проверяет подключение к базе данных
func (db *CellarDB) Ping() error {
	return db.conn.Ping()
}

// GetDB возвращает указатель на sql.DB для прямого доступа
func (db *CellarDB) GetDB() *sql.DB {
	return db.conn
}

// Stats возвращает статистику пула соединений
func (db *CellarDB) Stats() sql.DBStats {
	return db.conn.Stats()
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.000Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// normalizeTimestamp приводит метку времени SQLite к RFC3339
func normalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC().Format(time.RFC3339)
		}
	}

	return raw
}
