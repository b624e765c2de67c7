package database

import (
	"database/sql"
	"fmt"
)

// InitCellarSchema создает таблицы коллекции, если их еще нет
func InitCellarSchema(conn *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ciders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			strength_percent REAL,
			container_type TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ciders_name ON ciders(name)`,
		`CREATE INDEX IF NOT EXISTS idx_ciders_brand ON ciders(brand)`,
	}

	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}
