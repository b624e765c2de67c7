package database

import (
	"database/sql"
	"fmt"
	"strings"

	"ciderserver/matching"
)

// Cider запись коллекции сидров
// ContainerType хранится так, как ввел пользователь, к закрытому набору
// вариантов он приводится на границе движка сравнения
type Cider struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	StrengthPercent *float64 `json:"strengthPercent,omitempty"`
	ContainerType   string   `json:"containerType,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// CreateCider добавляет запись в коллекцию и проставляет ID и метки времени
func (db *CellarDB) CreateCider(cider *Cider) error {
	if cider == nil {
		return fmt.Errorf("cider is nil")
	}
	if strings.TrimSpace(cider.Name) == "" {
		return fmt.Errorf("cider name is required")
	}

	result, err := db.conn.Exec(
		`INSERT INTO ciders (name, brand, strength_percent, container_type, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		cider.Name, cider.Brand, nullFloat(cider.StrengthPercent), cider.ContainerType, cider.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cider: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted cider id: %w", err)
	}
	cider.ID = id

	// Перечитываем запись, чтобы вернуть метки времени из базы
	created, err := db.GetCider(id)
	if err != nil {
		return err
	}
	if created != nil {
		cider.CreatedAt = created.CreatedAt
		cider.UpdatedAt = created.UpdatedAt
	}

	return nil
}

// GetCider возвращает запись по идентификатору, nil если записи нет
func (db *CellarDB) GetCider(id int64) (*Cider, error) {
	row := db.conn.QueryRow(
		`SELECT id, name, brand, strength_percent, container_type, notes, created_at, updated_at
		 FROM ciders WHERE id = ?`, id,
	)

	cider, err := scanCider(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cider %d: %w", id, err)
	}

	return cider, nil
}

// ListCiders возвращает страницу коллекции в порядке добавления
func (db *CellarDB) ListCiders(limit, offset int) ([]*Cider, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.Query(
		`SELECT id, name, brand, strength_percent, container_type, notes, created_at, updated_at
		 FROM ciders ORDER BY id LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ciders: %w", err)
	}
	defer rows.Close()

	var ciders []*Cider
	for rows.Next() {
		cider, err := scanCider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cider row: %w", err)
		}
		ciders = append(ciders, cider)
	}

	return ciders, rows.Err()
}

// CountCiders возвращает размер коллекции
func (db *CellarDB) CountCiders() (int, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM ciders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ciders: %w", err)
	}
	return count, nil
}

// DeleteCider удаляет запись, сообщает, была ли она найдена
func (db *CellarDB) DeleteCider(id int64) (bool, error) {
	result, err := db.conn.Exec(`DELETE FROM ciders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete cider %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return affected > 0, nil
}

// Snapshot возвращает снимок коллекции для движка сравнения
// Порядок строк соответствует порядку добавления: на нем держится
// устойчивость сортировки результатов проверки
func (db *CellarDB) Snapshot() ([]matching.StoredCandidate, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, brand, strength_percent, container_type FROM ciders ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load cellar snapshot: %w", err)
	}
	defer rows.Close()

	var snapshot []matching.StoredCandidate
	for rows.Next() {
		var (
			id        int64
			name      string
			brand     string
			strength  sql.NullFloat64
			container string
		)
		if err := rows.Scan(&id, &name, &brand, &strength, &container); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		candidate := matching.Candidate{
			Name:      name,
			Brand:     brand,
			Container: matching.ParseContainerType(container),
		}
		if strength.Valid {
			value := strength.Float64
			candidate.StrengthPercent = &value
		}

		snapshot = append(snapshot, matching.StoredCandidate{ID: id, Candidate: candidate})
	}

	return snapshot, rows.Err()
}

// rowScanner объединяет sql.Row и sql.Rows для общего сканирования
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCider(row rowScanner) (*Cider, error) {
	var (
		cider     Cider
		strength  sql.NullFloat64
		createdAt sql.NullString
		updatedAt sql.NullString
	)

	err := row.Scan(
		&cider.ID, &cider.Name, &cider.Brand, &strength,
		&cider.ContainerType, &cider.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if strength.Valid {
		value := strength.Float64
		cider.StrengthPercent = &value
	}
	cider.CreatedAt = normalizeTimestamp(createdAt.String)
	cider.UpdatedAt = normalizeTimestamp(updatedAt.String)

	return &cider, nil
}
