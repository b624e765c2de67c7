package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ciderserver/matching"
)

// CiderRecord запись сидра из внешнего источника (XLSX, HTML экспорт)
type CiderRecord struct {
	Name            string
	Brand           string
	StrengthPercent *float64
	ContainerType   string
	Notes           string
	SourceRow       int
}

// RowError ошибка разбора отдельной строки источника
// Ошибки строк собираются и не прерывают импорт целиком
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ciderColumns хранит индексы колонок источника
type ciderColumns struct {
	name      int
	brand     int
	strength  int
	container int
	notes     int
}

// findCiderColumns находит индексы колонок по заголовкам
// Каждый заголовок сопоставляется не более чем одной колонке, бренд
// проверяется раньше названия, иначе "Brand Name" уходит в название
func findCiderColumns(headers []string) ciderColumns {
	cols := ciderColumns{
		name:      -1,
		brand:     -1,
		strength:  -1,
		container: -1,
		notes:     -1,
	}

	for i, header := range headers {
		h := strings.TrimSpace(strings.ToLower(header))
		if h == "" {
			continue
		}

		switch {
		case cols.brand == -1 && hasAnyKeyword(h, []string{"brand", "producer", "maker", "бренд", "производ"}):
			cols.brand = i
		case cols.strength == -1 && hasAnyKeyword(h, []string{"abv", "strength", "alc", "крепост", "градус"}):
			cols.strength = i
		case cols.container == -1 && hasAnyKeyword(h, []string{"container", "packag", "format", "тара", "упаков"}):
			cols.container = i
		case cols.notes == -1 && hasAnyKeyword(h, []string{"note", "comment", "замет", "коммент", "описан"}):
			cols.notes = i
		case cols.name == -1 && hasAnyKeyword(h, []string{"name", "cider", "title", "назван", "наимен", "сидр"}):
			cols.name = i
		}
	}

	return cols
}

// rowToRecord собирает запись из ячеек строки
// Строка без названия отбрасывается, кривая крепость записывается
// в ошибки, но саму запись не выбрасывает
func rowToRecord(row []string, cols ciderColumns, rowNum int) (CiderRecord, []RowError, bool) {
	record := CiderRecord{SourceRow: rowNum}
	var errs []RowError

	record.Name = cellAt(row, cols.name)
	if record.Name == "" {
		errs = append(errs, RowError{Row: rowNum, Reason: "name is empty"})
		return record, errs, false
	}

	record.Brand = cellAt(row, cols.brand)
	record.Notes = cellAt(row, cols.notes)
	record.ContainerType = string(matching.ParseContainerType(cellAt(row, cols.container)))

	strength, err := parseStrengthCell(cellAt(row, cols.strength))
	if err != nil {
		errs = append(errs, RowError{Row: rowNum, Reason: fmt.Sprintf("invalid strength: %v", err)})
	} else {
		record.StrengthPercent = strength
	}

	return record, errs, true
}

var strengthValuePattern = regexp.MustCompile(`\d+(\.\d+)?`)

// parseStrengthCell разбирает крепость из ячейки: "5.5%", "5,5", "ABV 4.5% vol"
// Пустые и явные маркеры неизвестного значения дают nil без ошибки
func parseStrengthCell(raw string) (*float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}

	switch strings.ToLower(cleaned) {
	case "n/a", "na", "-", "—", "?", "unknown":
		return nil, nil
	}

	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	match := strengthValuePattern.FindString(cleaned)
	if match == "" {
		return nil, fmt.Errorf("no numeric value in %q", raw)
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", raw, err)
	}
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("strength %.1f is out of range", value)
	}

	return &value, nil
}

// cellAt возвращает ячейку по индексу с проверкой границ
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// hasAnyKeyword проверяет, содержит ли строка любое из ключевых слов
func hasAnyKeyword(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// isBlankRow проверяет, что все ячейки строки пустые
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
