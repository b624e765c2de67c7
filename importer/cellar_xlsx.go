package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// maxHeaderScanRows сколько первых строк просматривается в поисках заголовка
// Экспорты часто начинаются с титульных строк перед таблицей
const maxHeaderScanRows = 10

// ParseCellarXLSX парсит XLSX экспорт коллекции сидров
// Возвращает разобранные записи и список ошибок строк: битая строка
// не прерывает импорт остальных
func ParseCellarXLSX(filePath string) ([]CiderRecord, []RowError, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Получаем имя первого листа
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file is too short, expected at least header row and one data row")
	}

	// 1. Ищем строку заголовка в первых строках листа
	headerRow := -1
	var cols ciderColumns
	for i := 0; i < len(rows) && i < maxHeaderScanRows; i++ {
		candidate := findCiderColumns(rows[i])
		if candidate.name != -1 {
			headerRow = i
			cols = candidate
			break
		}
	}
	if headerRow == -1 {
		return nil, nil, fmt.Errorf("required column 'Name' not found in first %d rows", maxHeaderScanRows)
	}

	// 2. Разбираем данные после заголовка
	var records []CiderRecord
	var rowErrors []RowError

	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]

		if isBlankRow(row) {
			continue
		}

		// Номера строк в ошибках единичные, как их показывает Excel
		record, errs, ok := rowToRecord(row, cols, rowIdx+1)
		rowErrors = append(rowErrors, errs...)
		if ok {
			records = append(records, record)
		}
	}

	if len(records) == 0 {
		return nil, rowErrors, fmt.Errorf("no valid records found in Excel file. Check column mapping")
	}

	return records, rowErrors, nil
}
