package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// ParseCellarHTML парсит HTML экспорт коллекции (веб-выгрузка трекера погреба)
// Кодировка определяется по contentType и содержимому: старые выгрузки
// приходят в windows-1251
func ParseCellarHTML(r io.Reader, contentType string) ([]CiderRecord, []RowError, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect encoding: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []CiderRecord
	var rowErrors []RowError
	tableFound := false

	// Ищем первую таблицу с колонкой названия: выгрузки содержат
	// служебные таблицы разметки до основной
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		tableRows := table.Find("tr")
		if tableRows.Length() < 2 {
			return true
		}

		headers := extractRowCells(tableRows.First())
		cols := findCiderColumns(headers)
		if cols.name == -1 {
			return true
		}

		tableFound = true
		tableRows.Slice(1, tableRows.Length()).Each(func(i int, row *goquery.Selection) {
			cells := extractRowCells(row)
			rowNum := i + 2

			if isBlankRow(cells) {
				return
			}

			record, errs, ok := rowToRecord(cells, cols, rowNum)
			rowErrors = append(rowErrors, errs...)
			if ok {
				records = append(records, record)
			}
		})

		// Первая подходящая таблица исчерпывает выгрузку
		return false
	})

	if !tableFound {
		return nil, nil, fmt.Errorf("no table with cider columns found in HTML")
	}

	if len(records) == 0 {
		return nil, rowErrors, fmt.Errorf("no valid records found in HTML table")
	}

	return records, rowErrors, nil
}

// extractRowCells собирает текст ячеек строки таблицы
func extractRowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}
