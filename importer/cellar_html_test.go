package importer

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// TestParseCellarHTML проверяет разбор HTML выгрузки с навигационной таблицей перед данными
func TestParseCellarHTML(t *testing.T) {
	doc := `<html><body>
<table>
<tr><td>Home</td><td>Export</td></tr>
<tr><td>About</td><td>Contact</td></tr>
</table>
<h1>Cellar export</h1>
<table>
<tr><th>Name</th><th>Producer</th><th>Strength</th><th>Container</th></tr>
<tr><td>Katy</td><td>Thatchers</td><td>7.4%</td><td>bottle</td></tr>
<tr><td></td><td>Ghost Orchard</td><td>5.0</td><td>can</td></tr>
<tr><td>Vintage Reserve</td><td>Aspall</td><td>8,2</td><td>draught</td></tr>
</table>
</body></html>`

	records, rowErrors, err := ParseCellarHTML(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("ParseCellarHTML() failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if len(rowErrors) != 1 {
		t.Fatalf("Expected 1 row error, got %d: %v", len(rowErrors), rowErrors)
	}

	first := records[0]
	if first.Name != "Katy" {
		t.Errorf("Expected name 'Katy', got %q", first.Name)
	}
	if first.Brand != "Thatchers" {
		t.Errorf("Expected brand 'Thatchers', got %q", first.Brand)
	}
	if first.StrengthPercent == nil || *first.StrengthPercent != 7.4 {
		t.Errorf("Expected strength 7.4, got %v", first.StrengthPercent)
	}
	if first.ContainerType != "bottle" {
		t.Errorf("Expected container 'bottle', got %q", first.ContainerType)
	}
	if first.SourceRow != 2 {
		t.Errorf("Expected source row 2, got %d", first.SourceRow)
	}

	second := records[1]
	if second.Name != "Vintage Reserve" {
		t.Errorf("Expected name 'Vintage Reserve', got %q", second.Name)
	}
	if second.StrengthPercent == nil || *second.StrengthPercent != 8.2 {
		t.Errorf("Expected strength 8.2, got %v", second.StrengthPercent)
	}
	if second.ContainerType != "draught" {
		t.Errorf("Expected container 'draught', got %q", second.ContainerType)
	}
	if second.SourceRow != 4 {
		t.Errorf("Expected source row 4, got %d", second.SourceRow)
	}

	// Строка без названия попадает в ошибки со своим номером
	if rowErrors[0].Row != 3 {
		t.Errorf("Expected error on row 3, got %d", rowErrors[0].Row)
	}
}

// TestParseCellarHTML_Windows1251 проверяет декодирование выгрузки в старой кодировке
func TestParseCellarHTML_Windows1251(t *testing.T) {
	doc := `<html><body>
<table>
<tr><th>Название</th><th>Производитель</th><th>Крепость</th></tr>
<tr><td>Яблочный Спас</td><td>Сидровый Дом</td><td>6,5%</td></tr>
</table>
</body></html>`

	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(doc))
	if err != nil {
		t.Fatalf("Failed to encode test document: %v", err)
	}

	records, rowErrors, err := ParseCellarHTML(bytes.NewReader(raw), "text/html; charset=windows-1251")
	if err != nil {
		t.Fatalf("ParseCellarHTML() failed: %v", err)
	}

	if len(rowErrors) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrors)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Name != "Яблочный Спас" {
		t.Errorf("Expected cyrillic name preserved, got %q", records[0].Name)
	}
	if records[0].Brand != "Сидровый Дом" {
		t.Errorf("Expected cyrillic brand preserved, got %q", records[0].Brand)
	}
	if records[0].StrengthPercent == nil || *records[0].StrengthPercent != 6.5 {
		t.Errorf("Expected strength 6.5, got %v", records[0].StrengthPercent)
	}
}

// TestParseCellarHTML_NoTable проверяет ошибку при отсутствии подходящей таблицы
func TestParseCellarHTML_NoTable(t *testing.T) {
	doc := `<html><body><p>No tables here</p></body></html>`

	_, _, err := ParseCellarHTML(strings.NewReader(doc), "")
	if err == nil {
		t.Error("ParseCellarHTML() should return error when no cider table is found")
	}
	if err != nil && !strings.Contains(err.Error(), "no table with cider columns") {
		t.Errorf("Expected table-not-found error, got: %v", err)
	}
}
