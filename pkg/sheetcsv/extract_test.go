package sheetcsv

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/models"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/parser"
	"github.com/xuri/excelize/v2"
)

func createWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "id")
	f.SetCellValue("Sheet1", "B1", "name")
	f.SetCellValue("Sheet1", "A2", 1)
	f.SetCellValue("Sheet1", "B2", "Ann")

	if _, err := f.NewSheet("Schools"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Schools", "A1", "school")
	f.SetCellValue("Schools", "C1", 42)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := createWorkbook(t)

	tests := []struct {
		sheet    string
		part     string
		expected []models.Row
	}{
		{"", "xl/worksheets/sheet1.xml", []models.Row{{"id", "name"}, {"1", "Ann"}}},
		{"sheet1", "xl/worksheets/sheet1.xml", []models.Row{{"id", "name"}, {"1", "Ann"}}},
		{"sheet2", "xl/worksheets/sheet2.xml", []models.Row{{"school", "", "42"}}},
		{"Schools", "xl/worksheets/sheet2.xml", []models.Row{{"school", "", "42"}}},
	}

	for _, tt := range tests {
		data, err := Extract(path, Options{Sheet: tt.sheet})
		if err != nil {
			t.Fatalf("Extract(%q) failed: %v", tt.sheet, err)
		}
		if data.Part != tt.part {
			t.Errorf("Extract(%q) part = %q, expected %q", tt.sheet, data.Part, tt.part)
		}
		if !reflect.DeepEqual(data.Rows, tt.expected) {
			t.Errorf("Extract(%q) rows = %q, expected %q", tt.sheet, data.Rows, tt.expected)
		}
	}
}

func TestExtractMissingSheet(t *testing.T) {
	path := createWorkbook(t)

	_, err := Extract(path, Options{Sheet: "Missing"})
	if !errors.Is(err, parser.ErrPartNotFound) {
		t.Fatalf("Expected ErrPartNotFound, got %v", err)
	}

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected *ExtractionError, got %T", err)
	}
	if extractionErr.Component != ComponentWorksheet {
		t.Errorf("Expected component %q, got %q", ComponentWorksheet, extractionErr.Component)
	}
	if extractionErr.Part != "xl/worksheets/Missing.xml" {
		t.Errorf("Expected part %q, got %q", "xl/worksheets/Missing.xml", extractionErr.Part)
	}
}

func TestExtractBrokenWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create(parser.WorkbookPart)
	if err != nil {
		t.Fatalf("Failed to create workbook part: %v", err)
	}
	if _, err := w.Write([]byte(`<workbook><sheets><sheet name="A"`)); err != nil {
		t.Fatalf("Failed to write workbook part: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close test archive: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close test file: %v", err)
	}

	_, err = Extract(path, Options{Sheet: "A"})
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected *ExtractionError, got %T: %v", err, err)
	}
	if extractionErr.Component != ComponentWorkbook || extractionErr.Part != parser.WorkbookPart {
		t.Errorf("Expected %s (%s), got %s (%s)", parser.WorkbookPart, ComponentWorkbook, extractionErr.Part, extractionErr.Component)
	}
}

func TestExtractFileNotFound(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestExtractInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := os.WriteFile(path, []byte("id,name\n1,Ann\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := Extract(path, DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}
}

func TestListSheets(t *testing.T) {
	sheets, err := ListSheets(createWorkbook(t))
	if err != nil {
		t.Fatalf("ListSheets failed: %v", err)
	}

	expected := []models.SheetInfo{
		{Name: "Sheet1", Part: "xl/worksheets/sheet1.xml"},
		{Name: "Schools", Part: "xl/worksheets/sheet2.xml"},
	}
	if !reflect.DeepEqual(sheets, expected) {
		t.Errorf("ListSheets() = %+v, expected %+v", sheets, expected)
	}
}

func TestExtractionError(t *testing.T) {
	err := NewExtractionError("xl/worksheets/sheet1.xml", ComponentWorksheet, parser.ErrMalformedPart)

	expected := `extraction error in xl/worksheets/sheet1.xml (worksheet): malformed part`
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
	if !errors.Is(err, parser.ErrMalformedPart) {
		t.Error("Expected ExtractionError to unwrap to ErrMalformedPart")
	}
}

func TestOptionsSheetOrDefault(t *testing.T) {
	if got := (Options{}).SheetOrDefault(); got != parser.DefaultSheet {
		t.Errorf("SheetOrDefault() = %q, expected %q", got, parser.DefaultSheet)
	}
	if got := (Options{Sheet: "sheet3"}).SheetOrDefault(); got != "sheet3" {
		t.Errorf("SheetOrDefault() = %q, expected %q", got, "sheet3")
	}
	if got := DefaultOptions().Sheet; got != parser.DefaultSheet {
		t.Errorf("DefaultOptions().Sheet = %q, expected %q", got, parser.DefaultSheet)
	}
}
