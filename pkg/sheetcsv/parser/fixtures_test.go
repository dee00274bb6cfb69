package parser

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	worksheetHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`
	sstHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`
)

// worksheetXML wraps sheetData content in a worksheet document.
func worksheetXML(sheetData string) string {
	return worksheetHeader + `<sheetData>` + sheetData + `</sheetData></worksheet>`
}

// sharedStringsXML wraps string items in an sst document.
func sharedStringsXML(items string) string {
	return sstHeader + items + `</sst>`
}

// buildArchive returns an in-memory zip with the given parts.
func buildArchive(t *testing.T, parts map[string]string) *zip.Reader {
	t.Helper()
	data := zipBytes(t, parts)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open test archive: %v", err)
	}
	return r
}

// writeArchive writes a zip with the given parts to a temporary file.
func writeArchive(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := os.WriteFile(path, zipBytes(t, parts), 0644); err != nil {
		t.Fatalf("Failed to write test archive: %v", err)
	}
	return path
}

func zipBytes(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close test archive: %v", err)
	}
	return buf.Bytes()
}
