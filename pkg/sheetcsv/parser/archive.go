package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Part paths inside an xlsx archive.
const (
	SharedStringsPart = "xl/sharedStrings.xml"
	WorkbookPart      = "xl/workbook.xml"
	WorkbookRelsPart  = "xl/_rels/workbook.xml.rels"
)

// DefaultSheet is the worksheet part read when no sheet is selected.
const DefaultSheet = "sheet1"

// ErrPartNotFound indicates that a required part is missing from the archive.
var ErrPartNotFound = errors.New("part not found")

// WorksheetPart returns the archive path of the named worksheet part.
func WorksheetPart(sheet string) string {
	return "xl/worksheets/" + sheet + ".xml"
}

func findZipFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func hasZipFile(r *zip.Reader, name string) bool {
	return findZipFile(r, name) != nil
}

// openZipFile opens a part for reading. The caller closes it.
func openZipFile(r *zip.Reader, name string) (io.ReadCloser, error) {
	f := findZipFile(r, name)
	if f == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrPartNotFound)
	}
	return f.Open()
}

// resolveRelativePath turns a relationship target into an archive path.
// Absolute targets are rooted at the archive, others at baseDir.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}
