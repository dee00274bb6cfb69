package sheetcsv

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/models"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/parser"
)

// Extract reads the selected worksheet of the xlsx file at path.
func Extract(path string, opts Options) (*models.SheetData, error) {
	r, err := openArchive(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	part, err := parser.ResolveSheetPart(&r.Reader, opts.SheetOrDefault())
	if errors.Is(err, parser.ErrPartNotFound) {
		return nil, NewExtractionError(parser.WorksheetPart(opts.SheetOrDefault()), ComponentWorksheet, err)
	}
	if err != nil {
		return nil, NewExtractionError(parser.WorkbookPart, ComponentWorkbook, err)
	}

	sst, err := parser.LoadSharedStrings(&r.Reader)
	if err != nil {
		return nil, NewExtractionError(parser.SharedStringsPart, ComponentSharedStrings, err)
	}

	rows, err := parser.LoadRows(&r.Reader, part, sst)
	if err != nil {
		return nil, NewExtractionError(part, ComponentWorksheet, err)
	}

	return &models.SheetData{
		Part: part,
		Rows: rows,
	}, nil
}

// ListSheets returns the sheets declared in the workbook of the xlsx file
// at path.
func ListSheets(path string) ([]models.SheetInfo, error) {
	r, err := openArchive(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheets, err := parser.ReadWorkbookSheets(&r.Reader)
	if err != nil {
		return nil, NewExtractionError(parser.WorkbookPart, ComponentWorkbook, err)
	}
	return sheets, nil
}

func openArchive(path string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
}
