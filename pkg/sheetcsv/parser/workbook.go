package parser

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/models"
)

type workbookSheet struct {
	name string
	rID  string
}

// ReadWorkbookSheets lists the sheets declared in xl/workbook.xml, in
// workbook order, with the worksheet part each one points to.
func ReadWorkbookSheets(r *zip.Reader) ([]models.SheetInfo, error) {
	sheets, err := readWorkbookPart(r)
	if err != nil {
		return nil, err
	}
	targets, err := readWorkbookRels(r)
	if err != nil {
		return nil, err
	}

	result := make([]models.SheetInfo, 0, len(sheets))
	for _, s := range sheets {
		target, ok := targets[s.rID]
		if !ok || !strings.Contains(strings.ToLower(target), "worksheet") {
			// Chart sheets and dialog sheets have no sheetData.
			continue
		}
		result = append(result, models.SheetInfo{
			Name: s.name,
			Part: resolveRelativePath(target, "xl"),
		})
	}
	return result, nil
}

// ResolveSheetPart maps a sheet selector to a worksheet part path. A
// worksheet part named after the selector wins; otherwise the selector is
// matched against the workbook's sheet titles.
func ResolveSheetPart(r *zip.Reader, sheet string) (string, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	part := WorksheetPart(sheet)
	if hasZipFile(r, part) {
		return part, nil
	}
	if !hasZipFile(r, WorkbookPart) {
		return "", fmt.Errorf("%s: %w", part, ErrPartNotFound)
	}

	sheets, err := ReadWorkbookSheets(r)
	if err != nil {
		return "", err
	}
	for _, s := range sheets {
		if s.Name == sheet {
			return s.Part, nil
		}
	}
	return "", fmt.Errorf("sheet %q: %w", sheet, ErrPartNotFound)
}

func readWorkbookPart(r *zip.Reader) ([]workbookSheet, error) {
	rc, err := openZipFile(r, WorkbookPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var result []workbookSheet
	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", WorkbookPart, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var s workbookSheet
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					s.name = attr.Value
				case "id":
					s.rID = attr.Value
				}
			}
			if s.name != "" && s.rID != "" {
				result = append(result, s)
			}
		}
	}
}

// readWorkbookRels returns relationship id -> target.
func readWorkbookRels(r *zip.Reader) (map[string]string, error) {
	rc, err := openZipFile(r, WorkbookRelsPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	result := make(map[string]string)
	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", WorkbookRelsPart, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" {
				result[rID] = target
			}
		}
	}
}
