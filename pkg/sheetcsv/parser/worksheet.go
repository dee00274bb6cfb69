package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/models"
)

// ErrMalformedPart indicates a part that is well-formed XML but lacks the
// structure the reader needs.
var ErrMalformedPart = errors.New("malformed part")

// xlsxRow is a row element of sheetData. Only the cells are used; the row's
// own r attribute is not consulted, rows are emitted in document order.
type xlsxRow struct {
	Cells []xlsxCell `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main c"`
}

type xlsxCell struct {
	R  string            `xml:"r,attr"`
	T  string            `xml:"t,attr"`
	V  *string           `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main v"`
	IS *xlsxInlineString `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main is"`
}

type xlsxInlineString struct {
	T *string `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main t"`
}

// ReadSheetRows opens the xlsx archive at path and returns the rows of the
// sheet selected by part name (for example "sheet1") or workbook title. An
// empty sheet selects DefaultSheet.
func ReadSheetRows(path, sheet string) ([]models.Row, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	part, err := ResolveSheetPart(&r.Reader, sheet)
	if err != nil {
		return nil, err
	}
	sst, err := LoadSharedStrings(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("shared strings: %w", err)
	}
	return LoadRows(&r.Reader, part, sst)
}

// LoadRows reads the rows of a worksheet part of an open archive.
func LoadRows(r *zip.Reader, part string, sst SharedStrings) ([]models.Row, error) {
	rc, err := openZipFile(r, part)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := ReadRows(rc, sst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", part, err)
	}
	// Reading to the end makes the zip reader verify the CRC.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return nil, fmt.Errorf("%s: %w", part, err)
	}
	return rows, nil
}

// ReadRows parses a worksheet document and reconstructs each non-empty row
// as a dense slice of cell text, with missing cells filled by "". The whole
// document must be well-formed, including what follows sheetData.
func ReadRows(r io.Reader, sst SharedStrings) ([]models.Row, error) {
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no sheetData element: %w", ErrMalformedPart)
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Space == nsMain && se.Name.Local == "sheetData" {
			rows, err := readSheetData(decoder, sst)
			if err != nil {
				return nil, err
			}
			if err := drain(decoder); err != nil {
				return nil, err
			}
			return rows, nil
		}
	}
}

// drain consumes the remaining tokens so that syntax errors anywhere in the
// document are reported.
func drain(decoder *xml.Decoder) error {
	for {
		if _, err := decoder.Token(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func readSheetData(decoder *xml.Decoder, sst SharedStrings) ([]models.Row, error) {
	rows := []models.Row{}
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space != nsMain || t.Name.Local != "row" {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			var xr xlsxRow
			if err := decoder.DecodeElement(&xr, &t); err != nil {
				return nil, err
			}
			row, err := buildRow(xr.Cells, sst)
			if err != nil {
				return nil, err
			}
			if row != nil {
				rows = append(rows, row)
			}
		case xml.EndElement:
			return rows, nil
		}
	}
}

// buildRow places each cell at its column position. It returns nil for a
// row without cells. A later cell with the same reference replaces an
// earlier one.
func buildRow(cells []xlsxCell, sst SharedStrings) (models.Row, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	values := make(map[int]string, len(cells))
	maxIdx, prev := 0, 0
	for _, c := range cells {
		idx := ColumnIndex(c.R)
		if idx < 1 {
			// Reference omitted or unreadable: the cell follows its predecessor.
			idx = prev + 1
		}
		if idx > MaxColumns {
			return nil, fmt.Errorf("cell %s: column beyond %d: %w", cellName(c.R, idx), MaxColumns, ErrMalformedPart)
		}
		value, err := cellValue(c, sst)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", cellName(c.R, idx), err)
		}
		values[idx] = value
		prev = idx
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	row := make(models.Row, maxIdx)
	for idx, value := range values {
		row[idx-1] = value
	}
	return row, nil
}

// cellValue applies the value precedence: shared string, raw value, inline
// string, empty.
func cellValue(c xlsxCell, sst SharedStrings) (string, error) {
	switch {
	case c.T == "s" && c.V != nil:
		return sst.Lookup(*c.V)
	case c.V != nil:
		return *c.V, nil
	case c.IS != nil && c.IS.T != nil:
		return *c.IS.T, nil
	}
	return "", nil
}

func cellName(ref string, idx int) string {
	if ref != "" {
		return ref
	}
	return fmt.Sprintf("#%d", idx)
}
