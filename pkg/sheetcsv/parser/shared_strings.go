package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// nsMain is the SpreadsheetML main namespace. Elements outside it are ignored.
const nsMain = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// ErrSharedStringIndex indicates a cell referencing a shared string that
// does not exist.
var ErrSharedStringIndex = errors.New("shared string index out of range")

// SharedStrings is the workbook's shared string table, indexed from 0.
type SharedStrings []string

// Lookup resolves the raw content of a shared-string cell's value element.
// Empty content is treated as index 0.
func (s SharedStrings) Lookup(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "0"
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid shared string index %q: %w", raw, err)
	}
	if idx < 0 || idx >= len(s) {
		return "", fmt.Errorf("index %d, table size %d: %w", idx, len(s), ErrSharedStringIndex)
	}
	return s[idx], nil
}

// LoadSharedStrings reads the shared string table of an archive. A workbook
// without a shared strings part yields an empty table.
func LoadSharedStrings(r *zip.Reader) (SharedStrings, error) {
	if !hasZipFile(r, SharedStringsPart) {
		return nil, nil
	}
	rc, err := openZipFile(r, SharedStringsPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadSharedStrings(rc)
}

// ReadSharedStrings parses a sharedStrings.xml document. Each string item
// becomes the concatenation of all of its text runs, in document order.
func ReadSharedStrings(r io.Reader) (SharedStrings, error) {
	var table SharedStrings
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, err
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Space == nsMain && se.Name.Local == "si" {
			text, err := readStringItem(decoder)
			if err != nil {
				return nil, err
			}
			table = append(table, text)
		}
	}
}

// readStringItem consumes tokens up to the end of the current si element,
// collecting the text of every t descendant.
func readStringItem(decoder *xml.Decoder) (string, error) {
	var text []byte
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", unexpectedEOF(err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Space == nsMain && t.Name.Local == "t" {
				run, err := readElementText(decoder)
				if err != nil {
					return "", err
				}
				text = append(text, run...)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return string(text), nil
}

// readElementText returns the character data of the current element,
// including that of nested elements, and consumes its end tag.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text []byte
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", unexpectedEOF(err)
		}
		switch t := token.(type) {
		case xml.CharData:
			text = append(text, t...)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return string(text), nil
}

// unexpectedEOF reports EOF inside an open element as a syntax error.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
