// Package output serializes extracted rows.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/models"
)

// CSVOptions configures delimited-text output.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// UseCRLF terminates lines with \r\n instead of \n.
	UseCRLF bool
}

// WriteCSV writes one line per row. Fields containing the delimiter, a
// quote, a line break or a leading space are quoted. No header is added.
func WriteCSV(w io.Writer, rows []models.Row, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	cw.UseCRLF = opts.UseCRLF

	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to path, creating missing parent directories.
func WriteCSVFile(path string, rows []models.Row, opts CSVOptions) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteCSV(f, rows, opts)
}
