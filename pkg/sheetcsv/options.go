// Package sheetcsv extracts the cell text of one worksheet of an xlsx file.
package sheetcsv

import "github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/parser"

// Options configures extraction behavior.
type Options struct {
	// Sheet selects the worksheet, either by part name ("sheet1") or by
	// the sheet title shown in the workbook. Empty selects the first part.
	Sheet string
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Sheet: parser.DefaultSheet,
	}
}

// SheetOrDefault returns the configured sheet selector.
func (o Options) SheetOrDefault() string {
	if o.Sheet == "" {
		return parser.DefaultSheet
	}
	return o.Sheet
}
