package sheetcsv

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// Components reported by ExtractionError.
const (
	ComponentWorkbook      = "workbook"
	ComponentSharedStrings = "shared_strings"
	ComponentWorksheet     = "worksheet"
)

// ExtractionError represents an error while reading one part of the archive.
type ExtractionError struct {
	Part      string
	Component string // "workbook", "shared_strings", "worksheet"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in %s (%s): %v", e.Part, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(part, component string, err error) *ExtractionError {
	return &ExtractionError{
		Part:      part,
		Component: component,
		Err:       err,
	}
}
