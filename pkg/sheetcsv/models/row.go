// Package models defines data structures for sheet extraction.
package models

// Row is one reconstructed worksheet row. Position i holds the text of
// column i+1; columns without a cell hold "".
type Row []string
