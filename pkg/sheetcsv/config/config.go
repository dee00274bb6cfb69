// Package config loads sheetcsv settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/ukaji3/sheetcsv-go/pkg/sheetcsv/parser"
)

// Default locations, relative to the project root.
const (
	DefaultInputPath  = "data/School_numbers/School numbers dataset.xlsx"
	DefaultOutputPath = "data/School_numbers/school_numbers_sheet1.csv"
)

// Config holds the converter settings.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
}

// InputConfig selects the workbook and sheet to read.
type InputConfig struct {
	Path  string `toml:"path"`
	Sheet string `toml:"sheet"`
}

// OutputConfig controls where and how rows are written.
type OutputConfig struct {
	// Path is the CSV file. Empty derives it from the input path and sheet.
	Path string `toml:"path"`
	CRLF bool   `toml:"crlf"`

	// Delimiter is a single character separating fields. Empty means ","
	// and "\t" or "tab" select a tab.
	Delimiter string `toml:"delimiter"`
}

// Comma returns the field delimiter as a rune.
func (o OutputConfig) Comma() (rune, error) {
	switch o.Delimiter {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(o.Delimiter)
	if size != len(o.Delimiter) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q must be a single character", o.Delimiter)
	}
	switch r {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("delimiter %q is not allowed", o.Delimiter)
	}
	return r, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:  DefaultInputPath,
			Sheet: parser.DefaultSheet,
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
	}
}

// Load decodes the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.DropDefaultOutput()
	return cfg, nil
}

// DropDefaultOutput clears the built-in output path when the input or sheet
// no longer matches the built-in input, so that Resolve derives one.
func (c *Config) DropDefaultOutput() {
	if c.Output.Path != DefaultOutputPath {
		return
	}
	if c.Input.Path != DefaultInputPath || (c.Input.Sheet != "" && c.Input.Sheet != parser.DefaultSheet) {
		c.Output.Path = ""
	}
}

// Resolve returns a copy with the input and output paths made absolute
// against root, the sheet defaulted and the output path derived if unset.
// It rejects an unusable delimiter.
func (c *Config) Resolve(root string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	out := *c
	if out.Input.Sheet == "" {
		out.Input.Sheet = parser.DefaultSheet
	}
	if out.Input.Path == "" {
		return nil, fmt.Errorf("input path is not set")
	}
	out.Input.Path = join(absRoot, out.Input.Path)
	if _, err := out.Output.Comma(); err != nil {
		return nil, err
	}

	if out.Output.Path == "" {
		out.Output.Path = DeriveOutputPath(out.Input.Path, out.Input.Sheet)
	} else {
		out.Output.Path = join(absRoot, out.Output.Path)
	}
	return &out, nil
}

// DeriveOutputPath names the CSV after the workbook and sheet, next to the
// workbook: "Sales Report.xlsx" and "sheet2" give "sales_report_sheet2.csv".
func DeriveOutputPath(input, sheet string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := normalizeName(stem) + "_" + normalizeName(sheet) + ".csv"
	return filepath.Join(filepath.Dir(input), name)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}

func join(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
