// Package parser reads SpreadsheetML parts directly from an xlsx archive.
package parser

import "math"

// MaxColumns is the widest row a worksheet can hold (column XFD).
const MaxColumns = 16384

// ColumnIndex converts the column letters of a cell reference to a 1-based
// column number (A = 1, Z = 26, AA = 27, ...). Digits are ignored, so "C7"
// and "C" both decode to 3. A reference without letters decodes to 0.
// References too long to fit an int saturate at math.MaxInt, or at
// math.MinInt when punctuation has driven the value negative.
func ColumnIndex(ref string) int {
	index := 0
	for i := 0; i < len(ref); i++ {
		ch := ref[i]
		if ch >= '0' && ch <= '9' {
			continue
		}
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		switch {
		case index > (math.MaxInt-256)/26:
			return math.MaxInt
		case index < (math.MinInt+256)/26:
			return math.MinInt
		}
		index = index*26 + int(ch) - 'A' + 1
	}
	return index
}
