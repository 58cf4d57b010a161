package sheetgrid

import (
	"regexp"
	"strconv"
	"strings"
)

// addressPattern matches spreadsheet addresses: uppercase column letters
// followed by a 1-based row number, e.g. "B7" or "AA12".
var addressPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// ColumnNumber decodes column letters as a bijective base-26 numeral:
// A=1, B=2, ..., Z=26, AA=27. Invalid input returns 0.
func ColumnNumber(letters string) int {
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A'+1)
	}
	return n
}

// ColumnLetters is the inverse of ColumnNumber: 1 -> "A", 27 -> "AA".
// Values below 1 return an empty string.
func ColumnLetters(n int) string {
	var b strings.Builder
	for n > 0 {
		n--
		b.WriteByte(byte('A' + n%26))
		n /= 26
	}
	// bytes were appended least-significant first
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}

// ParseAddress splits an address into 0-based row and column indices.
// The second return value is false for malformed addresses.
func ParseAddress(address string) (row, col int, ok bool) {
	m := addressPattern.FindStringSubmatch(address)
	if m == nil {
		return 0, 0, false
	}
	rowNum, err := strconv.Atoi(m[2])
	if err != nil || rowNum < 1 {
		return 0, 0, false
	}
	return rowNum - 1, ColumnNumber(m[1]) - 1, true
}

// Cell resolves a spreadsheet address against the grid. Malformed addresses
// and out-of-bounds references resolve to an empty string, never an error.
func (g *Grid) Cell(address string) string {
	row, col, ok := ParseAddress(address)
	if !ok {
		return ""
	}
	return g.At(row, col)
}
