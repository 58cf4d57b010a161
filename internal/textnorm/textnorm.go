// Package textnorm provides text normalization helpers used when matching
// spreadsheet values such as month names and category labels.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes accented runes and drops the combining marks,
// so "Categoría" becomes "Categoria".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritic marks from a string.
// If the transform fails the original string is returned unchanged.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold normalizes a spreadsheet cell value for comparison: trims surrounding
// whitespace, strips accents and lowercases. Month names and category labels
// are always compared through Fold so that locale variants match.
func Fold(s string) string {
	return strings.ToLower(StripAccents(strings.TrimSpace(s)))
}

// EqualFold reports whether two values are equal after normalization.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether either normalized value is a substring of the
// other. Both values must be non-empty after normalization.
func ContainsFold(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}
