// Package numcoerce normalizes heterogeneous spreadsheet numeric text into
// decimal values. Spreadsheet cells in this domain mix currency symbols,
// thousands separators, parentheses-as-negative and blank-as-zero; coercion
// is total and silent: any input produces a value, unparsable input yields
// zero.
package numcoerce

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyPattern removes currency symbols, codes and whitespace before
// numeric parsing.
var currencyPattern = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫CHF\s]`)

// Parse coerces a raw cell value into a decimal. It never fails:
//
//   - empty strings, "0" and the dash placeholder "-" coerce to zero
//   - currency symbols and whitespace are stripped
//   - a hyphen or parenthesis anywhere marks the value negative
//   - "1.234,56" and "1,234.56" both parse as 1234.56; a lone comma acts as
//     the decimal point
//   - anything left unparsable coerces to zero
func Parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || s == "0" || s == "-" {
		return decimal.Zero
	}

	s = currencyPattern.ReplaceAllString(s, "")

	// Negativity is signaled before separators are cleaned so that values
	// like "(1.234,56)" keep their sign.
	negative := strings.ContainsAny(s, "-()")
	s = strings.NewReplacer("-", "", "(", "", ")", "").Replace(s)

	s = normalizeSeparators(s)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return value.Abs().Neg()
	}
	return value
}

// Float is a convenience wrapper for callers that need a float64.
func Float(raw string) float64 {
	f, _ := Parse(raw).Float64()
	return f
}

// ParseAbs coerces and returns the absolute value. Budget and actual columns
// are stored with mixed signs in the source sheet.
func ParseAbs(raw string) decimal.Decimal {
	return Parse(raw).Abs()
}

// normalizeSeparators disambiguates comma and point. When both are present
// the last one wins as the decimal separator and the other is treated as a
// thousands separator; a lone comma is always the decimal point.
func normalizeSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasPoint := strings.Contains(s, ".")
	switch {
	case hasComma && hasPoint:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// European format: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// Anglo format: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}
