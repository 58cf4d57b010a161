package sheetgrid

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Parse converts raw spreadsheet export text into a Grid.
//
// Lines are split on CRLF or LF; whitespace-only lines are dropped entirely
// and do not become empty rows. The field delimiter is detected once from the
// first non-blank line: ';' when present, ',' otherwise. Malformed quoting
// never fails the parse; it degrades to best-effort field splits.
func Parse(text string) *Grid {
	lines := splitLines(text)

	g := &Grid{delimiter: ','}
	if len(lines) == 0 {
		return g
	}

	g.delimiter = DetectDelimiter(lines[0])
	g.rows = make([][]string, 0, len(lines))
	for _, line := range lines {
		g.rows = append(g.rows, splitFields(line, g.delimiter))
	}

	log.WithFields(logrus.Fields{
		"rows":      len(g.rows),
		"delimiter": string(g.delimiter),
	}).Debug("Parsed sheet export")
	return g
}

// DetectDelimiter picks the field delimiter from a single line.
// Exports from European locales commonly use ';'.
func DetectDelimiter(line string) rune {
	if strings.ContainsRune(line, ';') {
		return ';'
	}
	return ','
}

// splitLines splits on CRLF or LF and drops whitespace-only lines.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// splitFields splits a line on delim, honoring double-quoted spans: a
// delimiter only separates fields when the number of quote characters seen so
// far is even. Doubled quotes inside quoted fields are not unescaped; only
// simple balance counting is performed.
func splitFields(line string, delim rune) []string {
	var fields []string
	var b strings.Builder
	quotes := 0
	for _, r := range line {
		switch {
		case r == '"':
			quotes++
			b.WriteRune(r)
		case r == delim && quotes%2 == 0:
			fields = append(fields, cleanField(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(b.String()))
	return fields
}

// cleanField trims a raw field and strips exactly one surrounding quote pair.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}
