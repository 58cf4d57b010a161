// Package sheetgrid parses delimited spreadsheet exports into a cell grid and
// resolves spreadsheet-style addresses ("B7") against it.
//
// The parser is deliberately forgiving: blank lines are dropped, rows may be
// jagged, broken quoting degrades to best-effort field splits, and any
// out-of-range access yields an empty string. Consumers treat empty cells as
// "no value" rather than errors.
package sheetgrid

// Grid is an ordered sequence of rows parsed from a spreadsheet export.
// Rows keep their source order and may have differing lengths. A Grid is
// read-only after parsing.
type Grid struct {
	rows      [][]string
	delimiter rune
}

// NumRows returns the number of non-blank rows in the grid.
func (g *Grid) NumRows() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// Delimiter returns the field delimiter detected while parsing.
func (g *Grid) Delimiter() rune {
	if g == nil {
		return ','
	}
	return g.delimiter
}

// Row returns the cells of row r (0-based), or nil when out of range.
// Callers must not mutate the returned slice.
func (g *Grid) Row(r int) []string {
	if g == nil || r < 0 || r >= len(g.rows) {
		return nil
	}
	return g.rows[r]
}

// Rows returns all rows in source order. Callers must not mutate the result.
func (g *Grid) Rows() [][]string {
	if g == nil {
		return nil
	}
	return g.rows
}

// At returns the cell at row r, column c (both 0-based). Out-of-range access
// returns an empty string, never an error.
func (g *Grid) At(r, c int) string {
	if g == nil || r < 0 || r >= len(g.rows) {
		return ""
	}
	row := g.rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}
