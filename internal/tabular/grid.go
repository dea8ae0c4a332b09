// Package tabular extracts structured records from the human-maintained
// spreadsheets that feed the route pipeline. The tables have no fixed
// schema: header rows drift, columns carry ad-hoc labels, and cells mix
// real values with blanks and stray "nan" text. Everything here scans
// and matches defensively instead of assuming a layout.
package tabular

import "strings"

// Grid is rectangular-ish tabular data as read from a spreadsheet or
// CSV file. Rows may be ragged; Cell treats missing cells as empty.
type Grid [][]string

// Cell returns the trimmed text of a cell, or "" when the row or
// column does not exist.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Columns returns the widest row length in the grid.
func (g Grid) Columns() int {
	max := 0
	for _, r := range g {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// blank reports whether a cell value carries no usable content.
// Spreadsheet exports frequently render empty cells as the literal
// text "nan", so that is filtered alongside the empty string.
func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}
