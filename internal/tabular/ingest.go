package tabular

import (
	"fmt"
	"strings"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// Defaults for the header scan. The limits are tuned for the current
// spreadsheet layouts and are overridable through configuration.
const (
	DefaultHeaderMarker   = "namn"
	DefaultHeaderScanRows = 15
)

// DriverNotFoundError reports that no column in the route table could
// be associated with the driver identifier.
type DriverNotFoundError struct {
	Driver string
}

func (e *DriverNotFoundError) Error() string {
	return fmt.Sprintf("driver %q not found in route table", e.Driver)
}

// HeaderRow locates the coordinate table's header row: the first row
// within the first scanRows rows containing the marker token in any
// cell, case-insensitively. When no row matches, row 0 is assumed to
// be the header so a marker-less table still degrades gracefully.
func HeaderRow(g Grid, marker string, scanRows int) int {
	if marker == "" {
		marker = DefaultHeaderMarker
	}
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	marker = strings.ToLower(marker)

	limit := scanRows
	if limit > len(g) {
		limit = len(g)
	}
	for row := 0; row < limit; row++ {
		for col := range g[row] {
			if strings.Contains(strings.ToLower(g.Cell(row, col)), marker) {
				return row
			}
		}
	}
	return 0
}

// CoordinateTable parses the coordinate table into records and a
// lookup index keyed by normalized name. Rows after the header row
// contribute their first three columns as name, latitude and longitude
// in that fixed order, regardless of what the column labels say.
// Duplicate names keep the first occurrence; rows without a usable
// name are skipped.
func CoordinateTable(g Grid, marker string, scanRows int) ([]domain.CoordinateRecord, map[string]domain.CoordinateRecord) {
	header := HeaderRow(g, marker, scanRows)

	records := make([]domain.CoordinateRecord, 0, len(g))
	index := make(map[string]domain.CoordinateRecord, len(g))

	for row := header + 1; row < len(g); row++ {
		name := g.Cell(row, 0)
		if blank(name) {
			continue
		}
		key := domain.NormalizeName(name)
		if _, dup := index[key]; dup {
			// Keep-first policy: later duplicates are discarded.
			continue
		}
		rec := domain.CoordinateRecord{
			Name:      name,
			Latitude:  g.Cell(row, 1),
			Longitude: g.Cell(row, 2),
		}
		records = append(records, rec)
		index[key] = rec
	}
	return records, index
}

// FindDriverColumn locates the column belonging to a driver in the
// route table. Matching is case-insensitive substring matching, first
// against the header row (grid row 0), then against the first scanRows
// cell values of each column. It returns the column index and the grid
// row the identifier was found in; the driver's stops start two rows
// below that match (the row under the match holds a region title or
// sub-header, never a stop).
func FindDriverColumn(g Grid, driver string, scanRows int) (col, matchRow int, err error) {
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	needle := strings.ToLower(strings.TrimSpace(driver))
	if needle == "" || len(g) == 0 {
		return 0, 0, &DriverNotFoundError{Driver: driver}
	}

	limit := scanRows + 1
	if limit > len(g) {
		limit = len(g)
	}
	for c := 0; c < g.Columns(); c++ {
		if strings.Contains(strings.ToLower(g.Cell(0, c)), needle) {
			return c, 0, nil
		}
		for r := 1; r < limit; r++ {
			if strings.Contains(strings.ToLower(g.Cell(r, c)), needle) {
				return c, r, nil
			}
		}
	}
	return 0, 0, &DriverNotFoundError{Driver: driver}
}

// ExtractAssignment collects the driver's raw stop names from a column,
// starting at fromRow and running to the end of the table. Blank and
// "nan" cells are filtered; everything else is kept verbatim (trimmed)
// in table order.
func ExtractAssignment(g Grid, col, fromRow int) []string {
	stops := make([]string, 0, len(g))
	for row := fromRow; row < len(g); row++ {
		cell := g.Cell(row, col)
		if blank(cell) {
			continue
		}
		stops = append(stops, cell)
	}
	return stops
}

// DriverAssignment resolves a driver's column and extracts their stop
// list in one step.
func DriverAssignment(g Grid, driver string, scanRows int) ([]string, error) {
	col, matchRow, err := FindDriverColumn(g, driver, scanRows)
	if err != nil {
		return nil, err
	}
	return ExtractAssignment(g, col, matchRow+2), nil
}
