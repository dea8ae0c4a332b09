package domain

import "strings"

// Coordinate is a geographic point carried as opaque decimal strings.
// Latitude and longitude are never parsed into floats: the values flow
// from the source spreadsheet to the directions service and into
// navigation links exactly as written, which avoids round-trip drift
// and locale formatting surprises.
type Coordinate struct {
	Lat string
	Lng string
}

// String renders the coordinate in the "lat,lng" form the directions
// service and navigation links expect.
func (c Coordinate) String() string { return c.Lat + "," + c.Lng }

// NormalizeName is the canonical matching form of a stop name:
// trimmed and case-folded. All name lookups in the pipeline go
// through this, so a record keyed here matches regardless of how the
// spreadsheet author cased or padded the cell.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
