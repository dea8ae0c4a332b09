package domain

// CoordinateRecord is one row of the coordinate table: a stop name and
// its location. The table is built once per pipeline run and is
// read-only afterwards. At most one record exists per normalized name;
// on duplicates the first occurrence wins.
type CoordinateRecord struct {
	Name      string
	Latitude  string
	Longitude string
}

// Stop is a delivery destination assigned to a driver, with resolved
// coordinates. Name keeps the original trimmed casing from the route
// table; Lat and Lng are copied verbatim from the coordinate record.
type Stop struct {
	Name string
	Lat  string
	Lng  string
}

// Coordinate returns the stop's location as a Coordinate value.
func (s Stop) Coordinate() Coordinate { return Coordinate{Lat: s.Lat, Lng: s.Lng} }

// MatchResult partitions a driver's raw stop list after lookup against
// the coordinate table. Unmatched entries keep their original trimmed
// text so an operator can review and fix the source spreadsheet; they
// are never silently dropped.
type MatchResult struct {
	Matched   []Stop
	Unmatched []string
}
