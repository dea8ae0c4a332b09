// Package services holds the route-construction pipeline: resolving
// raw stop names to coordinates, segmenting optimized routes into
// navigation links, and orchestrating the per-driver runs.
package services

import (
	"fmt"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// NoStopsMatchedError reports that none of a driver's stop names could
// be resolved against the coordinate table. The unmatched list is kept
// for operator correction.
type NoStopsMatchedError struct {
	Driver    string
	Unmatched []string
}

func (e *NoStopsMatchedError) Error() string {
	if len(e.Unmatched) == 0 {
		return fmt.Sprintf("no stops matched for driver %q", e.Driver)
	}
	return fmt.Sprintf("no stops matched for driver %q (%d unmatched names)", e.Driver, len(e.Unmatched))
}

// Resolve partitions a driver's assignment into matched stops and
// unmatched names by exact normalized-name lookup. There is no fuzzy
// matching on purpose: a typo shows up as an unmatched entry for
// manual correction instead of silently routing to the wrong place.
// Coordinates are copied as-is, never reformatted.
func Resolve(assignment []string, index map[string]domain.CoordinateRecord) domain.MatchResult {
	res := domain.MatchResult{
		Matched:   make([]domain.Stop, 0, len(assignment)),
		Unmatched: []string{},
	}
	for _, name := range assignment {
		rec, ok := index[domain.NormalizeName(name)]
		if !ok {
			res.Unmatched = append(res.Unmatched, name)
			continue
		}
		res.Matched = append(res.Matched, domain.Stop{
			Name: name,
			Lat:  rec.Latitude,
			Lng:  rec.Longitude,
		})
	}
	return res
}
