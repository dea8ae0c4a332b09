package services

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

var warehouse = domain.Coordinate{Lat: "59.8542194", Lng: "17.6650221"}

func makeStops(n int) []domain.Stop {
	stops := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		stops = append(stops, domain.Stop{
			Name: fmt.Sprintf("Stop %d", i),
			Lat:  fmt.Sprintf("59.%04d", i),
			Lng:  fmt.Sprintf("17.%04d", i),
		})
	}
	return stops
}

// parseLink pulls origin, destination and waypoints back out of a
// navigation link.
func parseLink(t *testing.T, link string) (origin, dest string, waypoints []string) {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()

	origin = q.Get("origin")
	dest = q.Get("destination")
	if wp := q.Get("waypoints"); wp != "" {
		waypoints = strings.Split(wp, "|")
	}
	return origin, dest, waypoints
}

func TestSegmentLinksPathReconstruction(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 23, 30} {
		t.Run(fmt.Sprintf("%d stops", n), func(t *testing.T) {
			stops := makeStops(n)
			links := SegmentLinks(stops, warehouse, 10)

			wantSegments := (n + 1 + 9) / 10
			assert.Len(t, links, wantSegments)

			// Chain segments back together. Each link's destination
			// must equal the next link's origin; the interior points
			// must reproduce the full round trip exactly.
			var path []string
			for i, link := range links {
				origin, dest, waypoints := parseLink(t, link)
				if i == 0 {
					path = append(path, origin)
				} else {
					assert.Equal(t, path[len(path)-1], origin, "segments must share boundary points")
				}
				path = append(path, waypoints...)
				path = append(path, dest)
			}

			want := []string{warehouse.String()}
			for _, s := range stops {
				want = append(want, s.Coordinate().String())
			}
			want = append(want, warehouse.String())
			assert.Equal(t, want, path)
		})
	}
}

func TestSegmentLinksWaypointCeiling(t *testing.T) {
	links := SegmentLinks(makeStops(25), warehouse, 10)
	for _, link := range links {
		_, _, waypoints := parseLink(t, link)
		assert.LessOrEqual(t, len(waypoints), 10)
	}
}

func TestSegmentLinksNoStops(t *testing.T) {
	links := SegmentLinks(nil, warehouse, 10)
	require.Len(t, links, 1)

	origin, dest, waypoints := parseLink(t, links[0])
	assert.Equal(t, warehouse.String(), origin)
	assert.Equal(t, warehouse.String(), dest)
	assert.Empty(t, waypoints)
	assert.NotContains(t, links[0], "waypoints")
}

func TestSegmentLinksSingleStop(t *testing.T) {
	links := SegmentLinks(makeStops(1), warehouse, 10)
	require.Len(t, links, 1)

	_, _, waypoints := parseLink(t, links[0])
	assert.Len(t, waypoints, 1)
}

func TestSegmentLinksEncoding(t *testing.T) {
	links := SegmentLinks(makeStops(2), warehouse, 10)
	require.Len(t, links, 1)

	// Waypoints are percent-encoded: the pipe separator and commas
	// must not appear raw in the query value.
	raw := links[0][strings.Index(links[0], "waypoints=")+len("waypoints="):]
	assert.NotContains(t, raw, "|")
	assert.Contains(t, raw, "%7C")
}
