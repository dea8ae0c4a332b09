package services

import (
	"net/url"
	"strings"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// DefaultMaxWaypoints is the Google Maps deep-link waypoint ceiling:
// 10 intermediate points, so 11 path points per link.
const DefaultMaxWaypoints = 10

const navBaseURL = "https://www.google.com/maps/dir/?api=1"

// SegmentLinks turns an ordered stop list into one or more navigation
// deep links for the round trip warehouse -> stops -> warehouse.
//
// The full path is walked in windows advancing by maxWaypoints
// positions, each spanning up to maxWaypoints+1 consecutive points.
// Consecutive windows share their boundary point, so chaining the
// emitted links reconstructs the path with no gap: each link's
// destination is the next link's origin. Waypoints inside a window are
// pipe-delimited and percent-encoded. A route with no stops still
// yields one warehouse -> warehouse link.
func SegmentLinks(ordered []domain.Stop, warehouse domain.Coordinate, maxWaypoints int) []string {
	if maxWaypoints <= 0 {
		maxWaypoints = DefaultMaxWaypoints
	}

	path := make([]domain.Coordinate, 0, len(ordered)+2)
	path = append(path, warehouse)
	for _, s := range ordered {
		path = append(path, s.Coordinate())
	}
	path = append(path, warehouse)

	links := make([]string, 0, (len(path)+maxWaypoints-1)/maxWaypoints)
	for i := 0; i < len(path)-1; i += maxWaypoints {
		end := i + maxWaypoints + 1
		if end > len(path) {
			end = len(path)
		}
		window := path[i:end]

		var b strings.Builder
		b.WriteString(navBaseURL)
		b.WriteString("&origin=")
		b.WriteString(window[0].String())
		b.WriteString("&destination=")
		b.WriteString(window[len(window)-1].String())

		if len(window) > 2 {
			waypoints := make([]string, 0, len(window)-2)
			for _, p := range window[1 : len(window)-1] {
				waypoints = append(waypoints, p.String())
			}
			b.WriteString("&waypoints=")
			b.WriteString(url.QueryEscape(strings.Join(waypoints, "|")))
		}
		links = append(links, b.String())
	}
	return links
}
