package domain

import "time"

// Result status values for a driver's run outcome.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RouteStats aggregates the optimized round trip over all legs.
// Distance is rounded to one decimal, matching what drivers see.
type RouteStats struct {
	DurationMinutes int
	DistanceKm      float64
}

// DriverResult is the outcome of one driver's pipeline run. It is one
// of two variants: StatusOK with stops, stats and navigation links, or
// StatusError with a message. A new run supersedes the previous result
// for the driver; results are never merged.
type DriverResult struct {
	Status    string
	Stops     []Stop
	Stats     RouteStats
	NavLinks  []string
	Unmatched []string
	Error     string
}

// OK reports whether the result is the success variant.
func (r DriverResult) OK() bool { return r.Status == StatusOK }

// OkResult builds the success variant.
func OkResult(stops []Stop, stats RouteStats, links []string, unmatched []string) DriverResult {
	if unmatched == nil {
		unmatched = []string{}
	}
	return DriverResult{
		Status:    StatusOK,
		Stops:     stops,
		Stats:     stats,
		NavLinks:  links,
		Unmatched: unmatched,
	}
}

// ErrorResult builds the failure variant.
func ErrorResult(msg string) DriverResult {
	return DriverResult{Status: StatusError, Error: msg}
}

// RunResults is the aggregate outcome of one orchestrator run: one
// DriverResult per roster member, keyed by driver identifier.
type RunResults struct {
	RunID       string
	GeneratedAt time.Time
	Drivers     map[string]DriverResult
}
