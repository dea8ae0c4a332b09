package ports

import (
	"context"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// RouteOptimizer delegates visit-order optimization to an external
// directions service. Implementations send the stops as a round trip
// from the warehouse, let the service pick the order, and return the
// stops in that order together with aggregate stats. They never
// reorder stops themselves and never invent a route on failure.
type RouteOptimizer interface {
	Optimize(ctx context.Context, stops []domain.Stop, warehouse domain.Coordinate) ([]domain.Stop, domain.RouteStats, error)
}
