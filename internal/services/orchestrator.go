package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/metrics"
	"github.com/Zhyangithub/eataway-router/internal/ports"
	"github.com/Zhyangithub/eataway-router/internal/tabular"
)

// Runner executes the full pipeline for a roster of drivers:
// ingestion once, then resolver -> optimizer -> segmenter per driver.
// Drivers are processed sequentially and independently; any failure,
// including a panic, is contained at the per-driver boundary so the
// rest of the roster still gets a result.
type Runner struct {
	Tables    ports.TableSource
	Optimizer ports.RouteOptimizer

	Warehouse     domain.Coordinate
	MaxWaypoints  int
	HeaderMarker  string
	HeaderScanRow int

	Log zerolog.Logger
}

// RunAll produces one DriverResult per roster member. It never returns
// an error: table-level failures are recorded on every driver that
// depended on the unreadable table.
func (r *Runner) RunAll(ctx context.Context, roster []string) domain.RunResults {
	results := domain.RunResults{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Drivers:     make(map[string]domain.DriverResult, len(roster)),
	}

	log := r.Log.With().Str("run_id", results.RunID).Logger()
	log.Info().Int("drivers", len(roster)).Msg("starting route generation run")

	coordGrid, coordErr := r.Tables.Coordinates()
	routeGrid, routeErr := r.Tables.Routes()

	var index map[string]domain.CoordinateRecord
	if coordErr == nil {
		_, index = tabular.CoordinateTable(coordGrid, r.HeaderMarker, r.HeaderScanRow)
	}

	for _, driver := range roster {
		var res domain.DriverResult
		switch {
		case coordErr != nil:
			res = domain.ErrorResult(fmt.Sprintf("reading coordinate table: %v", coordErr))
		case routeErr != nil:
			res = domain.ErrorResult(fmt.Sprintf("reading route table: %v", routeErr))
		default:
			res = r.runDriver(ctx, driver, routeGrid, index)
		}

		results.Drivers[driver] = res
		metrics.DriverResults.WithLabelValues(driver, res.Status).Inc()

		if res.OK() {
			log.Info().
				Str("driver", driver).
				Int("stops", len(res.Stops)).
				Int("unmatched", len(res.Unmatched)).
				Int("links", len(res.NavLinks)).
				Msg("driver route ready")
		} else {
			log.Warn().Str("driver", driver).Str("error", res.Error).Msg("driver route failed")
		}
	}

	metrics.RunsTotal.Inc()
	log.Info().Msg("route generation run finished")
	return results
}

// runDriver walks one driver through the pipeline. The deferred
// recover turns a panic anywhere in the driver's processing into that
// driver's Error result instead of aborting the run.
func (r *Runner) runDriver(ctx context.Context, driver string, routes tabular.Grid, index map[string]domain.CoordinateRecord) (res domain.DriverResult) {
	defer func() {
		if p := recover(); p != nil {
			r.Log.Error().Str("driver", driver).Any("panic", p).Msg("recovered driver failure")
			res = domain.ErrorResult(fmt.Sprintf("unexpected failure: %v", p))
		}
	}()

	assignment, err := tabular.DriverAssignment(routes, driver, r.HeaderScanRow)
	if err != nil {
		return domain.ErrorResult(err.Error())
	}

	match := Resolve(assignment, index)
	if len(match.Matched) == 0 {
		err := &NoStopsMatchedError{Driver: driver, Unmatched: match.Unmatched}
		return domain.ErrorResult(err.Error())
	}

	ordered, stats, err := r.Optimizer.Optimize(ctx, match.Matched, r.Warehouse)
	if err != nil {
		return domain.ErrorResult(err.Error())
	}

	links := SegmentLinks(ordered, r.Warehouse, r.MaxWaypoints)
	return domain.OkResult(ordered, stats, links, match.Unmatched)
}
