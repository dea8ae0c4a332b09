// Package directions adapts the Google Maps Directions API as the
// pipeline's route optimizer. The service solves the visit order; this
// client only builds the request, consumes the returned order, and
// aggregates per-leg stats.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/adapters/cache"
	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/metrics"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// ServiceError carries the directions service's verdict verbatim:
// the non-"OK" status and, when present, its error message.
type ServiceError struct {
	Status  string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Status
}

// Client implements ports.RouteOptimizer against the Google Directions
// JSON API. An optional route cache short-circuits calls for stop sets
// already optimized recently. The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   *cache.RouteCache
	log     zerolog.Logger
}

func NewClient(apiKey string, routeCache *cache.RouteCache, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("directions api key is empty")
	}
	return &Client{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		cache:   routeCache,
		log:     log,
	}, nil
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Optimize sends the stops as a warehouse round trip with server-side
// waypoint optimization and a "depart now" traffic hint. The returned
// stops follow the service's chosen order; stats aggregate the legs of
// the full round trip. Any non-"OK" status becomes a *ServiceError.
func (c *Client) Optimize(ctx context.Context, stops []domain.Stop, warehouse domain.Coordinate) ([]domain.Stop, domain.RouteStats, error) {
	if len(stops) == 0 {
		return nil, domain.RouteStats{}, errors.New("optimize route: no stops to optimize")
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, stops, warehouse); ok {
			metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
			if ordered, err := reorder(stops, cached.Order); err == nil {
				return ordered, cached.Stats, nil
			}
			// A stale entry that no longer fits the stop set falls
			// through to the service.
		}
		metrics.RouteCacheLookups.WithLabelValues("miss").Inc()
	}

	endpoint := c.baseURL + "/directions/json"

	waypoints := make([]string, 0, len(stops))
	for _, s := range stops {
		waypoints = append(waypoints, s.Coordinate().String())
	}

	start := time.Now()
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := url.Values{}
		q.Set("origin", warehouse.String())
		q.Set("destination", warehouse.String())
		q.Set("waypoints", "optimize:true|"+strings.Join(waypoints, "|"))
		q.Set("departure_time", "now")
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	metrics.DirectionsDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, domain.RouteStats{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, domain.RouteStats{}, fmt.Errorf("decode directions response: %w", err)
	}

	if dr.Status != "OK" {
		return nil, domain.RouteStats{}, &ServiceError{Status: dr.Status, Message: dr.ErrorMessage}
	}
	if len(dr.Routes) == 0 {
		return nil, domain.RouteStats{}, errors.New("directions response: status OK but no routes")
	}

	route := dr.Routes[0]
	ordered, err := reorder(stops, route.WaypointOrder)
	if err != nil {
		return nil, domain.RouteStats{}, fmt.Errorf("directions response: %w", err)
	}

	var durSeconds, distMeters int
	for _, leg := range route.Legs {
		durSeconds += leg.Duration.Value
		distMeters += leg.Distance.Value
	}
	stats := domain.RouteStats{
		DurationMinutes: int(math.Round(float64(durSeconds) / 60)),
		DistanceKm:      math.Round(float64(distMeters)/100) / 10,
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, stops, warehouse, route.WaypointOrder, stats); err != nil {
			c.log.Warn().Err(err).Msg("route cache write failed")
		}
	}

	return ordered, stats, nil
}

// reorder applies the service's waypoint permutation to the input
// stops, verifying it really is a permutation before trusting it.
func reorder(stops []domain.Stop, order []int) ([]domain.Stop, error) {
	if len(order) != len(stops) {
		return nil, fmt.Errorf("waypoint order has %d entries for %d stops", len(order), len(stops))
	}
	seen := make([]bool, len(stops))
	ordered := make([]domain.Stop, 0, len(stops))
	for _, idx := range order {
		if idx < 0 || idx >= len(stops) || seen[idx] {
			return nil, fmt.Errorf("waypoint order contains invalid index %d", idx)
		}
		seen[idx] = true
		ordered = append(ordered, stops[idx])
	}
	return ordered, nil
}
