package ports

import (
	"context"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// StateStore persists dashboard state between runs and restarts: the
// last run's results, driver phone numbers and the daily schedule.
// The core pipeline only produces RunResults; reading and writing them
// is the server's concern.
type StateStore interface {
	SaveResults(ctx context.Context, results domain.RunResults) error
	// LoadResults returns nil when no run has been stored yet.
	LoadResults(ctx context.Context) (*domain.RunResults, error)

	SavePhone(ctx context.Context, driver, phone string) error
	LoadPhones(ctx context.Context) (map[string]string, error)

	SaveSchedule(ctx context.Context, hour, minute int) error
	// LoadSchedule reports ok=false when no schedule has been stored.
	LoadSchedule(ctx context.Context) (hour, minute int, ok bool, err error)
}
