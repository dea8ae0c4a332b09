package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/logger"
)

func TestNotifyDisabledWithoutHost(t *testing.T) {
	m := &Mailer{Recipients: []string{"dispatch@example.com"}, Log: logger.New("test")}
	assert.NoError(t, m.Notify(context.Background(), domain.RunResults{}))

	m = &Mailer{Host: "smtp.example.com", Log: logger.New("test")}
	assert.NoError(t, m.Notify(context.Background(), domain.RunResults{}))
}

func TestNotifyHonorsCancelledContext(t *testing.T) {
	m := &Mailer{
		Host:       "smtp.example.com",
		Port:       587,
		Recipients: []string{"dispatch@example.com"},
		Log:        logger.New("test"),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Notify(ctx, domain.RunResults{}), context.Canceled)
}

func TestBuildBody(t *testing.T) {
	results := domain.RunResults{
		GeneratedAt: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.OkResult(
				[]domain.Stop{
					{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"},
					{Name: "Coop Nord", Lat: "59.25", Lng: "17.98"},
				},
				domain.RouteStats{DurationMinutes: 42, DistanceKm: 13.5},
				[]string{"https://example.com/seg1"},
				[]string{"Okänd Butik"},
			),
			"Ahmed": domain.ErrorResult("directions service error: ZERO_RESULTS"),
		},
	}

	body := buildBody(results)

	// Drivers appear in sorted order.
	ahmed, saman := strings.Index(body, "== Ahmed =="), strings.Index(body, "== Saman ==")
	assert.GreaterOrEqual(t, ahmed, 0)
	assert.Greater(t, saman, ahmed)
	assert.Contains(t, body, "Ingen rutt: directions service error: ZERO_RESULTS")
	assert.Contains(t, body, "2 stopp, 42 min, 13.5 km")
	assert.Contains(t, body, "1. Ica Söder")
	assert.Contains(t, body, "2. Coop Nord")
	assert.Contains(t, body, "Segment 1: https://example.com/seg1")
	assert.Contains(t, body, "Ej matchade: Okänd Butik")
}
