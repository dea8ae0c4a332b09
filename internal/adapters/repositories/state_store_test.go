package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/db"
)

func newTestStore(t *testing.T) *SQLStateStore {
	t.Helper()

	database, dialect, err := db.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.Equal(t, db.DialectSQLite, dialect)

	store := NewSQLStateStore(database, dialect)
	require.NoError(t, store.InitSchema(context.Background()))
	return store
}

func TestLoadResultsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.LoadResults(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveLoadResultsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	results := domain.RunResults{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 10, 7, 0, 12, 0, time.UTC),
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.OkResult(
				[]domain.Stop{
					{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"},
					{Name: "Coop Nord", Lat: "59.25", Lng: "17.98"},
				},
				domain.RouteStats{DurationMinutes: 42, DistanceKm: 13.5},
				[]string{"https://www.google.com/maps/dir/?api=1&origin=a&destination=b"},
				[]string{"Okänd Butik"},
			),
			"Ahmed": domain.ErrorResult("directions service error: ZERO_RESULTS"),
		},
	}

	require.NoError(t, store.SaveResults(ctx, results))

	got, err := store.LoadResults(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, got.GeneratedAt.Equal(results.GeneratedAt))
	assert.Equal(t, results.Drivers["Saman"], got.Drivers["Saman"])
	assert.Equal(t, results.Drivers["Ahmed"], got.Drivers["Ahmed"])
}

func TestSaveResultsSupersedesPreviousRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := domain.RunResults{
		RunID:       "run-1",
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.ErrorResult("reading route table: boom"),
			"Ahmed": domain.ErrorResult("reading route table: boom"),
		},
	}
	require.NoError(t, store.SaveResults(ctx, first))

	second := domain.RunResults{
		RunID:       "run-2",
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Drivers: map[string]domain.DriverResult{
			"Saman": domain.OkResult(
				[]domain.Stop{{Name: "Ica Söder", Lat: "59.26", Lng: "18.01"}},
				domain.RouteStats{DurationMinutes: 5, DistanceKm: 1.2},
				[]string{"u"},
				nil,
			),
		},
	}
	require.NoError(t, store.SaveResults(ctx, second))

	got, err := store.LoadResults(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "run-2", got.RunID)
	assert.Len(t, got.Drivers, 1)
	_, stale := got.Drivers["Ahmed"]
	assert.False(t, stale)
}

func TestPhonesUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	phones, err := store.LoadPhones(ctx)
	require.NoError(t, err)
	assert.Empty(t, phones)

	require.NoError(t, store.SavePhone(ctx, "Saman", "070-1111111"))
	require.NoError(t, store.SavePhone(ctx, "Ahmed", "070-2222222"))
	require.NoError(t, store.SavePhone(ctx, "Saman", "070-3333333"))

	phones, err = store.LoadPhones(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Saman": "070-3333333",
		"Ahmed": "070-2222222",
	}, phones)
}

func TestScheduleUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _, ok, err := store.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveSchedule(ctx, 7, 0))
	require.NoError(t, store.SaveSchedule(ctx, 16, 45))

	hour, minute, ok, err := store.LoadSchedule(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 16, hour)
	assert.Equal(t, 45, minute)
}

func TestRebindPostgres(t *testing.T) {
	store := &SQLStateStore{Dialect: db.DialectPostgres}
	got := store.rebind(`INSERT INTO t (a, b, c) VALUES (?, ?, ?);`)
	assert.Equal(t, `INSERT INTO t (a, b, c) VALUES ($1, $2, $3);`, got)

	store.Dialect = db.DialectSQLite
	got = store.rebind(`SELECT * FROM t WHERE a = ?;`)
	assert.Equal(t, `SELECT * FROM t WHERE a = ?;`, got)
}
