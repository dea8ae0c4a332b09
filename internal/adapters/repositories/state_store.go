// Package repositories persists dashboard state in SQL: the last
// run's results, driver phone numbers and the daily schedule.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zhyangithub/eataway-router/internal/domain"
	"github.com/Zhyangithub/eataway-router/internal/platform/db"
)

// SQLStateStore implements ports.StateStore on database/sql. It runs
// unchanged on SQLite and Postgres; queries are written with ?
// placeholders and rebound for the active dialect.
type SQLStateStore struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLStateStore(database *sql.DB, dialect db.Dialect) *SQLStateStore {
	return &SQLStateStore{DB: database, Dialect: dialect}
}

// rebind converts ? placeholders to $N for Postgres.
func (s *SQLStateStore) rebind(q string) string {
	if s.Dialect != db.DialectPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InitSchema creates the state tables when they do not exist yet.
func (s *SQLStateStore) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("init schema: db is nil")
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS driver_results (
			driver TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			run_id TEXT NOT NULL,
			generated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS driver_phones (
			driver TEXT PRIMARY KEY,
			phone TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS schedule (
			id INTEGER PRIMARY KEY,
			hour INTEGER NOT NULL,
			minute INTEGER NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// storedResult is the JSON form of a DriverResult in the database.
// Field names are pinned here so the domain type can evolve without
// breaking stored rows.
type storedResult struct {
	Status    string            `json:"status"`
	Stops     []domain.Stop     `json:"stops,omitempty"`
	Stats     domain.RouteStats `json:"stats,omitempty"`
	NavLinks  []string          `json:"nav_links,omitempty"`
	Unmatched []string          `json:"unmatched,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// SaveResults replaces the stored run with the given one. Results are
// superseded wholesale, never merged.
func (s *SQLStateStore) SaveResults(ctx context.Context, results domain.RunResults) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save results: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM driver_results;`); err != nil {
		return fmt.Errorf("save results: clear previous run: %w", err)
	}

	insert := s.rebind(`
	INSERT INTO driver_results (driver, payload, run_id, generated_at)
	VALUES (?, ?, ?, ?);
	`)
	generatedAt := results.GeneratedAt.UTC().Format(time.RFC3339)

	for driver, res := range results.Drivers {
		payload, err := json.Marshal(storedResult(res))
		if err != nil {
			return fmt.Errorf("save results: marshal driver %q: %w", driver, err)
		}
		if _, err := tx.ExecContext(ctx, insert, driver, string(payload), results.RunID, generatedAt); err != nil {
			return fmt.Errorf("save results: insert driver %q: %w", driver, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save results: commit: %w", err)
	}
	return nil
}

// LoadResults returns the stored run, or nil when no run exists yet.
func (s *SQLStateStore) LoadResults(ctx context.Context) (*domain.RunResults, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT driver, payload, run_id, generated_at FROM driver_results;
	`)
	if err != nil {
		return nil, fmt.Errorf("load results: query: %w", err)
	}
	defer rows.Close()

	results := domain.RunResults{Drivers: map[string]domain.DriverResult{}}
	for rows.Next() {
		var driver, payload, runID, generatedAt string
		if err := rows.Scan(&driver, &payload, &runID, &generatedAt); err != nil {
			return nil, fmt.Errorf("load results: scan: %w", err)
		}

		var stored storedResult
		if err := json.Unmarshal([]byte(payload), &stored); err != nil {
			return nil, fmt.Errorf("load results: decode driver %q: %w", driver, err)
		}
		results.Drivers[driver] = domain.DriverResult(stored)

		results.RunID = runID
		if t, err := time.Parse(time.RFC3339, generatedAt); err == nil {
			results.GeneratedAt = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load results: iterate: %w", err)
	}

	if len(results.Drivers) == 0 {
		return nil, nil
	}
	return &results, nil
}

// SavePhone upserts one driver's phone number.
func (s *SQLStateStore) SavePhone(ctx context.Context, driver, phone string) error {
	q := s.rebind(`
	INSERT INTO driver_phones (driver, phone) VALUES (?, ?)
	ON CONFLICT (driver) DO UPDATE SET phone = EXCLUDED.phone;
	`)
	if _, err := s.DB.ExecContext(ctx, q, driver, phone); err != nil {
		return fmt.Errorf("save phone for %q: %w", driver, err)
	}
	return nil
}

func (s *SQLStateStore) LoadPhones(ctx context.Context) (map[string]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT driver, phone FROM driver_phones;`)
	if err != nil {
		return nil, fmt.Errorf("load phones: query: %w", err)
	}
	defer rows.Close()

	phones := map[string]string{}
	for rows.Next() {
		var driver, phone string
		if err := rows.Scan(&driver, &phone); err != nil {
			return nil, fmt.Errorf("load phones: scan: %w", err)
		}
		phones[driver] = phone
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load phones: iterate: %w", err)
	}
	return phones, nil
}

// SaveSchedule stores the daily trigger time. A single row keyed by
// id=1 holds the schedule.
func (s *SQLStateStore) SaveSchedule(ctx context.Context, hour, minute int) error {
	q := s.rebind(`
	INSERT INTO schedule (id, hour, minute) VALUES (1, ?, ?)
	ON CONFLICT (id) DO UPDATE SET hour = EXCLUDED.hour, minute = EXCLUDED.minute;
	`)
	if _, err := s.DB.ExecContext(ctx, q, hour, minute); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func (s *SQLStateStore) LoadSchedule(ctx context.Context) (hour, minute int, ok bool, err error) {
	row := s.DB.QueryRowContext(ctx, `SELECT hour, minute FROM schedule WHERE id = 1;`)
	if err := row.Scan(&hour, &minute); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("load schedule: %w", err)
	}
	return hour, minute, true, nil
}
