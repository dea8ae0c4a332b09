// Package db opens the state database. The store runs on a local
// SQLite file by default and on Postgres when given a postgres:// URL,
// so a single warehouse deployment needs no database server while a
// hosted one can share state.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL parameter and upsert flavor in use.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Open connects to the database addressed by url: a postgres:// /
// postgresql:// URL selects the pgx driver, anything else is treated
// as a SQLite file path.
func Open(url string) (*sql.DB, Dialect, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		db, err := sql.Open("pgx", url)
		if err != nil {
			return nil, "", fmt.Errorf("open postgres database: %w", err)
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("verify postgres connection: %w", err)
		}
		return db, DialectPostgres, nil
	}

	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, "", fmt.Errorf("open sqlite database %q: %w", url, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("verify sqlite connection to %q: %w", url, err)
	}
	return db, DialectSQLite, nil
}
