package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Driver selects the SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Open opens a database handle for the given driver. Postgres schema is
// managed by the goose migrator; for sqlite the schema is ensured in place so
// embedded and test databases are usable immediately.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverPostgres:
		drvName = "pgx"
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = "file:trivia.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	handle, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		if err := EnsureSQLiteSchema(ctx, handle); err != nil {
			handle.Close()
			return nil, err
		}
	}
	return handle, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    question   TEXT NOT NULL,
    answer     TEXT NOT NULL,
    category   INTEGER NOT NULL REFERENCES categories(id),
    difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 5)
);
`

// EnsureSQLiteSchema creates the question bank tables if absent.
func EnsureSQLiteSchema(ctx context.Context, handle *sql.DB) error {
	if _, err := handle.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("ensure sqlite schema: %w", err)
	}
	return nil
}
