package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists. Weights and values are
// stored as decimal strings; the UNIQUE index on grade_records is the
// authoritative guard for the one-grade-per-pair invariant.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:gradebook.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/gradebook?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS enrollments (
  id TEXT PRIMARY KEY,
  student_id TEXT NOT NULL,
  section_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  enrolled_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  weight TEXT NOT NULL,
  kind TEXT NOT NULL,
  section_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_section ON evaluations(section_id);

CREATE TABLE IF NOT EXISTS grade_records (
  id TEXT PRIMARY KEY,
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
  enrollment_id TEXT NOT NULL REFERENCES enrollments(id),
  value TEXT NOT NULL,
  recorded_at INTEGER NOT NULL,
  UNIQUE (evaluation_id, enrollment_id)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS enrollments (
  id TEXT PRIMARY KEY,
  student_id TEXT NOT NULL,
  section_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'ACTIVE',
  enrolled_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  weight TEXT NOT NULL,
  kind TEXT NOT NULL,
  section_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_section ON evaluations(section_id);

CREATE TABLE IF NOT EXISTS grade_records (
  id TEXT PRIMARY KEY,
  evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
  enrollment_id TEXT NOT NULL REFERENCES enrollments(id),
  value TEXT NOT NULL,
  recorded_at BIGINT NOT NULL,
  UNIQUE (evaluation_id, enrollment_id)
);
`
