// Package postgres stores calculation records in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB implements domain.CalculationRepository on PostgreSQL.
type DB struct {
	sql *sql.DB
}

// Pool and startup limits.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	startupTimeout  = 5 * time.Second
)

// Open connects to PostgreSQL, waits for the server to answer and creates
// the calculations table if missing.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	s.SetMaxOpenConns(maxOpenConns)
	s.SetMaxIdleConns(maxIdleConns)
	s.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	d := &DB{sql: s}
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calculations (
			id UUID PRIMARY KEY,
			patient_id TEXT NOT NULL,
			formula TEXT NOT NULL,
			get_kcal INTEGER NOT NULL,
			input JSONB NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_calculations_patient_created ON calculations(patient_id, created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_calculations_formula ON calculations(formula);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
