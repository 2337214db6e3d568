// Package sqlite implements the calculation repository on an embedded SQLite
// file for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nutricalc/internal/domain"
	"nutricalc/internal/engine"
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB implements domain.CalculationRepository on SQLite.
type DB struct {
	sql *sql.DB
}

var _ domain.CalculationRepository = (*DB)(nil)

// Open opens (creating if needed) the database at path and initialises the
// schema.
func Open(path string) (*DB, error) {
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY.
	s.SetMaxOpenConns(1)

	d := &DB{sql: s}
	if err := d.initSchema(context.Background()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		formula TEXT NOT NULL,
		get_kcal INTEGER NOT NULL,
		input TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calculations_patient_created ON calculations(patient_id, created_at);
	`
	_, err := d.sql.ExecContext(ctx, schema)
	return err
}

// SaveCalculation inserts rec, replacing an existing row with the same id.
func (d *DB) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	input, err := json.Marshal(rec.Input)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT OR REPLACE INTO calculations(id, patient_id, formula, get_kcal, input, result, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PatientID, string(rec.Formula), rec.GETKcal, string(input), string(result),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// GetCalculation returns the calculation with id, or nil if none exists.
func (d *DB) GetCalculation(ctx context.Context, id string) (*domain.CalculationRecord, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, patient_id, formula, get_kcal, input, result, created_at FROM calculations WHERE id = ?", id)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// ListRecentCalculations returns the newest calculations for patientID.
func (d *DB) ListRecentCalculations(ctx context.Context, patientID string, limit int) ([]domain.CalculationRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, patient_id, formula, get_kcal, input, result, created_at FROM calculations
		WHERE patient_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CalculationRecord, 0, limit)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scan(s interface{ Scan(dest ...any) error }) (*domain.CalculationRecord, error) {
	var (
		rec                    domain.CalculationRecord
		formula, input, result string
		createdAt              string
	)
	if err := s.Scan(&rec.ID, &rec.PatientID, &formula, &rec.GETKcal, &input, &result, &createdAt); err != nil {
		return nil, err
	}
	rec.Formula = engine.Formula(formula)
	if err := json.Unmarshal([]byte(input), &rec.Input); err != nil {
		return nil, fmt.Errorf("decode input %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", rec.ID, err)
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at %s: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return &rec, nil
}
