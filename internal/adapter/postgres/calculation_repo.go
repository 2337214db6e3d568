package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"nutricalc/internal/domain"
)

var _ domain.CalculationRepository = (*DB)(nil)

const selectCalculation = "SELECT id, patient_id, formula, get_kcal, input, result, created_at FROM calculations"

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
		`INSERT INTO calculations(id, patient_id, formula, get_kcal, input, result, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET patient_id = EXCLUDED.patient_id, formula = EXCLUDED.formula,
			get_kcal = EXCLUDED.get_kcal, input = EXCLUDED.input, result = EXCLUDED.result,
			created_at = EXCLUDED.created_at;`,
		rec.ID, rec.PatientID, string(rec.Formula), rec.GETKcal, input, result, rec.CreatedAt.UTC(),
	)
	return err
}

// GetCalculation returns the calculation with id, or nil if none exists.
func (d *DB) GetCalculation(ctx context.Context, id string) (*domain.CalculationRecord, error) {
	row := d.sql.QueryRowContext(ctx, selectCalculation+" WHERE id = $1;", id)
	rec, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecentCalculations returns the newest calculations for patientID.
func (d *DB) ListRecentCalculations(ctx context.Context, patientID string, limit int) ([]domain.CalculationRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		selectCalculation+" WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2;", patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CalculationRecord, 0, limit)
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(s scanner) (*domain.CalculationRecord, error) {
	var (
		rec           domain.CalculationRecord
		formula       string
		input, result []byte
	)
	if err := s.Scan(&rec.ID, &rec.PatientID, &formula, &rec.GETKcal, &input, &result, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodePayload(&rec, formula, input, result); err != nil {
		return nil, err
	}
	return &rec, nil
}
