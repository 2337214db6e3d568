// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"

	"nutricalc/internal/engine"
)

// ErrCalculationNotFound indicates that no calculation has the requested id.
var ErrCalculationNotFound = errors.New("calculation not found")

// CalculationRecord is one engine run kept for audit: the exact input, the
// result payload and the formula that produced it.
type CalculationRecord struct {
	ID        string         `json:"id"`
	PatientID string         `json:"patientId,omitempty"`
	Formula   engine.Formula `json:"formulaUsed"`
	GETKcal   int            `json:"getKcal"`
	Input     engine.Input   `json:"input"`
	Result    engine.Result  `json:"result"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CalculationRepository is the port for calculation history persistence.
// GetCalculation returns nil, nil when the id is unknown.
type CalculationRepository interface {
	SaveCalculation(ctx context.Context, rec CalculationRecord) error
	GetCalculation(ctx context.Context, id string) (*CalculationRecord, error)
	ListRecentCalculations(ctx context.Context, patientID string, limit int) ([]CalculationRecord, error)
}
