// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nutricalc/internal/domain"
	"nutricalc/internal/engine"

	"github.com/google/uuid"
)

const maxRecentLimit = 100

var (
	// ErrCalculationUnavailable is what end users see when the engine hits a
	// configuration error. The underlying *engine.ConfigurationError stays in
	// the error chain.
	ErrCalculationUnavailable = errors.New("calculation unavailable")
	// ErrPatientRequired indicates that a history query had no patient id.
	ErrPatientRequired = errors.New("patientId is required")
)

// Calculator is the engine surface the service depends on. *engine.Engine
// implements it.
type Calculator interface {
	Calculate(in engine.Input) (*engine.Result, error)
	Config() engine.Config
}

// CalculatorService runs the nutritional engine and keeps an audit history of
// calculations made for a patient.
type CalculatorService struct {
	engine Calculator
	repo   domain.CalculationRepository
	now    func() time.Time
}

// NewCalculatorService creates a CalculatorService backed by the given engine
// and repository.
func NewCalculatorService(e Calculator, repo domain.CalculationRepository) *CalculatorService {
	return &CalculatorService{engine: e, repo: repo, now: time.Now}
}

// Calculate runs the engine for in. Validation failures are returned as
// engine.ValidationErrors. When patientID is set the record is stored so the
// formula used can be audited later.
func (s *CalculatorService) Calculate(ctx context.Context, patientID string, in engine.Input) (*domain.CalculationRecord, error) {
	res, err := s.engine.Calculate(in)
	if err != nil {
		var verrs engine.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		log.Printf("calculate: preset=%s: %v", s.engine.Config().Name, err)
		return nil, fmt.Errorf("%w: %w", ErrCalculationUnavailable, err)
	}

	rec := domain.CalculationRecord{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Formula:   res.Formula,
		GETKcal:   res.Energy.GETKcal,
		Input:     in,
		Result:    *res,
		CreatedAt: s.now().UTC(),
	}
	if patientID == "" {
		return &rec, nil
	}
	if err := s.repo.SaveCalculation(ctx, rec); err != nil {
		return nil, fmt.Errorf("save calculation: %w", err)
	}
	return &rec, nil
}

// Get returns a stored calculation by id.
func (s *CalculatorService) Get(ctx context.Context, id string) (*domain.CalculationRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCalculationNotFound
	}
	rec, err := s.repo.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrCalculationNotFound
	}
	return rec, nil
}

// ListRecent returns the newest calculations for a patient, at most limit
// (clamped to 1..100).
func (s *CalculatorService) ListRecent(ctx context.Context, patientID string, limit int) ([]domain.CalculationRecord, error) {
	if patientID == "" {
		return nil, ErrPatientRequired
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.repo.ListRecentCalculations(ctx, patientID, limit)
}

// Formulas returns the BMR formula catalog.
func (s *CalculatorService) Formulas() []engine.FormulaInfo {
	return engine.Formulas()
}

// Config returns the active engine configuration.
func (s *CalculatorService) Config() engine.Config {
	return s.engine.Config()
}
