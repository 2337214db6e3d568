// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"nutricalc/internal/domain"
)

// DB implements an in-memory calculation store.
type DB struct {
	mu           sync.Mutex
	calculations map[string]domain.CalculationRecord
	byPatient    map[string][]string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		calculations: make(map[string]domain.CalculationRecord),
		byPatient:    make(map[string][]string),
	}
}

var _ domain.CalculationRepository = (*DB)(nil)

// SaveCalculation stores rec, replacing any record with the same id.
func (db *DB) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.calculations[rec.ID]; !exists {
		db.byPatient[rec.PatientID] = append(db.byPatient[rec.PatientID], rec.ID)
	}
	db.calculations[rec.ID] = rec
	return nil
}

// GetCalculation returns the record with id, or nil if none exists.
func (db *DB) GetCalculation(ctx context.Context, id string) (*domain.CalculationRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rec, ok := db.calculations[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ListRecentCalculations returns the newest records for patientID.
func (db *DB) ListRecentCalculations(ctx context.Context, patientID string, limit int) ([]domain.CalculationRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ids := db.byPatient[patientID]
	result := make([]domain.CalculationRecord, 0, len(ids))
	for _, id := range ids {
		result = append(result, db.calculations[id])
	}

	// newest first; insertion order breaks ties
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
