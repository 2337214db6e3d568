package postgres

import (
	"encoding/json"
	"fmt"

	"nutricalc/internal/domain"
	"nutricalc/internal/engine"
)

func decodePayload(rec *domain.CalculationRecord, formula string, input, result []byte) error {
	rec.Formula = engine.Formula(formula)
	if err := json.Unmarshal(input, &rec.Input); err != nil {
		return fmt.Errorf("decode input %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return fmt.Errorf("decode result %s: %w", rec.ID, err)
	}
	return nil
}
