package adapthttp

import (
	"errors"
	"net/http"

	"nutricalc/internal/app"
	"nutricalc/internal/domain"
	"nutricalc/internal/engine"
)

// calculationRequest is the wire form of a calculation. Categorical fields
// accept the aliases understood by the engine parsers.
type calculationRequest struct {
	PatientID         string   `json:"patientId"`
	Weight            float64  `json:"weight"`
	WeightUnit        string   `json:"weightUnit"`
	Height            float64  `json:"height"`
	HeightUnit        string   `json:"heightUnit"`
	AgeYears          int      `json:"ageYears"`
	Sex               string   `json:"sex"`
	ActivityLevel     string   `json:"activityLevel"`
	Objective         string   `json:"objective"`
	Profile           string   `json:"profile"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	Formula           string   `json:"formula"`
}

// toInput converts units and resolves aliases. Empty categorical fields are
// passed through so validation reports them alongside other problems.
func (req calculationRequest) toInput() (engine.Input, error) {
	var in engine.Input
	var err error

	if in.WeightKg, err = domain.ToKilograms(req.Weight, req.WeightUnit); err != nil {
		return in, err
	}
	if in.HeightCm, err = domain.ToCentimeters(req.Height, req.HeightUnit); err != nil {
		return in, err
	}
	in.AgeYears = req.AgeYears
	in.BodyFatPercentage = req.BodyFatPercentage

	if req.Sex != "" {
		if in.Sex, err = engine.ParseSex(req.Sex); err != nil {
			return in, err
		}
	}
	if req.ActivityLevel != "" {
		if in.ActivityLevel, err = engine.ParseActivityLevel(req.ActivityLevel); err != nil {
			return in, err
		}
	}
	if req.Objective != "" {
		if in.Objective, err = engine.ParseObjective(req.Objective); err != nil {
			return in, err
		}
	}
	if req.Profile != "" {
		if in.Profile, err = engine.ParseProfile(req.Profile); err != nil {
			return in, err
		}
	}
	if in.Formula, err = engine.ParseFormula(req.Formula); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Server) handleCalculations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req calculationRequest
	if err := parseJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.calc.Calculate(r.Context(), req.PatientID, in)
	var verrs engine.ValidationErrors
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
	case errors.Is(err, app.ErrCalculationUnavailable):
		// Cause is logged by the service.
		writeError(w, http.StatusInternalServerError, app.ErrCalculationUnavailable)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleCalculationsRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := intQuery(r, "limit", 10)
	items, err := s.calc.ListRecent(r.Context(), r.URL.Query().Get("patientId"), limit)
	if errors.Is(err, app.ErrPatientRequired) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCalculationByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rec, err := s.calc.Get(r.Context(), r.URL.Query().Get("id"))
	if errors.Is(err, domain.ErrCalculationNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
