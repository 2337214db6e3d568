package engine

import "fmt"

// Input bounds.
const (
	MaxWeightKg = 500
	MaxHeightCm = 250
	MaxAgeYears = 120

	adultAge      = 18
	typicalMaxAge = 80
	minBMI        = 16
	maxBMI        = 40
)

// Input is one calculation request. The caller converts user-entered strings
// into typed values before building it.
type Input struct {
	WeightKg          float64       `json:"weightKg"`
	HeightCm          float64       `json:"heightCm"`
	AgeYears          int           `json:"ageYears"`
	Sex               Sex           `json:"sex"`
	ActivityLevel     ActivityLevel `json:"activityLevel"`
	Objective         Objective     `json:"objective"`
	Profile           Profile       `json:"profile"`
	BodyFatPercentage *float64      `json:"bodyFatPercentage,omitempty"`
	// Formula overrides the automatic profile-based choice when set.
	Formula Formula `json:"formula,omitempty"`
}

// BMI returns weight / height² with height in metres.
func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}

// Validate checks in and returns every violation at once. fallback is the
// deployment-level formula (empty for automatic selection); it decides
// whether body fat is required when the input carries no override. Warnings
// are only meaningful when the returned ValidationErrors is empty.
func Validate(in Input, fallback Formula) ([]Warning, ValidationErrors) {
	var errs ValidationErrors
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if !(in.WeightKg > 0 && in.WeightKg <= MaxWeightKg) {
		add("weightKg", CodeOutOfRange, "must be greater than 0 and at most %d kg", MaxWeightKg)
	}
	if !(in.HeightCm > 0 && in.HeightCm <= MaxHeightCm) {
		add("heightCm", CodeOutOfRange, "must be greater than 0 and at most %d cm", MaxHeightCm)
	}
	if in.AgeYears <= 0 || in.AgeYears > MaxAgeYears {
		add("ageYears", CodeOutOfRange, "must be between 1 and %d years", MaxAgeYears)
	}
	if !in.Sex.valid() {
		add("sex", CodeUnknown, "must be %q or %q", Male, Female)
	}
	if !in.ActivityLevel.valid() {
		add("activityLevel", CodeUnknown, "unknown activity level %q", in.ActivityLevel)
	}
	if !in.Objective.valid() {
		add("objective", CodeUnknown, "unknown objective %q", in.Objective)
	}
	if !in.Profile.valid() {
		add("profile", CodeUnknown, "unknown profile %q", in.Profile)
	}

	formula := in.Formula
	if formula == "" {
		formula = fallback
	}
	info, known := LookupFormula(formula)
	if formula != "" && !known {
		add("formula", CodeUnknown, "unknown formula %q", formula)
	}

	bf := in.BodyFatPercentage
	switch {
	case bf != nil && !(*bf >= 0 && *bf <= 100):
		add("bodyFatPercentage", CodeOutOfRange, "must be between 0 and 100")
	case bf == nil && info.RequiresBodyFat:
		add("bodyFatPercentage", CodeRequired, "required by formula %s", info.ID)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	var warnings []Warning
	if in.AgeYears < adultAge {
		warnings = append(warnings, Warning{Code: WarnAgeBelowAdult,
			Message: fmt.Sprintf("age %d is below %d; adult equations may not apply", in.AgeYears, adultAge)})
	}
	if in.AgeYears > typicalMaxAge {
		warnings = append(warnings, Warning{Code: WarnAgeAboveTypical,
			Message: fmt.Sprintf("age %d is above %d; equations are less accurate", in.AgeYears, typicalMaxAge)})
	}
	if bmi := BMI(in.WeightKg, in.HeightCm); bmi < minBMI || bmi > maxBMI {
		warnings = append(warnings, Warning{Code: WarnBMIOutOfRange,
			Message: fmt.Sprintf("BMI %.1f is outside %d-%d", bmi, minBMI, maxBMI)})
	}
	return warnings, nil
}
