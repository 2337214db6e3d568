package engine

import (
	"fmt"
	"strings"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors is the complete list of input violations found by
// Validate. It is returned as an error by Calculate; no arithmetic runs when
// it is non-empty.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Validation error codes.
const (
	CodeOutOfRange = "out_of_range"
	CodeRequired   = "required"
	CodeUnknown    = "unknown_value"
)

// Warning is an advisory attached to a successful result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnAgeBelowAdult   = "age_below_adult"
	WarnAgeAboveTypical = "age_above_typical"
	WarnBMIOutOfRange   = "bmi_out_of_range"
	WarnFloorApplied    = "get_floor_applied"
	WarnCarbsClamped    = "carbs_clamped"
)

// ConfigurationError reports an enum value that should never reach the
// calculation stages. It indicates a caller bug rather than bad user input.
type ConfigurationError struct {
	Kind  string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine: unknown %s %q", e.Kind, e.Value)
}

func configErr(kind string, value any) error {
	return &ConfigurationError{Kind: kind, Value: fmt.Sprint(value)}
}
