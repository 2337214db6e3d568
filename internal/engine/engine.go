package engine

import (
	"fmt"
	"math"
	"sort"
)

// Config fixes the formula policy and adjustment model of a deployment.
type Config struct {
	Name string `json:"name"`
	// Formula forces a BMR formula for every request without an override.
	// Empty means automatic profile-based selection.
	Formula      Formula         `json:"formula,omitempty"`
	Adjustment   AdjustmentModel `json:"adjustment"`
	IncludeMeals bool            `json:"includeMeals"`
}

// Preset names.
const (
	PresetStandard      = "standard"
	PresetPercentage    = "percentage"
	PresetMifflin       = "mifflin"
	PresetClassicHarris = "harris_benedict_classic"
	DefaultPresetName   = PresetStandard
)

var presets = map[string]Config{
	PresetStandard:      {Name: PresetStandard, Adjustment: Additive, IncludeMeals: true},
	PresetPercentage:    {Name: PresetPercentage, Adjustment: Multiplicative, IncludeMeals: true},
	PresetMifflin:       {Name: PresetMifflin, Formula: MifflinStJeor, Adjustment: Additive, IncludeMeals: true},
	PresetClassicHarris: {Name: PresetClassicHarris, Formula: HarrisBenedictClassic, Adjustment: Additive, IncludeMeals: true},
}

// Preset returns the named configuration.
func Preset(name string) (Config, error) {
	cfg, ok := presets[name]
	if !ok {
		return Config{}, configErr("preset", name)
	}
	return cfg, nil
}

// PresetNames returns the known preset names sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Result is the full output of one calculation.
type Result struct {
	Formula        Formula           `json:"formulaUsed"`
	BMR            BMRResult         `json:"bmr"`
	Energy         EnergyExpenditure `json:"energy"`
	Macros         MacroSplit        `json:"macros"`
	Meals          []MealAllocation  `json:"meals,omitempty"`
	BMI            float64           `json:"bmi"`
	LeanBodyMassKg *float64          `json:"leanBodyMassKg,omitempty"`
	Warnings       []Warning         `json:"warnings"`
	Config         Config            `json:"config"`
}

// Engine runs the pipeline under one Config.
type Engine struct {
	cfg Config
}

// New returns an Engine for cfg.
func New(cfg Config) (*Engine, error) {
	if !cfg.Adjustment.valid() {
		return nil, configErr("adjustment model", cfg.Adjustment)
	}
	if cfg.Formula != "" {
		if _, ok := formulas[cfg.Formula]; !ok {
			return nil, configErr("formula", cfg.Formula)
		}
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Calculate validates in and runs every stage in order. A ValidationErrors
// error means no result was produced: a field was rejected, or the
// measurements give a BMR of zero or less. A *ConfigurationError means a
// stage met a value it does not know.
func (e *Engine) Calculate(in Input) (*Result, error) {
	warnings, verrs := Validate(in, e.cfg.Formula)
	if len(verrs) > 0 {
		return nil, verrs
	}

	override := in.Formula
	if override == "" {
		override = e.cfg.Formula
	}
	formula, err := SelectFormula(in.Profile, override)
	if err != nil {
		return nil, err
	}

	bmr, err := ComputeBMR(in, formula)
	if err != nil {
		return nil, fmt.Errorf("bmr: %w", err)
	}
	if bmr.ValueKcal <= 0 {
		// Extreme combinations inside the field bounds can land here.
		return nil, ValidationErrors{{Field: "bmr", Code: CodeOutOfRange,
			Message: fmt.Sprintf("%s evaluates to %d kcal for these measurements", formula, bmr.ValueKcal)}}
	}

	gea, err := ComputeGEA(bmr.ValueKcal, in.ActivityLevel)
	if err != nil {
		return nil, err
	}

	energy, err := ComputeGET(gea, in.Objective, bmr.ValueKcal, e.cfg.Adjustment)
	if err != nil {
		return nil, err
	}
	if energy.FloorApplied {
		warnings = append(warnings, Warning{Code: WarnFloorApplied,
			Message: fmt.Sprintf("deficit target raised to the %d kcal safety floor", energy.GETKcal)})
	}

	macros, macroWarnings, err := ComputeMacros(energy.GETKcal, in.WeightKg, in.Profile)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, macroWarnings...)

	res := &Result{
		Formula:  formula,
		BMR:      bmr,
		Energy:   energy,
		Macros:   macros,
		BMI:      math.Round(BMI(in.WeightKg, in.HeightCm)*10) / 10,
		Warnings: warnings,
		Config:   e.cfg,
	}
	if res.Warnings == nil {
		res.Warnings = []Warning{}
	}
	if in.BodyFatPercentage != nil {
		lbm := math.Round(LeanBodyMass(in.WeightKg, *in.BodyFatPercentage)*10) / 10
		res.LeanBodyMassKg = &lbm
	}
	if e.cfg.IncludeMeals {
		res.Meals = DistributeMeals(energy.GETKcal, macros)
	}
	return res, nil
}
