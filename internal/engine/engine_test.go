package engine_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"nutricalc/internal/engine"
)

// scenarioInput is a 30 year old lean male, 70 kg and 175 cm, moderately
// active, maintaining weight.
func scenarioInput() engine.Input {
	return engine.Input{
		WeightKg:      70,
		HeightCm:      175,
		AgeYears:      30,
		Sex:           engine.Male,
		ActivityLevel: engine.Moderate,
		Objective:     engine.Maintain,
		Profile:       engine.Lean,
	}
}

func mustPreset(t *testing.T, name string) engine.Config {
	t.Helper()
	cfg, err := engine.Preset(name)
	if err != nil {
		t.Fatalf("preset %s: %v", name, err)
	}
	return cfg
}

func mustEngine(t *testing.T, name string) *engine.Engine {
	t.Helper()
	e, err := engine.New(mustPreset(t, name))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestCalculate_LeanMaintain(t *testing.T) {
	res, err := mustEngine(t, engine.PresetStandard).Calculate(scenarioInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formula != engine.HarrisBenedictRevised || res.BMR.Formula != res.Formula {
		t.Errorf("formula = %q / %q", res.Formula, res.BMR.Formula)
	}
	if res.BMR.ValueKcal != 1696 {
		t.Errorf("BMR = %d; want 1696", res.BMR.ValueKcal)
	}
	if res.Energy.GEAKcal != 2629 || res.Energy.GETKcal != 2629 || res.Energy.AdjustmentKcal != 0 {
		t.Errorf("energy = %+v", res.Energy)
	}
	m := res.Macros
	if m.Protein.Grams != 126 || m.Protein.Kcal != 504 {
		t.Errorf("protein = %+v", m.Protein)
	}
	if m.Fat.Kcal != 657 || m.Fat.Grams != 73 {
		t.Errorf("fat = %+v", m.Fat)
	}
	if m.Carbs.Kcal != 1468 || m.Carbs.Grams != 367 {
		t.Errorf("carbs = %+v", m.Carbs)
	}
	if len(res.Meals) != 6 {
		t.Errorf("expected 6 meals, got %d", len(res.Meals))
	}
	if res.BMI != 22.9 {
		t.Errorf("BMI = %v; want 22.9", res.BMI)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestCalculate_LeanLoseAboveFloor(t *testing.T) {
	in := scenarioInput()
	in.Objective = engine.Lose
	res, err := mustEngine(t, engine.PresetStandard).Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Energy.GETKcal != 2129 || res.Energy.AdjustmentKcal != -500 || res.Energy.FloorApplied {
		t.Errorf("energy = %+v", res.Energy)
	}
	if hasCode(res.Warnings, engine.WarnFloorApplied) {
		t.Error("floor warning must not be emitted above the floor")
	}
}

func TestCalculate_ObeseLoseClamped(t *testing.T) {
	in := engine.Input{
		WeightKg:      50,
		HeightCm:      150,
		AgeYears:      70,
		Sex:           engine.Female,
		ActivityLevel: engine.Sedentary,
		Objective:     engine.Lose,
		Profile:       engine.OverweightObese,
	}
	res, err := mustEngine(t, engine.PresetStandard).Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formula != engine.MifflinStJeor {
		t.Errorf("formula = %q; want mifflin", res.Formula)
	}
	if res.BMR.ValueKcal != 927 {
		t.Errorf("BMR = %d; want 927", res.BMR.ValueKcal)
	}
	if res.Energy.GEAKcal != 1112 {
		t.Errorf("GEA = %d; want 1112", res.Energy.GEAKcal)
	}
	if res.Energy.GETKcal != 1200 || !res.Energy.FloorApplied {
		t.Errorf("energy = %+v; want clamped to 1200", res.Energy)
	}
	if !hasCode(res.Warnings, engine.WarnFloorApplied) {
		t.Errorf("expected floor warning, got %v", res.Warnings)
	}
}

func TestCalculate_ValidationShortCircuits(t *testing.T) {
	in := scenarioInput()
	in.WeightKg = 0
	res, err := mustEngine(t, engine.PresetStandard).Calculate(in)
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}
	var verrs engine.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "weightKg" {
		t.Fatalf("expected one weightKg error, got %v", verrs)
	}
}

func TestCalculate_NonPositiveBMR(t *testing.T) {
	// 5 kg, 50 cm, 120 y passes every field bound and has a BMI of 20, but
	// revised Harris-Benedict gives -286 kcal.
	in := engine.Input{
		WeightKg:      5,
		HeightCm:      50,
		AgeYears:      120,
		Sex:           engine.Male,
		ActivityLevel: engine.Sedentary,
		Objective:     engine.Maintain,
		Profile:       engine.Lean,
	}
	if _, errs := engine.Validate(in, ""); len(errs) != 0 {
		t.Fatalf("input should pass field validation: %v", errs)
	}

	for _, preset := range []string{engine.PresetStandard, engine.PresetPercentage, engine.PresetMifflin} {
		t.Run(preset, func(t *testing.T) {
			res, err := mustEngine(t, preset).Calculate(in)
			if res != nil {
				t.Fatalf("expected no result, got BMR %d GET %d", res.BMR.ValueKcal, res.Energy.GETKcal)
			}
			var verrs engine.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if len(verrs) != 1 || verrs[0].Field != "bmr" || verrs[0].Code != engine.CodeOutOfRange {
				t.Fatalf("expected one bmr/out_of_range error, got %v", verrs)
			}
		})
	}
}

func TestCalculate_OverrideFormula(t *testing.T) {
	in := scenarioInput()
	in.Formula = engine.KatchMcArdle
	in.BodyFatPercentage = ptr(15)
	res, err := mustEngine(t, engine.PresetStandard).Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formula != engine.KatchMcArdle {
		t.Errorf("formula = %q; want katch_mcardle", res.Formula)
	}
	// LBM 59.5 kg -> 370 + 21.6*59.5 = 1655.2
	if res.BMR.ValueKcal != 1655 {
		t.Errorf("BMR = %d; want 1655", res.BMR.ValueKcal)
	}
	if res.LeanBodyMassKg == nil || *res.LeanBodyMassKg != 59.5 {
		t.Errorf("lean body mass = %v; want 59.5", res.LeanBodyMassKg)
	}
}

func TestCalculate_PresetFormula(t *testing.T) {
	res, err := mustEngine(t, engine.PresetMifflin).Calculate(scenarioInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Formula != engine.MifflinStJeor || res.BMR.ValueKcal != 1649 {
		t.Errorf("got %q %d; want mifflin 1649", res.Formula, res.BMR.ValueKcal)
	}
	if res.Config.Name != engine.PresetMifflin {
		t.Errorf("config = %+v", res.Config)
	}
}

func TestCalculate_MultiplicativePreset(t *testing.T) {
	in := scenarioInput()
	in.Objective = engine.Lose
	res, err := mustEngine(t, engine.PresetPercentage).Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Energy.GETKcal != 2103 || res.Energy.AdjustmentKcal != -526 {
		t.Errorf("energy = %+v; want GET 2103", res.Energy)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	e := mustEngine(t, engine.PresetStandard)
	in := scenarioInput()
	in.BodyFatPercentage = ptr(18)
	a, err := e.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if !bytes.Equal(ja, jb) {
		t.Fatalf("outputs differ:\n%s\n%s", ja, jb)
	}
}

func TestCalculate_Properties(t *testing.T) {
	e := mustEngine(t, engine.PresetStandard)
	levels := []engine.ActivityLevel{engine.Sedentary, engine.Light, engine.Moderate, engine.Intense, engine.VeryIntense}
	profiles := []engine.Profile{engine.Lean, engine.OverweightObese, engine.Athlete}

	for _, w := range []float64{48, 65, 82, 110} {
		for _, age := range []int{20, 45, 75} {
			for _, lvl := range levels {
				for _, p := range profiles {
					for _, sex := range []engine.Sex{engine.Male, engine.Female} {
						in := engine.Input{WeightKg: w, HeightCm: 168, AgeYears: age, Sex: sex,
							ActivityLevel: lvl, Objective: engine.Lose, Profile: p}
						res, err := e.Calculate(in)
						if err != nil {
							t.Fatalf("%+v: %v", in, err)
						}
						if res.Energy.GETKcal < min(res.BMR.ValueKcal, engine.MinGETKcal) {
							t.Fatalf("%+v: GET %d below floor", in, res.Energy.GETKcal)
						}
						if hasCode(res.Warnings, engine.WarnCarbsClamped) {
							continue
						}
						m := res.Macros
						if diff := m.Protein.Kcal + m.Carbs.Kcal + m.Fat.Kcal - res.Energy.GETKcal; diff < -1 || diff > 1 {
							t.Fatalf("%+v: macro kcal off by %d", in, diff)
						}
					}
				}
			}
		}
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	var cfgErr *engine.ConfigurationError
	if _, err := engine.New(engine.Config{Adjustment: "sometimes"}); !errors.As(err, &cfgErr) {
		t.Errorf("bad model: expected ConfigurationError, got %v", err)
	}
	if _, err := engine.New(engine.Config{Adjustment: engine.Additive, Formula: "galen"}); !errors.As(err, &cfgErr) {
		t.Errorf("bad formula: expected ConfigurationError, got %v", err)
	}
	if _, err := engine.Preset("legacy"); !errors.As(err, &cfgErr) {
		t.Errorf("bad preset: expected ConfigurationError, got %v", err)
	}
}

func TestPresetNames(t *testing.T) {
	names := engine.PresetNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, n := range names {
		cfg := mustPreset(t, n)
		if cfg.Name != n {
			t.Errorf("preset %s has name %s", n, cfg.Name)
		}
	}
}
