package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonPositiveTarget is returned by ComputeMacros for a GET of zero or less.
var ErrNonPositiveTarget = errors.New("engine: energy target must be positive")

// Energy density in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	// FatShare is the fixed fraction of GET assigned to fat.
	FatShare = 0.25
)

// proteinPerKg holds grams of protein per kg of body weight for each profile.
var proteinPerKg = map[Profile]float64{
	Lean:            1.8,
	OverweightObese: 2.0,
	Athlete:         2.2,
}

// Macro is one macronutrient of a split.
type Macro struct {
	Grams      int     `json:"grams"`
	Kcal       int     `json:"kcal"`
	Percentage float64 `json:"percentage"`
}

// MacroSplit divides GET into protein, carbohydrate and fat. Protein.Kcal +
// Carbs.Kcal + Fat.Kcal equals GET unless carbohydrate was clamped to zero.
type MacroSplit struct {
	Protein      Macro   `json:"protein"`
	Carbs        Macro   `json:"carbs"`
	Fat          Macro   `json:"fat"`
	ProteinPerKg float64 `json:"proteinPerKg"`
}

// ProteinPerKg returns the protein ratio for profile.
func ProteinPerKg(profile Profile) (float64, bool) {
	r, ok := proteinPerKg[profile]
	return r, ok
}

// ComputeMacros splits getKcal. The order is fixed: protein from body weight,
// fat as a share of GET, carbohydrate as the remainder. No gram or kcal value
// in the result is negative.
func ComputeMacros(getKcal int, weightKg float64, profile Profile) (MacroSplit, []Warning, error) {
	ratio, ok := proteinPerKg[profile]
	if !ok {
		return MacroSplit{}, nil, configErr("profile", profile)
	}
	if getKcal <= 0 {
		return MacroSplit{}, nil, ErrNonPositiveTarget
	}

	proteinGrams := round(ratio * weightKg)
	proteinKcal := proteinGrams * kcalPerGramProtein

	fatKcal := round(float64(getKcal) * FatShare)
	fatGrams := round(float64(fatKcal) / kcalPerGramFat)

	var warnings []Warning
	carbsKcal := getKcal - proteinKcal - fatKcal
	if carbsKcal < 0 {
		warnings = append(warnings, Warning{Code: WarnCarbsClamped,
			Message: fmt.Sprintf("protein (%d kcal) and fat (%d kcal) exceed the %d kcal target by %d kcal; carbohydrate set to 0",
				proteinKcal, fatKcal, getKcal, -carbsKcal)})
		carbsKcal = 0
	}
	carbsGrams := max(0, round(float64(carbsKcal)/kcalPerGramCarbs))

	split := MacroSplit{
		Protein:      Macro{Grams: proteinGrams, Kcal: proteinKcal, Percentage: share(proteinKcal, getKcal)},
		Carbs:        Macro{Grams: carbsGrams, Kcal: carbsKcal, Percentage: share(carbsKcal, getKcal)},
		Fat:          Macro{Grams: fatGrams, Kcal: fatKcal, Percentage: share(fatKcal, getKcal)},
		ProteinPerKg: ratio,
	}
	return split, warnings, nil
}

// share returns part/total as a percentage with one decimal.
func share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
