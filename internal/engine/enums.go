// Package engine implements the nutritional calculation pipeline: input
// validation, basal metabolic rate, activity and objective adjustment, the
// macronutrient split and the daily meal breakdown.
//
// Everything in this package is pure. An Engine holds only an immutable
// Config and is safe for concurrent use.
package engine

// Sex is the biological sex used by the BMR equations.
type Sex string

// Sex values.
const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ActivityLevel selects the activity factor applied to BMR.
type ActivityLevel string

// ActivityLevel values.
const (
	Sedentary   ActivityLevel = "sedentary"
	Light       ActivityLevel = "light"
	Moderate    ActivityLevel = "moderate"
	Intense     ActivityLevel = "intense"
	VeryIntense ActivityLevel = "very_intense"
)

// Objective is the caloric goal applied on top of GEA.
type Objective string

// Objective values.
const (
	Maintain Objective = "maintain"
	Lose     Objective = "lose"
	Gain     Objective = "gain"
)

// Profile is the body-composition category that drives formula and protein
// ratio selection.
type Profile string

// Profile values.
const (
	Lean            Profile = "lean"
	OverweightObese Profile = "overweight_obese"
	Athlete         Profile = "athlete"
)

// AdjustmentModel selects how an objective changes GEA into GET.
type AdjustmentModel string

// AdjustmentModel values.
const (
	// Additive applies a fixed kcal delta with a safety floor on deficits.
	Additive AdjustmentModel = "additive"
	// Multiplicative scales GEA by a per-objective factor.
	Multiplicative AdjustmentModel = "multiplicative"
)

func (s Sex) valid() bool {
	return s == Male || s == Female
}

func (a ActivityLevel) valid() bool {
	_, ok := activityFactors[a]
	return ok
}

func (o Objective) valid() bool {
	return o == Maintain || o == Lose || o == Gain
}

func (p Profile) valid() bool {
	_, ok := proteinPerKg[p]
	return ok
}

func (m AdjustmentModel) valid() bool {
	return m == Additive || m == Multiplicative
}
