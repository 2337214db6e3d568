package engine

// activityFactors is the single activity multiplier table. It is identical
// for every profile.
var activityFactors = map[ActivityLevel]float64{
	Sedentary:   1.2,
	Light:       1.375,
	Moderate:    1.55,
	Intense:     1.725,
	VeryIntense: 1.9,
}

// Additive model constants.
const (
	LoseDeltaKcal = -500
	GainDeltaKcal = 400
	MinGETKcal    = 1200
)

var multiplicativeFactors = map[Objective]float64{
	Maintain: 1.0,
	Lose:     0.8,
	Gain:     1.15,
}

// EnergyExpenditure holds the activity-adjusted and objective-adjusted
// expenditure. AdjustmentKcal is GET - GEA.
type EnergyExpenditure struct {
	GEAKcal        int  `json:"geaKcal"`
	GETKcal        int  `json:"getKcal"`
	AdjustmentKcal int  `json:"adjustmentKcal"`
	FloorApplied   bool `json:"floorApplied"`
}

// ActivityFactor returns the multiplier for level.
func ActivityFactor(level ActivityLevel) (float64, bool) {
	f, ok := activityFactors[level]
	return f, ok
}

// ComputeGEA returns round(bmr × factor).
func ComputeGEA(bmrKcal int, level ActivityLevel) (int, error) {
	f, ok := activityFactors[level]
	if !ok {
		return 0, configErr("activity level", level)
	}
	return round(float64(bmrKcal) * f), nil
}

// ComputeGET applies the objective to gea under model. In the additive model
// a deficit never drops below max(bmr, MinGETKcal); the multiplicative model
// has no floor.
func ComputeGET(gea int, objective Objective, bmr int, model AdjustmentModel) (EnergyExpenditure, error) {
	if !objective.valid() {
		return EnergyExpenditure{}, configErr("objective", objective)
	}

	e := EnergyExpenditure{GEAKcal: gea}
	switch model {
	case Additive:
		switch objective {
		case Maintain:
			e.GETKcal = gea
		case Lose:
			e.GETKcal = gea + LoseDeltaKcal
			if floor := max(bmr, MinGETKcal); e.GETKcal < floor {
				e.GETKcal = floor
				e.FloorApplied = true
			}
		case Gain:
			e.GETKcal = gea + GainDeltaKcal
		}
	case Multiplicative:
		e.GETKcal = round(float64(gea) * multiplicativeFactors[objective])
	default:
		return EnergyExpenditure{}, configErr("adjustment model", model)
	}
	e.AdjustmentKcal = e.GETKcal - e.GEAKcal
	return e, nil
}
