package engine

import (
	"errors"
	"math"
)

// Formula identifies a BMR equation.
type Formula string

// Formula values.
const (
	HarrisBenedictRevised Formula = "harris_benedict_revised"
	HarrisBenedictClassic Formula = "harris_benedict_classic"
	MifflinStJeor         Formula = "mifflin_st_jeor"
	Owen                  Formula = "owen"
	KatchMcArdle          Formula = "katch_mcardle"
	Cunningham            Formula = "cunningham"
	Schofield             Formula = "schofield"
)

// ErrBodyFatRequired is returned by ComputeBMR when a lean-mass formula is
// evaluated without a body-fat percentage.
var ErrBodyFatRequired = errors.New("engine: formula requires body fat percentage")

// FormulaInfo describes a catalog entry for display and audit.
type FormulaInfo struct {
	ID              Formula `json:"id"`
	Name            string  `json:"name"`
	Reference       string  `json:"reference"`
	RequiresBodyFat bool    `json:"requiresBodyFat"`
}

// BMRResult is the basal metabolic rate and the formula that produced it.
type BMRResult struct {
	ValueKcal int     `json:"valueKcal"`
	Formula   Formula `json:"formulaUsed"`
}

type formulaSpec struct {
	info FormulaInfo
	// eval receives lean body mass in kg; it is zero unless RequiresBodyFat.
	eval func(in Input, lbm float64) float64
}

var formulaOrder = []Formula{
	HarrisBenedictRevised,
	HarrisBenedictClassic,
	MifflinStJeor,
	Owen,
	KatchMcArdle,
	Cunningham,
	Schofield,
}

var formulas = map[Formula]formulaSpec{
	HarrisBenedictRevised: {
		info: FormulaInfo{ID: HarrisBenedictRevised, Name: "Harris-Benedict (revised)", Reference: "Roza & Shizgal, 1984"},
		eval: func(in Input, _ float64) float64 {
			w, h, a := in.WeightKg, in.HeightCm, float64(in.AgeYears)
			if in.Sex == Male {
				return 88.362 + 13.397*w + 4.799*h - 5.677*a
			}
			return 447.593 + 9.247*w + 3.098*h - 4.330*a
		},
	},
	HarrisBenedictClassic: {
		info: FormulaInfo{ID: HarrisBenedictClassic, Name: "Harris-Benedict (original)", Reference: "Harris & Benedict, 1919"},
		eval: func(in Input, _ float64) float64 {
			w, h, a := in.WeightKg, in.HeightCm, float64(in.AgeYears)
			if in.Sex == Male {
				return 66.473 + 13.7516*w + 5.0033*h - 6.755*a
			}
			return 655.0955 + 9.5634*w + 1.8496*h - 4.6756*a
		},
	},
	MifflinStJeor: {
		info: FormulaInfo{ID: MifflinStJeor, Name: "Mifflin-St Jeor", Reference: "Mifflin et al., 1990"},
		eval: func(in Input, _ float64) float64 {
			base := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
			if in.Sex == Male {
				return base + 5
			}
			return base - 161
		},
	},
	Owen: {
		info: FormulaInfo{ID: Owen, Name: "Owen", Reference: "Owen et al., 1986/1987"},
		eval: func(in Input, _ float64) float64 {
			if in.Sex == Male {
				return 879 + 10.2*in.WeightKg
			}
			return 795 + 7.18*in.WeightKg
		},
	},
	KatchMcArdle: {
		info: FormulaInfo{ID: KatchMcArdle, Name: "Katch-McArdle", Reference: "Katch & McArdle, 1975", RequiresBodyFat: true},
		eval: func(_ Input, lbm float64) float64 {
			return 370 + 21.6*lbm
		},
	},
	Cunningham: {
		info: FormulaInfo{ID: Cunningham, Name: "Cunningham", Reference: "Cunningham, 1980", RequiresBodyFat: true},
		eval: func(_ Input, lbm float64) float64 {
			return 500 + 22*lbm
		},
	},
	Schofield: {
		info: FormulaInfo{ID: Schofield, Name: "Schofield (WHO)", Reference: "Schofield, 1985"},
		eval: schofield,
	},
}

// schofieldBands holds the weight-only WHO equations as slope/intercept pairs
// keyed by the upper age bound (exclusive) of each band.
var schofieldBands = map[Sex][]struct {
	maxAge           int
	slope, intercept float64
}{
	Male: {
		{3, 59.512, -30.4},
		{10, 22.706, 504.3},
		{18, 17.686, 658.2},
		{30, 15.057, 692.2},
		{60, 11.472, 873.1},
		{math.MaxInt, 11.711, 587.7},
	},
	Female: {
		{3, 58.317, -31.1},
		{10, 20.315, 485.9},
		{18, 13.384, 692.6},
		{30, 14.818, 486.6},
		{60, 8.126, 845.6},
		{math.MaxInt, 9.082, 658.5},
	},
}

func schofield(in Input, _ float64) float64 {
	for _, b := range schofieldBands[in.Sex] {
		if in.AgeYears < b.maxAge {
			return b.slope*in.WeightKg + b.intercept
		}
	}
	return 0
}

// Formulas returns the catalog in a fixed order.
func Formulas() []FormulaInfo {
	out := make([]FormulaInfo, 0, len(formulaOrder))
	for _, id := range formulaOrder {
		out = append(out, formulas[id].info)
	}
	return out
}

// LookupFormula returns the catalog entry for f.
func LookupFormula(f Formula) (FormulaInfo, bool) {
	spec, ok := formulas[f]
	return spec.info, ok
}

// SelectFormula picks the BMR formula. A non-empty override always wins;
// otherwise overweight/obese profiles use Mifflin-St Jeor and lean or athlete
// profiles use the revised Harris-Benedict equation. Sex never affects the
// choice.
func SelectFormula(profile Profile, override Formula) (Formula, error) {
	if override != "" {
		if _, ok := formulas[override]; !ok {
			return "", configErr("formula", override)
		}
		return override, nil
	}
	switch profile {
	case OverweightObese:
		return MifflinStJeor, nil
	case Lean, Athlete:
		return HarrisBenedictRevised, nil
	default:
		return "", configErr("profile", profile)
	}
}

// ComputeBMR evaluates formula f for in and rounds to the nearest kcal.
func ComputeBMR(in Input, f Formula) (BMRResult, error) {
	spec, ok := formulas[f]
	if !ok {
		return BMRResult{}, configErr("formula", f)
	}
	if !in.Sex.valid() {
		return BMRResult{}, configErr("sex", in.Sex)
	}
	var lbm float64
	if spec.info.RequiresBodyFat {
		if in.BodyFatPercentage == nil {
			return BMRResult{}, ErrBodyFatRequired
		}
		lbm = LeanBodyMass(in.WeightKg, *in.BodyFatPercentage)
	}
	return BMRResult{ValueKcal: round(spec.eval(in, lbm)), Formula: f}, nil
}

// LeanBodyMass returns weight × (1 − bodyFat/100) in kg.
func LeanBodyMass(weightKg, bodyFatPct float64) float64 {
	return weightKg * (1 - bodyFatPct/100)
}

func round(v float64) int {
	return int(math.Round(v))
}
