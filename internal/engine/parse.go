package engine

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alias tables map the spellings accepted at the input boundary (English
// and Portuguese) to the closed enums. Keys are normalised by normalizeAlias.
var (
	sexAliases = map[string]Sex{
		"male": Male, "m": Male, "masculino": Male, "homem": Male,
		"female": Female, "f": Female, "feminino": Female, "mulher": Female,
	}
	activityAliases = map[string]ActivityLevel{
		"sedentary": Sedentary, "sedentario": Sedentary,
		"light": Light, "leve": Light, "lightly_active": Light,
		"moderate": Moderate, "moderado": Moderate, "moderately_active": Moderate,
		"intense": Intense, "intenso": Intense, "active": Intense,
		"very_intense": VeryIntense, "muito_intenso": VeryIntense, "very_active": VeryIntense,
	}
	objectiveAliases = map[string]Objective{
		"maintain": Maintain, "manter": Maintain, "manutencao": Maintain,
		"lose": Lose, "perder": Lose, "emagrecer": Lose, "emagrecimento": Lose, "weight_loss": Lose,
		"gain": Gain, "ganhar": Gain, "hipertrofia": Gain, "weight_gain": Gain,
	}
	profileAliases = map[string]Profile{
		"lean": Lean, "magro": Lean, "eutrofico": Lean, "eutrophic": Lean,
		"overweight_obese": OverweightObese, "overweight": OverweightObese, "obese": OverweightObese,
		"sobrepeso": OverweightObese, "obeso": OverweightObese, "obesidade": OverweightObese,
		"athlete": Athlete, "atleta": Athlete,
	}
	formulaAliases = map[string]Formula{
		"harris_benedict_revised": HarrisBenedictRevised, "harris_benedict": HarrisBenedictRevised,
		"harris_benedict_classic": HarrisBenedictClassic, "harris_benedict_1919": HarrisBenedictClassic,
		"mifflin_st_jeor": MifflinStJeor, "mifflin": MifflinStJeor,
		"owen": Owen,
		"katch_mcardle": KatchMcArdle, "katch": KatchMcArdle,
		"cunningham": Cunningham,
		"schofield": Schofield, "who": Schofield, "oms": Schofield,
	}
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeAlias(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(folded)
}

func parseAlias[T any](kind, s string, table map[string]T) (T, error) {
	v, ok := table[normalizeAlias(s)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", kind, s)
	}
	return v, nil
}

// ParseSex maps a user-facing spelling onto Sex.
func ParseSex(s string) (Sex, error) { return parseAlias("sex", s, sexAliases) }

// ParseActivityLevel maps a user-facing spelling onto ActivityLevel.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	return parseAlias("activity level", s, activityAliases)
}

// ParseObjective maps a user-facing spelling onto Objective.
func ParseObjective(s string) (Objective, error) {
	return parseAlias("objective", s, objectiveAliases)
}

// ParseProfile maps a user-facing spelling onto Profile.
func ParseProfile(s string) (Profile, error) { return parseAlias("profile", s, profileAliases) }

// ParseFormula maps a user-facing spelling onto Formula. An empty string
// yields the empty Formula, meaning automatic selection.
func ParseFormula(s string) (Formula, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parseAlias("formula", s, formulaAliases)
}
