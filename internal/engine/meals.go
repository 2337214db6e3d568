package engine

// MealAllocation is one entry of the daily meal breakdown.
type MealAllocation struct {
	Name         string `json:"name"`
	TimeOfDay    string `json:"timeOfDay"`
	Percentage   int    `json:"percentage"`
	Calories     int    `json:"calories"`
	ProteinGrams int    `json:"proteinGrams"`
	CarbsGrams   int    `json:"carbsGrams"`
	FatGrams     int    `json:"fatGrams"`
}

type mealSlot struct {
	name       string
	timeOfDay  string
	percentage int
}

// mealSchedule percentages sum to 100.
var mealSchedule = [...]mealSlot{
	{"Breakfast", "07:00", 25},
	{"Morning Snack", "10:00", 10},
	{"Lunch", "12:30", 30},
	{"Afternoon Snack", "15:30", 10},
	{"Dinner", "19:00", 20},
	{"Evening Snack", "21:30", 5},
}

// DistributeMeals apportions the day's calories and macro grams across the
// fixed schedule. Each value is rounded independently, so totals may differ
// from the day's figures by a few units.
func DistributeMeals(getKcal int, macros MacroSplit) []MealAllocation {
	out := make([]MealAllocation, 0, len(mealSchedule))
	for _, slot := range mealSchedule {
		portion := func(total int) int {
			return round(float64(total*slot.percentage) / 100)
		}
		out = append(out, MealAllocation{
			Name:         slot.name,
			TimeOfDay:    slot.timeOfDay,
			Percentage:   slot.percentage,
			Calories:     portion(getKcal),
			ProteinGrams: portion(macros.Protein.Grams),
			CarbsGrams:   portion(macros.Carbs.Grams),
			FatGrams:     portion(macros.Fat.Grams),
		})
	}
	return out
}
