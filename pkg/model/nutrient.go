package model

// Nutrient names a tracked nutrient. The values double as the Nutrient column
// of the log file.
type Nutrient string

const (
	Calories      Nutrient = "Calories"
	AddedSugars   Nutrient = "Added Sugars"
	Carbs         Nutrient = "Carbs"
	Fats          Nutrient = "Fats"
	Protein       Nutrient = "Protein"
	Fiber         Nutrient = "Fiber"
	Carbohydrates Nutrient = "Carbohydrates"
	Cholesterol   Nutrient = "Cholesterol"
	Sodium        Nutrient = "Sodium"
)

// Nutrients is the fixed set of nutrients, in log order.
var Nutrients = []Nutrient{
	Calories, AddedSugars, Carbs, Fats, Protein, Fiber, Carbohydrates, Cholesterol, Sodium,
}

// DefaultDisplay lists the nutrients drawn in the breakdown chart. "Sugars" is
// never written by nutrilog; it stays so hand-edited logs using that name chart.
var DefaultDisplay = []Nutrient{
	Protein, Carbohydrates, Fats, Fiber, "Sugars", Cholesterol, Sodium, AddedSugars,
}

// CaloriesUnit is the unit written for calorie rows.
const CaloriesUnit = "Cals"

// ZeroUnit is the unit written for readings with a zero quantity.
const ZeroUnit = "g"

// NutrientNames converts nutrients to plain strings.
func NutrientNames(ns []Nutrient) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = string(n)
	}
	return out
}

// ParseNutrients converts plain strings to nutrients without validating them.
func ParseNutrients(names []string) []Nutrient {
	out := make([]Nutrient, len(names))
	for i, n := range names {
		out[i] = Nutrient(n)
	}
	return out
}
