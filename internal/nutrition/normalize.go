package nutrition

import (
	"fmt"
	"strconv"

	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// Nutrient codes used by the Edamam totalNutrients map.
const (
	CodeSugar         = "SUGAR"
	CodeCarbsNet      = "CHOCDF.net"
	CodeFat           = "FAT"
	CodeProtein       = "PROCNT"
	CodeFiber         = "FIBTG"
	CodeCarbohydrates = "CHOCDF"
	CodeCholesterol   = "CHOLE"
	CodeSodium        = "NA"
)

// codes maps every non-calorie nutrient to its API code, in log order.
var codes = []struct {
	nutrient model.Nutrient
	code     string
}{
	{model.AddedSugars, CodeSugar},
	{model.Carbs, CodeCarbsNet},
	{model.Fats, CodeFat},
	{model.Protein, CodeProtein},
	{model.Fiber, CodeFiber},
	{model.Carbohydrates, CodeCarbohydrates},
	{model.Cholesterol, CodeCholesterol},
	{model.Sodium, CodeSodium},
}

// Options tune normalization.
type Options struct {
	// LegacyCarbsUnit gives Carbs the unit of the CHOCDF entry instead of its own
	// CHOCDF.net entry, matching logs written by earlier versions.
	LegacyCarbsUnit bool
}

// Normalize extracts the nine tracked nutrients from p. Every nutrient is
// present in the result; missing source entries become quantity 0 with an
// empty unit. A nil payload yields all-zero readings with unknown calories.
func Normalize(p *edamam.Payload, opts Options) model.Facts {
	if p == nil {
		p = &edamam.Payload{}
	}

	facts := make(model.Facts, 0, len(model.Nutrients))

	cal := model.Reading{Nutrient: model.Calories}
	if p.Calories != nil {
		cal.Quantity = *p.Calories
		cal.Known = true
	}
	facts = append(facts, cal)

	for _, c := range codes {
		amt := p.TotalNutrients[c.code]
		r := model.Reading{
			Nutrient: c.nutrient,
			Quantity: amt.Quantity,
			Unit:     amt.Unit,
			Known:    true,
		}
		if c.nutrient == model.Carbs && opts.LegacyCarbsUnit {
			r.Unit = p.TotalNutrients[CodeCarbohydrates].Unit
		}
		facts = append(facts, r)
	}

	return facts
}

// Describe renders one console line per reading, e.g. "Protein: 10 g".
func Describe(facts model.Facts) []string {
	lines := make([]string, 0, len(facts))
	for _, r := range facts {
		switch {
		case r.Nutrient == model.Calories && !r.Known:
			lines = append(lines, fmt.Sprintf("%s: unknown", r.Nutrient))
		case r.Nutrient == model.Calories:
			lines = append(lines, fmt.Sprintf("%s: %s %s", r.Nutrient, formatQuantity(r.Quantity), model.CaloriesUnit))
		case r.Unit == "":
			lines = append(lines, fmt.Sprintf("%s: %s", r.Nutrient, formatQuantity(r.Quantity)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s %s", r.Nutrient, formatQuantity(r.Quantity), r.Unit))
		}
	}
	return lines
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
