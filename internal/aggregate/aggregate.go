package aggregate

import (
	"sort"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// DailyTotal is the summed quantity of one nutrient on one date.
type DailyTotal struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// BreakdownPoint is one (date, nutrient) cell of the breakdown chart.
type BreakdownPoint struct {
	Date     string         `json:"date"`
	Nutrient model.Nutrient `json:"nutrient"`
	Quantity float64        `json:"quantity"`
}

// DayTotals holds every nutrient summed for one date.
type DayTotals struct {
	Date      string                     `json:"date"`
	Nutrients map[model.Nutrient]float64 `json:"nutrients"`
}

// DailyCalories sums calorie rows per date, sorted by date.
func DailyCalories(entries []model.Entry) []DailyTotal {
	sums := make(map[string]float64)
	for _, e := range entries {
		if e.Nutrient != model.Calories {
			continue
		}
		sums[e.Date] += e.Quantity
	}

	out := make([]DailyTotal, 0, len(sums))
	for _, d := range sortedKeys(sums) {
		out = append(out, DailyTotal{Date: d, Quantity: sums[d]})
	}
	return out
}

// Breakdown pivots every non-calorie row to date x nutrient, summing
// quantities and filling missing cells with 0, then flattens the pivot to long
// form for the nutrients in display that occur in the data. Display names
// without data are skipped. Points are ordered by display position, then date.
func Breakdown(entries []model.Entry, display []model.Nutrient) []BreakdownPoint {
	cells := make(map[model.Nutrient]map[string]float64)
	dates := make(map[string]float64)
	for _, e := range entries {
		if e.Nutrient == model.Calories {
			continue
		}
		if cells[e.Nutrient] == nil {
			cells[e.Nutrient] = make(map[string]float64)
		}
		cells[e.Nutrient][e.Date] += e.Quantity
		dates[e.Date] = 0
	}

	days := sortedKeys(dates)
	var out []BreakdownPoint
	seen := make(map[model.Nutrient]bool)
	for _, n := range display {
		col, ok := cells[n]
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		for _, d := range days {
			out = append(out, BreakdownPoint{Date: d, Nutrient: n, Quantity: col[d]})
		}
	}
	return out
}

// Totals sums every nutrient per date, sorted by date.
func Totals(entries []model.Entry) []DayTotals {
	byDate := make(map[string]map[model.Nutrient]float64)
	for _, e := range entries {
		if byDate[e.Date] == nil {
			byDate[e.Date] = make(map[model.Nutrient]float64)
		}
		byDate[e.Date][e.Nutrient] += e.Quantity
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DayTotals, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayTotals{Date: d, Nutrients: byDate[d]})
	}
	return out
}

// Since keeps entries dated on or after from (YYYY-MM-DD). An empty from keeps
// everything. Dates compare lexically, which matches calendar order for the
// log's date format.
func Since(entries []model.Entry, from string) []model.Entry {
	if from == "" {
		return entries
	}
	var out []model.Entry
	for _, e := range entries {
		if e.Date >= from {
			out = append(out, e)
		}
	}
	return out
}

// Dates lists the distinct dates of points in first-seen order.
func Dates(points []BreakdownPoint) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range points {
		if !seen[p.Date] {
			seen[p.Date] = true
			out = append(out, p.Date)
		}
	}
	return out
}

// Series groups breakdown points by nutrient, keeping first-seen order.
func Series(points []BreakdownPoint) ([]model.Nutrient, map[model.Nutrient][]float64) {
	var order []model.Nutrient
	values := make(map[model.Nutrient][]float64)
	for _, p := range points {
		if _, ok := values[p.Nutrient]; !ok {
			order = append(order, p.Nutrient)
		}
		values[p.Nutrient] = append(values[p.Nutrient], p.Quantity)
	}
	return order, values
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CaloriesOn returns the calorie total for date, zero when nothing is logged.
func CaloriesOn(entries []model.Entry, date string) float64 {
	var sum float64
	for _, e := range entries {
		if e.Nutrient == model.Calories && e.Date == date {
			sum += e.Quantity
		}
	}
	return sum
}
