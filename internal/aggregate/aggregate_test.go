package aggregate

import (
	"testing"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(date string, n model.Nutrient, q float64) model.Entry {
	return model.Entry{Date: date, Nutrient: n, Quantity: q}
}

func TestDailyCaloriesSumsSameDate(t *testing.T) {
	t.Parallel()

	got := DailyCalories([]model.Entry{
		entry("2024-11-05", model.Calories, 300),
		entry("2024-11-05", model.Protein, 20),
		entry("2024-11-05", model.Calories, 450),
	})

	assert.Equal(t, []DailyTotal{{Date: "2024-11-05", Quantity: 750}}, got)
}

func TestDailyCaloriesSortedByDate(t *testing.T) {
	t.Parallel()

	got := DailyCalories([]model.Entry{
		entry("2024-11-07", model.Calories, 1),
		entry("2024-11-05", model.Calories, 2),
		entry("2024-11-06", model.Calories, 3),
		entry("2024-11-05", model.Calories, 4),
	})

	assert.Equal(t, []DailyTotal{
		{Date: "2024-11-05", Quantity: 6},
		{Date: "2024-11-06", Quantity: 3},
		{Date: "2024-11-07", Quantity: 1},
	}, got)
}

func TestDailyCaloriesEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DailyCalories(nil))
	assert.Empty(t, DailyCalories([]model.Entry{entry("2024-11-05", model.Fats, 3)}))
}

func TestBreakdown(t *testing.T) {
	t.Parallel()

	entries := []model.Entry{
		entry("2024-11-05", model.Calories, 500),
		entry("2024-11-05", model.Protein, 10),
		entry("2024-11-05", model.Protein, 5),
		entry("2024-11-05", model.Fats, 2),
		entry("2024-11-06", model.Protein, 7),
		entry("2024-11-06", model.Carbs, 30),
	}

	got := Breakdown(entries, model.DefaultDisplay)

	assert.Equal(t, []BreakdownPoint{
		{Date: "2024-11-05", Nutrient: model.Protein, Quantity: 15},
		{Date: "2024-11-06", Nutrient: model.Protein, Quantity: 7},
		{Date: "2024-11-05", Nutrient: model.Fats, Quantity: 2},
		{Date: "2024-11-06", Nutrient: model.Fats, Quantity: 0},
	}, got, "Carbs is not displayed by default and Sugars never occurs")
}

func TestBreakdownSkipsCaloriesAndAbsentNames(t *testing.T) {
	t.Parallel()

	entries := []model.Entry{
		entry("2024-11-05", model.Calories, 500),
		entry("2024-11-05", model.Sodium, 3),
	}

	got := Breakdown(entries, []model.Nutrient{model.Calories, "Sugars", model.Sodium, model.Sodium})
	assert.Equal(t, []BreakdownPoint{{Date: "2024-11-05", Nutrient: model.Sodium, Quantity: 3}}, got)

	assert.Empty(t, Breakdown(entries, []model.Nutrient{"Sugars"}))
	assert.Empty(t, Breakdown(nil, model.DefaultDisplay))
}

func TestTotals(t *testing.T) {
	t.Parallel()

	got := Totals([]model.Entry{
		entry("2024-11-06", model.Calories, 100),
		entry("2024-11-05", model.Calories, 300),
		entry("2024-11-05", model.Calories, 450),
		entry("2024-11-05", model.Protein, 10),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "2024-11-05", got[0].Date)
	assert.Equal(t, 750.0, got[0].Nutrients[model.Calories])
	assert.Equal(t, 10.0, got[0].Nutrients[model.Protein])
	assert.Equal(t, "2024-11-06", got[1].Date)
}

func TestSince(t *testing.T) {
	t.Parallel()

	entries := []model.Entry{
		entry("2024-10-30", model.Calories, 1),
		entry("2024-11-05", model.Calories, 2),
		entry("2024-11-06", model.Calories, 3),
	}

	assert.Len(t, Since(entries, ""), 3)
	assert.Len(t, Since(entries, "2024-11-05"), 2)
	assert.Empty(t, Since(entries, "2025-01-01"))
}

func TestSeriesAndDates(t *testing.T) {
	t.Parallel()

	points := []BreakdownPoint{
		{Date: "2024-11-05", Nutrient: model.Protein, Quantity: 15},
		{Date: "2024-11-06", Nutrient: model.Protein, Quantity: 7},
		{Date: "2024-11-05", Nutrient: model.Fats, Quantity: 2},
		{Date: "2024-11-06", Nutrient: model.Fats, Quantity: 0},
	}

	assert.Equal(t, []string{"2024-11-05", "2024-11-06"}, Dates(points))

	order, values := Series(points)
	assert.Equal(t, []model.Nutrient{model.Protein, model.Fats}, order)
	assert.Equal(t, []float64{15, 7}, values[model.Protein])
	assert.Equal(t, []float64{2, 0}, values[model.Fats])
}

func TestCaloriesOn(t *testing.T) {
	t.Parallel()

	entries := []model.Entry{
		entry("2024-11-05", model.Calories, 300),
		entry("2024-11-05", model.Protein, 10),
		entry("2024-11-05", model.Calories, 450),
		entry("2024-11-06", model.Calories, 100),
	}
	assert.Equal(t, 750.0, CaloriesOn(entries, "2024-11-05"))
	assert.Equal(t, 0.0, CaloriesOn(entries, "2024-11-07"))
}
