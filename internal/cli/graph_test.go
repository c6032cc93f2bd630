package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphCmdHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"mentions ASCII", "ASCII"},
		{"metric flag", "--metric"},
		{"range flag", "--range"},
		{"width flag", "--width"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"graph", "--help"})

			err := cmd.Execute()
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestGraphCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := newGraphCmd()

	tests := []struct {
		name     string
		flag     string
		defValue string
	}{
		{"metric", "metric", "calories"},
		{"range", "range", "7d"},
		{"width", "width", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f, "flag %q should exist", tt.flag)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestGraphCmdMissingLog(t *testing.T) {
	isolate(t)

	_, err := run(t, "graph")
	assert.Error(t, err)
}

func TestGraphCmdNoDataInRange(t *testing.T) {
	dataRoot := isolate(t)
	fixClock(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local))
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "graph", "--range", "7d")
	require.NoError(t, err)
	assert.Contains(t, out, "No data")
}

func TestGraphCmdCalories(t *testing.T) {
	dataRoot := isolate(t)
	fixClock(t, time.Date(2024, 11, 6, 12, 0, 0, 0, time.Local))
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "graph", "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Calories Consumed Per Day")
	assert.Contains(t, out, "750 Cals")
	assert.Contains(t, out, "1200 Cals")
}

func TestGraphCmdBreakdown(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "graph", "--metric", "breakdown", "--range", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Nutritional Breakdown Per Day")
	assert.Contains(t, out, "Protein")
	assert.Contains(t, out, "Fats")
}

func TestGraphCmdUnknownMetric(t *testing.T) {
	isolate(t)

	_, err := run(t, "graph", "--metric", "sodium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric")
}

func TestTotalCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := newTotalCmd()
	f := cmd.Flags().Lookup("range")
	require.NotNil(t, f)
	assert.Equal(t, "7d", f.DefValue)
}

func TestTotalCmdJSON(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "total", "--range", "all")
	require.NoError(t, err)

	var totals []struct {
		Date      string             `json:"date"`
		Nutrients map[string]float64 `json:"nutrients"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	require.Len(t, totals, 2)
	assert.Equal(t, "2024-11-05", totals[0].Date)
	assert.Equal(t, 750.0, totals[0].Nutrients["Calories"])
	assert.Equal(t, 15.0, totals[0].Nutrients["Protein"])
	assert.Equal(t, 1200.0, totals[1].Nutrients["Calories"])
}

func TestTotalCmdEmptyRange(t *testing.T) {
	dataRoot := isolate(t)
	fixClock(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local))
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "total")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
