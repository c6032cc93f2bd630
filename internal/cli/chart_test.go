package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCmdHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"chart", "--help"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "calories|breakdown")
	assert.Contains(t, out, "--out")
	assert.Contains(t, out, "--no-open")
}

func TestChartCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := newChartCmd()

	tests := []struct {
		flag     string
		defValue string
	}{
		{"out", ""},
		{"no-open", "false"},
		{"range", "all"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			f := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f, "flag %q should exist", tt.flag)
			assert.Equal(t, tt.defValue, f.DefValue)
		})
	}
}

func TestChartCmdWritesHTML(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	tests := []struct {
		chart string
		want  []string
	}{
		{chart: "calories", want: []string{"Total Calories Consumed Per Day", "2024-11-05", "750"}},
		{chart: "breakdown", want: []string{"Nutritional Breakdown Per Day", "Protein", "Fats"}},
	}

	for _, tt := range tests {
		t.Run(tt.chart, func(t *testing.T) {
			outPath := filepath.Join(t.TempDir(), tt.chart+".html")
			out, err := run(t, "chart", tt.chart, "--out", outPath, "--no-open")
			require.NoError(t, err)
			assert.Contains(t, out, "Chart written to "+outPath)

			data, err := os.ReadFile(outPath)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(data), w)
			}
		})
	}
}

func TestChartCmdDefaultPathAndOpen(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	var opened string
	orig := openChart
	openChart = func(target string) error {
		opened = target
		return nil
	}
	t.Cleanup(func() { openChart = orig })

	_, err := run(t, "chart", "calories")
	require.NoError(t, err)

	want := filepath.Join(dataRoot, "charts", "calories.html")
	assert.FileExists(t, want)
	assert.Equal(t, want, opened)
}

func TestChartCmdErrors(t *testing.T) {
	dataRoot := isolate(t)

	_, err := run(t, "chart", "pie", "--no-open")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown chart "pie"`)

	_, err = run(t, "chart", "calories", "--no-open")
	require.Error(t, err, "missing log")
	assert.Contains(t, err.Error(), "read log")

	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)
	_, err = run(t, "chart", "calories", "--no-open", "--range", "1y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown range")
}

func TestChartCmdGlobLog(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "logs", "a.csv"), "Date,Nutrient,Quantity,Unit\n2024-11-05,Calories,300,Cals\n")
	writeFile(t, filepath.Join(dataRoot, "logs", "b.csv"), "Date,Nutrient,Quantity,Unit\n2024-11-05,Calories,450,Cals\n")

	outPath := filepath.Join(t.TempDir(), "cal.html")
	_, err := run(t, "--log-file", filepath.Join(dataRoot, "logs", "*.csv"), "chart", "calories", "--out", outPath, "--no-open")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "750")
}
