package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCmdHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"mentions environment", "environment"},
		{"fix flag", "--fix"},
		{"mentions diagnostic", "diagnostic"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"doctor", "--help"})

			err := cmd.Execute()
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestDoctorCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := newDoctorCmd()

	fixFlag := cmd.Flags().Lookup("fix")
	require.NotNil(t, fixFlag)
	assert.Equal(t, "false", fixFlag.DefValue)
}

func TestDoctorCmdMissingDataDir(t *testing.T) {
	isolate(t)

	out, err := run(t, "doctor")
	require.Error(t, err)

	assert.Contains(t, out, "[FAIL] Data dir:")
	assert.Contains(t, out, "--fix")
	assert.Contains(t, out, "[WARN] Credentials:")
}

func TestDoctorCmdWithExistingLog(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), "Date,Nutrient,Quantity,Unit\n2024-11-05,Calories,300,Cals\n")
	t.Setenv("EDAMAM_APP_ID", "id")
	t.Setenv("EDAMAM_APP_KEY", "key")

	out, err := run(t, "doctor")
	require.NoError(t, err)

	assert.Contains(t, out, "[OK] Data dir:")
	assert.Contains(t, out, "[OK] Log file:")
	assert.Contains(t, out, "(1 rows)")
	assert.Contains(t, out, "[OK] Credentials:")
	assert.Contains(t, out, "All checks passed")
}

func TestDoctorCmdWarnsOnMalformedRows(t *testing.T) {
	dataRoot := isolate(t)
	writeFile(t, filepath.Join(dataRoot, "daily_nutrition.csv"), sampleLog)

	out, err := run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "1 malformed rows skipped")
}

func TestDoctorCmdFixCreatesDataDir(t *testing.T) {
	dataRoot := isolate(t)

	out, err := run(t, "doctor", "--fix")
	require.NoError(t, err)

	assert.Contains(t, out, "[FIXED]")

	info, err := os.Stat(dataRoot)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDoctorCmdInvalidConfig(t *testing.T) {
	dataRoot := isolate(t)
	require.NoError(t, os.MkdirAll(dataRoot, 0755))
	t.Setenv("NUTRILOG_PORT", "70000")

	out, err := run(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL] Config: port must be between 1 and 65535")
}
