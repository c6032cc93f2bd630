package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// captureStdout captures os.Stdout output from fn.
// Tests using this helper cannot use t.Parallel() since they mutate os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	return buf.String()
}

// isolate points HOME and the data root at temp dirs and clears credentials.
// It returns the data root. Tests using it cannot use t.Parallel().
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	dataRoot := filepath.Join(home, "data")
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NUTRILOG_DATA_ROOT", dataRoot)
	for _, k := range []string{"NUTRILOG_LOG_FILE", "NUTRILOG_APP_ID", "NUTRILOG_APP_KEY", "EDAMAM_APP_ID", "EDAMAM_APP_KEY", "NUTRILOG_ENDPOINT", "NUTRILOG_PORT", "NUTRILOG_DISPLAY"} {
		t.Setenv(k, "")
	}
	return dataRoot
}

// fixClock pins the package clock for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), args...)
}

func runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// nutritionAPI serves body for every request and records the last query.
func nutritionAPI(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var lastIngr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastIngr = r.URL.Query().Get("ingr")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastIngr
}

const sampleLog = `Date,Nutrient,Quantity,Unit
2024-11-05,Calories,300,Cals
2024-11-05,Protein,10,g
2024-11-05,Calories,450,Cals
2024-11-05,Protein,5,g
2024-11-06,Calories,1200,Cals
2024-11-06,Fats,20,g
2024-11-06,Calories,oops,Cals
`
