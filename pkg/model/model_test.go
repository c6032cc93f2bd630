package model

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".nutrilog", filepath.Base(cfg.DataRoot))
	assert.Equal(t, filepath.Join(cfg.DataRoot, "daily_nutrition.csv"), cfg.LogFile)
	assert.Equal(t, 8765, cfg.Port)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.LegacyCarbsUnit)
	assert.Equal(t, NutrientNames(DefaultDisplay), cfg.Display)
}

func TestCredentialsComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{name: "both set", creds: Credentials{AppID: "id", AppKey: "key"}, want: true},
		{name: "missing key", creds: Credentials{AppID: "id"}},
		{name: "missing id", creds: Credentials{AppKey: "key"}},
		{name: "empty", creds: Credentials{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.creds.Complete())
		})
	}
}

func TestNutrientSet(t *testing.T) {
	t.Parallel()

	require.Len(t, Nutrients, 9)
	assert.Equal(t, Calories, Nutrients[0])
	assert.NotContains(t, Nutrients, Nutrient("Sugars"))
}

func TestFactsGet(t *testing.T) {
	t.Parallel()

	f := Facts{
		{Nutrient: Calories, Quantity: 250, Known: true},
		{Nutrient: Protein, Quantity: 10, Unit: "g", Known: true},
	}

	r, ok := f.Get(Protein)
	require.True(t, ok)
	assert.Equal(t, 10.0, r.Quantity)

	_, ok = f.Get(Sodium)
	assert.False(t, ok)
}

func TestNutrientNamesRoundTrip(t *testing.T) {
	t.Parallel()

	names := NutrientNames(DefaultDisplay)
	assert.Contains(t, names, "Sugars")
	assert.Equal(t, DefaultDisplay, ParseNutrients(names))
}
