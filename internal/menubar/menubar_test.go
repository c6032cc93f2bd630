package menubar

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		calories float64
		err      error
		want     string
	}{
		{name: "nothing logged", calories: 0, want: "0 Cals"},
		{name: "rounded", calories: 749.6, want: "750 Cals"},
		{name: "load failure", calories: 0, err: errors.New("boom"), want: "-- Cals"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Title(tt.calories, tt.err))
		})
	}
}

func TestOnExitCallsOnQuit(t *testing.T) {
	t.Parallel()

	var called atomic.Bool
	cfg := Config{
		OnQuit: func() {
			called.Store(true)
		},
	}

	onExit(cfg)
	assert.True(t, called.Load(), "OnQuit callback should be called by onExit")
}

func TestOnExitNilOnQuit(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	assert.NotPanics(t, func() {
		onExit(cfg)
	})
}

func TestIconDataEmbedded(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, iconData)
	assert.Equal(t, []byte("\x89PNG"), iconData[:4])
}

func TestRefreshTitleWithoutTodayFn(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		refreshTitle(Config{})
	})
}
