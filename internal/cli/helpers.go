package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// logFileName is the log written under the data root.
const logFileName = "daily_nutrition.csv"

// now is swapped in tests.
var now = time.Now

func defaultLogFile(dataRoot string) string {
	return filepath.Join(dataRoot, logFileName)
}

// parseQuery turns "<quantity> <unit> <ingredient...>" into a query. A
// multi-word ingredient may be given unquoted.
func parseQuery(args []string) (edamam.Query, error) {
	if len(args) < 3 {
		return edamam.Query{}, fmt.Errorf("expected <quantity> <unit> <ingredient>, got %d argument(s)", len(args))
	}
	qty, err := edamam.ParseQuantity(args[0])
	if err != nil {
		return edamam.Query{}, err
	}
	return edamam.Query{
		Quantity:   qty,
		Unit:       args[1],
		Ingredient: strings.Join(args[2:], " "),
	}, nil
}

// loadEntries reads the configured log (a path or glob) and keeps the rows
// inside rangeFlag.
func loadEntries(env *runtimeEnv, rangeFlag string) ([]model.Entry, error) {
	days, err := aggregate.RangeDays(rangeFlag)
	if err != nil {
		return nil, err
	}
	res, err := store.LoadPattern(env.cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if res.Dropped > 0 {
		env.logger.Debug("skipped malformed log rows", "count", res.Dropped)
	}
	return aggregate.Window(res.Entries, days, now()), nil
}

func displayNutrients(cfg model.Config) []model.Nutrient {
	if len(cfg.Display) == 0 {
		return model.DefaultDisplay
	}
	return model.ParseNutrients(cfg.Display)
}

func rangeHelp() string {
	return "Time range (" + strings.Join(aggregate.Ranges, ", ") + ")"
}
