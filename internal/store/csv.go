package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// Header is the first row of the nutrition log.
var Header = []string{"Date", "Nutrient", "Quantity", "Unit"}

// MarshalReading converts a reading into a log row for date.
// Calorie rows use the "Cals" unit and leave the quantity blank when the value
// was unknown. Other readings with a zero quantity are written in grams.
func MarshalReading(date string, r model.Reading) []string {
	if r.Nutrient == model.Calories {
		qty := ""
		if r.Known {
			qty = formatQuantity(r.Quantity)
		}
		return []string{date, string(r.Nutrient), qty, model.CaloriesUnit}
	}

	unit := r.Unit
	if r.Quantity == 0 {
		unit = model.ZeroUnit
	}
	return []string{date, string(r.Nutrient), formatQuantity(r.Quantity), unit}
}

// isNew reports whether path is missing or empty, i.e. still needs a header.
func isNew(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

// Append writes one row per reading to the log at path, dated with the local
// calendar day of date. The header is written only when the file is missing or
// empty. It returns the number of data rows written. Writes are not locked;
// concurrent appenders may interleave rows.
func Append(path string, facts model.Facts, date time.Time, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("create log dir: %w", err)
		}
	}

	fresh, err := isNew(path)
	if err != nil {
		return 0, fmt.Errorf("stat log: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		logger.Info("log file not found, writing header", "path", path)
		if err := w.Write(Header); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
	}

	day := date.Format(model.DateLayout)
	for _, r := range facts {
		if err := w.Write(MarshalReading(day, r)); err != nil {
			return 0, fmt.Errorf("write %s row: %w", r.Nutrient, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush log: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close log: %w", err)
	}

	return len(facts), nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
