package aggregate

import (
	"fmt"
	"time"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// Ranges lists the accepted --range values.
var Ranges = []string{"7d", "14d", "30d", "90d", "all"}

// RangeDays converts a range string to a number of days. "all" is 0.
func RangeDays(r string) (int, error) {
	switch r {
	case "7d":
		return 7, nil
	case "14d":
		return 14, nil
	case "30d":
		return 30, nil
	case "90d":
		return 90, nil
	case "all", "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown range: %s", r)
	}
}

// Window keeps the entries of the last days calendar days ending on now's
// date, today included. days <= 0 keeps everything.
func Window(entries []model.Entry, days int, now time.Time) []model.Entry {
	if days <= 0 {
		return entries
	}
	from := now.AddDate(0, 0, -(days - 1)).Format(model.DateLayout)
	return Since(entries, from)
}

// WindowFor parses r and applies it with Window.
func WindowFor(entries []model.Entry, r string, now time.Time) ([]model.Entry, error) {
	days, err := RangeDays(r)
	if err != nil {
		return nil, err
	}
	return Window(entries, days, now), nil
}
