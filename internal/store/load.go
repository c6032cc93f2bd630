package store

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// LoadResult holds the usable rows of one or more logs and how many rows were
// discarded for a missing date or a non-numeric quantity.
type LoadResult struct {
	Entries []model.Entry
	Dropped int
}

// columns records where each named field sits in a log row.
type columns struct {
	date, nutrient, quantity, unit int
}

func locateColumns(header []string) (columns, error) {
	cols := columns{date: -1, nutrient: -1, quantity: -1, unit: -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "Date":
			cols.date = i
		case "Nutrient":
			cols.nutrient = i
		case "Quantity":
			cols.quantity = i
		case "Unit":
			cols.unit = i
		}
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, "Date")
	}
	if cols.nutrient < 0 {
		missing = append(missing, "Nutrient")
	}
	if cols.quantity < 0 {
		missing = append(missing, "Quantity")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("log header missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// unmarshalEntry parses a log row. Rows with an empty date or a quantity that
// is empty, non-numeric or NaN are rejected.
func unmarshalEntry(record []string, cols columns) (model.Entry, error) {
	date := strings.TrimSpace(field(record, cols.date))
	if date == "" {
		return model.Entry{}, errors.New("missing date")
	}

	raw := strings.TrimSpace(field(record, cols.quantity))
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Entry{}, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	if math.IsNaN(qty) {
		return model.Entry{}, fmt.Errorf("invalid quantity %q", raw)
	}

	return model.Entry{
		Date:     date,
		Nutrient: model.Nutrient(field(record, cols.nutrient)),
		Quantity: qty,
		Unit:     field(record, cols.unit),
	}, nil
}

// maxLine bounds a single log row.
const maxLine = 1 << 20

// readRecord parses one log line on its own, so a broken quote costs only
// the row it sits on.
func readRecord(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}

// Load reads the log at path. Rows come back in file order. An empty file
// yields no rows and no error. Blank lines are skipped.
func Load(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res := &LoadResult{}
	var cols columns
	header := false

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := readRecord(line)

		if !header {
			if err != nil {
				return nil, fmt.Errorf("read header: %w", err)
			}
			if cols, err = locateColumns(record); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			header = true
			continue
		}

		if err != nil {
			res.Dropped++
			continue
		}
		entry, err := unmarshalEntry(record, cols)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return res, nil
}

// LoadAll reads each log in order and concatenates their rows.
func LoadAll(paths []string) (*LoadResult, error) {
	out := &LoadResult{}
	for _, p := range paths {
		res, err := Load(p)
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, res.Entries...)
		out.Dropped += res.Dropped
	}
	return out, nil
}
