package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
	"github.com/QMSS-G5072-2024/nutrilog/internal/nutrition"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// Fetcher retrieves nutrition data for a query.
type Fetcher interface {
	Fetch(ctx context.Context, creds model.Credentials, q edamam.Query) (*edamam.Payload, error)
}

// Result contains the outcome of logging one food entry.
type Result struct {
	Ingredient string
	Date       string
	Rows       int
	LogPath    string
	Facts      model.Facts
}

// Tracker composes the API client, normalizer and log writer.
type Tracker struct {
	Fetcher Fetcher
	Options nutrition.Options
	Logger  *slog.Logger
	Out     io.Writer
	Now     func() time.Time
}

// New returns a Tracker for cfg writing confirmations to stdout.
func New(cfg model.Config, logger *slog.Logger) *Tracker {
	return &Tracker{
		Fetcher: edamam.NewClient(cfg.Endpoint, cfg.Timeout),
		Options: nutrition.Options{LegacyCarbsUnit: cfg.LegacyCarbsUnit},
		Logger:  logger,
		Out:     os.Stdout,
		Now:     time.Now,
	}
}

func (t *Tracker) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t.Logger
}

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *Tracker) out() io.Writer {
	if t.Out == nil {
		return io.Discard
	}
	return t.Out
}

// Lookup fetches and normalizes q without touching the log.
func (t *Tracker) Lookup(ctx context.Context, creds model.Credentials, q edamam.Query) (model.Facts, error) {
	payload, err := t.Fetcher.Fetch(ctx, creds, q)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		payload = &edamam.Payload{}
	}
	facts := nutrition.Normalize(payload, t.Options)
	cal, _ := facts.Get(model.Calories)
	t.logger().Debug("nutrition data fetched",
		"phrase", q.Phrase(),
		"calories", cal.Quantity,
		"calories_known", cal.Known,
		"total_weight", payload.TotalWeight)
	return facts, nil
}

// AddFood fetches nutrition data for q, normalizes it and appends one row per
// nutrient to the log at logPath dated today. Nothing is written when the
// fetch fails.
func (t *Tracker) AddFood(ctx context.Context, creds model.Credentials, q edamam.Query, logPath string) (*Result, error) {
	log := t.logger()

	facts, err := t.Lookup(ctx, creds, q)
	if err != nil {
		return nil, fmt.Errorf("query nutrition API: %w", err)
	}

	now := t.now()
	rows, err := store.Append(logPath, facts, now, log)
	if err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}

	fmt.Fprintf(t.out(), "Results have been saved to %s\n", logPath)
	fmt.Fprintf(t.out(), "Successfully added %s to daily nutrition log.\n", q.Ingredient)

	return &Result{
		Ingredient: q.Ingredient,
		Date:       now.Format(model.DateLayout),
		Rows:       rows,
		LogPath:    logPath,
		Facts:      facts,
	}, nil
}
