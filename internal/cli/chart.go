package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/chart"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// chartKinds maps a chart name to its renderer.
var chartKinds = map[string]func(w io.Writer, entries []model.Entry, display []model.Nutrient) error{
	"calories": func(w io.Writer, entries []model.Entry, _ []model.Nutrient) error {
		return chart.CaloriesLine(w, aggregate.DailyCalories(entries))
	},
	"breakdown": func(w io.Writer, entries []model.Entry, display []model.Nutrient) error {
		return chart.BreakdownBar(w, aggregate.Breakdown(entries, display))
	},
}

// openChart is swapped in tests.
var openChart = chart.Open

func newChartCmd() *cobra.Command {
	var out string
	var noOpen bool
	var rangeFlag string

	cmd := &cobra.Command{
		Use:       "chart calories|breakdown",
		Short:     "Render an interactive HTML chart of the log",
		Long:      "Render the daily calorie line chart or the stacked nutrient breakdown chart as an HTML page and open it in the browser.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"calories", "breakdown"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			render, ok := chartKinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown chart %q (want calories or breakdown)", args[0])
			}

			entries, err := loadEntries(env, rangeFlag)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(env.cfg.DataRoot, "charts", args[0]+".html")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("create chart dir: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create chart: %w", err)
			}
			if err := render(f, entries, displayNutrients(env.cfg)); err != nil {
				f.Close()
				return fmt.Errorf("render chart: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
			if noOpen {
				return nil
			}
			if err := openChart(path); err != nil {
				env.logger.Warn("could not open browser", "err", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output HTML file (default: <data-root>/charts/<chart>.html)")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not open the chart in a browser")
	cmd.Flags().StringVar(&rangeFlag, "range", "all", rangeHelp())
	return cmd
}
