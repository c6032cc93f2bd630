package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/chart"
)

// terminalWidth reads $COLUMNS, falling back to 80.
func terminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}

func newGraphCmd() *cobra.Command {
	var metric string
	var rangeFlag string
	var width int

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Display a terminal graph of the log",
		Long:  "Render an ASCII bar graph of daily calories or the nutrient breakdown in the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			if metric != "calories" && metric != "breakdown" {
				return fmt.Errorf("unknown metric: %s", metric)
			}

			entries, err := loadEntries(env, rangeFlag)
			if err != nil {
				return err
			}

			if width <= 0 {
				width = terminalWidth()
			}
			term := chart.Terminal{Width: width}
			out := cmd.OutOrStdout()

			switch metric {
			case "calories":
				points := aggregate.DailyCalories(entries)
				if len(points) == 0 {
					fmt.Fprintln(out, "No data in range.")
					return nil
				}
				fmt.Fprint(out, term.Calories(points))
			case "breakdown":
				points := aggregate.Breakdown(entries, displayNutrients(env.cfg))
				if len(points) == 0 {
					fmt.Fprintln(out, "No data in range.")
					return nil
				}
				fmt.Fprint(out, term.Breakdown(points))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metric, "metric", "calories", "Metric to graph (calories, breakdown)")
	cmd.Flags().StringVar(&rangeFlag, "range", "7d", rangeHelp())
	cmd.Flags().IntVar(&width, "width", 0, "Graph width in columns (default: $COLUMNS or 80)")
	return cmd
}
