package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
)

func newTotalCmd() *cobra.Command {
	var rangeFlag string

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show nutrient totals per day",
		Long:  "Display per-day nutrient totals from the log as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			entries, err := loadEntries(env, rangeFlag)
			if err != nil {
				return err
			}

			totals := aggregate.Totals(entries)
			if totals == nil {
				totals = []aggregate.DayTotals{}
			}
			data, err := json.MarshalIndent(totals, "", "  ")
			if err != nil {
				return fmt.Errorf("encode totals: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "7d", rangeHelp())
	return cmd
}
