package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/nutrition"
	"github.com/QMSS-G5072-2024/nutrilog/internal/tracker"
)

func newLookupCmd() *cobra.Command {
	var appID, appKey string

	cmd := &cobra.Command{
		Use:   "lookup <quantity> <unit> <ingredient...>",
		Short: "Show nutrition facts without logging them",
		Long:  "Fetch nutrition data for a food from the Edamam API and print the normalized readings. The log is not touched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			q, err := parseQuery(args)
			if err != nil {
				return err
			}

			facts, err := tracker.New(env.cfg, env.logger).Lookup(cmd.Context(), credentials(env.cfg, appID, appKey), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", q.Phrase())
			for _, line := range nutrition.Describe(facts) {
				fmt.Fprintf(out, "  %s\n", line)
			}
			return nil
		},
	}

	credentialFlags(cmd, &appID, &appKey)
	return cmd
}
