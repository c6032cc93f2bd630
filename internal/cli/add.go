package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/edamam"
	"github.com/QMSS-G5072-2024/nutrilog/internal/form"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/internal/tracker"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// credentialFlags registers --app-id/--app-key on cmd.
func credentialFlags(cmd *cobra.Command, id, key *string) {
	cmd.Flags().StringVar(id, "app-id", "", "Edamam application ID (default: config app_id or $EDAMAM_APP_ID)")
	cmd.Flags().StringVar(key, "app-key", "", "Edamam application key (default: config app_key or $EDAMAM_APP_KEY)")
}

func credentials(cfg model.Config, id, key string) model.Credentials {
	creds := cfg.Credentials()
	if id != "" {
		creds.AppID = id
	}
	if key != "" {
		creds.AppKey = key
	}
	return creds
}

func newAddCmd() *cobra.Command {
	var interactive bool
	var appID, appKey string

	cmd := &cobra.Command{
		Use:   "add <quantity> <unit> <ingredient...>",
		Short: "Add a food to the daily nutrition log",
		Long:  "Fetch nutrition data for a food from the Edamam API and append one row per nutrient, dated today, to the CSV log.",
		Example: `  nutrilog add 100 g chicken breast
  nutrilog add 1 cup brown rice
  nutrilog add -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			if store.IsPattern(env.cfg.LogFile) {
				return fmt.Errorf("cannot append to a log pattern: %s", env.cfg.LogFile)
			}

			var q edamam.Query
			var err error
			if interactive && len(args) == 0 {
				q, err = form.Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
			} else {
				q, err = parseQuery(args)
			}
			if err != nil {
				return err
			}

			t := tracker.New(env.cfg, env.logger)
			t.Out = cmd.OutOrStdout()
			t.Now = now
			_, err = t.AddFood(cmd.Context(), credentials(env.cfg, appID, appKey), q, env.cfg.LogFile)
			return err
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Enter the food in a terminal form")
	credentialFlags(cmd, &appID, &appKey)
	return cmd
}
