package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/daemon"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

var statusKey = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func printKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s=%v\n", statusKey.Render(key), value)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show log and configuration status",
		Long:  "Display the log location, row counts, logged date span and today's calories as key=value lines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			out := cmd.OutOrStdout()

			configFile := env.configFile
			if configFile == "" {
				configFile = "none"
			}
			creds := "missing"
			if env.cfg.Credentials().Complete() {
				creds = "set"
			}

			printKV(out, "log_file", env.cfg.LogFile)
			printKV(out, "config_file", configFile)
			printKV(out, "credentials", creds)
			if hb := daemon.ReadHeartbeatState(env.cfg.DataRoot, daemon.ServerName); hb != nil && daemon.IsRunning(env.cfg.DataRoot, daemon.ServerName) {
				printKV(out, "server", "running")
				printKV(out, "server_url", dashboardURL(hb.Port))
			} else {
				printKV(out, "server", "stopped")
			}

			res, err := store.LoadPattern(env.cfg.LogFile)
			if errors.Is(err, fs.ErrNotExist) {
				printKV(out, "log_exists", false)
				return nil
			}
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}

			days := aggregate.DailyCalories(res.Entries)
			printKV(out, "log_exists", true)
			printKV(out, "rows", len(res.Entries))
			printKV(out, "dropped", res.Dropped)
			printKV(out, "days", len(days))
			if len(days) > 0 {
				printKV(out, "first_date", days[0].Date)
				printKV(out, "last_date", days[len(days)-1].Date)
			}
			today := now().Format(model.DateLayout)
			printKV(out, "today_calories", aggregate.CaloriesOn(res.Entries, today))
			return nil
		},
	}
}
