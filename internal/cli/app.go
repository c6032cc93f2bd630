package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/systray"
	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/menubar"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/internal/watcher"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// todayCalories sums today's calorie rows in the log. A missing log is zero.
func todayCalories(logPath string) (float64, error) {
	res, err := store.LoadPattern(logPath)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return aggregate.CaloriesOn(res.Entries, now().Format(model.DateLayout)), nil
}

func newAppCmd() *cobra.Command {
	defaults := model.DefaultConfig()
	var port int

	cmd := &cobra.Command{
		Use:   "app",
		Short: "Start the tray app with the dashboard",
		Long:  "Start nutrilog as a system tray (menu bar) app showing today's calories, with the dashboard server running in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			port = portFor(cmd, port, env.cfg)

			srv := newDashboard(env, port)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			url := serverURL(srv)
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard URL: %s\n", url)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			registered := heartbeat(ctx, env, port)

			var changes <-chan string
			if w, err := watcher.New([]string{env.cfg.LogFile}, env.logger); err != nil {
				env.logger.Warn("tray live refresh disabled", "err", err)
			} else {
				go w.Start(ctx)
				changes = w.Changes()
			}

			// Route SIGINT/SIGTERM through the tray shutdown.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					systray.Quit()
				case <-ctx.Done():
				}
			}()

			logPath := env.cfg.LogFile
			if store.IsPattern(logPath) {
				logPath = ""
			}

			return menubar.Run(menubar.Config{
				DashboardURL: url,
				LogPath:      logPath,
				TodayFn:      func() (float64, error) { return todayCalories(env.cfg.LogFile) },
				Changes:      changes,
				RefreshEvery: time.Minute,
				Logger:       env.logger,
				OnQuit: func() {
					cancel()
					<-registered
					shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
					defer done()
					srv.Stop(shutdown)
				},
			})
		},
	}

	cmd.Flags().IntVar(&port, "port", defaults.Port, "HTTP server port")
	return cmd
}
