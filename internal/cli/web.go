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

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/daemon"
	"github.com/QMSS-G5072-2024/nutrilog/internal/dashboard"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

func dashboardURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/dashboard/", port)
}

// serverURL is the dashboard page of a started server.
func serverURL(srv *dashboard.Server) string {
	return "http://" + srv.Addr() + "/dashboard/"
}

// portFor prefers an explicit --port over the configured one.
func portFor(cmd *cobra.Command, flag int, cfg model.Config) int {
	if cmd.Flags().Changed("port") {
		return flag
	}
	return cfg.Port
}

// heartbeat registers the running dashboard so status and doctor can find it.
// The returned channel closes once the registration is removed.
func heartbeat(ctx context.Context, env *runtimeEnv, port int) <-chan struct{} {
	d := &daemon.Daemon{
		Name:     daemon.ServerName,
		Port:     port,
		Interval: 30,
		DataRoot: env.cfg.DataRoot,
		CheckFn: func() error {
			_, err := store.LoadPattern(env.cfg.LogFile)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		},
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := d.Run(ctx); err != nil {
			env.logger.Warn("server heartbeat disabled", "err", err)
		}
	}()
	return done
}

func newDashboard(env *runtimeEnv, port int) *dashboard.Server {
	return &dashboard.Server{
		Port:    port,
		LogPath: env.cfg.LogFile,
		Display: displayNutrients(env.cfg),
		Logger:  env.logger,
	}
}

func newWebCmd() *cobra.Command {
	defaults := model.DefaultConfig()
	var port int
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the dashboard server",
		Long:  "Start the HTTP dashboard server. Charts are recomputed from the log on each request and open pages reload live when the log changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			port = portFor(cmd, port, env.cfg)

			srv := newDashboard(env, port)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("start server: %w", err)
			}

			url := serverURL(srv)
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard URL: %s\n", url)
			if open {
				if err := openChart(url); err != nil {
					env.logger.Warn("could not open browser", "err", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			registered := heartbeat(ctx, env, port)
			<-ctx.Done()
			<-registered

			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdown)
		},
	}

	cmd.Flags().IntVar(&port, "port", defaults.Port, "HTTP server port")
	cmd.Flags().BoolVar(&open, "open", false, "Open the dashboard in a browser")

	return cmd
}
