package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/QMSS-G5072-2024/nutrilog/internal/config"
	"github.com/QMSS-G5072-2024/nutrilog/internal/daemon"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
)

type checkStatus string

const (
	checkOK    checkStatus = "OK"
	checkWarn  checkStatus = "WARN"
	checkFail  checkStatus = "FAIL"
	checkFixed checkStatus = "FIXED"
)

func report(w io.Writer, status checkStatus, label, detail string) {
	fmt.Fprintf(w, "[%s] %s: %s\n", status, label, detail)
}

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check environment and configuration",
		Long:  "Run diagnostic checks on the environment, configuration and log file, and optionally fix issues.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			cfg := env.cfg
			out := cmd.OutOrStdout()
			failed := 0

			// Config file
			if env.configFile != "" {
				report(out, checkOK, "Config file", env.configFile)
			} else {
				report(out, checkWarn, "Config file", "none (defaults and environment only)")
			}
			for _, err := range config.Validate(cfg) {
				report(out, checkFail, "Config", err.Error())
				failed++
			}

			// Data dir
			info, err := os.Stat(cfg.DataRoot)
			switch {
			case err == nil && info.IsDir():
				report(out, checkOK, "Data dir", cfg.DataRoot)
			case errors.Is(err, fs.ErrNotExist) && fix:
				if err := daemon.EnsureDataDirs(cfg.DataRoot); err != nil {
					report(out, checkFail, "Data dir", fmt.Sprintf("create %s: %v", cfg.DataRoot, err))
					failed++
				} else {
					report(out, checkFixed, "Data dir", "created "+cfg.DataRoot)
				}
			case errors.Is(err, fs.ErrNotExist):
				report(out, checkFail, "Data dir", cfg.DataRoot+" does not exist (run with --fix)")
				failed++
			case err == nil:
				report(out, checkFail, "Data dir", cfg.DataRoot+" is not a directory")
				failed++
			default:
				report(out, checkFail, "Data dir", err.Error())
				failed++
			}

			// Log file
			if store.IsPattern(cfg.LogFile) {
				if paths, err := store.ResolvePaths(cfg.LogFile); err != nil {
					report(out, checkWarn, "Log file", err.Error())
				} else {
					report(out, checkOK, "Log file", fmt.Sprintf("%s (%d files, read-only)", cfg.LogFile, len(paths)))
				}
			} else if res, err := store.Load(cfg.LogFile); errors.Is(err, fs.ErrNotExist) {
				report(out, checkWarn, "Log file", cfg.LogFile+" not created yet (first add writes it)")
			} else if err != nil {
				report(out, checkFail, "Log file", err.Error())
				failed++
			} else if res.Dropped > 0 {
				report(out, checkWarn, "Log file", fmt.Sprintf("%s (%d rows, %d malformed rows skipped)", cfg.LogFile, len(res.Entries), res.Dropped))
			} else {
				report(out, checkOK, "Log file", fmt.Sprintf("%s (%d rows)", cfg.LogFile, len(res.Entries)))
			}

			// Log dir writable
			if !store.IsPattern(cfg.LogFile) {
				dir := filepath.Dir(cfg.LogFile)
				if err := checkWritable(dir); err != nil {
					if errors.Is(err, fs.ErrNotExist) && fix {
						if err := os.MkdirAll(dir, 0755); err == nil {
							report(out, checkFixed, "Log dir", "created "+dir)
						} else {
							report(out, checkFail, "Log dir", err.Error())
							failed++
						}
					} else {
						report(out, checkFail, "Log dir", err.Error())
						failed++
					}
				} else {
					report(out, checkOK, "Log dir", dir+" is writable")
				}
			}

			// Dashboard
			if daemon.IsRunning(cfg.DataRoot, daemon.ServerName) {
				detail := "running"
				if hb := daemon.ReadHeartbeatState(cfg.DataRoot, daemon.ServerName); hb != nil {
					detail = fmt.Sprintf("running at %s (pid %s, status %s)", dashboardURL(hb.Port), hb.PID, hb.Status)
				}
				report(out, checkOK, "Dashboard", detail)
			} else {
				report(out, checkWarn, "Dashboard", "not running (start with nutrilog web)")
			}

			// Credentials
			if cfg.Credentials().Complete() {
				report(out, checkOK, "Credentials", "app_id and app_key set")
			} else {
				report(out, checkWarn, "Credentials", "missing; set app_id/app_key in the config or EDAMAM_APP_ID/EDAMAM_APP_KEY")
			}

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Attempt to auto-fix detected issues")

	return cmd
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".nutrilog-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
