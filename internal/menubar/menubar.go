package menubar

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"fyne.io/systray"

	"github.com/QMSS-G5072-2024/nutrilog/internal/chart"
)

//go:embed icon.png
var iconData []byte

// Config holds the tray application configuration.
type Config struct {
	DashboardURL string
	LogPath      string
	TodayFn      func() (float64, error) // Calories logged today
	Changes      <-chan string           // Log change notifications; may be nil
	RefreshEvery time.Duration
	OnQuit       func()
	Logger       *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Run starts the systray application. It blocks until systray.Quit() is called.
func Run(cfg Config) error {
	systray.Run(
		func() { onReady(cfg) },
		func() { onExit(cfg) },
	)
	return nil
}

// Title formats the tray title for today's calorie total.
func Title(calories float64, err error) string {
	if err != nil {
		return "-- Cals"
	}
	return fmt.Sprintf("%d Cals", int(math.Round(calories)))
}

func refreshTitle(cfg Config) {
	if cfg.TodayFn == nil {
		return
	}
	cal, err := cfg.TodayFn()
	if err != nil {
		cfg.logger().Warn("refresh tray title", "err", err)
	}
	systray.SetTitle(Title(cal, err))
}

func onReady(cfg Config) {
	if len(iconData) > 0 {
		systray.SetTemplateIcon(iconData, iconData)
	}
	systray.SetTitle("nutrilog")
	systray.SetTooltip("nutrilog: today's calories")
	refreshTitle(cfg)

	mOpen := systray.AddMenuItem("Open Dashboard", "Open dashboard in browser")
	mLog := systray.AddMenuItem("Open Log", "Open the CSV log")
	mRefresh := systray.AddMenuItem("Refresh", "Re-read today's total")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit nutrilog")

	if cfg.LogPath == "" {
		mLog.Disable()
	}

	every := cfg.RefreshEvery
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-mOpen.ClickedCh:
				if err := chart.Open(cfg.DashboardURL); err != nil {
					cfg.logger().Warn("open dashboard", "err", err)
				}
			case <-mLog.ClickedCh:
				if err := chart.Open(cfg.LogPath); err != nil {
					cfg.logger().Warn("open log", "err", err)
				}
			case <-mRefresh.ClickedCh:
				refreshTitle(cfg)
			case _, ok := <-cfg.Changes:
				if !ok {
					cfg.Changes = nil
					continue
				}
				refreshTitle(cfg)
			case <-ticker.C:
				// The date rolls over at midnight without a log change.
				refreshTitle(cfg)
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func onExit(cfg Config) {
	if cfg.OnQuit != nil {
		cfg.OnQuit()
	}
}
