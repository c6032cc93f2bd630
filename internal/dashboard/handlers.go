package dashboard

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/QMSS-G5072-2024/nutrilog/internal/aggregate"
	"github.com/QMSS-G5072-2024/nutrilog/internal/chart"
	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// entries loads the log and applies the ?range= window.
func (s *Server) entries(c *gin.Context) ([]model.Entry, *store.LoadResult, bool) {
	res, err := s.load()
	if err != nil {
		s.logger().Error("load log", "path", s.LogPath, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	entries, err := aggregate.WindowFor(res.Entries, c.DefaultQuery("range", "all"), s.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return entries, res, true
}

func (s *Server) handleCalories(c *gin.Context) {
	entries, _, ok := s.entries(c)
	if !ok {
		return
	}
	points := aggregate.DailyCalories(entries)
	if points == nil {
		points = []aggregate.DailyTotal{}
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleBreakdown(c *gin.Context) {
	entries, _, ok := s.entries(c)
	if !ok {
		return
	}
	points := aggregate.Breakdown(entries, s.display())
	if points == nil {
		points = []aggregate.BreakdownPoint{}
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleTotals(c *gin.Context) {
	entries, _, ok := s.entries(c)
	if !ok {
		return
	}
	totals := aggregate.Totals(entries)
	if totals == nil {
		totals = []aggregate.DayTotals{}
	}
	c.JSON(http.StatusOK, totals)
}

func (s *Server) handleStatus(c *gin.Context) {
	entries, res, ok := s.entries(c)
	if !ok {
		return
	}
	days := aggregate.DailyCalories(entries)
	status := gin.H{
		"log_file":     s.LogPath,
		"log_exists":   logExists(s.LogPath),
		"rows":         len(entries),
		"dropped":      res.Dropped,
		"days":         len(days),
		"live_reload":  s.hub.Subscribers(),
		"live_dropped": s.hub.Dropped(),
	}
	if len(days) > 0 {
		status["first_date"] = days[0].Date
		status["last_date"] = days[len(days)-1].Date
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleCaloriesChart(c *gin.Context) {
	entries, _, ok := s.entries(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.CaloriesLine(&buf, aggregate.DailyCalories(entries)); err != nil {
		c.String(http.StatusInternalServerError, "render chart: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleBreakdownChart(c *gin.Context) {
	entries, _, ok := s.entries(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.BreakdownBar(&buf, aggregate.Breakdown(entries, s.display())); err != nil {
		c.String(http.StatusInternalServerError, "render chart: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleLogFile(c *gin.Context) {
	if store.IsPattern(s.LogPath) {
		c.String(http.StatusBadRequest, "log path %q is a pattern; download individual files", s.LogPath)
		return
	}
	if !fileExists(s.LogPath) {
		c.String(http.StatusNotFound, "no log yet")
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.File(s.LogPath)
}
