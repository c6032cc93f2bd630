package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/QMSS-G5072-2024/nutrilog/internal/store"
	"github.com/QMSS-G5072-2024/nutrilog/internal/watcher"
	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

//go:embed assets/index.html
var dashboardFS embed.FS

// Server serves the dashboard, rendered charts and log data. Charts are
// recomputed from the log on every request.
type Server struct {
	Port    int
	LogPath string
	Display []model.Nutrient
	Logger  *slog.Logger
	Now     func() time.Time

	hub    *Hub
	server *http.Server
	cancel context.CancelFunc
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Server) display() []model.Nutrient {
	if len(s.Display) == 0 {
		return model.DefaultDisplay
	}
	return s.Display
}

// Hub returns the live update hub, creating it on first use.
func (s *Server) Hub() *Hub {
	if s.hub == nil {
		s.hub = NewHub()
	}
	return s.hub
}

// load reads the log. A log that does not exist yet reads as empty.
func (s *Server) load() (*store.LoadResult, error) {
	res, err := store.LoadPattern(s.LogPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &store.LoadResult{}, nil
	}
	return res, err
}

// Handler builds the routes.
//   - /dashboard/ → embedded dashboard HTML
//   - /charts/*.html → standalone interactive charts
//   - /api/* → aggregated JSON
//   - /log.csv → the raw log
//   - /ws → change notifications
func (s *Server) Handler() (http.Handler, error) {
	sub, err := fs.Sub(dashboardFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("embed sub: %w", err)
	}
	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		return nil, fmt.Errorf("read dashboard: %w", err)
	}
	s.Hub()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	serveIndex := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
	engine.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard/") })
	engine.GET("/dashboard/", serveIndex)
	engine.GET("/dashboard/index.html", serveIndex)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "subscribers": s.hub.Subscribers()})
	})

	engine.GET("/charts/calories.html", s.handleCaloriesChart)
	engine.GET("/charts/breakdown.html", s.handleBreakdownChart)

	api := engine.Group("/api")
	api.GET("/calories", s.handleCalories)
	api.GET("/breakdown", s.handleBreakdown)
	api.GET("/totals", s.handleTotals)
	api.GET("/status", s.handleStatus)

	engine.GET("/log.csv", s.handleLogFile)
	engine.GET("/ws", s.handleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(engine), nil
}

// allowedOrigins are the browser origins that may read dashboard data: the
// dashboard itself under both loopback names.
func (s *Server) allowedOrigins() []string {
	return []string{
		fmt.Sprintf("http://127.0.0.1:%d", s.Port),
		fmt.Sprintf("http://localhost:%d", s.Port),
	}
}

// checkOrigin admits websocket clients that send no Origin (non-browser) or
// one of the dashboard's own origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.allowedOrigins() {
		if strings.EqualFold(origin, o) {
			return true
		}
	}
	return false
}

// Start starts the HTTP server and the log watcher.
func (s *Server) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", s.Port),
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.Port, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.watch(ctx)

	go s.server.Serve(ln)
	s.logger().Info("dashboard started", "addr", s.server.Addr, "log", s.LogPath)
	return nil
}

// watch pushes a reload to live clients whenever the log changes. A log
// directory that cannot be watched only disables live reload.
func (s *Server) watch(ctx context.Context) {
	w, err := watcher.New([]string{s.LogPath}, s.logger())
	if err != nil {
		s.logger().Warn("live reload disabled", "err", err)
		return
	}
	go w.Start(ctx)
	go func() {
		for path := range w.Changes() {
			s.hub.Broadcast(Update{Type: "reload", Path: path, At: s.now().Format(time.RFC3339)})
		}
	}()
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// logExists reports whether path names a log, or a pattern matching at least one.
func logExists(path string) bool {
	if store.IsPattern(path) {
		_, err := store.ResolvePaths(path)
		return err == nil
	}
	return fileExists(path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
