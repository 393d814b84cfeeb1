package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ForecastReader is the read side of the forecast cache.
type ForecastReader interface {
	List(ctx context.Context) ([]domain.ForecastRow, error)
	Upcoming(ctx context.Context, from time.Time) ([]domain.ForecastRow, error)
	GetByDate(ctx context.Context, date int64) (domain.ForecastRow, error)
}

// Syncer runs one sync cycle on demand.
type Syncer interface {
	SyncWeather(ctx context.Context) domain.SyncResult
}

// Server exposes health, readiness, metrics, forecast and sync HTTP endpoints.
type Server struct {
	httpServer *http.Server
	forecasts  ForecastReader
	syncer     Syncer
	units      domain.Units
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /forecast, /forecast/{date} and /sync routes. Display fields are rendered
// in units.
func NewServer(addr string, ready sharedobs.ReadinessChecker, forecasts ForecastReader, syncer Syncer, units domain.Units, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // POST /sync waits for a full cycle
			IdleTimeout:  60 * time.Second,
		},
		forecasts: forecasts,
		syncer:    syncer,
		units:     units,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /forecast", s.handleList)
	mux.HandleFunc("GET /forecast/{date}", s.handleDetail)
	mux.HandleFunc("POST /sync", s.handleSync)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
