package httpadapter

import (
	"net/http"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"
)

type syncResponse struct {
	Status     domain.SyncStatus `json:"status"`
	Rows       int               `json:"rows"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
}

// handleSync runs one cycle with the request context. If another cycle is in
// flight the request waits for it first.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	res := s.syncer.SyncWeather(r.Context())

	body := syncResponse{
		Status:     res.Status,
		Rows:       res.Rows,
		StartedAt:  res.StartedAt,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Err != nil {
		body.Error = res.Err.Error()
	}
	writeJSON(w, syncHTTPStatus(res.Status), body)
}

func syncHTTPStatus(status domain.SyncStatus) int {
	switch status {
	case domain.StatusSynced, domain.StatusEmpty:
		return http.StatusOK
	case domain.StatusTransportError, domain.StatusFormatError:
		return http.StatusBadGateway
	case domain.StatusCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
