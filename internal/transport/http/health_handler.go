package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler reports process liveness and basic dataset reachability.
type HealthHandler struct {
	service DatasetServiceInterface
	logger  *slog.Logger
	started time.Time
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DatasetServiceInterface, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
		started: time.Now(),
		version: version,
	}
}

// HealthCheck handles GET /api/health. The dataset load doubles as the
// readiness probe: a directory that cannot be read degrades the status.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	detail := map[string]interface{}{
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	}

	files, err := h.service.Files(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "health check dataset load failed",
			slog.String("error", err.Error()))
		status = "degraded"
		detail["error"] = err.Error()
		render.Status(r, http.StatusServiceUnavailable)
	} else {
		detail["spreadsheets"] = len(files)
	}

	detail["status"] = status
	render.JSON(w, r, detail)
}

// Version handles GET /api/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": h.version})
}
