package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/bolgen/internal/logfields"
	"git.home.luguber.info/inful/bolgen/internal/server/responses"
	"git.home.luguber.info/inful/bolgen/internal/version"
)

// MonitoringHandlers exposes liveness information about the running server.
type MonitoringHandlers struct {
	logger    *slog.Logger
	startTime time.Time
}

// NewMonitoringHandlers constructs monitoring handlers anchored at the current time.
func NewMonitoringHandlers(logger *slog.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		logger:    logger,
		startTime: time.Now(),
	}
}

// HandleHealthCheck reports service health along with version and uptime.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := responses.HealthResponse{
		OK:      true,
		Version: version.Version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write health response", logfields.Error(err))
	}
}
