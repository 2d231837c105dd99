package handler

import (
	"net/http"

	"github.com/dragonspire/sentinel/internal/api/response"
	"github.com/dragonspire/sentinel/internal/services/session"
)

// HealthHandler serves the aggregate trust/health query
type HealthHandler struct {
	coordinator *session.Coordinator
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(coordinator *session.Coordinator) *HealthHandler {
	return &HealthHandler{
		coordinator: coordinator,
	}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.coordinator.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:         "ok",
		ActiveSessions: stats.ActiveSessions,
		StoredAccounts: stats.StoredAccounts,
	})
}
