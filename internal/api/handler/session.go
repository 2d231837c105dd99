package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/dragonspire/sentinel/internal/api/request"
	"github.com/dragonspire/sentinel/internal/api/response"
	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/services/session"
)

// SessionHandler handles the game session endpoints
type SessionHandler struct {
	coordinator *session.Coordinator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(coordinator *session.Coordinator) *SessionHandler {
	return &SessionHandler{
		coordinator: coordinator,
	}
}

// Connect handles POST /api/v1/game/connect
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req request.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.HWID == "" {
		WriteError(w, NewInvalidRequestError("hwid is required"))
		return
	}

	result, err := h.coordinator.Connect(
		r.Context(),
		model.PlayerID(req.PlayerID),
		req.HWID,
		model.BehaviorSample{Sensitivity: req.Behavior.Sensitivity},
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConnectResponseFromResult(result))
}

// Sync handles POST /api/v1/game/sync
func (h *SessionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req request.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	result, err := h.coordinator.Sync(r.Context(), model.PlayerID(req.PlayerID), packetFromRequest(req.Packet))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SyncResponseFromResult(result))
}

// Disconnect handles POST /api/v1/game/disconnect
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	var req request.DisconnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	h.coordinator.Disconnect(model.PlayerID(req.PlayerID))
	response.NoContent(w)
}

// packetFromRequest converts the wire packet to the domain form. A zero
// timestamp is left zero so the coordinator stamps arrival time.
func packetFromRequest(p request.Packet) model.TelemetryPacket {
	packet := model.TelemetryPacket{
		Position:   model.Position{X: p.X, Y: p.Y},
		IsShooting: p.IsShooting,
		Recoil:     p.Recoil,
	}
	if p.Timestamp > 0 {
		secs, frac := math.Modf(p.Timestamp)
		packet.Timestamp = time.Unix(int64(secs), int64(frac*float64(time.Second))).UTC()
	}
	return packet
}
