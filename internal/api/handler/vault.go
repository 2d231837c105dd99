package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dragonspire/sentinel/internal/api/request"
	"github.com/dragonspire/sentinel/internal/api/response"
	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/services/vault"
)

// InternalTokenHeader carries the capability token for internal endpoints
const InternalTokenHeader = "X-Internal-Token"

// VaultHandler handles the internal currency endpoints
type VaultHandler struct {
	vault *vault.Service
}

// NewVaultHandler creates a new vault handler
func NewVaultHandler(vaultService *vault.Service) *VaultHandler {
	return &VaultHandler{
		vault: vaultService,
	}
}

// Credit handles POST /api/v1/internal/credit
func (h *VaultHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req request.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	credential := r.Header.Get(InternalTokenHeader)
	result, err := h.vault.Credit(r.Context(), credential, model.PlayerID(req.PlayerID), req.Amount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CreditResponse{
		Balance: result.Balance,
		Created: result.Created,
	})
}
