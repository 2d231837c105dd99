package response

import (
	"github.com/dragonspire/sentinel/internal/services/session"
)

// Connect statuses surfaced to clients
const (
	ConnectStatusConnected = "connected"
	ConnectStatusLocked    = "LOCKED"
)

// ConnectResponse is the response for the connect endpoint
type ConnectResponse struct {
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	TrustTier    string `json:"trust_tier,omitempty"`
}

// ConnectResponseFromResult converts a coordinator result
func ConnectResponseFromResult(r *session.ConnectResult) ConnectResponse {
	if !r.Allowed {
		return ConnectResponse{
			Status: ConnectStatusLocked,
			Reason: string(r.Reason),
		}
	}
	return ConnectResponse{
		Status:       ConnectStatusConnected,
		SessionToken: r.Token,
		TrustTier:    string(r.TrustTier),
	}
}

// SyncResponse is the response for the sync endpoint. Clean syncs carry a
// status and balance; terminations carry an action and reason.
type SyncResponse struct {
	Status   string `json:"status,omitempty"`
	Action   string `json:"action,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Severity int    `json:"severity,omitempty"`
	Balance  int64  `json:"balance"`
}

// SyncResponseFromResult converts a coordinator result
func SyncResponseFromResult(r *session.SyncResult) SyncResponse {
	if r.Status == session.SyncStatusTerminated {
		return SyncResponse{
			Action:   string(r.Status),
			Reason:   string(r.Reason),
			Severity: r.Severity,
		}
	}
	return SyncResponse{
		Status:  string(r.Status),
		Balance: r.Balance,
	}
}

// CreditResponse is the response for the internal credit endpoint
type CreditResponse struct {
	Balance int64 `json:"balance"`
	Created bool  `json:"created"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	StoredAccounts int64  `json:"stored_accounts"`
}
