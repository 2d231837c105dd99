package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dragonspire/sentinel/internal/api/handler"
	"github.com/dragonspire/sentinel/internal/api/middleware"
	"github.com/dragonspire/sentinel/internal/services/session"
	"github.com/dragonspire/sentinel/internal/services/vault"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *session.Coordinator
	Vault       *vault.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Coordinator)
	vaultHandler := handler.NewVaultHandler(cfg.Vault)
	healthHandler := handler.NewHealthHandler(cfg.Coordinator)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game session routes (keyed by player_id in the body)
	api.HandleFunc("/game/connect", sessionHandler.Connect).Methods(http.MethodPost)
	api.HandleFunc("/game/sync", sessionHandler.Sync).Methods(http.MethodPost)
	api.HandleFunc("/game/disconnect", sessionHandler.Disconnect).Methods(http.MethodPost)

	// Internal currency route, gated by the X-Internal-Token credential
	api.HandleFunc("/internal/credit", vaultHandler.Credit).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
