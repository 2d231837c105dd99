package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dragonspire/sentinel/internal/model"
	"github.com/dragonspire/sentinel/internal/storage"
)

// Config holds configuration for the vault service
type Config struct {
	// StoreTimeout bounds each profile-store call
	StoreTimeout time.Duration
}

// DefaultConfig returns default vault configuration
func DefaultConfig() Config {
	return Config{
		StoreTimeout: 2 * time.Second,
	}
}

// CreditResult captures the outcome of a balance credit
type CreditResult struct {
	Balance int64
	Created bool
}

// Service applies balance credits against the profile store. The entry
// point is internal-only: every call must carry the credential verified by
// the injected checker.
type Service struct {
	store   storage.ProfileStore
	checker *Checker
	cfg     Config
	logger  *slog.Logger
}

// New creates a new vault service
func New(store storage.ProfileStore, checker *Checker, cfg Config, logger *slog.Logger) *Service {
	if cfg.StoreTimeout == 0 {
		cfg.StoreTimeout = DefaultConfig().StoreTimeout
	}
	return &Service{
		store:   store,
		checker: checker,
		cfg:     cfg,
		logger:  logger,
	}
}

// VerifyCredential checks the internal capability token
func (s *Service) VerifyCredential(credential string) error {
	return s.checker.Verify(credential)
}

// Credit verifies the credential and applies a signed balance increment,
// creating the account with defaults when absent. A zero delta is a plain
// balance read.
func (s *Service) Credit(ctx context.Context, credential string, playerID model.PlayerID, delta int64) (*CreditResult, error) {
	if err := s.checker.Verify(credential); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	balance, created, err := s.store.CreditBalance(ctx, playerID, delta)
	if err != nil {
		if errors.Is(err, model.ErrBalanceUnderflow) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}

	if created {
		s.logger.Info("account created on first credit",
			slog.String("player_id", string(playerID)),
		)
	}

	return &CreditResult{Balance: balance, Created: created}, nil
}
