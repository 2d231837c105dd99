package storage

import (
	"context"

	"github.com/dragonspire/sentinel/internal/model"
)

// ProfileStore defines the interface for durable per-player account
// persistence
type ProfileStore interface {
	// GetAccount returns the account for a player, or
	// model.ErrAccountNotFound if none exists
	GetAccount(ctx context.Context, id model.PlayerID) (*model.PlayerAccount, error)

	// CreditBalance atomically applies a signed increment to a player's
	// balance, creating the account with defaults if absent. The returned
	// flag distinguishes created-with-defaults from updated-existing.
	// Returns model.ErrBalanceUnderflow if the increment would take the
	// balance below zero.
	CreditBalance(ctx context.Context, id model.PlayerID, delta int64) (balance int64, created bool, err error)

	// SetDeviceBinding records the hardware fingerprint bound to an account
	SetDeviceBinding(ctx context.Context, id model.PlayerID, hwid string) error

	// SetStatus transitions an account's moderation status
	SetStatus(ctx context.Context, id model.PlayerID, status model.AccountStatus) error

	// CountAccounts returns the number of stored accounts
	CountAccounts(ctx context.Context) (int64, error)
}
