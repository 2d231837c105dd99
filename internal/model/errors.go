package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrBalanceUnderflow = errors.New("balance cannot go negative")

	// Session errors
	ErrNoSession = errors.New("no live session for player")

	// Store errors
	ErrStoreUnavailable = errors.New("profile store unavailable")
)
