package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PendingHWID is the placeholder device binding for accounts created by a
// balance credit before the player ever connected from a real device.
const PendingHWID = "PENDING"

// AccountStatus is the moderation state of a player account
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusLocked AccountStatus = "LOCKED"
	StatusBanned AccountStatus = "BANNED"
)

// BehaviorBaseline is the slowly-updated behavioural trust profile stored
// with the account
type BehaviorBaseline struct {
	AvgSensitivity float64 `json:"avg_sensitivity"`
	AvgTapSpeed    float64 `json:"avg_tap_speed"`
}

// BehaviorSample is the behavioural reading a client presents at connect time
type BehaviorSample struct {
	Sensitivity float64 `json:"sensitivity"`
}

// PlayerAccount is the durable per-player record. Accounts are created
// implicitly by the first balance credit and are never deleted, only
// status-transitioned.
type PlayerAccount struct {
	PlayerID       PlayerID
	RegisteredHWID string
	Baseline       BehaviorBaseline
	Balance        int64
	Status         AccountStatus
	CreatedAt      time.Time
}

// DeviceBound reports whether the account is bound to a real device
func (a *PlayerAccount) DeviceBound() bool {
	return a.RegisteredHWID != "" && a.RegisteredHWID != PendingHWID
}

// NewDefaultAccount returns the account shape created implicitly by the
// first balance credit
func NewDefaultAccount(id PlayerID, now time.Time) *PlayerAccount {
	return &PlayerAccount{
		PlayerID:       id,
		RegisteredHWID: PendingHWID,
		Status:         StatusActive,
		CreatedAt:      now,
	}
}
