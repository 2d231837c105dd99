package model

import (
	"math"
	"time"
)

// Position is a 2D world coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the euclidean distance to another position
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// TelemetryPacket is one per-tick report from a connected client
type TelemetryPacket struct {
	Position   Position
	Timestamp  time.Time
	IsShooting bool
	Recoil     float64
}

// SessionRecord is the ephemeral state for one connected player.
// At most one live record exists per player at any time; a new connect
// supersedes any prior record for that player.
type SessionRecord struct {
	Token         string
	PlayerID      PlayerID
	HWID          string
	LastPosition  Position
	LastTimestamp time.Time
}
