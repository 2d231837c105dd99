package request

// Behavior is the behavioural sample presented at connect time
type Behavior struct {
	Sensitivity float64 `json:"sensitivity"`
}

// ConnectRequest is the body for POST /api/v1/game/connect
type ConnectRequest struct {
	PlayerID string   `json:"player_id"`
	HWID     string   `json:"hwid"`
	Behavior Behavior `json:"behavior"`
}

// Packet is one telemetry report inside a sync request. Timestamp is unix
// seconds; when omitted the server stamps arrival time.
type Packet struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Timestamp  float64 `json:"timestamp,omitempty"`
	IsShooting bool    `json:"is_shooting"`
	Recoil     float64 `json:"recoil"`
}

// SyncRequest is the body for POST /api/v1/game/sync
type SyncRequest struct {
	PlayerID string `json:"player_id"`
	Packet   Packet `json:"packet"`
}

// DisconnectRequest is the body for POST /api/v1/game/disconnect
type DisconnectRequest struct {
	PlayerID string `json:"player_id"`
}

// CreditRequest is the body for POST /api/v1/internal/credit
type CreditRequest struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
}
