package anticheat

import (
	"github.com/dragonspire/sentinel/internal/model"
)

// MaxVelocity is the hard physical speed cap in distance units per second.
// A packet implying faster movement is conclusive proof of tampering, not a
// soft signal.
const MaxVelocity = 45.0

// Service screens telemetry packets against the last accepted session state.
// It is deterministic: time enters only through the packet and record
// timestamps, never the wall clock.
type Service struct{}

// New creates a new packet validator
func New() *Service {
	return &Service{}
}

// Validate evaluates one packet and returns a verdict with its severity.
// A nil previous record yields CLEAN; session existence is enforced by the
// coordinator, not here. Checks run in a fixed order (velocity first) and
// the first non-clean result wins.
func (s *Service) Validate(packet model.TelemetryPacket, prev *model.SessionRecord) (model.Verdict, int) {
	if prev == nil {
		return model.VerdictClean, model.SeverityClean
	}

	elapsed := packet.Timestamp.Sub(prev.LastTimestamp).Seconds()
	velocity := 0.0
	if elapsed > 0 {
		velocity = prev.LastPosition.DistanceTo(packet.Position) / elapsed
	}

	if velocity > MaxVelocity {
		return model.VerdictHWIDBan, model.SeverityHWIDBan
	}

	if packet.IsShooting && packet.Recoil == 0 {
		return model.VerdictCriticalCheatBan, model.SeverityCriticalBan
	}

	return model.VerdictClean, model.SeverityClean
}
