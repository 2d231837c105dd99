package gate

import (
	"math"

	"github.com/dragonspire/sentinel/internal/model"
)

// MaxSensitivityDrift is the allowed absolute deviation between the stored
// behavioural baseline and the sample presented at connect time.
const MaxSensitivityDrift = 1.0

// Service evaluates connect-time trust decisions. It is a pure decision
// function over the account snapshot it is handed: no I/O, no side effects.
type Service struct{}

// New creates a new access gate
func New() *Service {
	return &Service{}
}

// Evaluate decides whether a connect attempt is trusted. A nil account means
// a first-time player; those connect freely, and device binding happens
// later on the first balance credit. Checks short-circuit on the first
// failure.
func (s *Service) Evaluate(account *model.PlayerAccount, presentedHWID string, sample model.BehaviorSample) (model.Verdict, bool) {
	if account == nil {
		return model.VerdictClean, true
	}

	if account.DeviceBound() && account.RegisteredHWID != presentedHWID {
		return model.VerdictWrongDevice, false
	}

	if math.Abs(account.Baseline.AvgSensitivity-sample.Sensitivity) > MaxSensitivityDrift {
		return model.VerdictBehaviorLocked, false
	}

	return model.VerdictClean, true
}
