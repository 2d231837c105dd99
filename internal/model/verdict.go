package model

// Verdict names the outcome of a trust or cheat-detection decision
type Verdict string

const (
	VerdictClean            Verdict = "CLEAN"
	VerdictWrongDevice      Verdict = "ACCESS_DENIED_WRONG_DEVICE"
	VerdictBehaviorLocked   Verdict = "SUSPICIOUS_BEHAVIOR_LOCKED"
	VerdictHWIDBan          Verdict = "ULTIMATE_HWID_BAN"
	VerdictCriticalCheatBan Verdict = "CRITICAL_CHEAT_BAN"
)

// Severity weights attached to cheat verdicts. Informational only: severities
// are not summed across packets.
const (
	SeverityClean       = 0
	SeverityCriticalBan = 90
	SeverityHWIDBan     = 100
)

// Clean reports whether the verdict allows the session to continue
func (v Verdict) Clean() bool {
	return v == VerdictClean
}

// TrustTier is a client-facing hint derived from balance, used for UI
// warnings on high-value accounts. Not a security boundary.
type TrustTier string

const (
	TierStandard TrustTier = "STANDARD"
	TierMaximum  TrustTier = "MAXIMUM"
)

// HighValueBalance is the balance above which an account gets the MAXIMUM
// trust tier hint
const HighValueBalance = 50000
