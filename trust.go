package psyche

import "fmt"

// ──────────────────────────────────────────────
// Trust levels and trust arithmetic
// ──────────────────────────────────────────────

// TrustLevel classifies a trust value into one of six ordered bands.
type TrustLevel string

const (
	TrustNone     TrustLevel = "none"
	TrustMinimal  TrustLevel = "minimal"
	TrustLow      TrustLevel = "low"
	TrustModerate TrustLevel = "moderate"
	TrustHigh     TrustLevel = "high"
	TrustComplete TrustLevel = "complete"
)

// TrustLevelProfile is the fixed behavioral contract a trust level grants.
type TrustLevelProfile struct {
	SharePrivateMemories bool    `json:"share_private_memories"`
	EmotionalOpenness    float64 `json:"emotional_openness"` // [0,1]
	HonorsRequests       bool    `json:"honors_requests"`
}

var trustLevelProfiles = map[TrustLevel]TrustLevelProfile{
	TrustNone:     {SharePrivateMemories: false, EmotionalOpenness: 0.05, HonorsRequests: false},
	TrustMinimal:  {SharePrivateMemories: false, EmotionalOpenness: 0.15, HonorsRequests: false},
	TrustLow:      {SharePrivateMemories: false, EmotionalOpenness: 0.3, HonorsRequests: false},
	TrustModerate: {SharePrivateMemories: false, EmotionalOpenness: 0.5, HonorsRequests: true},
	TrustHigh:     {SharePrivateMemories: true, EmotionalOpenness: 0.75, HonorsRequests: true},
	TrustComplete: {SharePrivateMemories: true, EmotionalOpenness: 0.95, HonorsRequests: true},
}

// Profile returns the level's behavioral contract.
func (l TrustLevel) Profile() TrustLevelProfile {
	return trustLevelProfiles[l]
}

// GetTrustLevel classifies a trust value. Bins are half-open:
// [0,0.1) none, [0.1,0.25) minimal, [0.25,0.4) low, [0.4,0.6) moderate,
// [0.6,0.8) high, 0.8 and above complete.
func GetTrustLevel(v float64) TrustLevel {
	switch {
	case v < 0.1:
		return TrustNone
	case v < 0.25:
		return TrustMinimal
	case v < 0.4:
		return TrustLow
	case v < 0.6:
		return TrustModerate
	case v < 0.8:
		return TrustHigh
	default:
		return TrustComplete
	}
}

// Saturation bands for trust changes. Gains above the high mark and
// losses below the low mark are damped by up to half.
const (
	trustGainSaturation = 0.7
	trustLossSaturation = 0.3
	trustMaxDamping     = 0.5
)

// CalculateTrustChange applies a nominal trust change with saturation:
// positive changes above 0.7 shrink proportionally to how far current
// trust exceeds 0.7 (up to 50% as it nears 1.0), and negative changes
// below 0.3 are damped symmetrically so trust resists collapsing to
// zero. Returns the new trust, clamped to [0,1], and a human-readable
// description embedding the old value, new value, and reason.
func CalculateTrustChange(current, change float64, reason string) (float64, string) {
	effective := change
	switch {
	case change > 0 && current > trustGainSaturation:
		excess := (current - trustGainSaturation) / (1 - trustGainSaturation)
		if excess > 1 {
			excess = 1
		}
		effective = change * (1 - trustMaxDamping*excess)
	case change < 0 && current < trustLossSaturation:
		deficit := (trustLossSaturation - current) / trustLossSaturation
		if deficit > 1 {
			deficit = 1
		}
		effective = change * (1 - trustMaxDamping*deficit)
	}

	newTrust := clamp01(current + effective)
	desc := fmt.Sprintf("trust %.2f -> %.2f (%s)", current, newTrust, reason)
	return newTrust, desc
}

// TrustAllowsDisclosure reports whether trust clears a disclosure
// threshold. The comparison is inclusive.
func TrustAllowsDisclosure(trust, threshold float64) bool {
	return trust >= threshold
}
