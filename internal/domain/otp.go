package domain

import "time"

// OTPRecord is the stored one-time-password enrollment for an identity. A nil
// record or an empty secret means the user has not completed OTP setup.
type OTPRecord struct {
	Identity   Identity
	Secret     string
	Type       string
	RecordedAt time.Time
}

// HasSecret reports whether the record carries a usable secret.
func (r *OTPRecord) HasSecret() bool {
	return r != nil && r.Secret != ""
}

// ForceSetupPolicy controls whether users without an OTP enrollment are pushed
// into setup. Values other than the two force variants never require setup,
// even when no secret is stored; forcing is opt-in per policy.
type ForceSetupPolicy string

const (
	ForceSetupDisabled  ForceSetupPolicy = "disabled"
	ForceSetupForce     ForceSetupPolicy = "force"
	ForceSetupForceSkip ForceSetupPolicy = "force-allow-skip"
)

// Forces reports whether the policy requires setup for unenrolled users.
func (p ForceSetupPolicy) Forces() bool {
	return p == ForceSetupForce || p == ForceSetupForceSkip
}
