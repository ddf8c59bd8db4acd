package domain

import "time"

// PasswordStatus holds the four independent flags produced by the password
// status check. Flags can combine (expired always implies pre-expired); there
// is deliberately no single aggregate state value.
type PasswordStatus struct {
	Expired        bool `json:"expired"`
	PreExpired     bool `json:"pre_expired"`
	WarnPeriod     bool `json:"warn_period"`
	ViolatesPolicy bool `json:"violates_policy"`
}

// AnyFlag reports whether any status flag is set.
func (s PasswordStatus) AnyFlag() bool {
	return s.Expired || s.PreExpired || s.WarnPeriod || s.ViolatesPolicy
}

// RuleKey names a password policy rule.
type RuleKey string

const (
	RuleEnforceAtLogin     RuleKey = "enforce-at-login"
	RuleMinimumLength      RuleKey = "minimum-length"
	RuleMaximumLength      RuleKey = "maximum-length"
	RuleMinimumUpperCase   RuleKey = "minimum-uppercase"
	RuleMinimumLowerCase   RuleKey = "minimum-lowercase"
	RuleMinimumNumeric     RuleKey = "minimum-numeric"
	RuleMinimumSpecial     RuleKey = "minimum-special"
	RuleDisallowedValues   RuleKey = "disallowed-values"
	RuleDisallowCurrent    RuleKey = "disallow-current"
	RuleDisallowUsername   RuleKey = "disallow-username"
	RuleExpirationInterval RuleKey = "expiration-interval"
	// RuleChallengeProfile lets a password policy pin the challenge profile
	// instead of leaving it to profile discovery.
	RuleChallengeProfile RuleKey = "challenge-profile"
)

// RuleSet is a resolved set of password policy rules. Values are stored as
// strings the way the configuration holds them; typed readers interpret them.
type RuleSet map[RuleKey]string

// PasswordPolicy is the merged rule set governing one identity, together with
// the profile it was resolved from. It is produced once per evaluator instance
// and must not change mid-session.
type PasswordPolicy struct {
	ProfileID string
	Rules     RuleSet
}

// BoolRule interprets a rule value as a boolean. Absent rules are false.
func (p PasswordPolicy) BoolRule(key RuleKey) bool {
	return p.Rules[key] == "true"
}

// IntRule interprets a rule value as a non-negative integer. Absent or
// malformed values yield zero.
func (p PasswordPolicy) IntRule(key RuleKey) int {
	v := p.Rules[key]
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// StringRule returns the raw rule value, empty when absent.
func (p PasswordPolicy) StringRule(key RuleKey) string {
	return p.Rules[key]
}

// ExpirationWindows holds the two policy-configured lead windows used by the
// password status state machine.
type ExpirationWindows struct {
	// PreExpire marks passwords expiring within this window as pre-expired.
	PreExpire time.Duration
	// Warn marks passwords expiring within this (typically longer) window as
	// inside the warn period. Zero disables the warn check entirely.
	Warn time.Duration
}
