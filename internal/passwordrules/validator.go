// Package passwordrules tests candidate passwords against a resolved policy
// rule set. Violations are reported as ports.ValidationError values so callers
// can tell an expected negative outcome from a failure to run the check.
package passwordrules

import (
	"context"
	"strings"
	"unicode"

	"credstate/internal/domain"
	"credstate/internal/policy"
	"credstate/internal/userinfo/ports"
)

// Validator applies the rule set of a resolved password policy.
type Validator struct{}

// NewValidator returns a rule-set password validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Test implements ports.PasswordValidator. userValues carries user-derived
// strings (username, rule-referenced attribute values) that must not appear
// inside the password.
func (v *Validator) Test(_ context.Context, password string, pwPolicy domain.PasswordPolicy, userValues []string) error {
	if min := pwPolicy.IntRule(domain.RuleMinimumLength); min > 0 && len(password) < min {
		return violation(domain.RuleMinimumLength, "password is too short")
	}
	if max := pwPolicy.IntRule(domain.RuleMaximumLength); max > 0 && len(password) > max {
		return violation(domain.RuleMaximumLength, "password is too long")
	}

	counts := classCounts(password)
	if min := pwPolicy.IntRule(domain.RuleMinimumUpperCase); counts.upper < min {
		return violation(domain.RuleMinimumUpperCase, "not enough upper case characters")
	}
	if min := pwPolicy.IntRule(domain.RuleMinimumLowerCase); counts.lower < min {
		return violation(domain.RuleMinimumLowerCase, "not enough lower case characters")
	}
	if min := pwPolicy.IntRule(domain.RuleMinimumNumeric); counts.numeric < min {
		return violation(domain.RuleMinimumNumeric, "not enough numeric characters")
	}
	if min := pwPolicy.IntRule(domain.RuleMinimumSpecial); counts.special < min {
		return violation(domain.RuleMinimumSpecial, "not enough special characters")
	}

	lowered := strings.ToLower(password)
	for _, disallowed := range policy.DisallowedLiterals(pwPolicy.Rules) {
		if strings.Contains(lowered, strings.ToLower(disallowed)) {
			return violation(domain.RuleDisallowedValues, "password contains a disallowed value")
		}
	}
	if pwPolicy.BoolRule(domain.RuleDisallowUsername) || len(policy.RuleAttributeReferences(pwPolicy.Rules)) > 0 {
		for _, value := range userValues {
			if value == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(value)) {
				return violation(domain.RuleDisallowUsername, "password contains a user-derived value")
			}
		}
	}

	return nil
}

func violation(rule domain.RuleKey, reason string) error {
	return &ports.ValidationError{Field: string(rule), Reason: reason}
}

type charClassCounts struct {
	upper, lower, numeric, special int
}

func classCounts(password string) charClassCounts {
	var c charClassCounts
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.upper++
		case unicode.IsLower(r):
			c.lower++
		case unicode.IsDigit(r):
			c.numeric++
		default:
			c.special++
		}
	}
	return c
}
