// Package policy resolves and merges password policy rules and provides the
// configuration-backed implementations of the policy-side ports.
package policy

import (
	"strings"

	"credstate/internal/domain"
)

// RuleOverrideAttribute is the directory attribute holding per-user rule
// overrides as "key=value" pairs separated by semicolons.
const RuleOverrideAttribute = "passwordRuleOverrides"

// attrPrefix marks a disallowed-values entry that names a directory attribute
// instead of a literal value.
const attrPrefix = "attr:"

// MergeRules merges per-user overrides into a profile rule set. Overrides win;
// empty override values are ignored. Neither input map is mutated.
func MergeRules(base, overrides domain.RuleSet) domain.RuleSet {
	merged := make(domain.RuleSet, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// ParseOverrides parses the override attribute value. Malformed segments are
// skipped; an unparseable attribute degrades to no overrides.
func ParseOverrides(raw string) domain.RuleSet {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	overrides := domain.RuleSet{}
	for _, segment := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		overrides[domain.RuleKey(key)] = value
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

// RuleAttributeReferences collects the directory attribute names the active
// rules refer to: "attr:" entries of the disallowed-values rule. These are
// the attributes whose values must not appear inside a password, so the
// validator needs them read up front.
func RuleAttributeReferences(rules domain.RuleSet) []string {
	raw := rules[domain.RuleDisallowedValues]
	if raw == "" {
		return nil
	}
	var attrs []string
	seen := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		name, ok := strings.CutPrefix(entry, attrPrefix)
		if !ok || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		attrs = append(attrs, name)
	}
	return attrs
}

// DisallowedLiterals returns the literal (non-attribute) disallowed values.
func DisallowedLiterals(rules domain.RuleSet) []string {
	raw := rules[domain.RuleDisallowedValues]
	if raw == "" {
		return nil
	}
	var literals []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, attrPrefix) {
			continue
		}
		literals = append(literals, entry)
	}
	return literals
}
