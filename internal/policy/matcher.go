package policy

import (
	"context"
	"fmt"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// Matcher resolves which configured profile instance of a category applies to
// an identity: candidates are evaluated in configured order and the first
// whose match rules the identity satisfies wins.
type Matcher struct {
	source  *StaticSource
	checker ports.PermissionChecker
}

// NewMatcher builds a profile matcher over a static source.
func NewMatcher(source *StaticSource, checker ports.PermissionChecker) (*Matcher, error) {
	if source == nil {
		return nil, fmt.Errorf("policy source is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("permission checker is required")
	}
	return &Matcher{source: source, checker: checker}, nil
}

// DiscoverProfileID implements ports.ProfileMatcher.
func (m *Matcher) DiscoverProfileID(ctx context.Context, identity domain.Identity, category domain.ProfileCategory) (string, error) {
	for _, candidate := range m.source.categoryProfiles(category) {
		matched, err := m.checker.Match(ctx, identity, candidate.Match)
		if err != nil {
			return "", fmt.Errorf("match profile %q: %w", candidate.ID, err)
		}
		if matched {
			return candidate.ID, nil
		}
	}
	return "", fmt.Errorf("%s profile for %s: %w", category, identity.DN, sentinel.ErrNotFound)
}
