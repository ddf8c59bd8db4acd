package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// DirectoryPermissionChecker evaluates permission rule sets against live
// directory data. An identity matches a rule set when it matches any rule in
// it; an empty rule set matches nothing.
type DirectoryPermissionChecker struct {
	directory ports.Directory
}

// NewDirectoryPermissionChecker builds a checker over a directory port.
func NewDirectoryPermissionChecker(directory ports.Directory) (*DirectoryPermissionChecker, error) {
	if directory == nil {
		return nil, fmt.Errorf("directory port is required")
	}
	return &DirectoryPermissionChecker{directory: directory}, nil
}

// Match implements ports.PermissionChecker.
func (c *DirectoryPermissionChecker) Match(ctx context.Context, identity domain.Identity, rules []domain.PermissionRule) (bool, error) {
	for _, rule := range rules {
		matched, err := c.matchRule(ctx, identity, rule)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func (c *DirectoryPermissionChecker) matchRule(ctx context.Context, identity domain.Identity, rule domain.PermissionRule) (bool, error) {
	switch rule.Type {
	case domain.PermissionMatchAll:
		return true, nil

	case domain.PermissionMatchBase:
		return dnUnderBase(identity.DN, rule.BaseDN), nil

	case domain.PermissionMatchAttribute:
		value, err := c.directory.ReadAttribute(ctx, identity, rule.Attribute)
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read %q for permission rule: %w", rule.Attribute, err)
		}
		return strings.EqualFold(value, rule.Value), nil

	default:
		return false, fmt.Errorf("unknown permission rule type %q", rule.Type)
	}
}

// dnUnderBase reports whether dn falls under base, comparing DN components
// case-insensitively.
func dnUnderBase(dn, base string) bool {
	if base == "" {
		return false
	}
	dn = strings.ToLower(strings.ReplaceAll(dn, " ", ""))
	base = strings.ToLower(strings.ReplaceAll(base, " ", ""))
	return dn == base || strings.HasSuffix(dn, ","+base)
}
