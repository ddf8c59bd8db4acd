package ports

import (
	"context"

	"credstate/internal/domain"
)

// Setting names a configuration setting resolvable through PolicySource.
type Setting string

const (
	SettingUsernameAttribute     Setting = "ldap.attribute.username"
	SettingEmailAttribute        Setting = "ldap.attribute.email"
	SettingSMSAttribute          Setting = "ldap.attribute.sms"
	SettingGUIDAttribute         Setting = "ldap.attribute.guid"
	SettingCachedAttributes      Setting = "ldap.cached-attributes"
	SettingPasswordPreExpireTime Setting = "password.expire.pre-time"
	SettingPasswordWarnTime      Setting = "password.expire.warn-time"
	SettingChangePasswordMatch   Setting = "password.change.permission"
	SettingOTPEnabled            Setting = "otp.enabled"
	SettingOTPForceSetup         Setting = "otp.force-setup"
	SettingOTPSetupPermission    Setting = "otp.setup.permission"
	SettingUpdateProfileEnabled  Setting = "update-profile.enabled"
)

// Scope selects where a setting is read from: the global configuration or a
// named profile instance.
type Scope struct {
	ProfileID string
}

// Global is the scope for settings that are not profile-bound.
var Global = Scope{}

// PolicySource is the read-only lookup port to policy/configuration storage.
// Lookups never fail on absence; each typed reader returns its zero value when
// the setting is not configured for the given scope.
type PolicySource interface {
	Bool(ctx context.Context, setting Setting, scope Scope) (bool, error)
	Seconds(ctx context.Context, setting Setting, scope Scope) (int64, error)
	String(ctx context.Context, setting Setting, scope Scope) (string, error)
	StringList(ctx context.Context, setting Setting, scope Scope) ([]string, error)
	Permission(ctx context.Context, setting Setting, scope Scope) ([]domain.PermissionRule, error)

	// PasswordRules returns the rule set defined by a password policy profile.
	PasswordRules(ctx context.Context, profileID string) (domain.RuleSet, error)

	// UpdateProfile returns the resolved profile-update configuration for a
	// profile ID, sentinel.ErrNotFound when no such profile is configured.
	UpdateProfile(ctx context.Context, profileID string) (domain.UpdateProfile, error)
}

// PermissionChecker evaluates whether an identity matches a permission rule
// set. An empty rule set never matches.
type PermissionChecker interface {
	Match(ctx context.Context, identity domain.Identity, rules []domain.PermissionRule) (bool, error)
}

// ProfileMatcher resolves which configured profile instance of a category
// applies to an identity, sentinel.ErrNotFound when none matches.
type ProfileMatcher interface {
	DiscoverProfileID(ctx context.Context, identity domain.Identity, category domain.ProfileCategory) (string, error)
}
