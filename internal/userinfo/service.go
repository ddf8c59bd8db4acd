// Package userinfo resolves security-relevant facts about a single identity:
// directory attributes, the applicable password policy, password expiration
// state, and the remediation steps the identity must perform.
//
// An Evaluator is scoped to one identity for one logical session. Every fact
// is computed lazily, at most once, through a single-flight cache; cross-fact
// dependencies are requested through the same cache so the at-most-once
// contract holds under recursion and concurrency alike.
package userinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"credstate/internal/domain"
	"credstate/internal/factcache"
	"credstate/internal/form"
	"credstate/internal/policy"
	"credstate/internal/userinfo/metrics"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
	"credstate/pkg/strutil"
)

// Fact names for every memoized accessor. Exposed so callers and metrics can
// refer to facts by name.
const (
	FactUsername               factcache.Fact = "username"
	FactEmailAddress           factcache.Fact = "email-address"
	FactSMSNumber              factcache.Fact = "sms-number"
	FactGUID                   factcache.Fact = "guid"
	FactLastLoginTime          factcache.Fact = "last-login-time"
	FactAccountExpirationTime  factcache.Fact = "account-expiration-time"
	FactPasswordExpirationTime factcache.Fact = "password-expiration-time"
	FactPasswordModifiedTime   factcache.Fact = "password-modified-time"
	FactPasswordPolicy         factcache.Fact = "password-policy"
	FactPasswordStatus         factcache.Fact = "password-status"
	FactChallengeProfile       factcache.Fact = "challenge-profile"
	FactResponseInfo           factcache.Fact = "response-info"
	FactOTPRecord              factcache.Fact = "otp-record"
	FactPasswordRuleAttributes factcache.Fact = "password-rule-attributes"
	FactCachedAttributeValues  factcache.Fact = "cached-attribute-values"
	FactProfileIDs             factcache.Fact = "profile-ids"
)

// Ports bundles the external collaborators the evaluator consumes. Directory,
// Policy, Permissions and Profiles are required; the rest may be nil when the
// corresponding feature is disabled.
type Ports struct {
	Directory   ports.Directory
	Policy      ports.PolicySource
	Permissions ports.PermissionChecker
	Profiles    ports.ProfileMatcher
	Challenges  ports.ChallengeService
	OTP         ports.OTPService
	Passwords   ports.PasswordValidator
	Forms       ports.FormValidator
	GUIDs       ports.GUIDGenerator
}

// Evaluator resolves facts about one identity for one session. It is safe for
// concurrent use; all shared mutable state lives in the fact cache.
type Evaluator struct {
	identity        domain.Identity
	currentPassword string

	ports   Ports
	cache   *factcache.Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCurrentPassword supplies the in-hand password so the status check can
// test it against policy when the enforce-at-login rule is active.
func WithCurrentPassword(password string) Option {
	return func(e *Evaluator) { e.currentPassword = password }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// WithClock overrides the time source for the status state machine.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// New constructs an evaluator for one identity with a fresh fact cache. A new
// session requires a new evaluator.
func New(identity domain.Identity, p Ports, opts ...Option) (*Evaluator, error) {
	if identity.IsZero() {
		return nil, fmt.Errorf("identity is required")
	}
	if p.Directory == nil {
		return nil, fmt.Errorf("directory port is required")
	}
	if p.Policy == nil {
		return nil, fmt.Errorf("policy port is required")
	}
	if p.Permissions == nil {
		return nil, fmt.Errorf("permission port is required")
	}
	if p.Profiles == nil {
		return nil, fmt.Errorf("profile matcher port is required")
	}

	e := &Evaluator{
		identity: identity,
		ports:    p,
		cache:    factcache.New(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("credstate/userinfo"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Identity returns the identity this evaluator is bound to.
func (e *Evaluator) Identity() domain.Identity {
	return e.identity
}

// resolve routes a fact computation through the cache with a span and compute
// latency observation around the first (and only) computation.
func resolve[T any](ctx context.Context, e *Evaluator, fact factcache.Fact, compute func(ctx context.Context) (T, error)) (T, error) {
	return factcache.Resolve(ctx, e.cache, fact, func(ctx context.Context) (T, error) {
		ctx, span := e.tracer.Start(ctx, "fact/"+string(fact),
			trace.WithAttributes(attribute.String("identity", e.identity.DN)))
		defer span.End()

		start := time.Now()
		v, err := compute(ctx)
		e.metrics.ObserveFactCompute(string(fact), time.Since(start), err)
		if err != nil {
			span.RecordError(err)
		}
		return v, err
	})
}

// profileScope is the policy scope of the identity's directory profile.
func (e *Evaluator) profileScope() ports.Scope {
	return ports.Scope{ProfileID: e.identity.ProfileID}
}

// readNamedAttribute reads one attribute whose name is itself configured in
// policy. Absent attributes and read errors degrade to empty; directory
// unavailability is fatal.
func (e *Evaluator) readNamedAttribute(ctx context.Context, nameSetting ports.Setting) (string, error) {
	attr, err := e.ports.Policy.String(ctx, nameSetting, e.profileScope())
	if err != nil {
		return "", fmt.Errorf("resolve attribute name %s: %w", nameSetting, err)
	}
	if attr == "" {
		return "", nil
	}
	value, err := e.ports.Directory.ReadAttribute(ctx, e.identity, attr)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return "", fmt.Errorf("read attribute %q: %w", attr, err)
	case err != nil:
		if !errors.Is(err, sentinel.ErrNotFound) {
			e.logger.WarnContext(ctx, "attribute read failed",
				"identity", e.identity.String(), "attribute", attr, "error", err)
		}
		return "", nil
	}
	return value, nil
}

// Username resolves the identity's login name via the profile-configured
// username attribute.
func (e *Evaluator) Username(ctx context.Context) (string, error) {
	return resolve(ctx, e, FactUsername, func(ctx context.Context) (string, error) {
		return e.readNamedAttribute(ctx, ports.SettingUsernameAttribute)
	})
}

// UserEmailAddress resolves the identity's mail attribute.
func (e *Evaluator) UserEmailAddress(ctx context.Context) (string, error) {
	return resolve(ctx, e, FactEmailAddress, func(ctx context.Context) (string, error) {
		return e.readNamedAttribute(ctx, ports.SettingEmailAttribute)
	})
}

// UserSMSNumber resolves the identity's SMS phone attribute.
func (e *Evaluator) UserSMSNumber(ctx context.Context) (string, error) {
	return resolve(ctx, e, FactSMSNumber, func(ctx context.Context) (string, error) {
		return e.readNamedAttribute(ctx, ports.SettingSMSAttribute)
	})
}

// UserGUID resolves the identity's GUID attribute, falling back to the GUID
// generator collaborator when the entry carries none.
func (e *Evaluator) UserGUID(ctx context.Context) (string, error) {
	return resolve(ctx, e, FactGUID, func(ctx context.Context) (string, error) {
		value, err := e.readNamedAttribute(ctx, ports.SettingGUIDAttribute)
		if err != nil {
			return "", err
		}
		if value != "" || e.ports.GUIDs == nil {
			return value, nil
		}
		generated, err := e.ports.GUIDs.Generate(ctx, e.identity)
		if err != nil {
			return "", fmt.Errorf("generate guid: %w", err)
		}
		e.logger.DebugContext(ctx, "assigned generated guid",
			"identity", e.identity.String())
		return generated, nil
	})
}

// readTimestamp reads a directory timestamp; absence and read errors degrade
// to the zero time, unavailability is fatal.
func (e *Evaluator) readTimestamp(ctx context.Context, kind domain.TimestampKind) (time.Time, error) {
	t, err := e.ports.Directory.ReadTimestamp(ctx, e.identity, kind)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return time.Time{}, fmt.Errorf("read %s timestamp: %w", kind, err)
	case err != nil:
		if !errors.Is(err, sentinel.ErrNotFound) {
			e.logger.WarnContext(ctx, "timestamp read failed",
				"identity", e.identity.String(), "kind", string(kind), "error", err)
		}
		return time.Time{}, nil
	}
	return t, nil
}

// LastLoginTime returns the directory-recorded last login, zero when absent.
func (e *Evaluator) LastLoginTime(ctx context.Context) (time.Time, error) {
	return resolve(ctx, e, FactLastLoginTime, func(ctx context.Context) (time.Time, error) {
		return e.readTimestamp(ctx, domain.TimestampLastLogin)
	})
}

// AccountExpirationTime returns the account expiration, zero when absent.
func (e *Evaluator) AccountExpirationTime(ctx context.Context) (time.Time, error) {
	return resolve(ctx, e, FactAccountExpirationTime, func(ctx context.Context) (time.Time, error) {
		return e.readTimestamp(ctx, domain.TimestampAccountExpiration)
	})
}

// PasswordExpirationTime returns the password expiration, zero when absent.
func (e *Evaluator) PasswordExpirationTime(ctx context.Context) (time.Time, error) {
	return resolve(ctx, e, FactPasswordExpirationTime, func(ctx context.Context) (time.Time, error) {
		return e.readTimestamp(ctx, domain.TimestampPasswordExpiration)
	})
}

// PasswordLastModifiedTime returns when the password last changed, zero when
// the directory does not track it.
func (e *Evaluator) PasswordLastModifiedTime(ctx context.Context) (time.Time, error) {
	return resolve(ctx, e, FactPasswordModifiedTime, func(ctx context.Context) (time.Time, error) {
		return e.readTimestamp(ctx, domain.TimestampPasswordModified)
	})
}

// PasswordPolicy resolves and merges the password rule set governing this
// identity: the profile assigned by profile discovery plus any per-user
// overrides read from the directory. This is the most-depended-upon fact;
// the cache guarantees every derived fact sees the same resolution.
func (e *Evaluator) PasswordPolicy(ctx context.Context) (domain.PasswordPolicy, error) {
	return resolve(ctx, e, FactPasswordPolicy, func(ctx context.Context) (domain.PasswordPolicy, error) {
		profileIDs, err := e.ProfileIDs(ctx)
		if err != nil {
			return domain.PasswordPolicy{}, err
		}
		profileID := profileIDs[domain.ProfileCategoryPasswordPolicy]
		if profileID == "" {
			return domain.PasswordPolicy{Rules: domain.RuleSet{}}, nil
		}

		rules, err := e.ports.Policy.PasswordRules(ctx, profileID)
		if err != nil {
			return domain.PasswordPolicy{}, fmt.Errorf("read password rules for profile %q: %w", profileID, err)
		}

		overrides, err := e.readRuleOverrides(ctx)
		if err != nil {
			return domain.PasswordPolicy{}, err
		}

		return domain.PasswordPolicy{
			ProfileID: profileID,
			Rules:     policy.MergeRules(rules, overrides),
		}, nil
	})
}

// readRuleOverrides reads the per-user rule override attribute. Absent values
// and read errors degrade to no overrides.
func (e *Evaluator) readRuleOverrides(ctx context.Context) (domain.RuleSet, error) {
	raw, err := e.ports.Directory.ReadAttribute(ctx, e.identity, policy.RuleOverrideAttribute)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return nil, fmt.Errorf("read rule overrides: %w", err)
	case err != nil:
		return nil, nil
	}
	return policy.ParseOverrides(raw), nil
}

// PasswordRuleAttributes reads, in one batched call, the directory attributes
// the active password rules refer to. Read errors degrade to an empty set.
func (e *Evaluator) PasswordRuleAttributes(ctx context.Context) (map[string]string, error) {
	return resolve(ctx, e, FactPasswordRuleAttributes, func(ctx context.Context) (map[string]string, error) {
		pwPolicy, err := e.PasswordPolicy(ctx)
		if err != nil {
			return nil, err
		}
		interesting := policy.RuleAttributeReferences(pwPolicy.Rules)
		if len(interesting) == 0 {
			return map[string]string{}, nil
		}
		return e.readAttributesDegraded(ctx, interesting)
	})
}

// CachedAttributeValues reads the separately configured fixed attribute list
// in one batched call, degrading read errors to an empty result.
func (e *Evaluator) CachedAttributeValues(ctx context.Context) (map[string]string, error) {
	return resolve(ctx, e, FactCachedAttributeValues, func(ctx context.Context) (map[string]string, error) {
		names, err := e.ports.Policy.StringList(ctx, ports.SettingCachedAttributes, e.profileScope())
		if err != nil {
			return nil, fmt.Errorf("resolve cached attribute list: %w", err)
		}
		names = strutil.DedupeAndTrim(names)
		if len(names) == 0 {
			return map[string]string{}, nil
		}
		return e.readAttributesDegraded(ctx, names)
	})
}

func (e *Evaluator) readAttributesDegraded(ctx context.Context, names []string) (map[string]string, error) {
	values, err := e.ports.Directory.ReadAttributes(ctx, e.identity, names)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return nil, fmt.Errorf("batched attribute read: %w", err)
	case err != nil:
		e.logger.WarnContext(ctx, "batched attribute read failed",
			"identity", e.identity.String(), "error", err)
		return map[string]string{}, nil
	}
	return values, nil
}

// ProfileIDs resolves, for every profile category requiring authentication,
// which configured profile instance applies to this identity. Categories with
// no match are absent from the map.
func (e *Evaluator) ProfileIDs(ctx context.Context) (map[domain.ProfileCategory]string, error) {
	return resolve(ctx, e, FactProfileIDs, func(ctx context.Context) (map[domain.ProfileCategory]string, error) {
		assigned := make(map[domain.ProfileCategory]string)
		for _, category := range domain.AuthenticatedCategories() {
			profileID, err := e.ports.Profiles.DiscoverProfileID(ctx, e.identity, category)
			if errors.Is(err, sentinel.ErrNotFound) {
				e.logger.DebugContext(ctx, "no matching profile",
					"identity", e.identity.String(), "category", string(category))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("discover %s profile: %w", category, err)
			}
			assigned[category] = profileID
			e.logger.DebugContext(ctx, "assigned profile",
				"identity", e.identity.String(), "category", string(category), "profile_id", profileID)
		}
		return assigned, nil
	})
}

// ChallengeProfile resolves the challenge-response configuration applicable
// to this identity under its password policy.
func (e *Evaluator) ChallengeProfile(ctx context.Context) (domain.ChallengeProfile, error) {
	return resolve(ctx, e, FactChallengeProfile, func(ctx context.Context) (domain.ChallengeProfile, error) {
		if e.ports.Challenges == nil {
			return domain.ChallengeProfile{}, nil
		}
		pwPolicy, err := e.PasswordPolicy(ctx)
		if err != nil {
			return domain.ChallengeProfile{}, err
		}
		return e.ports.Challenges.ReadChallengeProfile(ctx, e.identity, pwPolicy)
	})
}

// ResponseInfo returns the stored challenge-response record, nil when the
// user never recorded responses.
func (e *Evaluator) ResponseInfo(ctx context.Context) (*domain.ResponseInfo, error) {
	return resolve(ctx, e, FactResponseInfo, func(ctx context.Context) (*domain.ResponseInfo, error) {
		if e.ports.Challenges == nil {
			return nil, nil
		}
		info, err := e.ports.Challenges.ReadResponseInfo(ctx, e.identity)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return info, err
	})
}

// OTPRecord returns the stored OTP enrollment, nil when the user has not
// enrolled or the OTP service is not wired.
func (e *Evaluator) OTPRecord(ctx context.Context) (*domain.OTPRecord, error) {
	return resolve(ctx, e, FactOTPRecord, func(ctx context.Context) (*domain.OTPRecord, error) {
		if e.ports.OTP == nil {
			return nil, nil
		}
		record, err := e.ports.OTP.ReadRecord(ctx, e.identity)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return record, err
	})
}

// formValues populates the declared form fields from the directory, treating
// absent attributes as empty values. Read errors here are fatal; the
// profile-update verdict depends on a faithful population.
func (e *Evaluator) formValues(ctx context.Context, fields []domain.FormField) (map[string]string, error) {
	return form.PopulateFromDirectory(ctx, e.ports.Directory, e.identity, fields)
}
