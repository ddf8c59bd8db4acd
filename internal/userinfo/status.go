package userinfo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// PasswordStatus computes the multi-window expiration state of the identity's
// password: the directory's own expired flag, the pre-expire and warn lead
// windows from policy, and whether the in-hand password violates the resolved
// rule set. Computed once per evaluator instance.
func (e *Evaluator) PasswordStatus(ctx context.Context) (domain.PasswordStatus, error) {
	return resolve(ctx, e, FactPasswordStatus, func(ctx context.Context) (domain.PasswordStatus, error) {
		pwPolicy, err := e.PasswordPolicy(ctx)
		if err != nil {
			return domain.PasswordStatus{}, err
		}

		violates, err := e.checkPolicyViolation(ctx, pwPolicy)
		if err != nil {
			return domain.PasswordStatus{}, err
		}

		expired, err := e.readExpiredFlag(ctx)
		if err != nil {
			return domain.PasswordStatus{}, err
		}

		expirationTime, err := e.PasswordExpirationTime(ctx)
		if err != nil {
			return domain.PasswordStatus{}, err
		}

		windows, err := e.expirationWindows(ctx)
		if err != nil {
			return domain.PasswordStatus{}, err
		}

		status := derivePasswordStatus(statusInputs{
			violatesPolicy: violates,
			expired:        expired,
			expirationTime: expirationTime,
			windows:        windows,
			now:            e.now(),
		})
		e.logger.DebugContext(ctx, "password status check complete",
			"identity", e.identity.String(),
			"expired", status.Expired,
			"pre_expired", status.PreExpired,
			"warn_period", status.WarnPeriod,
			"violates_policy", status.ViolatesPolicy,
		)
		return status, nil
	})
}

// checkPolicyViolation tests the in-hand password against the resolved policy
// when the enforce-at-login rule is active. A failed validation is an expected
// outcome; only directory unavailability aborts the status computation.
func (e *Evaluator) checkPolicyViolation(ctx context.Context, pwPolicy domain.PasswordPolicy) (bool, error) {
	if !pwPolicy.BoolRule(domain.RuleEnforceAtLogin) || e.currentPassword == "" || e.ports.Passwords == nil {
		return false, nil
	}

	userValues, err := e.validationContextValues(ctx)
	if err != nil {
		return false, err
	}

	err = e.ports.Passwords.Test(ctx, e.currentPassword, pwPolicy, userValues)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, sentinel.ErrUnavailable):
		return false, fmt.Errorf("test password against policy: %w", err)
	default:
		e.logger.DebugContext(ctx, "current password does not conform to policy, marking as requiring change",
			"identity", e.identity.String(), "reason", err)
		return true, nil
	}
}

// validationContextValues gathers user-derived values (username, rule-referenced
// attributes) the validator should reject inside passwords.
func (e *Evaluator) validationContextValues(ctx context.Context) ([]string, error) {
	username, err := e.Username(ctx)
	if err != nil {
		return nil, err
	}
	ruleAttrs, err := e.PasswordRuleAttributes(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(ruleAttrs)+1)
	if username != "" {
		values = append(values, username)
	}
	for _, v := range ruleAttrs {
		if v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}

// readExpiredFlag reads the directory's expired flag, degrading read errors
// to false the way attribute reads degrade to empty.
func (e *Evaluator) readExpiredFlag(ctx context.Context) (bool, error) {
	expired, err := e.ports.Directory.PasswordExpired(ctx, e.identity)
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return false, fmt.Errorf("read password expired flag: %w", err)
	case err != nil:
		e.logger.InfoContext(ctx, "error reading password expired flag",
			"identity", e.identity.String(), "error", err)
		return false, nil
	}
	return expired, nil
}

func (e *Evaluator) expirationWindows(ctx context.Context) (domain.ExpirationWindows, error) {
	pre, err := e.ports.Policy.Seconds(ctx, ports.SettingPasswordPreExpireTime, ports.Global)
	if err != nil {
		return domain.ExpirationWindows{}, fmt.Errorf("resolve pre-expire window: %w", err)
	}
	warn, err := e.ports.Policy.Seconds(ctx, ports.SettingPasswordWarnTime, ports.Global)
	if err != nil {
		return domain.ExpirationWindows{}, fmt.Errorf("resolve warn window: %w", err)
	}
	return domain.ExpirationWindows{
		PreExpire: time.Duration(pre) * time.Second,
		Warn:      time.Duration(warn) * time.Second,
	}, nil
}

type statusInputs struct {
	violatesPolicy bool
	expired        bool
	expirationTime time.Time
	windows        domain.ExpirationWindows
	now            time.Time
}

// derivePasswordStatus is the pure state machine over the expiration windows.
//
// Window semantics:
//   - expired comes straight from the directory flag and always forces
//     preExpired.
//   - preExpired additionally holds when 0 < remaining < preExpire.
//   - The warn check only applies when the warn window is nonzero and not
//     shorter than the pre-expire window. Under that guard, warnPeriod holds
//     when the password is expired or when 0 < remaining < warn.
//   - Without an expiration time there is no remaining-window arithmetic, so
//     only the expired flag can set window flags.
//   - A negative remaining (past the computed time while the directory flag
//     still says not expired) is not inside any window.
func derivePasswordStatus(in statusInputs) domain.PasswordStatus {
	status := domain.PasswordStatus{
		Expired:        in.expired,
		ViolatesPolicy: in.violatesPolicy,
	}

	var remaining time.Duration
	haveExpiration := !in.expirationTime.IsZero()
	if haveExpiration {
		remaining = in.expirationTime.Sub(in.now)
	}

	status.PreExpired = in.expired ||
		(haveExpiration && remaining > 0 && remaining < in.windows.PreExpire)

	warnApplies := in.windows.Warn != 0 && in.windows.Warn >= in.windows.PreExpire
	if warnApplies {
		status.WarnPeriod = in.expired ||
			(haveExpiration && remaining > 0 && remaining < in.windows.Warn)
	}

	return status
}
