package userinfo

import (
	"context"
	"errors"
	"fmt"

	"credstate/internal/domain"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// RemediationVerdict bundles the four independent remediation decisions.
type RemediationVerdict struct {
	NewPassword   bool `json:"new_password"`
	ResponseSetup bool `json:"response_setup"`
	OTPSetup      bool `json:"otp_setup"`
	ProfileUpdate bool `json:"profile_update"`
}

// Remediation computes all four verdicts. The verdicts themselves are cheap
// and recomputed per call; every expensive input is already memoized.
func (e *Evaluator) Remediation(ctx context.Context) (RemediationVerdict, error) {
	var verdict RemediationVerdict
	var err error

	if verdict.NewPassword, err = e.RequiresNewPassword(ctx); err != nil {
		return RemediationVerdict{}, err
	}
	if verdict.ResponseSetup, err = e.RequiresResponseSetup(ctx); err != nil {
		return RemediationVerdict{}, err
	}
	if verdict.OTPSetup, err = e.RequiresOTPSetup(ctx); err != nil {
		return RemediationVerdict{}, err
	}
	if verdict.ProfileUpdate, err = e.RequiresProfileUpdate(ctx); err != nil {
		return RemediationVerdict{}, err
	}
	return verdict, nil
}

// RequiresNewPassword decides whether the identity must change its password.
// Rule priority (fail-fast):
//  1. Change-password permission - identities that cannot change a password
//     are never asked to.
//  2. Any password status flag - expired, pre-expired, warn period, or a
//     policy violation of the in-hand password.
func (e *Evaluator) RequiresNewPassword(ctx context.Context) (bool, error) {
	rules, err := e.ports.Policy.Permission(ctx, ports.SettingChangePasswordMatch, ports.Global)
	if err != nil {
		return false, fmt.Errorf("resolve change-password permission: %w", err)
	}
	allowed, err := e.ports.Permissions.Match(ctx, e.identity, rules)
	if err != nil {
		return false, fmt.Errorf("test change-password permission: %w", err)
	}
	if !allowed {
		e.logger.DebugContext(ctx, "identity lacks change-password permission",
			"identity", e.identity.String())
		e.metrics.IncrementVerdict("new_password", false)
		return false, nil
	}

	status, err := e.PasswordStatus(ctx)
	if err != nil {
		return false, err
	}
	required := status.AnyFlag()
	e.metrics.IncrementVerdict("new_password", required)
	return required, nil
}

// RequiresResponseSetup decides whether the identity must record
// challenge-response answers. The decision itself is delegated; the
// evaluator's job is assembling the memoized inputs.
func (e *Evaluator) RequiresResponseSetup(ctx context.Context) (bool, error) {
	if e.ports.Challenges == nil {
		return false, nil
	}
	profile, err := e.ChallengeProfile(ctx)
	if err != nil {
		return false, err
	}
	if profile.IsZero() {
		e.metrics.IncrementVerdict("response_setup", false)
		return false, nil
	}
	existing, err := e.ResponseInfo(ctx)
	if err != nil {
		return false, err
	}
	needed, err := e.ports.Challenges.ResponseConfigNeeded(ctx, e.identity, profile.ChallengeSet, existing)
	if err != nil {
		return false, fmt.Errorf("check response config: %w", err)
	}
	e.metrics.IncrementVerdict("response_setup", needed)
	return needed, nil
}

// RequiresOTPSetup decides whether the identity must enroll a one-time
// password. Rule priority (fail-fast):
//  1. OTP feature flag - disabled means no, without consulting the OTP store.
//  2. Existing stored secret - already enrolled means no.
//  3. Setup permission - ineligible identities are never forced.
//  4. Force policy - only the two force variants require setup; absence of a
//     secret alone never does.
func (e *Evaluator) RequiresOTPSetup(ctx context.Context) (bool, error) {
	enabled, err := e.ports.Policy.Bool(ctx, ports.SettingOTPEnabled, ports.Global)
	if err != nil {
		return false, fmt.Errorf("resolve otp feature flag: %w", err)
	}
	if !enabled {
		e.metrics.IncrementVerdict("otp_setup", false)
		return false, nil
	}

	record, err := e.OTPRecord(ctx)
	if err != nil {
		return false, err
	}
	if record.HasSecret() {
		e.logger.DebugContext(ctx, "existing otp enrollment found",
			"identity", e.identity.String())
		e.metrics.IncrementVerdict("otp_setup", false)
		return false, nil
	}

	rules, err := e.ports.Policy.Permission(ctx, ports.SettingOTPSetupPermission, ports.Global)
	if err != nil {
		return false, fmt.Errorf("resolve otp setup permission: %w", err)
	}
	eligible, err := e.ports.Permissions.Match(ctx, e.identity, rules)
	if err != nil {
		return false, fmt.Errorf("test otp setup permission: %w", err)
	}
	if !eligible {
		e.metrics.IncrementVerdict("otp_setup", false)
		return false, nil
	}

	forceValue, err := e.ports.Policy.String(ctx, ports.SettingOTPForceSetup, ports.Global)
	if err != nil {
		return false, fmt.Errorf("resolve otp force policy: %w", err)
	}
	required := domain.ForceSetupPolicy(forceValue).Forces()
	e.metrics.IncrementVerdict("otp_setup", required)
	return required, nil
}

// RequiresProfileUpdate decides whether the identity must complete its
// update-attributes form. A validation failure of the populated form is the
// expected "incomplete profile" outcome; fatal read or configuration errors
// propagate instead of silently defaulting.
func (e *Evaluator) RequiresProfileUpdate(ctx context.Context) (bool, error) {
	enabled, err := e.ports.Policy.Bool(ctx, ports.SettingUpdateProfileEnabled, ports.Global)
	if err != nil {
		return false, fmt.Errorf("resolve update-profile feature flag: %w", err)
	}
	if !enabled {
		e.metrics.IncrementVerdict("profile_update", false)
		return false, nil
	}

	profileIDs, err := e.ProfileIDs(ctx)
	if err != nil {
		return false, err
	}
	profileID, ok := profileIDs[domain.ProfileCategoryUpdateAttributes]
	if !ok {
		e.metrics.IncrementVerdict("profile_update", false)
		return false, nil
	}

	profile, err := e.ports.Policy.UpdateProfile(ctx, profileID)
	if errors.Is(err, sentinel.ErrNotFound) {
		e.metrics.IncrementVerdict("profile_update", false)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read update profile %q: %w", profileID, err)
	}
	if !profile.ForceSetup {
		e.logger.DebugContext(ctx, "profile force setup not enabled",
			"identity", e.identity.String(), "profile_id", profileID)
		e.metrics.IncrementVerdict("profile_update", false)
		return false, nil
	}

	values, err := e.formValues(ctx, profile.Form)
	if err != nil {
		return false, fmt.Errorf("populate update form: %w", err)
	}

	if e.ports.Forms == nil {
		return false, fmt.Errorf("update profile enabled but form validator not wired")
	}
	err = e.ports.Forms.Validate(ctx, profile.Form, values)
	var validation *ports.ValidationError
	switch {
	case err == nil:
		e.logger.DebugContext(ctx, "profile form values validate, update not required",
			"identity", e.identity.String())
		e.metrics.IncrementVerdict("profile_update", false)
		return false, nil
	case errors.As(err, &validation):
		e.logger.DebugContext(ctx, "profile form incomplete, update required",
			"identity", e.identity.String(), "reason", validation.Error())
		e.metrics.IncrementVerdict("profile_update", true)
		return true, nil
	default:
		return false, fmt.Errorf("validate update form: %w", err)
	}
}
