package ports

import (
	"context"

	"credstate/internal/domain"
)

// ChallengeService is the challenge-response collaborator. It owns the stored
// response records and the decision whether a user's existing responses
// satisfy a challenge set.
type ChallengeService interface {
	// ReadChallengeProfile resolves the challenge configuration applicable to
	// the identity under the given password policy.
	ReadChallengeProfile(ctx context.Context, identity domain.Identity, policy domain.PasswordPolicy) (domain.ChallengeProfile, error)

	// ReadResponseInfo returns the stored response record, nil when the user
	// has never recorded responses.
	ReadResponseInfo(ctx context.Context, identity domain.Identity) (*domain.ResponseInfo, error)

	// ResponseConfigNeeded decides whether the existing record satisfies the
	// challenge set.
	ResponseConfigNeeded(ctx context.Context, identity domain.Identity, set domain.ChallengeSet, existing *domain.ResponseInfo) (bool, error)
}

// OTPService exposes the stored one-time-password enrollment for an identity,
// nil when the user has not enrolled.
type OTPService interface {
	ReadRecord(ctx context.Context, identity domain.Identity) (*domain.OTPRecord, error)
}

// PasswordValidator tests a candidate password against a resolved policy.
// A policy violation is reported as a *ValidationError; any other error means
// the check itself could not run and is fatal to the caller.
type PasswordValidator interface {
	Test(ctx context.Context, password string, policy domain.PasswordPolicy, userValues []string) error
}

// FormValidator validates populated form values against the field
// declarations. Incomplete or malformed values are reported as a
// *ValidationError.
type FormValidator interface {
	Validate(ctx context.Context, fields []domain.FormField, values map[string]string) error
}

// GUIDGenerator supplies a GUID when the directory entry carries none.
type GUIDGenerator interface {
	Generate(ctx context.Context, identity domain.Identity) (string, error)
}

// ValidationError marks an expected negative outcome of a validation step,
// as opposed to a failure to perform the validation at all.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}
