// Package challenge implements the challenge-response collaborator: resolving
// the challenge profile applicable to an identity and deciding whether its
// stored responses satisfy the profile's challenge set.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"credstate/internal/domain"
	"credstate/internal/policy"
	"credstate/internal/userinfo/ports"
	"credstate/pkg/platform/sentinel"
)

// RecordStore persists per-user response records. Find returns
// sentinel.ErrNotFound when the user never recorded responses.
type RecordStore interface {
	Find(ctx context.Context, identity domain.Identity) (*domain.ResponseInfo, error)
	Save(ctx context.Context, record domain.ResponseInfo) error
	Delete(ctx context.Context, identity domain.Identity) error
}

// Service implements ports.ChallengeService.
type Service struct {
	source  *policy.StaticSource
	matcher ports.ProfileMatcher
	store   RecordStore
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs the challenge service.
func New(source *policy.StaticSource, matcher ports.ProfileMatcher, store RecordStore, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("policy source is required")
	}
	if matcher == nil {
		return nil, fmt.Errorf("profile matcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	s := &Service{source: source, matcher: matcher, store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadChallengeProfile resolves the challenge profile for the identity. A
// password policy can pin the profile directly via the challenge-profile
// rule; otherwise profile discovery decides. No match yields a zero profile,
// not an error.
func (s *Service) ReadChallengeProfile(ctx context.Context, identity domain.Identity, pwPolicy domain.PasswordPolicy) (domain.ChallengeProfile, error) {
	profileID := pwPolicy.StringRule(domain.RuleChallengeProfile)
	if profileID == "" {
		discovered, err := s.matcher.DiscoverProfileID(ctx, identity, domain.ProfileCategoryChallenge)
		if errors.Is(err, sentinel.ErrNotFound) {
			return domain.ChallengeProfile{}, nil
		}
		if err != nil {
			return domain.ChallengeProfile{}, err
		}
		profileID = discovered
	}

	cfg, ok := s.source.ChallengeProfile(profileID)
	if !ok {
		s.logger.WarnContext(ctx, "challenge profile assigned but not configured",
			"identity", identity.String(), "profile_id", profileID)
		return domain.ChallengeProfile{}, nil
	}
	return domain.ChallengeProfile{
		ID:           profileID,
		DisplayName:  cfg.DisplayName,
		ChallengeSet: cfg.ChallengeSet,
	}, nil
}

// ReadResponseInfo returns the stored response record, nil when absent.
func (s *Service) ReadResponseInfo(ctx context.Context, identity domain.Identity) (*domain.ResponseInfo, error) {
	record, err := s.store.Find(ctx, identity)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read response record: %w", err)
	}
	return record, nil
}

// ResponseConfigNeeded decides whether the existing record satisfies the
// challenge set: every required challenge answered, and at least the
// configured number of optional ones.
func (s *Service) ResponseConfigNeeded(ctx context.Context, identity domain.Identity, set domain.ChallengeSet, existing *domain.ResponseInfo) (bool, error) {
	if len(set.Challenges) == 0 {
		return false, nil
	}
	if existing == nil {
		s.logger.DebugContext(ctx, "no stored responses, setup required",
			"identity", identity.String())
		return true, nil
	}

	optionalAnswered := 0
	for _, ch := range set.Challenges {
		_, answered := existing.AnswerFor(ch.Text)
		switch {
		case ch.Required && !answered:
			s.logger.DebugContext(ctx, "required challenge unanswered, setup required",
				"identity", identity.String())
			return true, nil
		case !ch.Required && answered:
			optionalAnswered++
		}
	}
	if optionalAnswered < set.MinRandomRequired {
		s.logger.DebugContext(ctx, "too few optional challenges answered, setup required",
			"identity", identity.String(),
			"answered", optionalAnswered,
			"min_required", set.MinRandomRequired)
		return true, nil
	}
	return false, nil
}
