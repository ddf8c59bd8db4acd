package challenge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"credstate/internal/challenge/store"
	"credstate/internal/domain"
	"credstate/internal/policy"
	"credstate/internal/userinfo/mocks"
	"credstate/pkg/platform/sentinel"
)

var testIdentity = domain.Identity{DN: "cn=alice,ou=people,dc=example,dc=org"}

func newService(t *testing.T, doc policy.Document, matcher *mocks.MockProfileMatcher, recordStore RecordStore) *Service {
	t.Helper()
	if recordStore == nil {
		recordStore = store.NewMemory()
	}
	svc, err := New(policy.NewStaticSource(doc), matcher, recordStore)
	require.NoError(t, err)
	return svc
}

func standardProfileDoc() policy.Document {
	return policy.Document{
		ChallengeProfiles: map[string]policy.ChallengeProfileConfig{
			"standard": {
				DisplayName: "Standard Questions",
				ChallengeSet: domain.ChallengeSet{
					Challenges: []domain.Challenge{
						{Text: "First pet?", Required: true},
						{Text: "First school?"},
					},
					MinRandomRequired: 1,
				},
			},
		},
	}
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)

	_, err := New(nil, matcher, store.NewMemory())
	assert.ErrorContains(t, err, "policy source")

	_, err = New(policy.NewStaticSource(policy.Document{}), nil, store.NewMemory())
	assert.ErrorContains(t, err, "profile matcher")

	_, err = New(policy.NewStaticSource(policy.Document{}), matcher, nil)
	assert.ErrorContains(t, err, "record store")
}

func TestReadChallengeProfile_PinnedByPasswordPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	svc := newService(t, standardProfileDoc(), matcher, nil)

	pwPolicy := domain.PasswordPolicy{Rules: domain.RuleSet{domain.RuleChallengeProfile: "standard"}}
	profile, err := svc.ReadChallengeProfile(context.Background(), testIdentity, pwPolicy)
	require.NoError(t, err)
	assert.Equal(t, "standard", profile.ID)
	assert.Equal(t, "Standard Questions", profile.DisplayName)
	assert.Len(t, profile.ChallengeSet.Challenges, 2)
}

func TestReadChallengeProfile_FallsBackToDiscovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	matcher.EXPECT().
		DiscoverProfileID(gomock.Any(), testIdentity, domain.ProfileCategoryChallenge).
		Return("standard", nil)
	svc := newService(t, standardProfileDoc(), matcher, nil)

	profile, err := svc.ReadChallengeProfile(context.Background(), testIdentity, domain.PasswordPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "standard", profile.ID)
}

func TestReadChallengeProfile_NoMatchIsZeroProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	matcher.EXPECT().
		DiscoverProfileID(gomock.Any(), testIdentity, domain.ProfileCategoryChallenge).
		Return("", sentinel.ErrNotFound)
	svc := newService(t, standardProfileDoc(), matcher, nil)

	profile, err := svc.ReadChallengeProfile(context.Background(), testIdentity, domain.PasswordPolicy{})
	require.NoError(t, err)
	assert.True(t, profile.IsZero())
}

func TestReadChallengeProfile_DiscoveryFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	matcher.EXPECT().
		DiscoverProfileID(gomock.Any(), testIdentity, domain.ProfileCategoryChallenge).
		Return("", fmt.Errorf("matching: %w", sentinel.ErrUnavailable))
	svc := newService(t, standardProfileDoc(), matcher, nil)

	_, err := svc.ReadChallengeProfile(context.Background(), testIdentity, domain.PasswordPolicy{})
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestReadChallengeProfile_AssignedButUnconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	svc := newService(t, policy.Document{}, matcher, nil)

	pwPolicy := domain.PasswordPolicy{Rules: domain.RuleSet{domain.RuleChallengeProfile: "ghost"}}
	profile, err := svc.ReadChallengeProfile(context.Background(), testIdentity, pwPolicy)
	require.NoError(t, err)
	assert.True(t, profile.IsZero())
}

func TestReadResponseInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockProfileMatcher(ctrl)
	recordStore := store.NewMemory()
	svc := newService(t, policy.Document{}, matcher, recordStore)
	ctx := context.Background()

	info, err := svc.ReadResponseInfo(ctx, testIdentity)
	require.NoError(t, err)
	assert.Nil(t, info, "absent record reads as nil, not an error")

	record := domain.ResponseInfo{
		Identity:   testIdentity,
		Answers:    []domain.ResponseAnswer{{ChallengeText: "First pet?", AnswerHash: "$2a$10$x"}},
		RecordedAt: time.Now().UTC(),
	}
	require.NoError(t, recordStore.Save(ctx, record))

	info, err = svc.ReadResponseInfo(ctx, testIdentity)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, record.Answers, info.Answers)
}

func TestResponseConfigNeeded(t *testing.T) {
	set := domain.ChallengeSet{
		Challenges: []domain.Challenge{
			{Text: "First pet?", Required: true},
			{Text: "First school?"},
			{Text: "Favorite color?"},
		},
		MinRandomRequired: 1,
	}
	answers := func(texts ...string) *domain.ResponseInfo {
		info := &domain.ResponseInfo{Identity: testIdentity}
		for _, text := range texts {
			info.Answers = append(info.Answers, domain.ResponseAnswer{ChallengeText: text, AnswerHash: "h"})
		}
		return info
	}

	tests := []struct {
		name     string
		set      domain.ChallengeSet
		existing *domain.ResponseInfo
		needed   bool
	}{
		{"empty challenge set never needs setup", domain.ChallengeSet{}, nil, false},
		{"no stored record", set, nil, true},
		{"required challenge unanswered", set, answers("First school?"), true},
		{"too few optional answers", set, answers("First pet?"), true},
		{"required plus minimum optional satisfied", set, answers("First pet?", "Favorite color?"), false},
		{"stale answers to unknown challenges do not count", set, answers("First pet?", "Mother's maiden name?"), true},
	}

	ctrl := gomock.NewController(t)
	svc := newService(t, policy.Document{}, mocks.NewMockProfileMatcher(ctrl), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needed, err := svc.ResponseConfigNeeded(context.Background(), testIdentity, tt.set, tt.existing)
			require.NoError(t, err)
			assert.Equal(t, tt.needed, needed)
		})
	}
}
