//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	challengestore "credstate/internal/challenge/store"
	"credstate/internal/domain"
	otpstore "credstate/internal/otp/store"
	"credstate/pkg/platform/sentinel"
	"credstate/pkg/testutil/containers"
)

func TestRedisChallengeStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := challengestore.NewRedis(rc.Client)
	ctx := context.Background()

	_, err := store.Find(ctx, alice)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	record := domain.ResponseInfo{
		Identity: alice,
		Answers: []domain.ResponseAnswer{
			{ChallengeText: "First pet?", AnswerHash: "$2a$10$abc"},
		},
		RecordedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, record))

	found, err := store.Find(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, record.Answers, found.Answers)
	assert.Equal(t, record.RecordedAt, found.RecordedAt.UTC())

	require.NoError(t, store.Delete(ctx, alice))
	_, err = store.Find(ctx, alice)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisOTPStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	store := otpstore.NewRedis(rc.Client)
	ctx := context.Background()

	_, err := store.Find(ctx, alice)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	record := domain.OTPRecord{
		Identity:   alice,
		Secret:     "JBSWY3DPEHPK3PXP",
		Type:       "totp",
		RecordedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, record))

	found, err := store.Find(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, record.Secret, found.Secret)

	require.NoError(t, store.Delete(ctx, alice))
	_, err = store.Find(ctx, alice)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisStoresAreIsolatedByKeyspace(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	challenges := challengestore.NewRedis(rc.Client)
	otps := otpstore.NewRedis(rc.Client)
	ctx := context.Background()

	require.NoError(t, challenges.Save(ctx, domain.ResponseInfo{Identity: alice, RecordedAt: time.Now()}))

	_, err := otps.Find(ctx, alice)
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "challenge records must not shadow otp records")
}
