package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

var testIdentity = domain.Identity{DN: "cn=alice,ou=people,dc=example,dc=org"}

func seededDirectory() *MemoryDirectory {
	dir := NewMemory()
	dir.AddEntry(testIdentity.DN, map[string]string{
		"uid":  "alice",
		"mail": "alice@example.org",
		"sn":   "",
	})
	return dir
}

func TestReadAttribute(t *testing.T) {
	dir := seededDirectory()
	ctx := context.Background()

	value, err := dir.ReadAttribute(ctx, testIdentity, "uid")
	require.NoError(t, err)
	assert.Equal(t, "alice", value)

	_, err = dir.ReadAttribute(ctx, testIdentity, "title")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = dir.ReadAttribute(ctx, testIdentity, "sn")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "empty values read as absent")

	_, err = dir.ReadAttribute(ctx, domain.Identity{DN: "cn=nobody"}, "uid")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestReadAttributes(t *testing.T) {
	dir := seededDirectory()
	ctx := context.Background()

	values, err := dir.ReadAttributes(ctx, testIdentity, []string{"uid", "mail", "sn", "title"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"uid": "alice", "mail": "alice@example.org"}, values)

	_, err = dir.ReadAttributes(ctx, domain.Identity{DN: "cn=nobody"}, []string{"uid"})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestReadTimestamp(t *testing.T) {
	dir := seededDirectory()
	ctx := context.Background()
	expiration := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	dir.SetTimestamp(testIdentity.DN, domain.TimestampPasswordExpiration, expiration)

	got, err := dir.ReadTimestamp(ctx, testIdentity, domain.TimestampPasswordExpiration)
	require.NoError(t, err)
	assert.Equal(t, expiration, got)

	_, err = dir.ReadTimestamp(ctx, testIdentity, domain.TimestampLastLogin)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPasswordExpired(t *testing.T) {
	dir := seededDirectory()
	ctx := context.Background()

	expired, err := dir.PasswordExpired(ctx, testIdentity)
	require.NoError(t, err)
	assert.False(t, expired)

	dir.SetPasswordExpired(testIdentity.DN, true)
	expired, err = dir.PasswordExpired(ctx, testIdentity)
	require.NoError(t, err)
	assert.True(t, expired)

	_, err = dir.PasswordExpired(ctx, domain.Identity{DN: "cn=nobody"})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestAddEntryReplacesExisting(t *testing.T) {
	dir := seededDirectory()
	dir.SetPasswordExpired(testIdentity.DN, true)

	dir.AddEntry(testIdentity.DN, map[string]string{"uid": "alice2"})

	value, err := dir.ReadAttribute(context.Background(), testIdentity, "uid")
	require.NoError(t, err)
	assert.Equal(t, "alice2", value)

	expired, err := dir.PasswordExpired(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.False(t, expired, "replacing an entry resets its state")
}
